package dynamics

import (
	"log"
	"os"
)

// Logger is the minimal leveled logging surface the engine writes
// through. No third-party logging library appears anywhere in the
// reference corpus, so this wraps the standard library's log.Logger
// rather than inventing a dependency the examples never reach for.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// stdLogger adapts a *log.Logger to the Logger interface. Debug lines are
// dropped unless verbose is set, matching the noisy-phase-by-phase detail
// a tick loop can otherwise produce.
type stdLogger struct {
	l       *log.Logger
	verbose bool
}

// NewStdLogger builds a Logger that writes to os.Stderr with a dynamics
// prefix.
func NewStdLogger(verbose bool) Logger {
	return &stdLogger{l: log.New(os.Stderr, "dynamics: ", log.LstdFlags), verbose: verbose}
}

func (s *stdLogger) Debugf(format string, args ...any) {
	if s.verbose {
		s.l.Printf("DEBUG "+format, args...)
	}
}

func (s *stdLogger) Infof(format string, args ...any) {
	s.l.Printf("INFO "+format, args...)
}

func (s *stdLogger) Warnf(format string, args ...any) {
	s.l.Printf("WARN "+format, args...)
}

// noopLogger discards everything. It is the Engine's default so that
// constructing one without WithLogger produces no output.
type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}
func (noopLogger) Infof(string, ...any)  {}
func (noopLogger) Warnf(string, ...any)  {}
