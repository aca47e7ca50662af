package dynamics

// Option configures an Engine before it starts ticking, following the
// same functional-options shape the network's graph construction uses.
type Option func(*Engine)

// WithSeed sets the two-word seed for the engine's RNG stream. Two
// Engines built with the same seed and fed identical demand produce
// bit-for-bit identical trajectories.
func WithSeed(seed1, seed2 uint64) Option {
	return func(e *Engine) {
		e.seed1, e.seed2 = seed1, seed2
	}
}

// WithErrorProbability sets the probability, in [0, 1], that an agent
// evacuating a node deviates from its itinerary's preferred next hop
// instead of following it. Values outside [0, 1] are clamped.
func WithErrorProbability(p float64) Option {
	return func(e *Engine) {
		e.errorProbability = clamp01(p)
	}
}

// WithMinSpeedRateo sets the minimum fraction, in [0, 1], of a street's
// speed limit an agent may be slowed to by congestion.
func WithMinSpeedRateo(rateo float64) Option {
	return func(e *Engine) {
		e.minSpeedRateo = clamp01(rateo)
	}
}

// WithCongestionFactor sets how strongly street density depresses travel
// speed: effective speed = maxSpeed * max(minSpeedRateo, 1 - factor*density).
func WithCongestionFactor(factor float64) Option {
	return func(e *Engine) {
		e.congestionFactor = factor
	}
}

// WithPathRecomputeEvery sets the tick cadence at which the engine
// refreshes every itinerary's shortest-path matrix. A recompute also
// fires early, regardless of cadence, the first time any street's
// density has moved by more than 0.1 since the last recompute.
func WithPathRecomputeEvery(k uint64) Option {
	return func(e *Engine) {
		e.pathRecomputeEvery = k
	}
}

// WithLogger overrides the engine's default no-op logger.
func WithLogger(l Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithParallelEvacuation sets the number of worker goroutines used to
// drain nodes' waiting structures during node evacuation. Each node
// drains through a private RNG sub-stream seeded deterministically
// before any worker starts, and nodes never share a waiting structure or
// an outgoing street, so raising workers only changes how many nodes
// drain concurrently, never the resulting trajectory.
func WithParallelEvacuation(workers int) Option {
	return func(e *Engine) {
		if workers > 0 {
			e.evacuationWorkers = workers
		}
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
