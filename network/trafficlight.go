package network

// lightState holds the cyclic phase counters for a TrafficLight node. The
// arithmetic mirrors the original fixed-cycle signal model: a light has a
// green phase lasting greenTime ticks followed by a red phase lasting
// cycleTime-greenTime ticks, and counter advances once per tick until it
// wraps back to zero at cycleTime.
type lightState struct {
	configured bool
	cycleTime  uint64
	greenTime  uint64
	// counter is the tick position within the current cycle, [0, cycleTime).
	counter uint64
	// phaseOffset is the counter value a pending SetPhaseAfterCycle applies
	// at the next wrap; SetPhase and the wrap itself reset it to zero.
	phaseOffset uint64
}

// SetDelay configures a TrafficLight's cycle: cycleTime total ticks, with
// the first greenTime ticks of the counter green for streets on phase 0 and red for streets on phase 1, and the remainder the
// reverse. Returns ErrWrongNodeKind if n is not a TrafficLight, and
// ErrStateViolation if greenTime >= cycleTime or cycleTime is zero.
//
// Re-delaying an already-configured light remaps the in-flight counter
// rather than resetting it: if the counter has already run past the new
// cycle length it is pulled back one tick short of wrapping, and if the new
// green window is shorter than the old one and the counter currently falls
// inside the shrunk window, the counter is shifted to preserve its distance
// from the old green/red boundary. That shift is taken modulo cycleTime, so
// a counter farther from the old boundary than the new greenTime wraps into
// the tail of the previous cycle.
func (n *Node) SetDelay(cycleTime, greenTime uint64) error {
	if n.kind != KindTrafficLight {
		return ErrWrongNodeKind
	}
	if cycleTime == 0 || greenTime >= cycleTime {
		return ErrStateViolation
	}
	if n.light.configured {
		oldGreenTime := n.light.greenTime
		counter := n.light.counter
		if counter >= cycleTime {
			counter = cycleTime - 1
		} else if greenTime < oldGreenTime {
			if counter >= greenTime && counter <= oldGreenTime {
				shift := (oldGreenTime - greenTime) % cycleTime
				counter = (counter + cycleTime - shift) % cycleTime
			}
		}
		n.light.counter = counter
	} else {
		n.light.counter = 0
	}
	n.light.cycleTime = cycleTime
	n.light.greenTime = greenTime
	n.light.configured = true
	return nil
}

// SetPhase forces the light's cycle position to counter immediately,
// wrapping modulo cycleTime. Returns ErrStateViolation if the light has
// not been configured via SetDelay.
func (n *Node) SetPhase(counter uint64) error {
	if n.kind != KindTrafficLight {
		return ErrWrongNodeKind
	}
	if !n.light.configured {
		return ErrStateViolation
	}
	n.light.counter = counter % n.light.cycleTime
	n.light.phaseOffset = 0
	return nil
}

// SetPhaseAfterCycle schedules a phase offset that takes effect only once
// the current cycle completes (counter wraps to zero), rather than
// applying immediately like SetPhase. This lets the dynamics engine
// retime a light without truncating a phase an agent is already
// committed to.
func (n *Node) SetPhaseAfterCycle(offset uint64) error {
	if n.kind != KindTrafficLight {
		return ErrWrongNodeKind
	}
	if !n.light.configured {
		return ErrStateViolation
	}
	n.light.phaseOffset = offset % n.light.cycleTime
	return nil
}

// IncreaseCounter advances the light's cycle position by one tick. On
// wraparound, a phaseOffset pending from SetPhaseAfterCycle is applied once
// and cleared, otherwise the counter resets to zero.
func (n *Node) IncreaseCounter() error {
	if n.kind != KindTrafficLight {
		return ErrWrongNodeKind
	}
	if !n.light.configured {
		return ErrStateViolation
	}
	n.light.counter++
	if n.light.counter >= n.light.cycleTime {
		n.light.counter = n.light.phaseOffset
		n.light.phaseOffset = 0
	}
	return nil
}

// IsGreen reports whether phase 0 streets currently have the green signal.
// Phase 1 streets are green exactly when phase 0 is not. Returns false,
// ErrStateViolation if the light has not been configured.
func (n *Node) IsGreen() (bool, error) {
	if n.kind != KindTrafficLight {
		return false, ErrWrongNodeKind
	}
	if !n.light.configured {
		return false, ErrStateViolation
	}
	return n.light.counter < n.light.greenTime, nil
}

// IsGreenStreet reports whether an inbound street currently has right of
// way, given which phase (0 or 1) that street is assigned to.
func (n *Node) IsGreenStreet(phase uint8) (bool, error) {
	green, err := n.IsGreen()
	if err != nil {
		return false, err
	}
	if phase == 0 {
		return green, nil
	}
	return !green, nil
}

// CycleTime returns the configured cycle length, or zero if unconfigured.
func (n *Node) CycleTime() uint64 {
	if n.light == nil {
		return 0
	}
	return n.light.cycleTime
}

// Counter returns the light's current position within its cycle.
func (n *Node) Counter() uint64 {
	if n.light == nil {
		return 0
	}
	return n.light.counter
}
