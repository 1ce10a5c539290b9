package logic

import "time"

// Machine is the irrigation state machine. It owns the pump decision and
// the three phases (Idle, Watering, Absorbing) and enforces the safety
// timers: maximum continuous run time, minimum rest between runs, and
// the post-watering absorption window.
//
// The phases are evaluated in a fixed order (Absorbing, then Watering,
// then Idle) and the first matching rule fires, so at most one timer is
// ever active.
type Machine struct {
	cfg   Config
	phase Phase

	run    Window // valid while PhaseWatering
	absorb Window // valid while PhaseAbsorbing

	// lastWateringEnd is valid once hasWatered is true; it anchors the
	// minimum rest period.
	lastWateringEnd time.Time
	hasWatered      bool
}

// NewMachine creates a Machine in Idle with no watering history.
// A (re)start always begins here: the pump defaults off.
func NewMachine(cfg Config) *Machine {
	return &Machine{cfg: cfg, phase: PhaseIdle}
}

// Phase returns the current operating phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// PumpRunning reports whether the machine currently holds the pump on.
func (m *Machine) PumpRunning() bool {
	return m.phase == PhaseWatering
}

// RunElapsed returns how long the pump has been on. Zero outside
// Watering.
func (m *Machine) RunElapsed(now time.Time) time.Duration {
	if m.phase != PhaseWatering {
		return 0
	}
	return m.run.Elapsed(now)
}

// AbsorbRemaining returns the time left in the absorption window. Zero
// outside Absorbing.
func (m *Machine) AbsorbRemaining(now time.Time) time.Duration {
	if m.phase != PhaseAbsorbing {
		return 0
	}
	return m.absorb.Remaining(now)
}

// RestRemaining returns the rest period left before a new watering run
// may start. Zero if no run has completed yet or the period elapsed.
func (m *Machine) RestRemaining(now time.Time) time.Duration {
	if !m.hasWatered {
		return 0
	}
	return startWindow(m.lastWateringEnd, m.cfg.MinRestPeriod).Remaining(now)
}

// Tick advances the state machine by one control cycle and returns the
// pump command plus an event describing any decision taken. The returned
// event is nil when nothing noteworthy happened (steady state).
//
// Tick must be called exactly once per cycle, after the desire flag has
// been updated for the same moisture reading.
func (m *Machine) Tick(now time.Time, moisture int, wantsWater bool) (PumpCommand, *Event) {
	switch m.phase {
	case PhaseAbsorbing:
		return m.tickAbsorbing(now, moisture)
	case PhaseWatering:
		return m.tickWatering(now, moisture, wantsWater)
	default:
		return m.tickIdle(now, moisture, wantsWater)
	}
}

func (m *Machine) tickAbsorbing(now time.Time, moisture int) (PumpCommand, *Event) {
	if !m.absorb.HasElapsed(now) {
		// Window still open: no new decision, pump stays off.
		return PumpUnchanged, nil
	}

	// Window expired: the reading has stabilized, re-check against the
	// low threshold. Exactly the threshold counts as still dry.
	sufficient := moisture > m.cfg.LowThreshold
	m.phase = PhaseIdle
	return PumpUnchanged, &Event{
		Timestamp:  now,
		Type:       EventAnalysisCompleted,
		Moisture:   moisture,
		Sufficient: sufficient,
	}
}

func (m *Machine) tickWatering(now time.Time, moisture int, wantsWater bool) (PumpCommand, *Event) {
	satisfied := !wantsWater || moisture >= m.cfg.HighThreshold
	timedOut := m.run.HasElapsed(now)
	if !satisfied && !timedOut {
		return PumpUnchanged, nil
	}

	reason := StopSatisfied
	if !satisfied {
		reason = StopTimeout
	}

	m.phase = PhaseAbsorbing
	m.absorb = startWindow(now, m.cfg.AnalysisWindow)
	m.lastWateringEnd = now
	m.hasWatered = true
	return PumpOff, &Event{
		Timestamp: now,
		Type:      EventWateringStopped,
		Moisture:  moisture,
		Reason:    reason,
	}
}

func (m *Machine) tickIdle(now time.Time, moisture int, wantsWater bool) (PumpCommand, *Event) {
	if !wantsWater || moisture > m.cfg.LowThreshold {
		return PumpUnchanged, nil
	}

	if remaining := m.RestRemaining(now); remaining > 0 {
		// Rest period not elapsed: reject, don't queue. The next cycle
		// re-evaluates from scratch.
		return PumpUnchanged, &Event{
			Timestamp: now,
			Type:      EventWateringDeferred,
			Moisture:  moisture,
			Remaining: remaining,
		}
	}

	m.phase = PhaseWatering
	m.run = startWindow(now, m.cfg.MaxRunTime)
	return PumpOn, &Event{
		Timestamp: now,
		Type:      EventWateringStarted,
		Moisture:  moisture,
	}
}
