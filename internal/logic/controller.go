package logic

import "time"

// Controller glues the desire evaluator to the state machine and keeps
// the bookkeeping the peripherals need: event counts, uptime, heartbeat
// pacing, and the absorption-analysis override of the desire flag.
type Controller struct {
	cfg    Config
	desire *Desire
	m      *Machine

	startTime     time.Time
	counts        EventCounts
	lastHeartbeat time.Time
}

// NewController creates a Controller with everything in its start state:
// Idle, pump off, no desire, no history. startTime anchors uptime for
// heartbeats.
func NewController(cfg Config, startTime time.Time) *Controller {
	return &Controller{
		cfg:           cfg,
		desire:        NewDesire(cfg),
		m:             NewMachine(cfg),
		startTime:     startTime,
		lastHeartbeat: startTime,
	}
}

// Process runs one control cycle: desire evaluation first, then the
// state machine, then the analysis override if the absorption window
// just closed. Returns the pump command and the events to emit.
//
// sample.Temperature is carried for reporting only; it never reaches
// the decision path.
func (c *Controller) Process(sample Sample) (PumpCommand, []Event) {
	wantsWater := c.desire.Update(sample.Moisture)

	cmd, event := c.m.Tick(sample.Time, sample.Moisture, wantsWater)
	if event == nil {
		return cmd, nil
	}

	switch event.Type {
	case EventWateringStarted:
		c.counts.Started++
	case EventWateringDeferred:
		c.counts.Deferred++
	case EventWateringStopped:
		if event.Reason == StopTimeout {
			c.counts.Timeouts++
		} else {
			c.counts.Satisfied++
		}
	case EventAnalysisCompleted:
		c.counts.Analyses++
		if !event.Sufficient {
			c.counts.Insufficient++
		}
		// The analysis verdict bypasses hysteresis: a confirmed-dry
		// plant wants water even if the reading sits in the dead band.
		c.desire.set(!event.Sufficient)
	}

	return cmd, []Event{*event}
}

// Phase returns the state machine's current phase.
func (c *Controller) Phase() Phase {
	return c.m.Phase()
}

// WantsWater returns the current desire flag.
func (c *Controller) WantsWater() bool {
	return c.desire.WantsWater()
}

// PumpRunning reports whether the pump is held on.
func (c *Controller) PumpRunning() bool {
	return c.m.PumpRunning()
}

// RunElapsed returns how long the current watering run has lasted.
func (c *Controller) RunElapsed(now time.Time) time.Duration {
	return c.m.RunElapsed(now)
}

// AbsorbRemaining returns the time left in the absorption window.
func (c *Controller) AbsorbRemaining(now time.Time) time.Duration {
	return c.m.AbsorbRemaining(now)
}

// RestRemaining returns the rest period left before a new run may start.
func (c *Controller) RestRemaining(now time.Time) time.Duration {
	return c.m.RestRemaining(now)
}

// Counts returns a copy of the event counts since startup.
func (c *Controller) Counts() EventCounts {
	return c.counts
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed
// since the last heartbeat (or startup). Returns nil if the interval
// has not elapsed or if interval is <= 0 (disabled).
func (c *Controller) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}

	if now.Sub(c.lastHeartbeat) < interval {
		return nil
	}

	c.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(c.startTime),
		Counts:    c.counts,
	}
}
