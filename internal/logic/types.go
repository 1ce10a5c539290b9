// Package logic contains the pure watering decision core: the hysteresis
// desire evaluator and the irrigation state machine.
// This package has NO external dependencies (no GPIO, I2C, MQTT, OS, or
// time.Sleep). Time is always injectable via time.Time parameters.
package logic

import "time"

// Phase is the operating state of the irrigation state machine.
type Phase string

const (
	PhaseIdle      Phase = "IDLE"
	PhaseWatering  Phase = "WATERING"
	PhaseAbsorbing Phase = "ABSORBING"
)

// PumpCommand is the actuation decision produced by a tick.
type PumpCommand int

const (
	PumpUnchanged PumpCommand = iota
	PumpOn
	PumpOff
)

// String returns the wire/display name of the command.
func (c PumpCommand) String() string {
	switch c {
	case PumpOn:
		return "ON"
	case PumpOff:
		return "OFF"
	}
	return "UNCHANGED"
}

// EventType identifies a decision event emitted by the state machine.
type EventType string

const (
	EventWateringStarted   EventType = "WATERING_STARTED"
	EventWateringDeferred  EventType = "WATERING_DEFERRED"
	EventWateringStopped   EventType = "WATERING_STOPPED"
	EventAnalysisCompleted EventType = "ANALYSIS_COMPLETED"
)

// StopReason records why a watering run ended.
type StopReason string

const (
	// StopSatisfied: the desire flag cleared or moisture reached the
	// high threshold.
	StopSatisfied StopReason = "SATISFIED"
	// StopTimeout: the maximum continuous run time elapsed. This is a
	// designed trip condition (stuck-dry sensor, empty reservoir), not
	// an error.
	StopTimeout StopReason = "TIMEOUT"
)

// Event is a single decision event to be published and logged.
// Reason, Remaining and Sufficient are only meaningful for the event
// types that carry them.
type Event struct {
	Timestamp time.Time
	Type      EventType
	Moisture  int

	// Reason is set for WATERING_STOPPED.
	Reason StopReason
	// Remaining is set for WATERING_DEFERRED: rest period left.
	Remaining time.Duration
	// Sufficient is set for ANALYSIS_COMPLETED: true if the plant no
	// longer needs water after the absorption window.
	Sufficient bool
}

// Config holds the decision thresholds and safety timers.
// Fixed at start; the core never mutates it.
type Config struct {
	// LowThreshold is the moisture percent at or below which the plant
	// wants water.
	LowThreshold int
	// HighThreshold is the moisture percent at or above which the plant
	// is satisfied.
	HighThreshold int
	// MaxRunTime is the safety cutoff for a continuous pump run.
	MaxRunTime time.Duration
	// MinRestPeriod is the minimum gap between the end of one watering
	// run and the start of the next.
	MinRestPeriod time.Duration
	// AnalysisWindow is the post-watering absorption period before the
	// moisture reading is trusted again.
	AnalysisWindow time.Duration
}

// DefaultConfig returns the reference calibration.
func DefaultConfig() Config {
	return Config{
		LowThreshold:   30,
		HighThreshold:  45,
		MaxRunTime:     10 * time.Second,
		MinRestPeriod:  10 * time.Second,
		AnalysisWindow: 5 * time.Second,
	}
}

// Sample is one control cycle's worth of sensor input.
// Temperature is report-only and never affects watering decisions;
// NaN means the temperature sensor read failed.
type Sample struct {
	Time        time.Time
	Moisture    int
	Temperature float64
}

// EventCounts tracks the number of each decision outcome since startup.
type EventCounts struct {
	Started      int
	Deferred     int
	Satisfied    int
	Timeouts     int
	Analyses     int
	Insufficient int
}

// HeartbeatData contains information for a periodic heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counts    EventCounts
}
