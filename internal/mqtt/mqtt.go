// Package mqtt provides MQTT publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/plant-waterer/internal/logic"
)

// Topic is the MQTT topic for irrigation decision events.
const Topic = "garden/plant-waterer/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "garden/plant-waterer/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends an irrigation event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event logic.Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Irrigation IrrigationPayload `json:"irrigation"`
}

// IrrigationPayload contains the decision event details. Reason,
// RemainingMs and Sufficient only appear for the event kinds that carry
// them.
type IrrigationPayload struct {
	Timestamp   string `json:"timestamp"`
	Event       string `json:"event"`
	MoisturePct int    `json:"moisture_pct"`
	Reason      string `json:"reason,omitempty"`
	RemainingMs int64  `json:"remaining_ms,omitempty"`
	Sufficient  *bool  `json:"sufficient,omitempty"`
}

// FormatPayload creates the JSON payload for an irrigation event.
func FormatPayload(event logic.Event) ([]byte, error) {
	p := IrrigationPayload{
		Timestamp:   event.Timestamp.UTC().Format(time.RFC3339),
		Event:       string(event.Type),
		MoisturePct: event.Moisture,
	}

	switch event.Type {
	case logic.EventWateringStopped:
		p.Reason = string(event.Reason)
	case logic.EventWateringDeferred:
		p.RemainingMs = event.Remaining.Milliseconds()
	case logic.EventAnalysisCompleted:
		s := event.Sufficient
		p.Sufficient = &s
	}

	return json.Marshal(Payload{Irrigation: p})
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
