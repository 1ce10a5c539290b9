// Package eventlog writes the structured decision-event stream. Each
// decision event and each cycle summary becomes one JSON line, so a
// monitoring process can consume the stream without scraping free-form
// text.
package eventlog

import (
	"io"
	"math"

	"github.com/rs/zerolog"

	"github.com/sweeney/plant-waterer/internal/logic"
)

// Sink emits decision events and cycle summaries as JSON lines.
type Sink struct {
	logger zerolog.Logger
}

// New creates a Sink writing to w (stdout, a file, or a serial device).
func New(w io.Writer) *Sink {
	return &Sink{
		logger: zerolog.New(w).With().Timestamp().Logger(),
	}
}

// Event logs one decision event.
func (s *Sink) Event(e logic.Event) {
	entry := s.logger.Info().
		Str("kind", "event").
		Str("event", string(e.Type)).
		Int("moisture_pct", e.Moisture).
		Time("decided_at", e.Timestamp)

	switch e.Type {
	case logic.EventWateringStopped:
		entry = entry.Str("reason", string(e.Reason))
	case logic.EventWateringDeferred:
		entry = entry.Dur("remaining", e.Remaining)
	case logic.EventAnalysisCompleted:
		entry = entry.Bool("sufficient", e.Sufficient)
	}

	entry.Msg("irrigation decision")
}

// Cycle logs one control-cycle summary: the raw and mapped readings and
// the resulting state. This is the per-sample record a grapher plots.
func (s *Sink) Cycle(sample logic.Sample, raw int, phase logic.Phase, wantsWater bool) {
	entry := s.logger.Debug().
		Str("kind", "cycle").
		Int("raw", raw).
		Int("moisture_pct", sample.Moisture).
		Str("phase", string(phase)).
		Bool("wants_water", wantsWater)

	if math.IsNaN(sample.Temperature) {
		entry = entry.Bool("temperature_ok", false)
	} else {
		entry = entry.Float64("temperature_c", sample.Temperature)
	}

	entry.Msg("cycle")
}
