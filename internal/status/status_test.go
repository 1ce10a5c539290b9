package status

import (
	"encoding/json"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sweeney/plant-waterer/internal/logic"
)

func testConfig() Config {
	return Config{
		PollMs:        3000,
		HeartbeatMs:   900000,
		Broker:        "tcp://192.168.1.200:1883",
		HTTPAddr:      ":80",
		PumpPin:       8,
		LowThreshold:  30,
		HighThreshold: 45,
		MaxRunMs:      10000,
		RestMs:        10000,
		AnalysisMs:    5000,
		DryRaw:        1023,
		WetRaw:        300,
	}
}

func TestNewTrackerDefaults(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tr := NewTracker(start, testConfig())

	snap := tr.Snapshot()
	if snap.Phase != logic.PhaseIdle {
		t.Errorf("expected IDLE, got %s", snap.Phase)
	}
	if snap.TemperatureOK() {
		t.Error("temperature should be unavailable before the first reading")
	}
	if snap.PumpOn {
		t.Error("pump should start off")
	}
	if !snap.StartTime.Equal(start) {
		t.Errorf("start time: got %v, want %v", snap.StartTime, start)
	}
}

func TestTrackerUpdate(t *testing.T) {
	tr := NewTracker(time.Now(), testConfig())

	tr.Update(Reading{
		Phase:       logic.PhaseWatering,
		Moisture:    22,
		Raw:         870,
		Temperature: 21.5,
		WantsWater:  true,
		PumpOn:      true,
		RunElapsed:  2 * time.Second,
		Counts:      logic.EventCounts{Started: 1},
	})

	snap := tr.Snapshot()
	if snap.Phase != logic.PhaseWatering {
		t.Errorf("phase: got %s, want WATERING", snap.Phase)
	}
	if snap.Moisture != 22 {
		t.Errorf("moisture: got %d, want 22", snap.Moisture)
	}
	if !snap.PumpOn {
		t.Error("pump should be on")
	}
	if snap.RunElapsed != 2*time.Second {
		t.Errorf("run elapsed: got %v, want 2s", snap.RunElapsed)
	}
	if snap.Counts.Started != 1 {
		t.Errorf("counts.Started: got %d, want 1", snap.Counts.Started)
	}
}

func TestTrackerConcurrentAccess(t *testing.T) {
	tr := NewTracker(time.Now(), testConfig())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			tr.Update(Reading{Moisture: n})
		}(i)
		go func() {
			defer wg.Done()
			_ = tr.Snapshot()
		}()
	}
	wg.Wait()
}

func TestFormatJSONTemperatureNull(t *testing.T) {
	tr := NewTracker(time.Now(), testConfig())
	tr.Update(Reading{Phase: logic.PhaseIdle, Moisture: 40, Temperature: math.NaN()})

	data := FormatJSON(tr.Snapshot())

	var parsed map[string]map[string]interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	inner := parsed["status"]
	if inner == nil {
		t.Fatal("missing status envelope")
	}
	if v, ok := inner["temperature_c"]; !ok || v != nil {
		t.Errorf("temperature_c should be null, got %v", v)
	}
	if inner["phase"] != "IDLE" {
		t.Errorf("phase: got %v, want IDLE", inner["phase"])
	}
}

func TestFormatJSONTemperatureValue(t *testing.T) {
	tr := NewTracker(time.Now(), testConfig())
	tr.Update(Reading{Moisture: 40, Temperature: 19.5})

	data := FormatJSON(tr.Snapshot())
	if !strings.Contains(string(data), `"temperature_c": 19.5`) {
		t.Errorf("expected temperature in output:\n%s", data)
	}
}

func TestFormatStatusEvent(t *testing.T) {
	tr := NewTracker(time.Now(), testConfig())

	data := FormatStatusEvent(tr.Snapshot(), "SHUTDOWN", "SIGTERM")

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Status.Event != "SHUTDOWN" {
		t.Errorf("event: got %q, want SHUTDOWN", parsed.Status.Event)
	}
	if parsed.Status.Reason != "SIGTERM" {
		t.Errorf("reason: got %q, want SIGTERM", parsed.Status.Reason)
	}
	if parsed.Status.Config.LowThreshold != 30 {
		t.Errorf("config low threshold: got %d, want 30", parsed.Status.Config.LowThreshold)
	}
}
