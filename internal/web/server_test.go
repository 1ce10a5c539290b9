package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sweeney/plant-waterer/internal/logic"
	"github.com/sweeney/plant-waterer/internal/status"
)

func newTestServer(t *testing.T) (*httptest.Server, *status.Tracker) {
	t.Helper()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := status.Config{
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
	tr := status.NewTracker(start, cfg)
	srv := New(":0", tr)
	ts := httptest.NewServer(srv.httpServer.Handler)
	t.Cleanup(ts.Close)
	return ts, tr
}

func TestJSONEndpoint(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.Update(status.Reading{
		Phase:       logic.PhaseWatering,
		Moisture:    22,
		Raw:         870,
		Temperature: 21.5,
		WantsWater:  true,
		PumpOn:      true,
		RunElapsed:  3 * time.Second,
		Counts:      logic.EventCounts{Started: 4, Deferred: 1, Timeouts: 2},
	})
	tr.SetMQTTConnected(true)

	resp, err := http.Get(ts.URL + "/index.json")
	if err != nil {
		t.Fatalf("GET /index.json: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}

	var sj status.StatusJSON
	if err := json.NewDecoder(resp.Body).Decode(&sj); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}

	if sj.Status.Phase != "WATERING" {
		t.Errorf("phase: got %q, want WATERING", sj.Status.Phase)
	}
	if !sj.Status.PumpOn {
		t.Error("expected pump_on=true")
	}
	if sj.Status.MoisturePct != 22 {
		t.Errorf("moisture: got %d, want 22", sj.Status.MoisturePct)
	}
	if sj.Status.TemperatureC == nil || *sj.Status.TemperatureC != 21.5 {
		t.Errorf("temperature: got %v, want 21.5", sj.Status.TemperatureC)
	}
	if !sj.Status.MQTT.Connected {
		t.Error("expected MQTT.Connected=true")
	}
	if sj.Status.Counts.Started != 4 {
		t.Errorf("Counts.Started: got %d, want 4", sj.Status.Counts.Started)
	}
	if sj.Status.Config.LowThreshold != 30 {
		t.Errorf("Config.LowThreshold: got %d, want 30", sj.Status.Config.LowThreshold)
	}
}

func TestIndexHTML(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.Update(status.Reading{
		Phase:       logic.PhaseIdle,
		Moisture:    50,
		Raw:         661,
		Temperature: 19.0,
	})

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	html := string(body)

	for _, want := range []string{
		"Plant Waterer",
		"I'm happy :)",  // mood for 50%
		"50% (raw 661)", // moisture line
		"IDLE",
		"tcp://192.168.1.200:1883",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("index missing %q", want)
		}
	}
}

func TestIndexHTMLTemperatureUnavailable(t *testing.T) {
	ts, _ := newTestServer(t)

	// No update: tracker starts with NaN temperature.
	resp, err := http.Get(ts.URL + "/index.html")
	if err != nil {
		t.Fatalf("GET /index.html: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "unavailable") {
		t.Error("expected temperature to render as unavailable")
	}
}

func TestNotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/nope")
	if err != nil {
		t.Fatalf("GET /nope: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 404 {
		t.Errorf("status: got %d, want 404", resp.StatusCode)
	}
}
