// Package status provides a thread-safe status tracker for the
// plant-waterer daemon. It is read by the HTTP handlers and the LCD
// page renderer.
package status

import (
	"math"
	"sync"
	"time"

	"github.com/sweeney/plant-waterer/internal/logic"
)

// NetworkInfo contains network state as reported by pi-helper.
type NetworkInfo struct {
	Type       string
	IP         string
	Status     string
	Gateway    string
	WifiStatus string
	SSID       string
}

// Config contains daemon configuration for display.
type Config struct {
	PollMs        int64
	HeartbeatMs   int64
	Broker        string
	HTTPAddr      string
	PumpPin       int
	LowThreshold  int
	HighThreshold int
	MaxRunMs      int64
	RestMs        int64
	AnalysisMs    int64
	DryRaw        int
	WetRaw        int
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Phase       logic.Phase
	Moisture    int
	Raw         int
	Temperature float64 // NaN = sensor unavailable
	WantsWater  bool
	PumpOn      bool

	// Timers for the active phase; zero when not applicable.
	RunElapsed      time.Duration
	AbsorbRemaining time.Duration
	RestRemaining   time.Duration

	Counts        logic.EventCounts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Network       *NetworkInfo
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// TemperatureOK reports whether the temperature reading is usable.
func (s Snapshot) TemperatureOK() bool {
	return !math.IsNaN(s.Temperature)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
// Temperature starts as NaN until the first reading lands.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			Phase:       logic.PhaseIdle,
			Temperature: math.NaN(),
			StartTime:   startTime,
			Config:      cfg,
		},
	}
}

// Reading captures everything runLoop pushes into the tracker each
// cycle.
type Reading struct {
	Phase           logic.Phase
	Moisture        int
	Raw             int
	Temperature     float64
	WantsWater      bool
	PumpOn          bool
	RunElapsed      time.Duration
	AbsorbRemaining time.Duration
	RestRemaining   time.Duration
	Counts          logic.EventCounts
}

// Update sets the per-cycle state. Called from runLoop on every tick.
func (t *Tracker) Update(r Reading) {
	t.mu.Lock()
	t.snap.Phase = r.Phase
	t.snap.Moisture = r.Moisture
	t.snap.Raw = r.Raw
	t.snap.Temperature = r.Temperature
	t.snap.WantsWater = r.WantsWater
	t.snap.PumpOn = r.PumpOn
	t.snap.RunElapsed = r.RunElapsed
	t.snap.AbsorbRemaining = r.AbsorbRemaining
	t.snap.RestRemaining = r.RestRemaining
	t.snap.Counts = r.Counts
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetNetwork sets the network info.
func (t *Tracker) SetNetwork(info *NetworkInfo) {
	t.mu.Lock()
	t.snap.Network = info
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
