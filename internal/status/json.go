package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event           string       `json:"event,omitempty"`
	Reason          string       `json:"reason,omitempty"`
	Phase           string       `json:"phase"`
	MoisturePct     int          `json:"moisture_pct"`
	MoistureRaw     int          `json:"moisture_raw"`
	TemperatureC    *float64     `json:"temperature_c"` // null = sensor unavailable
	WantsWater      bool         `json:"wants_water"`
	PumpOn          bool         `json:"pump_on"`
	RunElapsedMs    int64        `json:"run_elapsed_ms,omitempty"`
	AbsorbLeftMs    int64        `json:"absorb_remaining_ms,omitempty"`
	RestLeftMs      int64        `json:"rest_remaining_ms,omitempty"`
	UptimeSeconds   int64        `json:"uptime_seconds"`
	StartTime       string       `json:"start_time"`
	Timestamp       string       `json:"timestamp"`
	MQTT            MQTTStatus   `json:"mqtt"`
	Counts          CountsJSON   `json:"event_counts"`
	Network         *NetworkJSON `json:"network,omitempty"`
	Config          ConfigJSON   `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	Started      int `json:"waterings_started"`
	Deferred     int `json:"waterings_deferred"`
	Satisfied    int `json:"stopped_satisfied"`
	Timeouts     int `json:"stopped_timeout"`
	Analyses     int `json:"analyses"`
	Insufficient int `json:"analyses_insufficient"`
}

// NetworkJSON is the JSON representation of network info.
type NetworkJSON struct {
	Type       string `json:"type"`
	IP         string `json:"ip"`
	Status     string `json:"status"`
	Gateway    string `json:"gateway"`
	WifiStatus string `json:"wifi_status"`
	SSID       string `json:"ssid"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs        int64  `json:"poll_ms"`
	HeartbeatMs   int64  `json:"heartbeat_ms"`
	Broker        string `json:"broker"`
	HTTPAddr      string `json:"http_addr"`
	PumpPin       int    `json:"pump_pin"`
	LowThreshold  int    `json:"low_threshold_pct"`
	HighThreshold int    `json:"high_threshold_pct"`
	MaxRunMs      int64  `json:"max_run_ms"`
	RestMs        int64  `json:"min_rest_ms"`
	AnalysisMs    int64  `json:"analysis_window_ms"`
	DryRaw        int    `json:"calibration_dry_raw"`
	WetRaw        int    `json:"calibration_wet_raw"`
}

func buildInner(snap Snapshot) StatusInner {
	var temp *float64
	if snap.TemperatureOK() {
		t := snap.Temperature
		temp = &t
	}

	return StatusInner{
		Phase:         string(snap.Phase),
		MoisturePct:   snap.Moisture,
		MoistureRaw:   snap.Raw,
		TemperatureC:  temp,
		WantsWater:    snap.WantsWater,
		PumpOn:        snap.PumpOn,
		RunElapsedMs:  snap.RunElapsed.Milliseconds(),
		AbsorbLeftMs:  snap.AbsorbRemaining.Milliseconds(),
		RestLeftMs:    snap.RestRemaining.Milliseconds(),
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			Started:      snap.Counts.Started,
			Deferred:     snap.Counts.Deferred,
			Satisfied:    snap.Counts.Satisfied,
			Timeouts:     snap.Counts.Timeouts,
			Analyses:     snap.Counts.Analyses,
			Insufficient: snap.Counts.Insufficient,
		},
		Config: ConfigJSON{
			PollMs:        snap.Config.PollMs,
			HeartbeatMs:   snap.Config.HeartbeatMs,
			Broker:        snap.Config.Broker,
			HTTPAddr:      snap.Config.HTTPAddr,
			PumpPin:       snap.Config.PumpPin,
			LowThreshold:  snap.Config.LowThreshold,
			HighThreshold: snap.Config.HighThreshold,
			MaxRunMs:      snap.Config.MaxRunMs,
			RestMs:        snap.Config.RestMs,
			AnalysisMs:    snap.Config.AnalysisMs,
			DryRaw:        snap.Config.DryRaw,
			WetRaw:        snap.Config.WetRaw,
		},
	}
}

func buildNetwork(snap Snapshot, inner *StatusInner) {
	if snap.Network != nil {
		inner.Network = &NetworkJSON{
			Type:       snap.Network.Type,
			IP:         snap.Network.IP,
			Status:     snap.Network.Status,
			Gateway:    snap.Network.Gateway,
			WifiStatus: snap.Network.WifiStatus,
			SSID:       snap.Network.SSID,
		}
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	inner := buildInner(snap)
	buildNetwork(snap, &inner)

	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	buildNetwork(snap, &inner)

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
