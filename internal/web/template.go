package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/plant-waterer/internal/display"
	"github.com/sweeney/plant-waterer/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"seconds": func(d time.Duration) int {
		return int(d.Truncate(time.Second).Seconds())
	},
	"mood": display.Mood,
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Plant Waterer</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.on { color: green; font-weight: bold; }
.off { color: #888; }
.absorbing { color: orange; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Plant Waterer</h1>

<h2>Plant</h2>
<table>
<tr><th>Mood</th><td>{{mood .Moisture}}</td></tr>
<tr><th>Moisture</th><td>{{.Moisture}}% (raw {{.Raw}})</td></tr>
<tr><th>Temperature</th><td>{{if .TemperatureOK}}{{printf "%.1f" .Temperature}}&deg;C{{else}}unavailable{{end}}</td></tr>
<tr><th>Wants water</th><td>{{if .WantsWater}}yes{{else}}no{{end}}</td></tr>
</table>

<h2>Irrigation</h2>
<table>
<tr><th>Phase</th><td class="{{if .PumpOn}}on{{else if eq (printf "%s" .Phase) "ABSORBING"}}absorbing{{else}}off{{end}}">{{.Phase}}</td></tr>
<tr><th>Pump</th><td class="{{if .PumpOn}}on{{else}}off{{end}}">{{if .PumpOn}}ON{{else}}OFF{{end}}</td></tr>
{{if .PumpOn}}<tr><th>Watering for</th><td>{{seconds .RunElapsed}}s</td></tr>{{end}}
{{if gt .AbsorbRemaining 0}}<tr><th>Absorption check in</th><td>{{seconds .AbsorbRemaining}}s</td></tr>{{end}}
{{if gt .RestRemaining 0}}<tr><th>Rest period left</th><td>{{seconds .RestRemaining}}s</td></tr>{{end}}
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
{{if .Network}}<tr><th>Network</th><td>{{.Network.Status}} ({{.Network.Type}}{{if .Network.SSID}} / {{.Network.SSID}}{{end}})</td></tr>
<tr><th>IP</th><td>{{.Network.IP}}</td></tr>{{end}}
</table>

<h2>Event Counts</h2>
<table>
<tr><th>Waterings started</th><td>{{.Counts.Started}}</td></tr>
<tr><th>Waterings deferred</th><td>{{.Counts.Deferred}}</td></tr>
<tr><th>Stopped satisfied</th><td>{{.Counts.Satisfied}}</td></tr>
<tr><th>Stopped on timeout</th><td>{{.Counts.Timeouts}}</td></tr>
<tr><th>Absorption analyses</th><td>{{.Counts.Analyses}} ({{.Counts.Insufficient}} insufficient)</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Thresholds</th><td>{{.Config.LowThreshold}}% / {{.Config.HighThreshold}}%</td></tr>
<tr><th>Max run</th><td>{{.Config.MaxRunMs}}ms</td></tr>
<tr><th>Min rest</th><td>{{.Config.RestMs}}ms</td></tr>
<tr><th>Analysis window</th><td>{{.Config.AnalysisMs}}ms</td></tr>
<tr><th>Calibration</th><td>dry={{.Config.DryRaw}} wet={{.Config.WetRaw}}</td></tr>
<tr><th>Heartbeat</th><td>{{if eq .Config.HeartbeatMs 0}}disabled{{else}}{{.Config.HeartbeatMs}}ms{{end}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but the template needs a plain field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
