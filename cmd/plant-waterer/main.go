// Command plant-waterer reads the soil sensors, decides when to water,
// drives the pump relay, and publishes decision events to MQTT.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sweeney/plant-waterer/internal/display"
	"github.com/sweeney/plant-waterer/internal/eventlog"
	"github.com/sweeney/plant-waterer/internal/logic"
	"github.com/sweeney/plant-waterer/internal/mqtt"
	"github.com/sweeney/plant-waterer/internal/pump"
	"github.com/sweeney/plant-waterer/internal/sensor"
	"github.com/sweeney/plant-waterer/internal/status"
	"github.com/sweeney/plant-waterer/internal/web"
)

type options struct {
	poll       time.Duration
	broker     string
	heartbeat  time.Duration
	httpAddr   string
	envFile    string
	eventLog   string
	printState bool

	i2cBus     string
	adcAddr    int
	adcChannel int
	tempPath   string
	pumpPin    int
	lcdAddr    int

	low     int
	high    int
	maxRun  time.Duration
	rest    time.Duration
	analyze time.Duration
	dryRaw  int
	wetRaw  int
}

func main() {
	var o options
	def := logic.DefaultConfig()

	flag.DurationVar(&o.poll, "poll", 3*time.Second, "Control cycle interval")
	flag.StringVar(&o.broker, "broker", "tcp://192.168.1.200:1883", "MQTT broker address")
	flag.DurationVar(&o.heartbeat, "heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	flag.StringVar(&o.httpAddr, "http", ":80", "HTTP status address (empty to disable)")
	flag.StringVar(&o.envFile, "env", "", "Env file with PLANT_* overrides (optional)")
	flag.StringVar(&o.eventLog, "event-log", "", "Decision-event log destination (empty for stdout)")
	flag.BoolVar(&o.printState, "print-state", false, "Print current sensor readings and exit")

	flag.StringVar(&o.i2cBus, "i2c-bus", "", "I2C bus name (empty for first available)")
	flag.IntVar(&o.adcAddr, "adc-addr", sensor.DefaultADCAddr, "I2C address of the moisture ADC")
	flag.IntVar(&o.adcChannel, "adc-channel", 0, "ADC channel of the moisture probe")
	flag.StringVar(&o.tempPath, "temp-path", sensor.DefaultTempPath, "sysfs node for the temperature sensor")
	flag.IntVar(&o.pumpPin, "pump-pin", pump.DefaultPin, "BCM pin number of the pump relay")
	flag.IntVar(&o.lcdAddr, "lcd-addr", display.DefaultLCDAddr, "I2C address of the LCD backpack (0 to disable)")

	flag.IntVar(&o.low, "low", def.LowThreshold, "Moisture percent at or below which watering is wanted")
	flag.IntVar(&o.high, "high", def.HighThreshold, "Moisture percent at or above which the plant is satisfied")
	flag.DurationVar(&o.maxRun, "max-run", def.MaxRunTime, "Maximum continuous pump run (safety cutoff)")
	flag.DurationVar(&o.rest, "rest", def.MinRestPeriod, "Minimum rest between watering runs")
	flag.DurationVar(&o.analyze, "absorb", def.AnalysisWindow, "Post-watering absorption window")
	flag.IntVar(&o.dryRaw, "dry-raw", sensor.DefaultDryRaw, "ADC reading of a bone-dry probe")
	flag.IntVar(&o.wetRaw, "wet-raw", sensor.DefaultWetRaw, "ADC reading of a submerged probe")

	flag.Parse()

	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil {
			log.Fatalf("fatal: load env file: %v", err)
		}
	}
	applyEnvOverrides(&o)

	if err := run(o); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

// PLANT_* env vars fill in anything not given on the command line.
// Flags win: a flag set explicitly is never overridden.
func applyEnvOverrides(o *options) {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	str := func(flagName, env string, dst *string) {
		if v := os.Getenv(env); v != "" && !set[flagName] {
			*dst = v
		}
	}
	num := func(flagName, env string, dst *int) {
		if v := os.Getenv(env); v != "" && !set[flagName] {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			} else {
				log.Printf("ignoring %s=%q: %v", env, v, err)
			}
		}
	}
	dur := func(flagName, env string, dst *time.Duration) {
		if v := os.Getenv(env); v != "" && !set[flagName] {
			if d, err := time.ParseDuration(v); err == nil {
				*dst = d
			} else {
				log.Printf("ignoring %s=%q: %v", env, v, err)
			}
		}
	}

	str("broker", "PLANT_BROKER", &o.broker)
	str("http", "PLANT_HTTP_ADDR", &o.httpAddr)
	str("i2c-bus", "PLANT_I2C_BUS", &o.i2cBus)
	str("temp-path", "PLANT_TEMP_PATH", &o.tempPath)
	dur("poll", "PLANT_POLL", &o.poll)
	dur("heartbeat", "PLANT_HEARTBEAT", &o.heartbeat)
	dur("max-run", "PLANT_MAX_RUN", &o.maxRun)
	dur("rest", "PLANT_REST", &o.rest)
	dur("absorb", "PLANT_ABSORB", &o.analyze)
	num("adc-addr", "PLANT_ADC_ADDR", &o.adcAddr)
	num("adc-channel", "PLANT_ADC_CHANNEL", &o.adcChannel)
	num("pump-pin", "PLANT_PUMP_PIN", &o.pumpPin)
	num("lcd-addr", "PLANT_LCD_ADDR", &o.lcdAddr)
	num("low", "PLANT_LOW_THRESHOLD", &o.low)
	num("high", "PLANT_HIGH_THRESHOLD", &o.high)
	num("dry-raw", "PLANT_DRY_RAW", &o.dryRaw)
	num("wet-raw", "PLANT_WET_RAW", &o.wetRaw)
}

func run(o options) error {
	scale := sensor.Scale{DryRaw: o.dryRaw, WetRaw: o.wetRaw}
	reader, err := sensor.NewRealReader(o.i2cBus, uint16(o.adcAddr), o.adcChannel, scale, o.tempPath)
	if err != nil {
		return fmt.Errorf("init sensors: %w", err)
	}
	defer reader.Close()

	// Print state mode
	if o.printState {
		s, err := reader.Read()
		if err != nil {
			return fmt.Errorf("read sensors: %w", err)
		}
		fmt.Printf("Moisture: %d%% (raw %d), Temp: %s\n", s.Moisture, s.Raw, tempString(s.Temperature))
		return nil
	}

	pumpDrv, err := pump.NewRealDriver(o.pumpPin)
	if err != nil {
		return fmt.Errorf("init pump: %w", err)
	}
	defer pumpDrv.Close()

	var screen display.Screen
	if o.lcdAddr != 0 {
		lcd, err := display.NewLCD(o.i2cBus, uint16(o.lcdAddr))
		if err != nil {
			// The plant still gets watered without its LCD.
			log.Printf("lcd unavailable, continuing without display: %v", err)
		} else {
			screen = lcd
			defer lcd.Close()
		}
	}

	sinkOut := io.Writer(os.Stdout)
	if o.eventLog != "" {
		f, err := os.OpenFile(o.eventLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open event log: %w", err)
		}
		defer f.Close()
		sinkOut = f
	}
	sink := eventlog.New(sinkOut)

	publisher := mqtt.NewRealPublisher(o.broker)
	defer publisher.Close()

	cfg := logic.Config{
		LowThreshold:   o.low,
		HighThreshold:  o.high,
		MaxRunTime:     o.maxRun,
		MinRestPeriod:  o.rest,
		AnalysisWindow: o.analyze,
	}

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:        o.poll.Milliseconds(),
		HeartbeatMs:   o.heartbeat.Milliseconds(),
		Broker:        o.broker,
		HTTPAddr:      o.httpAddr,
		PumpPin:       o.pumpPin,
		LowThreshold:  cfg.LowThreshold,
		HighThreshold: cfg.HighThreshold,
		MaxRunMs:      cfg.MaxRunTime.Milliseconds(),
		RestMs:        cfg.MinRestPeriod.Milliseconds(),
		AnalysisMs:    cfg.AnalysisWindow.Milliseconds(),
		DryRaw:        o.dryRaw,
		WetRaw:        o.wetRaw,
	})
	if net := readNetworkInfo(); net != nil {
		tracker.SetNetwork(net)
	}

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	// Start HTTP status server
	if o.httpAddr != "" {
		srv := web.New(o.httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", o.httpAddr)
	}

	log.Printf("started: poll=%v thresholds=%d/%d max-run=%v rest=%v absorb=%v broker=%s",
		o.poll, cfg.LowThreshold, cfg.HighThreshold, cfg.MaxRunTime, cfg.MinRestPeriod, cfg.AnalysisWindow, o.broker)

	ticker := time.NewTicker(o.poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(loopDeps{
		reader:    reader,
		pump:      pumpDrv,
		publisher: publisher,
		mqttConn:  publisher,
		sink:      sink,
		screen:    screen,
		tracker:   tracker,
	}, cfg, o.heartbeat, time.Now, ticker.C, sigCh)
}

// loopDeps carries the runLoop collaborators so tests can swap in fakes.
type loopDeps struct {
	reader    sensor.Reader
	pump      pump.Driver
	publisher mqtt.Publisher
	mqttConn  mqtt.ConnectionStatus
	sink      *eventlog.Sink
	screen    display.Screen
	tracker   *status.Tracker
}

func runLoop(deps loopDeps, cfg logic.Config, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	controller := logic.NewController(cfg, now())
	pageIdx := 0

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if deps.tracker != nil {
				if deps.mqttConn != nil {
					deps.tracker.SetMQTTConnected(deps.mqttConn.IsConnected())
				}
				snap := deps.tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := deps.publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			// Belt and braces: the driver Close also de-energizes, but
			// do it explicitly before unwinding.
			if err := deps.pump.Set(false); err != nil {
				log.Printf("pump off on shutdown: %v", err)
			}
			return nil

		case <-tick:
			t := now()
			s, err := deps.reader.Read()
			if err != nil {
				// No decision on a failed moisture read; the machine
				// holds its state until the next good sample.
				log.Printf("sensor read error: %v", err)
				continue
			}

			sample := logic.Sample{Time: t, Moisture: s.Moisture, Temperature: s.Temperature}
			cmd, events := controller.Process(sample)

			switch cmd {
			case logic.PumpOn:
				if err := deps.pump.Set(true); err != nil {
					log.Printf("pump on failed: %v", err)
				}
			case logic.PumpOff:
				if err := deps.pump.Set(false); err != nil {
					log.Printf("pump off failed: %v", err)
				}
			}

			for _, event := range events {
				log.Printf("event: %s (moisture=%d%% phase=%s)", event.Type, event.Moisture, controller.Phase())
				deps.sink.Event(event)
				if err := deps.publisher.Publish(event); err != nil {
					log.Printf("publish error: %v", err)
					// Don't crash on publish failure
				}
			}

			deps.sink.Cycle(sample, s.Raw, controller.Phase(), controller.WantsWater())

			if deps.tracker != nil {
				deps.tracker.Update(status.Reading{
					Phase:           controller.Phase(),
					Moisture:        s.Moisture,
					Raw:             s.Raw,
					Temperature:     s.Temperature,
					WantsWater:      controller.WantsWater(),
					PumpOn:          controller.PumpRunning(),
					RunElapsed:      controller.RunElapsed(t),
					AbsorbRemaining: controller.AbsorbRemaining(t),
					RestRemaining:   controller.RestRemaining(t),
					Counts:          controller.Counts(),
				})
				if deps.mqttConn != nil {
					deps.tracker.SetMQTTConnected(deps.mqttConn.IsConnected())
				}
			}

			// Check for heartbeat
			if hbData := controller.CheckHeartbeat(t, heartbeat); hbData != nil {
				log.Printf("heartbeat: uptime=%v started=%d deferred=%d satisfied=%d timeouts=%d",
					hbData.Uptime, hbData.Counts.Started, hbData.Counts.Deferred, hbData.Counts.Satisfied, hbData.Counts.Timeouts)

				hbEvent := mqtt.SystemEvent{
					Timestamp: hbData.Timestamp,
					Event:     "HEARTBEAT",
				}
				if deps.tracker != nil {
					// Refresh network info for heartbeat
					if net := readNetworkInfo(); net != nil {
						deps.tracker.SetNetwork(net)
					}
					snap := deps.tracker.Snapshot()
					hbEvent.RawPayload = status.FormatStatusEvent(snap, "HEARTBEAT", "")
				}
				if err := deps.publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}

			if deps.screen != nil && deps.tracker != nil {
				pages := display.Pages(deps.tracker.Snapshot())
				if err := deps.screen.Show(pages[pageIdx%len(pages)]); err != nil {
					log.Printf("display error: %v", err)
				}
				pageIdx++
			}
		}
	}
}

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

func readNetworkInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}

func tempString(v float64) string {
	if v != v { // NaN
		return "Error"
	}
	return fmt.Sprintf("%.1fC", v)
}
