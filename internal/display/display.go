// Package display renders the 16x2 LCD status rotation. Page building
// is pure; the Screen interface abstracts the physical LCD so the
// renderer is testable without hardware.
package display

import (
	"fmt"
	"time"

	"github.com/sweeney/plant-waterer/internal/logic"
	"github.com/sweeney/plant-waterer/internal/status"
)

// Cols is the character width of the LCD.
const Cols = 16

// Page is one 16x2 frame, both lines padded to Cols.
type Page [2]string

// Screen displays pages on a physical or fake LCD.
type Screen interface {
	Show(p Page) error
	Close() error
}

// Mood returns the plant's one-line verdict for a moisture percent.
// Bands are deliberately uneven: the dry end gets finer granularity
// because that's where action is needed.
func Mood(moisture int) string {
	switch {
	case moisture > 80:
		return "I'm drowning :O"
	case moisture > 60:
		return "Too soggy :|"
	case moisture > 40:
		return "I'm happy :)"
	case moisture > 30:
		return "I'm thirsty :/"
	case moisture > 15:
		return "Water me now :("
	default:
		return "I'm dying D:"
	}
}

// Pages builds the three-page rotation for the current snapshot:
// plant mood, sensor data, system state.
func Pages(snap status.Snapshot) []Page {
	return []Page{
		moodPage(snap),
		sensorPage(snap),
		systemPage(snap),
	}
}

func moodPage(snap status.Snapshot) Page {
	if snap.Phase == logic.PhaseAbsorbing {
		return pad("Water absorbing", "Wait for checkup")
	}
	return pad("Your plant says:", Mood(snap.Moisture))
}

func sensorPage(snap status.Snapshot) Page {
	temp := "Temp: Error"
	if snap.TemperatureOK() {
		temp = fmt.Sprintf("Temp: %.1fC", snap.Temperature)
	}

	if snap.Phase == logic.PhaseAbsorbing {
		return pad(temp, "Stabilizing...")
	}
	return pad(temp, fmt.Sprintf("Moisture: %d%%", snap.Moisture))
}

func systemPage(snap status.Snapshot) Page {
	switch snap.Phase {
	case logic.PhaseWatering:
		return pad("Pump: ON", fmt.Sprintf("Watering %ds", int(snap.RunElapsed.Seconds())))
	case logic.PhaseAbsorbing:
		return pad("Pump: OFF", fmt.Sprintf("Checking in %ds", ceilSeconds(snap.AbsorbRemaining)))
	}

	if snap.WantsWater {
		if snap.RestRemaining > 0 {
			return pad("Pump: OFF", fmt.Sprintf("Resting %ds", ceilSeconds(snap.RestRemaining)))
		}
		return pad("Pump: OFF", "Preparing water")
	}
	return pad("Pump: OFF", "No need")
}

// ceilSeconds rounds up so the countdown never shows 0 while time is
// actually left.
func ceilSeconds(d time.Duration) int {
	s := int(d / time.Second)
	if d%time.Second != 0 {
		s++
	}
	return s
}

func pad(top, bottom string) Page {
	return Page{padLine(top), padLine(bottom)}
}

func padLine(s string) string {
	if len(s) > Cols {
		return s[:Cols]
	}
	for len(s) < Cols {
		s += " "
	}
	return s
}
