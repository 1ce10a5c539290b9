//go:build linux

package pump

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealDriver drives the relay through the Linux GPIO character device.
type RealDriver struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// NewRealDriver requests the relay pin as an output, de-energized.
// The relay is active-low: line high = pump off. Requesting the line
// high up front guarantees the fail-safe start state.
func NewRealDriver(pin int) (*RealDriver, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(1))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request pump pin %d: %w", pin, err)
	}

	return &RealDriver{chip: chip, line: line}, nil
}

// Set energizes or de-energizes the pump. Logical on = line low.
func (d *RealDriver) Set(on bool) error {
	value := 1
	if on {
		value = 0
	}
	if err := d.line.SetValue(value); err != nil {
		return fmt.Errorf("set pump pin: %w", err)
	}
	return nil
}

// Close de-energizes the pump before releasing the line, so a daemon
// shutdown can never leave the relay stuck on.
func (d *RealDriver) Close() error {
	var errs []error

	if d.line != nil {
		if err := d.line.SetValue(1); err != nil {
			errs = append(errs, fmt.Errorf("de-energize pump: %w", err))
		}
		if err := d.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close pump pin: %w", err))
		}
	}
	if d.chip != nil {
		if err := d.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
