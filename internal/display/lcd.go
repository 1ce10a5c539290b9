package display

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// DefaultLCDAddr is the usual PCF8574 backpack address.
const DefaultLCDAddr = 0x27

// PCF8574 backpack wiring: P0=RS, P1=RW, P2=EN, P3=backlight, P4..P7=D4..D7.
const (
	pinRS        = 0x01
	pinEN        = 0x04
	pinBacklight = 0x08
)

// LCD drives an HD44780 16x2 display behind a PCF8574 I2C backpack in
// 4-bit mode.
type LCD struct {
	bus i2c.BusCloser
	dev i2c.Dev
}

// NewLCD opens the I2C bus and initializes the display.
func NewLCD(busName string, addr uint16) (*LCD, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}

	l := &LCD{bus: bus, dev: i2c.Dev{Bus: bus, Addr: addr}}
	if err := l.init(); err != nil {
		bus.Close()
		return nil, fmt.Errorf("init lcd: %w", err)
	}
	return l, nil
}

// HD44780 4-bit initialization sequence, then: 2 lines 5x8, display on
// no cursor, entry left-to-right, clear.
func (l *LCD) init() error {
	time.Sleep(50 * time.Millisecond)
	for _, cmd := range []byte{0x33, 0x32, 0x28, 0x0C, 0x06, 0x01} {
		if err := l.command(cmd); err != nil {
			return err
		}
	}
	time.Sleep(2 * time.Millisecond) // clear needs extra settle time
	return nil
}

// Show writes both lines of the page.
func (l *LCD) Show(p Page) error {
	for row, addr := range []byte{0x80, 0xC0} {
		if err := l.command(addr); err != nil {
			return fmt.Errorf("set cursor row %d: %w", row, err)
		}
		for i := 0; i < len(p[row]) && i < Cols; i++ {
			if err := l.data(p[row][i]); err != nil {
				return fmt.Errorf("write row %d col %d: %w", row, i, err)
			}
		}
	}
	return nil
}

// Close clears the display and releases the bus. The backlight is left
// on so a powered board doesn't look dead.
func (l *LCD) Close() error {
	l.command(0x01)
	return l.bus.Close()
}

func (l *LCD) command(b byte) error {
	return l.write(b, 0)
}

func (l *LCD) data(b byte) error {
	return l.write(b, pinRS)
}

// write sends one byte as two nibbles, pulsing EN for each.
func (l *LCD) write(b, mode byte) error {
	for _, nibble := range []byte{b & 0xF0, (b << 4) & 0xF0} {
		out := nibble | mode | pinBacklight
		if err := l.tx(out); err != nil {
			return err
		}
		if err := l.tx(out | pinEN); err != nil {
			return err
		}
		time.Sleep(time.Microsecond)
		if err := l.tx(out); err != nil {
			return err
		}
		time.Sleep(50 * time.Microsecond)
	}
	return nil
}

func (l *LCD) tx(b byte) error {
	return l.dev.Tx([]byte{b}, nil)
}
