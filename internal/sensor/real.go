package sensor

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// DefaultADCAddr is the I2C address of the analog hat carrying the
// moisture probe.
const DefaultADCAddr = 0x08

// DefaultTempPath is the sysfs node of the DHT kernel driver, exporting
// temperature in millidegrees.
const DefaultTempPath = "/sys/bus/iio/devices/iio:device0/in_temp_input"

// RealReader reads the moisture probe through an I2C ADC and the
// temperature through the DHT sysfs node.
type RealReader struct {
	bus      i2c.BusCloser
	dev      i2c.Dev
	channel  byte
	scale    Scale
	tempPath string
}

// NewRealReader opens the I2C bus and prepares the ADC device.
// busName may be empty to use the first available bus.
func NewRealReader(busName string, addr uint16, channel int, scale Scale, tempPath string) (*RealReader, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}

	return &RealReader{
		bus:      bus,
		dev:      i2c.Dev{Bus: bus, Addr: addr},
		channel:  byte(channel),
		scale:    scale,
		tempPath: tempPath,
	}, nil
}

// Read returns the current moisture and temperature sample.
// A failed temperature read yields NaN, never an error: temperature is
// report-only and must not stall the control loop.
func (r *RealReader) Read() (Sample, error) {
	raw, err := r.readRaw()
	if err != nil {
		return Sample{}, fmt.Errorf("read moisture adc: %w", err)
	}

	return Sample{
		Raw:         raw,
		Moisture:    r.scale.Percent(raw),
		Temperature: r.readTemperature(),
	}, nil
}

// readRaw fetches one 10-bit conversion for the probe's channel.
// The hat exposes raw readings at register 0x10 + channel, little-endian.
func (r *RealReader) readRaw() (int, error) {
	write := []byte{0x10 + r.channel}
	read := make([]byte, 2)
	if err := r.dev.Tx(write, read); err != nil {
		return 0, err
	}
	return int(binary.LittleEndian.Uint16(read)), nil
}

func (r *RealReader) readTemperature() float64 {
	data, err := os.ReadFile(r.tempPath)
	if err != nil {
		return math.NaN()
	}
	milli, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return math.NaN()
	}
	return float64(milli) / 1000.0
}

// Close releases the I2C bus.
func (r *RealReader) Close() error {
	return r.bus.Close()
}
