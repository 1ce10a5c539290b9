// Package sensor reads the soil-moisture probe and the air-temperature
// sensor. The real implementation talks to an I2C ADC and a sysfs
// thermal node; the fake allows testing without hardware.
package sensor

// Sample is one reading of both sensors.
type Sample struct {
	// Raw is the ADC value straight off the moisture probe.
	Raw int
	// Moisture is Raw mapped to a percent in [0, 100].
	Moisture int
	// Temperature is in degrees Celsius. NaN when the temperature
	// sensor read failed; moisture is still valid in that case.
	Temperature float64
}

// Reader reads the plant sensors.
type Reader interface {
	// Read returns the current sample. An error means the moisture
	// probe itself could not be read; no decision should be made on
	// that cycle.
	Read() (Sample, error)

	// Close releases sensor resources.
	Close() error
}

// Reference calibration for the capacitive probe: ADC value in air
// (bone dry) and fully submerged.
const (
	DefaultDryRaw = 1023
	DefaultWetRaw = 300
)
