// Package pump drives the water-pump relay with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package pump

// Driver controls the pump relay.
type Driver interface {
	// Set energizes (true) or de-energizes (false) the pump.
	// The relay is active-low on the reference hardware; callers work
	// in logical terms and the driver handles the inversion.
	Set(on bool) error

	// Close de-energizes the pump and releases GPIO resources.
	Close() error
}

// DefaultPin is the BCM pin number wired to the relay module.
const DefaultPin = 8
