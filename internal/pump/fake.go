package pump

// FakeDriver records pump commands for test assertions.
type FakeDriver struct {
	// History holds every Set value in order.
	History []bool

	// On is the current logical state.
	On bool

	// SetError, if set, will be returned by Set.
	SetError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeDriver creates a FakeDriver, pump off.
func NewFakeDriver() *FakeDriver {
	return &FakeDriver{}
}

// Set records the command.
func (f *FakeDriver) Set(on bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.On = on
	f.History = append(f.History, on)
	return nil
}

// Close de-energizes and marks the driver closed.
func (f *FakeDriver) Close() error {
	f.On = false
	f.Closed = true
	return nil
}

// Reset clears recorded history.
func (f *FakeDriver) Reset() {
	f.History = nil
	f.On = false
	f.SetError = nil
	f.Closed = false
}
