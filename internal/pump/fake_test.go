package pump

import (
	"errors"
	"testing"
)

func TestFakeDriverRecordsHistory(t *testing.T) {
	f := NewFakeDriver()

	if f.On {
		t.Error("new driver should be off")
	}

	f.Set(true)
	f.Set(true)
	f.Set(false)

	if !f.History[0] || !f.History[1] || f.History[2] {
		t.Errorf("unexpected history: %v", f.History)
	}
	if f.On {
		t.Error("driver should be off after final Set(false)")
	}
}

func TestFakeDriverSetError(t *testing.T) {
	f := NewFakeDriver()
	f.SetError = errors.New("simulated error")

	if err := f.Set(true); err == nil {
		t.Error("expected error to be returned")
	}
	if f.On {
		t.Error("failed Set should not change state")
	}
}

func TestFakeDriverCloseDeenergizes(t *testing.T) {
	f := NewFakeDriver()
	f.Set(true)

	if err := f.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if f.On {
		t.Error("Close should de-energize the pump")
	}
	if !f.Closed {
		t.Error("should be closed after Close()")
	}
}
