package sensor

import "testing"

func TestScalePercent(t *testing.T) {
	s := DefaultScale()

	tests := []struct {
		name string
		raw  int
		want int
	}{
		{"bone dry calibration point", 1023, 0},
		{"fully wet calibration point", 300, 100},
		{"drier than calibration clamps to 0", 1100, 0},
		{"wetter than calibration clamps to 100", 150, 100},
		{"midpoint", 661, 50},
		{"near dry", 1000, 3},
		{"near wet", 320, 97},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Percent(tt.raw); got != tt.want {
				t.Errorf("Percent(%d): got %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestScalePercentAlwaysInRange(t *testing.T) {
	s := DefaultScale()
	for raw := -100; raw <= 1200; raw++ {
		got := s.Percent(raw)
		if got < 0 || got > 100 {
			t.Fatalf("Percent(%d) = %d out of [0,100]", raw, got)
		}
	}
}

func TestScaleZeroSpan(t *testing.T) {
	s := Scale{DryRaw: 500, WetRaw: 500}
	if got := s.Percent(500); got != 0 {
		t.Errorf("degenerate calibration should read 0, got %d", got)
	}
}

func TestFakeReaderRepeatsLastSample(t *testing.T) {
	f := NewFakeReader([]Sample{
		Percent(25, 21.0),
		Percent(46, 21.0),
	})

	s, err := f.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Moisture != 25 {
		t.Errorf("sample 0: got %d, want 25", s.Moisture)
	}

	for i := 0; i < 3; i++ {
		s, err = f.Read()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Moisture != 46 {
			t.Errorf("read %d: got %d, want 46 (last sample repeats)", i+1, s.Moisture)
		}
	}
}

func TestFakeReaderNoSamples(t *testing.T) {
	f := NewFakeReader(nil)
	if _, err := f.Read(); err == nil {
		t.Error("expected error with no samples")
	}
}

func TestPercentHelperRawPlausible(t *testing.T) {
	s := Percent(50, 20.0)
	if s.Moisture != 50 {
		t.Errorf("moisture: got %d, want 50", s.Moisture)
	}
	if got := DefaultScale().Percent(s.Raw); got < 49 || got > 51 {
		t.Errorf("derived raw %d maps back to %d, want ~50", s.Raw, got)
	}
}
