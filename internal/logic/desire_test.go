package logic

import "testing"

func TestDesireStartsFalse(t *testing.T) {
	d := NewDesire(DefaultConfig())
	if d.WantsWater() {
		t.Error("new desire should not want water")
	}
}

func TestDesireLowThresholdSets(t *testing.T) {
	d := NewDesire(DefaultConfig())

	if got := d.Update(30); !got {
		t.Error("moisture at low threshold should set wantsWater")
	}

	d = NewDesire(DefaultConfig())
	if got := d.Update(5); !got {
		t.Error("moisture below low threshold should set wantsWater")
	}
}

func TestDesireHighThresholdClears(t *testing.T) {
	d := NewDesire(DefaultConfig())
	d.Update(20) // set

	if got := d.Update(45); got {
		t.Error("moisture at high threshold should clear wantsWater")
	}

	d = NewDesire(DefaultConfig())
	d.Update(20)
	if got := d.Update(80); got {
		t.Error("moisture above high threshold should clear wantsWater")
	}
}

// TestDesireDeadBand checks the hysteresis invariant: every reading
// strictly between the thresholds leaves the flag unchanged, whichever
// way it was set.
func TestDesireDeadBand(t *testing.T) {
	cfg := DefaultConfig()

	for _, prior := range []bool{true, false} {
		for m := cfg.LowThreshold + 1; m < cfg.HighThreshold; m++ {
			d := NewDesire(cfg)
			d.set(prior)
			if got := d.Update(m); got != prior {
				t.Errorf("moisture %d with prior=%v: got %v, want unchanged", m, prior, got)
			}
		}
	}
}

func TestDesireOscillationSuppressed(t *testing.T) {
	d := NewDesire(DefaultConfig())

	// Dries out, then hovers just above the low threshold.
	d.Update(25)
	for _, m := range []int{31, 35, 40, 44, 31} {
		if !d.Update(m) {
			t.Fatalf("moisture %d inside dead band cleared wantsWater", m)
		}
	}

	// Only reaching the high threshold clears it.
	if d.Update(45) {
		t.Error("moisture 45 should clear wantsWater")
	}
}
