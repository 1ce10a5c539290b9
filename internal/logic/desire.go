package logic

// Desire holds the "plant wants water" flag with hysteresis between the
// low and high moisture thresholds. Readings strictly inside the dead
// band leave the flag unchanged, so a reading hovering near a single
// boundary can't toggle the pump.
type Desire struct {
	low, high  int
	wantsWater bool
}

// NewDesire creates a Desire evaluator. The flag starts false: a fresh
// start never wants water until a reading proves it.
func NewDesire(cfg Config) *Desire {
	return &Desire{low: cfg.LowThreshold, high: cfg.HighThreshold}
}

// Update folds a new moisture reading into the flag and returns the new
// value. Thresholds are inclusive on both sides.
func (d *Desire) Update(moisture int) bool {
	if moisture <= d.low {
		d.wantsWater = true
	} else if moisture >= d.high {
		d.wantsWater = false
	}
	return d.wantsWater
}

// WantsWater returns the current flag without updating it.
func (d *Desire) WantsWater() bool {
	return d.wantsWater
}

// set overrides the flag. Used by the controller when the absorption
// analysis produces a confirmed verdict that bypasses hysteresis.
func (d *Desire) set(v bool) {
	d.wantsWater = v
}
