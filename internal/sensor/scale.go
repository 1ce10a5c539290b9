package sensor

// Scale maps raw ADC values to moisture percent by linear interpolation
// between the dry and wet calibration points, saturating at 0 and 100.
// DryRaw is typically higher than WetRaw: a capacitive probe reads high
// in air and low in water.
type Scale struct {
	DryRaw int
	WetRaw int
}

// DefaultScale returns the reference probe calibration.
func DefaultScale() Scale {
	return Scale{DryRaw: DefaultDryRaw, WetRaw: DefaultWetRaw}
}

// Percent converts a raw reading to [0, 100].
func (s Scale) Percent(raw int) int {
	span := s.WetRaw - s.DryRaw
	if span == 0 {
		return 0
	}
	pct := (raw - s.DryRaw) * 100 / span
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
