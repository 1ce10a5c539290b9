package sensor

import "errors"

// FakeReader is a test double that returns scripted samples.
type FakeReader struct {
	// Samples contains scripted readings. Each call to Read() consumes
	// the next sample; when exhausted, the last one repeats.
	Samples []Sample

	// index tracks current position in Samples
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// NewFakeReader creates a FakeReader with the given samples.
func NewFakeReader(samples []Sample) *FakeReader {
	return &FakeReader{Samples: samples}
}

// Read returns the next scripted sample.
func (f *FakeReader) Read() (Sample, error) {
	if f.ReadError != nil {
		return Sample{}, f.ReadError
	}

	if len(f.Samples) == 0 {
		return Sample{}, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	return sample, nil
}

// Close marks the reader as closed.
func (f *FakeReader) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the reader to the beginning of samples.
func (f *FakeReader) Reset() {
	f.index = 0
	f.Closed = false
}

// Percent is a convenience for building fake samples from a moisture
// percent alone, with a plausible raw value derived from the default
// calibration.
func Percent(moisture int, temperature float64) Sample {
	s := DefaultScale()
	raw := s.DryRaw + moisture*(s.WetRaw-s.DryRaw)/100
	return Sample{Raw: raw, Moisture: moisture, Temperature: temperature}
}
