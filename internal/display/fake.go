package display

// FakeScreen records shown pages for test assertions.
type FakeScreen struct {
	// Pages holds every page passed to Show, in order.
	Pages []Page

	// ShowError, if set, will be returned by Show.
	ShowError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeScreen creates a FakeScreen.
func NewFakeScreen() *FakeScreen {
	return &FakeScreen{}
}

// Show records the page.
func (f *FakeScreen) Show(p Page) error {
	if f.ShowError != nil {
		return f.ShowError
	}
	f.Pages = append(f.Pages, p)
	return nil
}

// Close marks the screen as closed.
func (f *FakeScreen) Close() error {
	f.Closed = true
	return nil
}

// Last returns the most recently shown page, or a zero Page.
func (f *FakeScreen) Last() Page {
	if len(f.Pages) == 0 {
		return Page{}
	}
	return f.Pages[len(f.Pages)-1]
}
