package parallax

// Settings holds the live values a control panel edits and the frame driver
// reads. The panel and the App share one *Settings.
//
// Each field has a single writer at a time and is read once per frame on the
// same goroutine, so no locking is done. Callers that edit Settings from
// another goroutine must synchronize themselves.
type Settings struct {
	heightScale float64
	heightStep  float64
}

// NewSettings creates settings with the initial height scale and the step
// used by AdjustHeightScale.
func NewSettings(heightScale, heightStep float64) *Settings {
	return &Settings{heightScale: heightScale, heightStep: heightStep}
}

// HeightScale returns the parallax height scale.
func (s *Settings) HeightScale() float64 {
	return s.heightScale
}

// SetHeightScale replaces the parallax height scale. It takes effect on the
// next rendered frame.
func (s *Settings) SetHeightScale(v float64) {
	s.heightScale = v
}

// HeightStep returns the increment used by AdjustHeightScale.
func (s *Settings) HeightStep() float64 {
	return s.heightStep
}

// AdjustHeightScale moves the height scale by steps increments, stopping at 0.
func (s *Settings) AdjustHeightScale(steps int) {
	s.heightScale = max(0, s.heightScale+float64(steps)*s.heightStep)
}
