// Package widget holds the display-independent parts of the dashboard view:
// the refresh flash animation, row layout and chart geometry.
package widget

import "time"

const (
	// FadeOut dims the price while the refresh is in flight.
	FadeOut = 300 * time.Millisecond
	// Hold keeps "updated!" fully visible.
	Hold = 600 * time.Millisecond
	// Fade is the length of each fade-in or fade-out ramp.
	Fade = 200 * time.Millisecond

	dimmed = 0.25
)

// Flash animates the price readout after a timed refresh: the price dims
// for FadeOut, then comes back with an "updated!" label that stays for Hold
// and fades away.
type Flash struct {
	start  time.Time
	active bool
}

func (f *Flash) Trigger(now time.Time) {
	f.start = now
	f.active = true
}

// Active reports whether the animation still changes anything at now.
func (f *Flash) Active(now time.Time) bool {
	return f.active && now.Sub(f.start) < FadeOut+Hold+Fade
}

// PriceAlpha is the opacity of the price readout.
func (f *Flash) PriceAlpha(now time.Time) float64 {
	if !f.active {
		return 1
	}
	e := now.Sub(f.start)
	switch {
	case e < 0:
		return 1
	case e < FadeOut:
		return 1 - (1-dimmed)*ratio(e, FadeOut)
	case e < FadeOut+Fade:
		return dimmed + (1-dimmed)*ratio(e-FadeOut, Fade)
	default:
		return 1
	}
}

// UpdatedAlpha is the opacity of the "updated!" label.
func (f *Flash) UpdatedAlpha(now time.Time) float64 {
	if !f.active {
		return 0
	}
	e := now.Sub(f.start)
	switch {
	case e < FadeOut:
		return 0
	case e < FadeOut+Fade:
		return ratio(e-FadeOut, Fade)
	case e < FadeOut+Hold:
		return 1
	case e < FadeOut+Hold+Fade:
		return 1 - ratio(e-FadeOut-Hold, Fade)
	default:
		return 0
	}
}

func ratio(d, total time.Duration) float64 {
	return float64(d) / float64(total)
}
