// Package tv composes the monoscope test card and the analog television
// effects drawn over it.
package tv

import (
	"math/rand"

	"github.com/jypelle/monoscope/internal/raster"
)

// Screen receives rectangles of pixels. x1 and y1 are exclusive.
type Screen interface {
	DrawBitmap(x0, y0, x1, y1 int, pix []raster.Color) error
}

type Options struct {
	Width  int
	Height int

	NoiseLines    int
	FlickerLines  int
	FlickerPeriod int
	FlickerCycle  int

	Caption string
}

var DefaultOptions = Options{
	Width:         320,
	Height:        240,
	NoiseLines:    20,
	FlickerLines:  5,
	FlickerPeriod: 30,
	FlickerCycle:  100,
}

// Set draws the pattern and effects onto a screen. It is owned by a single
// goroutine: the flicker cycle counter lives here.
type Set struct {
	screen Screen
	pool   *raster.Pool
	rng    *rand.Rand
	opts   Options

	flickerCycle int
}

func NewSet(screen Screen, pool *raster.Pool, rng *rand.Rand, opts Options) *Set {
	if opts.Width <= 0 {
		opts.Width = DefaultOptions.Width
	}
	if opts.Height <= 0 {
		opts.Height = DefaultOptions.Height
	}
	if opts.NoiseLines <= 0 {
		opts.NoiseLines = DefaultOptions.NoiseLines
	}
	if opts.FlickerLines <= 0 {
		opts.FlickerLines = DefaultOptions.FlickerLines
	}
	if opts.FlickerPeriod <= 0 {
		opts.FlickerPeriod = DefaultOptions.FlickerPeriod
	}
	if opts.FlickerCycle <= 0 {
		opts.FlickerCycle = DefaultOptions.FlickerCycle
	}
	if pool == nil {
		pool = raster.NewPool(0)
	}
	return &Set{
		screen: screen,
		pool:   pool,
		rng:    rng,
		opts:   opts,
	}
}

func (s *Set) Options() Options {
	return s.opts
}

// FlickerCycle returns the current value of the flicker cycle counter.
func (s *Set) FlickerCycle() int {
	return s.flickerCycle
}

// Apply runs the given effect.
func (s *Set) Apply(effect Effect) error {
	switch effect {
	case NoiseEffect:
		return s.AddNoise()
	case FlickerEffect:
		_, err := s.Flicker()
		return err
	default:
		return s.DrawPattern()
	}
}
