package tv

import (
	"github.com/jypelle/monoscope/internal/raster"
	"github.com/sirupsen/logrus"
)

var (
	flickerDark = raster.RGB565(2, 4, 2)
	flickerDim  = raster.RGB565(8, 16, 8)
)

// Flicker advances the flicker cycle and, once every FlickerPeriod steps,
// paints the same dim row over FlickerLines random rows. It reports whether
// the effect was drawn.
func (s *Set) Flicker() (bool, error) {
	s.flickerCycle = (s.flickerCycle + 1) % s.opts.FlickerCycle
	if s.flickerCycle%s.opts.FlickerPeriod != 0 {
		return false, nil
	}

	row, err := s.pool.Get(s.opts.Width, 1)
	if err != nil {
		logrus.Errorf("Unable to allocate flicker buffer: %v", err)
		return false, nil
	}
	defer s.pool.Put(row)

	c := flickerDim
	if s.rng.Uint32()%2 == 1 {
		c = flickerDark
	}
	row.Fill(c)

	height := uint32(s.opts.Height)
	for i := 0; i < s.opts.FlickerLines; i++ {
		y := int(s.rng.Uint32() % height)
		if err := s.screen.DrawBitmap(0, y, row.Width, y+1, row.Pix); err != nil {
			return true, err
		}
	}
	logrus.Debugf("Flicker on cycle %d", s.flickerCycle)
	return true, nil
}
