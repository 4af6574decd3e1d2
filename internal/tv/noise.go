package tv

import (
	"github.com/jypelle/monoscope/internal/raster"
	"github.com/sirupsen/logrus"
)

// AddNoise overwrites random rows with static. A single row buffer is
// reused for every line and released before returning.
func (s *Set) AddNoise() error {
	row, err := s.pool.Get(s.opts.Width, 1)
	if err != nil {
		logrus.Errorf("Unable to allocate noise buffer: %v", err)
		return nil
	}
	defer s.pool.Put(row)

	height := uint32(s.opts.Height)
	for i := 0; i < s.opts.NoiseLines; i++ {
		y := int(s.rng.Uint32() % height)

		for x := range row.Pix {
			row.Pix[x] = noisePixel(s.rng.Uint32())
		}

		if err := s.screen.DrawBitmap(0, y, row.Width, y+1, row.Pix); err != nil {
			return err
		}
	}
	logrus.Debugf("Added %d noise lines", s.opts.NoiseLines)
	return nil
}

// noisePixel maps a random draw to a static pixel: 30% white, gray or black
// speckles, otherwise a dark pseudo-random color.
func noisePixel(n uint32) raster.Color {
	if n%10 < 3 {
		switch n % 3 {
		case 0:
			return raster.White
		case 1:
			return raster.Gray
		default:
			return raster.Black
		}
	}
	return raster.RGB565(int(n%8), int(n%16), int(n%8))
}
