package tv

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/jypelle/monoscope/internal/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blit struct {
	x0, y0, x1, y1 int
	pix            []raster.Color
}

// recordScreen keeps every blit and a mirror of what the panel shows.
type recordScreen struct {
	mirror *raster.Framebuffer
	blits  []blit
	pool   *raster.Pool
	peak   int
	err    error
}

func newRecordScreen(w, h int) *recordScreen {
	return &recordScreen{mirror: raster.NewFramebuffer(w, h)}
}

func (r *recordScreen) DrawBitmap(x0, y0, x1, y1 int, pix []raster.Color) error {
	if r.err != nil {
		return r.err
	}
	if r.pool != nil && r.pool.Outstanding() > r.peak {
		r.peak = r.pool.Outstanding()
	}
	cp := make([]raster.Color, len(pix))
	copy(cp, pix)
	r.blits = append(r.blits, blit{x0, y0, x1, y1, cp})
	r.mirror.Blit(x0, y0, x1, y1, pix)
	return nil
}

func newTestSet(seed int64, screen *recordScreen, pool *raster.Pool) *Set {
	if pool == nil {
		pool = raster.NewPool(0)
	}
	screen.pool = pool
	return NewSet(screen, pool, rand.New(rand.NewSource(seed)), DefaultOptions)
}

func TestNewSetDefaults(t *testing.T) {
	s := NewSet(newRecordScreen(1, 1), nil, rand.New(rand.NewSource(1)), Options{Width: 128, Height: 64})
	opts := s.Options()
	assert.Equal(t, 128, opts.Width)
	assert.Equal(t, 64, opts.Height)
	assert.Equal(t, 20, opts.NoiseLines)
	assert.Equal(t, 5, opts.FlickerLines)
	assert.Equal(t, 30, opts.FlickerPeriod)
	assert.Equal(t, 100, opts.FlickerCycle)
}

func TestApplyDispatch(t *testing.T) {
	screen := newRecordScreen(320, 240)
	s := newTestSet(3, screen, nil)

	require.NoError(t, s.Apply(RedrawEffect))
	require.Len(t, screen.blits, 1)
	assert.Equal(t, 240, screen.blits[0].y1)

	require.NoError(t, s.Apply(NoiseEffect))
	assert.Len(t, screen.blits, 21)

	require.NoError(t, s.Apply(FlickerEffect))
	assert.Equal(t, 1, s.FlickerCycle())
	assert.Len(t, screen.blits, 21)
}

func TestEffectFor(t *testing.T) {
	want := []Effect{
		NoiseEffect, NoiseEffect, NoiseEffect, NoiseEffect, NoiseEffect, NoiseEffect,
		FlickerEffect, FlickerEffect,
		RedrawEffect, RedrawEffect,
	}
	for draw, e := range want {
		assert.Equal(t, e, EffectFor(uint32(draw)), "draw %d", draw)
	}
	assert.Equal(t, "flicker", FlickerEffect.String())
}

func TestPickEffectDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	counts := map[Effect]int{}
	const n = 20000
	for i := 0; i < n; i++ {
		counts[PickEffect(rng)]++
	}
	assert.InDelta(t, 0.6, float64(counts[NoiseEffect])/n, 0.02)
	assert.InDelta(t, 0.2, float64(counts[FlickerEffect])/n, 0.02)
	assert.InDelta(t, 0.2, float64(counts[RedrawEffect])/n, 0.02)
}

func TestRandomDelayRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 5000; i++ {
		d := RandomDelay(rng, DefaultMinDelay, DefaultMaxDelay)
		assert.GreaterOrEqual(t, int64(d), int64(DefaultMinDelay))
		assert.Less(t, int64(d), int64(DefaultMaxDelay))
	}
	assert.Equal(t, DefaultMinDelay, RandomDelay(rng, DefaultMinDelay, DefaultMinDelay))
}

func TestScreenErrorIsReturned(t *testing.T) {
	screen := newRecordScreen(320, 240)
	screen.err = errors.New("spi: transfer failed")
	s := newTestSet(1, screen, nil)

	assert.Error(t, s.DrawPattern())
	assert.Error(t, s.AddNoise())
	assert.Equal(t, 0, s.pool.Outstanding())
}
