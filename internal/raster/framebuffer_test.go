package raster_test

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/jypelle/monoscope/internal/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRGB565Packing(t *testing.T) {
	assert.Equal(t, raster.Color(0xFFFF), raster.White)
	assert.Equal(t, raster.Color(0xF800), raster.Red)
	assert.Equal(t, raster.Color(0x07E0), raster.Green)
	assert.Equal(t, raster.Color(0x001F), raster.Blue)
	assert.Equal(t, raster.Color(0x7BEF), raster.Gray)

	// Channels wider than their field are masked, not carried over.
	assert.Equal(t, raster.RGB565(1, 0, 0), raster.RGB565(33, 0, 0))
	assert.Equal(t, raster.RGB565(0, 1, 0), raster.RGB565(0, 65, 0))

	c := raster.RGB565(27, 54, 27)
	assert.Equal(t, 27, c.R())
	assert.Equal(t, 54, c.G())
	assert.Equal(t, 27, c.B())
}

func TestColorModelRoundTrip(t *testing.T) {
	for _, c := range []raster.Color{raster.White, raster.Black, raster.Yellow, raster.Magenta, raster.RGB565(8, 16, 8)} {
		assert.Equal(t, c, raster.Model.Convert(color.NRGBAModel.Convert(c)))
	}
	assert.Equal(t, raster.White, raster.Model.Convert(color.RGBA{255, 255, 255, 255}))
	assert.Equal(t, raster.Red, raster.Model.Convert(color.RGBA{255, 0, 0, 255}))
}

func TestFramebufferImage(t *testing.T) {
	fb := raster.NewFramebuffer(4, 3)
	var img draw.Image = fb

	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())

	img.Set(1, 2, color.RGBA{0, 0, 255, 255})
	img.Set(7, 7, color.White)
	assert.Equal(t, raster.Blue, fb.Pixel(1, 2))
	assert.Equal(t, raster.Black, fb.Pixel(7, 7))

	draw.Draw(fb, image.Rect(0, 0, 2, 1), image.NewUniform(color.White), image.Point{}, draw.Src)
	assert.Equal(t, raster.White, fb.Pixel(0, 0))
	assert.Equal(t, raster.White, fb.Pixel(1, 0))
	assert.Equal(t, raster.Black, fb.Pixel(2, 0))
}

func TestFramebufferBlit(t *testing.T) {
	fb := raster.NewFramebuffer(5, 4)
	row := []raster.Color{raster.Red, raster.Green, raster.Blue, raster.White, raster.Gray}
	fb.Blit(0, 2, 5, 3, row)
	for x, c := range row {
		assert.Equal(t, c, fb.Pixel(x, 2))
	}
	assert.Equal(t, raster.Black, fb.Pixel(0, 1))

	// Partial rectangle hanging off the right edge.
	fb.Blit(4, 0, 6, 1, []raster.Color{raster.Cyan, raster.Cyan})
	assert.Equal(t, raster.Cyan, fb.Pixel(4, 0))

	clone := fb.Clone()
	require.Equal(t, fb.Pix, clone.Pix)
	clone.SetPixel(0, 0, raster.Magenta)
	assert.NotEqual(t, fb.Pixel(0, 0), clone.Pixel(0, 0))
}

func TestPoolBudget(t *testing.T) {
	p := raster.NewPool(320 * 2 * 2)

	a, err := p.Get(320, 1)
	require.NoError(t, err)
	b, err := p.Get(320, 1)
	require.NoError(t, err)
	_, err = p.Get(320, 1)
	assert.ErrorIs(t, err, raster.ErrNoMemory)
	assert.Equal(t, 2, p.Outstanding())

	p.Put(a)
	p.Put(b)
	assert.Equal(t, 0, p.Outstanding())
	assert.Equal(t, 0, p.InUse())
	assert.Equal(t, 2, p.Peak())

	_, err = p.Get(320, 2)
	assert.NoError(t, err)
}

func TestPoolUnlimited(t *testing.T) {
	p := raster.NewPool(0)
	fb, err := p.Get(320, 240)
	require.NoError(t, err)
	assert.Len(t, fb.Pix, 320*240)
	p.Put(fb)
	assert.Nil(t, fb.Pix)
}
