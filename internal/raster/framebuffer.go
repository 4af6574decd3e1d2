package raster

import (
	"image"
	"image/color"
)

// Framebuffer is a row-major RGB565 pixel grid. It implements draw.Image so
// the image/draw and font packages can target it directly.
type Framebuffer struct {
	Pix    []Color
	Width  int
	Height int
}

func NewFramebuffer(width, height int) *Framebuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Framebuffer{
		Pix:    make([]Color, width*height),
		Width:  width,
		Height: height,
	}
}

// Size returns the number of bytes held by the pixel data.
func (fb *Framebuffer) Size() int {
	return len(fb.Pix) * 2
}

func (fb *Framebuffer) In(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

// SetPixel writes c at (x, y). Out of range writes are dropped.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if fb.In(x, y) {
		fb.Pix[y*fb.Width+x] = c
	}
}

// Pixel returns the color at (x, y), Black when out of range.
func (fb *Framebuffer) Pixel(x, y int) Color {
	if !fb.In(x, y) {
		return Black
	}
	return fb.Pix[y*fb.Width+x]
}

// Fill sets every pixel to c.
func (fb *Framebuffer) Fill(c Color) {
	for i := range fb.Pix {
		fb.Pix[i] = c
	}
}

func (fb *Framebuffer) ColorModel() color.Model {
	return Model
}

func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.Width, fb.Height)
}

func (fb *Framebuffer) At(x, y int) color.Color {
	return fb.Pixel(x, y)
}

func (fb *Framebuffer) Set(x, y int, c color.Color) {
	fb.SetPixel(x, y, Model.Convert(c).(Color))
}

// Blit copies pix, laid out as a (x1-x0)×(y1-y0) rectangle, at (x0, y0).
// Pixels falling outside the framebuffer are dropped.
func (fb *Framebuffer) Blit(x0, y0, x1, y1 int, pix []Color) {
	w := x1 - x0
	if w <= 0 || y1 <= y0 {
		return
	}
	for y := y0; y < y1; y++ {
		row := (y - y0) * w
		for x := x0; x < x1; x++ {
			i := row + x - x0
			if i >= len(pix) {
				return
			}
			fb.SetPixel(x, y, pix[i])
		}
	}
}

// Clone returns a deep copy of fb.
func (fb *Framebuffer) Clone() *Framebuffer {
	c := &Framebuffer{
		Pix:    make([]Color, len(fb.Pix)),
		Width:  fb.Width,
		Height: fb.Height,
	}
	copy(c.Pix, fb.Pix)
	return c
}
