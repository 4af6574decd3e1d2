package raster

import (
	"image/color"
)

// Color is a 16-bit RGB565 packed color: 5 bits red, 6 bits green, 5 bits blue.
type Color uint16

// RGB565 packs the three channels, masking each one to its field width.
func RGB565(r, g, b int) Color {
	return Color(((r & 0x1F) << 11) | ((g & 0x3F) << 5) | (b & 0x1F))
}

var (
	White   = RGB565(31, 63, 31)
	Black   = RGB565(0, 0, 0)
	Gray    = RGB565(15, 31, 15)
	Red     = RGB565(31, 0, 0)
	Green   = RGB565(0, 63, 0)
	Blue    = RGB565(0, 0, 31)
	Yellow  = RGB565(31, 63, 0)
	Cyan    = RGB565(0, 63, 31)
	Magenta = RGB565(31, 0, 31)
)

func (c Color) R() int { return int(c>>11) & 0x1F }
func (c Color) G() int { return int(c>>5) & 0x3F }
func (c Color) B() int { return int(c) & 0x1F }

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R()) * 0xFFFF / 0x1F
	g = uint32(c.G()) * 0xFFFF / 0x3F
	b = uint32(c.B()) * 0xFFFF / 0x1F
	return r, g, b, 0xFFFF
}

// Model converts any color to its nearest RGB565 value. Alpha is ignored.
var Model color.Model = color.ModelFunc(rgb565Model)

func rgb565Model(c color.Color) color.Color {
	if c, ok := c.(Color); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return Color(((r >> 11) << 11) | ((g >> 10) << 5) | (b >> 11))
}
