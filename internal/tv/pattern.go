package tv

import (
	"image"

	"github.com/hajimehoshi/bitmapfont/v2"
	"github.com/jypelle/monoscope/internal/raster"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const (
	colorBarsHeight = 40
	grayRampHeight  = 30
	grayRampSteps   = 10
	cornerSize      = 20
	cornerOffset    = 50
	diagonalHalf    = 50
)

// Broadcast bar order.
var colorBars = []raster.Color{
	raster.White,
	raster.Yellow,
	raster.Cyan,
	raster.Green,
	raster.Magenta,
	raster.Red,
	raster.Blue,
	raster.Black,
}

var circleRadii = []int{80, 60, 40, 20}

// DrawPattern composes the test card into a full screen buffer and sends it
// to the screen in one transfer. It keeps no state and can be called at any
// time to bring the screen back to its baseline.
func (s *Set) DrawPattern() error {
	logrus.Debugf("Drawing monoscope pattern")

	fb, err := s.pool.Get(s.opts.Width, s.opts.Height)
	if err != nil {
		logrus.Errorf("Unable to allocate screen buffer: %v", err)
		return nil
	}
	defer s.pool.Put(fb)

	ComposePattern(fb, s.opts.Caption)

	return s.screen.DrawBitmap(0, 0, fb.Width, fb.Height, fb.Pix)
}

// ComposePattern draws the test card into fb.
func ComposePattern(fb *raster.Framebuffer, caption string) {
	w, h := fb.Width, fb.Height
	cx, cy := w/2, h/2

	fb.Fill(raster.Black)

	// Color bars
	barWidth := w / len(colorBars)
	for i, c := range colorBars {
		raster.FillRect(fb, image.Rect(i*barWidth, 0, (i+1)*barWidth, colorBarsHeight), c)
	}

	// Crosshair
	raster.FillRect(fb, image.Rect(0, cy, w, cy+1), raster.White)
	raster.FillRect(fb, image.Rect(cx, 0, cx+1, h), raster.White)

	for _, r := range circleRadii {
		raster.DrawCircle(fb, cx, cy, r, raster.White)
	}

	// Corner marks
	top := cornerOffset
	bottom := h - cornerOffset
	left := cornerSize
	right := w - 1 - cornerSize
	raster.DrawLine(fb, 0, top, left, top, raster.White)
	raster.DrawLine(fb, left, top, left, top+cornerSize, raster.White)
	raster.DrawLine(fb, w-1, top, right, top, raster.White)
	raster.DrawLine(fb, right, top, right, top+cornerSize, raster.White)
	raster.DrawLine(fb, 0, bottom, left, bottom, raster.White)
	raster.DrawLine(fb, left, bottom, left, bottom-cornerSize, raster.White)
	raster.DrawLine(fb, w-1, bottom, right, bottom, raster.White)
	raster.DrawLine(fb, right, bottom, right, bottom-cornerSize, raster.White)

	// Resolution diagonals
	raster.DrawLine(fb, cx-diagonalHalf, cy-diagonalHalf, cx+diagonalHalf, cy+diagonalHalf, raster.Red)
	raster.DrawLine(fb, cx+diagonalHalf, cy-diagonalHalf, cx-diagonalHalf, cy+diagonalHalf, raster.Red)

	// Gray ramp
	stepWidth := w / grayRampSteps
	for i := 0; i < grayRampSteps; i++ {
		raster.FillRect(fb, image.Rect(i*stepWidth, h-grayRampHeight, (i+1)*stepWidth, h), GrayLevel(i))
	}

	if caption != "" {
		drawCaption(fb, caption)
	}
}

// GrayLevel returns the color of the i-th gray ramp step.
func GrayLevel(i int) raster.Color {
	return raster.RGB565(i*3, i*6, i*3)
}

func drawCaption(fb *raster.Framebuffer, caption string) {
	d := &font.Drawer{
		Dst:  fb,
		Src:  image.NewUniform(raster.White),
		Face: bitmapfont.Face,
		Dot:  fixed.P(cornerSize+4, fb.Height-grayRampHeight-4),
	}
	d.DrawString(caption)
}
