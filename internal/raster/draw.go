package raster

import (
	"image"
)

// DrawLine draws an integer Bresenham line from (x1, y1) to (x2, y2), both
// endpoints included. Only in-bounds cells are written.
func DrawLine(fb *Framebuffer, x1, y1, x2, y2 int, c Color) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := -1
	if x1 < x2 {
		sx = 1
	}
	sy := -1
	if y1 < y2 {
		sy = 1
	}
	err := dx - dy

	for {
		fb.SetPixel(x1, y1, c)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawCircle fills every cell within radius of (cx, cy): dx²+dy² <= radius².
func DrawCircle(fb *Framebuffer, cx, cy, radius int, c Color) {
	if radius < 0 {
		return
	}
	r2 := radius * radius
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y <= r2 {
				fb.SetPixel(cx+x, cy+y, c)
			}
		}
	}
}

// FillRect fills r clipped to the framebuffer bounds.
func FillRect(fb *Framebuffer, r image.Rectangle, c Color) {
	r = r.Intersect(fb.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := fb.Pix[y*fb.Width : (y+1)*fb.Width]
		for x := r.Min.X; x < r.Max.X; x++ {
			row[x] = c
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
