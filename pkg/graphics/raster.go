// Package graphics implements interp.Screen on top of an in-memory
// framebuffer, blitted to a real window by github.com/hajimehoshi/ebiten/v2.
// The pixel-level drawing routines are pure functions over image.RGBA so
// they can be exercised without a display, ported line-for-line from
// original_source/compiler/src/graphics.cpp's SDL-backed equivalents
// (SDL_RenderDrawPoint/Line/Rect become direct pixel writes; the
// midpoint-circle and scanline-triangle algorithms are unchanged).
package graphics

import (
	"image"
	"image/color"
)

func setPixel(img *image.RGBA, x, y int, c color.RGBA) {
	b := img.Bounds()
	if x < b.Min.X || y < b.Min.Y || x >= b.Max.X || y >= b.Max.Y {
		return
	}
	img.SetRGBA(x, y, c)
}

// Clear fills the whole framebuffer with (r,g,b), fully opaque — matching
// clear(r,g,b)'s renderer-clear-then-implicit-black-alpha-255 behavior.
func Clear(img *image.RGBA, r, g, b int32) {
	c := rgba(r, g, b, 255)
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// DrawPixel sets one pixel, silently clipping out-of-bounds coordinates
// the way SDL_RenderDrawPoint does against the renderer's clip rect.
func DrawPixel(img *image.RGBA, x, y, r, g, b, a int32) {
	setPixel(img, int(x), int(y), rgba(r, g, b, a))
}

// DrawLine is Bresenham's algorithm, the integer equivalent of what
// SDL_RenderDrawLine does under the hood.
func DrawLine(img *image.RGBA, x1, y1, x2, y2, r, g, b int32) {
	c := rgba(r, g, b, 255)
	dx := abs32(x2 - x1)
	dy := -abs32(y2 - y1)
	sx := int32(1)
	if x1 > x2 {
		sx = -1
	}
	sy := int32(1)
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy
	x, y := x1, y1
	for {
		setPixel(img, int(x), int(y), c)
		if x == x2 && y == y2 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// DrawRect draws or fills an axis-aligned rectangle.
func DrawRect(img *image.RGBA, x, y, w, h, r, g, b int32, filled bool) {
	c := rgba(r, g, b, 255)
	if filled {
		for yy := y; yy < y+h; yy++ {
			for xx := x; xx < x+w; xx++ {
				setPixel(img, int(xx), int(yy), c)
			}
		}
		return
	}
	DrawLine(img, x, y, x+w-1, y, r, g, b)
	DrawLine(img, x, y+h-1, x+w-1, y+h-1, r, g, b)
	DrawLine(img, x, y, x, y+h-1, r, g, b)
	DrawLine(img, x+w-1, y, x+w-1, y+h-1, r, g, b)
}

// DrawCircle draws or fills a circle, mirroring graphics.cpp exactly:
// a filled circle is a stack of horizontal spans, an outlined one uses
// the eight-way symmetric midpoint algorithm.
func DrawCircle(img *image.RGBA, x, y, radius, r, g, b int32, filled bool) {
	c := rgba(r, g, b, 255)
	if filled {
		for ry := -radius; ry <= radius; ry++ {
			rx := isqrt(radius*radius - ry*ry)
			for xx := x - rx; xx <= x+rx; xx++ {
				setPixel(img, int(xx), int(y+ry), c)
			}
		}
		return
	}
	midpointCircle(img, x, y, radius, c)
}

func midpointCircle(img *image.RGBA, cx, cy, radius int32, c color.RGBA) {
	x0, y0 := int32(0), radius
	d := 3 - 2*radius
	for x0 <= y0 {
		setPixel(img, int(cx+x0), int(cy+y0), c)
		setPixel(img, int(cx-x0), int(cy+y0), c)
		setPixel(img, int(cx+x0), int(cy-y0), c)
		setPixel(img, int(cx-x0), int(cy-y0), c)
		setPixel(img, int(cx+y0), int(cy+x0), c)
		setPixel(img, int(cx-y0), int(cy+x0), c)
		setPixel(img, int(cx+y0), int(cy-x0), c)
		setPixel(img, int(cx-y0), int(cy-x0), c)
		if d < 0 {
			d += 4*x0 + 6
		} else {
			d += 4*(x0-y0) + 10
			y0--
		}
		x0++
	}
}

// DrawTriangle draws or fills a triangle. Grounded on the original's
// scanline fill (interpolate the two edges crossing each scanline, draw
// the horizontal span between them) and its three-line outline.
func DrawTriangle(img *image.RGBA, x1, y1, x2, y2, x3, y3, r, g, b int32, filled bool) {
	if filled {
		fillTriangle(img, x1, y1, x2, y2, x3, y3, r, g, b)
		return
	}
	DrawLine(img, x1, y1, x2, y2, r, g, b)
	DrawLine(img, x2, y2, x3, y3, r, g, b)
	DrawLine(img, x3, y3, x1, y1, r, g, b)
}

func fillTriangle(img *image.RGBA, x1, y1, x2, y2, x3, y3, r, g, b int32) {
	c := rgba(r, g, b, 255)
	minY, maxY := min3(y1, y2, y3), max3(y1, y2, y3)
	for y := minY; y <= maxY; y++ {
		minX, maxX := int32(1_000_000), int32(-1_000_000)
		if x, ok := edgeX(x1, y1, x2, y2, y); ok {
			minX, maxX = minInt32(minX, x), maxInt32(maxX, x)
		}
		if x, ok := edgeX(x2, y2, x3, y3, y); ok {
			minX, maxX = minInt32(minX, x), maxInt32(maxX, x)
		}
		if x, ok := edgeX(x3, y3, x1, y1, y); ok {
			minX, maxX = minInt32(minX, x), maxInt32(maxX, x)
		}
		if minX <= maxX {
			for x := minX; x <= maxX; x++ {
				setPixel(img, int(x), int(y), c)
			}
		}
	}
}

// edgeX returns the x coordinate where the edge (ax,ay)-(bx,by) crosses
// scanline y, or false if the edge is horizontal.
func edgeX(ax, ay, bx, by, y int32) (int32, bool) {
	if ay == by {
		return 0, false
	}
	x := float64(ax) + float64(y-ay)*float64(bx-ax)/float64(by-ay)
	return int32(x), true
}

func rgba(r, g, b, a int32) color.RGBA {
	return color.RGBA{R: clamp255(r), G: clamp255(g), B: clamp255(b), A: clamp255(a)}
}

func clamp255(v int32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func min3(a, b, c int32) int32 { return minInt32(minInt32(a, b), c) }
func max3(a, b, c int32) int32 { return maxInt32(maxInt32(a, b), c) }

func minInt32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func maxInt32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// isqrt is an integer square root sufficient for circle rasterization
// (radius values are always small and non-negative here).
func isqrt(v int32) int32 {
	if v <= 0 {
		return 0
	}
	x := v
	for {
		next := (x + v/x) / 2
		if next >= x {
			return x
		}
		x = next
	}
}
