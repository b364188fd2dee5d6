package graphics

import (
	"image"
	"image/color"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DrawDebugText overlays a line of text onto the framebuffer using a
// fixed bitmap font, the equivalent of cmd/desktop's TextVRAM overlay
// but driven directly rather than through a second character grid —
// useful for a HUD showing the current instruction or frame rate while
// a program runs under cmd/desktop.
func DrawDebugText(img *image.RGBA, x, y int, text string, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// DebugOverlay draws a HUD onto the live framebuffer: the current
// instruction text and a frame counter, in the corner cmd/desktop's
// text layer would use.
func (s *Screen) DebugOverlay(instruction string, frame int) {
	s.frame.mu.Lock()
	defer s.frame.mu.Unlock()
	DrawDebugText(s.frame.fb, 4, 13, instructionLabel(instruction, frame), color.RGBA{R: 255, G: 255, B: 0, A: 255})
}

func instructionLabel(instruction string, frame int) string {
	if instruction == "" {
		return "frame " + strconv.Itoa(frame)
	}
	return instruction + " | frame " + strconv.Itoa(frame)
}
