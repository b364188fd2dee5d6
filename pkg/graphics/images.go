package graphics

import (
	"fmt"
	"image"
	_ "image/png" // registers the PNG decoder image.Decode dispatches to
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// LoadImage decodes a PNG file and caches it under name, the Go analogue
// of original_source's SDL_image-backed texture cache. Supplemented
// capability: not part of the closed opcode catalogue, only reachable
// through pkg/graphics's own API.
func (s *Screen) LoadImage(name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("graphics: load image %q: %w", name, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("graphics: decode image %q: %w", name, err)
	}

	s.frame.mu.Lock()
	defer s.frame.mu.Unlock()
	s.frame.images[name] = ebiten.NewImageFromImage(img)
	return nil
}

// ImageExists reports whether name is currently cached.
func (s *Screen) ImageExists(name string) bool {
	s.frame.mu.Lock()
	defer s.frame.mu.Unlock()
	_, ok := s.frame.images[name]
	return ok
}

// Blit draws a cached image at (x,y) at its native size.
func (s *Screen) Blit(name string, x, y int32) error {
	return s.BlitScaled(name, x, y, 1, 1)
}

// BlitScaled draws a cached image at (x,y) scaled by (sx,sy), directly
// onto the framebuffer so it composites correctly with pixel-level
// drawing calls made before or after it in the same frame.
func (s *Screen) BlitScaled(name string, x, y int32, sx, sy float64) error {
	s.frame.mu.Lock()
	defer s.frame.mu.Unlock()

	img, ok := s.frame.images[name]
	if !ok {
		return fmt.Errorf("graphics: image %q not loaded", name)
	}
	bounds := img.Bounds()
	dw := int(float64(bounds.Dx()) * sx)
	dh := int(float64(bounds.Dy()) * sy)
	for dy := 0; dy < dh; dy++ {
		for dx := 0; dx < dw; dx++ {
			px := bounds.Min.X + int(float64(dx)/sx)
			py := bounds.Min.Y + int(float64(dy)/sy)
			r, g, b, a := img.At(px, py).RGBA()
			if a == 0 {
				continue
			}
			setPixel(s.frame.fb, int(x)+dx, int(y)+dy, rgba(int32(r>>8), int32(g>>8), int32(b>>8), int32(a>>8)))
		}
	}
	return nil
}

// FreeImage evicts one cached image.
func (s *Screen) FreeImage(name string) {
	s.frame.mu.Lock()
	defer s.frame.mu.Unlock()
	delete(s.frame.images, name)
}

// FreeAllImages evicts the whole cache, called from Close.
func (s *Screen) FreeAllImages() {
	s.frame.mu.Lock()
	defer s.frame.mu.Unlock()
	s.frame.images = make(map[string]*ebiten.Image)
}
