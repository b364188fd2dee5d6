package graphics

import (
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// frame is the live drawing surface for one screen(...) call: a software
// framebuffer plus the input snapshot Host.Update refreshes once per
// ebiten tick. All drawing methods and Host's callbacks touch it under
// mu, since the interpreter goroutine and ebiten's own goroutine run
// concurrently.
type frame struct {
	mu sync.Mutex

	fb  *image.RGBA
	img *ebiten.Image

	keys       map[string]bool
	mouseX     int
	mouseY     int
	mouseDown  [4]bool // index 1=left, 2=middle, 3=right
	closeWanted bool

	images map[string]*ebiten.Image
}

func newFrame(w, h int) *frame {
	return &frame{
		fb:     image.NewRGBA(image.Rect(0, 0, w, h)),
		keys:   make(map[string]bool, len(keyTable)),
		images: make(map[string]*ebiten.Image),
	}
}

func (f *frame) refreshInput() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for name, key := range keyTable {
		f.keys[name] = ebiten.IsKeyPressed(key)
	}
	f.mouseX, f.mouseY = ebiten.CursorPosition()
	f.mouseDown[1] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	f.mouseDown[2] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	f.mouseDown[3] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if ebiten.IsWindowBeingClosedByUser() {
		f.closeWanted = true
	}
}

func (f *frame) draw(dst *ebiten.Image) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b := f.fb.Bounds()
	if f.img == nil {
		f.img = ebiten.NewImage(b.Dx(), b.Dy())
	}
	f.img.WritePixels(f.fb.Pix)
	dst.DrawImage(f.img, nil)
}

func (f *frame) isKeyPressed(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.keys[name]
}

func (f *frame) mousePos() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mouseX, f.mouseY
}

func (f *frame) mouseButtonDown(button int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if button < 0 || button > 3 {
		return false
	}
	return f.mouseDown[button]
}

func (f *frame) shouldClose() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closeWanted
}
