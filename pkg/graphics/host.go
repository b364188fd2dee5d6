package graphics

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// Host is the single ebiten.Game driving the process's one OS window.
// A program's script(...) may call screen(w,h,title) more than once (or
// never); Host.Activate swaps in a fresh frame each time rather than
// spinning up a second RunGame loop, since ebiten only supports one.
//
// cmd/desktop starts the interpreter goroutine first and then runs the
// Host on the main goroutine with ebiten.RunGame; a console-only run
// never touches this package at all.
type Host struct {
	mu     sync.Mutex
	active *frame
}

func init() {
	// Lets Update observe the close button via IsWindowBeingClosedByUser
	// instead of ebiten silently tearing the process down on click.
	ebiten.SetWindowClosingHandled(true)
}

// NewHost returns an idle host; nothing is drawn until Activate runs.
func NewHost() *Host {
	return &Host{}
}

func (h *Host) Update() error {
	h.mu.Lock()
	f := h.active
	h.mu.Unlock()
	if f != nil {
		f.refreshInput()
	}
	return nil
}

func (h *Host) Draw(screen *ebiten.Image) {
	h.mu.Lock()
	f := h.active
	h.mu.Unlock()
	if f == nil {
		screen.Fill(color.Black)
		return
	}
	f.draw(screen)
}

func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	h.mu.Lock()
	f := h.active
	h.mu.Unlock()
	if f == nil {
		return outsideWidth, outsideHeight
	}
	b := f.fb.Bounds()
	return b.Dx(), b.Dy()
}

// Activate resizes/retitles the shared window and installs a fresh
// framebuffer, returning a Screen bound to it. It is an interp.ScreenFactory
// once curried over a *Host — see NewFactory.
func (h *Host) Activate(width, height int32, title string) (*Screen, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("graphics: invalid window size %dx%d", width, height)
	}
	f := newFrame(int(width), int(height))
	ebiten.SetWindowSize(int(width), int(height))
	ebiten.SetWindowTitle(title)
	h.mu.Lock()
	h.active = f
	h.mu.Unlock()
	return &Screen{host: h, frame: f}, nil
}

func (h *Host) deactivate(f *frame) {
	h.mu.Lock()
	if h.active == f {
		h.active = nil
	}
	h.mu.Unlock()
}

// Run blocks the calling goroutine for the lifetime of the process's
// graphics window. It must run on the main goroutine — an ebiten
// requirement on several platforms — so cmd/desktop calls it directly
// and steps the interpreter on a separate goroutine.
func (h *Host) Run(initialWidth, initialHeight int32, title string) error {
	ebiten.SetWindowSize(int(initialWidth), int(initialHeight))
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(h)
}
