package graphics

import (
	"toylang/pkg/interp"
)

// Screen implements interp.Screen over a *frame owned by a *Host. It is
// what SCREEN's Machine.NewScreen factory hands back to the interpreter.
type Screen struct {
	host  *Host
	frame *frame
}

var _ interp.Screen = (*Screen)(nil)

// NewFactory curries a Host into the interp.ScreenFactory shape the
// interpreter's SCREEN opcode calls.
func NewFactory(h *Host) interp.ScreenFactory {
	return func(width, height int32, title string) (interp.Screen, error) {
		return h.Activate(width, height, title)
	}
}

func (s *Screen) Clear(r, g, b int32) {
	s.frame.mu.Lock()
	defer s.frame.mu.Unlock()
	Clear(s.frame.fb, r, g, b)
}

func (s *Screen) Present() {
	// Actual presentation happens in Host.Draw every ebiten tick; scripts
	// only need Present to be a no-op sync point plus the close check
	// PRESENT's caller performs via ShouldClose.
}

func (s *Screen) HandleEvents() {
	// Input state is refreshed once per tick by Host.Update; nothing to
	// pump here beyond what that already does.
}

func (s *Screen) ShouldClose() bool {
	return s.frame.shouldClose()
}

func (s *Screen) DrawPixel(x, y, r, g, b int32) {
	s.frame.mu.Lock()
	defer s.frame.mu.Unlock()
	DrawPixel(s.frame.fb, x, y, r, g, b, 255)
}

func (s *Screen) DrawRect(x, y, w, h, r, g, b int32, filled bool) {
	s.frame.mu.Lock()
	defer s.frame.mu.Unlock()
	DrawRect(s.frame.fb, x, y, w, h, r, g, b, filled)
}

func (s *Screen) DrawLine(x1, y1, x2, y2, r, g, b int32) {
	s.frame.mu.Lock()
	defer s.frame.mu.Unlock()
	DrawLine(s.frame.fb, x1, y1, x2, y2, r, g, b)
}

func (s *Screen) DrawCircle(x, y, radius, r, g, b int32, filled bool) {
	s.frame.mu.Lock()
	defer s.frame.mu.Unlock()
	DrawCircle(s.frame.fb, x, y, radius, r, g, b, filled)
}

// DrawTriangle is a supplemented capability (original_source's
// drawTriangle/fillTriangle) beyond the closed opcode catalogue; it is
// reachable only through pkg/graphics's own API, not from IR.
func (s *Screen) DrawTriangle(x1, y1, x2, y2, x3, y3, r, g, b int32, filled bool) {
	s.frame.mu.Lock()
	defer s.frame.mu.Unlock()
	DrawTriangle(s.frame.fb, x1, y1, x2, y2, x3, y3, r, g, b, filled)
}

func (s *Screen) MousePos() (int, int) {
	return s.frame.mousePos()
}

func (s *Screen) MouseButtonDown(button int) bool {
	return s.frame.mouseButtonDown(button)
}

func (s *Screen) IsKeyPressed(name string) bool {
	return s.frame.isKeyPressed(name)
}

func (s *Screen) Close() error {
	s.FreeAllImages()
	s.host.deactivate(s.frame)
	return nil
}
