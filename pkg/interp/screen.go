package interp

// Screen is the opaque graphics handle contract of spec §6.4: a window
// plus 2D drawing and keyboard polling. pkg/graphics implements it
// on top of ebiten; the interpreter only ever sees this interface, so it
// never imports a windowing toolkit directly.
type Screen interface {
	Clear(r, g, b int32)
	Present()
	HandleEvents()
	ShouldClose() bool
	DrawPixel(x, y, r, g, b int32)
	DrawRect(x, y, w, h, r, g, b int32, filled bool)
	DrawLine(x1, y1, x2, y2, r, g, b int32)
	DrawCircle(x, y, radius, r, g, b int32, filled bool)
	IsKeyPressed(name string) bool
	Close() error
}

// ScreenFactory builds the Screen a SCREEN(w,h,title) instruction requests.
// The interpreter owns at most one Screen at a time (§5's singleton
// resource policy) and replaces it on every SCREEN call, closing the prior
// one first.
type ScreenFactory func(width, height int32, title string) (Screen, error)

// KeyReader satisfies KEY_PRESSED: read exactly one byte from the
// controlling terminal without waiting for Enter. pkg/rawkey implements
// this with a scoped golang.org/x/term raw-mode acquisition.
type KeyReader interface {
	ReadOne() (byte, error)
}
