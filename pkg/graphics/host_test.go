package graphics

import "testing"

func TestActivateRejectsNonPositiveSize(t *testing.T) {
	h := NewHost()
	if _, err := h.Activate(0, 100, "t"); err == nil {
		t.Fatal("expected an error for zero width")
	}
	if _, err := h.Activate(100, -1, "t"); err == nil {
		t.Fatal("expected an error for negative height")
	}
}

func TestFrameInputDefaultsToUnpressed(t *testing.T) {
	f := newFrame(10, 10)
	if f.isKeyPressed("a") {
		t.Fatal("expected a fresh frame to report no keys pressed")
	}
	if f.shouldClose() {
		t.Fatal("expected a fresh frame to not want closing")
	}
	if f.mouseButtonDown(1) {
		t.Fatal("expected a fresh frame to report no mouse buttons down")
	}
}

func TestFrameMouseButtonDownRejectsOutOfRange(t *testing.T) {
	f := newFrame(10, 10)
	if f.mouseButtonDown(4) || f.mouseButtonDown(-1) {
		t.Fatal("expected out-of-range button indices to report false")
	}
}
