package graphics

import (
	"image"
	"image/color"
	"testing"
)

func newTestImage(w, h int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func TestDrawPixelClipsOutOfBounds(t *testing.T) {
	img := newTestImage(4, 4)
	DrawPixel(img, -1, 0, 255, 0, 0, 255)
	DrawPixel(img, 100, 100, 255, 0, 0, 255)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if c := img.RGBAAt(x, y); c != (color.RGBA{}) {
				t.Fatalf("expected untouched pixel at (%d,%d), got %v", x, y, c)
			}
		}
	}
}

func TestDrawPixelSetsColor(t *testing.T) {
	img := newTestImage(4, 4)
	DrawPixel(img, 1, 1, 10, 20, 30, 255)
	want := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	if got := img.RGBAAt(1, 1); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestClearFillsWholeFramebuffer(t *testing.T) {
	img := newTestImage(3, 3)
	Clear(img, 1, 2, 3)
	want := color.RGBA{R: 1, G: 2, B: 3, A: 255}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if got := img.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestDrawLineHorizontal(t *testing.T) {
	img := newTestImage(5, 5)
	DrawLine(img, 0, 2, 4, 2, 255, 255, 255)
	for x := 0; x < 5; x++ {
		if img.RGBAAt(x, 2).A == 0 {
			t.Fatalf("expected pixel (%d,2) to be drawn", x)
		}
	}
	if img.RGBAAt(0, 0).A != 0 {
		t.Fatal("expected pixel outside the line to be untouched")
	}
}

func TestDrawRectOutlineLeavesInteriorUntouched(t *testing.T) {
	img := newTestImage(6, 6)
	DrawRect(img, 1, 1, 4, 4, 255, 0, 0, false)
	if img.RGBAAt(2, 2).A != 0 {
		t.Fatal("expected outline rect interior to remain untouched")
	}
	if img.RGBAAt(1, 1).A == 0 {
		t.Fatal("expected corner of outline to be drawn")
	}
}

func TestDrawRectFilledCoversInterior(t *testing.T) {
	img := newTestImage(6, 6)
	DrawRect(img, 1, 1, 4, 4, 255, 0, 0, true)
	if img.RGBAAt(2, 2).A == 0 {
		t.Fatal("expected filled rect interior to be drawn")
	}
}

func TestDrawCircleFilledCoversCenter(t *testing.T) {
	img := newTestImage(20, 20)
	DrawCircle(img, 10, 10, 5, 0, 255, 0, true)
	if img.RGBAAt(10, 10).A == 0 {
		t.Fatal("expected filled circle to cover its own center")
	}
	if img.RGBAAt(0, 0).A != 0 {
		t.Fatal("expected corner far from circle to remain untouched")
	}
}

func TestDrawCircleOutlineLeavesCenterUntouched(t *testing.T) {
	img := newTestImage(20, 20)
	DrawCircle(img, 10, 10, 5, 0, 255, 0, false)
	if img.RGBAAt(10, 10).A != 0 {
		t.Fatal("expected outline circle to leave its center untouched")
	}
	if img.RGBAAt(15, 10).A == 0 {
		t.Fatal("expected outline point on the circumference to be drawn")
	}
}

func TestFillTriangleCoversCentroid(t *testing.T) {
	img := newTestImage(20, 20)
	DrawTriangle(img, 2, 2, 18, 2, 10, 18, 0, 0, 255, true)
	if img.RGBAAt(10, 6).A == 0 {
		t.Fatal("expected filled triangle interior point to be drawn")
	}
	if img.RGBAAt(0, 0).A != 0 {
		t.Fatal("expected point outside triangle to remain untouched")
	}
}

func TestDrawTriangleOutlineLeavesInteriorUntouched(t *testing.T) {
	img := newTestImage(20, 20)
	DrawTriangle(img, 2, 2, 18, 2, 10, 18, 0, 0, 255, false)
	if img.RGBAAt(10, 6).A != 0 {
		t.Fatal("expected outline triangle interior to remain untouched")
	}
}
