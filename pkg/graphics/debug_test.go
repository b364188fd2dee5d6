package graphics

import (
	"image"
	"image/color"
	"testing"
)

func TestDrawDebugTextPaintsSomePixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 20))
	DrawDebugText(img, 2, 13, "hi", color.RGBA{R: 255, G: 255, B: 255, A: 255})

	painted := false
	for y := 0; y < 20; y++ {
		for x := 0; x < 100; x++ {
			if img.RGBAAt(x, y).A != 0 {
				painted = true
			}
		}
	}
	if !painted {
		t.Fatal("expected DrawDebugText to paint at least one pixel")
	}
}

func TestInstructionLabelFormatsWithAndWithoutInstruction(t *testing.T) {
	if got := instructionLabel("", 3); got != "frame 3" {
		t.Fatalf("got %q", got)
	}
	if got := instructionLabel("JMP L1", 3); got != "JMP L1 | frame 3" {
		t.Fatalf("got %q", got)
	}
}
