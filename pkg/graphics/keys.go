package graphics

import "github.com/hajimehoshi/ebiten/v2"

// keyTable is the fixed key-name vocabulary isKeyDown() scripts can
// query (key_pressed() reads a raw terminal byte and does not use it) — exactly the ten names
// original_source/compiler/src/main.cpp's isKeyPressed if/else chain
// recognizes, nothing more. Any other name (including single letters
// outside a/d/w/s) must report unpressed, so Screen.IsKeyPressed looks
// names up here rather than against ebiten's own key space, and
// pkg/interp never has to import an ebiten (or any windowing) type.
var keyTable = map[string]ebiten.Key{
	"a":      ebiten.KeyA,
	"d":      ebiten.KeyD,
	"w":      ebiten.KeyW,
	"s":      ebiten.KeyS,
	"space":  ebiten.KeySpace,
	"left":   ebiten.KeyArrowLeft,
	"right":  ebiten.KeyArrowRight,
	"up":     ebiten.KeyArrowUp,
	"down":   ebiten.KeyArrowDown,
	"escape": ebiten.KeyEscape,
}
