// Command desktop is the graphics-capable entry point for programs that
// call screen(...), grounded on cmd/desktop/main.go's ebiten.RunGame(game)
// wiring. The interpreter steps on its own goroutine; the main goroutine
// is reserved for ebiten.RunGame, which several platforms require to run
// on the process's main goroutine.
package main

import (
	"fmt"
	"os"

	"toylang/pkg/graphics"
	"toylang/pkg/pipeline"
	"toylang/pkg/rawkey"
)

const (
	defaultWidth  = 640
	defaultHeight = 480
	defaultTitle  = "toylang"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: desktop file.txt")
		os.Exit(1)
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	src := string(data)

	host := graphics.NewHost()
	keys := rawkey.New(os.Stdin)

	go func() {
		code := pipeline.Run(src, keys, graphics.NewFactory(host), os.Stdin, os.Stdout)
		os.Exit(code)
	}()

	if err := host.Run(defaultWidth, defaultHeight, defaultTitle); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
