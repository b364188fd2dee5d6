// Package rawkey reads one keystroke from a terminal without waiting for
// Enter, the Go equivalent of the original readSingleKey: put the
// terminal into raw mode, read a single byte, restore whatever mode it
// was in before — on every exit path, not just the success one.
package rawkey

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Reader reads single keystrokes from an *os.File that must be a
// terminal. It satisfies interp.KeyReader.
type Reader struct {
	f *os.File
}

// New wraps f, typically os.Stdin, for raw single-key reads.
func New(f *os.File) *Reader {
	return &Reader{f: f}
}

// ReadOne switches f into raw, no-echo mode long enough to read one byte,
// then restores the prior terminal state unconditionally — the scoped
// acquisition §5 calls for, so a panic or early return elsewhere never
// leaves the terminal stuck in raw mode.
func (r *Reader) ReadOne() (byte, error) {
	fd := int(r.f.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return 0, fmt.Errorf("rawkey: enter raw mode: %w", err)
	}
	defer term.Restore(fd, old)

	var buf [1]byte
	if _, err := r.f.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("rawkey: read: %w", err)
	}
	return buf[0], nil
}
