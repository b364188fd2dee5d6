package rawkey

import (
	"os"
	"testing"
)

// A pipe's read end is never a terminal, so MakeRaw must fail cleanly
// rather than panic or hang — this is the only behavior of ReadOne that
// is deterministic without a real TTY attached to the test process.
func TestReadOneOnNonTerminalFails(t *testing.T) {
	pr, pw, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	defer pr.Close()
	defer pw.Close()

	r := New(pr)
	if _, err := r.ReadOne(); err == nil {
		t.Fatal("expected an error entering raw mode on a non-terminal file")
	}
}
