package interp

import (
	"testing"

	"toylang/pkg/ir"
)

func TestStoreTempsAreDenseByID(t *testing.T) {
	s := newStore(0)
	s.write(ir.Temp(3), Int(42))
	if got := s.read(ir.Temp(3)); got.I != 42 {
		t.Fatalf("got %+v, want temp 3 = 42", got)
	}
	if got := s.read(ir.Temp(0)); got.Kind != KindInt || got.I != 0 {
		t.Fatalf("expected an unset lower-numbered temp to read as zero, got %+v", got)
	}
}

func TestStoreLocalAndGlobalDoNotAlias(t *testing.T) {
	s := newStore(0)
	s.write(ir.Local("x"), Int(1))
	s.write(ir.Global("x"), Int(2))
	if got := s.read(ir.Local("x")); got.I != 1 {
		t.Fatalf("local x = %+v, want 1", got)
	}
	if got := s.read(ir.Global("x")); got.I != 2 {
		t.Fatalf("global x = %+v, want 2", got)
	}
}

func TestStoreRedeclaredLocalAliases(t *testing.T) {
	// §3's documented aliasing gap: two locals with the same name share
	// one bucket regardless of which lexical block declared them.
	s := newStore(0)
	s.write(ir.Local("i"), Int(1))
	s.write(ir.Local("i"), Int(2))
	if got := s.read(ir.Local("i")); got.I != 2 {
		t.Fatalf("got %+v, want the second write to win", got)
	}
}
