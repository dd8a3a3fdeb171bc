package idgen_test

import (
	"testing"

	"github.com/artpar/actionkit/adapters/idgen"
)

func TestUUID_New(t *testing.T) {
	g := idgen.UUID{}

	a := g.New()
	b := g.New()

	if a == "" || b == "" {
		t.Fatal("expected non-empty IDs")
	}
	if a == b {
		t.Errorf("expected unique IDs, got %q twice", a)
	}
	if len(a) != 36 {
		t.Errorf("len(%q) = %d, want 36", a, len(a))
	}
}

func TestSequential(t *testing.T) {
	g := idgen.NewSequential("task-")

	if got := g.New(); got != "task-1" {
		t.Errorf("first = %q", got)
	}
	if got := g.New(); got != "task-2" {
		t.Errorf("second = %q", got)
	}

	g.Reset()
	if got := g.New(); got != "task-1" {
		t.Errorf("after reset = %q", got)
	}
}
