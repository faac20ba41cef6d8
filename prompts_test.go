package aquatask

import (
	"math/rand/v2"
	"slices"
	"testing"
)

func TestPromptComesFromPool(t *testing.T) {
	p := NewPromptProvider(rand.New(rand.NewPCG(1, 0)))
	pool := Prompts("default")
	for i := 0; i < 50; i++ {
		got := p.Prompt("default")
		if !slices.Contains(pool, got) {
			t.Fatalf("prompt %q is not in the default pool", got)
		}
	}
}

func TestPromptDeterministicUnderSeed(t *testing.T) {
	a := NewPromptProvider(rand.New(rand.NewPCG(5, 0)))
	b := NewPromptProvider(rand.New(rand.NewPCG(5, 0)))
	for i := 0; i < 20; i++ {
		if pa, pb := a.Prompt("default"), b.Prompt("default"); pa != pb {
			t.Fatalf("selection %d diverged: %q vs %q", i, pa, pb)
		}
	}
}

func TestPromptUnknownTypeFallsBack(t *testing.T) {
	p := NewPromptProvider(rand.New(rand.NewPCG(9, 0)))
	if got := p.Prompt("no_such_type"); !slices.Contains(Prompts("default"), got) {
		t.Errorf("unknown type returned %q, want a default-pool prompt", got)
	}
}
