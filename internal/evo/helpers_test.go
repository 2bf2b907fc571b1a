package evo

import (
	"testing"

	"github.com/caioreina/lottery/internal/genome"
	"github.com/caioreina/lottery/internal/triple"
)

func newTestUniverse(t *testing.T, min, max int) *triple.Universe {
	t.Helper()
	u, err := triple.NewUniverse(min, max)
	if err != nil {
		t.Fatalf("new universe: %v", err)
	}
	return u
}

func mustDraw(t *testing.T, u *triple.Universe, numbers ...int) triple.Draw {
	t.Helper()
	d, err := triple.NewDraw(u.Min(), u.Max(), numbers...)
	if err != nil {
		t.Fatalf("new draw: %v", err)
	}
	return d
}

func newGenomeWithDraws(t *testing.T, u *triple.Universe, draws ...triple.Draw) *genome.Genome {
	t.Helper()
	g := genome.New(u, genome.ProvenanceRandom)
	g.Draws = append(g.Draws, draws...)
	g.RecomputeCoverage()
	return g
}

// assertConsistent verifies the genome's derived coverage matches a fresh
// extraction from its draws.
func assertConsistent(t *testing.T, g *genome.Genome) {
	t.Helper()
	want := triple.CoverageOfDraws(g.Draws)
	if g.CoverageCount() != len(want) {
		t.Fatalf("coverage count %d does not match draws (%d)", g.CoverageCount(), len(want))
	}
	for tr := range want {
		if _, ok := g.Coverage()[tr]; !ok {
			t.Fatalf("coverage missing triple %v", tr)
		}
	}
}

func coverageKeys(s triple.Set) map[triple.Triple]struct{} {
	out := make(map[triple.Triple]struct{}, len(s))
	for tr := range s {
		out[tr] = struct{}{}
	}
	return out
}
