// Package genome represents one candidate solution: an ordered collection of
// draws plus its derived triple coverage and fitness.
package genome

import (
	"math"

	"github.com/caioreina/lottery/internal/triple"
)

// Provenance tags record which construction strategy produced a genome.
const (
	ProvenanceRandom    = "random"
	ProvenanceGrouped   = "grouped"
	ProvenanceCrossover = "crossover"
)

// Genome owns its draw collection. Draw order carries no meaning but supports
// indexed access and removal. Coverage, the per-triple multiplicity counts and
// fitness are derived state: any change to Draws leaves them stale until
// RecomputeCoverage runs, and operators must restore consistency before the
// genome is read again.
type Genome struct {
	Draws      []triple.Draw
	Provenance string

	universe *triple.Universe
	coverage triple.Set
	// counts holds, for each covered triple, how many of the genome's draws
	// cover it. len(coverage) == len(counts); the multiset total feeds the
	// redundancy statistic.
	counts     map[triple.Triple]int
	multi      int
	fitness    float64
	hasFitness bool
}

// New returns an empty consistent genome bound to the given universe.
func New(u *triple.Universe, provenance string) *Genome {
	g := &Genome{universe: u, Provenance: provenance}
	g.RecomputeCoverage()
	return g
}

// Universe returns the shared triple universe the genome is scored against.
func (g *Genome) Universe() *triple.Universe { return g.universe }

// RecomputeCoverage rebuilds the coverage set and multiplicity counts from the
// current draw collection and invalidates fitness. Idempotent when Draws is
// unchanged.
func (g *Genome) RecomputeCoverage() {
	counts := make(map[triple.Triple]int, len(g.Draws)*triple.TriplesPerDraw)
	multi := 0
	for _, d := range g.Draws {
		for _, t := range triple.TriplesOfDraw(d) {
			counts[t]++
			multi++
		}
	}
	coverage := make(triple.Set, len(counts))
	for t := range counts {
		coverage[t] = struct{}{}
	}
	g.coverage = coverage
	g.counts = counts
	g.multi = multi
	g.hasFitness = false
	g.fitness = 0
}

// Coverage returns the set of distinct triples covered by the genome's draws.
// Callers must not modify the returned set.
func (g *Genome) Coverage() triple.Set { return g.coverage }

// CoverageCount returns the number of distinct covered triples.
func (g *Genome) CoverageCount() int { return len(g.coverage) }

// CoverageRatio returns covered triples over the universe size, in [0, 1].
func (g *Genome) CoverageRatio() float64 {
	return float64(len(g.coverage)) / float64(g.universe.Size())
}

// TripleCount returns how many of the genome's draws cover t.
func (g *Genome) TripleCount(t triple.Triple) int { return g.counts[t] }

// Redundancy returns the mean number of draws covering each covered triple,
// computed from the multiset of per-draw triples.
func (g *Genome) Redundancy() float64 {
	if len(g.coverage) == 0 {
		return 0
	}
	return float64(g.multi) / float64(len(g.coverage))
}

// Fitness returns the last score assigned by the evaluator. The second return
// is false while the genome is stale or has never been scored.
func (g *Genome) Fitness() (float64, bool) { return g.fitness, g.hasFitness }

// SetFitness records the evaluator's score and marks the genome scored.
func (g *Genome) SetFitness(f float64) {
	g.fitness = f
	g.hasFitness = true
}

// Copy returns an independent genome: draws are copied and coverage is
// recomputed rather than carried over, so the copy never aliases the
// original's derived state.
func (g *Genome) Copy() *Genome {
	dup := &Genome{
		Draws:      append([]triple.Draw(nil), g.Draws...),
		Provenance: g.Provenance,
		universe:   g.universe,
	}
	dup.RecomputeCoverage()
	if g.hasFitness {
		dup.SetFitness(g.fitness)
	}
	return dup
}

// DeduplicateDraws drops repeated draws, keeping first occurrences in order.
// The caller is responsible for recomputing coverage afterward.
func (g *Genome) DeduplicateDraws() {
	seen := make(map[triple.Draw]struct{}, len(g.Draws))
	kept := g.Draws[:0]
	for _, d := range g.Draws {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		kept = append(kept, d)
	}
	g.Draws = kept
}

// DefaultDrawCount derives how many draws a freshly generated genome receives:
// the theoretical minimum (universe size over triples per draw) scaled by the
// configured multiplier.
func DefaultDrawCount(u *triple.Universe, gamesMultiplier float64) int {
	n := int(math.Round(float64(u.Size()) / float64(triple.TriplesPerDraw) * gamesMultiplier))
	if n < 1 {
		n = 1
	}
	return n
}
