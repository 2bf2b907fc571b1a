package evo

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/caioreina/lottery/internal/genome"
	"github.com/caioreina/lottery/internal/triple"
)

// MutationPolicy perturbs a genome's draws in place and leaves it in the
// consistent state (coverage recomputed). Genomes with zero draws pass
// through unchanged.
type MutationPolicy interface {
	Name() string
	Mutate(rng *rand.Rand, g *genome.Genome, rate float64) error
}

// UniformMutation replaces each draw, with probability rate, by a freshly
// generated random draw.
type UniformMutation struct{}

func (UniformMutation) Name() string { return "uniform" }

func (UniformMutation) Mutate(rng *rand.Rand, g *genome.Genome, rate float64) error {
	if rng == nil {
		return fmt.Errorf("random source is required")
	}
	if len(g.Draws) == 0 {
		return nil
	}
	for i := range g.Draws {
		if rng.Float64() < rate {
			g.Draws[i] = genome.RandomDraw(g.Universe(), rng)
		}
	}
	g.RecomputeCoverage()
	return nil
}

// SmartMutation targets the genome's missing triples: replaced draws are
// seeded from uncovered triples so each mutation fills a known gap. Falls
// back to uniform replacement when nothing is missing.
type SmartMutation struct{}

func (SmartMutation) Name() string { return "smart" }

func (SmartMutation) Mutate(rng *rand.Rand, g *genome.Genome, rate float64) error {
	if rng == nil {
		return fmt.Errorf("random source is required")
	}
	if len(g.Draws) == 0 {
		return nil
	}

	missing := g.Universe().Missing(g.Coverage())
	if len(missing) == 0 {
		return UniformMutation{}.Mutate(rng, g, rate)
	}

	for i := range g.Draws {
		if rng.Float64() >= rate {
			continue
		}
		g.Draws[i] = gapFillingDraw(g.Universe(), rng, missing)
		g.RecomputeCoverage()
		missing = g.Universe().Missing(g.Coverage())
		if len(missing) == 0 {
			break
		}
	}
	g.RecomputeCoverage()
	return nil
}

// gapFillingDraw builds a draw seeded from one or two missing triples, padded
// with random distinct numbers up to the draw size.
func gapFillingDraw(u *triple.Universe, rng *rand.Rand, missing []triple.Triple) triple.Draw {
	seed := make(map[int]struct{}, triple.DrawSize)
	if len(missing) == 1 {
		for _, n := range missing[0] {
			seed[n] = struct{}{}
		}
	} else {
		picked := rng.Perm(len(missing))[:2]
		for _, idx := range picked {
			for _, n := range missing[idx] {
				seed[n] = struct{}{}
			}
		}
	}

	numbers := make([]int, 0, triple.DrawSize)
	for n := range seed {
		if len(numbers) == triple.DrawSize {
			break
		}
		numbers = append(numbers, n)
	}
	for len(numbers) < triple.DrawSize {
		n := u.Min() + rng.Intn(u.Max()-u.Min()+1)
		if _, ok := seed[n]; ok {
			continue
		}
		seed[n] = struct{}{}
		numbers = append(numbers, n)
	}

	sort.Ints(numbers)
	var d triple.Draw
	copy(d[:], numbers)
	return d
}

// RedundancyMutation removes fully redundant draws instead of perturbing.
// The mutation rate is ignored: removal is deterministic given the draws.
type RedundancyMutation struct{}

func (RedundancyMutation) Name() string { return "remove-redundant" }

func (RedundancyMutation) Mutate(_ *rand.Rand, g *genome.Genome, _ float64) error {
	RemoveRedundant(g)
	return nil
}

// RemoveRedundant drops every draw none of whose triples it alone covers.
// Multiplicities are decremented as draws are removed, so a draw that becomes
// the sole coverer of a triple mid-pass is kept and coverage never shrinks.
func RemoveRedundant(g *genome.Genome) {
	if len(g.Draws) <= 1 {
		return
	}

	counts := make(map[triple.Triple]int, len(g.Draws)*triple.TriplesPerDraw)
	for _, d := range g.Draws {
		for _, t := range triple.TriplesOfDraw(d) {
			counts[t]++
		}
	}

	kept := g.Draws[:0]
	removed := false
	for _, d := range g.Draws {
		ts := triple.TriplesOfDraw(d)
		redundant := true
		for _, t := range ts {
			if counts[t] <= 1 {
				redundant = false
				break
			}
		}
		if redundant {
			for _, t := range ts {
				counts[t]--
			}
			removed = true
			continue
		}
		kept = append(kept, d)
	}
	g.Draws = kept
	if removed {
		g.RecomputeCoverage()
	}
}
