package evo

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/caioreina/lottery/internal/genome"
	"github.com/caioreina/lottery/internal/triple"
)

// CrossoverPolicy produces two offspring from two parent genomes. Every
// policy works on copies (parents are never aliased or modified) and returns
// children in the consistent state: draws deduplicated, coverage and fitness
// recomputed.
type CrossoverPolicy interface {
	Name() string
	Cross(rng *rand.Rand, parent1, parent2 *genome.Genome) (*genome.Genome, *genome.Genome, error)
}

// NaiveCrossover exchanges draw-list tails around one random cut point in
// each parent.
type NaiveCrossover struct {
	Eval Evaluator
}

func (NaiveCrossover) Name() string { return "naive" }

func (c NaiveCrossover) Cross(rng *rand.Rand, parent1, parent2 *genome.Genome) (*genome.Genome, *genome.Genome, error) {
	if rng == nil {
		return nil, nil, fmt.Errorf("random source is required")
	}
	child1 := parent1.Copy()
	child2 := parent2.Copy()
	if len(parent1.Draws) == 0 || len(parent2.Draws) == 0 {
		return child1, child2, nil
	}

	cut1 := cutPoint(rng, len(parent1.Draws))
	cut2 := cutPoint(rng, len(parent2.Draws))

	child1.Draws = concatDraws(parent1.Draws[:cut1], parent2.Draws[cut2:])
	child2.Draws = concatDraws(parent2.Draws[:cut2], parent1.Draws[cut1:])
	child1.Provenance = genome.ProvenanceCrossover
	child2.Provenance = genome.ProvenanceCrossover

	finishChild(c.Eval, child1)
	finishChild(c.Eval, child2)
	return child1, child2, nil
}

// CoverageAwareCrossover swaps draws that carry triples the other parent does
// not cover at all.
type CoverageAwareCrossover struct {
	Eval Evaluator
}

func (CoverageAwareCrossover) Name() string { return "coverage" }

func (c CoverageAwareCrossover) Cross(rng *rand.Rand, parent1, parent2 *genome.Genome) (*genome.Genome, *genome.Genome, error) {
	if rng == nil {
		return nil, nil, fmt.Errorf("random source is required")
	}
	child1 := parent1.Copy()
	child2 := parent2.Copy()
	if len(parent1.Draws) == 0 || len(parent2.Draws) == 0 {
		return child1, child2, nil
	}

	unique1 := setDifference(parent1.Coverage(), parent2.Coverage())
	unique2 := setDifference(parent2.Coverage(), parent1.Coverage())
	good1 := drawsCoveringAny(parent1.Draws, unique1)
	good2 := drawsCoveringAny(parent2.Draws, unique2)

	swapCount := len(good1)
	if len(good2) < swapCount {
		swapCount = len(good2)
	}
	if limit := len(parent1.Draws) / 3; limit < swapCount {
		swapCount = limit
	}

	if swapCount > 0 {
		removeRandomDraws(rng, child1, swapCount)
		removeRandomDraws(rng, child2, swapCount)
		child1.Draws = append(child1.Draws, sampleDraws(rng, good2, swapCount)...)
		child2.Draws = append(child2.Draws, sampleDraws(rng, good1, swapCount)...)
	}
	child1.Provenance = genome.ProvenanceCrossover
	child2.Provenance = genome.ProvenanceCrossover

	finishChild(c.Eval, child1)
	finishChild(c.Eval, child2)
	return child1, child2, nil
}

// RedundancyAwareCrossover exchanges each parent's most redundant draws and
// keeps only swaps whose coverage balance passes the acceptance rule. The
// thresholds are empirically tuned; they are fields so callers can retune
// them without touching the algorithm.
type RedundancyAwareCrossover struct {
	Eval Evaluator

	// AcceptHigh and AcceptFloor admit one-sided swaps: a swap whose better
	// side beats AcceptHigh is accepted as long as the worse side's balance
	// stays at or above AcceptFloor.
	AcceptHigh  int
	AcceptFloor int

	// MaxAccepted and MaxAttempts stop the swap loop.
	MaxAccepted int
	MaxAttempts int
}

// Default redundancy-aware swap limits.
const (
	DefaultAcceptHigh  = 2
	DefaultAcceptFloor = -2
	DefaultMaxAccepted = 20
	DefaultMaxAttempts = 100
)

func (RedundancyAwareCrossover) Name() string { return "redundancy" }

func (c RedundancyAwareCrossover) Cross(rng *rand.Rand, parent1, parent2 *genome.Genome) (*genome.Genome, *genome.Genome, error) {
	if rng == nil {
		return nil, nil, fmt.Errorf("random source is required")
	}
	child1 := parent1.Copy()
	child2 := parent2.Copy()
	if len(parent1.Draws) == 0 || len(parent2.Draws) == 0 {
		return child1, child2, nil
	}

	acceptHigh := c.AcceptHigh
	acceptFloor := c.AcceptFloor
	maxAccepted := c.MaxAccepted
	maxAttempts := c.MaxAttempts
	if acceptHigh == 0 {
		acceptHigh = DefaultAcceptHigh
	}
	if acceptFloor == 0 {
		acceptFloor = DefaultAcceptFloor
	}
	if maxAccepted <= 0 {
		maxAccepted = DefaultMaxAccepted
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	stack1 := redundantDraws(child1)
	stack2 := redundantDraws(child2)

	accepted := 0
	for attempts := 0; attempts < maxAttempts && accepted < maxAccepted; attempts++ {
		if len(stack1) == 0 || len(stack2) == 0 {
			break
		}
		out1 := stack1[0]
		out2 := stack2[0]
		stack1 = stack1[1:]
		stack2 = stack2[1:]

		balance1 := swapBalance(child1, out1, out2)
		balance2 := swapBalance(child2, out2, out1)

		if !acceptSwap(balance1, balance2, acceptHigh, acceptFloor) {
			continue
		}

		// Draws are always exchanged as a pair, even when only one side
		// benefits; only the benefiting side is refreshed here, the loop's
		// final recomputation settles the rest.
		replaceDraw(child1, out1, out2)
		replaceDraw(child2, out2, out1)
		if balance1 > 0 {
			child1.RecomputeCoverage()
		}
		if balance2 > 0 {
			child2.RecomputeCoverage()
		}
		accepted++
	}
	child1.Provenance = genome.ProvenanceCrossover
	child2.Provenance = genome.ProvenanceCrossover

	finishChild(c.Eval, child1)
	finishChild(c.Eval, child2)
	return child1, child2, nil
}

// acceptSwap admits an exchange when both sides gain coverage, or when one
// side's balance beats acceptHigh while the other's stays at or above
// acceptFloor.
func acceptSwap(balance1, balance2, acceptHigh, acceptFloor int) bool {
	if balance1 > 0 && balance2 > 0 {
		return true
	}
	return (balance1 > acceptHigh && balance2 >= acceptFloor) ||
		(balance2 > acceptHigh && balance1 >= acceptFloor)
}

// redundantDraws returns the genome's fully redundant draws (every covered
// triple also covered by at least one other draw), most redundant first.
func redundantDraws(g *genome.Genome) []triple.Draw {
	type ranked struct {
		draw   triple.Draw
		weight int
	}
	candidates := make([]ranked, 0, len(g.Draws))
	for _, d := range g.Draws {
		redundant := true
		weight := 0
		for _, t := range triple.TriplesOfDraw(d) {
			count := g.TripleCount(t)
			if count < 2 {
				redundant = false
				break
			}
			weight += count
		}
		if redundant {
			candidates = append(candidates, ranked{draw: d, weight: weight})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].weight > candidates[j].weight
	})
	out := make([]triple.Draw, len(candidates))
	for i, c := range candidates {
		out[i] = c.draw
	}
	return out
}

// swapBalance scores replacing outgoing with incoming in g: triples the
// incoming draw newly adds minus triples only the outgoing draw covered.
// Positive means the side's coverage grows.
func swapBalance(g *genome.Genome, outgoing, incoming triple.Draw) int {
	gained := 0
	for _, t := range triple.TriplesOfDraw(incoming) {
		if g.TripleCount(t) == 0 {
			gained++
		}
	}
	lost := 0
	for _, t := range triple.TriplesOfDraw(outgoing) {
		if g.TripleCount(t) == 1 {
			lost++
		}
	}
	return gained - lost
}

func replaceDraw(g *genome.Genome, outgoing, incoming triple.Draw) {
	for i, d := range g.Draws {
		if d == outgoing {
			g.Draws[i] = incoming
			return
		}
	}
	// The outgoing draw was already displaced by an earlier swap; append so
	// the exchanged pair still lands in both genomes.
	g.Draws = append(g.Draws, incoming)
}

func finishChild(eval Evaluator, child *genome.Genome) {
	child.DeduplicateDraws()
	child.RecomputeCoverage()
	eval.Score(child)
}

func cutPoint(rng *rand.Rand, n int) int {
	if n < 2 {
		return n
	}
	return 1 + rng.Intn(n-1)
}

func concatDraws(head, tail []triple.Draw) []triple.Draw {
	out := make([]triple.Draw, 0, len(head)+len(tail))
	out = append(out, head...)
	out = append(out, tail...)
	return out
}

func setDifference(a, b triple.Set) triple.Set {
	out := make(triple.Set)
	for t := range a {
		if _, ok := b[t]; !ok {
			out[t] = struct{}{}
		}
	}
	return out
}

// drawsCoveringAny returns the draws that cover at least one of the wanted
// triples.
func drawsCoveringAny(draws []triple.Draw, wanted triple.Set) []triple.Draw {
	if len(wanted) == 0 {
		return nil
	}
	out := make([]triple.Draw, 0, len(draws))
	for _, d := range draws {
		for _, t := range triple.TriplesOfDraw(d) {
			if _, ok := wanted[t]; ok {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

func removeRandomDraws(rng *rand.Rand, g *genome.Genome, count int) {
	for i := 0; i < count && len(g.Draws) > 0; i++ {
		idx := rng.Intn(len(g.Draws))
		g.Draws = append(g.Draws[:idx], g.Draws[idx+1:]...)
	}
}

func sampleDraws(rng *rand.Rand, draws []triple.Draw, count int) []triple.Draw {
	if count > len(draws) {
		count = len(draws)
	}
	out := make([]triple.Draw, 0, count)
	for _, idx := range rng.Perm(len(draws))[:count] {
		out = append(out, draws[idx])
	}
	return out
}
