package evo

import (
	"fmt"
	"math/rand"

	"github.com/caioreina/lottery/internal/genome"
)

// TournamentSelector picks parents by sampling a small pool uniformly without
// replacement and keeping the fittest member.
type TournamentSelector struct {
	TournamentSize int
}

// Pick runs one tournament over the population. A tournament size larger than
// the population is clamped.
func (s TournamentSelector) Pick(rng *rand.Rand, population []*genome.Genome) (*genome.Genome, error) {
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}
	if len(population) == 0 {
		return nil, fmt.Errorf("population is empty")
	}
	size := s.TournamentSize
	if size <= 0 {
		size = DefaultTournamentSize
	}
	if size > len(population) {
		size = len(population)
	}

	sampled := rng.Perm(len(population))[:size]
	best := population[sampled[0]]
	for _, idx := range sampled[1:] {
		candidate := population[idx]
		if fitnessOf(candidate) > fitnessOf(best) {
			best = candidate
		}
	}
	return best, nil
}

// PickParents draws two tournament winners. The second tournament runs over
// the population minus the first winner, so the parents are always distinct
// genomes and selection terminates even when one genome dominates every
// tournament. Population size >= 2 is a precondition.
func (s TournamentSelector) PickParents(rng *rand.Rand, population []*genome.Genome) (*genome.Genome, *genome.Genome, error) {
	if len(population) < 2 {
		return nil, nil, fmt.Errorf("parent selection requires population >= 2, got %d", len(population))
	}
	first, err := s.Pick(rng, population)
	if err != nil {
		return nil, nil, err
	}

	rest := make([]*genome.Genome, 0, len(population)-1)
	excluded := false
	for _, g := range population {
		if !excluded && g == first {
			excluded = true
			continue
		}
		rest = append(rest, g)
	}
	second, err := s.Pick(rng, rest)
	if err != nil {
		return nil, nil, err
	}
	return first, second, nil
}

func fitnessOf(g *genome.Genome) float64 {
	f, _ := g.Fitness()
	return f
}
