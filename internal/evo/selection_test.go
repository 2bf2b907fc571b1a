package evo

import (
	"math/rand"
	"testing"

	"github.com/caioreina/lottery/internal/genome"
)

func scoredGenomes(t *testing.T, fitnesses ...float64) []*genome.Genome {
	t.Helper()
	u := newTestUniverse(t, 1, 9)
	out := make([]*genome.Genome, 0, len(fitnesses))
	for _, f := range fitnesses {
		g := genome.New(u, genome.ProvenanceRandom)
		g.SetFitness(f)
		out = append(out, g)
	}
	return out
}

func TestTournamentPickFullPopulation(t *testing.T) {
	population := scoredGenomes(t, 3, 9, 1, 7)
	rng := rand.New(rand.NewSource(1))

	// Tournament over the whole population always yields the global best.
	s := TournamentSelector{TournamentSize: len(population)}
	for i := 0; i < 20; i++ {
		winner, err := s.Pick(rng, population)
		if err != nil {
			t.Fatalf("pick: %v", err)
		}
		if winner != population[1] {
			t.Fatalf("expected the fittest genome, got fitness %v", fitnessOf(winner))
		}
	}
}

func TestTournamentPickClampsSize(t *testing.T) {
	population := scoredGenomes(t, 2, 5)
	rng := rand.New(rand.NewSource(1))
	s := TournamentSelector{TournamentSize: 100}
	winner, err := s.Pick(rng, population)
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	if winner != population[1] {
		t.Fatal("clamped tournament must still find the fittest genome")
	}
}

func TestTournamentPickErrors(t *testing.T) {
	s := TournamentSelector{TournamentSize: 3}
	if _, err := s.Pick(nil, scoredGenomes(t, 1)); err == nil {
		t.Fatal("expected error for nil random source")
	}
	if _, err := s.Pick(rand.New(rand.NewSource(1)), nil); err == nil {
		t.Fatal("expected error for empty population")
	}
}

func TestPickParentsDistinct(t *testing.T) {
	population := scoredGenomes(t, 1, 2, 3, 4, 5, 6)
	rng := rand.New(rand.NewSource(5))
	s := TournamentSelector{TournamentSize: 2}
	for i := 0; i < 50; i++ {
		p1, p2, err := s.PickParents(rng, population)
		if err != nil {
			t.Fatalf("pick parents: %v", err)
		}
		if p1 == p2 {
			t.Fatal("parents must be distinct genomes")
		}
	}
}

func TestPickParentsPopulationOfTwo(t *testing.T) {
	// With two genomes of unequal fitness the clamped tournament always
	// crowns the same winner; the second parent must still come out of the
	// remaining member instead of resampling forever.
	population := scoredGenomes(t, 1, 2)
	rng := rand.New(rand.NewSource(9))
	s := TournamentSelector{TournamentSize: 5}
	for i := 0; i < 20; i++ {
		p1, p2, err := s.PickParents(rng, population)
		if err != nil {
			t.Fatalf("pick parents: %v", err)
		}
		if p1 != population[1] || p2 != population[0] {
			t.Fatalf("expected the fitter genome paired with the remaining one, got %v and %v", fitnessOf(p1), fitnessOf(p2))
		}
	}
}

func TestPickParentsRequiresTwo(t *testing.T) {
	s := TournamentSelector{TournamentSize: 2}
	if _, _, err := s.PickParents(rand.New(rand.NewSource(1)), scoredGenomes(t, 1)); err == nil {
		t.Fatal("expected error for population of one")
	}
}
