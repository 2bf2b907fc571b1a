package evo

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/caioreina/lottery/internal/genome"
	"github.com/caioreina/lottery/internal/triple"
)

// Population owns one generation of genomes and the cross-generation state:
// the generation counter and the best genome ever observed, kept as an
// independent copy so later in-place mutation of members cannot touch it.
type Population struct {
	cfg       Config
	universe  *triple.Universe
	rng       *rand.Rand
	eval      Evaluator
	selector  TournamentSelector
	crossover CrossoverPolicy
	mutation  MutationPolicy

	individuals []*genome.Genome
	best        *genome.Genome
	generation  int
}

// NewPopulation validates the configuration and resolves the configured
// policy variants. No genomes exist until Initialize runs.
func NewPopulation(cfg Config, u *triple.Universe, rng *rand.Rand) (*Population, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("universe is required")
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}

	eval := NewEvaluator(cfg)
	crossover, err := ResolveCrossover(cfg.CrossoverPolicy, eval)
	if err != nil {
		return nil, err
	}
	mutation, err := ResolveMutation(cfg.MutationPolicy)
	if err != nil {
		return nil, err
	}

	return &Population{
		cfg:       cfg,
		universe:  u,
		rng:       rng,
		eval:      eval,
		selector:  TournamentSelector{TournamentSize: cfg.TournamentSize},
		crossover: crossover,
		mutation:  mutation,
	}, nil
}

// Initialize seeds the population: half the genomes come from random
// construction, half from grouped construction, all scored, and the initial
// best is recorded.
func (p *Population) Initialize() error {
	drawCount := genome.DefaultDrawCount(p.universe, p.cfg.GamesMultiplier)
	grouped := p.cfg.PopulationSize / 2
	random := p.cfg.PopulationSize - grouped

	individuals := make([]*genome.Genome, 0, p.cfg.PopulationSize)
	for i := 0; i < random; i++ {
		g, err := genome.NewRandom(p.universe, p.rng, drawCount)
		if err != nil {
			return fmt.Errorf("seed random genome: %w", err)
		}
		individuals = append(individuals, g)
	}
	for i := 0; i < grouped; i++ {
		g, err := genome.NewGrouped(p.universe, p.rng, drawCount)
		if err != nil {
			return fmt.Errorf("seed grouped genome: %w", err)
		}
		individuals = append(individuals, g)
	}

	p.scoreAll(individuals)
	p.individuals = individuals
	p.updateBest()
	p.generation = 1
	return nil
}

// Evolve advances one generation: elites carry forward as copies, the
// remainder comes from selection, rate-gated crossover, mutation and
// redundancy cleanup. The population is truncated to exactly the configured
// size and the best-ever genome is updated.
func (p *Population) Evolve() error {
	if len(p.individuals) == 0 {
		return fmt.Errorf("population is not initialized")
	}

	next := p.selectElite()
	for len(next) < p.cfg.PopulationSize {
		parent1, parent2, err := p.selector.PickParents(p.rng, p.individuals)
		if err != nil {
			return err
		}

		var child1, child2 *genome.Genome
		if p.rng.Float64() < p.cfg.CrossoverRate {
			child1, child2, err = p.crossover.Cross(p.rng, parent1, parent2)
			if err != nil {
				return fmt.Errorf("crossover %s: %w", p.crossover.Name(), err)
			}
		} else {
			child1 = parent1.Copy()
			child2 = parent2.Copy()
		}

		for _, child := range []*genome.Genome{child1, child2} {
			if err := p.mutation.Mutate(p.rng, child, p.cfg.MutationRate); err != nil {
				return fmt.Errorf("mutation %s: %w", p.mutation.Name(), err)
			}
			RemoveRedundant(child)
			p.eval.Score(child)
		}
		next = append(next, child1, child2)
	}

	if len(next) > p.cfg.PopulationSize {
		next = next[:p.cfg.PopulationSize]
	}
	p.individuals = next
	p.updateBest()
	p.generation++
	return nil
}

// Best returns the best genome observed across all generations. The returned
// genome is owned by the population; callers treat it as read-only.
func (p *Population) Best() *genome.Genome { return p.best }

// Generation returns the current generation number. Zero until Initialize.
func (p *Population) Generation() int { return p.generation }

// Individuals exposes the current generation for statistics; read-only.
func (p *Population) Individuals() []*genome.Genome { return p.individuals }

// selectElite copies the configured number of fittest genomes for carry-over.
func (p *Population) selectElite() []*genome.Genome {
	ranked := append([]*genome.Genome(nil), p.individuals...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return fitnessOf(ranked[i]) > fitnessOf(ranked[j])
	})
	count := p.cfg.EliteSize
	if count > len(ranked) {
		count = len(ranked)
	}
	elite := make([]*genome.Genome, 0, p.cfg.PopulationSize)
	for _, g := range ranked[:count] {
		elite = append(elite, g.Copy())
	}
	return elite
}

// scoreAll recomputes and scores genomes over a bounded worker pool. Scoring
// is pure per genome, so fanning it out preserves determinism under a fixed
// seed.
func (p *Population) scoreAll(individuals []*genome.Genome) {
	workers := p.cfg.Workers
	if workers <= 1 || len(individuals) <= 1 {
		for _, g := range individuals {
			p.eval.Score(g)
		}
		return
	}
	if workers > len(individuals) {
		workers = len(individuals)
	}

	jobs := make(chan *genome.Genome)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for g := range jobs {
				p.eval.Score(g)
			}
		}()
	}
	for _, g := range individuals {
		jobs <- g
	}
	close(jobs)
	wg.Wait()
}

func (p *Population) updateBest() {
	if len(p.individuals) == 0 {
		return
	}
	current := p.individuals[0]
	for _, g := range p.individuals[1:] {
		if fitnessOf(g) > fitnessOf(current) {
			current = g
		}
	}
	if p.best == nil || fitnessOf(current) > fitnessOf(p.best) {
		p.best = current.Copy()
	}
}
