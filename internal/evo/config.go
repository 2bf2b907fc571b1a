// Package evo implements the evolutionary engine: selection, crossover and
// mutation policies, fitness evaluation and the generation loop.
package evo

import "fmt"

// Default run parameters.
const (
	DefaultPopulationSize  = 20
	DefaultGenerations     = 30
	DefaultMutationRate    = 0.1
	DefaultCrossoverRate   = 0.8
	DefaultEliteSize       = 2
	DefaultTournamentSize  = 5
	DefaultGamesMultiplier = 1.5
	DefaultCoverageWeight  = 1000
	DefaultDrawCountWeight = 1
)

// Config carries every engine parameter. Policies are addressed by their
// registry names; empty names select the defaults.
type Config struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	CrossoverRate  float64
	EliteSize      int
	TournamentSize int

	// GamesMultiplier scales the draw count of freshly generated genomes
	// relative to the theoretical minimum.
	GamesMultiplier float64

	// CoverageWeight and DrawCountWeight shape the fitness function; coverage
	// must dominate so shrinking a solution never beats covering a triple.
	CoverageWeight  float64
	DrawCountWeight float64

	CrossoverPolicy string
	MutationPolicy  string

	// Workers bounds the scoring worker pool. Zero or one scores serially.
	Workers int
}

// DefaultConfig returns the documented default parameters.
func DefaultConfig() Config {
	return Config{
		PopulationSize:  DefaultPopulationSize,
		Generations:     DefaultGenerations,
		MutationRate:    DefaultMutationRate,
		CrossoverRate:   DefaultCrossoverRate,
		EliteSize:       DefaultEliteSize,
		TournamentSize:  DefaultTournamentSize,
		GamesMultiplier: DefaultGamesMultiplier,
		CoverageWeight:  DefaultCoverageWeight,
		DrawCountWeight: DefaultDrawCountWeight,
	}
}

// Validate rejects parameter combinations the engine cannot run with.
func (c Config) Validate() error {
	if c.PopulationSize < 2 {
		return fmt.Errorf("population size must be >= 2, got %d", c.PopulationSize)
	}
	if c.Generations <= 0 {
		return fmt.Errorf("generations must be > 0, got %d", c.Generations)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("mutation rate must be in [0, 1], got %v", c.MutationRate)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf("crossover rate must be in [0, 1], got %v", c.CrossoverRate)
	}
	if c.EliteSize < 0 || c.EliteSize > c.PopulationSize {
		return fmt.Errorf("elite size must be in [0, %d], got %d", c.PopulationSize, c.EliteSize)
	}
	if c.TournamentSize <= 0 {
		return fmt.Errorf("tournament size must be > 0, got %d", c.TournamentSize)
	}
	if c.GamesMultiplier <= 0 {
		return fmt.Errorf("games multiplier must be > 0, got %v", c.GamesMultiplier)
	}
	if c.CoverageWeight <= 0 {
		return fmt.Errorf("coverage weight must be > 0, got %v", c.CoverageWeight)
	}
	if c.DrawCountWeight < 0 {
		return fmt.Errorf("draw count weight must be >= 0, got %v", c.DrawCountWeight)
	}
	if c.CoverageWeight <= c.DrawCountWeight {
		return fmt.Errorf("coverage weight (%v) must exceed draw count weight (%v)", c.CoverageWeight, c.DrawCountWeight)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	return nil
}
