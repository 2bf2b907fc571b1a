package evo

import "github.com/caioreina/lottery/internal/genome"

// Evaluator scores genomes: covered triples weigh positively, draw count
// weighs negatively. With the default weights, covering one more triple is
// always worth more than any feasible saving in draws.
type Evaluator struct {
	CoverageWeight  float64
	DrawCountWeight float64
}

// NewEvaluator builds an evaluator from the run configuration.
func NewEvaluator(cfg Config) Evaluator {
	return Evaluator{
		CoverageWeight:  cfg.CoverageWeight,
		DrawCountWeight: cfg.DrawCountWeight,
	}
}

// Score computes and records the genome's fitness.
func (e Evaluator) Score(g *genome.Genome) float64 {
	f := float64(g.CoverageCount())*e.CoverageWeight - float64(len(g.Draws))*e.DrawCountWeight
	g.SetFitness(f)
	return f
}
