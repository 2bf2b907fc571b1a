// Package lottery is the public entry point: it wires configuration, the
// triple universe, the evolutionary engine and the run-history store.
package lottery

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/caioreina/lottery/internal/evo"
	"github.com/caioreina/lottery/internal/genome"
	"github.com/caioreina/lottery/internal/model"
	"github.com/caioreina/lottery/internal/storage"
	"github.com/caioreina/lottery/internal/triple"
)

const defaultDBPath = "lottery.db"

type Options struct {
	StoreKind string
	DBPath    string
}

type Client struct {
	store    storage.Store
	universe *triple.Universe
}

// RunRequest carries one optimization run's parameters. Zero values select
// the documented defaults.
type RunRequest struct {
	RunID          string
	PopulationSize int
	Generations    int
	MutationRate   float64
	CrossoverRate  float64
	EliteSize      int
	TournamentSize int

	GamesMultiplier float64
	CoverageWeight  float64
	DrawCountWeight float64

	CrossoverPolicy string
	MutationPolicy  string

	Seed    int64
	Workers int

	// CoverageGoal stops the run early once the best genome covers this
	// fraction of the universe. Zero disables the early stop.
	CoverageGoal float64

	// Progress, when set, receives each generation's best statistics.
	Progress func(generation int, best GenomeStats)
}

// GenomeStats is the read-only statistics view of a genome.
type GenomeStats struct {
	DrawCount     int
	Coverage      int
	CoverageRatio float64
	Redundancy    float64
	Fitness       float64
	Provenance    string
}

type RunSummary struct {
	RunID            string
	Generations      int
	BestByGeneration []float64
	Best             GenomeStats

	// Draws holds the best solution's draws. They are returned in memory
	// only, never persisted.
	Draws [][]int
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{
		store:    store,
		universe: triple.DefaultUniverse(),
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	return c.store.Init(ctx)
}

// Run executes one full optimization: seed, evolve until the generation limit
// or the coverage goal, persist run statistics, and report the best solution.
func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	req = fillDefaults(req)

	cfg := evo.DefaultConfig()
	cfg.PopulationSize = req.PopulationSize
	cfg.Generations = req.Generations
	cfg.MutationRate = req.MutationRate
	cfg.CrossoverRate = req.CrossoverRate
	cfg.EliteSize = req.EliteSize
	cfg.TournamentSize = req.TournamentSize
	cfg.GamesMultiplier = req.GamesMultiplier
	cfg.CoverageWeight = req.CoverageWeight
	cfg.DrawCountWeight = req.DrawCountWeight
	cfg.CrossoverPolicy = req.CrossoverPolicy
	cfg.MutationPolicy = req.MutationPolicy
	cfg.Workers = req.Workers

	rng := rand.New(rand.NewSource(req.Seed))
	population, err := evo.NewPopulation(cfg, c.universe, rng)
	if err != nil {
		return RunSummary{}, err
	}
	if err := population.Initialize(); err != nil {
		return RunSummary{}, err
	}

	bestHistory := make([]float64, 0, cfg.Generations+1)
	diagnostics := make([]model.GenerationDiagnostics, 0, cfg.Generations+1)
	record := func() {
		best := population.Best()
		bestHistory = append(bestHistory, fitnessValue(best))
		diagnostics = append(diagnostics, summarizeGeneration(population))
		if req.Progress != nil {
			req.Progress(population.Generation(), statsOf(best))
		}
	}
	record()

	for g := 0; g < cfg.Generations; g++ {
		if err := ctx.Err(); err != nil {
			return RunSummary{}, err
		}
		if err := population.Evolve(); err != nil {
			return RunSummary{}, err
		}
		record()
		if req.CoverageGoal > 0 && population.Best().CoverageRatio() >= req.CoverageGoal {
			break
		}
	}

	best := population.Best()
	summary := RunSummary{
		RunID:            req.RunID,
		Generations:      population.Generation(),
		BestByGeneration: bestHistory,
		Best:             statsOf(best),
		Draws:            drawsOf(best),
	}

	if err := c.persistRun(ctx, req, summary, diagnostics); err != nil {
		return RunSummary{}, fmt.Errorf("persist run %s: %w", req.RunID, err)
	}
	return summary, nil
}

// Runs lists stored run records, oldest first.
func (c *Client) Runs(ctx context.Context) ([]model.RunRecord, error) {
	return c.store.ListRuns(ctx)
}

// FitnessHistory returns the stored best-fitness-by-generation curve.
func (c *Client) FitnessHistory(ctx context.Context, runID string) ([]float64, error) {
	history, ok, err := c.store.GetFitnessHistory(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no fitness history for run %s", runID)
	}
	return history, nil
}

// Diagnostics returns the stored per-generation statistics.
func (c *Client) Diagnostics(ctx context.Context, runID string) ([]model.GenerationDiagnostics, error) {
	diagnostics, ok, err := c.store.GetGenerationDiagnostics(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no diagnostics for run %s", runID)
	}
	return diagnostics, nil
}

func (c *Client) persistRun(ctx context.Context, req RunRequest, summary RunSummary, diagnostics []model.GenerationDiagnostics) error {
	run := model.RunRecord{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: storage.CurrentSchemaVersion,
			CodecVersion:  storage.CurrentCodecVersion,
		},
		ID:              req.RunID,
		CreatedAtUTC:    time.Now().UTC().Format(time.RFC3339),
		Seed:            req.Seed,
		PopulationSize:  req.PopulationSize,
		Generations:     summary.Generations,
		MutationRate:    req.MutationRate,
		CrossoverRate:   req.CrossoverRate,
		EliteSize:       req.EliteSize,
		GamesMultiplier: req.GamesMultiplier,
		CrossoverPolicy: req.CrossoverPolicy,
		MutationPolicy:  req.MutationPolicy,

		FinalBestFitness:   summary.Best.Fitness,
		FinalCoverage:      summary.Best.Coverage,
		FinalCoverageRatio: summary.Best.CoverageRatio,
		FinalDrawCount:     summary.Best.DrawCount,
		FinalRedundancy:    summary.Best.Redundancy,
		BestProvenance:     summary.Best.Provenance,
	}
	if err := c.store.SaveRun(ctx, run); err != nil {
		return err
	}
	if err := c.store.SaveFitnessHistory(ctx, req.RunID, summary.BestByGeneration); err != nil {
		return err
	}
	return c.store.SaveGenerationDiagnostics(ctx, req.RunID, diagnostics)
}

func fillDefaults(req RunRequest) RunRequest {
	if req.RunID == "" {
		req.RunID = uuid.NewString()
	}
	if req.PopulationSize <= 0 {
		req.PopulationSize = evo.DefaultPopulationSize
	}
	if req.Generations <= 0 {
		req.Generations = evo.DefaultGenerations
	}
	if req.MutationRate == 0 {
		req.MutationRate = evo.DefaultMutationRate
	}
	if req.CrossoverRate == 0 {
		req.CrossoverRate = evo.DefaultCrossoverRate
	}
	if req.EliteSize == 0 {
		req.EliteSize = evo.DefaultEliteSize
	}
	if req.TournamentSize <= 0 {
		req.TournamentSize = evo.DefaultTournamentSize
	}
	if req.GamesMultiplier == 0 {
		req.GamesMultiplier = evo.DefaultGamesMultiplier
	}
	if req.CoverageWeight == 0 {
		req.CoverageWeight = evo.DefaultCoverageWeight
	}
	if req.DrawCountWeight == 0 {
		req.DrawCountWeight = evo.DefaultDrawCountWeight
	}
	if req.Seed == 0 {
		req.Seed = time.Now().UnixNano()
	}
	return req
}

func summarizeGeneration(p *evo.Population) model.GenerationDiagnostics {
	individuals := p.Individuals()
	best := p.Best()

	total := 0.0
	minFitness := fitnessValue(individuals[0])
	for _, g := range individuals {
		f := fitnessValue(g)
		total += f
		if f < minFitness {
			minFitness = f
		}
	}

	return model.GenerationDiagnostics{
		Generation:        p.Generation(),
		BestFitness:       fitnessValue(best),
		MeanFitness:       total / float64(len(individuals)),
		MinFitness:        minFitness,
		BestCoverage:      best.CoverageCount(),
		BestCoverageRatio: best.CoverageRatio(),
		BestDrawCount:     len(best.Draws),
		BestRedundancy:    best.Redundancy(),
	}
}

func statsOf(g *genome.Genome) GenomeStats {
	return GenomeStats{
		DrawCount:     len(g.Draws),
		Coverage:      g.CoverageCount(),
		CoverageRatio: g.CoverageRatio(),
		Redundancy:    g.Redundancy(),
		Fitness:       fitnessValue(g),
		Provenance:    g.Provenance,
	}
}

func drawsOf(g *genome.Genome) [][]int {
	out := make([][]int, 0, len(g.Draws))
	for _, d := range g.Draws {
		out = append(out, append([]int(nil), d[:]...))
	}
	return out
}

func fitnessValue(g *genome.Genome) float64 {
	f, _ := g.Fitness()
	return f
}
