package lottery

import (
	"context"
	"testing"
)

func testRequest() RunRequest {
	return RunRequest{
		RunID:           "run-test",
		PopulationSize:  4,
		Generations:     2,
		MutationRate:    0.1,
		CrossoverRate:   0.8,
		EliteSize:       1,
		TournamentSize:  2,
		GamesMultiplier: 0.05,
		Seed:            1,
	}
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := New(Options{StoreKind: "memory"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	if err := client.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	return client
}

func TestNewRejectsUnsupportedStore(t *testing.T) {
	if _, err := New(Options{StoreKind: "cassandra"}); err == nil {
		t.Fatal("expected error for unsupported store backend")
	}
}

func TestRunProducesSummary(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	summary, err := client.Run(ctx, testRequest())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if summary.RunID != "run-test" {
		t.Fatalf("run id = %q", summary.RunID)
	}
	// Generation 1 is the seed population, then two evolved generations.
	if summary.Generations != 3 {
		t.Fatalf("generations = %d, want 3", summary.Generations)
	}
	if len(summary.BestByGeneration) != 3 {
		t.Fatalf("best history length = %d, want 3", len(summary.BestByGeneration))
	}
	for i := 1; i < len(summary.BestByGeneration); i++ {
		if summary.BestByGeneration[i] < summary.BestByGeneration[i-1] {
			t.Fatalf("best fitness regressed at generation %d: %v", i+1, summary.BestByGeneration)
		}
	}

	if summary.Best.DrawCount == 0 || summary.Best.Coverage == 0 {
		t.Fatalf("empty best stats: %+v", summary.Best)
	}
	if summary.Best.CoverageRatio <= 0 || summary.Best.CoverageRatio > 1 {
		t.Fatalf("coverage ratio out of range: %v", summary.Best.CoverageRatio)
	}
	if len(summary.Draws) != summary.Best.DrawCount {
		t.Fatalf("draws length %d does not match draw count %d", len(summary.Draws), summary.Best.DrawCount)
	}
	for _, draw := range summary.Draws {
		if len(draw) != 6 {
			t.Fatalf("draw %v does not have 6 numbers", draw)
		}
		for i, n := range draw {
			if n < 1 || n > 60 {
				t.Fatalf("draw %v has number %d outside [1, 60]", draw, n)
			}
			if i > 0 && draw[i-1] >= n {
				t.Fatalf("draw %v is not strictly ascending", draw)
			}
		}
	}
}

func TestRunPersistsRunRecords(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	req := testRequest()

	summary, err := client.Run(ctx, req)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	runs, err := client.Runs(ctx)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 stored run, got %d", len(runs))
	}
	run := runs[0]
	if run.ID != req.RunID || run.Seed != req.Seed || run.PopulationSize != req.PopulationSize {
		t.Fatalf("stored run mismatch: %+v", run)
	}
	if run.Generations != summary.Generations {
		t.Fatalf("stored generations = %d, want %d", run.Generations, summary.Generations)
	}
	if run.FinalBestFitness != summary.Best.Fitness || run.FinalDrawCount != summary.Best.DrawCount {
		t.Fatalf("stored final stats mismatch: %+v vs %+v", run, summary.Best)
	}

	history, err := client.FitnessHistory(ctx, req.RunID)
	if err != nil {
		t.Fatalf("fitness history: %v", err)
	}
	if len(history) != len(summary.BestByGeneration) {
		t.Fatalf("history length %d, want %d", len(history), len(summary.BestByGeneration))
	}
	for i := range history {
		if history[i] != summary.BestByGeneration[i] {
			t.Fatalf("history[%d] = %v, want %v", i, history[i], summary.BestByGeneration[i])
		}
	}

	diagnostics, err := client.Diagnostics(ctx, req.RunID)
	if err != nil {
		t.Fatalf("diagnostics: %v", err)
	}
	if len(diagnostics) != summary.Generations {
		t.Fatalf("diagnostics length %d, want %d", len(diagnostics), summary.Generations)
	}
	for i, d := range diagnostics {
		if d.Generation != i+1 {
			t.Fatalf("diagnostics[%d].Generation = %d", i, d.Generation)
		}
		if d.BestFitness < d.MeanFitness || d.MeanFitness < d.MinFitness {
			t.Fatalf("inconsistent fitness summary: %+v", d)
		}
	}
}

func TestRunHistoryLookupMisses(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	if _, err := client.FitnessHistory(ctx, "missing"); err == nil {
		t.Fatal("expected error for unknown run")
	}
	if _, err := client.Diagnostics(ctx, "missing"); err == nil {
		t.Fatal("expected error for unknown run")
	}
}

func TestRunDeterministicUnderSeed(t *testing.T) {
	ctx := context.Background()

	first, err := newTestClient(t).Run(ctx, testRequest())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	second, err := newTestClient(t).Run(ctx, testRequest())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(first.BestByGeneration) != len(second.BestByGeneration) {
		t.Fatalf("history lengths diverged: %d vs %d", len(first.BestByGeneration), len(second.BestByGeneration))
	}
	for i := range first.BestByGeneration {
		if first.BestByGeneration[i] != second.BestByGeneration[i] {
			t.Fatalf("generation %d diverged: %v vs %v", i+1, first.BestByGeneration[i], second.BestByGeneration[i])
		}
	}
	if first.Best.Fitness != second.Best.Fitness || first.Best.DrawCount != second.Best.DrawCount {
		t.Fatalf("best stats diverged: %+v vs %+v", first.Best, second.Best)
	}
}

func TestRunProgressCallback(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	req := testRequest()

	var generations []int
	req.Progress = func(generation int, best GenomeStats) {
		generations = append(generations, generation)
		if best.DrawCount == 0 {
			t.Fatal("progress reported empty best stats")
		}
	}

	if _, err := client.Run(ctx, req); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(generations) != 3 {
		t.Fatalf("expected 3 progress calls, got %d", len(generations))
	}
	for i, g := range generations {
		if g != i+1 {
			t.Fatalf("progress generation = %d, want %d", g, i+1)
		}
	}
}

func TestRunCoverageGoalStopsEarly(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	req := testRequest()
	req.Generations = 10
	req.CoverageGoal = 0.0001

	summary, err := client.Run(ctx, req)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	// The goal is met after the first evolved generation.
	if summary.Generations != 2 {
		t.Fatalf("generations = %d, want early stop at 2", summary.Generations)
	}
}

func TestRunHonorsContextCancellation(t *testing.T) {
	client := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Run(ctx, testRequest()); err == nil {
		t.Fatal("expected context cancellation error")
	}
}

func TestRunFillsDefaults(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	req := testRequest()
	req.RunID = ""
	summary, err := client.Run(ctx, req)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.RunID == "" {
		t.Fatal("expected a generated run id")
	}

	runs, err := client.Runs(ctx)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != summary.RunID {
		t.Fatalf("stored run id mismatch: %+v", runs)
	}
}
