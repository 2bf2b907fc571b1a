// Command lotteryctl runs the triple-coverage optimizer and inspects stored
// run history.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/caioreina/lottery/internal/evo"
	"github.com/caioreina/lottery/pkg/lottery"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 2
	}

	switch args[0] {
	case "run":
		return cmdRun(args[1:], stdout, stderr)
	case "runs":
		return cmdRuns(args[1:], stdout, stderr)
	case "history":
		return cmdHistory(args[1:], stdout, stderr)
	case "diagnostics":
		return cmdDiagnostics(args[1:], stdout, stderr)
	case "policies":
		return cmdPolicies(stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: lotteryctl <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  run          run the evolutionary optimizer")
	fmt.Fprintln(w, "  runs         list stored runs")
	fmt.Fprintln(w, "  history      print a run's best-fitness-by-generation curve")
	fmt.Fprintln(w, "  diagnostics  print a run's per-generation statistics")
	fmt.Fprintln(w, "  policies     list available crossover and mutation policies")
}

func cmdRun(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "JSON config file; flags override its values")
	storeKind := fs.String("store", "", "run-history backend: memory or sqlite")
	dbPath := fs.String("db", "", "sqlite database path")
	runID := fs.String("run-id", "", "run identifier (default: generated)")
	popSize := fs.Int("population-size", evo.DefaultPopulationSize, "population size")
	generations := fs.Int("generations", evo.DefaultGenerations, "number of generations")
	mutationRate := fs.Float64("mutation-rate", evo.DefaultMutationRate, "per-draw mutation probability")
	crossoverRate := fs.Float64("crossover-rate", evo.DefaultCrossoverRate, "crossover probability")
	eliteSize := fs.Int("elite-size", evo.DefaultEliteSize, "genomes carried over unchanged")
	tournamentSize := fs.Int("tournament-size", evo.DefaultTournamentSize, "selection tournament size")
	gamesMultiplier := fs.Float64("games-multiplier", evo.DefaultGamesMultiplier, "draw count multiplier over the theoretical minimum")
	coverageWeight := fs.Float64("coverage-weight", evo.DefaultCoverageWeight, "fitness weight per covered triple")
	drawCountWeight := fs.Float64("draw-count-weight", evo.DefaultDrawCountWeight, "fitness penalty per draw")
	crossoverPolicy := fs.String("crossover", "naive", "crossover policy variant")
	mutationPolicy := fs.String("mutation", "uniform", "mutation policy variant")
	seed := fs.Int64("seed", 0, "random seed (default: time-based)")
	workers := fs.Int("workers", 0, "fitness rescoring workers")
	coverageGoal := fs.Float64("coverage-goal", 0.99, "stop once best coverage reaches this ratio; 0 disables")
	printDraws := fs.Bool("print-draws", false, "print the best solution's draws")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	req, err := loadOrDefaultRunRequest(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	setFlags := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })
	override := func(name string, apply func()) {
		if setFlags[name] || *configPath == "" {
			apply()
		}
	}
	override("run-id", func() { req.RunID = *runID })
	override("population-size", func() { req.PopulationSize = *popSize })
	override("generations", func() { req.Generations = *generations })
	override("mutation-rate", func() { req.MutationRate = *mutationRate })
	override("crossover-rate", func() { req.CrossoverRate = *crossoverRate })
	override("elite-size", func() { req.EliteSize = *eliteSize })
	override("tournament-size", func() { req.TournamentSize = *tournamentSize })
	override("games-multiplier", func() { req.GamesMultiplier = *gamesMultiplier })
	override("coverage-weight", func() { req.CoverageWeight = *coverageWeight })
	override("draw-count-weight", func() { req.DrawCountWeight = *drawCountWeight })
	override("crossover", func() { req.CrossoverPolicy = *crossoverPolicy })
	override("mutation", func() { req.MutationPolicy = *mutationPolicy })
	override("seed", func() { req.Seed = *seed })
	override("workers", func() { req.Workers = *workers })
	override("coverage-goal", func() { req.CoverageGoal = *coverageGoal })

	client, err := lottery.New(lottery.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer client.Close()

	ctx := context.Background()
	if err := client.Init(ctx); err != nil {
		fmt.Fprintf(stderr, "error: init store: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "population=%d generations=%d mutation=%.2f crossover=%.2f elite=%d multiplier=%.2f\n",
		req.PopulationSize, req.Generations, req.MutationRate, req.CrossoverRate, req.EliteSize, req.GamesMultiplier)
	fmt.Fprintf(stdout, "policies: crossover=%s mutation=%s\n\n", req.CrossoverPolicy, req.MutationPolicy)

	req.Progress = func(generation int, best lottery.GenomeStats) {
		fmt.Fprintf(stdout, "generation %3d: fitness=%.0f coverage=%d (%.2f%%) draws=%d redundancy=%.2f\n",
			generation, best.Fitness, best.Coverage, best.CoverageRatio*100, best.DrawCount, best.Redundancy)
	}

	summary, err := client.Run(ctx, req)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "\nrun %s finished after %d generations\n", summary.RunID, summary.Generations)
	fmt.Fprintf(stdout, "best solution (%s):\n", summary.Best.Provenance)
	fmt.Fprintf(stdout, "  draws:      %d\n", summary.Best.DrawCount)
	fmt.Fprintf(stdout, "  coverage:   %d triples (%.2f%%)\n", summary.Best.Coverage, summary.Best.CoverageRatio*100)
	fmt.Fprintf(stdout, "  redundancy: %.2f\n", summary.Best.Redundancy)
	fmt.Fprintf(stdout, "  fitness:    %.0f\n", summary.Best.Fitness)

	if *printDraws {
		fmt.Fprintln(stdout)
		for _, draw := range summary.Draws {
			parts := make([]string, len(draw))
			for i, n := range draw {
				parts[i] = fmt.Sprintf("%02d", n)
			}
			fmt.Fprintln(stdout, strings.Join(parts, " "))
		}
	}
	return 0
}

func cmdRuns(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	fs.SetOutput(stderr)
	storeKind := fs.String("store", "", "run-history backend: memory or sqlite")
	dbPath := fs.String("db", "", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	client, err := lottery.New(lottery.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer client.Close()

	ctx := context.Background()
	if err := client.Init(ctx); err != nil {
		fmt.Fprintf(stderr, "error: init store: %v\n", err)
		return 1
	}

	runs, err := client.Runs(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if len(runs) == 0 {
		fmt.Fprintln(stdout, "no stored runs")
		return 0
	}
	for _, run := range runs {
		fmt.Fprintf(stdout, "%s  %s  gens=%d draws=%d coverage=%.2f%% fitness=%.0f\n",
			run.ID, run.CreatedAtUTC, run.Generations, run.FinalDrawCount, run.FinalCoverageRatio*100, run.FinalBestFitness)
	}
	return 0
}

func cmdHistory(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(stderr)
	storeKind := fs.String("store", "", "run-history backend: memory or sqlite")
	dbPath := fs.String("db", "", "sqlite database path")
	runID := fs.String("run-id", "", "run identifier")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *runID == "" {
		fmt.Fprintln(stderr, "error: -run-id is required")
		return 2
	}

	client, err := lottery.New(lottery.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer client.Close()

	ctx := context.Background()
	if err := client.Init(ctx); err != nil {
		fmt.Fprintf(stderr, "error: init store: %v\n", err)
		return 1
	}

	history, err := client.FitnessHistory(ctx, *runID)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	for i, fitness := range history {
		fmt.Fprintf(stdout, "generation %3d: %.0f\n", i+1, fitness)
	}
	return 0
}

func cmdDiagnostics(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("diagnostics", flag.ContinueOnError)
	fs.SetOutput(stderr)
	storeKind := fs.String("store", "", "run-history backend: memory or sqlite")
	dbPath := fs.String("db", "", "sqlite database path")
	runID := fs.String("run-id", "", "run identifier")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *runID == "" {
		fmt.Fprintln(stderr, "error: -run-id is required")
		return 2
	}

	client, err := lottery.New(lottery.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer client.Close()

	ctx := context.Background()
	if err := client.Init(ctx); err != nil {
		fmt.Fprintf(stderr, "error: init store: %v\n", err)
		return 1
	}

	diagnostics, err := client.Diagnostics(ctx, *runID)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	for _, d := range diagnostics {
		fmt.Fprintf(stdout, "generation %3d: best=%.0f mean=%.0f min=%.0f coverage=%d (%.2f%%) draws=%d redundancy=%.2f\n",
			d.Generation, d.BestFitness, d.MeanFitness, d.MinFitness, d.BestCoverage, d.BestCoverageRatio*100, d.BestDrawCount, d.BestRedundancy)
	}
	return 0
}

func cmdPolicies(stdout io.Writer) int {
	fmt.Fprintln(stdout, "crossover policies:")
	for _, name := range evo.ListCrossovers() {
		fmt.Fprintf(stdout, "  %s\n", name)
	}
	fmt.Fprintln(stdout, "mutation policies:")
	for _, name := range evo.ListMutations() {
		fmt.Fprintf(stdout, "  %s\n", name)
	}
	return 0
}
