package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/caioreina/lottery/pkg/lottery"
)

func loadRunRequestFromConfig(path string) (lottery.RunRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return lottery.RunRequest{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return lottery.RunRequest{}, err
	}

	var req lottery.RunRequest
	if v, ok := asString(raw["run_id"]); ok {
		req.RunID = v
	}
	if v, ok := asInt(raw["population_size"]); ok {
		req.PopulationSize = v
	}
	if v, ok := asInt(raw["generations"]); ok {
		req.Generations = v
	}
	if v, ok := asFloat64(raw["mutation_rate"]); ok {
		req.MutationRate = v
	}
	if v, ok := asFloat64(raw["crossover_rate"]); ok {
		req.CrossoverRate = v
	}
	if v, ok := asInt(raw["elite_size"]); ok {
		req.EliteSize = v
	}
	if v, ok := asInt(raw["tournament_size"]); ok {
		req.TournamentSize = v
	}
	if v, ok := asFloat64(raw["games_multiplier"]); ok {
		req.GamesMultiplier = v
	}
	if v, ok := asFloat64(raw["coverage_weight"]); ok {
		req.CoverageWeight = v
	}
	if v, ok := asFloat64(raw["draw_count_weight"]); ok {
		req.DrawCountWeight = v
	}
	if v, ok := asString(raw["crossover_policy"]); ok {
		req.CrossoverPolicy = v
	}
	if v, ok := asString(raw["mutation_policy"]); ok {
		req.MutationPolicy = v
	}
	if v, ok := asInt64(raw["seed"]); ok {
		req.Seed = v
	}
	if v, ok := asInt(raw["workers"]); ok {
		req.Workers = v
	}
	if v, ok := asFloat64(raw["coverage_goal"]); ok {
		req.CoverageGoal = v
	}
	return req, nil
}

func loadOrDefaultRunRequest(configPath string) (lottery.RunRequest, error) {
	if configPath == "" {
		return lottery.RunRequest{}, nil
	}
	req, err := loadRunRequestFromConfig(configPath)
	if err != nil {
		return lottery.RunRequest{}, fmt.Errorf("load config: %w", err)
	}
	return req, nil
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case float64:
		return int(x), true
	default:
		return 0, false
	}
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case float64:
		return int64(x), true
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}
