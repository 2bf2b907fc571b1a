package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// RunRecord stores the parameters and final statistics of one optimizer run.
// Candidate solutions themselves are never persisted, only run metadata.
type RunRecord struct {
	VersionedRecord
	ID              string  `json:"id"`
	CreatedAtUTC    string  `json:"created_at_utc"`
	Seed            int64   `json:"seed"`
	PopulationSize  int     `json:"population_size"`
	Generations     int     `json:"generations"`
	MutationRate    float64 `json:"mutation_rate"`
	CrossoverRate   float64 `json:"crossover_rate"`
	EliteSize       int     `json:"elite_size"`
	GamesMultiplier float64 `json:"games_multiplier"`
	CrossoverPolicy string  `json:"crossover_policy"`
	MutationPolicy  string  `json:"mutation_policy"`

	FinalBestFitness   float64 `json:"final_best_fitness"`
	FinalCoverage      int     `json:"final_coverage"`
	FinalCoverageRatio float64 `json:"final_coverage_ratio"`
	FinalDrawCount     int     `json:"final_draw_count"`
	FinalRedundancy    float64 `json:"final_redundancy"`
	BestProvenance     string  `json:"best_provenance"`
}

// GenerationDiagnostics is one generation's statistics snapshot.
type GenerationDiagnostics struct {
	Generation        int     `json:"generation"`
	BestFitness       float64 `json:"best_fitness"`
	MeanFitness       float64 `json:"mean_fitness"`
	MinFitness        float64 `json:"min_fitness"`
	BestCoverage      int     `json:"best_coverage"`
	BestCoverageRatio float64 `json:"best_coverage_ratio"`
	BestDrawCount     int     `json:"best_draw_count"`
	BestRedundancy    float64 `json:"best_redundancy"`
}
