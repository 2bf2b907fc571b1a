package evo

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrPolicyExists   = errors.New("policy already registered")
	ErrPolicyNotFound = errors.New("policy not found")
)

// The registries collapse the historical crossover and mutation rewrites into
// named variants behind one interface, selectable by configuration.
var policyRegistry = struct {
	mu        sync.RWMutex
	crossover map[string]func(Evaluator) CrossoverPolicy
	mutation  map[string]func() MutationPolicy
}{
	crossover: make(map[string]func(Evaluator) CrossoverPolicy),
	mutation:  make(map[string]func() MutationPolicy),
}

func init() {
	mustRegisterCrossover("naive", func(e Evaluator) CrossoverPolicy { return NaiveCrossover{Eval: e} })
	mustRegisterCrossover("coverage", func(e Evaluator) CrossoverPolicy { return CoverageAwareCrossover{Eval: e} })
	mustRegisterCrossover("redundancy", func(e Evaluator) CrossoverPolicy { return RedundancyAwareCrossover{Eval: e} })
	mustRegisterMutation("uniform", func() MutationPolicy { return UniformMutation{} })
	mustRegisterMutation("smart", func() MutationPolicy { return SmartMutation{} })
	mustRegisterMutation("remove-redundant", func() MutationPolicy { return RedundancyMutation{} })
}

// RegisterCrossover adds a named crossover variant.
func RegisterCrossover(name string, build func(Evaluator) CrossoverPolicy) error {
	if name == "" {
		return errors.New("crossover policy name is required")
	}
	if build == nil {
		return errors.New("crossover policy builder is required")
	}

	policyRegistry.mu.Lock()
	defer policyRegistry.mu.Unlock()

	if _, exists := policyRegistry.crossover[name]; exists {
		return fmt.Errorf("%w: %s", ErrPolicyExists, name)
	}
	policyRegistry.crossover[name] = build
	return nil
}

// RegisterMutation adds a named mutation variant.
func RegisterMutation(name string, build func() MutationPolicy) error {
	if name == "" {
		return errors.New("mutation policy name is required")
	}
	if build == nil {
		return errors.New("mutation policy builder is required")
	}

	policyRegistry.mu.Lock()
	defer policyRegistry.mu.Unlock()

	if _, exists := policyRegistry.mutation[name]; exists {
		return fmt.Errorf("%w: %s", ErrPolicyExists, name)
	}
	policyRegistry.mutation[name] = build
	return nil
}

// ResolveCrossover returns the named variant bound to the evaluator. Empty
// selects the naive exchange.
func ResolveCrossover(name string, eval Evaluator) (CrossoverPolicy, error) {
	if name == "" {
		name = "naive"
	}

	policyRegistry.mu.RLock()
	build, ok := policyRegistry.crossover[name]
	policyRegistry.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: crossover %q", ErrPolicyNotFound, name)
	}
	return build(eval), nil
}

// ResolveMutation returns the named variant. Empty selects uniform replacement.
func ResolveMutation(name string) (MutationPolicy, error) {
	if name == "" {
		name = "uniform"
	}

	policyRegistry.mu.RLock()
	build, ok := policyRegistry.mutation[name]
	policyRegistry.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: mutation %q", ErrPolicyNotFound, name)
	}
	return build(), nil
}

// ListCrossovers returns the registered crossover names sorted.
func ListCrossovers() []string {
	policyRegistry.mu.RLock()
	defer policyRegistry.mu.RUnlock()

	names := make([]string, 0, len(policyRegistry.crossover))
	for name := range policyRegistry.crossover {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListMutations returns the registered mutation names sorted.
func ListMutations() []string {
	policyRegistry.mu.RLock()
	defer policyRegistry.mu.RUnlock()

	names := make([]string, 0, len(policyRegistry.mutation))
	for name := range policyRegistry.mutation {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func mustRegisterCrossover(name string, build func(Evaluator) CrossoverPolicy) {
	if err := RegisterCrossover(name, build); err != nil {
		panic(err)
	}
}

func mustRegisterMutation(name string, build func() MutationPolicy) {
	if err := RegisterMutation(name, build); err != nil {
		panic(err)
	}
}
