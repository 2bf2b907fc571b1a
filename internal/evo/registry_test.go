package evo

import (
	"errors"
	"testing"
)

func TestResolveCrossoverDefaults(t *testing.T) {
	eval := NewEvaluator(DefaultConfig())
	policy, err := ResolveCrossover("", eval)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if policy.Name() != "naive" {
		t.Fatalf("empty name resolved to %q, want naive", policy.Name())
	}
}

func TestResolveMutationDefaults(t *testing.T) {
	policy, err := ResolveMutation("")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if policy.Name() != "uniform" {
		t.Fatalf("empty name resolved to %q, want uniform", policy.Name())
	}
}

func TestResolveRegisteredVariants(t *testing.T) {
	eval := NewEvaluator(DefaultConfig())
	for _, name := range []string{"naive", "coverage", "redundancy"} {
		policy, err := ResolveCrossover(name, eval)
		if err != nil {
			t.Fatalf("resolve crossover %q: %v", name, err)
		}
		if policy.Name() != name {
			t.Fatalf("crossover %q reports name %q", name, policy.Name())
		}
	}
	for _, name := range []string{"uniform", "smart", "remove-redundant"} {
		policy, err := ResolveMutation(name)
		if err != nil {
			t.Fatalf("resolve mutation %q: %v", name, err)
		}
		if policy.Name() != name {
			t.Fatalf("mutation %q reports name %q", name, policy.Name())
		}
	}
}

func TestResolveUnknownPolicy(t *testing.T) {
	if _, err := ResolveCrossover("no-such-policy", NewEvaluator(DefaultConfig())); !errors.Is(err, ErrPolicyNotFound) {
		t.Fatalf("expected ErrPolicyNotFound, got %v", err)
	}
	if _, err := ResolveMutation("no-such-policy"); !errors.Is(err, ErrPolicyNotFound) {
		t.Fatalf("expected ErrPolicyNotFound, got %v", err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	err := RegisterCrossover("naive", func(e Evaluator) CrossoverPolicy { return NaiveCrossover{Eval: e} })
	if !errors.Is(err, ErrPolicyExists) {
		t.Fatalf("expected ErrPolicyExists, got %v", err)
	}
	err = RegisterMutation("uniform", func() MutationPolicy { return UniformMutation{} })
	if !errors.Is(err, ErrPolicyExists) {
		t.Fatalf("expected ErrPolicyExists, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	if err := RegisterCrossover("", func(e Evaluator) CrossoverPolicy { return NaiveCrossover{Eval: e} }); err == nil {
		t.Fatal("expected error for empty name")
	}
	if err := RegisterCrossover("x", nil); err == nil {
		t.Fatal("expected error for nil builder")
	}
	if err := RegisterMutation("", func() MutationPolicy { return UniformMutation{} }); err == nil {
		t.Fatal("expected error for empty name")
	}
	if err := RegisterMutation("x", nil); err == nil {
		t.Fatal("expected error for nil builder")
	}
}

func TestListPolicies(t *testing.T) {
	crossovers := ListCrossovers()
	mutations := ListMutations()
	if len(crossovers) < 3 || len(mutations) < 3 {
		t.Fatalf("expected at least 3 of each, got %d crossovers and %d mutations", len(crossovers), len(mutations))
	}
	for i := 1; i < len(crossovers); i++ {
		if crossovers[i-1] >= crossovers[i] {
			t.Fatalf("crossover names not sorted: %v", crossovers)
		}
	}
	for i := 1; i < len(mutations); i++ {
		if mutations[i-1] >= mutations[i] {
			t.Fatalf("mutation names not sorted: %v", mutations)
		}
	}
}
