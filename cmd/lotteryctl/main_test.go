package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunNoArgs(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(nil, &stdout, &stderr); code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
	if !strings.Contains(stderr.String(), "usage:") {
		t.Fatalf("expected usage output, got %q", stderr.String())
	}
}

func TestRunUnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"bogus"}, &stdout, &stderr); code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
	if !strings.Contains(stderr.String(), "unknown command") {
		t.Fatalf("expected unknown command error, got %q", stderr.String())
	}
}

func TestRunHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"help"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stdout.String(), "usage:") {
		t.Fatalf("expected usage output, got %q", stdout.String())
	}
}

func TestCmdPolicies(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"policies"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	out := stdout.String()
	for _, name := range []string{"naive", "coverage", "redundancy", "uniform", "smart", "remove-redundant"} {
		if !strings.Contains(out, name) {
			t.Fatalf("policies output missing %q:\n%s", name, out)
		}
	}
}

func TestCmdRunSmallOptimization(t *testing.T) {
	var stdout, stderr bytes.Buffer
	args := []string{
		"run",
		"-store", "memory",
		"-run-id", "cli-test",
		"-population-size", "4",
		"-generations", "1",
		"-elite-size", "1",
		"-tournament-size", "2",
		"-games-multiplier", "0.05",
		"-coverage-weight", "1000",
		"-draw-count-weight", "1",
		"-seed", "1",
		"-coverage-goal", "0",
		"-print-draws",
	}
	if code := run(args, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, want 0; stderr: %s", code, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "run cli-test finished") {
		t.Fatalf("expected run summary, got:\n%s", out)
	}
	if !strings.Contains(out, "generation") {
		t.Fatalf("expected per-generation progress, got:\n%s", out)
	}
	if !strings.Contains(out, "best solution") {
		t.Fatalf("expected best solution block, got:\n%s", out)
	}
}

func TestCmdRunRejectsBadFlags(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"run", "-no-such-flag"}, &stdout, &stderr); code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
}

func TestCmdHistoryRequiresRunID(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"history", "-store", "memory"}, &stdout, &stderr); code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
	if !strings.Contains(stderr.String(), "-run-id is required") {
		t.Fatalf("expected run-id error, got %q", stderr.String())
	}
}

func TestCmdDiagnosticsRequiresRunID(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"diagnostics", "-store", "memory"}, &stdout, &stderr); code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
}

func TestCmdRunsEmptyStore(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"runs", "-store", "memory"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, want 0; stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "no stored runs") {
		t.Fatalf("expected empty listing, got %q", stdout.String())
	}
}
