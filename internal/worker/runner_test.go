package worker_test

import (
	"context"
	"strings"
	"testing"

	"queuectl/internal/worker"
)

func TestShellRunnerSuccess(t *testing.T) {
	runner := worker.ShellRunner{}
	code, output := runner.Run(context.Background(), "echo hello")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (output %q)", code, output)
	}
	if !strings.Contains(output, "hello") {
		t.Fatalf("expected output to contain command result, got %q", output)
	}
}

func TestShellRunnerReportsExitCode(t *testing.T) {
	runner := worker.ShellRunner{}
	code, _ := runner.Run(context.Background(), "exit 7")
	if code != 7 {
		t.Fatalf("expected exit 7, got %d", code)
	}
}

func TestShellRunnerCapturesStderr(t *testing.T) {
	runner := worker.ShellRunner{}
	code, output := runner.Run(context.Background(), "echo oops >&2; exit 1")
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(output, "oops") {
		t.Fatalf("expected stderr in combined output, got %q", output)
	}
}

func TestShellRunnerSpawnFailure(t *testing.T) {
	runner := worker.ShellRunner{Shell: "/nonexistent-shell"}
	code, output := runner.Run(context.Background(), "echo hello")
	if code != 1 {
		t.Fatalf("expected exit 1 for spawn failure, got %d", code)
	}
	if output == "" {
		t.Fatal("expected spawn error message as output")
	}
}
