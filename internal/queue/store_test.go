package queue_test

import (
	"context"
	"errors"
	"testing"

	"queuectl/internal/queue"
	"queuectl/internal/testsupport"
)

func TestEnqueueAssignsDefaults(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	job, err := store.Enqueue(ctx, queue.Submission{Command: "echo hello"})
	if err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	if job.ID == "" {
		t.Fatal("expected generated job ID")
	}
	if job.State != queue.StatePending {
		t.Fatalf("expected pending state, got %s", job.State)
	}
	if job.Attempts != 0 {
		t.Fatalf("expected zero attempts, got %d", job.Attempts)
	}
	if job.MaxRetries != 3 {
		t.Fatalf("expected default max retries 3, got %d", job.MaxRetries)
	}
	if job.CreatedAt.IsZero() || job.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be populated")
	}

	fetched, err := store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched == nil || fetched.Command != "echo hello" {
		t.Fatalf("unexpected fetched job: %#v", fetched)
	}
}

func TestEnqueueRejectsEmptyCommand(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	_, err := store.Enqueue(context.Background(), queue.Submission{Command: "   "})
	if !errors.Is(err, queue.ErrInvalidJob) {
		t.Fatalf("expected ErrInvalidJob, got %v", err)
	}
}

func TestEnqueueRejectsDuplicateID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	if _, err := store.Enqueue(ctx, queue.Submission{ID: "job-1", Command: "true"}); err != nil {
		t.Fatalf("first Enqueue failed: %v", err)
	}
	_, err := store.Enqueue(ctx, queue.Submission{ID: "job-1", Command: "false"})
	if !errors.Is(err, queue.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestEnqueueHonorsMaxRetriesOverrides(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	if err := store.SetSetting(ctx, queue.SettingMaxRetries, "5"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}

	fromSetting, err := store.Enqueue(ctx, queue.Submission{Command: "true"})
	if err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	if fromSetting.MaxRetries != 5 {
		t.Fatalf("expected max retries from setting 5, got %d", fromSetting.MaxRetries)
	}

	zero := 0
	explicit, err := store.Enqueue(ctx, queue.Submission{Command: "true", MaxRetries: &zero})
	if err != nil {
		t.Fatalf("Enqueue with explicit retries failed: %v", err)
	}
	if explicit.MaxRetries != 0 {
		t.Fatalf("expected explicit max retries 0, got %d", explicit.MaxRetries)
	}

	negative := -1
	if _, err := store.Enqueue(ctx, queue.Submission{Command: "true", MaxRetries: &negative}); !errors.Is(err, queue.ErrInvalidJob) {
		t.Fatalf("expected ErrInvalidJob for negative retries, got %v", err)
	}
}

func TestGetByIDReturnsNilWhenAbsent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	job, err := store.GetByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if job != nil {
		t.Fatalf("expected nil job, got %#v", job)
	}
}

func TestListFiltersByState(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	first := testsupport.Enqueue(t, store, "echo one")
	second := testsupport.Enqueue(t, store, "echo two")
	if err := store.MarkCompleted(ctx, first.ID, "one"); err != nil {
		t.Fatalf("MarkCompleted failed: %v", err)
	}

	pending, err := store.List(ctx, queue.StatePending)
	if err != nil {
		t.Fatalf("List pending failed: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != second.ID {
		t.Fatalf("unexpected pending jobs: %#v", pending)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List all failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(all))
	}
}

func TestStatsGroupsByState(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	testsupport.Enqueue(t, store, "echo one")
	done := testsupport.Enqueue(t, store, "echo two")
	if err := store.MarkCompleted(ctx, done.ID, ""); err != nil {
		t.Fatalf("MarkCompleted failed: %v", err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats[queue.StatePending] != 1 {
		t.Fatalf("expected 1 pending, got %d", stats[queue.StatePending])
	}
	if stats[queue.StateCompleted] != 1 {
		t.Fatalf("expected 1 completed, got %d", stats[queue.StateCompleted])
	}
	if stats[queue.StateDead] != 0 {
		t.Fatalf("expected 0 dead, got %d", stats[queue.StateDead])
	}
}

func TestParseState(t *testing.T) {
	if state, ok := queue.ParseState(" Pending "); !ok || state != queue.StatePending {
		t.Fatalf("expected pending, got %q ok=%v", state, ok)
	}
	if _, ok := queue.ParseState("bogus"); ok {
		t.Fatal("expected unknown state to be rejected")
	}
	if _, ok := queue.ParseState(""); ok {
		t.Fatal("expected empty state to be rejected")
	}
}
