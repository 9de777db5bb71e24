package queue_test

import (
	"context"
	"errors"
	"testing"

	"queuectl/internal/queue"
	"queuectl/internal/testsupport"
)

func deadLetterJob(t *testing.T, store *queue.Store) *queue.Job {
	t.Helper()

	ctx := context.Background()
	zero := 0
	job, err := store.Enqueue(ctx, queue.Submission{Command: "false", MaxRetries: &zero})
	if err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	claimed, err := store.Claim(ctx, "worker-1")
	if err != nil || claimed == nil {
		t.Fatalf("Claim failed: job=%v err=%v", claimed, err)
	}
	if state, err := store.MarkFailed(ctx, claimed, 1, "boom"); err != nil || state != queue.StateDead {
		t.Fatalf("MarkFailed: state=%s err=%v", state, err)
	}
	return job
}

func TestDeadLettersListsOnlyDeadJobs(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	dead := deadLetterJob(t, store)
	testsupport.Enqueue(t, store, "echo alive")

	jobs, err := store.DeadLetters(context.Background())
	if err != nil {
		t.Fatalf("DeadLetters failed: %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != dead.ID {
		t.Fatalf("unexpected dead letters: %#v", jobs)
	}
}

func TestRequeueDeadResetsJob(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	dead := deadLetterJob(t, store)

	if err := store.RequeueDead(ctx, dead.ID); err != nil {
		t.Fatalf("RequeueDead failed: %v", err)
	}

	job, err := store.GetByID(ctx, dead.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if job.State != queue.StatePending {
		t.Fatalf("expected pending state, got %s", job.State)
	}
	if job.Attempts != 0 {
		t.Fatalf("expected attempts reset, got %d", job.Attempts)
	}
	if job.LastError != "" {
		t.Fatalf("expected last error cleared, got %q", job.LastError)
	}

	claimed, err := store.Claim(ctx, "worker-1")
	if err != nil || claimed == nil {
		t.Fatalf("expected requeued job to be claimable: job=%v err=%v", claimed, err)
	}
	if claimed.ID != dead.ID {
		t.Fatalf("expected job %s, got %s", dead.ID, claimed.ID)
	}
}

func TestRequeueDeadRejectsNonDeadJob(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	pending := testsupport.Enqueue(t, store, "true")

	if err := store.RequeueDead(ctx, pending.ID); !errors.Is(err, queue.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for pending job, got %v", err)
	}
	if err := store.RequeueDead(ctx, "missing"); !errors.Is(err, queue.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown job, got %v", err)
	}

	job, err := store.GetByID(ctx, pending.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if job.State != queue.StatePending {
		t.Fatalf("pending job mutated by failed requeue: %#v", job)
	}
}
