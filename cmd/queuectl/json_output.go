package main

import (
	"encoding/json"
	"io"
	"time"

	"queuectl/internal/queue"
)

type jobView struct {
	ID          string `json:"id"`
	Command     string `json:"command"`
	State       string `json:"state"`
	Attempts    int    `json:"attempts"`
	MaxRetries  int    `json:"max_retries"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	AvailableAt int64  `json:"available_at"`
	LastError   string `json:"last_error,omitempty"`
	Worker      string `json:"worker,omitempty"`
}

func newJobView(job *queue.Job) jobView {
	return jobView{
		ID:          job.ID,
		Command:     job.Command,
		State:       string(job.State),
		Attempts:    job.Attempts,
		MaxRetries:  job.MaxRetries,
		CreatedAt:   job.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   job.UpdatedAt.Format(time.RFC3339),
		AvailableAt: job.AvailableAt,
		LastError:   job.LastError,
		Worker:      job.Worker,
	}
}

// writeJobLines emits one JSON object per line so the output pipes
// cleanly into jq and similar tools.
func writeJobLines(out io.Writer, jobs []*queue.Job) error {
	enc := json.NewEncoder(out)
	for _, job := range jobs {
		if err := enc.Encode(newJobView(job)); err != nil {
			return err
		}
	}
	return nil
}
