package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"queuectl/internal/queue"
)

// jobSubmission is the JSON payload accepted by enqueue. Only command is
// required.
type jobSubmission struct {
	ID         string `json:"id"`
	Command    string `json:"command"`
	MaxRetries *int   `json:"max_retries"`
}

func newEnqueueCommand(ctx *commandContext) *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "enqueue [job-json]",
		Short: "Submit a job to the queue",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := resolvePayload(args, filePath)
			if err != nil {
				return err
			}

			var sub jobSubmission
			if err := json.Unmarshal([]byte(payload), &sub); err != nil {
				return fmt.Errorf("parse job payload: %w", err)
			}

			return ctx.withStore(func(store *queue.Store) error {
				job, err := store.Enqueue(cmd.Context(), queue.Submission{
					ID:         sub.ID,
					Command:    sub.Command,
					MaxRetries: sub.MaxRetries,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Enqueued job %s\n", job.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Path to a job JSON file")
	return cmd
}

func resolvePayload(args []string, filePath string) (string, error) {
	if strings.TrimSpace(filePath) != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("read job file: %w", err)
		}
		return string(data), nil
	}
	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		return args[0], nil
	}
	return "", errors.New("a job JSON payload or --file is required")
}
