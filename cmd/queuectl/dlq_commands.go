package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"queuectl/internal/queue"
)

func newDLQCommand(ctx *commandContext) *cobra.Command {
	dlqCmd := &cobra.Command{
		Use:   "dlq",
		Short: "Inspect and requeue dead-lettered jobs",
	}

	dlqCmd.AddCommand(newDLQListCommand(ctx))
	dlqCmd.AddCommand(newDLQRetryCommand(ctx))

	return dlqCmd
}

func newDLQListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List dead-lettered jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *queue.Store) error {
				jobs, err := store.DeadLetters(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(jobs) == 0 {
					fmt.Fprintln(out, "Dead-letter queue is empty")
					return nil
				}

				if !isTerminalWriter(out) {
					return writeJobLines(out, jobs)
				}

				rows := make([][]string, 0, len(jobs))
				for _, job := range jobs {
					rows = append(rows, []string{
						job.ID,
						truncateText(job.Command, 40),
						fmt.Sprintf("%d/%d", job.Attempts, job.MaxRetries),
						formatTime(job.CreatedAt),
						truncateText(job.LastError, 60),
					})
				}
				table := renderTable(
					[]string{"ID", "Command", "Attempts", "Created", "Last Error"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
				)
				fmt.Fprintln(out, table)
				return nil
			})
		},
	}
}

func newDLQRetryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "retry <job-id>",
		Short: "Requeue a dead job with a fresh retry budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *queue.Store) error {
				if err := store.RequeueDead(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Requeued dead job %s\n", args[0])
				return nil
			})
		},
	}
}
