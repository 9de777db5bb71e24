package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"queuectl/internal/queue"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var stateFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs, optionally filtered by state",
		RunE: func(cmd *cobra.Command, args []string) error {
			var states []queue.State
			if trimmed := strings.TrimSpace(stateFlag); trimmed != "" {
				state, ok := queue.ParseState(trimmed)
				if !ok {
					return fmt.Errorf("unknown state %q (expected one of %s)", trimmed, knownStates())
				}
				states = append(states, state)
			}

			return ctx.withStore(func(store *queue.Store) error {
				jobs, err := store.List(cmd.Context(), states...)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(jobs) == 0 {
					fmt.Fprintln(out, "Queue is empty")
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
						string(job.State),
						fmt.Sprintf("%d/%d", job.Attempts, job.MaxRetries),
						formatTime(job.CreatedAt),
						truncateText(job.LastError, 40),
					})
				}
				table := renderTable(
					[]string{"ID", "Command", "State", "Attempts", "Created", "Last Error"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
				)
				fmt.Fprintln(out, table)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&stateFlag, "state", "", "Filter by job state")
	return cmd
}

func knownStates() string {
	names := make([]string, 0, len(queue.AllStates()))
	for _, state := range queue.AllStates() {
		names = append(names, string(state))
	}
	return strings.Join(names, ", ")
}
