package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"queuectl/internal/daemonctl"
	"queuectl/internal/queue"
)

var stateCaser = cases.Title(language.English)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show job counts per state and worker pool liveness",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *queue.Store) error {
				stats, err := store.Stats(cmd.Context())
				if err != nil {
					return err
				}

				rows := make([][]string, 0, len(queue.AllStates()))
				for _, state := range queue.AllStates() {
					rows = append(rows, []string{
						stateCaser.String(string(state)),
						strconv.Itoa(stats[state]),
					})
				}
				table := renderTable([]string{"State", "Count"}, rows, []columnAlignment{alignLeft, alignRight})
				fmt.Fprintln(cmd.OutOrStdout(), table)

				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				pid, err := daemonctl.ReadPIDFile(daemonctl.PIDFilePath(cfg.Paths.DataDir))
				switch {
				case errors.Is(err, daemonctl.ErrNotRunning):
					fmt.Fprintln(cmd.OutOrStdout(), "Worker pool: not running")
				case err != nil:
					return err
				case daemonctl.Alive(pid):
					fmt.Fprintf(cmd.OutOrStdout(), "Worker pool: running (pid %d)\n", pid)
				default:
					fmt.Fprintf(cmd.OutOrStdout(), "Worker pool: not running (stale pid %d)\n", pid)
				}
				return nil
			})
		},
	}
}
