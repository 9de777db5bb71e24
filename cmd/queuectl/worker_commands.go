package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"queuectl/internal/daemonctl"
	"queuectl/internal/logging"
	"queuectl/internal/queue"
	"queuectl/internal/worker"
)

func newWorkerCommand(ctx *commandContext) *cobra.Command {
	workerCmd := &cobra.Command{
		Use:   "worker",
		Short: "Run and control the worker pool",
	}

	workerCmd.AddCommand(newWorkerStartCommand(ctx))
	workerCmd.AddCommand(newWorkerStopCommand(ctx))

	return workerCmd
}

func newWorkerStartCommand(ctx *commandContext) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the worker pool and block until stopped",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if count > 0 {
				cfg.Workers.Count = count
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			lock, err := daemonctl.AcquireLock(daemonctl.LockFilePath(cfg.Paths.DataDir))
			if err != nil {
				return err
			}
			defer func() { _ = lock.Unlock() }()

			pidPath := daemonctl.PIDFilePath(cfg.Paths.DataDir)
			if err := daemonctl.WritePIDFile(pidPath, os.Getpid()); err != nil {
				return err
			}
			defer func() { _ = daemonctl.RemovePIDFile(pidPath) }()

			store, err := queue.Open(cfg)
			if err != nil {
				return fmt.Errorf("open queue store: %w", err)
			}
			defer store.Close()

			sigCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			pool := worker.NewPool(
				store,
				worker.ShellRunner{},
				logger,
				cfg.Workers.Count,
				time.Duration(cfg.Workers.PollInterval)*time.Second,
			)
			if err := pool.Start(sigCtx); err != nil {
				return err
			}
			logger.Info("worker pool started",
				logging.Args(logging.Int("workers", cfg.Workers.Count))...)

			<-sigCtx.Done()
			logger.Info("shutdown requested, waiting for workers")
			pool.Stop()
			logger.Info("worker pool stopped")
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, "Number of workers (overrides configuration)")
	return cmd
}

func newWorkerStopCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Signal a running worker pool to shut down",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			pidPath := daemonctl.PIDFilePath(cfg.Paths.DataDir)
			pid, err := daemonctl.ReadPIDFile(pidPath)
			if err != nil {
				if errors.Is(err, daemonctl.ErrNotRunning) {
					fmt.Fprintln(cmd.OutOrStdout(), "No active workers.")
					return nil
				}
				return err
			}
			if !daemonctl.Alive(pid) {
				fmt.Fprintln(cmd.OutOrStdout(), "No active workers.")
				return daemonctl.RemovePIDFile(pidPath)
			}

			if err := daemonctl.Stop(pid); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stopping worker process %d\n", pid)
			return nil
		},
	}
}
