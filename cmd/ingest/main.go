package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/dashboard/internal/config"
	"github.com/JonMunkholm/dashboard/internal/core"
	"github.com/JonMunkholm/dashboard/internal/ingest"
	"github.com/JonMunkholm/dashboard/internal/logging"
	"github.com/JonMunkholm/dashboard/internal/store"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type ExitCode int

const (
	exitCodeSuccess = 0
	exitCodeError   = 1
)

func main() {
	os.Exit(int(run()))
}

func run() ExitCode {
	var (
		reset   bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "ingest [flags] FILE...",
		Short: "Load climate CSV files into the dashboard database.",
		Long: `Load one or more climate CSV files into the dashboard database.

Files are loaded in the order given. Each file is validated in full before
anything is written; the run stops at the first file that fails and exits
non-zero. Files loaded before the failure stay loaded.

Country ids continue from the countries already stored. Facts are appended,
so loading the same file twice stores its facts twice.

Do not run two ingests against the same database at once: country ids are
assigned in this process and concurrent runs can collide.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !reset {
				return cmd.Help()
			}
			return ingestFiles(cmd.Context(), args, reset, verbose)
		},
	}

	cmd.Flags().BoolVarP(&reset, "reset", "r", false, "drop and recreate all tables before loading")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "set debug logging level")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		slog.Error("ingest failed", "error", err)
		fmt.Fprintln(os.Stderr, core.FormatUserError(err))
		return exitCodeError
	}
	return exitCodeSuccess
}

func ingestFiles(ctx context.Context, paths []string, reset, verbose bool) error {
	// Load .env file if it exists (Overload overwrites existing env vars)
	_ = godotenv.Overload()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	logging.Setup(level, cfg.Logging.Format)

	db, err := store.Open(ctx, cfg.Database)
	if err != nil {
		return &core.StoreUnavailableError{Op: "connect", Err: err}
	}
	defer db.Close()

	in := ingest.New(db, cfg.Ingest)

	if reset {
		if err := in.Reset(ctx); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}

	if len(paths) == 0 {
		return nil
	}

	report, err := in.Run(ctx, paths)
	printSummary(os.Stdout, report)
	return err
}
