package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	thronesaudit "github.com/baditaflorin/go_thrones_audit"
	"github.com/baditaflorin/go_thrones_audit/internal/adapters/logger"
	"github.com/baditaflorin/go_thrones_audit/internal/adapters/normalizer"
	"github.com/baditaflorin/go_thrones_audit/internal/adapters/thronesapi"
	"github.com/baditaflorin/go_thrones_audit/internal/config"
	"github.com/baditaflorin/go_thrones_audit/internal/core/audit"
	"github.com/baditaflorin/go_thrones_audit/internal/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, &app{}, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// execute runs the command line in args. A failing command is logged before
// the logger is closed.
func execute(ctx context.Context, a *app, args []string) error {
	cmd := newRootCommand(a)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err != nil && a.logger != nil {
		a.logger.Error("Command failed", "error", err)
	}
	if cerr := a.close(); err == nil {
		err = cerr
	}
	return err
}

// app holds the collaborators shared by every command.
type app struct {
	cfg     config.Config
	logger  *logger.StdLogger
	service *audit.Service
	out     *report.Writer
	// stdout overrides the command's output writer for reports.
	stdout io.Writer
}

func newRootCommand(a *app) *cobra.Command {
	var (
		baseURL   string
		timeout   time.Duration
		threshold float64
		logJSON   bool
		logFile   string
	)

	cmd := &cobra.Command{
		Use:           "thrones-audit",
		Short:         "Exploratory checks against the Thrones character catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("base-url") {
				cfg.BaseURL = baseURL
			}
			if flags.Changed("timeout") {
				cfg.Timeout = timeout
			}
			if flags.Changed("threshold") {
				cfg.Threshold = threshold
			}
			if flags.Changed("log-json") {
				cfg.LogJSON = logJSON
			}
			if flags.Changed("log-file") {
				cfg.LogFile = logFile
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return a.init(cfg, cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&baseURL, "base-url", thronesapi.DefaultBaseURL, "Catalog API base URL")
	pf.DurationVar(&timeout, "timeout", thronesapi.DefaultTimeout, "HTTP request timeout")
	pf.Float64Var(&threshold, "threshold", thronesaudit.DefaultThreshold, "Minimum similarity for family name corrections (0.0-1.0)")
	pf.BoolVar(&logJSON, "log-json", false, "Write logs as JSON")
	pf.StringVar(&logFile, "log-file", "", "Log file path (empty = stderr)")

	cmd.AddCommand(
		newStatusCommand(a),
		newProfilesCommand(a),
		newConsistencyCommand(a),
		newCompletenessCommand(a),
		newFullNamesCommand(a),
		newFamiliesCommand(a),
		newImagesCommand(a),
		newWriteProbeCommand(a),
		newAllCommand(a),
	)
	return cmd
}

func (a *app) init(cfg config.Config, cmd *cobra.Command) error {
	lg, err := logger.New(logger.Options{JSON: cfg.LogJSON, File: cfg.LogFile})
	if err != nil {
		return err
	}

	client, err := thronesapi.NewClient(thronesapi.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout}, lg, nil)
	if err != nil {
		_ = lg.Close()
		return err
	}

	families, err := thronesaudit.NewFamilyNormalizer(
		thronesaudit.WithPortsLogger(lg),
		thronesaudit.WithThreshold(cfg.Threshold),
	)
	if err != nil {
		_ = lg.Close()
		return err
	}

	service, err := audit.NewService(client, families, normalizer.NewNFCNormalizer(), lg)
	if err != nil {
		_ = lg.Close()
		return err
	}

	a.cfg = cfg
	a.logger = lg
	a.service = service
	w := a.stdout
	if w == nil {
		w = cmd.OutOrStdout()
	}
	a.out = report.NewWriter(w)

	lg.Info("Starting thrones audit",
		"command", cmd.Name(),
		"base_url", cfg.BaseURL,
		"timeout", cfg.Timeout,
		"threshold", cfg.Threshold,
	)
	return nil
}

func (a *app) close() error {
	if a.logger == nil {
		return nil
	}
	err := a.logger.Close()
	a.logger = nil
	return err
}
