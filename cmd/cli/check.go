package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/hamed0406/endpointwatch/internal/domain"
	"github.com/hamed0406/endpointwatch/internal/logging"
	"github.com/hamed0406/endpointwatch/internal/notify"
	"github.com/hamed0406/endpointwatch/internal/probe"
	"github.com/hamed0406/endpointwatch/internal/repo"
	"github.com/hamed0406/endpointwatch/internal/repo/filestore"
	"github.com/hamed0406/endpointwatch/internal/repo/memory"
	"github.com/hamed0406/endpointwatch/internal/scheduler"
	"github.com/hamed0406/endpointwatch/internal/summary"
)

var errFailures = errors.New("some endpoints failed")

var checkOpts struct {
	endpoints  string
	maxLevel   int
	minItems   int
	cycleCheck bool
	asJSON     bool
	quiet      bool
	saveDir    string
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one check cycle and print the results",
	Example: `  endpointwatch check --endpoints endpoints.json
  endpointwatch check --json --max-level 1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return runCheck(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	f := checkCmd.Flags()
	f.StringVarP(&checkOpts.endpoints, "endpoints", "e", cfg.EndpointsFile, "endpoints file (.json, .yaml)")
	f.IntVar(&checkOpts.maxLevel, "max-level", cfg.MaxLevel, "deepest nesting level to descend into")
	f.IntVar(&checkOpts.minItems, "min-items", cfg.MinItems, "minimum number of top-level endpoints")
	f.BoolVar(&checkOpts.cycleCheck, "cycle-check", cfg.CycleCheck, "stop at endpoints that repeat an ancestor path")
	f.BoolVar(&checkOpts.asJSON, "json", false, "print the run as JSON")
	f.BoolVarP(&checkOpts.quiet, "quiet", "q", false, "print failures only")
	f.StringVar(&checkOpts.saveDir, "save-dir", "", "also archive the run under this directory")
}

func runCheck(ctx context.Context, stdout, stderr io.Writer) error {
	logger, err := logging.NewLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	var store repo.Store = memory.New()
	if checkOpts.saveDir != "" {
		if store, err = filestore.New(checkOpts.saveDir); err != nil {
			return err
		}
	}
	defer store.Close()

	fetcher := probe.NewChain(probe.ChainConfig{
		Timeout:  cfg.HTTPTimeout,
		MaxBody:  cfg.MaxBodyBytes,
		Attempts: cfg.RetryAttempts,
		Backoff:  cfg.RetryBackoff,
	}, logger)

	alarms := notify.Log(func(subject, text string) {
		fmt.Fprintf(stderr, "%s\n%s\n\n", subject, text)
	})
	runner := scheduler.NewRunner(logger, scheduler.FileLoader(checkOpts.endpoints), fetcher, store,
		scheduler.NewAlerter(logger, store, alarms, nil), 0)
	runner.MaxLevel = checkOpts.maxLevel
	runner.MinItems = checkOpts.minItems
	runner.CycleCheck = checkOpts.cycleCheck

	run, err := runner.RunOnce(ctx)
	if err != nil {
		return err
	}

	switch {
	case checkOpts.asJSON:
		b, err := domain.MarshalPretty(run)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, string(b))
	case checkOpts.quiet:
		for _, l := range summary.FailureLines(run.Results) {
			fmt.Fprintln(stdout, l)
		}
	default:
		printRun(stdout, run)
	}

	if !run.Summary.Success {
		return errFailures
	}
	return nil
}

func printRun(out io.Writer, run *domain.Run) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Status", "Name", "Path", "Error"})
	for _, r := range run.Results.Success {
		t.AppendRow(table.Row{"ok", r.Name, r.Path, "-"})
	}
	for _, r := range run.Results.Failure {
		t.AppendRow(table.Row{"FAIL", r.Name, r.Path, r.Err})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d ok", len(run.Results.Success)), fmt.Sprintf("%d failed", len(run.Results.Failure)), "run " + string(run.ID)})
	t.Render()
}
