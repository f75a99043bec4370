package commands

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/magedeploy/cmd/magedeploy/opts"
	"github.com/walteh/magedeploy/pkg/config"
	"github.com/walteh/magedeploy/pkg/copier"
	"github.com/walteh/magedeploy/pkg/deploy"
	"github.com/walteh/magedeploy/pkg/log"
	"github.com/walteh/magedeploy/pkg/status"
	"github.com/walteh/magedeploy/pkg/theme"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		areas      []string
		themes     []string
		locales    []string
		jobs       int
		includeDev bool
		ignore     []string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "deploy [root]",
		Short: "Deploy static assets for the selected themes",
		Long: `Deploy expands themes x locales into jobs and runs them on a fixed
worker pool. Themes whose inheritance chain reaches a Hyva base are
copied directly; everything else is delegated to
bin/magento setup:static-content:deploy.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, root, err := loadSelection(cmd, ro, args, func(cfg *config.Config) {
				if cmd.Flags().Changed("area") {
					cfg.Areas = areas
				}
				if cmd.Flags().Changed("theme") {
					cfg.Themes = themes
				}
				if cmd.Flags().Changed("locale") {
					cfg.Locales = locales
				}
				if cmd.Flags().Changed("jobs") {
					cfg.Jobs = jobs
					if cfg.Jobs < 1 {
						cfg.Jobs = 1
					}
				}
				if includeDev {
					cfg.IncludeDev = true
				}
				if len(ignore) > 0 {
					cfg.Ignore = append(cfg.Ignore, ignore...)
				}
			})
			if err != nil {
				return err
			}

			return runDeploy(cmd.Context(), ro, cfg, root, verbose && !ro.Quiet)
		},
	}

	cmd.Flags().StringSliceVarP(&areas, "area", "a", []string{"frontend", "adminhtml"}, "areas to deploy (comma separated)")
	cmd.Flags().StringSliceVarP(&themes, "theme", "t", nil, "themes to deploy as Vendor/name (default: all discovered)")
	cmd.Flags().StringSliceVarP(&locales, "locale", "l", []string{"en_US"}, "locales to deploy (comma separated)")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "number of parallel jobs")
	cmd.Flags().BoolVarP(&includeDev, "include-dev", "d", false, "also deploy development files (sources, configs, docs)")
	cmd.Flags().StringArrayVar(&ignore, "ignore", nil, "extra ignore patterns (doublestar globs)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print a line as each job starts")

	return cmd
}

// runReporter feeds the status manager and, in verbose runs, prints a
// start line as each job is picked up by a worker and advances the
// live progress bar as jobs finish.
type runReporter struct {
	mgr     *status.Manager
	console *log.Logger
	verbose bool
	bar     *pterm.ProgressbarPrinter

	mu      sync.Mutex
	started int
	total   int
}

func (r *runReporter) JobStarted(job deploy.Job) {
	r.mgr.JobStarted(job)
	if !r.verbose {
		return
	}

	r.mu.Lock()
	r.started++
	i := r.started
	r.mu.Unlock()

	line := fmt.Sprintf("[%d/%d] deploying %s", i, r.total, job)
	if r.bar != nil {
		// Routed through pterm so the live bar redraws below the line.
		pterm.Println(line)
		return
	}
	r.console.JobLine(line)
}

func (r *runReporter) JobFinished(result deploy.Result) {
	r.mgr.JobFinished(result)
	if r.bar != nil {
		r.bar.Increment()
	}
}

func runDeploy(ctx context.Context, ro *opts.RootOpts, cfg *config.Config, root string, verbose bool) error {
	logger := zerolog.Ctx(ctx)
	console := ro.Console

	index, _, err := discoverIndex(ctx, root, cfg)
	if err != nil {
		return err
	}

	want := make([]theme.ID, 0, len(cfg.Themes))
	for _, raw := range cfg.Themes {
		id, parseErr := theme.ParseID(raw)
		if parseErr != nil {
			return parseErr
		}
		want = append(want, id)
	}
	selected, err := deploy.FilterThemes(index.Nodes(), want)
	if err != nil {
		return err
	}

	locales := make([]theme.Locale, 0, len(cfg.Locales))
	for _, raw := range cfg.Locales {
		locales = append(locales, theme.ParseLocale(ctx, raw))
	}

	jobs := deploy.PlanJobs(selected, locales)
	if len(jobs) == 0 {
		console.Warning("nothing to deploy")
		return nil
	}

	version := deploy.ReadDeployedVersion(root)
	logger.Debug().
		Str("root", root).
		Str("version", version).
		Int("themes", len(selected)).
		Int("jobs", len(jobs)).
		Msg("run planned")

	if !ro.Quiet {
		console.StartRun(ctx, log.RunOperation{
			Root:    root,
			Areas:   cfg.Areas,
			Locales: cfg.Locales,
			Workers: cfg.Jobs,
		})
	}

	mgr := status.New(logger)
	reporter := &runReporter{mgr: mgr, console: console, verbose: verbose, total: len(jobs)}
	if verbose {
		reporter.bar, _ = pterm.DefaultProgressbar.
			WithTotal(len(jobs)).
			WithTitle("deploying").
			Start()
	}

	executor := deploy.NewExecutor(deploy.Options{
		Root:    root,
		Version: version,
		Index:   index,
		Copier: copier.New(copier.Options{
			IncludeDev:     cfg.IncludeDev,
			IgnorePatterns: cfg.Ignore,
		}),
		Workers:  cfg.Jobs,
		Reporter: reporter,
	})

	mgr.Begin(jobs)
	start := time.Now()
	results, err := executor.Run(ctx, jobs)
	elapsed := time.Since(start)
	if reporter.bar != nil {
		reporter.bar.Stop()
	}
	if err != nil {
		return err
	}

	summary := deploy.Collect(results)
	snap := executor.Stats().Snapshot()
	interrupted := ctx.Err() != nil
	code := summary.ExitCode(interrupted)

	if !ro.Quiet {
		console.LogNewline()
		for _, result := range results {
			console.JobLine(status.FormatJobLine(result))
		}
		console.LogNewline()
	}

	rate := deploy.Throughput(snap.FilesCopied, elapsed)
	switch {
	case interrupted:
		pterm.Warning.Printfln("deployment interrupted, %d of %d jobs cancelled", summary.Cancelled, len(results))
	case code == deploy.ExitOK:
		if !ro.Quiet {
			pterm.Success.Printfln("deployed %d files in %.2fs (%.0f files/sec)", snap.FilesCopied, elapsed.Seconds(), rate)
		}
	case code == deploy.ExitPartial:
		pterm.Warning.Printfln("deployed %d files in %.2fs (%.0f files/sec), %d of %d jobs failed",
			snap.FilesCopied, elapsed.Seconds(), rate, summary.Failed, len(results))
	default:
		pterm.Error.Printfln("no jobs succeeded (%d failed)", summary.Failed)
	}

	if !ro.Quiet {
		console.EndRun(ctx)
	}

	logger.Info().
		Uint64("files", snap.FilesCopied).
		Uint64("bytes", snap.BytesCopied).
		Uint64("errors", snap.Errors).
		Dur("elapsed", elapsed).
		Int("succeeded", summary.Succeeded).
		Int("delegated", summary.Delegated).
		Int("failed", summary.Failed).
		Int("cancelled", summary.Cancelled).
		Msg("deployment finished")

	if code != deploy.ExitOK {
		return &ErrExit{Code: code}
	}
	return nil
}
