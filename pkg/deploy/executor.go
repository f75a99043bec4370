// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package deploy plans and executes static-asset deployment runs. A
// run expands themes × locales into jobs, pushes them through a fixed
// worker pool, and aggregates per-job results into a process exit
// disposition. Jobs never retry; a failed job reports its error and
// the rest of the run continues.
package deploy

import (
	"context"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/magedeploy/pkg/copier"
	"github.com/walteh/magedeploy/pkg/scan"
	"github.com/walteh/magedeploy/pkg/theme"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 📣 Reporter receives job lifecycle events from the pool. Calls
// arrive from worker goroutines; implementations synchronize
// internally.
type Reporter interface {
	JobStarted(job Job)
	JobFinished(result Result)
}

type nopReporter struct{}

func (nopReporter) JobStarted(Job)     {}
func (nopReporter) JobFinished(Result) {}

// ⚙️ Options configure an executor. Zero values get sensible defaults:
// Workers falls back to GOMAXPROCS-style CPU count, Runner to
// ExecRunner, Copier to a default copier, Reporter to a no-op.
type Options struct {
	Root     string
	Version  string
	Index    *theme.Index
	Copier   *copier.Copier
	Runner   Runner
	Workers  int
	Reporter Reporter
}

// 🚀 Executor drains a job matrix through a fixed pool of workers
type Executor struct {
	root     string
	version  string
	index    *theme.Index
	copier   *copier.Copier
	runner   Runner
	workers  int
	reporter Reporter
	stats    *Stats
}

func NewExecutor(opts Options) *Executor {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	c := opts.Copier
	if c == nil {
		c = copier.New(copier.Options{})
	}
	runner := opts.Runner
	if runner == nil {
		runner = ExecRunner{}
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = nopReporter{}
	}

	return &Executor{
		root:     opts.Root,
		version:  opts.Version,
		index:    opts.Index,
		copier:   c,
		runner:   runner,
		workers:  workers,
		reporter: reporter,
		stats:    NewStats(),
	}
}

// Stats exposes the run-wide counters; valid during and after Run
func (e *Executor) Stats() *Stats {
	return e.stats
}

// 🏃 Run executes all jobs and returns one result per job, in job
// order. Cancelling ctx stops feeding new work; in-flight jobs notice
// at their next cancellation check and unstarted jobs are marked
// cancelled. Run itself only errors on pool failure, never on
// individual job failure.
func (e *Executor) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	if len(jobs) == 0 {
		return nil, nil
	}

	logger := zerolog.Ctx(ctx)
	logger.Debug().
		Int("jobs", len(jobs)).
		Int("workers", e.workers).
		Msg("starting deployment pool")

	results := make([]Result, len(jobs))
	indexes := make(chan int)

	g, gctx := errgroup.WithContext(ctx)

	for w := 0; w < e.workers; w++ {
		g.Go(func() error {
			for i := range indexes {
				results[i] = e.runJob(gctx, jobs[i])
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(indexes)
		for i := range jobs {
			select {
			case indexes <- i:
			case <-gctx.Done():
				// Indexes from i on were never handed to a worker.
				for j := i; j < len(jobs); j++ {
					results[j] = Result{Job: jobs[j], Outcome: OutcomeCancelled}
				}
				return nil
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return results, errors.Errorf("running deployment pool: %w", err)
	}
	return results, nil
}

func (e *Executor) runJob(ctx context.Context, job Job) Result {
	e.reporter.JobStarted(job)

	start := time.Now()
	result := e.deployJob(ctx, job)
	result.Duration = time.Since(start)

	e.reporter.JobFinished(result)
	zerolog.Ctx(ctx).Debug().
		Str("job", job.String()).
		Str("outcome", result.Outcome.String()).
		Dur("took", result.Duration).
		Msg("job finished")

	return result
}

func (e *Executor) deployJob(ctx context.Context, job Job) Result {
	if ctx.Err() != nil {
		return Result{Job: job, Outcome: OutcomeCancelled}
	}

	node, ok := e.index.Lookup(job.Area, job.Theme)
	if !ok {
		e.stats.Errors.Add(1)
		return Result{
			Job:     job,
			Outcome: OutcomeFailed,
			Err:     errors.Errorf("theme %s is not present in area %s", job.Theme, job.Area),
		}
	}

	if node.Strategy == theme.StrategyDelegate {
		return e.delegate(ctx, job)
	}

	plan := scan.BuildPlan(ctx, e.root, e.index.Chain(node))
	dest := DestinationPath(e.root, e.version, job)

	files, bytes, err := e.copier.Materialize(ctx, plan, dest)
	e.stats.FilesCopied.Add(files)
	e.stats.BytesCopied.Add(bytes)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Result{Job: job, Outcome: OutcomeCancelled, FileCount: files, ByteCount: bytes}
		}
		e.stats.Errors.Add(1)
		return Result{Job: job, Outcome: OutcomeFailed, FileCount: files, ByteCount: bytes, Err: err}
	}

	return Result{Job: job, Outcome: OutcomeSucceeded, FileCount: files, ByteCount: bytes}
}
