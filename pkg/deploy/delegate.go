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

package deploy

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🤝 Runner executes an external command and captures its output.
// Tests substitute their own implementation.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (Output, error)
}

// Output is what a delegated command produced
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// ExecRunner runs commands through os/exec
type ExecRunner struct{}

// Run executes name with args in dir. A non-zero exit is reported via
// Output.ExitCode, not the error; the error covers failures to run the
// command at all (missing binary, killed by context).
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (Output, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.ExitCode = exitErr.ExitCode()
			return out, nil
		}
		return out, errors.Errorf("running %s: %w", name, err)
	}
	return out, nil
}

// delegate hands a job to bin/magento's own static-content deployer.
// Themes outside the fast path still deploy correctly, just slower.
func (e *Executor) delegate(ctx context.Context, job Job) Result {
	logger := zerolog.Ctx(ctx)

	bin := filepath.Join(e.root, "bin", "magento")
	out, err := e.runner.Run(ctx, e.root,
		bin,
		"setup:static-content:deploy",
		"--area", string(job.Area),
		"--theme", job.Theme.String(),
		string(job.Locale),
	)
	if err != nil {
		if ctx.Err() != nil {
			return Result{Job: job, Outcome: OutcomeCancelled}
		}
		e.stats.Errors.Add(1)
		return Result{Job: job, Outcome: OutcomeFailed, Err: err}
	}

	if out.Stdout != "" {
		logger.Debug().Str("job", job.String()).Msg(strings.TrimSpace(out.Stdout))
	}
	if out.Stderr != "" {
		logger.Debug().Str("job", job.String()).Msg(strings.TrimSpace(out.Stderr))
	}

	if out.ExitCode != 0 {
		e.stats.Errors.Add(1)
		return Result{
			Job:     job,
			Outcome: OutcomeFailed,
			Err:     errors.Errorf("bin/magento exited with code %d: %s", out.ExitCode, strings.TrimSpace(out.Stderr)),
		}
	}

	return Result{Job: job, Outcome: OutcomeDelegated}
}
