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
	"fmt"
	"time"
)

// Outcome is the terminal state of a job
type Outcome int

const (
	// OutcomeSucceeded means the theme's assets were copied in full.
	OutcomeSucceeded Outcome = iota
	// OutcomeFailed means the job hit an I/O or delegation error.
	OutcomeFailed
	// OutcomeCancelled means the run was interrupted before or during
	// the job; partial output may exist.
	OutcomeCancelled
	// OutcomeDelegated means the job was handed to bin/magento, which
	// completed successfully.
	OutcomeDelegated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeDelegated:
		return "delegated"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// 🧾 Result records how one job ended
type Result struct {
	Job       Job
	Outcome   Outcome
	FileCount uint64
	ByteCount uint64
	Duration  time.Duration
	Err       error
}

// Describe renders the per-job summary fragment that follows the job
// name in the final breakdown
func (r Result) Describe() string {
	switch r.Outcome {
	case OutcomeSucceeded:
		return fmt.Sprintf("%d files", r.FileCount)
	case OutcomeDelegated:
		return "delegated to bin/magento"
	case OutcomeFailed:
		return fmt.Sprintf("FAILED: %v", r.Err)
	case OutcomeCancelled:
		return "cancelled"
	default:
		return r.Outcome.String()
	}
}

// Summary aggregates the outcomes of a finished run
type Summary struct {
	Succeeded int
	Failed    int
	Delegated int
	Cancelled int
}

// Collect tallies results into a summary
func Collect(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch r.Outcome {
		case OutcomeSucceeded:
			s.Succeeded++
		case OutcomeFailed:
			s.Failed++
		case OutcomeDelegated:
			s.Delegated++
		case OutcomeCancelled:
			s.Cancelled++
		}
	}
	return s
}

// HasSuccess reports whether any job completed, counting delegated
// jobs as completed
func (s Summary) HasSuccess() bool {
	return s.Succeeded+s.Delegated > 0
}

// HasFailure reports whether any job failed. Cancelled jobs are
// neither successes nor failures.
func (s Summary) HasFailure() bool {
	return s.Failed > 0
}

// Process exit codes. 130 follows the shell convention for SIGINT.
const (
	ExitOK          = 0
	ExitPartial     = 1
	ExitError       = 2
	ExitInterrupted = 130
)

// ExitCode maps a run to its process disposition: interruption wins,
// then total failure, then partial failure
func (s Summary) ExitCode(interrupted bool) int {
	switch {
	case interrupted:
		return ExitInterrupted
	case s.HasFailure() && !s.HasSuccess():
		return ExitError
	case s.HasFailure():
		return ExitPartial
	default:
		return ExitOK
	}
}
