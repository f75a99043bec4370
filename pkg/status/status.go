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

package status

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/magedeploy/pkg/deploy"
)

// 📊 JobState is where a job currently sits in its lifecycle
type JobState int

const (
	StateQueued   JobState = iota
	StateRunning           // A worker picked the job up
	StateFinished          // Terminal; see the attached result
)

// String returns a string representation of JobState
func (s JobState) String() string {
	switch s {
	case StateQueued:
		return "queued"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// 📄 JobInfo is the tracked view of one job
type JobInfo struct {
	Job    deploy.Job
	State  JobState
	Result deploy.Result // meaningful once State is StateFinished
}

// 🔧 Manager tracks job states and reports progress. It satisfies
// deploy.Reporter, so workers feed it directly.
type Manager struct {
	logger    *zerolog.Logger
	formatter Formatter

	mu        sync.RWMutex
	jobs      map[string]JobInfo
	total     int
	processed int
}

var _ deploy.Reporter = (*Manager)(nil)

// 🏭 New creates a new status manager
func New(logger *zerolog.Logger) *Manager {
	return &Manager{
		logger:    logger,
		formatter: NewDefaultFormatter(),
		jobs:      make(map[string]JobInfo),
	}
}

// WithFormatter swaps the output formatter; call before Begin
func (m *Manager) WithFormatter(f Formatter) *Manager {
	m.formatter = f
	return m
}

// 🏁 Begin registers the whole job matrix as queued and resets the
// progress counters
func (m *Manager) Begin(jobs []deploy.Job) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total = len(jobs)
	m.processed = 0
	for _, job := range jobs {
		m.jobs[job.String()] = JobInfo{Job: job, State: StateQueued}
	}

	m.logger.Info().
		Int("total", m.total).
		Msg(m.formatter.FormatProgress(0, m.total))
}

// JobStarted marks a job running. Part of deploy.Reporter.
func (m *Manager) JobStarted(job deploy.Job) {
	m.mu.Lock()
	defer m.mu.Unlock()

	info := m.jobs[job.String()]
	info.Job = job
	info.State = StateRunning
	m.jobs[job.String()] = info

	m.logger.Info().
		Str("job", job.String()).
		Msg(m.formatter.FormatJobStart(job))
}

// JobFinished records a job's terminal result and advances the
// progress counter. Part of deploy.Reporter.
func (m *Manager) JobFinished(result deploy.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := result.Job.String()
	m.jobs[key] = JobInfo{Job: result.Job, State: StateFinished, Result: result}
	m.processed++

	m.logger.Info().
		Str("job", key).
		Str("outcome", result.Outcome.String()).
		Msg(m.formatter.FormatJobResult(result))
	m.logger.Info().
		Int("processed", m.processed).
		Int("total", m.total).
		Msg(m.formatter.FormatProgress(m.processed, m.total))
}

// Progress returns how many jobs have finished out of the total
func (m *Manager) Progress() (processed, total int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.processed, m.total
}

// Jobs returns the tracked jobs sorted by name
func (m *Manager) Jobs() []JobInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]JobInfo, 0, len(m.jobs))
	for _, info := range m.jobs {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Job.String() < infos[j].Job.String()
	})
	return infos
}

// Lookup returns the tracked state of one job
func (m *Manager) Lookup(job deploy.Job) (JobInfo, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	info, ok := m.jobs[job.String()]
	return info, ok
}
