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
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/magedeploy/pkg/deploy"
	"github.com/walteh/magedeploy/pkg/theme"
)

func testJob(vendor, name, locale string) deploy.Job {
	return deploy.Job{
		Theme:  theme.ID{Vendor: vendor, Name: name},
		Area:   theme.AreaFrontend,
		Locale: theme.Locale(locale),
	}
}

func newTestManager() (*Manager, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	return New(&logger), &buf
}

func TestManagerLifecycle(t *testing.T) {
	job := testJob("Hyva", "default", "en_US")

	tests := []struct {
		name  string
		drive func(m *Manager)
		check func(t *testing.T, m *Manager)
	}{
		{
			name:  "begin_registers_queued",
			drive: func(m *Manager) { m.Begin([]deploy.Job{job}) },
			check: func(t *testing.T, m *Manager) {
				info, ok := m.Lookup(job)
				require.True(t, ok, "job should be tracked after Begin")
				assert.Equal(t, StateQueued, info.State)

				processed, total := m.Progress()
				assert.Zero(t, processed)
				assert.Equal(t, 1, total)
			},
		},
		{
			name: "start_moves_to_running",
			drive: func(m *Manager) {
				m.Begin([]deploy.Job{job})
				m.JobStarted(job)
			},
			check: func(t *testing.T, m *Manager) {
				info, ok := m.Lookup(job)
				require.True(t, ok)
				assert.Equal(t, StateRunning, info.State)
			},
		},
		{
			name: "finish_stores_result_and_advances",
			drive: func(m *Manager) {
				m.Begin([]deploy.Job{job})
				m.JobStarted(job)
				m.JobFinished(deploy.Result{Job: job, Outcome: deploy.OutcomeSucceeded, FileCount: 7})
			},
			check: func(t *testing.T, m *Manager) {
				info, ok := m.Lookup(job)
				require.True(t, ok)
				assert.Equal(t, StateFinished, info.State)
				assert.Equal(t, deploy.OutcomeSucceeded, info.Result.Outcome)
				assert.Equal(t, uint64(7), info.Result.FileCount)

				processed, total := m.Progress()
				assert.Equal(t, 1, processed)
				assert.Equal(t, 1, total)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestManager()
			tt.drive(m)
			tt.check(t, m)
		})
	}
}

func TestManagerConcurrentReporting(t *testing.T) {
	m, _ := newTestManager()

	jobs := make([]deploy.Job, 50)
	for i := range jobs {
		jobs[i] = testJob("Vendor", fmt.Sprintf("theme%02d", i), "en_US")
	}
	m.Begin(jobs)

	var wg sync.WaitGroup
	for _, job := range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.JobStarted(job)
			m.JobFinished(deploy.Result{Job: job, Outcome: deploy.OutcomeSucceeded, FileCount: 1})
		}()
	}
	wg.Wait()

	processed, total := m.Progress()
	assert.Equal(t, 50, processed, "every finish should be counted exactly once")
	assert.Equal(t, 50, total)

	for _, info := range m.Jobs() {
		assert.Equal(t, StateFinished, info.State, "job %s should be finished", info.Job)
	}
}

func TestManagerJobsSorted(t *testing.T) {
	m, _ := newTestManager()
	m.Begin([]deploy.Job{
		testJob("Zeta", "last", "en_US"),
		testJob("Alpha", "first", "en_US"),
	})

	infos := m.Jobs()
	require.Len(t, infos, 2)
	assert.Equal(t, "Alpha/first", infos[0].Job.Theme.String())
	assert.Equal(t, "Zeta/last", infos[1].Job.Theme.String())
}

func TestManagerLogsEvents(t *testing.T) {
	m, buf := newTestManager()
	job := testJob("Hyva", "default", "en_US")

	m.Begin([]deploy.Job{job})
	m.JobStarted(job)
	m.JobFinished(deploy.Result{Job: job, Outcome: deploy.OutcomeSucceeded, FileCount: 3})

	out := buf.String()
	assert.Contains(t, out, "Deploying frontend/Hyva/default/en_US")
	assert.Contains(t, out, "Deployed frontend/Hyva/default/en_US (3 files)")
	assert.Contains(t, out, "Progress: 1/1")
}

func TestJobStateString(t *testing.T) {
	assert.Equal(t, "queued", StateQueued.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "finished", StateFinished.String())
	assert.Equal(t, "unknown", JobState(42).String())
}
