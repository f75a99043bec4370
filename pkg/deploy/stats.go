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
	"sync/atomic"
	"time"
)

// 📊 Stats are the run-wide counters shared by all workers. Lock-free
// so the hot copy path never serializes on progress accounting.
type Stats struct {
	FilesCopied atomic.Uint64
	BytesCopied atomic.Uint64
	Errors      atomic.Uint64
}

func NewStats() *Stats {
	return &Stats{}
}

// StatsSnapshot is a point-in-time read of the counters
type StatsSnapshot struct {
	FilesCopied uint64
	BytesCopied uint64
	Errors      uint64
}

// Snapshot reads all counters. Taken after the pool drains it is exact;
// taken mid-run it is a consistent-enough progress reading.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		FilesCopied: s.FilesCopied.Load(),
		BytesCopied: s.BytesCopied.Load(),
		Errors:      s.Errors.Load(),
	}
}

// Throughput is files per second over elapsed, 0 when elapsed is not
// positive
func Throughput(files uint64, elapsed time.Duration) float64 {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(files) / secs
}
