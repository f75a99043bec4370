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
	"strings"

	"github.com/walteh/magedeploy/pkg/theme"
	"gitlab.com/tozd/go/errors"
)

// 🎫 Job is one unit of deployment work: a theme in an area, rendered
// for a locale
type Job struct {
	Theme  theme.ID
	Area   theme.Area
	Locale theme.Locale
}

// String renders the job the way it appears in logs and summaries,
// e.g. "frontend/Hyva/default/en_US"
func (j Job) String() string {
	return string(j.Area) + "/" + j.Theme.String() + "/" + string(j.Locale)
}

// 🧮 PlanJobs expands themes × locales into the job matrix. Each node
// already carries its area, so a theme present in several areas yields
// separate jobs per area. Duplicate (theme, area, locale) triples are
// emitted once; order follows the node order with locales innermost.
func PlanJobs(nodes []*theme.Node, locales []theme.Locale) []Job {
	jobs := make([]Job, 0, len(nodes)*len(locales))
	seen := make(map[Job]struct{}, len(nodes)*len(locales))

	for _, node := range nodes {
		for _, locale := range locales {
			job := Job{Theme: node.ID, Area: node.Area, Locale: locale}
			if _, dup := seen[job]; dup {
				continue
			}
			seen[job] = struct{}{}
			jobs = append(jobs, job)
		}
	}

	return jobs
}

// 🔍 FilterThemes narrows nodes to the requested theme identities. An
// empty want list keeps everything. Asking for themes none of which
// exist is an error; a partial match is not.
func FilterThemes(nodes []*theme.Node, want []theme.ID) ([]*theme.Node, error) {
	if len(want) == 0 {
		return nodes, nil
	}

	wanted := make(map[theme.ID]struct{}, len(want))
	for _, id := range want {
		wanted[id] = struct{}{}
	}

	var out []*theme.Node
	for _, node := range nodes {
		if _, ok := wanted[node.ID]; ok {
			out = append(out, node)
		}
	}

	if len(out) == 0 {
		names := make([]string, 0, len(want))
		for _, id := range want {
			names = append(names, id.String())
		}
		return nil, errors.Errorf("no matching themes found for: %s", strings.Join(names, ", "))
	}

	return out, nil
}
