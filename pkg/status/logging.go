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
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/walteh/magedeploy/pkg/deploy"
)

// 🎨 Display configuration
const (
	lineIndent = 2  // spaces to indent job entries
	jobWidth   = 45 // base width for the job name
)

// 🎯 FormatJobLine formats one job of the final breakdown for display
func FormatJobLine(result deploy.Result) string {
	// Determine prefix symbol
	var prefix string
	switch result.Outcome {
	case deploy.OutcomeSucceeded:
		prefix = color.GreenString("✓")
	case deploy.OutcomeDelegated:
		prefix = color.YellowString("⟳")
	case deploy.OutcomeFailed:
		prefix = color.RedString("✗")
	default:
		prefix = color.HiBlackString("-")
	}

	jobPart := fmt.Sprintf("%-*s", jobWidth, result.Job.String())

	return fmt.Sprintf("%s%s %s %s",
		strings.Repeat(" ", lineIndent),
		prefix,
		jobPart,
		result.Describe(),
	)
}
