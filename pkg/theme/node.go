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

package theme

// 🚀 Strategy selects how a theme's static content is deployed
type Strategy int

const (
	// StrategyCopy deploys by direct file copy. Hyva themes and
	// themes inheriting from a Hyva base need no LESS compilation.
	StrategyCopy Strategy = iota

	// StrategyDelegate hands the theme off to bin/magento, which
	// runs the full Luma compilation pipeline.
	StrategyDelegate
)

func (s Strategy) String() string {
	switch s {
	case StrategyCopy:
		return "copy"
	case StrategyDelegate:
		return "delegate"
	default:
		return "unknown"
	}
}

// 📦 Node is one theme found on disk. Nodes are built during discovery
// and are read-only afterwards; a run shares them across workers.
type Node struct {
	ID     ID     // Vendor/name identity
	Area   Area   // Area the theme was discovered under
	Path   string // Absolute path to the theme directory
	Parent *ID    // Declared parent identity, nil when the theme is a root

	// HyvaModule records whether the theme's metadata references the
	// Hyva_Theme module directly. The final Strategy also considers
	// ancestry, so it is computed by the Index once discovery is done.
	HyvaModule bool

	Strategy Strategy
}
