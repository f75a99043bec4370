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

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/magedeploy/pkg/theme"
	"gitlab.com/tozd/go/errors"
)

// 📚 Config is the full selection for one deployment run: where the
// store lives, which themes to deploy for which areas and locales, and
// how the copier should treat development files.
type Config struct {
	Root       string   `json:"root,omitempty"        yaml:"root,omitempty"`
	Areas      []string `json:"areas,omitempty"       yaml:"areas,omitempty"`
	Themes     []string `json:"themes,omitempty"      yaml:"themes,omitempty"`
	Locales    []string `json:"locales,omitempty"     yaml:"locales,omitempty"`
	Jobs       int      `json:"jobs,omitempty"        yaml:"jobs,omitempty"`
	IncludeDev bool     `json:"include_dev,omitempty" yaml:"include_dev,omitempty"`
	Ignore     []string `json:"ignore,omitempty"      yaml:"ignore,omitempty"`

	location string // file this config was loaded from, "" for defaults
}

// 🎛️ Default returns the baseline selection: every discovered theme,
// both areas, en_US, one worker per CPU.
func Default() *Config {
	jobs := runtime.NumCPU()
	if jobs < 1 {
		jobs = 1
	}
	return &Config{
		Root:    ".",
		Areas:   []string{string(theme.AreaFrontend), string(theme.AreaAdminhtml)},
		Locales: []string{"en_US"},
		Jobs:    jobs,
	}
}

// 🧬 Overlay lays the set fields of other over cfg. The command layer
// stacks defaults, then the config file, then flags.
func (cfg *Config) Overlay(other *Config) {
	if other == nil {
		return
	}
	if other.Root != "" {
		cfg.Root = other.Root
	}
	if len(other.Areas) > 0 {
		cfg.Areas = other.Areas
	}
	if len(other.Themes) > 0 {
		cfg.Themes = other.Themes
	}
	if len(other.Locales) > 0 {
		cfg.Locales = other.Locales
	}
	if other.Jobs > 0 {
		cfg.Jobs = other.Jobs
	}
	if other.IncludeDev {
		cfg.IncludeDev = true
	}
	if len(other.Ignore) > 0 {
		cfg.Ignore = other.Ignore
	}
	if other.location != "" {
		cfg.location = other.location
	}
}

// 🔍 Validate checks the fields that are present. Empty lists are fine
// here: a config file acts as a partial overlay, and completeness
// comes from Default.
func (cfg *Config) Validate() error {
	if cfg.Root != "" {
		cfg.Root = filepath.Clean(cfg.Root)
	}

	for _, raw := range cfg.Areas {
		if _, ok := theme.ParseArea(raw); !ok {
			return errors.Errorf("unknown area %q (valid areas: frontend, adminhtml)", raw)
		}
	}

	for _, raw := range cfg.Themes {
		if _, err := theme.ParseID(raw); err != nil {
			return errors.Errorf("invalid theme selection: %w", err)
		}
	}

	for _, raw := range cfg.Locales {
		if strings.TrimSpace(raw) == "" {
			return errors.Errorf("locale must not be empty")
		}
	}

	if cfg.Jobs < 0 {
		return errors.Errorf("jobs must not be negative, got %d", cfg.Jobs)
	}

	for _, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	return nil
}

// 🏠 ResolveRoot turns the configured root into an absolute path,
// falling back to the cleaned input when resolution fails; the install
// check then reports the unusable root with a better message than Abs
// would.
func ResolveRoot(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		return filepath.Clean(root)
	}
	return abs
}

// 🏪 ValidateInstallRoot checks that root points at a Magento
// installation by probing for app/etc/env.php.
func ValidateInstallRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return errors.Errorf("root path does not exist: %s", root)
	}
	if !info.IsDir() {
		return errors.Errorf("root path is not a directory: %s", root)
	}
	if _, err := os.Stat(filepath.Join(root, "app", "etc", "env.php")); err != nil {
		return errors.Errorf("not a Magento installation: %s (app/etc/env.php not found)", root)
	}
	return nil
}

// 📍 Location returns the file this config was loaded from, or ""
// when it was assembled from defaults and flags alone.
func (cfg *Config) Location() string {
	return cfg.location
}

// 📝 String returns a one-line description of the selection
func (cfg *Config) String() string {
	themes := "all"
	if len(cfg.Themes) > 0 {
		themes = strings.Join(cfg.Themes, ",")
	}
	return fmt.Sprintf("%s:%s x %s -> %s (%d jobs)",
		strings.Join(cfg.Areas, ","), themes, strings.Join(cfg.Locales, ","), cfg.Root, cfg.Jobs)
}
