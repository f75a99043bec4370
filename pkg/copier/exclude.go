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

package copier

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Static assets are served straight to browsers, so build-time inputs
// (preprocessor sources, package manifests, linter configs) have no
// business in the destination tree. The sets mirror what the PHP
// deployment tooling filters out.

var devExtensions = map[string]struct{}{
	"ts":           {}, // TypeScript source
	"tsx":          {}, // TypeScript JSX
	"mts":          {}, // TypeScript module
	"cts":          {}, // TypeScript CommonJS module
	"less":         {}, // LESS source
	"scss":         {}, // SASS source
	"sass":         {}, // SASS source
	"md":           {}, // Markdown docs
	"markdown":     {}, // Markdown docs
	"yml":          {}, // YAML configs
	"yaml":         {}, // YAML configs
	"lock":         {}, // Lock files
	"npmignore":    {},
	"gitignore":    {},
	"eslintrc":     {},
	"prettierrc":   {},
	"editorconfig": {},
	"jshintrc":     {},
	"nycrc":        {},
	"babelrc":      {},
	"flowconfig":   {},
}

var devFiles = map[string]struct{}{
	// Package managers
	"package.json":      {},
	"package-lock.json": {},
	"yarn.lock":         {},
	"pnpm-lock.yaml":    {},
	"composer.json":     {},
	"composer.lock":     {},
	// TypeScript
	"tsconfig.json":       {},
	"tsconfig.base.json":  {},
	"tsconfig.build.json": {},
	// Docs
	"LICENSE":         {},
	"LICENSE.md":      {},
	"LICENSE.txt":     {},
	"MIT-LICENSE":     {},
	"README":          {},
	"README.md":       {},
	"README.txt":      {},
	"CHANGELOG":       {},
	"CHANGELOG.md":    {},
	"HISTORY.md":      {},
	"CONTRIBUTING.md": {},
	// Tooling configs
	".gitignore":         {},
	".npmignore":         {},
	".npmrc":             {},
	".yarnrc":            {},
	".eslintrc":          {},
	".eslintrc.js":       {},
	".eslintrc.json":     {},
	".eslintrc.cjs":      {},
	".prettierrc":        {},
	".prettierrc.js":     {},
	".prettierrc.json":   {},
	".editorconfig":      {},
	".jshintrc":          {},
	".babelrc":           {},
	".babelrc.js":        {},
	".babelrc.json":      {},
	"babel.config.js":    {},
	"babel.config.json":  {},
	".nycrc":             {},
	".nycrc.json":        {},
	"jest.config.js":     {},
	"jest.config.json":   {},
	"karma.conf.js":      {},
	"webpack.config.js":  {},
	"rollup.config.js":   {},
	"vite.config.js":     {},
	"vite.config.ts":     {},
	".browserslistrc":    {},
	".stylelintrc":       {},
	".stylelintrc.json":  {},
	"Makefile":           {},
	"Gruntfile.js":       {},
	"Gulpfile.js":        {},
}

var devDirectories = map[string]struct{}{
	"node_modules": {},
	".git":         {},
	".svn":         {},
	".hg":          {},
}

// isDevDir reports whether a directory name marks a development
// subtree that should be pruned from the walk
func isDevDir(name string) bool {
	_, ok := devDirectories[name]
	return ok
}

// isDevFile reports whether a file name identifies a development
// artifact, either by exact name or by (case-insensitive) extension
func isDevFile(name string) bool {
	if _, ok := devFiles[name]; ok {
		return true
	}
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return false
	}
	_, ok := devExtensions[strings.ToLower(ext)]
	return ok
}

// matchIgnore matches one user-supplied glob against an
// origin-relative path. Patterns are validated when the configuration
// loads, so a bad-pattern error here just means no match.
func matchIgnore(pattern, rel string) (bool, error) {
	return doublestar.Match(pattern, filepath.ToSlash(rel))
}
