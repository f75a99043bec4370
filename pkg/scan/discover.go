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

package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/magedeploy/pkg/theme"
	"gitlab.com/tozd/go/errors"
)

// themeMetadataFile is the file that makes a directory a theme
const themeMetadataFile = "theme.xml"

// 🔍 DiscoverThemes walks app/design/{area} and builds one node per
// theme directory carrying a theme.xml. The walk is exactly two levels
// deep (vendor, then theme); directories without metadata are skipped
// silently, and a theme with malformed metadata degrades to a node
// without a parent instead of failing the area.
func DiscoverThemes(ctx context.Context, root string, area theme.Area) ([]*theme.Node, error) {
	logger := zerolog.Ctx(ctx)

	designDir := filepath.Join(root, "app", "design", string(area))
	vendors, err := os.ReadDir(designDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Errorf("reading design area %s: %w", designDir, err)
	}

	var nodes []*theme.Node
	for _, vendor := range vendors {
		vendorDir := filepath.Join(designDir, vendor.Name())
		if !isDir(vendorDir) {
			continue
		}

		entries, err := os.ReadDir(vendorDir)
		if err != nil {
			logger.Warn().Err(err).Str("vendor", vendor.Name()).Msg("skipping unreadable vendor directory")
			continue
		}

		for _, entry := range entries {
			themeDir := filepath.Join(vendorDir, entry.Name())
			if !isDir(themeDir) {
				continue
			}

			data, err := os.ReadFile(filepath.Join(themeDir, themeMetadataFile))
			if err != nil {
				if !errors.Is(err, fs.ErrNotExist) {
					logger.Warn().Err(err).Str("path", themeDir).Msg("skipping theme with unreadable metadata")
				}
				continue
			}

			id := theme.ID{Vendor: vendor.Name(), Name: entry.Name()}

			meta, err := theme.ParseMetadata(data)
			if err != nil {
				logger.Warn().Err(err).
					Str("theme", id.String()).
					Str("area", string(area)).
					Msg("malformed theme metadata, continuing without a parent")
			}

			nodes = append(nodes, &theme.Node{
				ID:         id,
				Area:       area,
				Path:       themeDir,
				Parent:     meta.Parent,
				HyvaModule: meta.HyvaModule,
			})

			logger.Debug().
				Str("theme", id.String()).
				Str("area", string(area)).
				Str("path", themeDir).
				Msg("discovered theme")
		}
	}

	return nodes, nil
}

// isDir reports whether path is a directory, following symlinks
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
