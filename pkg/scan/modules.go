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
	"bytes"
	"context"
	"encoding/xml"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/magedeploy/pkg/theme"
)

// 📦 DiscoverModuleOrigins scans every installed composer package under
// vendor/ for view-layer assets of the given area. A package counts as
// a module when it declares a name in etc/module.xml (or the src/
// layout variant). Both the area-specific and the base asset roots are
// emitted, area-specific first so it wins path conflicts.
func DiscoverModuleOrigins(ctx context.Context, root string, area theme.Area) []Origin {
	logger := zerolog.Ctx(ctx)

	vendorDir := filepath.Join(root, "vendor")
	orgs, err := os.ReadDir(vendorDir)
	if err != nil {
		return nil
	}

	var origins []Origin
	for _, org := range orgs {
		orgDir := filepath.Join(vendorDir, org.Name())
		if !isDir(orgDir) {
			continue
		}

		packages, err := os.ReadDir(orgDir)
		if err != nil {
			continue
		}

		for _, pkg := range packages {
			pkgDir := filepath.Join(orgDir, pkg.Name())
			if !isDir(pkgDir) {
				continue
			}

			name, ok := moduleName(pkgDir)
			if !ok {
				continue
			}

			for _, rel := range moduleAssetRoots(area) {
				assetDir := filepath.Join(pkgDir, rel)
				if !isDir(assetDir) {
					continue
				}
				origins = append(origins, Origin{
					Kind:   OriginVendorModule,
					Module: name,
					Path:   assetDir,
				})
				logger.Debug().
					Str("module", name).
					Str("path", assetDir).
					Msg("found module assets")
			}
		}
	}

	return origins
}

// moduleAssetRoots lists the candidate asset directories inside a
// module package: the plain layout and the src/ layout used by Hyva
// modules, for the requested area and the shared base area.
func moduleAssetRoots(area theme.Area) []string {
	return []string{
		filepath.Join("view", string(area), "web"),
		filepath.Join("src", "view", string(area), "web"),
		filepath.Join("view", "base", "web"),
		filepath.Join("src", "view", "base", "web"),
	}
}

// moduleName reads the declared Vendor_Module name from the package's
// etc/module.xml, trying the src/ layout second
func moduleName(pkgDir string) (string, bool) {
	for _, rel := range []string{
		filepath.Join("etc", "module.xml"),
		filepath.Join("src", "etc", "module.xml"),
	} {
		data, err := os.ReadFile(filepath.Join(pkgDir, rel))
		if err != nil {
			continue
		}
		if name, ok := parseModuleXML(data); ok {
			return name, true
		}
	}
	return "", false
}

// parseModuleXML finds the first <module name="..."/> element. The
// element's position in the document does not matter.
func parseModuleXML(data []byte) (string, bool) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", false
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "module" {
			continue
		}
		for _, attr := range start.Attr {
			if attr.Name.Local == "name" && attr.Value != "" {
				return attr.Value, true
			}
		}
	}
}
