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
	"os"
	"path/filepath"
	"strings"

	"github.com/walteh/magedeploy/pkg/theme"
)

// 🏷️ OriginKind says where a group of source files comes from
type OriginKind int

const (
	// OriginThemeWeb is a theme's own web/ directory
	OriginThemeWeb OriginKind = iota
	// OriginModuleOverride is a per-module override inside a theme
	// directory (e.g. Magento_Catalog/web)
	OriginModuleOverride
	// OriginLibrary is the shared lib/web tree
	OriginLibrary
	// OriginVendorModule is a module's own view-layer assets under
	// vendor/
	OriginVendorModule
)

func (k OriginKind) String() string {
	switch k {
	case OriginThemeWeb:
		return "theme-web"
	case OriginModuleOverride:
		return "module-override"
	case OriginLibrary:
		return "library"
	case OriginVendorModule:
		return "vendor-module"
	default:
		return "unknown"
	}
}

// 📂 Origin is one root directory whose subtree contributes files to a
// deployment. Theme points back at the contributing theme for module
// overrides and theme web roots; Module carries the Vendor_Module name
// that becomes the destination subdirectory for module-scoped origins.
type Origin struct {
	Kind   OriginKind
	Theme  string // contributing theme, "" for library and vendor modules
	Module string // Vendor_Module name, "" for theme web and library
	Path   string // absolute source directory
}

// DestSubdir returns the subdirectory the origin lands in under the
// deployment destination. Theme and library files go to the root;
// module-scoped files go under the module name.
func (o Origin) DestSubdir() string {
	switch o.Kind {
	case OriginModuleOverride, OriginVendorModule:
		return o.Module
	default:
		return ""
	}
}

// 🗒️ Plan is the ordered list of origins for one deployment job.
// Earlier origins outrank later ones: when two origins carry the same
// relative path, the earlier origin's file is the one deployed.
type Plan []Origin

// 🛠️ BuildPlan turns a resolved inheritance chain into a resolution
// plan. Per chain link, most-specific first: the theme's module
// overrides, then its own web root. After the chain: shared library
// assets, then installed module assets for the chain's area. Missing
// directories are simply absent; an empty plan is valid and deploys
// zero files.
func BuildPlan(ctx context.Context, root string, chain []*theme.Node) Plan {
	if len(chain) == 0 {
		return nil
	}

	plan := make(Plan, 0, 16)

	for _, link := range chain {
		plan = append(plan, themeOverrideOrigins(link)...)
		if origin, ok := themeWebOrigin(link); ok {
			plan = append(plan, origin)
		}
	}

	if origin, ok := libraryOrigin(root); ok {
		plan = append(plan, origin)
	}

	plan = append(plan, DiscoverModuleOrigins(ctx, root, chain[0].Area)...)

	return plan
}

// themeOverrideOrigins finds per-module override directories directly
// under the theme: a child directory whose name contains an underscore
// (the Vendor_Module convention) and that carries a web/ subtree.
func themeOverrideOrigins(n *theme.Node) []Origin {
	entries, err := os.ReadDir(n.Path)
	if err != nil {
		return nil
	}

	var origins []Origin
	for _, entry := range entries {
		name := entry.Name()
		if !strings.Contains(name, "_") {
			continue
		}
		dir := filepath.Join(n.Path, name)
		if !isDir(dir) {
			continue
		}
		webDir := filepath.Join(dir, "web")
		if !isDir(webDir) {
			continue
		}
		origins = append(origins, Origin{
			Kind:   OriginModuleOverride,
			Theme:  n.ID.String(),
			Module: name,
			Path:   webDir,
		})
	}

	return origins
}

func themeWebOrigin(n *theme.Node) (Origin, bool) {
	webDir := filepath.Join(n.Path, "web")
	if !isDir(webDir) {
		return Origin{}, false
	}
	return Origin{Kind: OriginThemeWeb, Theme: n.ID.String(), Path: webDir}, true
}

func libraryOrigin(root string) (Origin, bool) {
	libDir := filepath.Join(root, "lib", "web")
	if !isDir(libDir) {
		return Origin{}, false
	}
	return Origin{Kind: OriginLibrary, Path: libDir}, true
}
