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
	"os"
	"path/filepath"
	"strings"

	"github.com/walteh/magedeploy/pkg/theme"
)

const versionMarkerFile = "deployed_version.txt"

// 🏷️ ReadDeployedVersion returns the trimmed content of
// pub/static/deployed_version.txt, or "" when the marker is missing or
// unreadable. Stores without static signing simply have no marker.
func ReadDeployedVersion(root string) string {
	data, err := os.ReadFile(filepath.Join(root, "pub", "static", versionMarkerFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// AreaPath returns the deployed tree for one area, including the
// version segment when a marker is present.
func AreaPath(root, version string, area theme.Area) string {
	parts := []string{root, "pub", "static"}
	if version != "" {
		parts = append(parts, version)
	}
	parts = append(parts, string(area))
	return filepath.Join(parts...)
}

// 📍 DestinationPath builds the deployment target for a job:
// {root}/pub/static/{version}/{area}/{Vendor}/{name}/{locale}, with the
// version segment omitted when no marker is deployed. This matches
// where Magento's static router looks for signed asset URLs.
func DestinationPath(root, version string, job Job) string {
	return filepath.Join(AreaPath(root, version, job.Area), job.Theme.Vendor, job.Theme.Name, string(job.Locale))
}
