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

import (
	"bytes"
	"encoding/xml"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// hyvaModuleMarker is the module reference Hyva themes carry in theme.xml
const hyvaModuleMarker = "Hyva_Theme"

// 📄 Metadata is the deployment-relevant content of a theme.xml file
type Metadata struct {
	Title      string // Display title, informational only
	Parent     *ID    // Declared parent theme, nil when absent
	HyvaModule bool   // Metadata references the Hyva_Theme module
}

// themeXML mirrors the subset of theme.xml we care about
type themeXML struct {
	XMLName xml.Name `xml:"theme"`
	Title   string   `xml:"title"`
	Parent  string   `xml:"parent"`
}

// 📝 ParseMetadata extracts the parent declaration and the Hyva marker
// from raw theme.xml content. Malformed XML is not fatal: the returned
// Metadata is still usable (no parent) alongside the error, so one bad
// theme degrades instead of blocking discovery of the whole area.
func ParseMetadata(data []byte) (Metadata, error) {
	meta := Metadata{
		// The marker is a plain substring check, deliberately
		// independent of whether the XML parses.
		HyvaModule: bytes.Contains(data, []byte(hyvaModuleMarker)),
	}

	var doc themeXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return meta, errors.Errorf("parsing theme metadata: %w", err)
	}

	meta.Title = strings.TrimSpace(doc.Title)

	if parent := strings.TrimSpace(doc.Parent); parent != "" {
		id, err := ParseID(parent)
		if err != nil {
			// A parent we cannot interpret is treated as no parent.
			return meta, errors.Errorf("parsing declared parent: %w", err)
		}
		meta.Parent = &id
	}

	return meta, nil
}
