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
	"context"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🎯 ID identifies a theme by vendor and name (e.g. "Hyva/default")
type ID struct {
	Vendor string // Vendor name (e.g. "Hyva", "Magento")
	Name   string // Theme name within the vendor (e.g. "default")
}

// 📝 ParseID parses a "Vendor/name" string into an ID
func ParseID(s string) (ID, error) {
	vendor, name, ok := strings.Cut(s, "/")
	if !ok || vendor == "" || name == "" || strings.Contains(name, "/") {
		return ID{}, errors.Errorf("invalid theme identity %q: expected Vendor/name", s)
	}
	return ID{Vendor: vendor, Name: name}, nil
}

// String returns the canonical "Vendor/name" form
func (id ID) String() string {
	return id.Vendor + "/" + id.Name
}

// 🗺️ Area is the deployment target context for a theme
type Area string

const (
	AreaFrontend  Area = "frontend"
	AreaAdminhtml Area = "adminhtml"
)

// 📝 ParseArea parses an area name, reporting whether it is known
func ParseArea(s string) (Area, bool) {
	switch s {
	case "frontend":
		return AreaFrontend, true
	case "adminhtml":
		return AreaAdminhtml, true
	default:
		return "", false
	}
}

// AllAreas returns the closed set of deployment areas
func AllAreas() []Area {
	return []Area{AreaFrontend, AreaAdminhtml}
}

// 🌍 Locale is a language/region code, canonically "xx_YY"
type Locale string

// 📝 ParseLocale accepts any locale string. Codes that are not in the
// canonical xx_YY form are kept as-is and deployed under the literal
// name, with a warning (Magento tolerates non-standard codes).
func ParseLocale(ctx context.Context, s string) Locale {
	l := Locale(s)
	if !l.Canonical() {
		zerolog.Ctx(ctx).Warn().
			Str("locale", s).
			Msg("locale is not in xx_YY form, deploying under the literal name")
	}
	return l
}

// 🔍 Canonical reports whether the locale matches the xx_YY form:
// two lowercase letters, an underscore, two uppercase letters
func (l Locale) Canonical() bool {
	if len(l) != 5 || l[2] != '_' {
		return false
	}
	return isLowerAlpha(l[0]) && isLowerAlpha(l[1]) && isUpperAlpha(l[3]) && isUpperAlpha(l[4])
}

func (l Locale) String() string {
	return string(l)
}

func isLowerAlpha(b byte) bool {
	return b >= 'a' && b <= 'z'
}

func isUpperAlpha(b byte) bool {
	return b >= 'A' && b <= 'Z'
}
