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
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ID
		wantErr bool
	}{
		{
			name:  "vendor_and_name",
			input: "Hyva/default",
			want:  ID{Vendor: "Hyva", Name: "default"},
		},
		{
			name:  "magento_blank",
			input: "Magento/blank",
			want:  ID{Vendor: "Magento", Name: "blank"},
		},
		{
			name:    "missing_separator",
			input:   "Hyvadefault",
			wantErr: true,
		},
		{
			name:    "empty_vendor",
			input:   "/default",
			wantErr: true,
		},
		{
			name:    "empty_name",
			input:   "Hyva/",
			wantErr: true,
		},
		{
			name:    "too_many_segments",
			input:   "Hyva/default/extra",
			wantErr: true,
		},
		{
			name:    "empty_string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseID(tt.input)
			if tt.wantErr {
				require.Error(t, err, "parsing %q should fail", tt.input)
				return
			}
			require.NoError(t, err, "parsing %q should succeed", tt.input)
			assert.Equal(t, tt.want, id, "parsed identity should match")
		})
	}
}

func TestIDString(t *testing.T) {
	id := ID{Vendor: "Hyva", Name: "reset"}
	assert.Equal(t, "Hyva/reset", id.String(), "canonical form should be Vendor/name")
}

func TestIDAsMapKey(t *testing.T) {
	a, err := ParseID("Hyva/default")
	require.NoError(t, err, "parsing should succeed")
	b := ID{Vendor: "Hyva", Name: "default"}

	seen := map[ID]int{a: 1}
	assert.Equal(t, 1, seen[b], "equal identities should hash to the same key")
}

func TestParseArea(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   Area
		wantOK bool
	}{
		{name: "frontend", input: "frontend", want: AreaFrontend, wantOK: true},
		{name: "adminhtml", input: "adminhtml", want: AreaAdminhtml, wantOK: true},
		{name: "unknown", input: "backend", wantOK: false},
		{name: "case_sensitive", input: "Frontend", wantOK: false},
		{name: "empty", input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			area, ok := ParseArea(tt.input)
			assert.Equal(t, tt.wantOK, ok, "recognition of %q", tt.input)
			if tt.wantOK {
				assert.Equal(t, tt.want, area, "parsed area should match")
			}
		})
	}
}

func TestLocaleCanonical(t *testing.T) {
	tests := []struct {
		name   string
		locale Locale
		want   bool
	}{
		{name: "en_US", locale: "en_US", want: true},
		{name: "nl_NL", locale: "nl_NL", want: true},
		{name: "de_DE", locale: "de_DE", want: true},
		{name: "plain_word", locale: "dutch", want: false},
		{name: "lowercase_region", locale: "en_us", want: false},
		{name: "uppercase_language", locale: "EN_US", want: false},
		{name: "hyphen_separator", locale: "en-US", want: false},
		{name: "too_short", locale: "e_US", want: false},
		{name: "too_long", locale: "en_USA", want: false},
		{name: "digits", locale: "e1_U2", want: false},
		{name: "empty", locale: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.locale.Canonical(), "canonical check for %q", tt.locale)
		})
	}
}

func TestParseLocaleWarnsButAccepts(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	ctx := logger.WithContext(context.Background())

	locale := ParseLocale(ctx, "dutch")

	assert.Equal(t, Locale("dutch"), locale, "malformed locale should be accepted as-is")
	assert.Contains(t, buf.String(), "dutch", "a warning naming the locale should be logged")
	assert.Contains(t, buf.String(), "warn", "the log event should be a warning")
}

func TestParseLocaleCanonicalIsSilent(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	ctx := logger.WithContext(context.Background())

	locale := ParseLocale(ctx, "en_US")

	assert.Equal(t, Locale("en_US"), locale, "canonical locale should pass through")
	assert.Empty(t, buf.String(), "no warning should be logged for a canonical locale")
}
