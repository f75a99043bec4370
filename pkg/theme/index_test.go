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

func testCtx(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	return logger.WithContext(context.Background()), &buf
}

func node(vendor, name string, area Area, parent *ID) *Node {
	return &Node{
		ID:     ID{Vendor: vendor, Name: name},
		Area:   area,
		Path:   "/design/" + string(area) + "/" + vendor + "/" + name,
		Parent: parent,
	}
}

func chainIDs(chain []*Node) []string {
	out := make([]string, 0, len(chain))
	for _, n := range chain {
		out = append(out, n.ID.String())
	}
	return out
}

func TestChainLinearIncludesSelf(t *testing.T) {
	ctx, _ := testCtx(t)

	root := node("A", "x", AreaFrontend, nil)
	mid := node("B", "y", AreaFrontend, &root.ID)
	leaf := node("C", "z", AreaFrontend, &mid.ID)

	ix := NewIndex(ctx, []*Node{root, mid, leaf})

	chain := ix.Chain(leaf)
	assert.Equal(t, []string{"C/z", "B/y", "A/x"}, chainIDs(chain),
		"chain should start at the requested theme and walk to the root")

	assert.Equal(t, []string{"A/x"}, chainIDs(ix.Chain(root)),
		"a root theme's chain is just itself")
}

func TestChainCycleTerminates(t *testing.T) {
	ctx, logs := testCtx(t)

	idA := ID{Vendor: "A", Name: "x"}
	idB := ID{Vendor: "B", Name: "y"}
	a := node("A", "x", AreaFrontend, &idB)
	b := node("B", "y", AreaFrontend, &idA)

	ix := NewIndex(ctx, []*Node{a, b})

	chain := ix.Chain(a)
	assert.Equal(t, []string{"A/x", "B/y"}, chainIDs(chain),
		"cycle should truncate the chain without repeating an identity")
	assert.Contains(t, logs.String(), "cycle", "a cycle warning should be logged")

	seen := map[ID]bool{}
	for _, n := range chain {
		assert.False(t, seen[n.ID], "no identity may repeat in a chain")
		seen[n.ID] = true
	}
}

func TestChainSelfParentTerminates(t *testing.T) {
	ctx, logs := testCtx(t)

	idA := ID{Vendor: "A", Name: "x"}
	a := node("A", "x", AreaFrontend, &idA)

	ix := NewIndex(ctx, []*Node{a})

	assert.Equal(t, []string{"A/x"}, chainIDs(ix.Chain(a)),
		"a self-referential parent should not extend the chain")
	assert.Contains(t, logs.String(), "cycle", "a cycle warning should be logged")
}

func TestChainMissingParentTruncates(t *testing.T) {
	ctx, logs := testCtx(t)

	ghost := ID{Vendor: "Ghost", Name: "theme"}
	a := node("A", "x", AreaFrontend, &ghost)

	ix := NewIndex(ctx, []*Node{a})

	assert.Equal(t, []string{"A/x"}, chainIDs(ix.Chain(a)),
		"a missing parent should leave the chain usable up to the break")
	assert.Contains(t, logs.String(), "not found", "a missing-parent warning should be logged")
}

func TestChainStaysWithinArea(t *testing.T) {
	ctx, logs := testCtx(t)

	parentID := ID{Vendor: "A", Name: "x"}
	adminParent := node("A", "x", AreaAdminhtml, nil)
	child := node("B", "y", AreaFrontend, &parentID)

	ix := NewIndex(ctx, []*Node{adminParent, child})

	assert.Equal(t, []string{"B/y"}, chainIDs(ix.Chain(child)),
		"a parent discovered in a different area must not be linked")
	assert.Contains(t, logs.String(), "not found", "the cross-area parent should count as missing")
}

func TestDuplicateThemeKeepsFirst(t *testing.T) {
	ctx, logs := testCtx(t)

	first := node("A", "x", AreaFrontend, nil)
	second := node("A", "x", AreaFrontend, nil)
	second.Path = "/elsewhere/A/x"

	ix := NewIndex(ctx, []*Node{first, second})

	require.Len(t, ix.Nodes(), 1, "duplicates should collapse to one node")
	got, ok := ix.Lookup(AreaFrontend, first.ID)
	require.True(t, ok, "the theme should be in the index")
	assert.Equal(t, first.Path, got.Path, "the first discovered node should win")
	assert.Contains(t, logs.String(), "duplicate", "a duplicate warning should be logged")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		build func(ctx context.Context) *Node
		want  Strategy
	}{
		{
			name: "hyva_module_marker",
			build: func(ctx context.Context) *Node {
				n := node("Vendor", "shop", AreaFrontend, nil)
				n.HyvaModule = true
				NewIndex(ctx, []*Node{n})
				return n
			},
			want: StrategyCopy,
		},
		{
			name: "hyva_vendor",
			build: func(ctx context.Context) *Node {
				n := node("Hyva", "default", AreaFrontend, nil)
				NewIndex(ctx, []*Node{n})
				return n
			},
			want: StrategyCopy,
		},
		{
			name: "hyva_ancestor_two_levels_up",
			build: func(ctx context.Context) *Node {
				root := node("Hyva", "default", AreaFrontend, nil)
				mid := node("Vendor", "base", AreaFrontend, &root.ID)
				leaf := node("Vendor", "shop", AreaFrontend, &mid.ID)
				NewIndex(ctx, []*Node{root, mid, leaf})
				return leaf
			},
			want: StrategyCopy,
		},
		{
			name: "luma_theme_delegates",
			build: func(ctx context.Context) *Node {
				blank := node("Magento", "blank", AreaFrontend, nil)
				luma := node("Magento", "luma", AreaFrontend, &blank.ID)
				NewIndex(ctx, []*Node{blank, luma})
				return luma
			},
			want: StrategyDelegate,
		},
		{
			name: "orphaned_parent_still_classified",
			build: func(ctx context.Context) *Node {
				ghost := ID{Vendor: "Ghost", Name: "base"}
				n := node("Vendor", "shop", AreaFrontend, &ghost)
				NewIndex(ctx, []*Node{n})
				return n
			},
			want: StrategyDelegate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := testCtx(t)
			n := tt.build(ctx)
			assert.Equal(t, tt.want, n.Strategy, "classification should match")
		})
	}
}

func TestNodesInArea(t *testing.T) {
	ctx, _ := testCtx(t)

	front := node("A", "x", AreaFrontend, nil)
	admin := node("A", "backend", AreaAdminhtml, nil)

	ix := NewIndex(ctx, []*Node{front, admin})

	assert.Equal(t, []*Node{front}, ix.NodesInArea(AreaFrontend), "frontend filter")
	assert.Equal(t, []*Node{admin}, ix.NodesInArea(AreaAdminhtml), "adminhtml filter")
}
