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

	"github.com/rs/zerolog"
)

// hyvaVendor marks the fast-path base themes: any chain containing a
// theme of this vendor deploys by direct copy
const hyvaVendor = "Hyva"

type nodeKey struct {
	area Area
	id   ID
}

// 🗂️ Index holds one run's discovered themes, their resolved
// inheritance chains, and their deployment strategies. It is built
// once and shared read-only across workers.
type Index struct {
	nodes  []*Node
	byKey  map[nodeKey]*Node
	chains map[nodeKey][]*Node
}

// 🏭 NewIndex builds the index from discovered nodes. Chains are
// resolved eagerly so cycle and missing-parent warnings fire once per
// run instead of once per job, and classification can see full
// ancestry rather than just the declared parent.
func NewIndex(ctx context.Context, nodes []*Node) *Index {
	logger := zerolog.Ctx(ctx)

	ix := &Index{
		nodes:  make([]*Node, 0, len(nodes)),
		byKey:  make(map[nodeKey]*Node, len(nodes)),
		chains: make(map[nodeKey][]*Node, len(nodes)),
	}

	for _, n := range nodes {
		k := nodeKey{area: n.Area, id: n.ID}
		if _, ok := ix.byKey[k]; ok {
			logger.Warn().
				Str("theme", n.ID.String()).
				Str("area", string(n.Area)).
				Str("path", n.Path).
				Msg("duplicate theme discovered, keeping the first")
			continue
		}
		ix.byKey[k] = n
		ix.nodes = append(ix.nodes, n)
	}

	for _, n := range ix.nodes {
		chain := ix.resolveChain(ctx, n)
		ix.chains[nodeKey{area: n.Area, id: n.ID}] = chain
		n.Strategy = classify(n, chain)
	}

	return ix
}

// 🔍 Lookup finds a discovered theme by area and identity
func (ix *Index) Lookup(area Area, id ID) (*Node, bool) {
	n, ok := ix.byKey[nodeKey{area: area, id: id}]
	return n, ok
}

// Nodes returns every discovered theme, in discovery order
func (ix *Index) Nodes() []*Node {
	return ix.nodes
}

// NodesInArea returns the discovered themes for one area
func (ix *Index) NodesInArea(area Area) []*Node {
	out := make([]*Node, 0, len(ix.nodes))
	for _, n := range ix.nodes {
		if n.Area == area {
			out = append(out, n)
		}
	}
	return out
}

// 🔗 Chain returns the inheritance chain for a discovered theme,
// most-specific first: the theme itself, then its ancestors. The
// returned slice is shared and must not be mutated.
func (ix *Index) Chain(n *Node) []*Node {
	return ix.chains[nodeKey{area: n.Area, id: n.ID}]
}

// resolveChain walks declared parents iteratively. A visited set
// guards against inheritance cycles: a broken chain degrades to the
// part resolved so far rather than aborting the theme.
func (ix *Index) resolveChain(ctx context.Context, start *Node) []*Node {
	logger := zerolog.Ctx(ctx)

	chain := make([]*Node, 0, 4)
	chain = append(chain, start)

	visited := map[ID]bool{start.ID: true}

	cur := start
	for cur.Parent != nil {
		parent := *cur.Parent

		if visited[parent] {
			logger.Warn().
				Str("theme", start.ID.String()).
				Str("area", string(start.Area)).
				Str("parent", parent.String()).
				Msg("inheritance cycle detected, truncating chain")
			break
		}

		next, ok := ix.Lookup(start.Area, parent)
		if !ok {
			logger.Warn().
				Str("theme", cur.ID.String()).
				Str("area", string(start.Area)).
				Str("parent", parent.String()).
				Msg("declared parent theme not found, truncating chain")
			break
		}

		chain = append(chain, next)
		visited[parent] = true
		cur = next
	}

	return chain
}

// classify picks the deployment strategy: a direct Hyva_Theme module
// reference or a Hyva-vendor theme anywhere in the chain means the
// theme needs no compilation and can be copied as-is.
func classify(n *Node, chain []*Node) Strategy {
	if n.HyvaModule {
		return StrategyCopy
	}
	for _, link := range chain {
		if link.ID.Vendor == hyvaVendor {
			return StrategyCopy
		}
	}
	return StrategyDelegate
}
