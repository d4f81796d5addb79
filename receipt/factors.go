/*
factors.go - Generic factor snapshot tree

PURPOSE:
  The methodology section must render whatever shape the factors snapshot
  has, today and after it evolves (e.g. a sub-table per mode). Instead of
  type-sniffing at render time, the snapshot is normalized once into a
  tagged variant - a node is either a scalar leaf or a named group - and
  a single recursive formatter walks it.

DETERMINISM:
  Group entries are emitted in a fixed order: the known top-level groups
  (kg_per_km, then credit_price) first, anything else sorted by key.
  Nested groups sort their keys. Rendering is therefore idempotent.
*/
package receipt

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/olimpus/ecotrip/emission"
)

// factorNode is a tagged variant: a scalar leaf, or a group of entries.
type factorNode struct {
	scalar  string
	entries []factorEntry
	group   bool
}

type factorEntry struct {
	key  string
	node factorNode
}

// Known top-level groups, rendered first and in this order.
var knownGroups = []string{"kg_per_km", "credit_price"}

// snapshotEntries normalizes a factors snapshot into ordered entries.
func snapshotEntries(snap emission.Snapshot) []factorEntry {
	tree := snapshotTree(snap)

	entries := make([]factorEntry, 0, len(tree))
	seen := make(map[string]bool, len(knownGroups))
	for _, key := range knownGroups {
		if v, ok := tree[key]; ok {
			entries = append(entries, factorEntry{key: key, node: buildNode(v)})
			seen[key] = true
		}
	}

	rest := make([]string, 0, len(tree))
	for key := range tree {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		entries = append(entries, factorEntry{key: key, node: buildNode(tree[key])})
	}
	return entries
}

// snapshotTree flattens the typed snapshot into the generic JSON shape the
// walker understands. Going through JSON keeps the renderer independent of
// the snapshot's Go type, which may grow fields.
func snapshotTree(snap emission.Snapshot) map[string]any {
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil
	}
	var tree map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil
	}
	return tree
}

// buildNode converts a JSON-shaped value into a factorNode.
func buildNode(v any) factorNode {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		entries := make([]factorEntry, 0, len(keys))
		for _, k := range keys {
			entries = append(entries, factorEntry{key: k, node: buildNode(val[k])})
		}
		return factorNode{group: true, entries: entries}
	default:
		return factorNode{scalar: formatScalar(v)}
	}
}

func formatScalar(v any) string {
	switch val := v.(type) {
	case nil:
		return "—"
	case string:
		if val == "" {
			return "—"
		}
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return "—"
		}
		return string(raw)
	}
}
