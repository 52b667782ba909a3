// Package pkgvalue holds the algebraic ExportsValue/ImportsValue/TargetValue
// representation from spec.md §3 ("an algebraic type: String(s) / List /
// Map / Null"). It is split out from internal/resolve so that both the
// resolver (internal/resolve) and the package.json reader
// (internal/pkgjson) can share one definition without an import cycle:
// pkgjson produces Values, resolve consumes them.
package pkgvalue

import "strconv"

// Kind tags the shape of a Value, mirroring the teacher's peKind
// (package_json.go) generalized to the full spec.md §3 data model.
type Kind uint8

const (
	Null Kind = iota
	String
	List
	Map
	Invalid
)

// Entry is one key/value pair of a Map-kind Value. A slice of Entry (rather
// than a Go map) is what lets Value preserve package.json source order, per
// spec.md §3/§9 -- the same reason the teacher's peEntry uses a []peMapEntry
// instead of a map.
type Entry struct {
	Key   string
	Value Value
}

// Value is a TargetValue/ExportsValue/ImportsValue node.
type Value struct {
	Kind Kind
	Str  string
	List []Value
	Map  []Entry
}

func Str(s string) Value { return Value{Kind: String, Str: s} }
func Nul() Value          { return Value{Kind: Null} }

// Get looks up a literal key in a Map-kind Value, in source order.
func (v Value) Get(key string) (Value, bool) {
	for _, e := range v.Map {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Value{}, false
}

// Keys returns the Map's keys in source order.
func (v Value) Keys() []string {
	keys := make([]string, len(v.Map))
	for i, e := range v.Map {
		keys[i] = e.Key
	}
	return keys
}

// IsSubpathMap reports whether a non-empty Map's keys all begin with "."
// (spec.md §3 invariant 1: subpath keys begin with ".", condition keys do
// not, and a single map may not mix the two).
func (v Value) IsSubpathMap() bool {
	if v.Kind != Map || len(v.Map) == 0 {
		return false
	}
	return len(v.Map[0].Key) > 0 && v.Map[0].Key[0] == '.'
}

// CheckMapKeys validates invariants 1 and 2 of spec.md §3: a map is either
// all-subpath or all-condition keys, and no key may be purely numeric (which
// would imply the author meant an array). badKey is set when ok is false.
func (v Value) CheckMapKeys() (ok bool, badKey string, mixed bool) {
	if v.Kind != Map || len(v.Map) == 0 {
		return true, "", false
	}
	wantDot := v.Map[0].Key != "" && v.Map[0].Key[0] == '.'
	for _, e := range v.Map {
		hasDot := e.Key != "" && e.Key[0] == '.'
		if hasDot != wantDot {
			return false, e.Key, true
		}
		if _, err := strconv.Atoi(e.Key); err == nil {
			return false, e.Key, false
		}
	}
	return true, "", false
}
