package types

// AliasTable maps a per-module type-name alias to the type it stands
// for, e.g. a `data` declaration registering its own name.
type AliasTable map[string]Type

// ExpandAlias resolves name against table, following chained aliases
// and breaking cycles by returning the last-seen type name unresolved
// rather than looping forever.
func ExpandAlias(name string, table AliasTable) (Type, bool) {
	seen := map[string]bool{}
	cur := name
	for {
		if seen[cur] {
			return &Named{Name: cur}, false
		}
		seen[cur] = true
		t, ok := table[cur]
		if !ok {
			return nil, false
		}
		named, isNamed := t.(*Named)
		if !isNamed {
			return t, true
		}
		cur = named.Name
	}
}
