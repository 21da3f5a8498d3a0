package frame

// Filter returns a new attribute map holding exactly the entries whose key is
// in tracked, preserving the relative order of the surviving entries. An
// empty tracked set yields an empty map; tracked keys absent from attrs are
// simply omitted. Filter never mutates its input and is idempotent.
func Filter(attrs Attributes, tracked []string) Attributes {
	out := New()
	if attrs.OrderedMap == nil || len(tracked) == 0 {
		return out
	}
	keep := make(map[string]bool, len(tracked))
	for _, k := range tracked {
		keep[k] = true
	}
	for p := attrs.Oldest(); p != nil; p = p.Next() {
		if keep[p.Key] {
			out.Set(p.Key, p.Value)
		}
	}
	return out
}
