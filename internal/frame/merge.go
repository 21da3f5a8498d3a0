package frame

// Merge combines overlay into base with alist semantics: keys present in
// overlay win over base's value for the same key (keeping the key's original
// position), keys new to base are appended in overlay order, and base-only
// keys are left untouched. Neither input is mutated.
func Merge(base, overlay Attributes) Attributes {
	out := base.Clone()
	if overlay.OrderedMap == nil {
		return out
	}
	for p := overlay.Oldest(); p != nil; p = p.Next() {
		out.Set(p.Key, p.Value)
	}
	return out
}
