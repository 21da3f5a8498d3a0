// Package frame models window attributes as ordered key/value maps and
// provides the filter and merge operations used when capturing and restoring
// frame geometry.
package frame

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/mitchellh/hashstructure/v2"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies the value type carried by an attribute.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindBool
	KindSymbol
)

// Value is a typed window attribute value: an integer (geometry), a boolean
// (window state flags) or a symbol (enumerated states like "both" or "horz").
type Value struct {
	kind Kind
	num  int
	flag bool
	sym  string
}

func IntValue(v int) Value       { return Value{kind: KindInt, num: v} }
func BoolValue(v bool) Value     { return Value{kind: KindBool, flag: v} }
func SymbolValue(s string) Value { return Value{kind: KindSymbol, sym: s} }

func (v Value) Kind() Kind { return v.kind }

// Int returns the integer payload. Zero unless Kind is KindInt.
func (v Value) Int() int { return v.num }

// Bool returns the boolean payload. False unless Kind is KindBool.
func (v Value) Bool() bool { return v.flag }

// Symbol returns the symbol payload. Empty unless Kind is KindSymbol.
func (v Value) Symbol() string { return v.sym }

func (v Value) Equal(o Value) bool { return v == o }

func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return fmt.Sprintf("%d", v.num)
	case KindBool:
		return fmt.Sprintf("%t", v.flag)
	case KindSymbol:
		return v.sym
	default:
		return "<invalid>"
	}
}

// native returns the plain Go value, used for JSON encoding and hashing.
func (v Value) native() (any, error) {
	switch v.kind {
	case KindInt:
		return v.num, nil
	case KindBool:
		return v.flag, nil
	case KindSymbol:
		return v.sym, nil
	default:
		return nil, fmt.Errorf("invalid attribute value")
	}
}

// MarshalJSON encodes the value as its natural JSON scalar, so the persisted
// file stays self-describing: numbers are integers, flags are booleans,
// symbols are strings.
func (v Value) MarshalJSON() ([]byte, error) {
	n, err := v.native()
	if err != nil {
		return nil, err
	}
	return json.Marshal(n)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case bool:
		*v = BoolValue(t)
	case string:
		*v = SymbolValue(t)
	case float64:
		if t != math.Trunc(t) {
			return fmt.Errorf("attribute value %v is not an integer", t)
		}
		*v = IntValue(int(t))
	default:
		return fmt.Errorf("attribute value must be an integer, boolean or string")
	}
	return nil
}

// Attributes is an insertion-ordered mapping from attribute key to Value.
// Order matters: filtering and persistence preserve the order in which
// entries were set, and equality is order-sensitive.
type Attributes struct {
	*orderedmap.OrderedMap[string, Value]
}

// New returns an empty attribute map.
func New() Attributes {
	return Attributes{orderedmap.New[string, Value]()}
}

// Clone returns an independent copy preserving entry order.
func (a Attributes) Clone() Attributes {
	out := New()
	if a.OrderedMap == nil {
		return out
	}
	for p := a.Oldest(); p != nil; p = p.Next() {
		out.Set(p.Key, p.Value)
	}
	return out
}

// Keys returns the keys in entry order.
func (a Attributes) Keys() []string {
	if a.OrderedMap == nil {
		return nil
	}
	out := make([]string, 0, a.Len())
	for p := a.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}

func (a Attributes) MarshalJSON() ([]byte, error) {
	if a.OrderedMap == nil {
		return []byte("{}"), nil
	}
	return a.OrderedMap.MarshalJSON()
}

func (a *Attributes) UnmarshalJSON(data []byte) error {
	a.OrderedMap = orderedmap.New[string, Value]()
	return a.OrderedMap.UnmarshalJSON(data)
}

// Equal reports whether two attribute maps hold the same entries in the same
// order.
func Equal(a, b Attributes) bool {
	alen, blen := 0, 0
	if a.OrderedMap != nil {
		alen = a.Len()
	}
	if b.OrderedMap != nil {
		blen = b.Len()
	}
	if alen != blen {
		return false
	}
	if alen == 0 {
		return true
	}
	pb := b.Oldest()
	for pa := a.Oldest(); pa != nil; pa = pa.Next() {
		if pb == nil || pa.Key != pb.Key || !pa.Value.Equal(pb.Value) {
			return false
		}
		pb = pb.Next()
	}
	return true
}

// Fingerprint returns a stable content hash over the ordered entries. Two
// maps with equal entries in equal order hash identically across processes,
// which is what the recreate dedup guard compares.
func Fingerprint(a Attributes) (uint64, error) {
	type entry struct {
		Key string
		Val any
	}
	entries := make([]entry, 0)
	if a.OrderedMap != nil {
		for p := a.Oldest(); p != nil; p = p.Next() {
			n, err := p.Value.native()
			if err != nil {
				return 0, fmt.Errorf("attribute %q: %w", p.Key, err)
			}
			entries = append(entries, entry{Key: p.Key, Val: n})
		}
	}
	return hashstructure.Hash(entries, hashstructure.FormatV2, nil)
}
