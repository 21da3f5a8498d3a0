package frame

import "testing"

func TestMergeOverlayWins(t *testing.T) {
	base := attrs(
		"left", IntValue(0),
		"top", IntValue(0),
		"custom", SymbolValue("x"),
	)
	overlay := attrs(
		"left", IntValue(100),
		"width", IntValue(800),
	)

	got := Merge(base, overlay)

	wantKeys := []string{"left", "top", "custom", "width"}
	gotKeys := got.Keys()
	if len(gotKeys) != len(wantKeys) {
		t.Fatalf("merged keys = %v, want %v", gotKeys, wantKeys)
	}
	for i, k := range wantKeys {
		if gotKeys[i] != k {
			t.Fatalf("merged keys = %v, want %v", gotKeys, wantKeys)
		}
	}

	checks := map[string]Value{
		"left":   IntValue(100),
		"top":    IntValue(0),
		"custom": SymbolValue("x"),
		"width":  IntValue(800),
	}
	for k, want := range checks {
		v, ok := got.Get(k)
		if !ok || !v.Equal(want) {
			t.Errorf("merged[%q] = %v (present=%t), want %v", k, v, ok, want)
		}
	}
}

func TestMergeEmptyOverlayLeavesBase(t *testing.T) {
	base := attrs("left", IntValue(5))
	got := Merge(base, New())
	if !Equal(got, base) {
		t.Errorf("Merge with empty overlay changed base: %v", got.Keys())
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	base := attrs("left", IntValue(0))
	overlay := attrs("left", IntValue(9), "top", IntValue(3))
	_ = Merge(base, overlay)

	if v, _ := base.Get("left"); v.Int() != 0 {
		t.Errorf("base mutated: left = %v", v)
	}
	if base.Len() != 1 {
		t.Errorf("base mutated: %d entries", base.Len())
	}
	if overlay.Len() != 2 {
		t.Errorf("overlay mutated: %d entries", overlay.Len())
	}
}
