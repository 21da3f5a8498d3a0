package frame

import "testing"

func attrs(pairs ...any) Attributes {
	a := New()
	for i := 0; i < len(pairs); i += 2 {
		a.Set(pairs[i].(string), pairs[i+1].(Value))
	}
	return a
}

func TestFilterKeepsTrackedEntriesInOrder(t *testing.T) {
	in := attrs(
		"left", IntValue(100),
		"title", SymbolValue("scratch"),
		"width", IntValue(800),
		"maximized", BoolValue(true),
	)
	got := Filter(in, []string{"width", "left", "maximized"})

	wantKeys := []string{"left", "width", "maximized"}
	gotKeys := got.Keys()
	if len(gotKeys) != len(wantKeys) {
		t.Fatalf("Filter kept %d keys, want %d (%v)", len(gotKeys), len(wantKeys), gotKeys)
	}
	for i, k := range wantKeys {
		if gotKeys[i] != k {
			t.Errorf("key %d = %q, want %q", i, gotKeys[i], k)
		}
	}
	if v, _ := got.Get("left"); v.Int() != 100 {
		t.Errorf("left = %v, want 100", v)
	}
}

func TestFilterEmptyTrackedSet(t *testing.T) {
	in := attrs("left", IntValue(1), "top", IntValue(2))
	got := Filter(in, nil)
	if got.Len() != 0 {
		t.Errorf("Filter with empty tracked set kept %d entries, want 0", got.Len())
	}
}

func TestFilterOmitsMissingTrackedKeys(t *testing.T) {
	in := attrs("width", IntValue(640))
	got := Filter(in, []string{"left", "top", "width"})
	if got.Len() != 1 {
		t.Fatalf("Filter kept %d entries, want 1", got.Len())
	}
	if _, ok := got.Get("left"); ok {
		t.Error("Filter padded a missing tracked key")
	}
}

func TestFilterIdempotent(t *testing.T) {
	tracked := []string{"left", "top", "width", "height"}
	in := attrs(
		"left", IntValue(10),
		"top", IntValue(20),
		"name", SymbolValue("main"),
		"height", IntValue(600),
	)
	once := Filter(in, tracked)
	twice := Filter(once, tracked)
	if !Equal(once, twice) {
		t.Errorf("Filter not idempotent: %v vs %v", once.Keys(), twice.Keys())
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	in := attrs("left", IntValue(1), "top", IntValue(2))
	_ = Filter(in, []string{"left"})
	if in.Len() != 2 {
		t.Errorf("input mutated: %d entries left", in.Len())
	}
}
