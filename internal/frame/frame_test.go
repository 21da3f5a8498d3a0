package frame

import (
	"encoding/json"
	"testing"
)

func TestValueJSONScalars(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want string
	}{
		{"int", IntValue(1920), "1920"},
		{"negative", IntValue(-4), "-4"},
		{"bool", BoolValue(true), "true"},
		{"symbol", SymbolValue("both"), `"both"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.in)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("marshal = %s, want %s", data, tt.want)
			}
			var back Value
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !back.Equal(tt.in) {
				t.Errorf("round-trip = %v, want %v", back, tt.in)
			}
		})
	}
}

func TestValueJSONRejectsNonScalars(t *testing.T) {
	for _, bad := range []string{"3.5", "null", "[1]", `{"a":1}`} {
		var v Value
		if err := json.Unmarshal([]byte(bad), &v); err == nil {
			t.Errorf("unmarshal %s succeeded, want error", bad)
		}
	}
}

func TestAttributesJSONPreservesOrder(t *testing.T) {
	in := attrs(
		"width", IntValue(800),
		"left", IntValue(100),
		"maximized", BoolValue(false),
	)
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Attributes
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !Equal(in, back) {
		t.Errorf("round-trip order mismatch: %v vs %v", in.Keys(), back.Keys())
	}
}

func TestEqualIsOrderSensitive(t *testing.T) {
	a := attrs("left", IntValue(1), "top", IntValue(2))
	b := attrs("top", IntValue(2), "left", IntValue(1))
	if Equal(a, b) {
		t.Error("Equal ignored entry order")
	}
}

func TestFingerprint(t *testing.T) {
	a := attrs("width", IntValue(800), "height", IntValue(600))
	b := attrs("width", IntValue(800), "height", IntValue(600))
	c := attrs("width", IntValue(400), "height", IntValue(300))

	fa, err := Fingerprint(a)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	fb, _ := Fingerprint(b)
	fc, _ := Fingerprint(c)

	if fa != fb {
		t.Error("equal maps produced different fingerprints")
	}
	if fa == fc {
		t.Error("different maps produced the same fingerprint")
	}
}
