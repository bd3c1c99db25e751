package runtime

import "testing"

func TestConversionsAreTotal(t *testing.T) {
	cases := []struct {
		in   Value
		i    int64
		b    bool
		text string
	}{
		{IntValue{Val: 0}, 0, false, "0"},
		{IntValue{Val: -12}, -12, true, "-12"},
		{IntValue{Val: 7}, 7, true, "7"},
		{BoolValue{Val: true}, 1, true, "true"},
		{BoolValue{Val: false}, 0, false, "false"},
		{StringValue{Val: "true"}, 0, true, "true"},
		{StringValue{Val: "True"}, 0, false, "True"},
		{StringValue{Val: "42abc"}, 42, false, "42abc"},
		{StringValue{Val: "  -8"}, -8, false, "  -8"},
		{StringValue{Val: "+3"}, 3, false, "+3"},
		{StringValue{Val: ""}, 0, false, ""},
		{StringValue{Val: "x1"}, 0, false, "x1"},
	}
	for _, tc := range cases {
		if got := AsInt(tc.in); got != tc.i {
			t.Fatalf("AsInt(%#v) = %d, want %d", tc.in, got, tc.i)
		}
		if got := AsBool(tc.in); got != tc.b {
			t.Fatalf("AsBool(%#v) = %v, want %v", tc.in, got, tc.b)
		}
		if got := AsText(tc.in); got != tc.text {
			t.Fatalf("AsText(%#v) = %q, want %q", tc.in, got, tc.text)
		}
	}
}

func TestZeroValues(t *testing.T) {
	if v := Zero(KindInt); v != (IntValue{}) {
		t.Fatalf("unexpected int zero %#v", v)
	}
	if v := Zero(KindBool); v != (BoolValue{}) {
		t.Fatalf("unexpected bool zero %#v", v)
	}
	if v := Zero(KindString); v != (StringValue{}) {
		t.Fatalf("unexpected string zero %#v", v)
	}
}

func TestKindTypeNameRoundTrip(t *testing.T) {
	for _, k := range Kinds {
		back, ok := KindOf(k.TypeName())
		if !ok || back != k {
			t.Fatalf("kind %s did not round trip (got %s, %v)", k, back, ok)
		}
	}
}
