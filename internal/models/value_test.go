package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestValueCoercions(t *testing.T) {
	if got := NullValue().Int64(); got != 0 {
		t.Errorf("null Int64 = %d", got)
	}
	if got := NullValue().Float64(); got != 0 {
		t.Errorf("null Float64 = %v", got)
	}
	if NullValue().Bool() || NullValue().String() != "" {
		t.Error("null should coerce to zero values")
	}

	if got := FromAny([]byte("IceBreaker")).String(); got != "IceBreaker" {
		t.Errorf("[]byte String = %q", got)
	}
	if got := FromAny(int32(5)).Int64(); got != 5 {
		t.Errorf("int32 Int64 = %d", got)
	}
	if got := StringValue("7").Int64(); got != 7 {
		t.Errorf("string Int64 = %d", got)
	}
	if got := StringValue("garbage").Int64(); got != 0 {
		t.Errorf("garbage Int64 = %d, want 0", got)
	}
	if !IntValue(1).Bool() || IntValue(0).Bool() {
		t.Error("tinyint truthiness broken")
	}
	if got := FloatValue(3.9).Int64(); got != 3 {
		t.Errorf("float Int64 = %d, want truncation", got)
	}
}

func TestValueMarshalJSON(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{NullValue(), "null"},
		{IntValue(3), "3"},
		{StringValue("a"), `"a"`},
		{BoolValue(true), "true"},
		{TimeValue(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)), `"2024-06-01T10:00:00Z"`},
	}
	for _, tt := range tests {
		b, err := json.Marshal(tt.v)
		if err != nil {
			t.Fatal(err)
		}
		if string(b) != tt.want {
			t.Errorf("marshal = %s, want %s", b, tt.want)
		}
	}
}

func TestRawRowOrder(t *testing.T) {
	r := NewRawRow()
	r.Set("game_id", IntValue(1))
	r.Set("score", NullValue())
	r.Set("gamertag", StringValue("a"))

	b, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"game_id":1,"score":null,"gamertag":"a"}`
	if string(b) != want {
		t.Errorf("marshal = %s, want %s", b, want)
	}

	// Overwriting keeps the original position.
	r.Set("score", IntValue(2))
	b, _ = json.Marshal(r)
	if string(b) != `{"game_id":1,"score":2,"gamertag":"a"}` {
		t.Errorf("marshal after overwrite = %s", b)
	}

	// Missing columns read as NULL.
	if !r.Get("venue").IsNull() {
		t.Error("missing column should be NULL")
	}
	if r.Has("venue") {
		t.Error("missing column should not be present")
	}
}

func TestRawRowDeterministicMarshal(t *testing.T) {
	r := NewRawRow()
	for _, c := range []string{"z", "a", "m", "b"} {
		r.Set(c, StringValue(c))
	}
	first, _ := json.Marshal(r)
	for i := 0; i < 20; i++ {
		again, _ := json.Marshal(r)
		if string(first) != string(again) {
			t.Fatalf("marshal not deterministic: %s vs %s", first, again)
		}
	}
}
