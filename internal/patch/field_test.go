package patch

import (
	"encoding/json"
	"testing"
)

type profilePayload struct {
	Name  Field[string] `json:"name"`
	Phone Field[string] `json:"phone"`
}

func TestAbsentKeyIsUnchanged(t *testing.T) {
	var p profilePayload
	if err := json.Unmarshal([]byte(`{}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Name.State() != Unchanged || p.Phone.State() != Unchanged {
		t.Fatalf("absent keys must decode as Unchanged")
	}
}

func TestNullKeyIsClear(t *testing.T) {
	var p profilePayload
	if err := json.Unmarshal([]byte(`{"phone": null}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Phone.State() != Clear {
		t.Fatalf("null must decode as Clear, got %v", p.Phone.State())
	}
	if p.Name.State() != Unchanged {
		t.Fatalf("untouched key must stay Unchanged")
	}
}

func TestValueKeyIsSet(t *testing.T) {
	var p profilePayload
	if err := json.Unmarshal([]byte(`{"name": "Anna"}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	v, ok := p.Name.Value()
	if !ok || v != "Anna" {
		t.Fatalf("expected Set(\"Anna\"), got %q (%v)", v, p.Name.State())
	}
}

func TestEmptyStringIsSetNotClear(t *testing.T) {
	// "" is a value; only JSON null clears.
	var p profilePayload
	if err := json.Unmarshal([]byte(`{"name": ""}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Name.State() != Set {
		t.Fatalf("empty string must be Set, got %v", p.Name.State())
	}
}

func TestConstructors(t *testing.T) {
	if v, ok := SetTo(42).Value(); !ok || v != 42 {
		t.Fatalf("SetTo broken: %d %v", v, ok)
	}
	if Cleared[int]().State() != Clear {
		t.Fatalf("Cleared broken")
	}
	var zero Field[int]
	if zero.State() != Unchanged {
		t.Fatalf("zero value must be Unchanged")
	}
}
