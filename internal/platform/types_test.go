package platform

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestFieldValueUnmarshalScalar(t *testing.T) {
	var fv FieldValue
	if err := json.Unmarshal([]byte(`{"value":"New","displayValue":"新建"}`), &fv); err != nil {
		t.Fatalf("unmarshal scalar: %v", err)
	}
	if fv.Value != "New" {
		t.Fatalf("expect value New, got %v", fv.Value)
	}
	if fv.DisplayValue != "新建" {
		t.Fatalf("expect display 新建, got %s", fv.DisplayValue)
	}
	if fv.Nested() != nil {
		t.Fatalf("scalar value should not expose nested record")
	}
}

func TestFieldValueUnmarshalNested(t *testing.T) {
	raw := `{"value":{"id":"003C1","apiName":"Contact","fields":{"Name":{"value":"王芳"}}},"displayValue":"王芳"}`
	var fv FieldValue
	if err := json.Unmarshal([]byte(raw), &fv); err != nil {
		t.Fatalf("unmarshal nested: %v", err)
	}
	nested := fv.Nested()
	if nested == nil {
		t.Fatalf("expected nested record")
	}
	if nested.ID != "003C1" || nested.APIName != "Contact" {
		t.Fatalf("nested record mismatch: %+v", nested)
	}
	inner, ok := nested.Field("Name")
	if !ok || inner.Value != "王芳" {
		t.Fatalf("nested field mismatch: %+v ok=%v", inner, ok)
	}
}

func TestFieldValueUnmarshalNull(t *testing.T) {
	for _, raw := range []string{`{"value":null,"displayValue":"x"}`, `{"displayValue":"x"}`, `{}`} {
		var fv FieldValue
		if err := json.Unmarshal([]byte(raw), &fv); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if fv.Value != nil {
			t.Fatalf("expect nil value for %s, got %v", raw, fv.Value)
		}
	}
}

func TestFieldValueUnmarshalNumberAndBool(t *testing.T) {
	var fv FieldValue
	if err := json.Unmarshal([]byte(`{"value":42.5}`), &fv); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if fv.Value != 42.5 {
		t.Fatalf("expect 42.5, got %v", fv.Value)
	}
	if err := json.Unmarshal([]byte(`{"value":true}`), &fv); err != nil {
		t.Fatalf("unmarshal bool: %v", err)
	}
	if fv.Value != true {
		t.Fatalf("expect true, got %v", fv.Value)
	}
}

func TestFieldValueMarshalOmitsEmptyDisplay(t *testing.T) {
	data, err := json.Marshal(FieldValue{Value: "x"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"value":"x"}` {
		t.Fatalf("unexpected wire form: %s", data)
	}
}

func TestFieldValueUnmarshalYAML(t *testing.T) {
	doc := `
plain:
  value: "hello"
  displayValue: "你好"
nested:
  value:
    id: "001A1"
    apiName: "Account"
    fields:
      Name:
        value: "明远贸易"
empty:
  displayValue: "only display"
`
	var fields map[string]FieldValue
	if err := yaml.Unmarshal([]byte(doc), &fields); err != nil {
		t.Fatalf("unmarshal yaml: %v", err)
	}
	if fields["plain"].Value != "hello" || fields["plain"].DisplayValue != "你好" {
		t.Fatalf("plain field mismatch: %+v", fields["plain"])
	}
	nested := fields["nested"].Nested()
	if nested == nil || nested.ID != "001A1" {
		t.Fatalf("nested field mismatch: %+v", fields["nested"])
	}
	if fields["empty"].Value != nil {
		t.Fatalf("expect nil value when value omitted, got %v", fields["empty"].Value)
	}
}

func TestScalarString(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"abc", "abc"},
		{true, "true"},
		{float64(42), "42"},
		{42.5, "42.5"},
		{7, "7"},
	}
	for _, c := range cases {
		got := FieldValue{Value: c.in}.ScalarString()
		if got != c.want {
			t.Fatalf("scalar string of %v: expect %q, got %q", c.in, c.want, got)
		}
	}
}

func TestRawRecordFieldNilSafe(t *testing.T) {
	var rec *RawRecord
	if _, ok := rec.Field("Name"); ok {
		t.Fatalf("nil record should report missing field")
	}
	empty := &RawRecord{ID: "x"}
	if _, ok := empty.Field("Name"); ok {
		t.Fatalf("record without fields should report missing field")
	}
}

func TestRawRecordUnmarshal(t *testing.T) {
	raw := `{
		"id": "500C1",
		"apiName": "Case",
		"fields": {
			"Subject": {"value": "无法登录控制台"},
			"Contact": {"value": {"id": "003C1", "fields": {}}}
		}
	}`
	var rec RawRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("unmarshal record: %v", err)
	}
	if rec.ID != "500C1" || rec.APIName != "Case" {
		t.Fatalf("record header mismatch: %+v", rec)
	}
	if fv, ok := rec.Field("Subject"); !ok || fv.Value != "无法登录控制台" {
		t.Fatalf("subject mismatch: %+v", fv)
	}
	if fv, _ := rec.Field("Contact"); fv.Nested() == nil {
		t.Fatalf("contact should expand to nested record")
	}
}
