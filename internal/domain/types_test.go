package domain

import "testing"

func TestResolveDataType(t *testing.T) {
	cases := []struct {
		raw    DataType
		lookup bool
		want   DataType
	}{
		{TypeDateTime, false, TypeDateLocal},
		{TypePicklist, false, TypeString},
		{TypeText, false, TypeText},
		{TypeNumber, false, TypeNumber},
		{DataType("reference"), false, DataType("reference")},
		{TypeString, true, TypeURL},
		// 查找列优先于其他映射规则。
		{TypeDateTime, true, TypeURL},
		{TypePicklist, true, TypeURL},
	}
	for _, c := range cases {
		if got := ResolveDataType(c.raw, c.lookup); got != c.want {
			t.Fatalf("resolve(%s, lookup=%v): expect %s, got %s", c.raw, c.lookup, c.want, got)
		}
	}
}

func TestColumnDescriptorUsesDisplayValue(t *testing.T) {
	display := []DataType{TypeString, TypeDateLocal, TypeText, TypeTextArea}
	for _, dt := range display {
		col := ColumnDescriptor{ResolvedType: dt}
		if !col.UsesDisplayValue() {
			t.Fatalf("type %s should use display value", dt)
		}
	}
	raw := []DataType{TypeNumber, TypeCurrency, TypeBoolean, TypeURL, TypeDate, TypeEmail}
	for _, dt := range raw {
		col := ColumnDescriptor{ResolvedType: dt}
		if col.UsesDisplayValue() {
			t.Fatalf("type %s should use raw value", dt)
		}
	}
}

func TestColumnDescriptorIsLookup(t *testing.T) {
	if (ColumnDescriptor{}).IsLookup() {
		t.Fatalf("column without target path is not a lookup")
	}
	if !(ColumnDescriptor{LookupTargetPath: "Contact.Id"}).IsLookup() {
		t.Fatalf("column with target path is a lookup")
	}
}
