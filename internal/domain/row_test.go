package domain

import "testing"

func TestDisplayRowID(t *testing.T) {
	row := DisplayRow{RowKeyID: "500C1", "Subject": "hello"}
	if row.ID() != "500C1" {
		t.Fatalf("expect 500C1, got %s", row.ID())
	}
	if (DisplayRow{}).ID() != "" {
		t.Fatalf("missing id should read as empty string")
	}
	if (DisplayRow{RowKeyID: 42}).ID() != "" {
		t.Fatalf("non-string id should read as empty string")
	}
}

func TestBuildWidgetColumns(t *testing.T) {
	cols := []ColumnDescriptor{
		{
			FieldAPIName:     "Subject",
			Label:            "主题",
			DisplayFieldName: "Subject",
			ResolvedType:     TypeText,
			Sortable:         true,
		},
		{
			FieldAPIName:     "ContactId",
			Label:            "联系人",
			DisplayFieldName: "ContactId-resourceUrl",
			ResolvedType:     TypeURL,
			LookupTargetPath: "Contact.Id",
		},
	}
	out := BuildWidgetColumns(cols)
	if len(out) != 2 {
		t.Fatalf("expect 2 widget columns, got %d", len(out))
	}

	plain := out[0]
	if plain.FieldName != "Subject" || plain.Type != TypeText || !plain.Sortable {
		t.Fatalf("plain column mismatch: %+v", plain)
	}
	if plain.TypeAttributes != nil {
		t.Fatalf("plain column should not carry type attributes")
	}

	link := out[1]
	if link.FieldName != "ContactId-resourceUrl" || link.Type != TypeURL {
		t.Fatalf("url column mismatch: %+v", link)
	}
	label, ok := link.TypeAttributes["label"].(map[string]string)
	if !ok || label["fieldName"] != "ContactId" {
		t.Fatalf("url label should bind to raw field, got %+v", link.TypeAttributes)
	}
	if link.TypeAttributes["target"] != "_self" {
		t.Fatalf("url target mismatch: %+v", link.TypeAttributes)
	}
}

func TestBuildWidgetColumnsEmpty(t *testing.T) {
	out := BuildWidgetColumns(nil)
	if out == nil || len(out) != 0 {
		t.Fatalf("expect empty non-nil slice, got %v", out)
	}
}
