package grid

import (
	"testing"

	"crm2grid/internal/platform"
)

func sampleSummaries() []platform.RelatedListSummary {
	return []platform.RelatedListSummary{
		{RelatedListID: "Contacts", Label: "联系人", LabelPlural: "联系人"},
		{RelatedListID: "Cases", Label: "工单", LabelPlural: "工单", IconName: "standard:case"},
	}
}

func TestSelectSummary(t *testing.T) {
	s := SelectSummary(sampleSummaries(), "Cases")
	if s == nil || s.RelatedListID != "Cases" {
		t.Fatalf("expect Cases summary, got %+v", s)
	}
	if s.IconName != "standard:case" {
		t.Fatalf("summary fields should be carried over: %+v", s)
	}
}

func TestSelectSummaryCaseInsensitive(t *testing.T) {
	s := SelectSummary(sampleSummaries(), "cases")
	if s == nil || s.RelatedListID != "Cases" {
		t.Fatalf("match should ignore case, got %+v", s)
	}
}

func TestSelectSummaryMiss(t *testing.T) {
	if s := SelectSummary(sampleSummaries(), "Opportunities"); s != nil {
		t.Fatalf("expect nil for unknown relationship, got %+v", s)
	}
	if s := SelectSummary(sampleSummaries(), ""); s != nil {
		t.Fatalf("expect nil for empty relationship, got %+v", s)
	}
	if s := SelectSummary(nil, "Cases"); s != nil {
		t.Fatalf("expect nil for empty summaries, got %+v", s)
	}
}

func TestSelectSummaryReturnsCopy(t *testing.T) {
	lists := sampleSummaries()
	s := SelectSummary(lists, "Cases")
	s.Label = "mutated"
	if lists[1].Label != "工单" {
		t.Fatalf("selection must not alias the input slice: %s", lists[1].Label)
	}
}
