package models

import (
	"encoding/json"
	"testing"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Active", StatusActive},
		{"  planning ", StatusPlanning},
		{"Planned", StatusPlanning},
		{"COMPLETED", StatusCompleted},
		{"done", StatusCompleted},
		{"", StatusUnknown},
		{"on hold", StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeStatus(tt.in); got != tt.want {
				t.Errorf("NormalizeStatus(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEnrichedProjectViewFlattensRecord(t *testing.T) {
	view := EnrichedProjectView{
		ProjectRecord:   ProjectRecord{ID: "PRJ-1", ManagerEmail: "pm1@example.com"},
		DocumentStatus:  DocumentMissing,
		DaysSinceUpdate: DaysUnknown,
		Priority:        PriorityHigh,
	}

	data, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got["project_id"] != "PRJ-1" || got["pm_email"] != "pm1@example.com" {
		t.Errorf("record fields not flattened: %v", got)
	}
	if got["document_status"] != DocumentMissing {
		t.Errorf("document_status = %v, want %q", got["document_status"], DocumentMissing)
	}
	if got["days_since_update"] != float64(DaysUnknown) {
		t.Errorf("days_since_update = %v, want %d", got["days_since_update"], DaysUnknown)
	}
	if _, ok := got["document_generated_at"]; !ok {
		t.Error("document_generated_at should be present even when nil")
	}
}

func TestCollectionSummaryTotal(t *testing.T) {
	s := CollectionSummary{WithDocument: 3, WithoutDocument: 2, RecentlyUpdated: 4}
	if s.Total() != 5 {
		t.Errorf("Total() = %d, want 5", s.Total())
	}
}
