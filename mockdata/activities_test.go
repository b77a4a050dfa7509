package mockdata

import (
	"encoding/json"
	"testing"

	"xclub-api/repositories"
)

func TestListActivitiesPagination(t *testing.T) {
	resp := ListActivities(repositories.ActivityFilters{Page: 1, Limit: 3})
	if len(resp.Data) != 3 {
		t.Fatalf("expected 3 records on page 1, got %d", len(resp.Data))
	}
	if resp.Total != int64(len(Activities)) {
		t.Errorf("total = %d, want %d", resp.Total, len(Activities))
	}
	if resp.TotalPages != 3 { // 8 records, limit 3
		t.Errorf("total_pages = %d, want 3", resp.TotalPages)
	}

	// Newest first
	for i := 1; i < len(resp.Data); i++ {
		if resp.Data[i].StartedAt.After(resp.Data[i-1].StartedAt) {
			t.Errorf("records not ordered newest-first at index %d", i)
		}
	}

	// Last page holds the remainder
	last := ListActivities(repositories.ActivityFilters{Page: 3, Limit: 3})
	if len(last.Data) != 2 {
		t.Errorf("expected 2 records on last page, got %d", len(last.Data))
	}

	// Page past the end is empty, not an error
	past := ListActivities(repositories.ActivityFilters{Page: 10, Limit: 3})
	if len(past.Data) != 0 {
		t.Errorf("expected empty page past the end, got %d records", len(past.Data))
	}
}

func TestListActivitiesFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters repositories.ActivityFilters
		want    int
	}{
		{"by type run", repositories.ActivityFilters{Type: "run"}, 3},
		{"by type ride", repositories.ActivityFilters{Type: "ride"}, 3},
		{"by status synced", repositories.ActivityFilters{Status: "synced"}, 6},
		{"by source strava", repositories.ActivityFilters{Source: "strava"}, 3},
		{"search is case-insensitive", repositories.ActivityFilters{Search: "RUN"}, 3},
		{"combined filters", repositories.ActivityFilters{Type: "run", Status: "synced"}, 2},
		{"no match", repositories.ActivityFilters{Search: "marathon"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ListActivities(tt.filters)
			if resp.Total != int64(tt.want) {
				t.Errorf("total = %d, want %d", resp.Total, tt.want)
			}
		})
	}
}

// The fallback envelope must carry exactly the keys the database-backed
// handler returns, so clients cannot tell the two modes apart.
func TestListActivitiesEnvelopeShape(t *testing.T) {
	resp := ListActivities(repositories.ActivityFilters{Page: 1, Limit: 5})

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"data", "total", "page", "limit", "total_pages"} {
		if _, ok := envelope[key]; !ok {
			t.Errorf("envelope missing key %q", key)
		}
	}
	if len(envelope) != 5 {
		t.Errorf("envelope has %d keys, want 5", len(envelope))
	}
}
