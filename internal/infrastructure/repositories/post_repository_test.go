package repositories

import (
	"testing"

	"github.com/Sushil1248/innfostride-backend/domain"
)

func TestListQuery_StatusFilter(t *testing.T) {
	tests := []struct {
		name       string
		status     domain.PostStatus
		wantStatus string
		wantAll    bool
	}{
		{name: "trash constrains", status: domain.StatusTrash, wantStatus: "trash"},
		{name: "draft constrains", status: domain.StatusDraft, wantStatus: "draft"},
		{name: "published constrains", status: domain.StatusPublished, wantStatus: "published"},
		{name: "empty means all", status: "", wantAll: true},
		{name: "All means all", status: "All", wantAll: true},
		{name: "unknown value means all", status: "whatever", wantAll: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := listQuery("example.com", "post", tt.status)

			if query["domain"] != "example.com" || query["post_type"] != "post" || query["deleted"] != false {
				t.Errorf("base filter wrong: %v", query)
			}
			got, constrained := query["status"]
			if tt.wantAll {
				if constrained {
					t.Errorf("status %q must not constrain the query, got status=%v", tt.status, got)
				}
				return
			}
			if got != tt.wantStatus {
				t.Errorf("status filter = %v, want %q", got, tt.wantStatus)
			}
		})
	}
}
