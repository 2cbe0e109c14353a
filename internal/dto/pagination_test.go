package dto

import "testing"

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"defaults when absent", 0, 0, 1, 10},
		{"negative page clamped", -3, 20, 1, 20},
		{"limit above cap clamped", 2, 500, 2, 100},
		{"in-range values kept", 3, 25, 3, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := NormalizePage(tt.page, tt.limit)
			if page != tt.wantPage || limit != tt.wantLimit {
				t.Errorf("NormalizePage(%d, %d) = (%d, %d), want (%d, %d)",
					tt.page, tt.limit, page, limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}
