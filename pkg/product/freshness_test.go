package product

import (
	"testing"
	"time"

	"FreshTrack/domain"
)

func TestClassify(t *testing.T) {
	today := time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		want      string
	}{
		{"expired yesterday", time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), domain.StatusSpoiled},
		{"expires today", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), domain.StatusWarning},
		{"expires in three days", time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC), domain.StatusWarning},
		{"expires in four days", time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), domain.StatusFresh},
		{"expires far out", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), domain.StatusFresh},
		{"expired long ago", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), domain.StatusSpoiled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.expiresAt, today)
			if got != tt.want {
				t.Errorf("Classify(%v) = %q, want %q", tt.expiresAt, got, tt.want)
			}
		})
	}
}

func TestClassifyIgnoresTimeOfDay(t *testing.T) {
	// Late on June 1st, a product expiring early on June 1st is still
	// Warning, not Spoiled: only calendar days count.
	today := time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC)
	expiresAt := time.Date(2024, 6, 1, 0, 1, 0, 0, time.UTC)

	if got := Classify(expiresAt, today); got != domain.StatusWarning {
		t.Errorf("Classify same-day = %q, want %q", got, domain.StatusWarning)
	}
}
