package sims

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"simtracker/internal/models"
)

func TestAnnotate(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresOn string
		want      *int
	}{
		{"expired", "01/05/2024", intPtr(-1)},
		{"future", "01/20/2024", intPtr(10)},
		{"future unpadded", "1/20/2024", intPtr(10)},
		{"future iso", "2024-01-20", intPtr(10)},
		{"same day counts as expired", "01/10/2024", intPtr(-1)},
		{"tomorrow", "01/11/2024", intPtr(1)},
		{"empty", "", nil},
		{"blank", "   ", nil},
		{"malformed", "not-a-date", nil},
		{"partial date", "01/2024", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := models.Sim{ExpiresOn: tt.expiresOn}
			Annotate(&sim, now, time.UTC)
			if tt.want == nil {
				require.Nil(t, sim.DaysLeft)
				return
			}
			require.NotNil(t, sim.DaysLeft)
			require.Equal(t, *tt.want, *sim.DaysLeft)
		})
	}
}

func TestAnnotateAcrossDSTBoundary(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	// Spring-forward on 2024-03-10 shortens the interval by an hour; the
	// day count must still be whole.
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, loc)
	sim := models.Sim{ExpiresOn: "03/15/2024"}
	Annotate(&sim, now, loc)
	require.NotNil(t, sim.DaysLeft)
	require.Equal(t, 14, *sim.DaysLeft)
}

func TestAnnotateResetsStaleValue(t *testing.T) {
	stale := 42
	sim := models.Sim{ExpiresOn: "garbage", DaysLeft: &stale}
	Annotate(&sim, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), time.UTC)
	require.Nil(t, sim.DaysLeft)
}

func intPtr(v int) *int { return &v }
