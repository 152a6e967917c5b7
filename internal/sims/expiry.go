package sims

import (
	"math"
	"strings"
	"time"

	"simtracker/internal/models"
)

// expiresOnLayouts are tried in order. "1/2/2006" also accepts zero-padded
// month and day, so it covers both MM/DD/YYYY and M/D/YYYY entries.
var expiresOnLayouts = []string{
	"1/2/2006",
	"1/2/06",
	"2006-01-02",
}

// Annotate fills sim.DaysLeft from sim.ExpiresOn relative to now in loc.
// An empty or unparseable expires_on leaves DaysLeft nil; an expiry at or
// before now sets the -1 sentinel; otherwise DaysLeft is the calendar-day
// distance between the two local midnights. Pure, no side effects, safe
// under concurrent readers.
func Annotate(sim *models.Sim, now time.Time, loc *time.Location) {
	sim.DaysLeft = nil
	raw := strings.TrimSpace(sim.ExpiresOn)
	if raw == "" {
		return
	}
	var expiry time.Time
	parsed := false
	for _, layout := range expiresOnLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			expiry = t
			parsed = true
			break
		}
	}
	if !parsed {
		return
	}
	expiryMid := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, loc)
	local := now.In(loc)
	nowMid := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	// Round, not truncate: a DST transition makes the interval a few
	// minutes off a whole number of days.
	days := int(math.Round(expiryMid.Sub(nowMid).Hours() / 24))
	if days <= 0 {
		days = -1
	}
	sim.DaysLeft = &days
}
