package utils

import (
	"time"
	"unicode"
)

// dobLayouts are the birth-date formats accepted from itinerary owner snapshots
var dobLayouts = []string{"2006-01-02", time.RFC3339, "01/02/2006"}

// maxHumanAge bounds a plausible age in whole years
const maxHumanAge = 150

// AgeFromDOB computes an age in whole years from a birth date string.
// Unparseable dates, future dates, and ages outside [0,150] all report
// ok=false; callers must treat that as "unknown", never as zero.
func AgeFromDOB(dob string) (int, bool) {
	return ageAt(dob, time.Now())
}

func ageAt(dob string, now time.Time) (int, bool) {
	if dob == "" {
		return 0, false
	}

	var born time.Time
	parsed := false
	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, dob); err == nil {
			born = t
			parsed = true
			break
		}
	}
	if !parsed {
		return 0, false
	}

	if born.After(now) {
		return 0, false
	}

	age := now.Year() - born.Year()
	// Birthday not reached yet this year
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}

	if age < 0 || age > maxHumanAge {
		return 0, false
	}
	return age, true
}

// Overlaps reports whether the inclusive intervals [aStart,aEnd] and
// [bStart,bEnd] share at least one day. Touching endpoints count.
func Overlaps(aStart, aEnd, bStart, bEnd int64) bool {
	return aStart <= bEnd && aEnd >= bStart
}

// DayFromDate converts a calendar date string to epoch milliseconds at
// midnight UTC. ok=false when the date does not parse.
func DayFromDate(date string) (int64, bool) {
	if date == "" {
		return 0, false
	}
	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t.UnixMilli(), true
		}
	}
	return 0, false
}

// SanitizeKeyPart replaces commas and whitespace with underscores so a
// destination can be embedded in a cache key
func SanitizeKeyPart(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r == ',' || unicode.IsSpace(r) {
			out[i] = '_'
		}
	}
	return string(out)
}
