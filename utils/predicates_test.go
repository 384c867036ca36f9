package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgeAt(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		dob     string
		wantAge int
		wantOK  bool
	}{
		{"birthday today", "2001-06-15", 25, true},
		{"birthday tomorrow", "2001-06-16", 24, true},
		{"birthday yesterday", "2001-06-14", 25, true},
		{"rfc3339 form", "1996-01-02T00:00:00Z", 30, true},
		{"slash form", "01/02/1996", 30, true},
		{"unparseable", "not-a-date", 0, false},
		{"empty", "", 0, false},
		{"future date", "2030-01-01", 0, false},
		{"implausibly old", "1850-01-01", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			age, ok := ageAt(tt.dob, now)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantAge, age)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int64
		want                       bool
	}{
		{"identical", 10, 20, 10, 20, true},
		{"contained", 10, 20, 12, 18, true},
		{"partial", 10, 20, 15, 25, true},
		{"touching at end", 10, 20, 20, 30, true},
		{"touching at start", 20, 30, 10, 20, true},
		{"disjoint after", 10, 20, 21, 30, false},
		{"disjoint before", 21, 30, 10, 20, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}

func TestDayFromDate(t *testing.T) {
	day, ok := DayFromDate("2026-07-01")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC).UnixMilli(), day)

	_, ok = DayFromDate("")
	assert.False(t, ok)

	_, ok = DayFromDate("July 1st")
	assert.False(t, ok)
}

func TestSanitizeKeyPart(t *testing.T) {
	assert.Equal(t, "Paris", SanitizeKeyPart("Paris"))
	assert.Equal(t, "New_York__NY", SanitizeKeyPart("New York, NY"))
	assert.Equal(t, "a_b_c", SanitizeKeyPart("a\tb c"))
}
