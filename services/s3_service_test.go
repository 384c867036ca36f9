package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPhotoKeyIsScopedByItinerary(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)

	key := photoKey("it-42", "beach.jpg", now)
	assert.Equal(t, "itinerary-photos/it-42/20260301103000-beach.jpg", key)

	other := photoKey("it-43", "beach.jpg", now)
	assert.NotEqual(t, key, other, "identical file names land under distinct itinerary prefixes")
}

func TestPresignTTL(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want time.Duration
	}{
		{"unset uses default", "", defaultPresignTTL},
		{"minutes from env", "30", 30 * time.Minute},
		{"junk uses default", "soon", defaultPresignTTL},
		{"non-positive uses default", "-1", defaultPresignTTL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("S3_URL_TTL_MINUTES", tt.env)
			assert.Equal(t, tt.want, presignTTL())
		})
	}
}
