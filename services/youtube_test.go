package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewYouTubeClientMissingKey(t *testing.T) {
	client, err := NewYouTubeClient(context.Background(), YouTubeConfig{})
	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrMissingYouTubeKey)
}

func TestFallbackLookup(t *testing.T) {
	v := fallbackLookup("rust ownership tutorial")
	assert.True(t, v.Fallback)
	assert.Equal(t, FallbackVideoID, v.ID)
	assert.Equal(t, "rust ownership tutorial", v.Title)
	assert.Equal(t, FallbackDuration, v.Duration)
}

func TestFormatISODuration(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"PT15M30S", "15:30"},
		{"PT1H2M3S", "1:02:03"},
		{"PT2M", "2:00"},
		{"PT45S", "0:45"},
		{"PT10H", "10:00:00"},
		{"PT", FallbackDuration},
		{"", FallbackDuration},
		{"15:30", FallbackDuration},
		{"P1DT2H", FallbackDuration},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatISODuration(tc.in), "input: %q", tc.in)
	}
}
