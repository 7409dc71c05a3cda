package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00"},
		{-time.Second, "00:00"},
		{42 * time.Second, "00:42"},
		{3*time.Minute + 7*time.Second, "03:07"},
		{1500 * time.Millisecond, "00:02"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.in), tt.in.String())
	}
}

func TestFormatStamp(t *testing.T) {
	assert.Equal(t, "00:00.00", formatStamp(0))
	assert.Equal(t, "01:05.25", formatStamp(time.Minute+5250*time.Millisecond))
	assert.Equal(t, "12:00.01", formatStamp(12*time.Minute+10*time.Millisecond))
}
