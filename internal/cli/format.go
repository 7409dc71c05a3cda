package cli

import (
	"fmt"
	"time"
)

// formatDuration formats d as MM:SS, or H:MM:SS from one hour.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second) / time.Second)
	h, m, s := total/3600, total/60%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// formatStamp formats d as an LRC timestamp, MM:SS.CC.
func formatStamp(d time.Duration) string {
	cs := int(d / (10 * time.Millisecond))
	return fmt.Sprintf("%02d:%02d.%02d", cs/6000, cs/100%60, cs%100)
}
