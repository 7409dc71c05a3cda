//go:build linux

package notify

import (
	"os"
	"testing"

	"github.com/godbus/dbus/v5"
)

func TestNotifyArgs(t *testing.T) {
	args := notifyArgs(Notification{
		Title:      "track.mp3",
		Body:       "Band - Record",
		Timeout:    3000,
		ReplacesID: 7,
		Urgency:    UrgencyCritical,
	})

	if len(args) != 8 {
		t.Fatalf("len(args) = %d, want 8", len(args))
	}
	if args[0] != appName {
		t.Errorf("app_name = %v, want %s", args[0], appName)
	}
	if args[1] != uint32(7) {
		t.Errorf("replaces_id = %v, want 7", args[1])
	}
	if args[3] != "track.mp3" || args[4] != "Band - Record" {
		t.Errorf("summary/body = %v/%v", args[3], args[4])
	}
	hints := args[6].(map[string]dbus.Variant)
	if hints["urgency"].Value() != byte(UrgencyCritical) {
		t.Errorf("urgency hint = %v, want %d", hints["urgency"].Value(), UrgencyCritical)
	}
	if args[7] != int32(3000) {
		t.Errorf("timeout = %v, want 3000", args[7])
	}
}

func TestNotifySendsNotification(t *testing.T) {
	// Skip if no D-Bus session (CI environment)
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no D-Bus session available")
	}

	notifier, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	id, err := notifier.Notify(Notification{
		Title:   "cadence test",
		Body:    "Test notification from unit test",
		Timeout: 1000,
		Urgency: UrgencyLow,
	})
	if err != nil {
		t.Skipf("notification server unavailable: %v", err)
	}
	if err := notifier.Close(id); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}
