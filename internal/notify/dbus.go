//go:build linux

package notify

import (
	"github.com/godbus/dbus/v5"
)

const (
	dbusNotifyDest      = "org.freedesktop.Notifications"
	dbusNotifyPath      = "/org/freedesktop/Notifications"
	dbusNotifyInterface = "org.freedesktop.Notifications"
)

// dbusNotifier sends notifications via D-Bus.
type dbusNotifier struct {
	obj dbus.BusObject
}

// New creates a Notifier that sends desktop notifications via D-Bus.
// Returns Discard if D-Bus is unavailable.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return Discard, nil //nolint:nilerr // graceful fallback when D-Bus unavailable
	}
	return &dbusNotifier{obj: conn.Object(dbusNotifyDest, dbusNotifyPath)}, nil
}

// notifyArgs builds the arguments of
// Notify(app_name, replaces_id, icon, summary, body, actions, hints, timeout).
func notifyArgs(n Notification) []any {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant(appName),
	}
	return []any{appName, n.ReplacesID, n.Icon, n.Title, n.Body, []string{}, hints, n.Timeout}
}

// Notify sends a notification via D-Bus.
func (d *dbusNotifier) Notify(n Notification) (uint32, error) {
	call := d.obj.Call(dbusNotifyInterface+".Notify", 0, notifyArgs(n)...)
	if call.Err != nil {
		return 0, call.Err
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Close closes a notification by ID.
func (d *dbusNotifier) Close(id uint32) error {
	return d.obj.Call(dbusNotifyInterface+".CloseNotification", 0, id).Err
}
