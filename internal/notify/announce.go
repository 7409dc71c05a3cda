package notify

import (
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/playback"
)

const announceTimeout = 4000

// Announcer turns playback events into "now playing" and error
// notifications. Each new notification replaces the previous one.
type Announcer struct {
	notifier Notifier
	logger   logrus.FieldLogger
	lastID   uint32
}

// NewAnnouncer creates an announcer sending through n.
func NewAnnouncer(n Notifier, logger logrus.FieldLogger) *Announcer {
	return &Announcer{notifier: n, logger: logger}
}

// Handle sends a notification for events worth announcing.
func (a *Announcer) Handle(ev playback.Event) {
	switch e := ev.(type) {
	case playback.TitleChange:
		body := e.Artist
		if e.Album != "" {
			if body != "" {
				body += " - "
			}
			body += e.Album
		}
		a.send(Notification{
			Title:   e.Title,
			Body:    body,
			Timeout: announceTimeout,
			Urgency: UrgencyLow,
		})
	case playback.ErrorEvent:
		a.send(Notification{
			Title:   e.Kind.Description(),
			Body:    errmsg.FormatWith(errmsg.ForOperation(e.Operation), filepath.Base(e.Path), e.Err),
			Timeout: announceTimeout,
			Urgency: UrgencyNormal,
		})
	}
}

func (a *Announcer) send(n Notification) {
	n.ReplacesID = a.lastID
	id, err := a.notifier.Notify(n)
	if err != nil {
		a.logger.WithError(err).Debug(errmsg.Format(errmsg.OpNotify, err))
		return
	}
	a.lastID = id
}
