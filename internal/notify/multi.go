package notify

import "github.com/lawnchairsociety/undercroft/internal/portal"

// Multi fans a notification out to several sinks in order.
type Multi []portal.NotificationSink

func (m Multi) Notify(n portal.Notification) {
	for _, s := range m {
		if s != nil {
			s.Notify(n)
		}
	}
}

// Recorder keeps every notification it receives.
type Recorder struct {
	Notifications []portal.Notification
}

func (r *Recorder) Notify(n portal.Notification) {
	r.Notifications = append(r.Notifications, n)
}
