// Package notify delivers portal notifications to the log and to websocket
// clients.
package notify

import (
	"github.com/lawnchairsociety/undercroft/internal/logger"
	"github.com/lawnchairsociety/undercroft/internal/portal"
)

// LogSink writes every notification to the log.
type LogSink struct{}

var _ portal.NotificationSink = LogSink{}

func (LogSink) Notify(n portal.Notification) {
	logger.Info(n.Message,
		"kind", string(n.Kind),
		"dungeon", n.DungeonID,
		"type", n.DungeonType,
		"portal", n.PortalID)
}
