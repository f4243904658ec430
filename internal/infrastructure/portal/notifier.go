package portal

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/godbus/dbus/v5"

	"github.com/bnema/retouch/internal/application/port"
	"github.com/bnema/retouch/internal/logging"
)

var _ port.Notifier = (*Notifier)(nil)

// Notifier posts desktop notifications through the Notification portal and
// falls back to org.freedesktop.Notifications.
type Notifier struct {
	api     portalAPI
	appName string
	seq     atomic.Uint64
}

// NewNotifier connects to the session bus.
func NewNotifier(ctx context.Context, appName string) (*Notifier, error) {
	api, err := connect(ctx)
	if err != nil {
		return nil, err
	}
	return newNotifier(api, appName), nil
}

func newNotifier(api portalAPI, appName string) *Notifier {
	return &Notifier{api: api, appName: appName}
}

// Close releases the bus connection.
func (n *Notifier) Close() error {
	if c, ok := n.api.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func (n *Notifier) Notify(ctx context.Context, title, body string, notifType port.NotificationType) error {
	log := logging.FromContext(ctx)

	id := fmt.Sprintf("retouch-%d", n.seq.Add(1))
	notification := map[string]dbus.Variant{
		"title":    dbus.MakeVariant(title),
		"body":     dbus.MakeVariant(body),
		"priority": dbus.MakeVariant(priorityFor(notifType)),
	}

	err := n.api.AddNotification(ctx, id, notification)
	if err == nil {
		log.Debug().Str("id", id).Str("type", notifType.String()).Msg("notification posted")
		return nil
	}
	log.Debug().Err(err).Msg("notification portal failed, trying org.freedesktop.Notifications")

	if fbErr := n.api.NotifyFallback(ctx, n.appName, title, body, urgencyFor(notifType)); fbErr != nil {
		return fmt.Errorf("post notification: %w", fbErr)
	}
	return nil
}

func priorityFor(t port.NotificationType) string {
	switch t {
	case port.NotificationError, port.NotificationWarning:
		return "high"
	default:
		return "normal"
	}
}

func urgencyFor(t port.NotificationType) byte {
	switch t {
	case port.NotificationError, port.NotificationWarning:
		return 2
	default:
		return 1
	}
}
