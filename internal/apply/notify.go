package apply

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	godbus "github.com/godbus/dbus/v5"
)

const (
	notificationsDest   = "org.freedesktop.Notifications"
	notificationsPath   = "/org/freedesktop/Notifications"
	notificationsNotify = "org.freedesktop.Notifications.Notify"
)

// NotificationLevel indicates the urgency of a notification.
type NotificationLevel int

const (
	// NotificationLevelInfo is for informational messages (low urgency).
	NotificationLevelInfo NotificationLevel = iota
	// NotificationLevelError is for failures (critical urgency).
	NotificationLevelError
)

// Notifier sends desktop notifications.
type Notifier interface {
	Notify(ctx context.Context, summary, body string, level NotificationLevel) error
}

// Notification is a single org.freedesktop.Notifications.Notify request.
type Notification struct {
	AppName       string
	AppIcon       string
	Summary       string
	Body          string
	Hints         map[string]godbus.Variant
	ExpireTimeout int32
}

// SendFunc delivers a notification. DBusSend is used unless replaced.
type SendFunc func(ctx context.Context, n *Notification) error

// DBusNotifier sends notifications over the session bus and drops
// repeats of the same summary within minInterval.
type DBusNotifier struct {
	mu     sync.Mutex
	logger *slog.Logger
	send   SendFunc

	lastNotifyTime map[string]time.Time
	minInterval    time.Duration
}

// NewDBusNotifier creates a notifier using the session bus.
func NewDBusNotifier(logger *slog.Logger) *DBusNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &DBusNotifier{
		logger:         logger,
		send:           DBusSend,
		lastNotifyTime: make(map[string]time.Time),
		minInterval:    2 * time.Second,
	}
}

// SetSendFunc replaces the delivery function.
func (n *DBusNotifier) SetSendFunc(send SendFunc) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.send = send
}

// Notify implements Notifier.
func (n *DBusNotifier) Notify(ctx context.Context, summary, body string, level NotificationLevel) error {
	n.mu.Lock()
	if lastTime, ok := n.lastNotifyTime[summary]; ok && time.Since(lastTime) < n.minInterval {
		n.mu.Unlock()
		n.logger.Debug("notification rate-limited", "summary", summary)
		return nil
	}
	n.lastNotifyTime[summary] = time.Now()
	send := n.send
	n.mu.Unlock()

	urgency := byte(0) // Low
	icon := "preferences-desktop-theme"
	if level == NotificationLevelError {
		urgency = 2 // Critical
		icon = "dialog-error"
	}

	return send(ctx, &Notification{
		AppName: "cheztheme",
		AppIcon: icon,
		Summary: summary,
		Body:    body,
		Hints: map[string]godbus.Variant{
			"urgency":       godbus.MakeVariant(urgency),
			"transient":     godbus.MakeVariant(true),
			"desktop-entry": godbus.MakeVariant("cheztheme"),
		},
		ExpireTimeout: 5000,
	})
}

// DBusSend calls Notify on the session bus notification server.
func DBusSend(ctx context.Context, n *Notification) error {
	conn, err := godbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	defer conn.Close()

	obj := conn.Object(notificationsDest, godbus.ObjectPath(notificationsPath))
	call := obj.CallWithContext(ctx, notificationsNotify, 0,
		n.AppName,
		uint32(0),
		n.AppIcon,
		n.Summary,
		n.Body,
		[]string{},
		n.Hints,
		n.ExpireTimeout,
	)
	if call.Err != nil {
		return fmt.Errorf("notify failed: %w", call.Err)
	}
	return nil
}
