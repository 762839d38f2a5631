package port

import "resizer/internal/core/domain"

type Notifier interface {
	// Notify replaces the current notification with message.
	Notify(message string, kind domain.NotificationKind)
}

type NotificationSink interface {
	// Show displays a notification.
	Show(n domain.Notification)
	// Dismiss hides a previously shown notification.
	Dismiss(n domain.Notification)
}
