package service

import (
	"resizer/internal/core/domain"
	"resizer/internal/core/port"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultNotificationDelay is how long a notification stays visible.
const DefaultNotificationDelay = 4 * time.Second

// Notifier shows one notification at a time and dismisses it after a fixed
// delay. Every call supersedes the previous notification and its timer.
type Notifier struct {
	sink       port.NotificationSink
	delay      time.Duration
	mutex      *sync.Mutex
	current    *domain.Notification
	timer      *time.Timer
	generation uint64
}

func NewNotifier(sink port.NotificationSink, delay time.Duration) *Notifier {
	if delay <= 0 {
		delay = DefaultNotificationDelay
	}

	return &Notifier{
		sink:  sink,
		delay: delay,
		mutex: &sync.Mutex{},
	}
}

func (n *Notifier) Notify(message string, kind domain.NotificationKind) {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}

	n.generation++
	generation := n.generation

	note := domain.Notification{Message: message, Kind: kind, Shown: time.Now()}
	n.current = &note

	log.Debug().Str("kind", string(kind)).Str("message", message).Msg("showing notification")
	n.sink.Show(note)

	n.timer = time.AfterFunc(n.delay, func() {
		n.expire(generation)
	})
}

// Current returns the visible notification, if any.
func (n *Notifier) Current() (domain.Notification, bool) {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	if n.current == nil {
		return domain.Notification{}, false
	}

	return *n.current, true
}

// Stop cancels the pending dismissal without dismissing.
func (n *Notifier) Stop() {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}

func (n *Notifier) expire(generation uint64) {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	// A newer notification owns the timer now.
	if generation != n.generation || n.current == nil {
		return
	}

	note := *n.current
	n.current = nil
	n.timer = nil

	log.Debug().Str("message", note.Message).Msg("dismissing notification")
	n.sink.Dismiss(note)
}
