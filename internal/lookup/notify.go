package lookup

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/git-search/internal/models"
)

// Notifier receives the transient banners a session raises.
type Notifier interface {
	Notify(n models.Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n models.Notification)

func (f NotifierFunc) Notify(n models.Notification) { f(n) }

// LogNotifier writes notifications to a logger.
type LogNotifier struct {
	Logger *logrus.Logger
}

func (l LogNotifier) Notify(n models.Notification) {
	entry := l.Logger.WithFields(logrus.Fields{
		"notification_id": n.ID.String(),
		"level":           n.Level,
	})
	if n.Level == models.NotificationError {
		entry.Warn(n.Message)
		return
	}
	entry.Info(n.Message)
}

// Feed buffers the most recent notifications until they are drained.
type Feed struct {
	mu    sync.Mutex
	items []models.Notification
	size  int
}

// NewFeed creates a feed holding at most size notifications; older ones are dropped.
func NewFeed(size int) *Feed {
	if size < 1 {
		size = 1
	}
	return &Feed{size: size}
}

func (f *Feed) Notify(n models.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, n)
	if over := len(f.items) - f.size; over > 0 {
		f.items = append([]models.Notification(nil), f.items[over:]...)
	}
}

// Drain returns the buffered notifications, oldest first, and empties the feed.
func (f *Feed) Drain() []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.items
	f.items = nil
	if out == nil {
		out = []models.Notification{}
	}
	return out
}

// Multi fans a notification out to several notifiers.
type Multi []Notifier

func (m Multi) Notify(n models.Notification) {
	for _, notifier := range m {
		notifier.Notify(n)
	}
}
