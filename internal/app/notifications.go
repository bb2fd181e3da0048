package app

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen/quote-sync/internal/ports"
)

// Display lifetimes per notification kind.
var notificationTTL = map[ports.NotificationKind]time.Duration{
	ports.NotifySuccess:  3 * time.Second,
	ports.NotifyError:    4 * time.Second,
	ports.NotifyWarning:  4 * time.Second,
	ports.NotifyInfo:     5 * time.Second,
	ports.NotifyConflict: 10 * time.Second,
}

// defaultTTL applies to kinds without an entry in notificationTTL.
const defaultTTL = 3 * time.Second

// TTL returns how long a notification of kind stays active.
func TTL(kind ports.NotificationKind) time.Duration {
	if d, ok := notificationTTL[kind]; ok {
		return d
	}

	return defaultTTL
}

// Notification is one transient status message.
type Notification struct {
	ID        string                 `json:"id"`
	Kind      ports.NotificationKind `json:"kind"`
	Message   string                 `json:"message"`
	CreatedAt time.Time              `json:"createdAt"`
	ExpiresAt time.Time              `json:"expiresAt"`
}

// NotificationCenter is the status channel. It keeps notifications until
// they expire and fans them out to live subscribers.
type NotificationCenter struct {
	clock  ports.Clock
	logger *slog.Logger

	mu      sync.Mutex
	active  []Notification
	nextSub int
	subs    map[int]func(Notification)
}

var _ ports.Notifier = (*NotificationCenter)(nil)

// NewNotificationCenter creates an empty center.
func NewNotificationCenter(clock ports.Clock, logger *slog.Logger) *NotificationCenter {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &NotificationCenter{
		clock:  clock,
		logger: logger.With(slog.String("component", "app.NotificationCenter")),
		subs:   map[int]func(Notification){},
	}
}

// Notify implements ports.Notifier.
func (c *NotificationCenter) Notify(kind ports.NotificationKind, message string) {
	now := c.clock.Now()
	n := Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(TTL(kind)),
	}

	c.mu.Lock()
	c.active = append(c.prune(now), n)
	subs := make([]func(Notification), 0, len(c.subs))

	for id := range c.nextSub {
		if fn, ok := c.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	c.mu.Unlock()

	c.logger.Debug("notification", slog.String("kind", string(kind)), slog.String("message", message))

	for _, fn := range subs {
		fn(n)
	}
}

// Active returns unexpired notifications, oldest first.
func (c *NotificationCenter) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.active = c.prune(c.clock.Now())

	out := make([]Notification, len(c.active))
	copy(out, c.active)

	return out
}

// Subscribe registers fn for every future notification. The returned
// function unregisters it.
func (c *NotificationCenter) Subscribe(fn func(Notification)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		delete(c.subs, id)
	}
}

// prune must be called with mu held.
func (c *NotificationCenter) prune(now time.Time) []Notification {
	kept := c.active[:0]

	for _, n := range c.active {
		if now.Before(n.ExpiresAt) {
			kept = append(kept, n)
		}
	}

	return kept
}
