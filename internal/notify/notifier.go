package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"smartshop/internal/clock"
	"smartshop/pkg/domain"
)

// DefaultDuration is how long a notification stays visible.
const DefaultDuration = 5 * time.Second

// Notification is one transient user-facing message.
type Notification struct {
	ID        string
	Message   string
	Severity  domain.Severity
	CreatedAt time.Time
}

// Display renders notifications. Show and Remove are called once each per
// notification, Remove exactly Duration after Show.
type Display interface {
	Show(Notification)
	Remove(Notification)
}

// Config wires the Notifier.
type Config struct {
	Display  Display
	Clock    clock.Clock
	Duration time.Duration
}

// Notifier shows auto-expiring messages. Concurrent notifications coexist;
// there is no queueing or de-duplication.
type Notifier struct {
	display  Display
	clock    clock.Clock
	duration time.Duration

	mu     sync.Mutex
	active []Notification
}

// New constructs a Notifier. A nil display discards output.
func New(cfg Config) *Notifier {
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	if cfg.Duration <= 0 {
		cfg.Duration = DefaultDuration
	}
	return &Notifier{
		display:  cfg.Display,
		clock:    cfg.Clock,
		duration: cfg.Duration,
	}
}

// Show displays message and schedules its removal.
func (n *Notifier) Show(message string, severity domain.Severity) Notification {
	switch severity {
	case domain.SeverityInfo, domain.SeverityWarning, domain.SeverityError:
	default:
		severity = domain.SeverityInfo
	}
	note := Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		CreatedAt: time.Now().UTC(),
	}
	n.mu.Lock()
	n.active = append(n.active, note)
	n.mu.Unlock()

	slog.Debug("notification shown", "id", note.ID, "severity", string(severity), "message", message)
	if n.display != nil {
		n.display.Show(note)
	}
	n.clock.AfterFunc(n.duration, func() { n.expire(note) })
	return note
}

// Active returns the live notifications in creation order.
func (n *Notifier) Active() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notification, len(n.active))
	copy(out, n.active)
	return out
}

func (n *Notifier) expire(note Notification) {
	n.mu.Lock()
	for i, cur := range n.active {
		if cur.ID == note.ID {
			n.active = append(n.active[:i], n.active[i+1:]...)
			break
		}
	}
	n.mu.Unlock()
	if n.display != nil {
		n.display.Remove(note)
	}
}
