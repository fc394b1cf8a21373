package notification

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"intranet/entity"
	"intranet/metrics"
)

const (
	DefaultType = "info"
	BaseClass   = "notification"
	ShowClass   = "show"

	DefaultShowDelay   = 10 * time.Millisecond
	DefaultDisplay     = 3000 * time.Millisecond
	DefaultRemoveDelay = 300 * time.Millisecond
)

// State is a toast lifecycle phase. Phases only move forward.
type State int

const (
	Created State = iota
	Visible
	Hiding
	Removed
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Visible:
		return "visible"
	case Hiding:
		return "hiding"
	case Removed:
		return "removed"
	}
	return "unknown"
}

// Timings controls when a toast is shown, hidden and removed. Display and
// RemoveDelay are measured from creation and from hiding respectively.
type Timings struct {
	ShowDelay   time.Duration
	Display     time.Duration
	RemoveDelay time.Duration
}

func DefaultTimings() Timings {
	return Timings{
		ShowDelay:   DefaultShowDelay,
		Display:     DefaultDisplay,
		RemoveDelay: DefaultRemoveDelay,
	}
}

type Notifier struct {
	doc     Document
	clock   clockwork.Clock
	logger  *zap.Logger
	timings Timings
}

type Option func(*Notifier)

func WithClock(c clockwork.Clock) Option { return func(n *Notifier) { n.clock = c } }

func WithLogger(l *zap.Logger) Option { return func(n *Notifier) { n.logger = l } }

func WithTimings(t Timings) Option { return func(n *Notifier) { n.timings = t } }

func New(doc Document, opts ...Option) *Notifier {
	n := &Notifier{
		doc:     doc,
		clock:   clockwork.NewRealClock(),
		logger:  zap.NewNop(),
		timings: DefaultTimings(),
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.logger == nil {
		n.logger = zap.NewNop()
	}
	return n
}

// Notify inserts a toast and schedules its show, hide and remove steps.
// Calls are independent: toasts stack with their own timers.
func (n *Notifier) Notify(message, typ string) *Toast {
	if typ == "" {
		typ = DefaultType
	}
	el := entity.Notification{
		ID:        uuid.NewString(),
		Type:      typ,
		Message:   message,
		Classes:   []string{BaseClass, BaseClass + "-" + typ},
		CreatedAt: n.clock.Now().Format(time.RFC3339),
	}
	t := &Toast{
		id:     el.ID,
		doc:    n.doc,
		clock:  n.clock,
		logger: n.logger.With(zap.String("notification_id", el.ID), zap.String("type", typ)),
		delay:  n.timings.RemoveDelay,
		done:   make(chan struct{}),
	}

	metrics.NotificationsTotal.WithLabelValues(typ).Inc()

	if err := n.doc.Append(el); err != nil {
		t.logger.Error("append notification", zap.Error(err))
		t.state = Removed
		close(t.done)
		return t
	}
	metrics.NotificationsActive.Inc()

	// Timers are created outside mu: a clock may fire a callback before
	// AfterFunc returns. Late callbacks are ignored by the state checks.
	show := n.clock.AfterFunc(n.timings.ShowDelay, t.show)
	hide := n.clock.AfterFunc(n.timings.Display, t.hide)
	remove := n.clock.AfterFunc(n.timings.Display+n.timings.RemoveDelay, t.remove)

	t.mu.Lock()
	t.showTimer, t.hideTimer, t.removeTimer = show, hide, remove
	t.mu.Unlock()
	return t
}

// Toast is one notification's lifecycle.
type Toast struct {
	id     string
	doc    Document
	clock  clockwork.Clock
	logger *zap.Logger
	delay  time.Duration

	mu          sync.Mutex
	state       State
	showTimer   clockwork.Timer
	hideTimer   clockwork.Timer
	removeTimer clockwork.Timer
	done        chan struct{}
}

func (t *Toast) ID() string { return t.id }

func (t *Toast) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Done is closed once the toast is removed from its document.
func (t *Toast) Done() <-chan struct{} { return t.done }

// Dismiss hides the toast now and removes it after the removal delay.
// It is a no-op once the toast is hiding or removed.
func (t *Toast) Dismiss() {
	t.mu.Lock()
	if t.state >= Hiding {
		t.mu.Unlock()
		return
	}
	stopTimer(t.showTimer)
	stopTimer(t.hideTimer)
	stopTimer(t.removeTimer)
	t.enterHiding()
	t.mu.Unlock()

	remove := t.clock.AfterFunc(t.delay, t.remove)

	t.mu.Lock()
	t.removeTimer = remove
	t.mu.Unlock()
}

func (t *Toast) show() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != Created {
		return
	}
	t.state = Visible
	if err := t.doc.AddClass(t.id, ShowClass); err != nil {
		t.logger.Warn("show notification", zap.Error(err))
	}
}

func (t *Toast) hide() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state >= Hiding {
		return
	}
	t.enterHiding()
}

// enterHiding must be called with mu held.
func (t *Toast) enterHiding() {
	t.state = Hiding
	if err := t.doc.RemoveClass(t.id, ShowClass); err != nil {
		t.logger.Warn("hide notification", zap.Error(err))
	}
}

func (t *Toast) remove() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == Removed {
		return
	}
	t.state = Removed
	stopTimer(t.showTimer)
	stopTimer(t.hideTimer)
	if err := t.doc.Remove(t.id); err != nil {
		t.logger.Warn("remove notification", zap.Error(err))
	}
	metrics.NotificationsActive.Dec()
	close(t.done)
}

func stopTimer(timer clockwork.Timer) {
	if timer != nil {
		timer.Stop()
	}
}
