// Package notify keeps the latest user-facing message and hides it after a fixed time.
package notify

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultDuration is how long a notification stays visible when no duration is given
const DefaultDuration = 3 * time.Second

// Kind is the severity of a notification
type Kind string

const (
	// KindInfo is a neutral message
	KindInfo Kind = "info"
	// KindSuccess reports a completed action
	KindSuccess Kind = "success"
	// KindWarning reports something the user should look at
	KindWarning Kind = "warning"
	// KindError reports a failed action
	KindError Kind = "error"
)

// Notification is the single message currently held by a Sink
type Notification struct {
	Message string
	Kind    Kind
	Visible bool
}

// Renderer is called every time the current notification is shown or dismissed
type Renderer func(Notification)

// Option configures a Sink
type Option func(*Sink)

// WithRenderer sets the callback used to display notifications
func WithRenderer(r Renderer) Option {
	return func(s *Sink) {
		s.renderer = r
	}
}

// WithLogger sets the logger used for debug output
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Sink) {
		s.logger = logger
	}
}

// WithDuration changes how long Notify keeps a message visible
func WithDuration(d time.Duration) Option {
	return func(s *Sink) {
		if d > 0 {
			s.duration = d
		}
	}
}

// Sink holds exactly one notification. A newer notification replaces the
// current one and restarts the dismissal timer; nothing is queued.
type Sink struct {
	mu         sync.Mutex
	current    Notification
	timer      *time.Timer
	generation uint64
	duration   time.Duration
	renderer   Renderer
	logger     zerolog.Logger
}

// NewSink creates an empty sink
func NewSink(opts ...Option) *Sink {
	s := &Sink{
		current:  Notification{Kind: KindInfo},
		duration: DefaultDuration,
		logger:   zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Notify shows message for the sink's duration
func (s *Sink) Notify(message string, kind Kind) {
	s.NotifyFor(message, kind, 0)
}

// NotifyFor shows message for the given duration. A non-positive duration
// falls back to the sink's duration.
func (s *Sink) NotifyFor(message string, kind Kind, duration time.Duration) {
	if duration <= 0 {
		duration = s.duration
	}
	if kind == "" {
		kind = KindInfo
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	if s.timer != nil {
		s.timer.Stop()
	}
	s.current = Notification{
		Message: message,
		Kind:    kind,
		Visible: true,
	}
	s.timer = time.AfterFunc(duration, func() {
		s.expire(gen)
	})
	snapshot := s.current
	render := s.renderer
	s.mu.Unlock()

	s.logger.Debug().
		Str("kind", string(kind)).
		Str("message", message).
		Dur("duration", duration).
		Msg("Notification shown")

	if render != nil {
		render(snapshot)
	}
}

// expire hides the notification shown by generation gen. A timer that was
// stopped too late to cancel still lands here and must not touch a newer one.
func (s *Sink) expire(gen uint64) {
	s.mu.Lock()
	if gen != s.generation || !s.current.Visible {
		s.mu.Unlock()
		return
	}
	s.current.Visible = false
	s.timer = nil
	snapshot := s.current
	render := s.renderer
	s.mu.Unlock()

	if render != nil {
		render(snapshot)
	}
}

// Dismiss hides the current notification immediately
func (s *Sink) Dismiss() {
	s.mu.Lock()
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	wasVisible := s.current.Visible
	s.current.Visible = false
	snapshot := s.current
	render := s.renderer
	s.mu.Unlock()

	if wasVisible && render != nil {
		render(snapshot)
	}
}

// Current returns a copy of the current notification
func (s *Sink) Current() Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
