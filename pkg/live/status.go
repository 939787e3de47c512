package live

import (
	"context"
	"sync"
	"time"

	"github.com/arthur-debert/tinta/pkg/console"
	"github.com/arthur-debert/tinta/pkg/widgets"
)

// Status shows a spinner and a message while work runs
type Status struct {
	live *Live

	mu      sync.Mutex
	spinner *widgets.Spinner
}

// NewStatus returns a status display using the named spinner frames.
// The message is markup.
func NewStatus(c *console.Console, message, spinnerName string, opts ...Option) *Status {
	sp := widgets.NewSpinner(spinnerName, message)
	sp.Start = time.Now()
	s := &Status{spinner: sp}
	opts = append([]Option{WithRefreshPerSecond(12.5), WithTransient(true)}, opts...)
	s.live = New(c, sp, opts...)
	return s
}

// Live returns the underlying display
func (s *Status) Live() *Live { return s.live }

// Update swaps the message, keeping the animation running
func (s *Status) Update(message string) error {
	s.mu.Lock()
	next := *s.spinner
	next.Text = widgets.Markup(message)
	s.spinner = &next
	s.mu.Unlock()
	return s.live.Update(&next, false)
}

func (s *Status) Start(ctx context.Context) error { return s.live.Start(ctx) }

func (s *Status) Stop() error { return s.live.Stop() }

// Wait shows the status until fn returns or ctx is cancelled, whichever
// comes first. On cancellation Wait returns ctx.Err() once the display
// is cleaned up, without waiting for fn.
func (s *Status) Wait(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.live.Run(ctx, func(ctx context.Context) error {
		result := make(chan error, 1)
		go func() { result <- fn(ctx) }()
		select {
		case err := <-result:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}
