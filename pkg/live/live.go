// Package live keeps a region of the terminal up to date while other
// output scrolls above it. A Live owns a renderable, redraws it on a
// schedule and moves the cursor back over the previous drawing before
// each redraw. Status and Progress are built on it.
package live

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/tinta/pkg/console"
	"github.com/arthur-debert/tinta/pkg/errors"
	"github.com/arthur-debert/tinta/pkg/logging"
	"github.com/arthur-debert/tinta/pkg/render"
	"github.com/arthur-debert/tinta/pkg/segment"
	"github.com/arthur-debert/tinta/pkg/style"
)

func log() zerolog.Logger { return logging.GetLogger("live") }

// State is where a Live is in its lifecycle
type State int32

const (
	StateIdle State = iota
	StateActive
	StateRefreshing
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateRefreshing:
		return "refreshing"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// RedirectMode decides what happens to console output printed while a
// Live is active
type RedirectMode int

const (
	// RedirectInterleave prints above the live region, which is redrawn
	// underneath
	RedirectInterleave RedirectMode = iota
	// RedirectReject fails such prints with ErrLiveActive
	RedirectReject
)

// ParseRedirect accepts "interleave" and "reject"
func ParseRedirect(s string) (RedirectMode, error) {
	switch strings.ToLower(s) {
	case "", "interleave":
		return RedirectInterleave, nil
	case "reject":
		return RedirectReject, nil
	}
	return 0, errors.Newf(errors.ErrConfigValid, "unknown redirect mode %q", s)
}

// VerticalOverflow is what happens when the region is taller than the
// console
type VerticalOverflow int

const (
	OverflowEllipsis VerticalOverflow = iota
	OverflowCrop
	OverflowVisible
)

// ParseOverflow accepts "ellipsis", "crop" and "visible"
func ParseOverflow(s string) (VerticalOverflow, error) {
	switch strings.ToLower(s) {
	case "", "ellipsis":
		return OverflowEllipsis, nil
	case "crop":
		return OverflowCrop, nil
	case "visible":
		return OverflowVisible, nil
	}
	return 0, errors.Newf(errors.ErrConfigValid, "unknown vertical overflow %q", s)
}

// Options tune a Live
type Options struct {
	RefreshPerSecond float64
	// AutoRefresh redraws on a timer; without it only Refresh and Update
	// with refresh set redraw
	AutoRefresh bool
	Redirect    RedirectMode
	Overflow    VerticalOverflow
	// Transient erases the region on Stop instead of leaving the last frame
	Transient bool
}

// DefaultOptions refresh four times a second and interleave prints
func DefaultOptions() Options {
	return Options{RefreshPerSecond: 4, AutoRefresh: true}
}

func (o Options) interval() time.Duration {
	if o.RefreshPerSecond <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / o.RefreshPerSecond)
}

// Option configures New
type Option func(*Options)

// WithOptions replaces all options
func WithOptions(o Options) Option {
	return func(dst *Options) { *dst = o }
}

func WithRefreshPerSecond(n float64) Option {
	return func(o *Options) { o.RefreshPerSecond = n }
}

func WithAutoRefresh(on bool) Option {
	return func(o *Options) { o.AutoRefresh = on }
}

func WithRedirect(m RedirectMode) Option {
	return func(o *Options) { o.Redirect = m }
}

func WithOverflow(v VerticalOverflow) Option {
	return func(o *Options) { o.Overflow = v }
}

func WithTransient(on bool) Option {
	return func(o *Options) { o.Transient = on }
}

// Live redraws a renderable in place. Lock order is the console lock
// first, then the Live's own.
type Live struct {
	console *console.Console
	opts    Options

	state atomic.Int32

	mu         sync.Mutex
	renderable render.Renderable
	renderFunc func() render.Renderable
	height     int

	hook     *redirectHook
	cancel   context.CancelFunc
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	finOnce  sync.Once
	finErr   error
}

// New returns an idle Live drawing r on c
func New(c *console.Console, r render.Renderable, opts ...Option) *Live {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	l := &Live{
		console:    c,
		opts:       o,
		renderable: r,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	l.hook = &redirectHook{live: l}
	return l
}

// NewFunc returns an idle Live that calls fn for a fresh renderable on
// every redraw
func NewFunc(c *console.Console, fn func() render.Renderable, opts ...Option) *Live {
	l := New(c, nil, opts...)
	l.renderFunc = fn
	return l
}

func (l *Live) Console() *console.Console { return l.console }

func (l *Live) Options() Options { return l.opts }

// State returns the current lifecycle state
func (l *Live) State() State { return State(l.state.Load()) }

func (l *Live) canMove() bool { return l.console.Profile().CanMoveCursor() }

// Start installs the print redirect, hides the cursor and draws the
// first frame. The refresh loop stops when ctx is cancelled, after a
// final cleanup render.
func (l *Live) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	if !l.state.CompareAndSwap(int32(StateIdle), int32(StateActive)) {
		cancel()
		return errors.Newf(errors.ErrLiveState, "cannot start a live display that is %s", l.State())
	}
	l.cancel = cancel
	logger := log()
	logger.Debug().
		Bool("terminal", l.canMove()).
		Float64("refresh_per_second", l.opts.RefreshPerSecond).
		Bool("transient", l.opts.Transient).
		Msg("live display starting")

	l.console.PushHook(l.hook)
	if l.canMove() {
		if err := l.console.ShowCursor(false); err != nil {
			l.console.RemoveHook(l.hook)
			l.state.Store(int32(StateStopped))
			close(l.done)
			cancel()
			return err
		}
		if err := l.Refresh(); err != nil {
			logger.Debug().Err(err).Msg("first live frame failed")
		}
	}

	go l.loop(ctx)
	return nil
}

// loop is the scheduler: wait for a tick, stop or cancellation, then
// redraw
func (l *Live) loop(ctx context.Context) {
	defer close(l.done)
	var tick <-chan time.Time
	if d := l.opts.interval(); l.opts.AutoRefresh && d > 0 && l.canMove() {
		ticker := time.NewTicker(d)
		defer ticker.Stop()
		tick = ticker.C
	}
	for {
		select {
		case <-l.stop:
			return
		case <-ctx.Done():
			logger := log()
			logger.Debug().Err(ctx.Err()).Msg("live display cancelled")
			_ = l.finish()
			return
		case <-tick:
		}
		if err := l.Refresh(); err != nil {
			logger := log()
			logger.Debug().Err(err).Msg("live refresh failed")
		}
	}
}

// Update replaces the renderable. With refresh set the region is redrawn
// before returning; otherwise the next tick picks it up.
func (l *Live) Update(r render.Renderable, refresh bool) error {
	l.mu.Lock()
	l.renderable = r
	l.mu.Unlock()
	if refresh {
		return l.Refresh()
	}
	return nil
}

// Refresh redraws the region now. It is a no-op on devices that cannot
// move the cursor; those only get the final frame on Stop.
func (l *Live) Refresh() error {
	if st := l.State(); st != StateActive && st != StateRefreshing {
		return errors.Newf(errors.ErrLiveState, "cannot refresh a live display that is %s", st)
	}
	if !l.canMove() {
		return nil
	}
	return l.console.Exclusive(func(write func([]segment.Segment) error) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		if !l.state.CompareAndSwap(int32(StateActive), int32(StateRefreshing)) {
			return nil
		}
		defer l.state.CompareAndSwap(int32(StateRefreshing), int32(StateActive))
		segs := l.positionCursor()
		segs = append(segs, l.draw(false)...)
		return write(segs)
	})
}

// Stop ends the display: the refresh loop exits, the last frame is left
// in place (or erased when transient) and the cursor is shown again.
// Stopping a display that already stopped is a no-op.
func (l *Live) Stop() error {
	switch l.State() {
	case StateIdle:
		return errors.New(errors.ErrLiveState, "cannot stop a live display that never started")
	case StateStopped:
		<-l.done
		l.cancel()
		return l.finErr
	}
	l.stopOnce.Do(func() { close(l.stop) })
	<-l.done
	err := l.finish()
	l.cancel()
	return err
}

// Run starts the display, calls fn and stops the display however fn
// returns
func (l *Live) Run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if err := l.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if stopErr := l.Stop(); err == nil {
			err = stopErr
		}
	}()
	return fn(ctx)
}

// finish writes the final frame once. The hook goes after the frame so
// no print can land between the two.
func (l *Live) finish() error {
	l.finOnce.Do(func() {
		l.finErr = l.console.Exclusive(func(write func([]segment.Segment) error) error {
			l.mu.Lock()
			defer l.mu.Unlock()
			l.state.Store(int32(StateStopped))
			var segs []segment.Segment
			if l.canMove() {
				segs = l.positionCursor()
			}
			if !l.opts.Transient {
				segs = append(segs, l.draw(true)...)
				segs = append(segs, segment.Newline)
			}
			l.height = 0
			return write(segs)
		})
		l.console.RemoveHook(l.hook)
		if l.canMove() {
			if err := l.console.ShowCursor(true); err != nil && l.finErr == nil {
				l.finErr = err
			}
		}
		logger := log()
		logger.Debug().Err(l.finErr).Msg("live display stopped")
	})
	return l.finErr
}

func (l *Live) current() render.Renderable {
	if l.renderFunc != nil {
		return l.renderFunc()
	}
	return l.renderable
}

// positionCursor returns controls that erase the previous frame and
// leave the cursor at its first column. Caller holds l.mu.
func (l *Live) positionCursor() []segment.Segment {
	if l.height == 0 {
		return nil
	}
	ctrls := []segment.Control{
		{Type: segment.ControlCarriageReturn},
		{Type: segment.ControlEraseInLine, Param: 2},
	}
	for range l.height - 1 {
		ctrls = append(ctrls,
			segment.Control{Type: segment.ControlCursorUp, Param: 1},
			segment.Control{Type: segment.ControlEraseInLine, Param: 2},
		)
	}
	return []segment.Segment{segment.Controls(ctrls...)}
}

// draw renders the region without a trailing line break, leaving the
// cursor on its last line. Caller holds l.mu.
func (l *Live) draw(final bool) []segment.Segment {
	lines := l.renderLines(final)
	l.height = len(lines)
	var out []segment.Segment
	for i, line := range lines {
		if i > 0 {
			out = append(out, segment.Newline)
		}
		out = append(out, line...)
	}
	return out
}

// renderLines lays the renderable out at the console width and applies
// the vertical overflow policy. The final frame is never cut.
func (l *Live) renderLines(final bool) []segment.Line {
	r := l.current()
	if r == nil {
		return nil
	}
	opts := l.console.Options()
	opts.Height = 0
	lines := segment.SplitLines(r.Render(opts))
	for i, line := range lines {
		lines[i] = segment.CropLine(line, opts.Width)
	}

	_, height := l.console.Size()
	overflow := l.opts.Overflow
	if final {
		overflow = OverflowVisible
	}
	if height < 1 || len(lines) <= height {
		return lines
	}
	switch overflow {
	case OverflowCrop:
		return lines[:height]
	case OverflowEllipsis:
		lines = lines[:height-1]
		return append(lines, ellipsisLine(opts))
	}
	return lines
}

func ellipsisLine(opts render.Options) segment.Line {
	const dots = "..."
	st := opts.ResolveStyle("live.ellipsis")
	pad := max((opts.Width-len(dots))/2, 0)
	line := segment.Line{}
	if pad > 0 {
		line = append(line, segment.Text(strings.Repeat(" ", pad), style.Null))
	}
	return segment.CropLine(append(line, segment.Text(dots, st)), opts.Width)
}

// redirectHook reroutes console prints while the display is active
type redirectHook struct {
	live *Live
}

func (h *redirectHook) Process(segs []segment.Segment) ([]segment.Segment, error) {
	l := h.live
	if l.opts.Redirect == RedirectReject {
		return nil, errors.New(errors.ErrLiveActive, "console output is blocked while a live display is active")
	}
	if !l.canMove() || len(segs) == 0 || l.State() == StateStopped {
		return segs, nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.positionCursor()
	out = append(out, segs...)
	if !endsWithNewline(segs) {
		out = append(out, segment.Newline)
	}
	return append(out, l.draw(false)...), nil
}

func endsWithNewline(segs []segment.Segment) bool {
	for i := len(segs) - 1; i >= 0; i-- {
		if segs[i].IsControl() {
			continue
		}
		return strings.HasSuffix(segs[i].Text, "\n")
	}
	return false
}
