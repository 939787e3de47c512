package live

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/arthur-debert/tinta/pkg/console"
	"github.com/arthur-debert/tinta/pkg/render"
	"github.com/arthur-debert/tinta/pkg/segment"
	"github.com/arthur-debert/tinta/pkg/text"
	"github.com/arthur-debert/tinta/pkg/widgets"
)

// TaskID identifies a task within one Progress
type TaskID int

// Task is a snapshot of one unit of tracked work. A Total of zero or
// less means the size is unknown.
type Task struct {
	ID          TaskID
	Description string
	Total       float64
	Completed   float64
	Visible     bool
	Started     time.Time
	Finished    time.Time
}

// Done reports whether the task reached its total
func (t Task) Done() bool { return t.Total > 0 && t.Completed >= t.Total }

// Percentage is the completed share in [0, 100]
func (t Task) Percentage() float64 {
	if t.Total <= 0 {
		return 0
	}
	return min(100, max(0, t.Completed*100/t.Total))
}

// Elapsed is the running time at now, frozen once the task is done
func (t Task) Elapsed(now time.Time) time.Duration {
	if t.Started.IsZero() {
		return 0
	}
	if !t.Finished.IsZero() {
		return t.Finished.Sub(t.Started)
	}
	return now.Sub(t.Started)
}

// Remaining estimates the time left from the average speed so far. ok is
// false when there is nothing to estimate from.
func (t Task) Remaining(now time.Time) (d time.Duration, ok bool) {
	if t.Done() {
		return 0, true
	}
	elapsed := t.Elapsed(now)
	if t.Total <= 0 || t.Completed <= 0 || elapsed <= 0 {
		return 0, false
	}
	speed := t.Completed / elapsed.Seconds()
	return time.Duration((t.Total - t.Completed) / speed * float64(time.Second)), true
}

// Progress tracks tasks and draws one row per visible task
type Progress struct {
	live    *Live
	columns []Column

	mu     sync.Mutex
	tasks  []*Task
	nextID TaskID
	// Now is the clock; defaults to time.Now
	Now func() time.Time
}

// NewProgress returns a progress display with the given columns, or
// DefaultColumns when none are given
func NewProgress(c *console.Console, columns []Column, opts ...Option) *Progress {
	if len(columns) == 0 {
		columns = DefaultColumns()
	}
	p := &Progress{columns: columns}
	opts = append([]Option{WithRefreshPerSecond(10)}, opts...)
	p.live = NewFunc(c, p.Renderable, opts...)
	return p
}

// Live returns the underlying display
func (p *Progress) Live() *Live { return p.live }

func (p *Progress) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// AddTask registers a visible task and starts its clock
func (p *Progress) AddTask(description string, total float64) TaskID {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.tasks = append(p.tasks, &Task{
		ID:          id,
		Description: description,
		Total:       total,
		Visible:     true,
		Started:     p.now(),
	})
	return id
}

func (p *Progress) find(id TaskID) *Task {
	for _, t := range p.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Update changes a task under the progress lock. Completion is stamped
// the first time the task reaches its total.
func (p *Progress) Update(id TaskID, fn func(t *Task)) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	t := p.find(id)
	if t == nil {
		return false
	}
	fn(t)
	if t.Done() && t.Finished.IsZero() {
		t.Finished = p.now()
	} else if !t.Done() {
		t.Finished = time.Time{}
	}
	return true
}

// Advance adds n to a task's completed count. Tasks with a known total
// never go past it.
func (p *Progress) Advance(id TaskID, n float64) bool {
	return p.Update(id, func(t *Task) {
		t.Completed += n
		if t.Total > 0 && t.Completed > t.Total {
			t.Completed = t.Total
		}
	})
}

// Task returns a snapshot of one task
func (p *Progress) Task(id TaskID) (Task, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if t := p.find(id); t != nil {
		return *t, true
	}
	return Task{}, false
}

// Tasks returns snapshots of all tasks in the order they were added
func (p *Progress) Tasks() []Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Task, len(p.tasks))
	for i, t := range p.tasks {
		out[i] = *t
	}
	return out
}

// Finished reports whether every task with a known total is done
func (p *Progress) Finished() bool {
	for _, t := range p.Tasks() {
		if t.Total > 0 && !t.Done() {
			return false
		}
	}
	return true
}

// Renderable lays the visible tasks out as a grid, one column per
// Column
func (p *Progress) Renderable() render.Renderable {
	now := p.now()
	grid := widgets.NewGrid(0, 1)
	for _, c := range p.columns {
		col := &widgets.Column{NoWrap: true}
		if sized, ok := c.(interface{ Width() int }); ok {
			col.Width = sized.Width()
		}
		grid.AddColumn(col)
	}
	for _, t := range p.Tasks() {
		if !t.Visible {
			continue
		}
		cells := make([]render.Renderable, len(p.columns))
		for i, c := range p.columns {
			cells[i] = c.Cell(t, now)
		}
		grid.AddRenderables(cells...)
	}
	return grid
}

func (p *Progress) Start(ctx context.Context) error { return p.live.Start(ctx) }

func (p *Progress) Stop() error { return p.live.Stop() }

// Run shows the display while fn works through the tasks
func (p *Progress) Run(ctx context.Context, fn func(ctx context.Context, p *Progress) error) error {
	return p.live.Run(ctx, func(ctx context.Context) error { return fn(ctx, p) })
}

// Column draws one cell of a task's row
type Column interface {
	Cell(t Task, now time.Time) render.Renderable
}

// DefaultColumns are description, bar, percentage and time remaining
func DefaultColumns() []Column {
	return []Column{
		DescriptionColumn{},
		BarColumn{BarWidth: 40},
		PercentageColumn{},
		RemainingColumn{},
	}
}

func styled(s, styleName string) render.Renderable {
	return &styledText{text: s, style: styleName}
}

// styledText resolves its style name against the theme at render time
type styledText struct {
	text  string
	style string
}

func (s *styledText) build(opts render.Options) *text.Text {
	return text.New(s.text, opts.ResolveStyle(s.style))
}

func (s *styledText) Measure(opts render.Options, maxWidth int) render.Measurement {
	return s.build(opts).Measure(opts, maxWidth)
}

func (s *styledText) Render(opts render.Options) []segment.Segment {
	return s.build(opts).Render(opts)
}

// DescriptionColumn shows the task description as markup
type DescriptionColumn struct{}

func (DescriptionColumn) Cell(t Task, _ time.Time) render.Renderable {
	return widgets.Markup(t.Description)
}

// BarColumn draws a progress bar, pulsing for tasks of unknown size
type BarColumn struct {
	BarWidth int
}

func (b BarColumn) Width() int { return b.BarWidth }

func (b BarColumn) Cell(t Task, now time.Time) render.Renderable {
	bar := widgets.NewProgressBar(t.Total)
	bar.Completed = t.Completed
	bar.Width = b.BarWidth
	bar.Pulse = t.Total <= 0
	bar.AnimationTime = t.Elapsed(now)
	return bar
}

// PercentageColumn shows " 42%"
type PercentageColumn struct{}

func (PercentageColumn) Cell(t Task, _ time.Time) render.Renderable {
	if t.Total <= 0 {
		return widgets.Plain("")
	}
	return styled(fmt.Sprintf("%3.0f%%", t.Percentage()), "progress.percentage")
}

// CountColumn shows completed/total
type CountColumn struct{}

func (CountColumn) Cell(t Task, _ time.Time) render.Renderable {
	if t.Total <= 0 {
		return styled(fmt.Sprintf("%g/?", t.Completed), "progress.count")
	}
	return styled(fmt.Sprintf("%g/%g", t.Completed, t.Total), "progress.count")
}

// ElapsedColumn shows the running time as h:mm:ss
type ElapsedColumn struct{}

func (ElapsedColumn) Cell(t Task, now time.Time) render.Renderable {
	return styled(FormatDuration(t.Elapsed(now)), "progress.elapsed")
}

// RemainingColumn shows the estimated time left, or -:--:-- when there
// is no estimate yet
type RemainingColumn struct{}

func (RemainingColumn) Cell(t Task, now time.Time) render.Renderable {
	d, ok := t.Remaining(now)
	if !ok {
		return styled("-:--:--", "progress.remaining")
	}
	return styled(FormatDuration(d), "progress.remaining")
}

// SpinnerColumn animates while the task runs and shows a check when done
type SpinnerColumn struct {
	Name string
	Done string
}

func (s SpinnerColumn) Cell(t Task, now time.Time) render.Renderable {
	if t.Done() {
		done := s.Done
		if done == "" {
			done = "✔"
		}
		return styled(done, "progress.spinner")
	}
	sp := widgets.NewSpinner(s.Name, "")
	sp.Style = "progress.spinner"
	sp.Start = t.Started
	sp.Now = func() time.Time { return now }
	return sp
}

// FormatDuration renders d as h:mm:ss, rounding down to whole seconds
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}
