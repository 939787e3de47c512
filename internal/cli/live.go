package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/tinta/pkg/config"
	"github.com/arthur-debert/tinta/pkg/errors"
	"github.com/arthur-debert/tinta/pkg/live"
	"github.com/arthur-debert/tinta/pkg/logging"
	"github.com/arthur-debert/tinta/pkg/markup"
	"github.com/arthur-debert/tinta/pkg/text"
	"github.com/arthur-debert/tinta/pkg/widgets"
)

// liveOptions carries the configured redirect, overflow and auto refresh
// settings. Refresh rate and transience stay with each display's own
// defaults unless refresh is positive.
func liveOptions(cfg *config.Config, refresh float64) ([]live.Option, error) {
	o, err := cfg.LiveOptions()
	if err != nil {
		return nil, err
	}
	opts := []live.Option{
		live.WithRedirect(o.Redirect),
		live.WithOverflow(o.Overflow),
		live.WithAutoRefresh(o.AutoRefresh),
	}
	if refresh > 0 {
		opts = append(opts, live.WithRefreshPerSecond(refresh))
	}
	return opts, nil
}

var progressColumns = map[string]func() live.Column{
	"description": func() live.Column { return live.DescriptionColumn{} },
	"bar":         func() live.Column { return live.BarColumn{BarWidth: 40} },
	"percentage":  func() live.Column { return live.PercentageColumn{} },
	"count":       func() live.Column { return live.CountColumn{} },
	"elapsed":     func() live.Column { return live.ElapsedColumn{} },
	"remaining":   func() live.Column { return live.RemainingColumn{} },
	"spinner":     func() live.Column { return live.SpinnerColumn{Name: "dots"} },
}

func parseColumns(names []string) ([]live.Column, error) {
	var out []live.Column
	for _, n := range names {
		mk, ok := progressColumns[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return nil, errors.Newf(errors.ErrInvalidInput, "unknown progress column %q", n)
		}
		out = append(out, mk())
	}
	return out, nil
}

type progressFlags struct {
	tasks   int
	steps   int
	delay   time.Duration
	columns []string
	refresh float64
	unknown bool
}

// simulate advances every task at its own pace until all finish or ctx
// ends. With unknown set the first task has no total and pulses until
// the others are done.
func simulate(ctx context.Context, p *live.Progress, f progressFlags) error {
	logger := logging.GetLogger("cli.progress")
	ids := make([]live.TaskID, f.tasks)
	for i := range ids {
		total := float64(f.steps)
		if f.unknown && i == 0 {
			total = 0
		}
		ids[i] = p.AddTask(fmt.Sprintf("task [bold]%d[/]", i+1), total)
	}

	tick := time.NewTicker(f.delay)
	defer tick.Stop()
	for n := 1; ; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
		}
		running := false
		for i, id := range ids {
			if t, _ := p.Task(id); t.Total <= 0 || t.Done() {
				continue
			}
			// later tasks move more slowly
			if n%(i+1) == 0 {
				p.Advance(id, 1)
			}
			if t, _ := p.Task(id); !t.Done() {
				running = true
			}
		}
		if !running {
			if f.unknown {
				p.Update(ids[0], func(t *live.Task) {
					t.Total = float64(f.steps)
					t.Completed = t.Total
				})
			}
			logger.Debug().Int("ticks", n).Msg("simulation finished")
			return nil
		}
	}
}

func newProgressCmd(g *globals) *cobra.Command {
	var f progressFlags
	cmd := &cobra.Command{
		Use:     "progress",
		Short:   MsgProgressShort,
		GroupID: "live",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.tasks < 1 || f.steps < 1 || f.delay <= 0 {
				return errors.New(errors.ErrInvalidInput, "tasks, steps and delay must be positive")
			}
			c, cfg, err := g.console(cmd)
			if err != nil {
				return err
			}
			columns, err := parseColumns(f.columns)
			if err != nil {
				return err
			}
			opts, err := liveOptions(cfg, f.refresh)
			if err != nil {
				return err
			}
			opts = append(opts, live.WithTransient(cfg.Live.Transient))
			p := live.NewProgress(c, columns, opts...)
			return p.Run(cmd.Context(), func(ctx context.Context, p *live.Progress) error {
				return simulate(ctx, p, f)
			})
		},
	}
	flags := cmd.Flags()
	flags.IntVar(&f.tasks, "tasks", 3, "Number of simulated tasks")
	flags.IntVar(&f.steps, "steps", 50, "Steps per task")
	flags.DurationVar(&f.delay, "delay", 40*time.Millisecond, "Time between steps")
	flags.StringSliceVar(&f.columns, "columns", nil, "Columns: description, bar, percentage, count, elapsed, remaining, spinner")
	flags.Float64Var(&f.refresh, "refresh", 0, "Refreshes per second (default 10)")
	flags.BoolVar(&f.unknown, "unknown-total", false, "Give the first task no total so its bar pulses")
	return cmd
}

// lineWriter forwards complete lines to fn
type lineWriter struct {
	mu  sync.Mutex
	buf []byte
	fn  func(line string) error
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			return len(p), nil
		}
		line := string(w.buf[:i])
		w.buf = w.buf[i+1:]
		if err := w.fn(line); err != nil {
			return 0, err
		}
	}
}

// Flush sends any unterminated final line
func (w *lineWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.buf) == 0 {
		return nil
	}
	line := string(w.buf)
	w.buf = nil
	return w.fn(line)
}

// runCommand runs argv, passing each line of its output to print
func runCommand(ctx context.Context, argv []string, stdin io.Reader, print func(string) error) error {
	out := &lineWriter{fn: print}
	child := exec.CommandContext(ctx, argv[0], argv[1:]...)
	child.Stdin = stdin
	child.Stdout = out
	child.Stderr = out
	err := child.Run()
	if ferr := out.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		return fmt.Errorf("%s: %w", argv[0], err)
	}
	return nil
}

func newStatusCmd(g *globals) *cobra.Command {
	var (
		message  string
		spinner  string
		duration time.Duration
		refresh  float64
	)
	cmd := &cobra.Command{
		Use:     "status [flags] [-- command args...]",
		Short:   MsgStatusShort,
		GroupID: "live",
		Example: `  tinta status -m "Compiling" -- make build
  tinta status --for 3s -m "[cyan]Waiting[/]"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && duration <= 0 {
				return errors.New(errors.ErrInvalidInput, "give a command to run or --for")
			}
			c, cfg, err := g.console(cmd)
			if err != nil {
				return err
			}
			opts, err := liveOptions(cfg, refresh)
			if err != nil {
				return err
			}
			if _, ok := widgets.SpinnerFrames(spinner); !ok {
				return errors.Newf(errors.ErrInvalidInput, "unknown spinner %q", spinner)
			}
			s := live.NewStatus(c, message, spinner, opts...)
			err = s.Wait(cmd.Context(), func(ctx context.Context) error {
				if len(args) == 0 {
					select {
					case <-time.After(duration):
						return nil
					case <-ctx.Done():
						return ctx.Err()
					}
				}
				return runCommand(ctx, args, cmd.InOrStdin(), func(line string) error {
					// colored output is measured and downgraded like any other text
					return c.Println(text.FromANSI(line))
				})
			})
			if err != nil {
				return err
			}
			return c.Println(fmt.Sprintf(MsgStatusDone, markup.Escape(statusLabel(message, args))))
		},
	}
	flags := cmd.Flags()
	flags.SetInterspersed(false)
	flags.StringVarP(&message, "message", "m", "Working…", "Markup message next to the spinner")
	flags.StringVarP(&spinner, "spinner", "s", "dots", "Spinner frame set")
	flags.DurationVar(&duration, "for", 0, "Show the status for this long when no command is given")
	flags.Float64Var(&refresh, "refresh", 0, "Refreshes per second (default 12.5)")
	return cmd
}

// statusLabel is the plain text reported once the work is done
func statusLabel(message string, args []string) string {
	if len(args) > 0 {
		return strings.Join(args, " ")
	}
	plain, err := markup.Strip(message)
	if err != nil {
		return message
	}
	return strings.TrimSpace(plain)
}
