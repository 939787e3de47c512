package live

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/tinta/pkg/color"
	"github.com/arthur-debert/tinta/pkg/console"
	"github.com/arthur-debert/tinta/pkg/errors"
	"github.com/arthur-debert/tinta/pkg/profile"
	"github.com/arthur-debert/tinta/pkg/segment"
	"github.com/arthur-debert/tinta/pkg/widgets"
)

func terminal(width, height int) (*console.Console, *bytes.Buffer) {
	var buf bytes.Buffer
	return console.New(&buf, console.WithProfile(profile.Terminal(color.TrueColor, width, height))), &buf
}

func plain(width int) (*console.Console, *bytes.Buffer) {
	var buf bytes.Buffer
	return console.New(&buf, console.WithProfile(profile.Plain(width))), &buf
}

func TestLiveRedraw(t *testing.T) {
	c, buf := terminal(20, 5)
	l := New(c, widgets.Plain("hello"), WithAutoRefresh(false))
	assert.Equal(t, StateIdle, l.State())

	require.NoError(t, l.Start(context.Background()))
	assert.Equal(t, StateActive, l.State())
	assert.Equal(t, "\x1b[?25lhello", buf.String())

	require.NoError(t, l.Update(widgets.Plain("world"), true))
	require.NoError(t, c.Println("log"))
	require.NoError(t, l.Stop())
	assert.Equal(t, StateStopped, l.State())

	assert.Equal(t,
		"\x1b[?25lhello"+
			"\r\x1b[2Kworld"+
			"\r\x1b[2Klog\nworld"+
			"\r\x1b[2Kworld\n"+
			"\x1b[?25h",
		buf.String())

	// the hook is gone
	buf.Reset()
	require.NoError(t, c.Println("after"))
	assert.Equal(t, "after\n", buf.String())
}

func TestLiveMovesOverEveryLine(t *testing.T) {
	c, buf := terminal(20, 5)
	l := New(c, widgets.Plain("a\nb"), WithAutoRefresh(false))
	require.NoError(t, l.Start(context.Background()))
	buf.Reset()

	require.NoError(t, l.Update(widgets.Plain("c"), true))
	assert.Equal(t, "\r\x1b[2K\x1b[1A\x1b[2Kc", buf.String())
	require.NoError(t, l.Stop())
}

func TestLiveTransient(t *testing.T) {
	c, buf := terminal(20, 5)
	l := New(c, widgets.Plain("hello"), WithAutoRefresh(false), WithTransient(true))
	require.NoError(t, l.Start(context.Background()))
	require.NoError(t, l.Stop())
	assert.Equal(t, "\x1b[?25lhello\r\x1b[2K\x1b[?25h", buf.String())
}

func TestLiveWithoutCursorControl(t *testing.T) {
	c, buf := plain(80)
	l := New(c, widgets.Plain("hello"))
	require.NoError(t, l.Start(context.Background()))
	assert.Empty(t, buf.String())

	require.NoError(t, l.Refresh())
	require.NoError(t, c.Println("log"))
	require.NoError(t, l.Stop())
	assert.Equal(t, "log\nhello\n", buf.String())
}

func TestLiveRejectRedirect(t *testing.T) {
	c, buf := terminal(20, 5)
	l := New(c, widgets.Plain("x"), WithAutoRefresh(false), WithRedirect(RedirectReject))
	require.NoError(t, l.Start(context.Background()))

	err := c.Println("blocked")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLiveActive))
	assert.NotContains(t, buf.String(), "blocked")

	require.NoError(t, l.Stop())
	require.NoError(t, c.Println("free"))
	assert.Contains(t, buf.String(), "free")
}

func TestLiveStateErrors(t *testing.T) {
	c, _ := terminal(20, 5)
	l := New(c, widgets.Plain("x"), WithAutoRefresh(false))

	err := l.Stop()
	assert.True(t, errors.IsErrorCode(err, errors.ErrLiveState))
	err = l.Refresh()
	assert.True(t, errors.IsErrorCode(err, errors.ErrLiveState))

	require.NoError(t, l.Start(context.Background()))
	err = l.Start(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrLiveState))

	require.NoError(t, l.Stop())
	require.NoError(t, l.Stop())
	err = l.Start(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrLiveState))
	err = l.Refresh()
	assert.True(t, errors.IsErrorCode(err, errors.ErrLiveState))
}

func TestLiveCancellation(t *testing.T) {
	c, buf := terminal(20, 5)
	ctx, cancel := context.WithCancel(context.Background())
	l := New(c, widgets.Plain("hello"), WithAutoRefresh(false))
	require.NoError(t, l.Start(ctx))

	cancel()
	assert.Eventually(t, func() bool { return l.State() == StateStopped }, time.Second, 5*time.Millisecond)
	require.NoError(t, l.Stop())
	assert.True(t, strings.HasSuffix(buf.String(), "\r\x1b[2Khello\n\x1b[?25h"))
}

func TestLiveAutoRefresh(t *testing.T) {
	c, buf := terminal(20, 5)
	l := New(c, widgets.Plain("tick"), WithRefreshPerSecond(200))
	require.NoError(t, l.Start(context.Background()))
	assert.Eventually(t, func() bool {
		var n int
		_ = c.Exclusive(func(func([]segment.Segment) error) error {
			n = strings.Count(buf.String(), "tick")
			return nil
		})
		return n >= 3
	}, time.Second, 5*time.Millisecond)
	require.NoError(t, l.Stop())
}

func TestLiveRun(t *testing.T) {
	c, _ := plain(80)
	l := New(c, widgets.Plain("x"))
	boom := stderrors.New("boom")
	err := l.Run(context.Background(), func(ctx context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StateStopped, l.State())
}

func TestVerticalOverflow(t *testing.T) {
	c, _ := terminal(10, 3)
	content := widgets.Plain("1\n2\n3\n4\n5")
	plainLines := func(l *Live, final bool) []string {
		var out []string
		for _, line := range l.renderLines(final) {
			out = append(out, line.Plain())
		}
		return out
	}

	crop := New(c, content, WithOverflow(OverflowCrop))
	assert.Equal(t, []string{"1", "2", "3"}, plainLines(crop, false))

	ellipsis := New(c, content, WithOverflow(OverflowEllipsis))
	assert.Equal(t, []string{"1", "2", "   ..."}, plainLines(ellipsis, false))
	// the last frame is always complete
	assert.Len(t, plainLines(ellipsis, true), 5)

	visible := New(c, content, WithOverflow(OverflowVisible))
	assert.Len(t, plainLines(visible, false), 5)
}

func TestParseOptions(t *testing.T) {
	m, err := ParseRedirect("reject")
	require.NoError(t, err)
	assert.Equal(t, RedirectReject, m)
	_, err = ParseRedirect("drop")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))

	v, err := ParseOverflow("Crop")
	require.NoError(t, err)
	assert.Equal(t, OverflowCrop, v)
	_, err = ParseOverflow("scroll")
	assert.Error(t, err)

	assert.Equal(t, 250*time.Millisecond, DefaultOptions().interval())
}
