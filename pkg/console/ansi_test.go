package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/tinta/pkg/color"
	"github.com/arthur-debert/tinta/pkg/segment"
	"github.com/arthur-debert/tinta/pkg/style"
)

func state(def string) sgrState {
	return stateOf(style.MustParse(def), color.TrueColor)
}

func TestSGRDiff(t *testing.T) {
	tests := []struct {
		name       string
		prev, next sgrState
		want       string
	}{
		{"same", state("bold red"), state("bold red"), ""},
		{"from_nothing", sgrState{}, state("bold red"), "1;31"},
		{"attr_off", state("bold red"), state("red"), "22"},
		{"shared_off_code", state("bold dim"), state("dim"), "0;2"},
		{"color_change", state("red"), state("blue"), "34"},
		{"to_nothing", state("red"), sgrState{}, "0"},
		{"background_off", state("red on white"), state("red"), "49"},
		{"italic_on", state("red"), state("italic red"), "3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sgrDiff(tt.prev, tt.next))
		})
	}
}

func writeANSI(t *testing.T, b *ANSIBackend, segs ...segment.Segment) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, b.Write(&buf, segs))
	return buf.String()
}

func TestANSIBackend(t *testing.T) {
	bold := style.MustParse("bold")

	t.Run("identical_styles_emit_once", func(t *testing.T) {
		got := writeANSI(t, NewANSIBackend(color.TrueColor, false),
			segment.Text("a", bold), segment.Text("b", bold))
		assert.Equal(t, "\x1b[1mab\x1b[0m", got)
	})

	t.Run("reset_at_line_end", func(t *testing.T) {
		got := writeANSI(t, NewANSIBackend(color.TrueColor, false),
			segment.Text("a\nb", bold), segment.Newline)
		assert.Equal(t, "\x1b[1ma\x1b[0m\n\x1b[1mb\x1b[0m\n", got)
	})

	t.Run("null_style_is_plain", func(t *testing.T) {
		got := writeANSI(t, NewANSIBackend(color.TrueColor, false), segment.Text("plain", style.Null))
		assert.Equal(t, "plain", got)
	})

	t.Run("downgrade", func(t *testing.T) {
		red := style.Null.WithFg(color.FromRGB(255, 0, 0))
		got := writeANSI(t, NewANSIBackend(color.EightBit, false), segment.Text("x", red))
		assert.Equal(t, "\x1b[38;5;196mx\x1b[0m", got)

		got = writeANSI(t, NewANSIBackend(color.TrueColor, false), segment.Text("x", red))
		assert.Equal(t, "\x1b[38;2;255;0;0mx\x1b[0m", got)
	})

	t.Run("no_color_keeps_attributes", func(t *testing.T) {
		got := writeANSI(t, NewANSIBackend(color.NoColor, false), segment.Text("x", style.MustParse("bold red")))
		assert.Equal(t, "\x1b[1mx\x1b[0m", got)
	})

	t.Run("links", func(t *testing.T) {
		link := style.Null.WithLink("https://example.com")
		got := writeANSI(t, NewANSIBackend(color.TrueColor, true), segment.Text("go", link), segment.Text("!", style.Null))
		assert.Equal(t, "\x1b]8;id=1;https://example.com\x1b\\go\x1b]8;;\x1b\\!", got)

		got = writeANSI(t, NewANSIBackend(color.TrueColor, false), segment.Text("go", link))
		assert.Equal(t, "go", got)
	})

	t.Run("controls", func(t *testing.T) {
		got := writeANSI(t, NewANSIBackend(color.TrueColor, false), segment.Controls(
			segment.Control{Type: segment.ControlCursorUp, Param: 3},
			segment.Control{Type: segment.ControlEraseInLine, Param: 2},
		))
		assert.Equal(t, "\x1b[3A\x1b[2K", got)
	})
}

func TestControlSequence(t *testing.T) {
	assert.Equal(t, "", ControlSequence(segment.Control{Type: segment.ControlCursorUp}))
	assert.Equal(t, "\x1b[2B", ControlSequence(segment.Control{Type: segment.ControlCursorDown, Param: 2}))
	assert.Equal(t, "\x1b[1G", ControlSequence(segment.Control{Type: segment.ControlMoveToColumn}))
	assert.Equal(t, "\x1b[?25l", ControlSequence(segment.Control{Type: segment.ControlHideCursor}))
	assert.Equal(t, "\x1b[?1049h", ControlSequence(segment.Control{Type: segment.ControlEnableAltScreen}))
	assert.Equal(t, "\x1b]2;hi\a", ControlSequence(segment.Control{Type: segment.ControlSetTitle, Title: "hi"}))
	assert.Equal(t, "\x1b[1;1H", ControlSequence(segment.Control{Type: segment.ControlHome}))
}

func TestPlainBackend(t *testing.T) {
	var buf bytes.Buffer
	err := PlainBackend{}.Write(&buf, []segment.Segment{
		segment.Text("a", style.MustParse("bold")),
		segment.Controls(segment.Control{Type: segment.ControlClear}),
		segment.Newline,
	})
	require.NoError(t, err)
	assert.Equal(t, "a\n", buf.String())
}
