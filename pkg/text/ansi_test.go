package text

import (
	"testing"

	"github.com/arthur-debert/tinta/pkg/color"
	"github.com/arthur-debert/tinta/pkg/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromANSI(t *testing.T) {
	t.Run("sgr_spans", func(t *testing.T) {
		txt := FromANSI("\x1b[1;31mHi\x1b[0m there")
		assert.Equal(t, "Hi there", txt.Plain())
		require.Len(t, txt.Spans(), 1)
		assert.Equal(t, Span{0, 2, style.MustParse("bold red")}, txt.Spans()[0])
	})

	t.Run("extended_colors", func(t *testing.T) {
		txt := FromANSI("\x1b[38;5;196;48;2;1;2;3mx\x1b[m")
		require.Len(t, txt.Spans(), 1)
		s := txt.Spans()[0].Style
		fg, _ := s.Fg()
		bg, _ := s.Bg()
		assert.Equal(t, color.Color{Type: color.TypeEightBit, Number: 196}, fg)
		assert.Equal(t, color.FromRGB(1, 2, 3), bg)
	})

	t.Run("off_codes", func(t *testing.T) {
		txt := FromANSI("\x1b[1;3ma\x1b[22mb")
		spans := txt.Spans()
		require.Len(t, spans, 2)
		assert.True(t, spans[0].Style.Has(style.Bold))
		assert.False(t, spans[1].Style.Has(style.Bold))
		assert.True(t, spans[1].Style.Has(style.Italic))
	})

	t.Run("hyperlinks", func(t *testing.T) {
		txt := FromANSI("see \x1b]8;;https://example.com\x1b\\here\x1b]8;;\x1b\\ now")
		assert.Equal(t, "see here now", txt.Plain())
		require.Len(t, txt.Spans(), 1)
		assert.Equal(t, "https://example.com", txt.Spans()[0].Style.Link())
		assert.Equal(t, 4, txt.Spans()[0].Start)
	})

	t.Run("other_sequences_dropped", func(t *testing.T) {
		txt := FromANSI("a\x1b[2Kb\x1b[?25lc")
		assert.Equal(t, "abc", txt.Plain())
		assert.Empty(t, txt.Spans())
	})
}

func TestFromANSIText(t *testing.T) {
	t.Run("newlines_and_wide_runes_kept", func(t *testing.T) {
		txt := FromANSI("\x1b[32m日本\x1b[0m\tok\nnext")
		assert.Equal(t, "日本\tok\nnext", txt.Plain())
		require.Len(t, txt.Spans(), 1)
		assert.Equal(t, Span{0, 6, style.MustParse("green")}, txt.Spans()[0])
	})

	t.Run("bel_terminated_link", func(t *testing.T) {
		txt := FromANSI("\x1b]8;id=1;https://example.com\x07go\x1b]8;;\x07")
		assert.Equal(t, "go", txt.Plain())
		require.Len(t, txt.Spans(), 1)
		assert.Equal(t, "https://example.com", txt.Spans()[0].Style.Link())
	})

	t.Run("truncated_sequence_dropped", func(t *testing.T) {
		txt := FromANSI("abc\x1b[31")
		assert.Equal(t, "abc", txt.Plain())
		assert.Empty(t, txt.Spans())
	})

	t.Run("title_osc_dropped", func(t *testing.T) {
		txt := FromANSI("\x1b]2;window\x07body")
		assert.Equal(t, "body", txt.Plain())
	})
}
