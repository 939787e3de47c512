package cells

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLen(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"hello", 5},
		{"日本語", 6},
		{"é", 1},
		{"a日b", 4},
		{"👍", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Len(tt.in), tt.in)
	}
}

func TestChop(t *testing.T) {
	assert.Equal(t, []string{"abc", "def", "g"}, Chop("abcdefg", 3))
	assert.Equal(t, []string{"日", "本", "語"}, Chop("日本語", 3))
	assert.Equal(t, []string{"日本", "語"}, Chop("日本語", 4))
	assert.Equal(t, []string{"日", "本"}, Chop("日本", 1), "wide cluster alone when too wide")
	assert.Equal(t, []string{""}, Chop("", 5))
}

func TestSplit(t *testing.T) {
	l, r := Split("hello", 2)
	assert.Equal(t, "he", l)
	assert.Equal(t, "llo", r)

	l, r = Split("日本", 1)
	assert.Equal(t, " ", l)
	assert.Equal(t, " 本", r)

	l, r = Split("ab", 5)
	assert.Equal(t, "ab", l)
	assert.Equal(t, "", r)

	l, r = Split("ab", 0)
	assert.Equal(t, "", l)
	assert.Equal(t, "ab", r)
}

func TestSetSize(t *testing.T) {
	assert.Equal(t, "ab   ", SetSize("ab", 5))
	assert.Equal(t, "abc", SetSize("abcdef", 3))
	assert.Equal(t, "日 ", SetSize("日本", 3))
	assert.Equal(t, "", SetSize("abc", 0))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10, "…"))
	assert.Equal(t, "hell…", Truncate("hello world", 5, "…"))
	assert.Equal(t, "…", Truncate("hello", 1, "…"))
}
