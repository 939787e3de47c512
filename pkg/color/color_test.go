package color

import (
	"testing"

	"github.com/arthur-debert/tinta/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"red", Color{Type: TypeStandard, Number: 1}},
		{"  Bright_Blue ", Color{Type: TypeStandard, Number: 12}},
		{"default", Default},
		{"#ff8000", FromRGB(255, 128, 0)},
		{"color(9)", Color{Type: TypeStandard, Number: 9}},
		{"color(196)", Color{Type: TypeEightBit, Number: 196}},
		{"rgb(10, 20,30)", FromRGB(10, 20, 30)},
		{"grey50", Color{Type: TypeEightBit, Number: 244}},
		{"gray50", Color{Type: TypeEightBit, Number: 244}},
		{"navy_blue", Color{Type: TypeEightBit, Number: 17}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "redd", "#ff00", "#gg0000", "color(300)", "rgb(256,0,0)", "#ff00001"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrColorParse))
		})
	}
}

func TestFromIndex(t *testing.T) {
	_, err := FromIndex(256)
	assert.Error(t, err)
	_, err = FromIndex(-1)
	assert.Error(t, err)

	c, err := FromIndex(255)
	require.NoError(t, err)
	assert.Equal(t, TypeEightBit, c.Type)
}

func TestString(t *testing.T) {
	assert.Equal(t, "red", MustParse("red").String())
	assert.Equal(t, "color(100)", MustParse("color(100)").String())
	assert.Equal(t, "#0a0b0c", FromRGB(10, 11, 12).String())
	assert.Equal(t, "default", Default.String())
}

func TestParseSystem(t *testing.T) {
	s, err := ParseSystem("256")
	require.NoError(t, err)
	assert.Equal(t, EightBit, s)

	s, err = ParseSystem("TrueColor")
	require.NoError(t, err)
	assert.Equal(t, TrueColor, s)

	_, err = ParseSystem("sepia")
	assert.Error(t, err)
}

func TestTripletBlend(t *testing.T) {
	black := Triplet{0, 0, 0}
	white := Triplet{255, 255, 255}

	assert.Equal(t, black, black.Blend(white, 0))
	assert.Equal(t, white, black.Blend(white, 1))
	assert.Equal(t, Triplet{128, 128, 128}, black.Blend(white, 0.5))
}

func TestColorTriplet(t *testing.T) {
	theme := DefaultTerminalTheme
	assert.Equal(t, theme.Foreground, Default.Triplet(theme, true))
	assert.Equal(t, theme.Background, Default.Triplet(theme, false))
	assert.Equal(t, theme.ANSI[1], MustParse("red").Triplet(theme, true))
	assert.Equal(t, Triplet{255, 0, 0}, MustParse("color(196)").Triplet(theme, true))
}
