package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		in     Color
		system System
		want   Color
	}{
		{"truecolor passes through", FromRGB(1, 2, 3), TrueColor, FromRGB(1, 2, 3)},
		{"pure red to 256", FromRGB(255, 0, 0), EightBit, Color{Type: TypeEightBit, Number: 196}},
		{"mid grey to 256 uses ramp", FromRGB(128, 128, 128), EightBit, Color{Type: TypeEightBit, Number: 244}},
		{"pure red to standard", FromRGB(255, 0, 0), Standard, Color{Type: TypeStandard, Number: 1}},
		{"brown to standard", FromRGB(170, 85, 0), Standard, Color{Type: TypeStandard, Number: 3}},
		{"256 below 16 maps directly", Color{Type: TypeEightBit, Number: 9}, Standard, Color{Type: TypeStandard, Number: 9}},
		{"256 cube to standard", Color{Type: TypeEightBit, Number: 196}, Standard, Color{Type: TypeStandard, Number: 1}},
		{"standard kept on 256", Color{Type: TypeStandard, Number: 4}, EightBit, Color{Type: TypeStandard, Number: 4}},
		{"standard to windows", Color{Type: TypeStandard, Number: 2}, Windows, Color{Type: TypeWindows, Number: 2}},
		{"truecolor to windows", FromRGB(197, 15, 31), Windows, Color{Type: TypeWindows, Number: 1}},
		{"default survives", Default, Standard, Default},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.in, tt.system)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveNoColor(t *testing.T) {
	_, ok := Resolve(FromRGB(255, 0, 0), NoColor)
	assert.False(t, ok)

	// going through standard first makes no difference
	std, _ := Resolve(FromRGB(255, 0, 0), Standard)
	_, ok = Resolve(std, NoColor)
	assert.False(t, ok)
}

func TestResolveIsDeterministic(t *testing.T) {
	c := FromRGB(12, 200, 77)
	first, _ := Resolve(c, EightBit)
	for i := 0; i < 10; i++ {
		again, _ := Resolve(c, EightBit)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, first, downgrade(c, EightBit), "cached and uncached agree")
}

func TestNearestTieBreak(t *testing.T) {
	palette := []Triplet{{0, 0, 0}, {2, 0, 0}, {1, 0, 0}}
	assert.Equal(t, 0, nearest(Triplet{1, 0, 0}, palette[:2]))
	assert.Equal(t, 2, nearest(Triplet{1, 0, 0}, palette))
}
