package color

import "sync"

type resolveKey struct {
	c   Color
	sys System
}

var resolveCache sync.Map

// Resolve converts c to something system can display. ok is false when
// no color directive should be emitted at all.
func Resolve(c Color, system System) (Color, bool) {
	if system == NoColor {
		return Color{}, false
	}
	if c.Type == TypeDefault {
		return c, true
	}

	key := resolveKey{c, system}
	if v, found := resolveCache.Load(key); found {
		return v.(Color), true
	}
	out := downgrade(c, system)
	resolveCache.Store(key, out)
	return out, true
}

func downgrade(c Color, system System) Color {
	switch system {
	case TrueColor:
		return c

	case EightBit:
		switch c.Type {
		case TypeTrueColor:
			return Color{Type: TypeEightBit, Number: uint8(16 + nearest(c.RGB, EightBitPalette[16:]))}
		case TypeWindows:
			return Color{Type: TypeStandard, Number: c.Number}
		}
		return c

	case Standard:
		switch c.Type {
		case TypeTrueColor:
			return Color{Type: TypeStandard, Number: uint8(nearest(c.RGB, StandardPalette[:]))}
		case TypeEightBit:
			if c.Number < 16 {
				return Color{Type: TypeStandard, Number: c.Number}
			}
			return Color{Type: TypeStandard, Number: uint8(nearest(EightBitPalette[c.Number], StandardPalette[:]))}
		case TypeWindows:
			return Color{Type: TypeStandard, Number: c.Number}
		}
		return c

	case Windows:
		switch c.Type {
		case TypeTrueColor:
			return Color{Type: TypeWindows, Number: uint8(nearest(c.RGB, WindowsPalette[:]))}
		case TypeEightBit:
			if c.Number < 16 {
				return Color{Type: TypeWindows, Number: c.Number}
			}
			return Color{Type: TypeWindows, Number: uint8(nearest(EightBitPalette[c.Number], WindowsPalette[:]))}
		case TypeStandard:
			return Color{Type: TypeWindows, Number: c.Number}
		}
		return c
	}
	return c
}

// nearest returns the index of the palette entry with the smallest
// squared RGB distance to t. Ties go to the lowest index.
func nearest(t Triplet, palette []Triplet) int {
	best, bestDist := 0, -1
	for i, p := range palette {
		dr := int(t.R) - int(p.R)
		dg := int(t.G) - int(p.G)
		db := int(t.B) - int(p.B)
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
			if d == 0 {
				break
			}
		}
	}
	return best
}
