// Package cells measures strings in terminal cells rather than bytes or
// runes. Wide characters take two cells, combining marks none, and
// grapheme clusters are never split.
package cells

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// the locale-independent condition keeps widths stable across machines
var cond = &runewidth.Condition{EastAsianWidth: false}

// Len returns the number of cells s occupies
func Len(s string) int {
	ascii := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 || c >= 0x7f {
			ascii = false
			break
		}
	}
	if ascii {
		return len(s)
	}
	return cond.StringWidth(s)
}

// RuneWidth returns the cell width of a single rune
func RuneWidth(r rune) int {
	return cond.RuneWidth(r)
}

// Cluster is one grapheme cluster and its width
type Cluster struct {
	Text  string
	Width int
}

// Clusters splits s into grapheme clusters
func Clusters(s string) []Cluster {
	out := make([]Cluster, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		str := g.Str()
		out = append(out, Cluster{Text: str, Width: cond.StringWidth(str)})
	}
	return out
}

// Chop splits s into pieces no wider than width. A cluster wider than
// width gets a piece of its own.
func Chop(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	var (
		lines []string
		cur   strings.Builder
		used  int
	)
	for _, c := range Clusters(s) {
		if used+c.Width > width && used > 0 {
			lines = append(lines, cur.String())
			cur.Reset()
			used = 0
		}
		cur.WriteString(c.Text)
		used += c.Width
	}
	if cur.Len() > 0 || len(lines) == 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

// Split cuts s at cell position cut. A wide cluster straddling the cut
// is replaced by a space on each side so both halves keep their width.
func Split(s string, cut int) (string, string) {
	if cut <= 0 {
		return "", s
	}
	var left strings.Builder
	pos := 0
	for _, c := range clusterOffsets(s) {
		if pos+c.Width <= cut {
			left.WriteString(c.Text)
			pos += c.Width
			if pos == cut {
				return left.String(), s[c.end:]
			}
			continue
		}
		left.WriteString(strings.Repeat(" ", cut-pos))
		return left.String(), strings.Repeat(" ", pos+c.Width-cut) + s[c.end:]
	}
	return s, ""
}

type clusterAt struct {
	Cluster
	end int
}

func clusterOffsets(s string) []clusterAt {
	var out []clusterAt
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		_, end := g.Positions()
		str := g.Str()
		out = append(out, clusterAt{Cluster{str, cond.StringWidth(str)}, end})
	}
	return out
}

// SetSize crops or pads s with spaces to exactly total cells
func SetSize(s string, total int) string {
	if total <= 0 {
		return ""
	}
	n := Len(s)
	if n == total {
		return s
	}
	if n < total {
		return s + strings.Repeat(" ", total-n)
	}
	left, _ := Split(s, total)
	return left
}

// Truncate crops s to width cells, ending with tail when something was cut
func Truncate(s string, width int, tail string) string {
	if Len(s) <= width {
		return s
	}
	tw := Len(tail)
	if width <= tw {
		return SetSize(tail, width)
	}
	left, _ := Split(s, width-tw)
	return strings.TrimRight(left, " ") + tail
}
