package box

// Box styles
var (
	ASCII = New("ascii", `
+--+
| ||
|-+|
| ||
|-+|
|-+|
| ||
+--+`, true)

	ASCII2 = New("ascii2", `
+-++
| ||
+-++
| ||
+-++
+-++
| ||
+-++`, true)

	ASCIIDoubleHead = New("ascii_double_head", `
+-++
| ||
+=++
| ||
+-++
+-++
| ||
+-++`, true)

	Square = New("square", `
┌─┬┐
│ ││
├─┼┤
│ ││
├─┼┤
├─┼┤
│ ││
└─┴┘`, false)

	SquareDoubleHead = New("square_double_head", `
┌─┬┐
│ ││
╞═╪╡
│ ││
├─┼┤
├─┼┤
│ ││
└─┴┘`, false)

	Minimal = New("minimal", `
  ╷ 
  │ 
╶─┼╴
  │ 
╶─┼╴
╶─┼╴
  │ 
  ╵ `, false)

	MinimalHeavyHead = New("minimal_heavy_head", `
  ╷ 
  │ 
╺━┿╸
  │ 
╶─┼╴
╶─┼╴
  │ 
  ╵ `, false)

	MinimalDoubleHead = New("minimal_double_head", `
  ╷ 
  │ 
 ═╪ 
  │ 
 ─┼ 
 ─┼ 
  │ 
  ╵ `, false)

	Simple = New("simple", `
    
    
 ── 
    
    
 ── 
    
    `, false)

	SimpleHead = New("simple_head", `
    
    
 ── 
    
    
    
    
    `, false)

	SimpleHeavy = New("simple_heavy", `
    
    
 ━━ 
    
    
 ━━ 
    
    `, false)

	Horizontals = New("horizontals", `
 ── 
    
 ── 
    
 ── 
 ── 
    
 ── `, false)

	Rounded = New("rounded", `
╭─┬╮
│ ││
├─┼┤
│ ││
├─┼┤
├─┼┤
│ ││
╰─┴╯`, false)

	Heavy = New("heavy", `
┏━┳┓
┃ ┃┃
┣━╋┫
┃ ┃┃
┣━╋┫
┣━╋┫
┃ ┃┃
┗━┻┛`, false)

	HeavyEdge = New("heavy_edge", `
┏━┯┓
┃ │┃
┠─┼┨
┃ │┃
┠─┼┨
┠─┼┨
┃ │┃
┗━┷┛`, false)

	HeavyHead = New("heavy_head", `
┏━┳┓
┃ ┃┃
┡━╇┩
│ ││
├─┼┤
├─┼┤
│ ││
└─┴┘`, false)

	Double = New("double", `
╔═╦╗
║ ║║
╠═╬╣
║ ║║
╠═╬╣
╠═╬╣
║ ║║
╚═╩╝`, false)

	DoubleEdge = New("double_edge", `
╔═╤╗
║ │║
╟─┼╢
║ │║
╟─┼╢
╟─┼╢
║ │║
╚═╧╝`, false)

	Markdown = New("markdown", `
    
| ||
|-||
| ||
|-||
|-||
| ||
    `, true)
)

var legacySubstitutions = map[*Box]*Box{
	Rounded:          Square,
	MinimalHeavyHead: Minimal,
	SimpleHeavy:      Simple,
	Heavy:            Square,
	HeavyEdge:        Square,
	HeavyHead:        Square,
}

var plainHeadedSubstitutions = map[*Box]*Box{
	HeavyHead:         Square,
	SquareDoubleHead:  Square,
	MinimalDoubleHead: Minimal,
	MinimalHeavyHead:  Minimal,
	ASCIIDoubleHead:   ASCII2,
}

// All lists every box style
var All = []*Box{
	ASCII, ASCII2, ASCIIDoubleHead, Square, SquareDoubleHead, Minimal, MinimalHeavyHead,
	MinimalDoubleHead, Simple, SimpleHead, SimpleHeavy, Horizontals, Rounded, Heavy,
	HeavyEdge, HeavyHead, Double, DoubleEdge, Markdown,
}

// None draws no border; widgets treat a nil box the same way
var None *Box

// Lookup finds a box style by name such as "rounded" or "heavy_head".
// "none" returns nil.
func Lookup(name string) (*Box, bool) {
	if name == "none" || name == "" {
		return nil, true
	}
	for _, b := range All {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}
