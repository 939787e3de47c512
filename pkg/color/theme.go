package color

// TerminalTheme maps the default and 16 standard colors to RGB for
// output formats that cannot defer to the terminal, such as SVG.
type TerminalTheme struct {
	Name       string
	Background Triplet
	Foreground Triplet
	ANSI       [16]Triplet
}

// DefaultTerminalTheme is black on white
var DefaultTerminalTheme = &TerminalTheme{
	Name:       "default",
	Background: Triplet{255, 255, 255},
	Foreground: Triplet{0, 0, 0},
	ANSI: [16]Triplet{
		{0, 0, 0}, {128, 0, 0}, {0, 128, 0}, {128, 128, 0},
		{0, 0, 128}, {128, 0, 128}, {0, 128, 128}, {192, 192, 192},
		{128, 128, 128}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
		{0, 0, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
	},
}

// MonokaiTerminalTheme is a dark theme
var MonokaiTerminalTheme = &TerminalTheme{
	Name:       "monokai",
	Background: Triplet{12, 12, 12},
	Foreground: Triplet{217, 217, 217},
	ANSI: [16]Triplet{
		{26, 26, 26}, {244, 0, 95}, {152, 224, 36}, {253, 151, 31},
		{157, 101, 255}, {244, 0, 95}, {88, 209, 235}, {196, 197, 181},
		{98, 94, 76}, {244, 0, 95}, {152, 224, 36}, {224, 213, 97},
		{157, 101, 255}, {244, 0, 95}, {88, 209, 235}, {246, 246, 239},
	},
}

// TerminalThemes lists the built-in themes by name
var TerminalThemes = map[string]*TerminalTheme{
	DefaultTerminalTheme.Name: DefaultTerminalTheme,
	MonokaiTerminalTheme.Name: MonokaiTerminalTheme,
}
