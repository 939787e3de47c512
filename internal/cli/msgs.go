package cli

// Command descriptions
const (
	MsgRootShort = "Render styled text, tables and live displays in the terminal"
	MsgRootLong  = `tinta renders markup, panels, tables, trees, markdown and highlighted
code to the terminal, downgrading colors and layout to whatever the output
device supports. Output piped to a file is plain text.`

	MsgVersionShort  = "Print version information"
	MsgPrintShort    = "Print markup text"
	MsgRuleShort     = "Draw a horizontal rule with an optional title"
	MsgPanelShort    = "Draw markup text inside a bordered panel"
	MsgBannerShort   = "Print text as large FIGlet lettering"
	MsgTableShort    = "Render CSV input as a table"
	MsgTreeShort     = "Render indented lines as a tree"
	MsgMarkdownShort = "Render a markdown document"
	MsgSyntaxShort   = "Print source code with syntax highlighting"
	MsgProfileShort  = "Show the negotiated output profile"
	MsgExportShort   = "Render markup and save it as SVG or text"
	MsgProgressShort = "Run a progress bar demonstration"
	MsgStatusShort   = "Show a spinner while a command runs"
	MsgConfigShort   = "Inspect and create the configuration file"
	MsgConfigShow    = "Print the effective configuration"
	MsgConfigInit    = "Write a commented configuration file"
	MsgConfigPath    = "Print the configuration file location"
)

// Output messages
const (
	MsgConfigWritten = "[success]Wrote[/] %s"
	MsgExported      = "[success]Saved[/] %s"
	MsgStatusDone    = "[success]✔[/] %s"
)

const exportExample = `  tinta export -o hello.svg "[bold red]hello[/] world"
  echo "[green]ok[/]" | tinta export --format text -o out.txt`

const tableExample = `  tinta table data.csv
  ps aux | tr -s ' ' ',' | tinta table --box simple`
