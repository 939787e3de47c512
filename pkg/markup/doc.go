// Package markup parses the inline tag language used to style console
// output.
//
// Tags open with [directives] and close with [/] or [/directives]:
//
//	[bold red]Error:[/] file [italic]not[/italic] found
//
// Directives are attribute names (bold, italic, underline, strike, dim,
// blink, reverse, conceal, ...), "not <attribute>", colors (red, #ff8000,
// color(208), rgb(1,2,3)), "on <color>" for the background,
// "link=<url>", or a style name from the theme such as [warning].
//
// A "[" starts a tag only when followed by a letter, "#", "@" or "/"; any
// other "[" is literal. "[[" and "]]" are escaped brackets.
//
// Parsing is strict: an unterminated tag, an unknown directive, a close
// with nothing open, a close naming a different tag than the innermost
// open one, and tags still open at the end all fail with
// errors.ErrMarkupSyntax.
package markup
