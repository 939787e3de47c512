package markup

import (
	"strings"

	"github.com/arthur-debert/tinta/pkg/errors"
)

// TokenKind distinguishes text from tags
type TokenKind uint8

const (
	TokenText TokenKind = iota
	TokenOpen
	TokenClose
)

func (k TokenKind) String() string {
	switch k {
	case TokenOpen:
		return "open"
	case TokenClose:
		return "close"
	}
	return "text"
}

// Token is one lexical unit. For TokenOpen, Value is the directive list;
// for TokenClose it is the optional tag name; for TokenText the
// unescaped text.
type Token struct {
	Kind  TokenKind
	Value string
	Pos   int
}

func isTagStart(c byte) bool {
	return c == '/' || c == '#' || c == '@' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Tokenize splits source into text and tag tokens in a single pass
func Tokenize(source string) ([]Token, error) {
	var (
		tokens  []Token
		text    strings.Builder
		textPos = -1
	)
	flush := func() {
		if text.Len() > 0 {
			tokens = append(tokens, Token{Kind: TokenText, Value: text.String(), Pos: textPos})
			text.Reset()
		}
		textPos = -1
	}
	literal := func(s string, pos int) {
		if textPos < 0 {
			textPos = pos
		}
		text.WriteString(s)
	}

	for i := 0; i < len(source); {
		c := source[i]
		switch {
		case c == '[' && i+1 < len(source) && source[i+1] == '[':
			literal("[", i)
			i += 2

		case c == ']' && i+1 < len(source) && source[i+1] == ']':
			literal("]", i)
			i += 2

		case c == '[' && i+1 < len(source) && isTagStart(source[i+1]):
			end := strings.IndexByte(source[i+1:], ']')
			if end < 0 {
				return nil, errors.Newf(errors.ErrMarkupSyntax, "unterminated tag at position %d", i).
					WithDetail("position", i).
					WithDetail("source", source)
			}
			flush()
			content := source[i+1 : i+1+end]
			if strings.HasPrefix(content, "/") {
				tokens = append(tokens, Token{Kind: TokenClose, Value: strings.TrimSpace(content[1:]), Pos: i})
			} else {
				tokens = append(tokens, Token{Kind: TokenOpen, Value: strings.TrimSpace(content), Pos: i})
			}
			i += end + 2

		default:
			next := i + 1
			for next < len(source) && source[next] != '[' && source[next] != ']' {
				next++
			}
			literal(source[i:next], i)
			i = next
		}
	}
	flush()
	return tokens, nil
}
