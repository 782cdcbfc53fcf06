package rules

import (
	"fmt"
	"strings"
	"unicode"
)

// Lexer tokenizes one rule expression
type Lexer struct {
	input  string
	pos    int
	column int
}

// NewLexer creates a new lexer over a single expression
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		pos:    0,
		column: 1,
	}
}

// Tokenize converts the input string into tokens
func (l *Lexer) Tokenize() ([]Token, error) {
	tokens := make([]Token, 0)

	for l.pos < len(l.input) {
		ch := l.input[l.pos]

		// Skip whitespace
		if unicode.IsSpace(rune(ch)) {
			l.advance()
			continue
		}

		start := l.column

		switch {
		case ch == '(':
			tokens = append(tokens, Token{Type: TokenLeftParen, Value: "(", Column: start})
			l.advance()

		case ch == ')':
			tokens = append(tokens, Token{Type: TokenRightParen, Value: ")", Column: start})
			l.advance()

		case ch == '!':
			tokens = append(tokens, Token{Type: TokenNot, Value: "!", Column: start})
			l.advance()

		case ch == '&':
			if l.peekAhead(1) != '&' {
				return nil, fmt.Errorf("unexpected character '&' at column %d (did you mean '&&'?)", start)
			}
			tokens = append(tokens, Token{Type: TokenAnd, Value: "&&", Column: start})
			l.advance()
			l.advance()

		case ch == '|':
			if l.peekAhead(1) != '|' {
				return nil, fmt.Errorf("unexpected character '|' at column %d (did you mean '||'?)", start)
			}
			tokens = append(tokens, Token{Type: TokenOr, Value: "||", Column: start})
			l.advance()
			l.advance()

		case isIdentStart(ch):
			word := l.readIdentifier()
			if tokType, isKeyword := keywords[strings.ToUpper(word)]; isKeyword {
				tokens = append(tokens, Token{Type: tokType, Value: word, Column: start})
			} else {
				tokens = append(tokens, Token{Type: TokenIdentifier, Value: word, Column: start})
			}

		default:
			return nil, fmt.Errorf("unexpected character %q at column %d", string(ch), start)
		}
	}

	tokens = append(tokens, Token{Type: TokenEOF, Column: l.column})
	return tokens, nil
}

// advance moves past the current character
func (l *Lexer) advance() {
	l.pos++
	l.column++
}

// peekAhead looks at the character n positions ahead without consuming
func (l *Lexer) peekAhead(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

// readIdentifier consumes an identifier: [A-Za-z_][A-Za-z0-9_]*
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
		l.advance()
	}
	return l.input[start:l.pos]
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}
