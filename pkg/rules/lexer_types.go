package rules

import "fmt"

// Token represents a lexical token
type Token struct {
	Type   TokenType
	Value  string
	Column int
}

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenError

	// Identifiers and literals
	TokenIdentifier
	TokenTrue
	TokenFalse

	// Operators
	TokenAnd // &&, AND
	TokenOr  // ||, OR
	TokenNot // !, NOT

	// Delimiters
	TokenLeftParen  // (
	TokenRightParen // )
)

// keywords maps word operators and literals to token types. Rule text is
// case-insensitive for these, so lookups use the uppercased lexeme.
var keywords = map[string]TokenType{
	"AND":   TokenAnd,
	"OR":    TokenOr,
	"NOT":   TokenNot,
	"TRUE":  TokenTrue,
	"FALSE": TokenFalse,
}

// String returns a human-readable name for a token type
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenError:
		return "ERROR"
	case TokenIdentifier:
		return "IDENTIFIER"
	case TokenTrue:
		return "TRUE"
	case TokenFalse:
		return "FALSE"
	case TokenAnd:
		return "AND"
	case TokenOr:
		return "OR"
	case TokenNot:
		return "NOT"
	case TokenLeftParen:
		return "("
	case TokenRightParen:
		return ")"
	default:
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
}
