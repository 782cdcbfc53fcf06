package rules

import "fmt"

// Parser builds an expression tree from tokens using recursive descent.
// Precedence, loosest to tightest: OR, AND, NOT.
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser creates a new parser
func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens: tokens,
		pos:    0,
	}
}

// ParseExpression parses a complete boolean expression
func ParseExpression(input string) (Expr, error) {
	tokens, err := NewLexer(input).Tokenize()
	if err != nil {
		return nil, err
	}

	parser := NewParser(tokens)
	expr, err := parser.parseOr()
	if err != nil {
		return nil, err
	}

	if tok := parser.peek(); tok.Type != TokenEOF {
		return nil, fmt.Errorf("unexpected %s %q at column %d", tok.Type, tok.Value, tok.Column)
	}

	return expr, nil
}

// parseOr parses: and ( OR and )*
func (p *Parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.peek().Type == TokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &OrExpr{Left: left, Right: right}
	}

	return left, nil
}

// parseAnd parses: unary ( AND unary )*
func (p *Parser) parseAnd() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.peek().Type == TokenAnd {
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &AndExpr{Left: left, Right: right}
	}

	return left, nil
}

// parseUnary parses: NOT unary | primary
func (p *Parser) parseUnary() (Expr, error) {
	if p.peek().Type == TokenNot {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &NotExpr{Operand: operand}, nil
	}

	return p.parsePrimary()
}

// parsePrimary parses: literal | identifier | '(' expression ')'
func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.peek()

	switch tok.Type {
	case TokenTrue:
		p.advance()
		return &LiteralExpr{Value: true}, nil

	case TokenFalse:
		p.advance()
		return &LiteralExpr{Value: false}, nil

	case TokenIdentifier:
		p.advance()
		return &RefExpr{Name: tok.Value}, nil

	case TokenLeftParen:
		p.advance()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.peek().Type != TokenRightParen {
			return nil, fmt.Errorf("missing closing parenthesis at column %d", p.peek().Column)
		}
		p.advance()
		return expr, nil

	case TokenEOF:
		return nil, fmt.Errorf("unexpected end of expression")

	default:
		return nil, fmt.Errorf("unexpected %s %q at column %d", tok.Type, tok.Value, tok.Column)
	}
}

// peek returns the current token without consuming it
func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

// advance consumes the current token
func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}
