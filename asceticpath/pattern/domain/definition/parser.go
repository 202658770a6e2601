package definition

import (
	"fmt"
	"regexp"

	p "github.com/krew-solutions/ascetic-path-go/asceticpath/pattern/domain"
)

// ParseError reports malformed specification text.
type ParseError struct {
	Position int
	Message  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at position %d", e.Message, e.Position)
}

// Parse parses a route specification into a PATH node.
//
// Grammar:
//
//	path        := expression*
//	expression  := SLASH term* | DOT term* | LPAREN expression* RPAREN | term
//	term        := LITERAL | SYMBOL | STAR
//
// Examples:
//
//	Parse("/:controller(/:action)")
//	// Path(Slash(Symbol(":controller")), Group(Slash(Symbol(":action"))))
//
//	Parse("/files/*path")
//	// Path(Slash(Literal("files")), Slash(Star("*path")))
func Parse(text string) (p.Node, error) {
	return NewParser().Parse(text)
}

func NewParser() *Parser {
	return &Parser{}
}

// Parser is the default pattern.Parser. Literal text is quoted for use in a
// regular expression.
type Parser struct{}

func (pr *Parser) Parse(text string) (p.Node, error) {
	state := &parseState{tokens: NewScanner(text).Tokenize()}
	children, err := state.parseExpressions()
	if err != nil {
		return nil, err
	}
	if state.i < len(state.tokens) {
		token := state.tokens[state.i]
		return nil, &ParseError{Position: token.Position, Message: fmt.Sprintf("unexpected %q", token.Value)}
	}
	return p.Path(children...), nil
}

type parseState struct {
	tokens []p.Token
	i      int
}

func (s *parseState) peek() (p.Token, bool) {
	if s.i >= len(s.tokens) {
		return p.Token{}, false
	}
	return s.tokens[s.i], true
}

// parseExpressions stops at a closing parenthesis or the end of input.
func (s *parseState) parseExpressions() ([]p.Node, error) {
	var nodes []p.Node
	for {
		token, ok := s.peek()
		if !ok || token.Type == p.TokenRParen {
			return nodes, nil
		}
		switch token.Type {
		case p.TokenSlash:
			s.i++
			nodes = append(nodes, p.Slash(s.parseTerms()...))
		case p.TokenDot:
			s.i++
			nodes = append(nodes, p.Dot(s.parseTerms()...))
		case p.TokenLParen:
			group, err := s.parseGroup()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, group)
		default:
			nodes = append(nodes, s.parseTerms()...)
		}
	}
}

func (s *parseState) parseGroup() (p.Node, error) {
	open := s.tokens[s.i]
	s.i++
	children, err := s.parseExpressions()
	if err != nil {
		return nil, err
	}
	token, ok := s.peek()
	if !ok || token.Type != p.TokenRParen {
		return nil, &ParseError{Position: open.Position, Message: "unbalanced \"(\""}
	}
	s.i++
	return p.Group(children...), nil
}

func (s *parseState) parseTerms() []p.Node {
	var nodes []p.Node
	for {
		token, ok := s.peek()
		if !ok {
			return nodes
		}
		switch token.Type {
		case p.TokenLiteral:
			nodes = append(nodes, p.Literal(regexp.QuoteMeta(token.Value)))
		case p.TokenSymbol:
			nodes = append(nodes, p.Symbol(token.Value))
		case p.TokenStar:
			nodes = append(nodes, p.Star(token.Value))
		default:
			return nodes
		}
		s.i++
	}
}
