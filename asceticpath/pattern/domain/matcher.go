package pattern

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrLiteralMismatch = errors.New("pattern: literal mismatch")

// TokenType values are shared with the scanner; SLASH and DOT deliberately
// spell the same as the corresponding node kinds.
type TokenType string

const (
	TokenSlash   TokenType = "SLASH"
	TokenDot     TokenType = "DOT"
	TokenStar    TokenType = "STAR"
	TokenLParen  TokenType = "LPAREN"
	TokenRParen  TokenType = "RPAREN"
	TokenSymbol  TokenType = "SYMBOL"
	TokenLiteral TokenType = "LITERAL"
)

type Token struct {
	Type     TokenType
	Value    string
	Position int
}

func (t Token) String() string {
	return fmt.Sprintf("Token(%s, %q)", t.Type, t.Value)
}

// TokenStream is a forward-only view of a tokenized candidate path.
type TokenStream interface {
	// NextToken consumes and returns the next token, or the zero Token at
	// the end of the stream.
	NextToken() Token
	EOS() bool
	// Pos is the byte offset just past the last consumed token.
	Pos() int
	// PreMatch is the input preceding the last consumed token.
	PreMatch() string
}

type SyntaxError struct {
	Expected string
	Actual   string
	Pos      int
	After    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("unexpected '%s', expected '%s' at %d after %s", e.Actual, e.Expected, e.Pos, e.After)
}

func NewMatcher(stream TokenStream) *Matcher {
	m := &Matcher{
		stream:   stream,
		contents: make(map[string]string),
	}
	m.BaseVisitor = NewBaseVisitor(m)
	return m
}

// Matcher walks the tree against a token stream instead of a regexp. Once
// the stream is exhausted every remaining node is skipped.
type Matcher struct {
	BaseVisitor
	stream   TokenStream
	contents map[string]string
}

func (m *Matcher) VisitPath(n PathNode) error {
	if m.stream.EOS() {
		return nil
	}
	return m.BaseVisitor.VisitPath(n)
}

func (m *Matcher) VisitGroup(n GroupNode) error {
	if m.stream.EOS() {
		return nil
	}
	return m.BaseVisitor.VisitGroup(n)
}

func (m *Matcher) VisitSlash(n SlashNode) error {
	if m.stream.EOS() {
		return nil
	}
	token := m.stream.NextToken()
	if token.Type != TokenSlash {
		return m.syntaxError("/", token)
	}
	return m.BaseVisitor.VisitSlash(n)
}

func (m *Matcher) VisitDot(n DotNode) error {
	if m.stream.EOS() {
		return nil
	}
	token := m.stream.NextToken()
	if token.Type != TokenType(n.Kind()) {
		return m.syntaxError(".", token)
	}
	return m.BaseVisitor.VisitDot(n)
}

func (m *Matcher) VisitLiteral(n LiteralNode) error {
	if m.stream.EOS() {
		return nil
	}
	token := m.stream.NextToken()
	if token.Value != n.Text() {
		return errors.Wrapf(ErrLiteralMismatch, "%q != %q", token.Value, n.Text())
	}
	return nil
}

func (m *Matcher) VisitSymbol(n SymbolNode) error {
	if m.stream.EOS() {
		return nil
	}
	token := m.stream.NextToken()
	m.contents[n.Name()] = token.Value
	return nil
}

func (m *Matcher) syntaxError(expected string, actual Token) error {
	return &SyntaxError{
		Expected: expected,
		Actual:   actual.Value,
		Pos:      m.stream.Pos(),
		After:    m.stream.PreMatch(),
	}
}

func (m Matcher) Result() map[string]string {
	result := make(map[string]string, len(m.contents))
	for k, v := range m.contents {
		result[k] = v
	}
	return result
}

// MatchTokens matches root against stream and returns the captured
// parameters. Mismatched separators yield a *SyntaxError, mismatched literal
// text an error wrapping ErrLiteralMismatch.
func MatchTokens(root Node, stream TokenStream) (map[string]string, error) {
	m := NewMatcher(stream)
	err := root.Accept(m)
	if err != nil {
		return nil, err
	}
	return m.Result(), nil
}
