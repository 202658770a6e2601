// Package definition provides the default scanner and parser for route
// specifications such as "/:controller(/:action(.:format))" or "/files/*path".
//
// The Scanner doubles as the token stream for the structural matcher, so the
// same tokenization applies to specifications and to candidate paths.
package definition

import (
	"regexp"

	p "github.com/krew-solutions/ascetic-path-go/asceticpath/pattern/domain"
)

// tokenPattern defines a token type and its regex pattern.
type tokenPattern struct {
	Type    p.TokenType
	Pattern *regexp.Regexp
}

// Order matters: the first pattern that matches at the current position wins.
var tokenPatterns = []tokenPattern{
	{p.TokenSlash, regexp.MustCompile(`^/`)},
	{p.TokenStar, regexp.MustCompile(`^\*\w+`)},
	{p.TokenLParen, regexp.MustCompile(`^\(`)},
	{p.TokenRParen, regexp.MustCompile(`^\)`)},
	{p.TokenDot, regexp.MustCompile(`^\.`)},
	{p.TokenSymbol, regexp.MustCompile(`^:\w+`)},
	{p.TokenLiteral, regexp.MustCompile(`^[\w%\-~]+`)},
	{p.TokenLiteral, regexp.MustCompile(`^(?s).`)},
}

// NewScanner creates a Scanner positioned at the start of input.
func NewScanner(input string) *Scanner {
	return &Scanner{input: input}
}

// Scanner is a forward-only tokenizer implementing pattern.TokenStream.
type Scanner struct {
	input      string
	position   int
	matchStart int
}

func (s *Scanner) EOS() bool {
	return s.position >= len(s.input)
}

func (s *Scanner) Pos() int {
	return s.position
}

func (s *Scanner) PreMatch() string {
	return s.input[:s.matchStart]
}

// NextToken consumes one token. It returns the zero Token once the input is
// exhausted.
func (s *Scanner) NextToken() p.Token {
	if s.EOS() {
		return p.Token{}
	}
	remaining := s.input[s.position:]
	length := 1
	tokenType := p.TokenLiteral
	for _, pattern := range tokenPatterns {
		loc := pattern.Pattern.FindStringIndex(remaining)
		if loc != nil && loc[1] > 0 {
			length = loc[1]
			tokenType = pattern.Type
			break
		}
	}
	token := p.Token{
		Type:     tokenType,
		Value:    remaining[:length],
		Position: s.position,
	}
	s.matchStart = s.position
	s.position += length
	return token
}

// Tokenize returns every remaining token.
func (s *Scanner) Tokenize() []p.Token {
	var tokens []p.Token
	for !s.EOS() {
		tokens = append(tokens, s.NextToken())
	}
	return tokens
}
