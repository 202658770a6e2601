package pattern

import "strings"

type Kind string

const (
	KindPath    Kind = "PATH"
	KindSlash   Kind = "SLASH"
	KindDot     Kind = "DOT"
	KindLiteral Kind = "LITERAL"
	KindSymbol  Kind = "SYMBOL"
	KindGroup   Kind = "GROUP"
	KindStar    Kind = "STAR"
)

// Markers prefix the text of SYMBOL and STAR leaves as produced by the parser.
const (
	SymbolMarker = ":"
	StarMarker   = "*"
)

type Visitable interface {
	Accept(Visitor) error
}

type Node interface {
	Visitable
	Kind() Kind
}

// Composite is implemented by PATH, SLASH, DOT and GROUP.
type Composite interface {
	Node
	Children() []Node
}

// Terminal is implemented by LITERAL, SYMBOL and STAR.
type Terminal interface {
	Node
	Text() string
}

type Visitor interface {
	VisitPath(PathNode) error
	VisitSlash(SlashNode) error
	VisitDot(DotNode) error
	VisitLiteral(LiteralNode) error
	VisitSymbol(SymbolNode) error
	VisitGroup(GroupNode) error
	VisitStar(StarNode) error
}

func cloneChildren(children []Node) []Node {
	if len(children) == 0 {
		return nil
	}
	result := make([]Node, len(children))
	copy(result, children)
	return result
}

func Path(children ...Node) PathNode {
	return PathNode{children: cloneChildren(children)}
}

type PathNode struct {
	children []Node
}

func (n PathNode) Kind() Kind {
	return KindPath
}

func (n PathNode) Children() []Node {
	return n.children
}

func (n PathNode) Accept(v Visitor) error {
	return v.VisitPath(n)
}

func Slash(children ...Node) SlashNode {
	return SlashNode{children: cloneChildren(children)}
}

type SlashNode struct {
	children []Node
}

func (n SlashNode) Kind() Kind {
	return KindSlash
}

func (n SlashNode) Children() []Node {
	return n.children
}

func (n SlashNode) Accept(v Visitor) error {
	return v.VisitSlash(n)
}

func Dot(children ...Node) DotNode {
	return DotNode{children: cloneChildren(children)}
}

type DotNode struct {
	children []Node
}

func (n DotNode) Kind() Kind {
	return KindDot
}

func (n DotNode) Children() []Node {
	return n.children
}

func (n DotNode) Accept(v Visitor) error {
	return v.VisitDot(n)
}

// Group makes every parameter below it optional.
func Group(children ...Node) GroupNode {
	return GroupNode{children: cloneChildren(children)}
}

type GroupNode struct {
	children []Node
}

func (n GroupNode) Kind() Kind {
	return KindGroup
}

func (n GroupNode) Children() []Node {
	return n.children
}

func (n GroupNode) Accept(v Visitor) error {
	return v.VisitGroup(n)
}

func Literal(text string) LiteralNode {
	return LiteralNode{text: text}
}

type LiteralNode struct {
	text string
}

func (n LiteralNode) Kind() Kind {
	return KindLiteral
}

func (n LiteralNode) Text() string {
	return n.text
}

func (n LiteralNode) Accept(v Visitor) error {
	return v.VisitLiteral(n)
}

// Symbol takes the raw leaf text, e.g. ":id".
func Symbol(text string) SymbolNode {
	return SymbolNode{text: text}
}

type SymbolNode struct {
	text string
}

func (n SymbolNode) Kind() Kind {
	return KindSymbol
}

func (n SymbolNode) Text() string {
	return n.text
}

// Name returns the parameter name without the ":" marker.
func (n SymbolNode) Name() string {
	return strings.TrimPrefix(n.text, SymbolMarker)
}

func (n SymbolNode) Accept(v Visitor) error {
	return v.VisitSymbol(n)
}

// Star takes the raw leaf text, e.g. "*path".
func Star(text string) StarNode {
	return StarNode{text: text}
}

type StarNode struct {
	text string
}

func (n StarNode) Kind() Kind {
	return KindStar
}

func (n StarNode) Text() string {
	return n.text
}

// Name returns the parameter name without the "*" marker.
func (n StarNode) Name() string {
	return strings.TrimPrefix(n.text, StarMarker)
}

func (n StarNode) Accept(v Visitor) error {
	return v.VisitStar(n)
}
