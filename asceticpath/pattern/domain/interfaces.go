package pattern

// Parser turns route-specification text into a node tree rooted at a PATH
// node.
type Parser interface {
	Parse(text string) (Node, error)
}

type ParserFunc func(text string) (Node, error)

func (f ParserFunc) Parse(text string) (Node, error) {
	return f(text)
}
