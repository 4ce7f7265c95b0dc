package newick

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
)

// StructureError is returned by Build when the tokens are well formed but
// do not describe exactly one binary tree.
type StructureError struct {
	Line, Col int
	Msg       string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("newick: line %d, column %d: %s", e.Line, e.Col, e.Msg)
}

// Reader corresponds to the state necessary to read a tree from Newick
// formatted input.
type Reader struct {
	input io.Reader
}

// NewReader returns a reader ready for reading a tree from `r`.
func NewReader(r io.Reader) *Reader {
	return &Reader{r}
}

// ReadTree reads all of the source input and parses it as a single tree.
func (r *Reader) ReadTree() (*Tree, error) {
	text, err := io.ReadAll(r.input)
	if err != nil {
		return nil, errors.Wrap(err, "newick: reading tree")
	}
	return Parse(string(text))
}

// Parse lexes and builds the single tree in `text`.
func Parse(text string) (*Tree, error) {
	tokens, err := Lex(text)
	if err != nil {
		return nil, err
	}
	return Build(tokens)
}

// Build converts a token stream, as produced by Lex, into a tree. Exactly
// one tree terminated by a ';' must be present. Every node must have
// either zero or two children.
func Build(tokens []Token) (*Tree, error) {
	b := &builder{tokens: tokens}
	tree, err := b.subtree()
	if err != nil {
		return nil, err
	}
	if tok := b.next(); tok.Kind != TokenTerminal {
		return nil, expectErr(tok, fmt.Sprintf("a terminal '%c'", terminal))
	}
	if tok := b.next(); tok.Kind != TokenEOF {
		return nil, structErr(tok, "trailing data after the first tree")
	}
	return tree, nil
}

type builder struct {
	tokens []Token
	pos    int
}

// peek returns the next token without consuming it. Running off the end of
// the slice behaves like reading a TokenEOF.
func (b *builder) peek() Token {
	if b.pos >= len(b.tokens) {
		var last Token
		if len(b.tokens) > 0 {
			last = b.tokens[len(b.tokens)-1]
		}
		return Token{Kind: TokenEOF, Line: last.Line, Col: last.Col}
	}
	return b.tokens[b.pos]
}

func (b *builder) next() Token {
	tok := b.peek()
	if b.pos < len(b.tokens) {
		b.pos++
	}
	return tok
}

func (b *builder) subtree() (*Tree, error) {
	node := &Tree{}
	open := b.peek()
	if open.Kind == TokenOpen {
		b.next()
		var children []*Tree
	CHILDREN:
		for {
			child, err := b.subtree()
			if err != nil {
				return nil, err
			}
			children = append(children, child)

			switch tok := b.next(); tok.Kind {
			case TokenComma:
			case TokenClose:
				break CHILDREN
			default:
				return nil, expectErr(tok, "a delimiter or the end of a "+
					"descendant list")
			}
		}
		if len(children) != 2 {
			return nil, structErr(open, fmt.Sprintf(
				"node has %d children, but only binary trees are "+
					"supported", len(children)))
		}
		node.Left, node.Right = children[0], children[1]
	}

	if tok := b.peek(); tok.Kind == TokenLabel {
		b.next()
		node.Label = tok.Val
	}
	if tok := b.peek(); tok.Kind == TokenLength {
		b.next()
		node.Length = tok.Length
	}
	return node, nil
}

func expectErr(tok Token, expected string) error {
	return structErr(tok, fmt.Sprintf("unexpected %s, expected %s",
		tok.Kind, expected))
}

func structErr(tok Token, msg string) error {
	return &StructureError{Line: tok.Line, Col: tok.Col, Msg: msg}
}
