package newick

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// TokenKind identifies the syntactic role of a Token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenTerminal
	TokenOpen
	TokenClose
	TokenComma
	TokenLabel
	TokenLength
)

const (
	eof           = -1
	terminal      = ';'
	descDelimiter = ','
	descStart     = '('
	descEnd       = ')'
	lengthStart   = ':'
)

// Characters that may never appear in an unquoted label. Blanks, commas,
// colons and semicolons end a label instead.
const labelBanned = "()[]'"

// Token is a single lexical unit of Newick text. Line and Col give the
// position of the first character of the token, both starting at 1.
type Token struct {
	Kind TokenKind
	Val  string

	// Length is the parsed value of a TokenLength. It is zero for every
	// other kind of token.
	Length float64

	Line, Col int
}

// GrammarError is returned by Lex when the input is not well formed Newick
// text.
type GrammarError struct {
	Line, Col int

	// Fragment is the offending piece of input. It is "EOF" when the input
	// ended too early.
	Fragment string
	Msg      string
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("newick: line %d, column %d, near %q: %s",
		e.Line, e.Col, e.Fragment, e.Msg)
}

type stateFn func(lx *lexer) stateFn

type lexer struct {
	input string
	start int
	pos   int
	width int

	// line and col are the position of mark, which trails start.
	mark      int
	line, col int

	// depth is the number of unclosed descendant lists.
	depth int

	tokens []Token
	err    *GrammarError
}

// Lex splits Newick text into tokens. Every tree in the input must be
// terminated by a ';'. The token slice always ends with a TokenEOF.
// Balanced parentheses and numeric branch lengths are checked here; the
// shape of the tree is checked by Build.
func Lex(input string) ([]Token, error) {
	lx := &lexer{input: input, line: 1, col: 1}
	for state := stateFn(lexStart); state != nil; {
		state = state(lx)
	}
	if lx.err != nil {
		return nil, lx.err
	}
	return lx.tokens, nil
}

func (lx *lexer) current() string {
	return lx.input[lx.start:lx.pos]
}

// position returns the line and column of the byte offset off, which must
// not precede mark.
func (lx *lexer) position(off int) (line, col int) {
	line, col = lx.line, lx.col
	for _, r := range lx.input[lx.mark:off] {
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

func (lx *lexer) emit(kind TokenKind) {
	lx.emitToken(Token{Kind: kind, Val: lx.current()})
}

func (lx *lexer) emitToken(tok Token) {
	lx.line, lx.col = lx.position(lx.start)
	lx.mark = lx.start
	tok.Line, tok.Col = lx.line, lx.col
	lx.tokens = append(lx.tokens, tok)
	lx.start = lx.pos
}

func (lx *lexer) next() (r rune) {
	if lx.pos >= len(lx.input) {
		lx.width = 0
		return eof
	}
	r, lx.width = utf8.DecodeRuneInString(lx.input[lx.pos:])
	lx.pos += lx.width
	return r
}

// ignore skips over the pending input before this point.
func (lx *lexer) ignore() {
	lx.start = lx.pos
}

// backup steps back one rune. Can be called only once per call of next.
func (lx *lexer) backup() {
	lx.pos -= lx.width
}

// errorf stops all lexing by recording an error about the rune that was
// just read and returning `nil`.
func (lx *lexer) errorf(r rune, format string, values ...interface{}) stateFn {
	frag := "EOF"
	if r != eof {
		frag = escapeSpecial(r)
	}
	return lx.errorAt(lx.pos-lx.width, frag, format, values...)
}

func (lx *lexer) errorAt(
	off int, frag, format string, values ...interface{},
) stateFn {
	line, col := lx.position(off)
	lx.err = &GrammarError{
		Line:     line,
		Col:      col,
		Fragment: frag,
		Msg:      fmt.Sprintf(format, values...),
	}
	return nil
}

// lexStart is the state between trees.
func lexStart(lx *lexer) stateFn {
	r := lx.next()
	switch {
	case isBlank(r) || isNL(r):
		lx.ignore()
		return lexStart
	case r == eof:
		lx.emit(TokenEOF)
		return nil
	}
	lx.backup()
	return lexSubtree
}

// lexSubtree expects either a descendant list or a leaf.
func lexSubtree(lx *lexer) stateFn {
	r := lx.next()
	switch {
	case isBlank(r) || isNL(r):
		lx.ignore()
		return lexSubtree
	case r == descStart:
		lx.depth++
		lx.emit(TokenOpen)
		return lexSubtree
	case r == eof:
		return lx.errorf(r, "unexpected end of input, expected a subtree")
	}
	lx.backup()
	return lexLabel
}

// lexLabel reads an optional label and then an optional branch length.
func lexLabel(lx *lexer) stateFn {
	for {
		r := lx.next()
		switch {
		case r == lengthStart:
			lx.backup()
			lx.emitLabel()
			lx.next()
			lx.ignore()
			return lexLength
		case isSubtreeEnd(r) || isBlank(r) || isNL(r):
			lx.backup()
			lx.emitLabel()
			return lexSubtreeEnd
		case strings.ContainsRune(labelBanned, r):
			return lx.errorf(r, "found %q in an unquoted label, which may "+
				"not contain any of %q", r, labelBanned)
		}
	}
}

func (lx *lexer) emitLabel() {
	if lx.pos > lx.start {
		lx.emit(TokenLabel)
	}
}

func lexLength(lx *lexer) stateFn {
	for {
		r := lx.next()
		if isSubtreeEnd(r) || isBlank(r) || isNL(r) ||
			r == lengthStart || r == descStart {
			lx.backup()
			break
		}
	}
	frag := lx.current()
	if len(frag) == 0 {
		return lx.errorAt(lx.start, frag, "missing branch length after ':'")
	}
	length, err := strconv.ParseFloat(frag, 64)
	if err != nil || math.IsNaN(length) || math.IsInf(length, 0) {
		return lx.errorAt(lx.start, frag, "invalid branch length")
	}
	lx.emitToken(Token{Kind: TokenLength, Val: frag, Length: length})
	return lexSubtreeEnd
}

// lexSubtreeEnd expects the delimiter that follows a complete subtree.
func lexSubtreeEnd(lx *lexer) stateFn {
	r := lx.next()
	switch {
	case isBlank(r) || isNL(r):
		lx.ignore()
		return lexSubtreeEnd
	case r == descDelimiter:
		if lx.depth == 0 {
			return lx.errorf(r, "sibling delimiter outside of a "+
				"descendant list")
		}
		lx.emit(TokenComma)
		return lexSubtree
	case r == descEnd:
		if lx.depth == 0 {
			return lx.errorf(r, "unbalanced '%c'", descEnd)
		}
		lx.depth--
		lx.emit(TokenClose)
		return lexLabel
	case r == terminal:
		if lx.depth > 0 {
			return lx.errorf(r, "terminal found with %d unclosed '%c'",
				lx.depth, descStart)
		}
		lx.emit(TokenTerminal)
		return lexStart
	case r == eof:
		if lx.depth > 0 {
			return lx.errorf(r, "unexpected end of input with %d "+
				"unclosed '%c'", lx.depth, descStart)
		}
		return lx.errorf(r, "unexpected end of input, expected '%c'",
			terminal)
	}
	return lx.errorf(r, "expected end of subtree ('%c', '%c' or '%c')",
		descDelimiter, descEnd, terminal)
}

func isSubtreeEnd(r rune) bool {
	return r == descDelimiter || r == descEnd || r == terminal || r == eof
}

func isBlank(r rune) bool {
	return r == '\t' || r == ' '
}

func isNL(r rune) bool {
	return r == '\n' || r == '\r'
}

func (kind TokenKind) String() string {
	switch kind {
	case TokenEOF:
		return "EOF"
	case TokenTerminal:
		return "Terminal"
	case TokenOpen:
		return "Descendants (start)"
	case TokenClose:
		return "Descendants (end)"
	case TokenComma:
		return "Delimiter"
	case TokenLabel:
		return "Label"
	case TokenLength:
		return "Length"
	}
	panic(fmt.Sprintf("BUG: Unknown token kind %d.", int(kind)))
}

func (tok Token) String() string {
	return fmt.Sprintf("%d:%d %s %q", tok.Line, tok.Col, tok.Kind, tok.Val)
}

func escapeSpecial(c rune) string {
	switch c {
	case '\n':
		return "\\n"
	case '\r':
		return "\\r"
	case '\t':
		return "\\t"
	}
	return string(c)
}
