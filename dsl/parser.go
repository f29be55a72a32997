// Package dsl parses a small attributed-text description language used by
// the demo command and the package's tests to build layout.Attributes
// runs without hand-assembling Go literals for every sample paragraph.
package dsl

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// tokenKind classifies one lexical token of the DSL. The lexer is a manual
// rune-at-a-time scanner in the style of a bufio.Scanner with a custom
// split function, rather than a generated or reflection-driven grammar.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokString
	tokColor
	tokLBrace
	tokRBrace
	tokEquals
)

type token struct {
	kind tokenKind
	text string
	line int
}

// lexer scans DSL source one rune at a time, in the same style as a
// bufio.Scanner built on a custom rune splitter: it owns a single
// buffered reader and exposes a pull-based nextRune/peekRune pair that
// the tokenizer consumes.
type lexer struct {
	r       *bufio.Reader
	peeked  rune
	hasPeek bool
	line    int
}

func newLexer(r io.Reader) *lexer {
	return &lexer{r: bufio.NewReader(r), line: 1}
}

func (lx *lexer) nextRune() (rune, bool) {
	if lx.hasPeek {
		lx.hasPeek = false
		return lx.peeked, true
	}
	ch, _, err := lx.r.ReadRune()
	if err != nil {
		return 0, false
	}
	return ch, true
}

func (lx *lexer) peekRune() (rune, bool) {
	if !lx.hasPeek {
		ch, _, err := lx.r.ReadRune()
		if err != nil {
			return 0, false
		}
		lx.peeked = ch
		lx.hasPeek = true
	}
	return lx.peeked, true
}

// next scans and returns the next token, skipping whitespace and
// "//" line comments.
func (lx *lexer) next() (token, error) {
	for {
		ch, ok := lx.peekRune()
		if !ok {
			return token{kind: tokEOF, line: lx.line}, nil
		}
		switch {
		case ch == '\n':
			lx.nextRune()
			lx.line++
			continue
		case unicode.IsSpace(ch):
			lx.nextRune()
			continue
		case ch == '/':
			lx.nextRune()
			ch2, ok := lx.peekRune()
			if !ok || ch2 != '/' {
				return token{}, fmt.Errorf("dsl: line %d: unexpected '/'", lx.line)
			}
			for {
				c, ok := lx.nextRune()
				if !ok || c == '\n' {
					break
				}
			}
			continue
		}
		break
	}

	startLine := lx.line
	ch, _ := lx.nextRune()
	switch {
	case ch == '{':
		return token{kind: tokLBrace, text: "{", line: startLine}, nil
	case ch == '}':
		return token{kind: tokRBrace, text: "}", line: startLine}, nil
	case ch == '=':
		return token{kind: tokEquals, text: "=", line: startLine}, nil
	case ch == '"':
		return lx.scanString(startLine)
	case ch == '#':
		return lx.scanColor(startLine)
	case ch == '-' || unicode.IsDigit(ch):
		return lx.scanNumber(ch, startLine)
	case unicode.IsLetter(ch) || ch == '_':
		return lx.scanIdent(ch, startLine)
	default:
		return token{}, fmt.Errorf("dsl: line %d: unexpected character %q", startLine, ch)
	}
}

func (lx *lexer) scanString(line int) (token, error) {
	var b strings.Builder
	for {
		ch, ok := lx.nextRune()
		if !ok {
			return token{}, fmt.Errorf("dsl: line %d: unterminated string literal", line)
		}
		if ch == '\\' {
			esc, ok := lx.nextRune()
			if !ok {
				return token{}, fmt.Errorf("dsl: line %d: unterminated escape in string literal", line)
			}
			switch esc {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			default:
				b.WriteRune(esc)
			}
			continue
		}
		if ch == '"' {
			return token{kind: tokString, text: b.String(), line: line}, nil
		}
		b.WriteRune(ch)
	}
}

func (lx *lexer) scanColor(line int) (token, error) {
	var b strings.Builder
	b.WriteRune('#')
	for {
		ch, ok := lx.peekRune()
		if !ok || !isHexDigit(ch) {
			break
		}
		lx.nextRune()
		b.WriteRune(ch)
	}
	n := b.Len() - 1
	if n != 3 && n != 6 && n != 8 {
		return token{}, fmt.Errorf("dsl: line %d: color %q must have 3, 6 or 8 hex digits", line, b.String())
	}
	return token{kind: tokColor, text: b.String(), line: line}, nil
}

func isHexDigit(ch rune) bool {
	return ch >= '0' && ch <= '9' || ch >= 'a' && ch <= 'f' || ch >= 'A' && ch <= 'F'
}

func (lx *lexer) scanNumber(first rune, line int) (token, error) {
	var b strings.Builder
	b.WriteRune(first)
	for {
		ch, ok := lx.peekRune()
		if !ok || !(unicode.IsDigit(ch) || ch == '.') {
			break
		}
		lx.nextRune()
		b.WriteRune(ch)
	}
	return token{kind: tokNumber, text: b.String(), line: line}, nil
}

func (lx *lexer) scanIdent(first rune, line int) (token, error) {
	var b strings.Builder
	b.WriteRune(first)
	for {
		ch, ok := lx.peekRune()
		if !ok || !(unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' || ch == '-' || ch == ':' || ch == '/' || ch == '.') {
			break
		}
		lx.nextRune()
		b.WriteRune(ch)
	}
	return token{kind: tokIdent, text: b.String(), line: line}, nil
}

// Document is the root AST node: one paragraph's base direction and its
// body of spans, explicit breaks and inlays.
type Document struct {
	Direction string
	Items     []*Item
}

// Item is one statement inside a paragraph body.
type Item struct {
	Set   *SetStmt
	Span  *SpanStmt
	Inlay *InlayStmt
	Break *BreakStmt
}

// SetStmt assigns one paragraph-wide property (align, indent, hyphenate,
// optimize, lang).
type SetStmt struct {
	Key   string
	Value string
}

// Attr is one key=value span or inlay attribute.
type Attr struct {
	Key   string
	Value string
}

// SpanStmt is a run of literal text carrying a set of attributes.
type SpanStmt struct {
	Attrs []*Attr
	Text  StringLiteral
}

// InlayStmt inserts an atomic image/graphic into the flow.
type InlayStmt struct {
	Attrs []*Attr
}

// BreakStmt forces a line break (a must-break codepoint) at this point.
type BreakStmt struct{}

// StringLiteral is a DSL string literal with backslash escapes already
// resolved by the lexer: \n and \t become newline and tab, and a backslash
// before any other character yields that character.
type StringLiteral string

// parser is a straightforward recursive-descent parser driven by a single
// token of lookahead, reading from a lexer rather than a table-driven or
// reflection-built grammar.
type parser struct {
	lx  *lexer
	tok token
	err error
}

func newParser(r io.Reader) *parser {
	p := &parser{lx: newLexer(r)}
	p.advance()
	return p
}

func (p *parser) advance() {
	if p.err != nil {
		return
	}
	tok, err := p.lx.next()
	if err != nil {
		p.err = err
		return
	}
	p.tok = tok
}

func (p *parser) expectIdent(word string) error {
	if p.err != nil {
		return p.err
	}
	if p.tok.kind != tokIdent || p.tok.text != word {
		return fmt.Errorf("dsl: line %d: expected %q, got %q", p.tok.line, word, p.tok.text)
	}
	p.advance()
	return p.err
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	if p.err != nil {
		return token{}, p.err
	}
	if p.tok.kind != kind {
		return token{}, fmt.Errorf("dsl: line %d: expected %s, got %q", p.tok.line, what, p.tok.text)
	}
	tok := p.tok
	p.advance()
	return tok, p.err
}

// parseDocument parses the single top-level "paragraph <dir> { ... }" form.
func (p *parser) parseDocument() (*Document, error) {
	if err := p.expectIdent("paragraph"); err != nil {
		return nil, err
	}
	dirTok, err := p.expect(tokIdent, "a direction (ltr or rtl)")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokLBrace, "'{'"); err != nil {
		return nil, err
	}

	doc := &Document{Direction: dirTok.text}
	for p.err == nil && p.tok.kind != tokRBrace {
		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		doc.Items = append(doc.Items, item)
	}
	if _, err := p.expect(tokRBrace, "'}'"); err != nil {
		return nil, err
	}
	return doc, nil
}

func (p *parser) parseItem() (*Item, error) {
	if p.tok.kind != tokIdent {
		return nil, fmt.Errorf("dsl: line %d: expected a statement, got %q", p.tok.line, p.tok.text)
	}
	switch p.tok.text {
	case "set":
		stmt, err := p.parseSet()
		if err != nil {
			return nil, err
		}
		return &Item{Set: stmt}, nil
	case "span":
		stmt, err := p.parseSpan()
		if err != nil {
			return nil, err
		}
		return &Item{Span: stmt}, nil
	case "inlay":
		stmt, err := p.parseInlay()
		if err != nil {
			return nil, err
		}
		return &Item{Inlay: stmt}, nil
	case "break":
		p.advance()
		if p.err != nil {
			return nil, p.err
		}
		return &Item{Break: &BreakStmt{}}, nil
	default:
		return nil, fmt.Errorf("dsl: line %d: unrecognized statement %q", p.tok.line, p.tok.text)
	}
}

func (p *parser) parseSet() (*SetStmt, error) {
	p.advance()
	key, err := p.expect(tokIdent, "a property name")
	if err != nil {
		return nil, err
	}
	if p.err != nil {
		return nil, p.err
	}
	valTok := p.tok
	if valTok.kind != tokIdent && valTok.kind != tokNumber {
		return nil, fmt.Errorf("dsl: line %d: expected a value for 'set %s'", valTok.line, key.text)
	}
	p.advance()
	return &SetStmt{Key: key.text, Value: valTok.text}, p.err
}

func (p *parser) parseAttrs() ([]*Attr, error) {
	var attrs []*Attr
	for p.err == nil && p.tok.kind == tokIdent {
		keyTok := p.tok
		p.advance()
		if _, err := p.expect(tokEquals, "'='"); err != nil {
			return nil, err
		}
		if p.err != nil {
			return nil, p.err
		}
		valTok := p.tok
		switch valTok.kind {
		case tokString, tokNumber, tokColor, tokIdent:
			p.advance()
		default:
			return nil, fmt.Errorf("dsl: line %d: expected a value for attribute %q", valTok.line, keyTok.text)
		}
		attrs = append(attrs, &Attr{Key: keyTok.text, Value: valTok.text})
	}
	return attrs, p.err
}

func (p *parser) parseSpan() (*SpanStmt, error) {
	p.advance()
	attrs, err := p.parseAttrs()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokLBrace, "'{'"); err != nil {
		return nil, err
	}
	textTok, err := p.expect(tokString, "a string literal")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRBrace, "'}'"); err != nil {
		return nil, err
	}
	return &SpanStmt{Attrs: attrs, Text: StringLiteral(textTok.text)}, nil
}

func (p *parser) parseInlay() (*InlayStmt, error) {
	p.advance()
	attrs, err := p.parseAttrs()
	if err != nil {
		return nil, err
	}
	return &InlayStmt{Attrs: attrs}, nil
}

// Parse parses DSL content from an io.Reader.
func Parse(r io.Reader) (*Document, error) {
	p := newParser(r)
	return p.parseDocument()
}

// ParseString parses DSL content from a string.
func ParseString(input string) (*Document, error) {
	return Parse(strings.NewReader(input))
}
