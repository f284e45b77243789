package decl

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseType parses the canonical textual form of a type descriptor.
//
// Supported forms:
//
//	Int, String, Bool, ...   primitives
//	Item, Void               object references
//	T?, Optional<T>          optionals
//	[T], Array<T>            arrays
//	Name<T>                  single-argument generics
func ParseType(text string) (TypeDescriptor, error) {
	p := &typeParser{src: text}
	p.skipSpace()
	t, err := p.parseType()
	if err != nil {
		return nil, fmt.Errorf("parse type %q: %w", text, err)
	}
	p.skipSpace()
	if !p.eof() {
		return nil, fmt.Errorf("parse type %q: unexpected %q at offset %d", text, p.src[p.pos:], p.pos)
	}
	return t, nil
}

// MustParseType is like ParseType but panics on error. Intended for tests
// and static tables.
func MustParseType(text string) TypeDescriptor {
	t, err := ParseType(text)
	if err != nil {
		panic(err)
	}
	return t
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) eof() bool { return p.pos >= len(p.src) }

func (p *typeParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *typeParser) skipSpace() {
	for !p.eof() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *typeParser) expect(c byte) error {
	p.skipSpace()
	if p.peek() != c {
		if p.eof() {
			return fmt.Errorf("expected %q, got end of input", c)
		}
		return fmt.Errorf("expected %q at offset %d", c, p.pos)
	}
	p.pos++
	return nil
}

func (p *typeParser) parseType() (TypeDescriptor, error) {
	t, err := p.parseBase()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if p.peek() != '?' {
			return t, nil
		}
		p.pos++
		t = Optional(t)
	}
}

func (p *typeParser) parseBase() (TypeDescriptor, error) {
	p.skipSpace()
	if p.peek() == '[' {
		p.pos++
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.peek() == ':' {
			return nil, fmt.Errorf("dictionary types are not supported")
		}
		if err := p.expect(']'); err != nil {
			return nil, err
		}
		return Array(elem), nil
	}

	name := p.parseIdent()
	if name == "" {
		if p.eof() {
			return nil, fmt.Errorf("expected type name, got end of input")
		}
		return nil, fmt.Errorf("expected type name at offset %d", p.pos)
	}

	p.skipSpace()
	if p.peek() != '<' {
		if k, ok := LookupPrimitive(name); ok {
			return Primitive(k), nil
		}
		return Object(name), nil
	}

	p.pos++
	arg, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.peek() == ',' {
		return nil, fmt.Errorf("generic %s: only one type argument is supported", name)
	}
	if err := p.expect('>'); err != nil {
		return nil, err
	}

	switch name {
	case "Optional":
		return Optional(arg), nil
	case "Array":
		return Array(arg), nil
	default:
		return Generic(name, arg), nil
	}
}

func (p *typeParser) parseIdent() string {
	start := p.pos
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if r == '_' || r == '.' || unicode.IsLetter(r) || (p.pos > start && unicode.IsDigit(r)) {
			p.pos += size
			continue
		}
		break
	}
	return strings.Trim(p.src[start:p.pos], ".")
}
