// Copyright Altrinid, 2026. All rights reserved.

package model

import (
	"fmt"
	"strconv"
	"strings"
)

// paramKind discriminates the value forms a STEP parameter can take.
type paramKind int

const (
	kindNull   paramKind = iota // $ (unset) or * (derived)
	kindString                  // 'text'
	kindRef                     // #12
	kindEnum                    // .STANDARD.
	kindNumber                  // 3.14, -2, 1.0E-5
	kindList                    // (a, b, c)
	kindTyped                   // select value wrapped in its type: IFCLABEL('x')
)

// param is one parsed parameter of an entity instance.
type param struct {
	kind paramKind
	text string  // decoded string, enum token, number literal, or wrapper name
	ref  int     // target id for kindRef
	list []param // aggregate members; single wrapped value for kindTyped
}

// scalar returns the parameter's value as a string when it has one. Typed
// wrappers unwrap to their inner value; refs, aggregates, and unset
// parameters have no scalar form.
func (p param) scalar() (string, bool) {
	switch p.kind {
	case kindString, kindEnum, kindNumber:
		return p.text, true
	case kindTyped:
		if len(p.list) == 1 {
			return p.list[0].scalar()
		}
	}
	return "", false
}

// entity is one instance statement from the DATA section, e.g.
// #12=IFCWALL('2O2Fr$t4X7Zf8NOew3FLOH',#5,'Wall-01',$,$,#26,#27,'T1',.STANDARD.);
type entity struct {
	id     int
	name   string // entity class as written in the file, upper case
	params []param
}

func (e *entity) scalarAt(i int) (string, bool) {
	if i >= len(e.params) {
		return "", false
	}
	return e.params[i].scalar()
}

func (e *entity) refAt(i int) (int, bool) {
	if i < len(e.params) && e.params[i].kind == kindRef {
		return e.params[i].ref, true
	}
	return 0, false
}

func (e *entity) listAt(i int) []param {
	if i < len(e.params) && e.params[i].kind == kindList {
		return e.params[i].list
	}
	return nil
}

// globalID returns the instance's GlobalId when the first parameter is a
// compressed IFC GUID. Every rooted IFC entity stores its GUID there; the
// shape check (22 characters of the IFC base-64 alphabet) keeps instances
// like IfcPropertySingleValue, whose first parameter is an ordinary name,
// out of the rooted set.
func globalID(e *entity) (string, bool) {
	if len(e.params) > 0 && e.params[0].kind == kindString && isGUID(e.params[0].text) {
		return e.params[0].text, true
	}
	return "", false
}

func isGUID(s string) bool {
	if len(s) != 22 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isDigit(c) && c != '_' && c != '$' &&
			!(c >= 'A' && c <= 'Z') && !(c >= 'a' && c <= 'z') {
			return false
		}
	}
	return true
}

// splitStatements cuts raw file content into ';'-terminated statements,
// honoring string literals ('' escapes a quote) and /* */ comments.
// Newlines inside a statement collapse to single spaces.
func splitStatements(data string) []string {
	var stmts []string
	var b strings.Builder
	inString := false
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			b.WriteByte(c)
			if c == '\'' {
				if i+1 < len(data) && data[i+1] == '\'' {
					b.WriteByte('\'')
					i++
				} else {
					inString = false
				}
			}
			continue
		}
		switch c {
		case '\'':
			inString = true
			b.WriteByte(c)
		case '/':
			if i+1 < len(data) && data[i+1] == '*' {
				end := strings.Index(data[i+2:], "*/")
				if end < 0 {
					i = len(data)
				} else {
					i += 2 + end + 1
				}
				continue
			}
			b.WriteByte(c)
		case ';':
			stmts = append(stmts, strings.TrimSpace(b.String()))
			b.Reset()
		case '\n', '\r', '\t':
			b.WriteByte(' ')
		default:
			b.WriteByte(c)
		}
	}
	return stmts
}

// parseInstance parses one "#id=NAME(params)" statement.
func parseInstance(stmt string) (*entity, error) {
	eq := strings.IndexByte(stmt, '=')
	if eq < 0 {
		return nil, fmt.Errorf("missing '=' in instance statement")
	}
	idPart := strings.TrimSpace(stmt[:eq])
	if !strings.HasPrefix(idPart, "#") {
		return nil, fmt.Errorf("instance id %q must start with '#'", idPart)
	}
	id, err := strconv.Atoi(idPart[1:])
	if err != nil {
		return nil, fmt.Errorf("invalid instance id %q: %w", idPart, err)
	}

	rest := strings.TrimSpace(stmt[eq+1:])
	open := strings.IndexByte(rest, '(')
	if open < 0 {
		return nil, fmt.Errorf("missing parameter list")
	}
	name := strings.TrimSpace(rest[:open])
	if name == "" {
		// Complex (multi-leaf) instances only appear with express
		// subtype mappings this reader does not need.
		return nil, fmt.Errorf("complex instances are not supported")
	}

	p := &parser{s: rest[open:]}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.s) {
		return nil, fmt.Errorf("trailing content after parameter list")
	}
	return &entity{id: id, name: strings.ToUpper(name), params: v.list}, nil
}

// parser is a recursive-descent reader over one parameter list.
type parser struct {
	s   string
	pos int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.s) && p.s[p.pos] == ' ' {
		p.pos++
	}
}

func (p *parser) parseValue() (param, error) {
	p.skipSpace()
	if p.pos >= len(p.s) {
		return param{}, fmt.Errorf("unexpected end of parameters")
	}
	c := p.s[p.pos]
	switch {
	case c == '$' || c == '*':
		p.pos++
		return param{kind: kindNull}, nil
	case c == '#':
		p.pos++
		start := p.pos
		for p.pos < len(p.s) && isDigit(p.s[p.pos]) {
			p.pos++
		}
		id, err := strconv.Atoi(p.s[start:p.pos])
		if err != nil {
			return param{}, fmt.Errorf("invalid instance reference: %w", err)
		}
		return param{kind: kindRef, ref: id}, nil
	case c == '\'':
		s, err := p.parseString()
		if err != nil {
			return param{}, err
		}
		return param{kind: kindString, text: s}, nil
	case c == '.':
		p.pos++
		start := p.pos
		for p.pos < len(p.s) && p.s[p.pos] != '.' {
			p.pos++
		}
		if p.pos >= len(p.s) {
			return param{}, fmt.Errorf("unterminated enumeration value")
		}
		text := p.s[start:p.pos]
		p.pos++
		return param{kind: kindEnum, text: text}, nil
	case c == '(':
		return p.parseAggregate()
	case isDigit(c) || c == '-' || c == '+':
		start := p.pos
		p.pos++
		for p.pos < len(p.s) && isNumberByte(p.s[p.pos]) {
			p.pos++
		}
		return param{kind: kindNumber, text: p.s[start:p.pos]}, nil
	default:
		return p.parseTyped()
	}
}

func (p *parser) parseAggregate() (param, error) {
	p.pos++ // consume '('
	p.skipSpace()
	if p.pos < len(p.s) && p.s[p.pos] == ')' {
		p.pos++
		return param{kind: kindList}, nil
	}
	var items []param
	for {
		v, err := p.parseValue()
		if err != nil {
			return param{}, err
		}
		items = append(items, v)
		p.skipSpace()
		if p.pos >= len(p.s) {
			return param{}, fmt.Errorf("unterminated aggregate")
		}
		switch p.s[p.pos] {
		case ',':
			p.pos++
		case ')':
			p.pos++
			return param{kind: kindList, list: items}, nil
		default:
			return param{}, fmt.Errorf("unexpected %q in aggregate", p.s[p.pos])
		}
	}
}

// parseTyped reads a select value wrapped in its type, e.g. IFCLABEL('x').
func (p *parser) parseTyped() (param, error) {
	start := p.pos
	for p.pos < len(p.s) && isIdentByte(p.s[p.pos]) {
		p.pos++
	}
	if start == p.pos {
		return param{}, fmt.Errorf("unexpected character %q", p.s[p.pos])
	}
	name := p.s[start:p.pos]
	p.skipSpace()
	if p.pos >= len(p.s) || p.s[p.pos] != '(' {
		return param{}, fmt.Errorf("expected value after type %s", name)
	}
	p.pos++
	inner, err := p.parseValue()
	if err != nil {
		return param{}, err
	}
	p.skipSpace()
	if p.pos >= len(p.s) || p.s[p.pos] != ')' {
		return param{}, fmt.Errorf("unterminated typed value %s", name)
	}
	p.pos++
	return param{kind: kindTyped, text: strings.ToUpper(name), list: []param{inner}}, nil
}

// parseString reads a quoted literal, decoding doubled quotes. STEP
// directive escapes (\X\ and friends) pass through untouched.
func (p *parser) parseString() (string, error) {
	p.pos++ // consume the opening quote
	var b strings.Builder
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		if c == '\'' {
			if p.pos+1 < len(p.s) && p.s[p.pos+1] == '\'' {
				b.WriteByte('\'')
				p.pos += 2
				continue
			}
			p.pos++
			return b.String(), nil
		}
		b.WriteByte(c)
		p.pos++
	}
	return "", fmt.Errorf("unterminated string literal")
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNumberByte(c byte) bool {
	return isDigit(c) || c == '+' || c == '-' || c == '.' || c == 'E' || c == 'e'
}

func isIdentByte(c byte) bool {
	return c == '_' || isDigit(c) ||
		(c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
