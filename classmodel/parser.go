package classmodel

import (
	"strings"
	"text/scanner"

	"github.com/pkg/errors"

	"github.com/cottand/jgenerics/types"
)

// parser reads Java-style type expressions:
//
//	type  = name [ "<" [ arg { "," arg } ] ">" ] { "[" "]" }
//	arg   = "?" [ "extends" type { "&" type } | "super" type ] | type
//	param = ident [ "extends" type { "&" type } ]
//
// where name is a dotted identifier.
type parser struct {
	s        scanner.Scanner
	tok      rune
	registry *Registry
	scope    Scope
	scanErr  error
}

func newParser(r *Registry, src string, scope Scope) *parser {
	p := &parser{registry: r, scope: scope}
	p.s.Init(strings.NewReader(src))
	p.s.Mode = scanner.ScanIdents
	p.s.Error = func(s *scanner.Scanner, msg string) {
		if p.scanErr == nil {
			p.scanErr = errors.Errorf("column %d: %s", s.Pos().Column, msg)
		}
	}
	p.next()
	return p
}

// parseWhole runs parse and checks that it consumed all the input
func parseWhole[T any](p *parser, parse func() (T, error)) (T, error) {
	ret, err := parse()
	if err == nil && p.tok != scanner.EOF {
		err = p.errorf("unexpected %s", p.describe())
	}
	if err == nil {
		err = p.scanErr
	}
	return ret, err
}

func (p *parser) next() {
	p.tok = p.s.Scan()
}

func (p *parser) errorf(format string, args ...any) error {
	return errors.Errorf("column %d: "+format, append([]any{p.s.Position.Column}, args...)...)
}

func (p *parser) describe() string {
	if p.tok == scanner.EOF {
		return "end of input"
	}
	return "'" + p.s.TokenText() + "'"
}

func (p *parser) expect(tok rune) error {
	if p.tok != tok {
		return p.errorf("expected '%c', found %s", tok, p.describe())
	}
	p.next()
	return nil
}

func (p *parser) isKeyword(word string) bool {
	return p.tok == scanner.Ident && p.s.TokenText() == word
}

func (p *parser) parseName() (string, error) {
	if p.tok != scanner.Ident {
		return "", p.errorf("expected a type name, found %s", p.describe())
	}
	sb := &strings.Builder{}
	sb.WriteString(p.s.TokenText())
	p.next()
	for p.tok == '.' {
		p.next()
		if p.tok != scanner.Ident {
			return "", p.errorf("expected an identifier after '.', found %s", p.describe())
		}
		sb.WriteString(".")
		sb.WriteString(p.s.TokenText())
		p.next()
	}
	return sb.String(), nil
}

func (p *parser) parseType() (*types.TypeRef, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	var t *types.TypeRef
	if placeholder, ok := p.scope[name]; ok {
		if p.tok == '<' {
			return nil, p.errorf("type parameter %s cannot have type arguments", name)
		}
		t = placeholder
	} else {
		decl, ok := p.registry.Lookup(name)
		if !ok {
			return nil, p.errorf("unknown type %s", name)
		}
		t, err = p.parseArgs(decl)
		if err != nil {
			return nil, err
		}
	}
	for p.tok == '[' {
		p.next()
		if err := p.expect(']'); err != nil {
			return nil, err
		}
		t = types.ArrayOf(t)
	}
	return t, nil
}

// parseArgs parses the optional argument list following a use of decl
func (p *parser) parseArgs(decl *types.TypeRef) (*types.TypeRef, error) {
	if p.tok != '<' {
		if decl.IsGeneric() {
			return types.Raw(decl), nil
		}
		return decl, nil
	}
	p.next()
	var args []*types.Slot
	for p.tok != '>' {
		arg, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.tok != ',' {
			break
		}
		p.next()
	}
	if err := p.expect('>'); err != nil {
		return nil, err
	}
	if declared := len(decl.Generics()); len(args) > 0 && len(args) != declared {
		return nil, p.errorf("%s expects %d type arguments, found %d", decl.Name(), declared, len(args))
	}
	return types.Parameterized(decl, args...), nil
}

func (p *parser) parseArg() (*types.Slot, error) {
	if p.tok != '?' {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return types.Concrete(t), nil
	}
	p.next()
	switch {
	case p.isKeyword("extends"):
		p.next()
		bounds, err := p.parseBounds()
		if err != nil {
			return nil, err
		}
		return types.WildcardExtends(bounds...), nil
	case p.isKeyword("super"):
		p.next()
		lower, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return types.WildcardSuper(lower), nil
	}
	return types.Wildcard(), nil
}

func (p *parser) parseBounds() ([]*types.TypeRef, error) {
	var bounds []*types.TypeRef
	for {
		b, err := p.parseType()
		if err != nil {
			return nil, err
		}
		bounds = append(bounds, b)
		if p.tok != '&' {
			return bounds, nil
		}
		p.next()
	}
}

func (p *parser) parseParam() (*types.Slot, error) {
	if p.tok != scanner.Ident {
		return nil, p.errorf("expected a type parameter name, found %s", p.describe())
	}
	name := p.s.TokenText()
	p.next()
	if !p.isKeyword("extends") {
		return types.PlaceholderOf(name), nil
	}
	p.next()
	bounds, err := p.parseBounds()
	if err != nil {
		return nil, err
	}
	return types.PlaceholderOf(name, bounds...), nil
}

// paramName returns the name a type parameter declaration introduces
func paramName(decl string) (string, error) {
	fields := strings.Fields(decl)
	if len(fields) == 0 {
		return "", errors.New("empty type parameter declaration")
	}
	return fields[0], nil
}
