package types

import (
	"strings"
)

// showCtx renders types. When bounded is set, placeholders are printed with
// their bounds the first time their name is met; bounds are allowed to refer
// back to the placeholder (T extends Comparable<? super T>), so later
// occurrences print the bare name.
type showCtx struct {
	bounded bool
	visited map[string]bool
}

func (t *TypeRef) String() string {
	sb := &strings.Builder{}
	(&showCtx{}).writeType(sb, t)
	return sb.String()
}

func (s *Slot) String() string {
	sb := &strings.Builder{}
	(&showCtx{}).writeSlot(sb, s)
	return sb.String()
}

// ShowBounded renders t with the bounds of every placeholder it mentions
func ShowBounded(t *TypeRef) string {
	sb := &strings.Builder{}
	(&showCtx{bounded: true, visited: map[string]bool{}}).writeType(sb, t)
	return sb.String()
}

// Describe renders the declaration of t, including its declared parameters and supertypes
func Describe(t *TypeRef) string {
	d := t.Declaration()
	sb := &strings.Builder{}
	switch {
	case d.union:
		sb.WriteString("union ")
	case d.iface:
		sb.WriteString("interface ")
	default:
		sb.WriteString("class ")
	}
	ctx := &showCtx{bounded: true, visited: map[string]bool{}}
	ctx.writeType(sb, d)

	plain := &showCtx{}
	ifaces := d.interfaces
	if d.iface {
		if len(ifaces) > 0 {
			sb.WriteString(" extends ")
			plain.writeList(sb, ifaces)
		}
		return sb.String()
	}
	if super := d.Superclass(); super != nil && !super.IsRoot() {
		sb.WriteString(" extends ")
		plain.writeType(sb, super)
	}
	if len(ifaces) > 0 {
		sb.WriteString(" implements ")
		plain.writeList(sb, ifaces)
	}
	return sb.String()
}

func (c *showCtx) writeList(sb *strings.Builder, ts []*TypeRef) {
	for i, t := range ts {
		if i > 0 {
			sb.WriteString(", ")
		}
		c.writeType(sb, t)
	}
}

func (c *showCtx) writeType(sb *strings.Builder, t *TypeRef) {
	if t == nil {
		sb.WriteString("<nil>")
		return
	}
	switch t.kind {
	case Array:
		c.writeType(sb, t.elem)
		sb.WriteString("[]")
	case Placeholder:
		c.writePlaceholder(sb, t.name, t.bounds)
	default:
		sb.WriteString(t.name)
		if t.generics == nil {
			return
		}
		sb.WriteString("<")
		for i, s := range t.generics {
			if i > 0 {
				sb.WriteString(", ")
			}
			c.writeSlot(sb, s)
		}
		sb.WriteString(">")
	}
}

func (c *showCtx) writePlaceholder(sb *strings.Builder, name string, bounds []*TypeRef) {
	sb.WriteString(name)
	if !c.bounded || len(bounds) == 0 || c.visited[name] || len(bounds) == 1 && bounds[0].IsRoot() {
		return
	}
	c.visited[name] = true
	sb.WriteString(" extends ")
	c.writeBounds(sb, bounds)
}

func (c *showCtx) writeBounds(sb *strings.Builder, bounds []*TypeRef) {
	for i, b := range bounds {
		if i > 0 {
			sb.WriteString(" & ")
		}
		c.writeType(sb, b)
	}
}

func (c *showCtx) writeSlot(sb *strings.Builder, s *Slot) {
	switch s.kind {
	case PlaceholderSlot:
		c.writePlaceholder(sb, s.name, s.upper)
	case WildcardSlot:
		sb.WriteString("?")
		if s.lower != nil {
			sb.WriteString(" super ")
			c.writeType(sb, s.lower)
		} else if len(s.upper) > 0 {
			sb.WriteString(" extends ")
			c.writeBounds(sb, s.upper)
		}
	default:
		c.writeType(sb, s.typ)
	}
}
