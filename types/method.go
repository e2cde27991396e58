package types

import (
	"strings"
)

// Method is the generic signature of a method declared on Owner
type Method struct {
	Name       string
	Owner      *TypeRef
	TypeParams []*Slot
	Params     []*TypeRef
	Return     *TypeRef
}

func (m *Method) String() string {
	sb := &strings.Builder{}
	ctx := &showCtx{bounded: true, visited: map[string]bool{}}
	if len(m.TypeParams) > 0 {
		sb.WriteString("<")
		for i, p := range m.TypeParams {
			if i > 0 {
				sb.WriteString(", ")
			}
			ctx.writeSlot(sb, p)
		}
		sb.WriteString("> ")
	}
	plain := &showCtx{}
	if m.Return != nil {
		plain.writeType(sb, m.Return)
	} else {
		sb.WriteString("void")
	}
	sb.WriteString(" ")
	if m.Owner != nil {
		sb.WriteString(m.Owner.Declaration().Name())
		sb.WriteString(".")
	}
	sb.WriteString(m.Name)
	sb.WriteString("(")
	plain.writeList(sb, m.Params)
	sb.WriteString(")")
	return sb.String()
}
