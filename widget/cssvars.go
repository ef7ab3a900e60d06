package widget

import (
	"maps"
	"slices"
	"strings"
)

// CSSVars maps custom property names to their values.
type CSSVars map[string]string

// DeriveCSSVars converts present style options into custom properties. When
// nothing is present it returns nil and false so callers could skip emitting
// empty style content.
func DeriveCSSVars(o StyleOptions) (CSSVars, bool) {
	var vars CSSVars
	for _, f := range o.fields() {
		if *f.ptr == nil {
			continue
		}
		if vars == nil {
			vars = make(CSSVars)
		}
		vars[VarName(f.key)] = **f.ptr
	}
	if vars == nil {
		return nil, false
	}
	return vars, true
}

// Names returns property names in sorted order.
func (v CSSVars) Names() []string {
	return slices.Sorted(maps.Keys(v))
}

// Declarations renders "name: value;" pairs separated by single space.
func (v CSSVars) Declarations() string {
	var sb strings.Builder
	for _, name := range v.Names() {
		writeDeclaration(&sb, name, v[name])
	}
	return sb.String()
}

func writeDeclaration(sb *strings.Builder, name, value string) {
	if sb.Len() > 0 {
		sb.WriteByte(' ')
	}
	sb.WriteString(name)
	sb.WriteString(": ")
	sb.WriteString(value)
	sb.WriteByte(';')
}
