package widget

import (
	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// DefaultSelector scopes global theme to the whole document.
const DefaultSelector = ":root"

// StyleRule renders single CSS rule assigning custom properties derived from
// style options at the selector. It reports false when no option is present
// and nothing should be emitted.
func StyleRule(o StyleOptions, selector string) (string, bool) {
	vars, ok := DeriveCSSVars(o)
	if !ok {
		return "", false
	}
	if selector == "" {
		selector = DefaultSelector
	}
	return selector + " { " + vars.Declarations() + " }", true
}

// Style wraps StyleRule into <style> element.
func (b *Builder) Style(o StyleOptions, selector string) (*etree.Element, bool) {
	rule, ok := StyleRule(o, selector)
	if !ok {
		b.log.Debug("No style options present, style block skipped")
		return nil, false
	}
	el := etree.NewElement("style")
	el.SetText(rule)
	b.log.Debug("Style block assembled", zap.String("rule", rule))
	return el, true
}
