package css

import (
	"slices"
	"strings"
)

// Rule represents a single CSS ruleset.
type Rule struct {
	Selectors []string          // Grouped selectors, trimmed
	Media     string            // Enclosing @media query or empty at top level
	Custom    map[string]string // Custom properties (--name) -> raw value
}

// Matches returns true if one of the rule selectors is exactly selector.
// Whitespace inside selectors is normalized before comparison.
func (r Rule) Matches(selector string) bool {
	selector = normalizeSelector(selector)
	return slices.ContainsFunc(r.Selectors, func(s string) bool {
		return normalizeSelector(s) == selector
	})
}

// Stylesheet represents a parsed CSS stylesheet.
type Stylesheet struct {
	Rules    []Rule
	Imports  []string // Referenced stylesheets in source order, unresolved
	Warnings []string
}

// CustomProperties collects custom properties declared by top level rules
// matching selector. Later declarations win, as in the cascade.
func (s *Stylesheet) CustomProperties(selector string) map[string]string {
	res := make(map[string]string)
	for _, r := range s.Rules {
		if r.Media != "" || !r.Matches(selector) {
			continue
		}
		for name, value := range r.Custom {
			res[name] = value
		}
	}
	return res
}

// Selectors lists distinct top level selectors declaring any custom property.
func (s *Stylesheet) Selectors() []string {
	var res []string
	for _, r := range s.Rules {
		if r.Media != "" || len(r.Custom) == 0 {
			continue
		}
		for _, sel := range r.Selectors {
			if !slices.Contains(res, sel) {
				res = append(res, sel)
			}
		}
	}
	return res
}

func normalizeSelector(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
