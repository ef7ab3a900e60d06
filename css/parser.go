// Package css reads custom properties back from stylesheets, so a theme
// written as CSS could be reused as countdown style options.
package css

import (
	"bytes"
	"maps"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into structured rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)

	// selectors of a grouped list arrive one by one before the ruleset itself
	var pending []string

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			// End of input or error
			if parser.Err() != nil && parser.Err().Error() != "EOF" {
				p.log.Debug("CSS parse error", zap.Error(parser.Err()))
				sheet.Warnings = append(sheet.Warnings, "parse error: "+parser.Err().Error())
			}
			return sheet

		case css.BeginAtRuleGrammar:
			atRule := string(data)
			if atRule == "@media" {
				query := joinTokens(parser.Values())
				rules := p.parseBlock(parser, sheet, query)
				p.log.Debug("Parsed @media block", zap.String("query", query), zap.Int("rules", len(rules)))
				sheet.Rules = append(sheet.Rules, rules...)
				continue
			}
			p.skipAtRuleBlock(parser)
			p.log.Debug("Skipping @-rule", zap.String("rule", atRule))

		case css.AtRuleGrammar:
			// Simple @-rule without block (e.g., @import)
			atRule := string(data)
			if atRule == "@import" {
				if url := extractImportURL(parser.Values()); url != "" {
					sheet.Imports = append(sheet.Imports, url)
					p.log.Debug("Parsed @import", zap.String("url", url))
				}
				continue
			}
			p.log.Debug("Skipping @-rule", zap.String("rule", atRule))

		case css.QualifiedRuleGrammar:
			pending = append(pending, parseSelectors(data, parser.Values())...)

		case css.BeginRulesetGrammar:
			selectors := append(pending, parseSelectors(data, parser.Values())...)
			pending = nil
			sheet.Rules = append(sheet.Rules, p.parseRule(parser, selectors, ""))
		}
	}
}

// parseBlock collects rulesets until the end of enclosing @-rule.
func (p *Parser) parseBlock(parser *css.Parser, sheet *Stylesheet, media string) []Rule {
	var (
		rules   []Rule
		pending []string
	)
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return rules

		case css.BeginAtRuleGrammar:
			sheet.Warnings = append(sheet.Warnings, "nested @-rule skipped: "+string(data))
			p.skipAtRuleBlock(parser)

		case css.QualifiedRuleGrammar:
			pending = append(pending, parseSelectors(data, parser.Values())...)

		case css.BeginRulesetGrammar:
			selectors := append(pending, parseSelectors(data, parser.Values())...)
			pending = nil
			rules = append(rules, p.parseRule(parser, selectors, media))
		}
	}
}

// parseRule reads declarations until EndRulesetGrammar.
func (p *Parser) parseRule(parser *css.Parser, selectors []string, media string) Rule {
	rule := Rule{
		Selectors: selectors,
		Media:     media,
		Custom:    make(map[string]string),
	}

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return rule

		case css.CustomPropertyGrammar:
			// custom property names are case sensitive, values are kept verbatim
			rule.Custom[string(data)] = strings.TrimSpace(joinTokens(parser.Values()))
		}
	}
}

// skipAtRuleBlock consumes @-rule block including nested blocks.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// parseSelectors extracts selector strings from token data.
func parseSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	// Split by comma for grouped selectors
	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

func joinTokens(tokens []css.Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.Write(t.Data)
	}
	return strings.TrimSpace(sb.String())
}

// extractImportURL extracts the URL from @import tokens.
// Handles: @import "url"; @import url("url"); @import url(url);
func extractImportURL(tokens []css.Token) string {
	for _, t := range tokens {
		switch t.TokenType {
		case css.StringToken:
			return unquote(string(t.Data))
		case css.URLToken:
			s := strings.TrimPrefix(string(t.Data), "url(")
			s = strings.TrimSuffix(s, ")")
			return unquote(strings.TrimSpace(s))
		}
	}
	return ""
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

// Merge folds custom properties of several stylesheets for selector, later
// sheets override earlier ones. Sheets are expected in cascade order, imported
// ones before the sheet importing them.
func Merge(selector string, sheets ...*Stylesheet) map[string]string {
	res := make(map[string]string)
	for _, s := range sheets {
		maps.Copy(res, s.CustomProperties(selector))
	}
	return res
}
