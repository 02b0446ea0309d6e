package layout

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// Declaration is a single property assignment
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// StyleRule is a qualified rule with the media query it is nested in
type StyleRule struct {
	Selectors    []Selector
	Declarations []Declaration
	Media        MediaQuery
	// Order is the rule's position in the stylesheet
	Order int
}

// PageRule is an @page rule with the media query it is nested in
type PageRule struct {
	Declarations []Declaration
	Media        MediaQuery
}

// Stylesheet is a parsed stylesheet split into style rules and @page rules
type Stylesheet struct {
	Rules []StyleRule
	Pages []PageRule
	// Skipped counts selectors that use syntax outside the supported subset
	Skipped int
}

// ParseStylesheet parses CSS text
func ParseStylesheet(text string) (*Stylesheet, error) {
	parsed, err := parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stylesheet: %w", err)
	}

	sheet := &Stylesheet{}
	sheet.collect(parsed.Rules, MediaAll())
	return sheet, nil
}

// Merge appends the rules of other after the rules of s
func (s *Stylesheet) Merge(other *Stylesheet) {
	offset := len(s.Rules)
	for _, r := range other.Rules {
		r.Order += offset
		s.Rules = append(s.Rules, r)
	}
	s.Pages = append(s.Pages, other.Pages...)
	s.Skipped += other.Skipped
}

// RulesFor returns the style rules that apply on the medium
func (s *Stylesheet) RulesFor(env MediaEnv) []StyleRule {
	var out []StyleRule
	for _, r := range s.Rules {
		if r.Media.Matches(env) {
			out = append(out, r)
		}
	}
	return out
}

// PageDeclarations returns the @page declarations that apply on the medium, in source order
func (s *Stylesheet) PageDeclarations(env MediaEnv) []Declaration {
	var out []Declaration
	for _, p := range s.Pages {
		if p.Media.Matches(env) {
			out = append(out, p.Declarations...)
		}
	}
	return out
}

func (s *Stylesheet) collect(rules []*css.Rule, media MediaQuery) {
	for _, rule := range rules {
		switch {
		case rule.Kind == css.QualifiedRule:
			s.addStyleRule(rule, media)
		case rule.Name == "@media":
			s.collect(rule.Rules, media.And(ParseMediaQuery(rule.Prelude)))
		case rule.Name == "@page":
			s.Pages = append(s.Pages, PageRule{
				Declarations: convertDeclarations(rule.Declarations),
				Media:        media,
			})
		}
	}
}

func (s *Stylesheet) addStyleRule(rule *css.Rule, media MediaQuery) {
	var selectors []Selector
	for _, text := range rule.Selectors {
		sel, ok := ParseSelector(text)
		if !ok {
			s.Skipped++
			continue
		}
		selectors = append(selectors, sel)
	}
	if len(selectors) == 0 {
		return
	}
	s.Rules = append(s.Rules, StyleRule{
		Selectors:    selectors,
		Declarations: convertDeclarations(rule.Declarations),
		Media:        media,
		Order:        len(s.Rules),
	})
}

// ParseInlineStyle parses the contents of a style attribute
func ParseInlineStyle(text string) ([]Declaration, error) {
	text = strings.TrimSpace(text)
	if text != "" && !strings.HasSuffix(text, ";") {
		// the parser only closes a declaration on ';' or '}'
		text += ";"
	}
	decls, err := parser.ParseDeclarations(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse inline style: %w", err)
	}
	return convertDeclarations(decls), nil
}

func convertDeclarations(decls []*css.Declaration) []Declaration {
	out := make([]Declaration, 0, len(decls))
	for _, d := range decls {
		if d.Property == "" {
			continue
		}
		out = append(out, Declaration{
			Property:  strings.ToLower(d.Property),
			Value:     collapseSpace(d.Value),
			Important: d.Important,
		})
	}
	return out
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
