package layout

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/briefing/backend/internal/domain/document"
	"github.com/briefing/backend/internal/domain/printing"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultViewportWidth is the SCREEN viewport width in CSS px
const DefaultViewportWidth = 1280

// inherited lists the properties a box takes from its parent when unset
var inherited = []string{
	"color",
	"font-family",
	"font-size",
	"font-style",
	"font-weight",
	"letter-spacing",
	"line-height",
	"text-align",
	"text-transform",
	"visibility",
	"print-color-adjust",
	"-webkit-print-color-adjust",
}

// hiddenByDefault are elements that never generate a box unless an author rule says so
var hiddenByDefault = map[atom.Atom]bool{
	atom.Head:     true,
	atom.Script:   true,
	atom.Style:    true,
	atom.Title:    true,
	atom.Meta:     true,
	atom.Link:     true,
	atom.Template: true,
	atom.Noscript: true,
}

// Engine lays out documents for a medium
type Engine struct {
	viewportWidth float64
}

// Option configures an Engine
type Option func(*Engine)

// WithViewportWidth sets the SCREEN viewport width in CSS px
func WithViewportWidth(px float64) Option {
	return func(e *Engine) {
		if px > 0 {
			e.viewportWidth = px
		}
	}
}

// NewEngine creates a layout engine
func NewEngine(opts ...Option) *Engine {
	e := &Engine{viewportWidth: DefaultViewportWidth}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Layout evaluates the document for the medium and returns its visual tree
func (e *Engine) Layout(doc []byte, mode document.RenderMode) (*VisualTree, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("invalid render mode %q", mode)
	}

	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	sheet, err := collectStylesheets(root)
	if err != nil {
		return nil, err
	}

	tree := &VisualTree{Mode: mode}
	env := MediaEnv{Mode: mode, Width: e.viewportWidth}

	if mode == document.RenderModePrint {
		reference := printing.ReferenceGeometry()
		refWidth, _ := reference.ContentBox()
		geometry, err := resolvePage(sheet.PageDeclarations(MediaEnv{Mode: mode, Width: refWidth * pxPerMM}))
		if err != nil {
			return nil, err
		}
		tree.Geometry = &geometry
		contentWidth, _ := geometry.ContentBox()
		env.Width = contentWidth * pxPerMM
	}

	b := &builder{
		mode:  mode,
		rules: sheet.RulesFor(env),
	}
	for n := root.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode {
			box, err := b.build(n, nil, nil)
			if err != nil {
				return nil, err
			}
			tree.Root = box
			break
		}
	}
	if tree.Root == nil {
		tree.Root = &Box{Tag: "html", Attrs: map[string]string{}, Style: map[string]string{}}
	}
	return tree, nil
}

// collectStylesheets parses every <style> element in document order
func collectStylesheets(root *html.Node) (*Stylesheet, error) {
	sheet := &Stylesheet{}
	var walk func(*html.Node) error
	walk = func(n *html.Node) error {
		if n.Type == html.ElementNode && n.DataAtom == atom.Style {
			var text strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					text.WriteString(c.Data)
				}
			}
			parsed, err := ParseStylesheet(text.String())
			if err != nil {
				return err
			}
			sheet.Merge(parsed)
			return nil
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root); err != nil {
		return nil, err
	}
	return sheet, nil
}

type builder struct {
	mode  document.RenderMode
	rules []StyleRule
}

// build returns the box of n, or nil when n generates no box
func (b *builder) build(n *html.Node, parent *element, parentStyle map[string]string) (*Box, error) {
	el := &element{tag: strings.ToLower(n.Data), parent: parent}
	attrs := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		attrs[a.Key] = a.Val
		switch a.Key {
		case "id":
			el.id = a.Val
		case "class":
			el.classes = strings.Fields(a.Val)
		}
	}

	var inline []Declaration
	if style, ok := attrs["style"]; ok {
		decls, err := ParseInlineStyle(style)
		if err != nil {
			return nil, err
		}
		inline = decls
	}

	computed := b.cascade(el, inline)
	if _, ok := computed["display"]; !ok {
		_, hidden := attrs["hidden"]
		if hiddenByDefault[n.DataAtom] || hidden {
			computed["display"] = "none"
		}
	}
	if computed["display"] == "none" {
		return nil, nil
	}
	inherit(computed, parentStyle)

	box := &Box{
		Tag:     el.tag,
		ID:      el.id,
		Classes: el.classes,
		Attrs:   attrs,
		Style:   b.adjust(computed),
	}

	var text []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if t := collapseSpace(c.Data); t != "" {
				text = append(text, t)
			}
		case html.ElementNode:
			child, err := b.build(c, el, computed)
			if err != nil {
				return nil, err
			}
			if child != nil {
				box.Children = append(box.Children, child)
			}
		}
	}
	box.Text = strings.Join(text, " ")

	return box, nil
}

type candidate struct {
	value       string
	important   bool
	inline      bool
	specificity Specificity
	order       int
}

func (c candidate) beats(other candidate) bool {
	if c.important != other.important {
		return c.important
	}
	if c.inline != other.inline {
		return c.inline
	}
	if c.specificity != other.specificity {
		return other.specificity.Less(c.specificity)
	}
	return c.order >= other.order
}

// cascade computes the declared values for el
func (b *builder) cascade(el *element, inline []Declaration) map[string]string {
	winners := make(map[string]candidate)
	order := 0
	offer := func(d Declaration, spec Specificity, isInline bool) {
		c := candidate{
			value:       d.Value,
			important:   d.Important,
			inline:      isInline,
			specificity: spec,
			order:       order,
		}
		order++
		if current, ok := winners[d.Property]; !ok || c.beats(current) {
			winners[d.Property] = c
		}
	}

	for _, rule := range b.rules {
		best, matched := Specificity{}, false
		for _, sel := range rule.Selectors {
			if sel.matches(el) && (!matched || best.Less(sel.Specificity)) {
				best, matched = sel.Specificity, true
			}
		}
		if !matched {
			continue
		}
		for _, d := range rule.Declarations {
			offer(d, best, false)
		}
	}
	for _, d := range inline {
		offer(d, Specificity{}, true)
	}

	style := make(map[string]string, len(winners))
	for property, c := range winners {
		style[property] = c.value
	}
	return style
}

func inherit(style, parent map[string]string) {
	for property, value := range style {
		if value == "inherit" {
			if pv, ok := parent[property]; ok {
				style[property] = pv
			} else {
				delete(style, property)
			}
		}
	}
	for _, property := range inherited {
		if _, ok := style[property]; ok {
			continue
		}
		if pv, ok := parent[property]; ok {
			style[property] = pv
		}
	}
}

// adjust applies device behavior to a computed style. A print device saves
// ink by dropping backgrounds and printing text black unless the box forces
// exact color reproduction.
func (b *builder) adjust(computed map[string]string) map[string]string {
	used := make(map[string]string, len(computed))
	for k, v := range computed {
		used[k] = v
	}
	if b.mode != document.RenderModePrint || forcesExactColor(used) {
		return used
	}
	delete(used, "background")
	delete(used, "background-color")
	delete(used, "background-image")
	if _, ok := used["color"]; ok {
		used["color"] = "#000000"
	}
	return used
}

func forcesExactColor(style map[string]string) bool {
	return style["print-color-adjust"] == "exact" || style["-webkit-print-color-adjust"] == "exact"
}
