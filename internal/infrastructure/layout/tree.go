package layout

import (
	"slices"
	"strings"

	"github.com/briefing/backend/internal/domain/document"
	"github.com/briefing/backend/internal/domain/printing"
)

const (
	sectionAttr  = "data-section"
	titleAttr    = "data-title"
	screenOnly   = "screen-only"
	toolbarClass = "toolbar"
)

// Box is an element that generates a box on the medium
type Box struct {
	Tag     string
	ID      string
	Classes []string
	Attrs   map[string]string
	// Style is the computed style after cascade, inheritance and device adjustments
	Style map[string]string
	// Text is the element's own text, whitespace collapsed
	Text     string
	Children []*Box
}

// HasClass reports whether the box carries the class
func (b *Box) HasClass(class string) bool {
	return slices.Contains(b.Classes, class)
}

// Attr returns an attribute value
func (b *Box) Attr(name string) (string, bool) {
	v, ok := b.Attrs[name]
	return v, ok
}

// Get returns a computed style property, empty when unset
func (b *Box) Get(property string) string {
	return b.Style[property]
}

// TextContent returns the text of the box and its descendants, whitespace collapsed
func (b *Box) TextContent() string {
	var parts []string
	b.Walk(func(box *Box) bool {
		if box.Text != "" {
			parts = append(parts, box.Text)
		}
		return true
	})
	return strings.Join(parts, " ")
}

// Walk visits the box and its descendants depth-first in document order.
// Returning false from fn skips the visited box's children.
func (b *Box) Walk(fn func(*Box) bool) {
	if !fn(b) {
		return
	}
	for _, child := range b.Children {
		child.Walk(fn)
	}
}

// VisualTree is the box tree a medium displays
type VisualTree struct {
	Mode document.RenderMode
	Root *Box
	// Geometry is the sheet of a PRINT tree; nil on SCREEN
	Geometry *printing.PageGeometry
}

// Find returns every box matching fn, in document order
func (t *VisualTree) Find(fn func(*Box) bool) []*Box {
	var out []*Box
	if t.Root == nil {
		return out
	}
	t.Root.Walk(func(b *Box) bool {
		if fn(b) {
			out = append(out, b)
		}
		return true
	})
	return out
}

// FindByClass returns every box carrying the class, in document order
func (t *VisualTree) FindByClass(class string) []*Box {
	return t.Find(func(b *Box) bool { return b.HasClass(class) })
}

// Sections returns the document sections in order. Sections nested in a
// section are part of their parent's content.
func (t *VisualTree) Sections() []*Box {
	var out []*Box
	if t.Root == nil {
		return out
	}
	t.Root.Walk(func(b *Box) bool {
		if _, ok := b.Attr(sectionAttr); ok {
			out = append(out, b)
			return false
		}
		return true
	})
	return out
}

// HasScreenOnly reports whether any screen-only element generated a box
func (t *VisualTree) HasScreenOnly() bool {
	return len(t.FindByClass(screenOnly)) > 0
}

// Toolbar returns the toolbar box, nil when the medium suppresses it
func (t *VisualTree) Toolbar() *Box {
	if boxes := t.FindByClass(toolbarClass); len(boxes) > 0 {
		return boxes[0]
	}
	return nil
}

// Outline is a serializable projection of a VisualTree
type Outline struct {
	Mode     document.RenderMode    `json:"mode"`
	Toolbar  bool                   `json:"toolbar"`
	Sections []OutlineSection       `json:"sections"`
	Page     *printing.PageGeometry `json:"page,omitempty"`
}

// OutlineSection is one section of an Outline
type OutlineSection struct {
	Kind  string `json:"kind"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Outline projects the tree into an Outline
func (t *VisualTree) Outline() *Outline {
	outline := &Outline{
		Mode:     t.Mode,
		Toolbar:  t.Toolbar() != nil,
		Sections: []OutlineSection{},
		Page:     t.Geometry,
	}
	for _, s := range t.Sections() {
		kind, _ := s.Attr(sectionAttr)
		title, _ := s.Attr(titleAttr)
		outline.Sections = append(outline.Sections, OutlineSection{
			Kind:  kind,
			Title: title,
			Text:  s.TextContent(),
		})
	}
	return outline
}
