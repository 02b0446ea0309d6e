package document

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Item is one entry of a section body. Items with a label are key-value
// entries; items without one are plain list entries.
type Item struct {
	label    string
	value    string
	detail   string
	emphasis Emphasis
	amount   *decimal.Decimal
	format   ValueFormat
}

// ItemOption configures optional Item fields
type ItemOption func(*Item)

// WithDetail attaches a secondary line of text
func WithDetail(detail string) ItemOption {
	return func(i *Item) {
		i.detail = detail
	}
}

// WithEmphasis marks the item for semantic color emphasis
func WithEmphasis(e Emphasis) ItemOption {
	return func(i *Item) {
		i.emphasis = e
	}
}

// WithAmount attaches a numeric amount displayed in the given format
func WithAmount(amount decimal.Decimal, format ValueFormat) ItemOption {
	return func(i *Item) {
		i.amount = &amount
		i.format = format
	}
}

// NewItem creates an Item
func NewItem(label, value string, opts ...ItemOption) Item {
	item := Item{
		label:    label,
		value:    value,
		emphasis: EmphasisNeutral,
	}
	for _, opt := range opts {
		opt(&item)
	}
	return item
}

// Label returns the key of a key-value item, empty for list items
func (i Item) Label() string { return i.label }

// Value returns the display value
func (i Item) Value() string { return i.value }

// Detail returns the optional secondary text
func (i Item) Detail() string { return i.detail }

// Emphasis returns the semantic emphasis
func (i Item) Emphasis() Emphasis { return i.emphasis }

// Format returns the display format of the amount
func (i Item) Format() ValueFormat { return i.format }

// Amount returns the numeric amount, if the item carries one
func (i Item) Amount() (decimal.Decimal, bool) {
	if i.amount == nil {
		return decimal.Zero, false
	}
	return *i.amount, true
}

// IsKeyValue reports whether the item is a key-value entry
func (i Item) IsKeyValue() bool { return i.label != "" }

// Section is one named, ordered block of fixed content
type Section struct {
	kind  SectionKind
	title string
	lead  string
	items []Item
}

// NewSection creates a Section. An empty title falls back to the kind's display name.
func NewSection(kind SectionKind, title, lead string, items ...Item) Section {
	if title == "" {
		title = kind.DisplayName()
	}
	return Section{
		kind:  kind,
		title: title,
		lead:  lead,
		items: slices.Clone(items),
	}
}

// Kind returns the section kind
func (s Section) Kind() SectionKind { return s.kind }

// Title returns the section heading
func (s Section) Title() string { return s.title }

// Lead returns the optional introductory paragraph
func (s Section) Lead() string { return s.lead }

// Layout returns the body layout of the section
func (s Section) Layout() Layout { return s.kind.Layout() }

// Items returns a copy of the section body
func (s Section) Items() []Item { return slices.Clone(s.items) }

// ItemCount returns the number of body items
func (s Section) ItemCount() int { return len(s.items) }

// Meta is the document-level header content
type Meta struct {
	Title    string
	Subtitle string
	Date     string
	Version  string
	Audience string
}

// Payload is the complete, immutable content of the executive summary
type Payload struct {
	meta     Meta
	sections []Section
}

// NewPayload creates a Payload from sections in document order
func NewPayload(meta Meta, sections ...Section) *Payload {
	return &Payload{
		meta:     meta,
		sections: slices.Clone(sections),
	}
}

// Meta returns the document header content
func (p *Payload) Meta() Meta { return p.meta }

// Title returns the document title
func (p *Payload) Title() string { return p.meta.Title }

// Sections returns a copy of the sections in document order
func (p *Payload) Sections() []Section { return slices.Clone(p.sections) }

// Len returns the number of sections
func (p *Payload) Len() int { return len(p.sections) }

// Kinds returns the section kinds in document order
func (p *Payload) Kinds() []SectionKind {
	kinds := make([]SectionKind, len(p.sections))
	for i, s := range p.sections {
		kinds[i] = s.kind
	}
	return kinds
}

// Find returns the first section of the given kind
func (p *Payload) Find(kind SectionKind) (Section, bool) {
	for _, s := range p.sections {
		if s.kind == kind {
			return s, true
		}
	}
	return Section{}, false
}
