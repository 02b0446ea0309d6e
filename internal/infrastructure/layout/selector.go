package layout

import (
	"slices"
	"strings"
)

// Specificity orders selectors in the cascade: ids, then classes, then types
type Specificity [3]int

// Less reports whether s is weaker than other
func (s Specificity) Less(other Specificity) bool {
	for i := range s {
		if s[i] != other[i] {
			return s[i] < other[i]
		}
	}
	return false
}

// Selector is a chain of compound selectors joined by descendant combinators
type Selector struct {
	Text        string
	Specificity Specificity
	// parts are stored from the outermost ancestor to the subject
	parts []compound
}

type compound struct {
	tag     string // "" matches any element
	id      string
	classes []string
}

// element is the part of a DOM element a selector can test
type element struct {
	tag     string
	id      string
	classes []string
	parent  *element
}

// ParseSelector parses a single selector. It reports false for selectors
// outside the supported subset.
func ParseSelector(text string) (Selector, bool) {
	text = strings.TrimSpace(text)
	if text == "" || strings.ContainsAny(text, ">+~:[()\"'") {
		return Selector{}, false
	}

	sel := Selector{Text: text}
	for _, token := range strings.Fields(text) {
		c, ok := parseCompound(token)
		if !ok {
			return Selector{}, false
		}
		if c.id != "" {
			sel.Specificity[0]++
		}
		sel.Specificity[1] += len(c.classes)
		if c.tag != "" {
			sel.Specificity[2]++
		}
		sel.parts = append(sel.parts, c)
	}
	return sel, true
}

func parseCompound(token string) (compound, bool) {
	var c compound
	rest := token
	if strings.HasPrefix(rest, "*") {
		rest = rest[1:]
	} else {
		end := strings.IndexAny(rest, ".#")
		if end < 0 {
			end = len(rest)
		}
		c.tag = strings.ToLower(rest[:end])
		rest = rest[end:]
	}

	for rest != "" {
		marker := rest[0]
		rest = rest[1:]
		end := strings.IndexAny(rest, ".#")
		if end < 0 {
			end = len(rest)
		}
		name := rest[:end]
		rest = rest[end:]
		if name == "" {
			return compound{}, false
		}
		switch marker {
		case '.':
			c.classes = append(c.classes, name)
		case '#':
			if c.id != "" && c.id != name {
				return compound{}, false
			}
			c.id = name
		default:
			return compound{}, false
		}
	}
	return c, true
}

// matches reports whether the selector matches el given its ancestors
func (s Selector) matches(el *element) bool {
	if len(s.parts) == 0 {
		return false
	}
	last := len(s.parts) - 1
	if !s.parts[last].matches(el) {
		return false
	}

	ancestor := el.parent
	for i := last - 1; i >= 0; i-- {
		for ancestor != nil && !s.parts[i].matches(ancestor) {
			ancestor = ancestor.parent
		}
		if ancestor == nil {
			return false
		}
		ancestor = ancestor.parent
	}
	return true
}

func (c compound) matches(el *element) bool {
	if c.tag != "" && c.tag != el.tag {
		return false
	}
	if c.id != "" && c.id != el.id {
		return false
	}
	for _, class := range c.classes {
		if !slices.Contains(el.classes, class) {
			return false
		}
	}
	return true
}
