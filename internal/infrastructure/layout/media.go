package layout

import (
	"strconv"
	"strings"

	"github.com/briefing/backend/internal/domain/document"
)

// MediaEnv describes the medium a stylesheet is evaluated for
type MediaEnv struct {
	Mode document.RenderMode
	// Width is the viewport (SCREEN) or page content (PRINT) width in CSS px
	Width float64
}

// MediaQuery is a parsed media query list. A query list matches when any of
// its queries matches; a query matches when all of its conditions hold.
type MediaQuery struct {
	queries []mediaQueryItem
	nested  []MediaQuery
}

type mediaQueryItem struct {
	negate bool
	conds  []mediaCondition
}

type mediaCondition struct {
	kind    string // "type" or a feature name
	media   string
	px      float64
	invalid bool
}

// MediaAll returns the query list matching every medium
func MediaAll() MediaQuery {
	return MediaQuery{}
}

// ParseMediaQuery parses a media query list such as "screen and (max-width: 720px), print"
func ParseMediaQuery(text string) MediaQuery {
	var mq MediaQuery
	for _, part := range strings.Split(strings.ToLower(text), ",") {
		mq.queries = append(mq.queries, parseQuery(part))
	}
	return mq
}

func parseQuery(text string) mediaQueryItem {
	var item mediaQueryItem
	for i, token := range splitQuery(text) {
		switch {
		case token == "and":
		case i == 0 && token == "only":
		case i == 0 && token == "not":
			item.negate = true
		case strings.HasPrefix(token, "("):
			item.conds = append(item.conds, parseFeature(token))
		default:
			item.conds = append(item.conds, mediaCondition{kind: "type", media: token})
		}
	}
	if len(item.conds) == 0 {
		// an empty query never matches
		item.conds = append(item.conds, mediaCondition{invalid: true})
	}
	return item
}

func splitQuery(text string) []string {
	var tokens []string
	var current strings.Builder
	depth := 0
	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			tokens = append(tokens, s)
		}
		current.Reset()
	}
	for _, r := range text {
		switch {
		case r == '(':
			if depth == 0 {
				flush()
			}
			depth++
			current.WriteRune(r)
		case r == ')':
			depth--
			current.WriteRune(r)
			if depth == 0 {
				flush()
			}
		case (r == ' ' || r == '\t' || r == '\n') && depth == 0:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return tokens
}

func parseFeature(token string) mediaCondition {
	inner := strings.TrimSuffix(strings.TrimPrefix(token, "("), ")")
	name, value, found := strings.Cut(inner, ":")
	if !found {
		return mediaCondition{invalid: true}
	}
	name = strings.TrimSpace(name)
	switch name {
	case "min-width", "max-width":
	default:
		return mediaCondition{invalid: true}
	}
	px, ok := lengthToPx(strings.TrimSpace(value))
	if !ok {
		return mediaCondition{invalid: true}
	}
	return mediaCondition{kind: name, px: px}
}

// And returns a query list matching only where both q and other match
func (q MediaQuery) And(other MediaQuery) MediaQuery {
	if q.isAll() {
		return other
	}
	if other.isAll() {
		return q
	}
	// nested lists are kept as separate lists that must all match
	return MediaQuery{queries: q.queries, nested: append(append([]MediaQuery{}, q.nested...), other)}
}

func (q MediaQuery) isAll() bool {
	return len(q.queries) == 0 && len(q.nested) == 0
}

// Matches evaluates the query list against the medium
func (q MediaQuery) Matches(env MediaEnv) bool {
	for _, n := range q.nested {
		if !n.Matches(env) {
			return false
		}
	}
	if len(q.queries) == 0 {
		return true
	}
	for _, item := range q.queries {
		if item.matches(env) {
			return true
		}
	}
	return false
}

func (item mediaQueryItem) matches(env MediaEnv) bool {
	ok := true
	for _, c := range item.conds {
		if c.invalid {
			// unknown features make the whole query false, even when negated
			return false
		}
		if !c.matches(env) {
			ok = false
		}
	}
	if item.negate {
		return !ok
	}
	return ok
}

func (c mediaCondition) matches(env MediaEnv) bool {
	switch c.kind {
	case "type":
		return c.media == "all" || c.media == env.Mode.MediaType()
	case "min-width":
		return env.Width >= c.px
	case "max-width":
		return env.Width <= c.px
	}
	return false
}

func lengthToPx(value string) (float64, bool) {
	mm, ok := parseLength(value)
	if !ok {
		return 0, false
	}
	return mm * pxPerMM, true
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}
