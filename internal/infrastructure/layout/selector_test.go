package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelector_Specificity(t *testing.T) {
	tests := []struct {
		selector string
		expected Specificity
	}{
		{"*", Specificity{0, 0, 0}},
		{"p", Specificity{0, 0, 1}},
		{".callout", Specificity{0, 1, 0}},
		{"li.list__item", Specificity{0, 1, 1}},
		{"#main .section p", Specificity{1, 1, 1}},
		{".kv th", Specificity{0, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			sel, ok := ParseSelector(tt.selector)
			require.True(t, ok)
			assert.Equal(t, tt.expected, sel.Specificity)
		})
	}
}

func TestParseSelector_Unsupported(t *testing.T) {
	for _, text := range []string{"", "a:hover", "ul > li", "h1 + p", "h1 ~ p", "[hidden]", "a..b", "p.", "#a#b"} {
		_, ok := ParseSelector(text)
		assert.False(t, ok, text)
	}
}

func TestSpecificity_Less(t *testing.T) {
	assert.True(t, Specificity{0, 0, 1}.Less(Specificity{0, 1, 0}))
	assert.True(t, Specificity{0, 9, 9}.Less(Specificity{1, 0, 0}))
	assert.False(t, Specificity{0, 1, 0}.Less(Specificity{0, 1, 0}))
}

func TestSelector_Matches(t *testing.T) {
	html := &element{tag: "html"}
	body := &element{tag: "body", parent: html}
	main := &element{tag: "main", id: "doc", classes: []string{"document"}, parent: body}
	section := &element{tag: "section", classes: []string{"section", "section--metrics"}, parent: main}
	callout := &element{tag: "div", classes: []string{"callout", "emphasis--positive"}, parent: section}

	tests := []struct {
		selector string
		el       *element
		expected bool
	}{
		{"*", callout, true},
		{"div", callout, true},
		{"span", callout, false},
		{".callout", callout, true},
		{".callout.emphasis--positive", callout, true},
		{".callout.emphasis--warning", callout, false},
		{"div.callout", callout, true},
		{"#doc", main, true},
		{"#doc .callout", callout, true},
		{"body section div", callout, true},
		{".document .section .callout", callout, true},
		{"section main .callout", callout, false},
		{".toolbar .callout", callout, false},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			sel, ok := ParseSelector(tt.selector)
			require.True(t, ok)
			assert.Equal(t, tt.expected, sel.matches(tt.el))
		})
	}
}
