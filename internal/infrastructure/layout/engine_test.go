package layout

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/briefing/backend/internal/domain/document"
	"github.com/briefing/backend/internal/domain/printing"
	"github.com/briefing/backend/internal/infrastructure/content"
	"github.com/briefing/backend/internal/infrastructure/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderPayload(t *testing.T, payload *document.Payload, opts render.Options) []byte {
	t.Helper()
	r, err := render.NewRenderer(render.NewTemplateEngine(), opts)
	require.NoError(t, err)
	result, err := r.Render(context.Background(), payload)
	require.NoError(t, err)
	return result.HTML
}

func renderReference(t *testing.T) []byte {
	t.Helper()
	payload, err := content.Default()
	require.NoError(t, err)
	return renderPayload(t, payload, render.Options{})
}

func layoutBoth(t *testing.T, doc []byte) (*VisualTree, *VisualTree) {
	t.Helper()
	engine := NewEngine()
	screen, err := engine.Layout(doc, document.RenderModeScreen)
	require.NoError(t, err)
	print, err := engine.Layout(doc, document.RenderModePrint)
	require.NoError(t, err)
	return screen, print
}

func sectionKinds(tree *VisualTree) []string {
	var kinds []string
	for _, s := range tree.Sections() {
		kind, _ := s.Attr("data-section")
		kinds = append(kinds, kind)
	}
	return kinds
}

func TestLayout_ReferenceScenario(t *testing.T) {
	screen, print := layoutBoth(t, renderReference(t))

	expected := []string{
		"tldr", "metrics", "problem", "risk", "revenue", "timeline",
		"leadership", "governance", "alignment", "precedents", "next-steps", "footer",
	}

	t.Run("screen shows toolbar and all sections", func(t *testing.T) {
		toolbar := screen.Toolbar()
		require.NotNil(t, toolbar)
		assert.Contains(t, toolbar.TextContent(), "Back to presentation")
		assert.Contains(t, toolbar.TextContent(), "Print / Save as PDF")
		assert.Equal(t, expected, sectionKinds(screen))
		assert.Nil(t, screen.Geometry)
	})

	t.Run("print suppresses toolbar and forces sheet", func(t *testing.T) {
		assert.Nil(t, print.Toolbar())
		assert.False(t, print.HasScreenOnly())
		assert.Empty(t, print.Find(func(b *Box) bool {
			v, ok := b.Attr("data-action")
			return ok && v == "print"
		}))
		assert.Equal(t, expected, sectionKinds(print))

		require.NotNil(t, print.Geometry)
		assert.Equal(t, printing.PaperSizeA4, print.Geometry.Size)
		assert.Equal(t, 210.0, print.Geometry.Width)
		assert.Equal(t, 297.0, print.Geometry.Height)
		assert.Equal(t, printing.UniformMargins(15), print.Geometry.Margins)
	})
}

func TestLayout_ContentParity(t *testing.T) {
	screen, print := layoutBoth(t, renderReference(t))

	screenOutline := screen.Outline()
	printOutline := print.Outline()

	require.Len(t, printOutline.Sections, 12)
	assert.Equal(t, screenOutline.Sections, printOutline.Sections)
	for _, s := range printOutline.Sections {
		assert.NotEmpty(t, s.Title, s.Kind)
		assert.NotEmpty(t, s.Text, s.Kind)
	}
}

func TestLayout_ContentParityNarrowViewport(t *testing.T) {
	doc := renderReference(t)

	narrow, err := NewEngine(WithViewportWidth(480)).Layout(doc, document.RenderModeScreen)
	require.NoError(t, err)
	print, err := NewEngine().Layout(doc, document.RenderModePrint)
	require.NoError(t, err)

	assert.Equal(t, narrow.Outline().Sections, print.Outline().Sections)

	// the narrow-screen rule applies to screen only
	docBox := narrow.FindByClass("document")[0]
	assert.Equal(t, "0", docBox.Get("margin"))
}

func TestLayout_GeometryIndependentOfContentVolume(t *testing.T) {
	var sections []document.Section
	for _, kind := range document.AllSectionKinds() {
		var items []document.Item
		for i := range 60 {
			items = append(items, document.NewItem(fmt.Sprintf("Entry %d", i), strings.Repeat("Long content. ", 40)))
		}
		sections = append(sections, document.NewSection(kind, "", strings.Repeat("Lead paragraph. ", 80), items...))
	}
	large := document.NewPayload(document.Meta{Title: "Large"}, sections...)
	small := document.NewPayload(document.Meta{Title: "Small"}, document.NewSection(document.SectionKindTLDR, "", ""))

	engine := NewEngine()
	for name, payload := range map[string]*document.Payload{"large": large, "small": small} {
		t.Run(name, func(t *testing.T) {
			tree, err := engine.Layout(renderPayload(t, payload, render.Options{}), document.RenderModePrint)
			require.NoError(t, err)
			require.NotNil(t, tree.Geometry)
			assert.True(t, tree.Geometry.Equals(printing.ReferenceGeometry()), tree.Geometry.String())
			assert.Len(t, tree.Sections(), payload.Len())
		})
	}
}

func TestLayout_ConfiguredGeometry(t *testing.T) {
	geometry, err := printing.NewPageGeometry(printing.PaperSizeLetter, printing.OrientationLandscape, printing.UniformMargins(20))
	require.NoError(t, err)

	payload, err := content.Default()
	require.NoError(t, err)
	tree, err := NewEngine().Layout(renderPayload(t, payload, render.Options{Geometry: geometry}), document.RenderModePrint)
	require.NoError(t, err)

	require.NotNil(t, tree.Geometry)
	assert.True(t, tree.Geometry.Equals(geometry), tree.Geometry.String())
}

func TestLayout_EmphasisColorsRetainedInPrint(t *testing.T) {
	_, print := layoutBoth(t, renderReference(t))

	for _, e := range []document.Emphasis{
		document.EmphasisPositive,
		document.EmphasisAccent,
		document.EmphasisNeutral,
		document.EmphasisWarning,
		document.EmphasisCritical,
	} {
		t.Run(e.String(), func(t *testing.T) {
			boxes := print.FindByClass("emphasis--" + e.Class())
			require.NotEmpty(t, boxes)
			palette := e.Palette()
			for _, box := range boxes {
				assert.Equal(t, palette.Background, box.Get("background-color"))
				assert.Equal(t, palette.Foreground, box.Get("color"))
				assert.Equal(t, "exact", box.Get("print-color-adjust"))
			}
		})
	}
}

func TestLayout_InkSavingWithoutExactColorOverride(t *testing.T) {
	doc := []byte(`<!DOCTYPE html><html><head><style>
		.callout { background-color: #e6f4ea; color: #1e6b34; }
		.keep { -webkit-print-color-adjust: exact; }
	</style></head><body>
		<div class="callout">ARR</div>
		<div class="callout keep"><span class="inner">Margin</span></div>
	</body></html>`)

	screen, print := layoutBoth(t, doc)

	screenCallouts := screen.FindByClass("callout")
	require.Len(t, screenCallouts, 2)
	assert.Equal(t, "#e6f4ea", screenCallouts[0].Get("background-color"))

	printCallouts := print.FindByClass("callout")
	require.Len(t, printCallouts, 2)
	assert.Empty(t, printCallouts[0].Get("background-color"))
	assert.Equal(t, "#000000", printCallouts[0].Get("color"))

	assert.Equal(t, "#e6f4ea", printCallouts[1].Get("background-color"))
	assert.Equal(t, "#1e6b34", printCallouts[1].Get("color"))
	inner := print.FindByClass("inner")
	require.Len(t, inner, 1)
	assert.Equal(t, "#1e6b34", inner[0].Get("color"))
}

func TestLayout_DefaultSheetWithoutPageRule(t *testing.T) {
	tree, err := NewEngine().Layout([]byte(`<html><body><p>hello</p></body></html>`), document.RenderModePrint)
	require.NoError(t, err)

	require.NotNil(t, tree.Geometry)
	assert.Equal(t, printing.PaperSizeA4, tree.Geometry.Size)
	assert.Equal(t, printing.UniformMargins(10), tree.Geometry.Margins)
}

func TestLayout_Cascade(t *testing.T) {
	doc := []byte(`<html><head><style>
		p { color: red; }
		.note { color: green; }
		p { color: blue; }
		#special { color: purple; }
		.forced { color: orange !important; }
		@media print { .note { display: none; } }
	</style></head><body>
		<p id="plain">a</p>
		<p class="note">b</p>
		<p id="special" class="note">c</p>
		<p id="styled" style="color: teal">d</p>
		<p class="forced" style="color: teal">e</p>
		<p hidden>f</p>
		<p style="display: block" hidden>g</p>
	</body></html>`)

	screen, print := layoutBoth(t, doc)

	colors := map[string]string{}
	for _, p := range screen.Find(func(b *Box) bool { return b.Tag == "p" }) {
		colors[p.Text] = p.Get("color")
	}
	assert.Equal(t, map[string]string{
		"a": "blue",
		"b": "green",
		"c": "purple",
		"d": "teal",
		"e": "orange",
		"g": "blue",
	}, colors)

	var printed []string
	for _, p := range print.Find(func(b *Box) bool { return b.Tag == "p" }) {
		printed = append(printed, p.Text)
	}
	assert.Equal(t, []string{"a", "d", "e", "g"}, printed)
}

func TestLayout_HeadNeverGeneratesBoxes(t *testing.T) {
	screen, _ := layoutBoth(t, renderReference(t))

	assert.Empty(t, screen.Find(func(b *Box) bool {
		return b.Tag == "head" || b.Tag == "style" || b.Tag == "script" || b.Tag == "title"
	}))
	assert.NotContains(t, screen.Root.TextContent(), "@media")
}

func TestLayout_InvalidMode(t *testing.T) {
	_, err := NewEngine().Layout([]byte("<html></html>"), document.RenderMode("PAPER"))
	assert.Error(t, err)
}

func TestLayout_InvalidPageRule(t *testing.T) {
	_, err := NewEngine().Layout([]byte(`<html><head><style>@page { size: tabloid; }</style></head></html>`), document.RenderModePrint)
	assert.Error(t, err)

	// SCREEN never resolves the sheet
	_, err = NewEngine().Layout([]byte(`<html><head><style>@page { size: tabloid; }</style></head></html>`), document.RenderModeScreen)
	assert.NoError(t, err)
}

func TestOutline(t *testing.T) {
	screen, print := layoutBoth(t, renderReference(t))

	so := screen.Outline()
	assert.Equal(t, document.RenderModeScreen, so.Mode)
	assert.True(t, so.Toolbar)
	assert.Nil(t, so.Page)
	assert.Equal(t, "metrics", so.Sections[1].Kind)
	assert.Equal(t, "Key Metrics", so.Sections[1].Title)
	assert.Contains(t, so.Sections[1].Text, "$4.2M")

	po := print.Outline()
	assert.Equal(t, document.RenderModePrint, po.Mode)
	assert.False(t, po.Toolbar)
	require.NotNil(t, po.Page)
	assert.Equal(t, printing.PaperSizeA4, po.Page.Size)
}
