package render

import (
	"html/template"

	"github.com/briefing/backend/internal/domain/document"
)

// pageView is the template data of the summary page
type pageView struct {
	Meta        document.Meta
	BackLink    string
	AutoPrint   bool
	AssetPrefix string
	PageSize    template.CSS
	PageMargin  template.CSS
	Palettes    []paletteView
	Sections    []sectionView
}

type paletteView struct {
	Class      template.CSS
	Background template.CSS
	Foreground template.CSS
	Border     template.CSS
}

type sectionView struct {
	Kind   string
	Title  string
	Lead   string
	Layout string
	Items  []itemView
}

type itemView struct {
	Label      string
	Value      string
	Detail     string
	Emphasis   string
	Emphasized bool
	HasAmount  bool
	Amount     string
	Format     document.ValueFormat
}

func newPageView(payload *document.Payload, opts Options) pageView {
	view := pageView{
		Meta:        payload.Meta(),
		BackLink:    opts.BackLink,
		AutoPrint:   opts.AutoPrint,
		AssetPrefix: opts.AssetPrefix,
		PageSize:    template.CSS(opts.Geometry.SizeCSS()),
		PageMargin:  template.CSS(opts.Geometry.Margins.CSS()),
	}

	for _, e := range document.AllEmphases() {
		p := e.Palette()
		view.Palettes = append(view.Palettes, paletteView{
			Class:      template.CSS(e.Class()),
			Background: template.CSS(p.Background),
			Foreground: template.CSS(p.Foreground),
			Border:     template.CSS(p.Border),
		})
	}

	for _, s := range payload.Sections() {
		sv := sectionView{
			Kind:   s.Kind().Slug(),
			Title:  s.Title(),
			Lead:   s.Lead(),
			Layout: string(s.Layout()),
		}
		for _, it := range s.Items() {
			iv := itemView{
				Label:      it.Label(),
				Value:      it.Value(),
				Detail:     it.Detail(),
				Emphasis:   it.Emphasis().Class(),
				Emphasized: it.Emphasis() != document.EmphasisNeutral,
				Format:     it.Format(),
			}
			if amount, ok := it.Amount(); ok {
				iv.HasAmount = true
				iv.Amount = amount.String()
			}
			sv.Items = append(sv.Items, iv)
		}
		view.Sections = append(view.Sections, sv)
	}

	return view
}
