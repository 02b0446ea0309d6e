package document

import "strings"

// SectionKind identifies the kind of a section and selects its body layout
type SectionKind string

const (
	SectionKindTLDR       SectionKind = "TLDR"
	SectionKindMetrics    SectionKind = "METRICS"
	SectionKindProblem    SectionKind = "PROBLEM"
	SectionKindRisk       SectionKind = "RISK"
	SectionKindRevenue    SectionKind = "REVENUE"
	SectionKindTimeline   SectionKind = "TIMELINE"
	SectionKindLeadership SectionKind = "LEADERSHIP"
	SectionKindGovernance SectionKind = "GOVERNANCE"
	SectionKindAlignment  SectionKind = "ALIGNMENT"
	SectionKindPrecedents SectionKind = "PRECEDENTS"
	SectionKindNextSteps  SectionKind = "NEXT_STEPS"
	SectionKindFooter     SectionKind = "FOOTER"
)

// IsValid checks if the SectionKind is a valid value
func (k SectionKind) IsValid() bool {
	switch k {
	case SectionKindTLDR, SectionKindMetrics, SectionKindProblem, SectionKindRisk,
		SectionKindRevenue, SectionKindTimeline, SectionKindLeadership, SectionKindGovernance,
		SectionKindAlignment, SectionKindPrecedents, SectionKindNextSteps, SectionKindFooter:
		return true
	}
	return false
}

// String returns the string representation of SectionKind
func (k SectionKind) String() string {
	return string(k)
}

// Slug returns the lowercase, hyphenated form used in markup ("next-steps")
func (k SectionKind) Slug() string {
	return strings.ReplaceAll(strings.ToLower(string(k)), "_", "-")
}

// DisplayName returns the default heading for the SectionKind
func (k SectionKind) DisplayName() string {
	switch k {
	case SectionKindTLDR:
		return "TL;DR"
	case SectionKindMetrics:
		return "Key Metrics"
	case SectionKindProblem:
		return "Problem Statement"
	case SectionKindRisk:
		return "Risk Profile"
	case SectionKindRevenue:
		return "Revenue Streams"
	case SectionKindTimeline:
		return "Timeline"
	case SectionKindLeadership:
		return "Leadership Standards"
	case SectionKindGovernance:
		return "Governance"
	case SectionKindAlignment:
		return "Strategic Alignment"
	case SectionKindPrecedents:
		return "Precedents"
	case SectionKindNextSteps:
		return "Next Steps"
	case SectionKindFooter:
		return "Footer"
	default:
		return string(k)
	}
}

// Layout returns the body layout used for the SectionKind.
// Key-value kinds render as tables, list kinds as lists.
func (k SectionKind) Layout() Layout {
	switch k {
	case SectionKindMetrics:
		return LayoutCallouts
	case SectionKindRisk, SectionKindRevenue, SectionKindGovernance, SectionKindAlignment:
		return LayoutTable
	case SectionKindTimeline:
		return LayoutTimeline
	case SectionKindNextSteps:
		return LayoutSteps
	case SectionKindFooter:
		return LayoutFooter
	default:
		return LayoutList
	}
}

// AllSectionKinds returns all SectionKind values in reference document order
func AllSectionKinds() []SectionKind {
	return []SectionKind{
		SectionKindTLDR, SectionKindMetrics, SectionKindProblem, SectionKindRisk,
		SectionKindRevenue, SectionKindTimeline, SectionKindLeadership, SectionKindGovernance,
		SectionKindAlignment, SectionKindPrecedents, SectionKindNextSteps, SectionKindFooter,
	}
}

// Layout is the body layout of a section
type Layout string

const (
	LayoutCallouts Layout = "callouts"
	LayoutTable    Layout = "table"
	LayoutTimeline Layout = "timeline"
	LayoutSteps    Layout = "steps"
	LayoutList     Layout = "list"
	LayoutFooter   Layout = "footer"
)

// RenderMode is the output medium a rendering is evaluated for.
// It is never stored in the payload; the consuming environment selects it.
type RenderMode string

const (
	RenderModeScreen RenderMode = "SCREEN"
	RenderModePrint  RenderMode = "PRINT"
)

// IsValid checks if the RenderMode is a valid value
func (m RenderMode) IsValid() bool {
	return m == RenderModeScreen || m == RenderModePrint
}

// String returns the string representation of RenderMode
func (m RenderMode) String() string {
	return string(m)
}

// MediaType returns the CSS media type matching the mode ("screen" or "print")
func (m RenderMode) MediaType() string {
	return strings.ToLower(string(m))
}

// ParseRenderMode parses a media type or mode name, case-insensitively
func ParseRenderMode(s string) (RenderMode, bool) {
	m := RenderMode(strings.ToUpper(strings.TrimSpace(s)))
	return m, m.IsValid()
}

// AllRenderModes returns all RenderMode values
func AllRenderModes() []RenderMode {
	return []RenderMode{RenderModeScreen, RenderModePrint}
}

// Emphasis marks an item for semantic color emphasis
type Emphasis string

const (
	EmphasisNeutral  Emphasis = "NEUTRAL"
	EmphasisPositive Emphasis = "POSITIVE"
	EmphasisWarning  Emphasis = "WARNING"
	EmphasisCritical Emphasis = "CRITICAL"
	EmphasisAccent   Emphasis = "ACCENT"
)

// IsValid checks if the Emphasis is a valid value
func (e Emphasis) IsValid() bool {
	switch e {
	case EmphasisNeutral, EmphasisPositive, EmphasisWarning, EmphasisCritical, EmphasisAccent:
		return true
	}
	return false
}

// String returns the string representation of Emphasis
func (e Emphasis) String() string {
	return string(e)
}

// Class returns the lowercase modifier used in markup ("positive")
func (e Emphasis) Class() string {
	if !e.IsValid() {
		return strings.ToLower(string(EmphasisNeutral))
	}
	return strings.ToLower(string(e))
}

// Palette returns the exact colors declared for the Emphasis.
// Unknown values fall back to the neutral palette.
func (e Emphasis) Palette() Palette {
	switch e {
	case EmphasisPositive:
		return Palette{Background: "#e6f4ea", Foreground: "#1e6b34", Border: "#1e6b34"}
	case EmphasisWarning:
		return Palette{Background: "#fff4e0", Foreground: "#8a5300", Border: "#d98e04"}
	case EmphasisCritical:
		return Palette{Background: "#fdecea", Foreground: "#a4161a", Border: "#a4161a"}
	case EmphasisAccent:
		return Palette{Background: "#e8eefc", Foreground: "#1b3f8b", Border: "#1b3f8b"}
	default:
		return Palette{Background: "#f3f4f6", Foreground: "#1f2937", Border: "#9ca3af"}
	}
}

// AllEmphases returns all Emphasis values
func AllEmphases() []Emphasis {
	return []Emphasis{EmphasisNeutral, EmphasisPositive, EmphasisWarning, EmphasisCritical, EmphasisAccent}
}

// Palette is a background/foreground color pair used for semantic emphasis
type Palette struct {
	Background string `json:"background"`
	Foreground string `json:"foreground"`
	Border     string `json:"border"`
}

// ValueFormat selects how a numeric item amount is displayed
type ValueFormat string

const (
	ValueFormatNone    ValueFormat = ""
	ValueFormatMoney   ValueFormat = "money"
	ValueFormatPercent ValueFormat = "percent"
	ValueFormatCount   ValueFormat = "count"
)

// IsValid checks if the ValueFormat is a valid value
func (f ValueFormat) IsValid() bool {
	switch f {
	case ValueFormatNone, ValueFormatMoney, ValueFormatPercent, ValueFormatCount:
		return true
	}
	return false
}
