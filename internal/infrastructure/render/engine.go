package render

import (
	"fmt"
	"html/template"
	"maps"
	"strings"

	"github.com/briefing/backend/internal/domain/document"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// TemplateEngine holds the function map the document templates are parsed with.
// Amounts are formatted with shopspring/decimal; digit grouping follows the
// English locale via golang.org/x/text/message.
type TemplateEngine struct {
	funcMap template.FuncMap
	printer *message.Printer
}

// NewTemplateEngine creates a new template engine with default configuration
func NewTemplateEngine() *TemplateEngine {
	e := &TemplateEngine{
		printer: message.NewPrinter(language.English),
	}

	e.funcMap = template.FuncMap{
		"formatAmount": e.formatAmount,
	}

	return e
}

// GetFuncMap returns a copy of the template function map
func (e *TemplateEngine) GetFuncMap() template.FuncMap {
	funcMap := make(template.FuncMap, len(e.funcMap))
	maps.Copy(funcMap, e.funcMap)
	return funcMap
}

// =============================================================================
// Template Functions - Number Formatting
// =============================================================================

type moneyUnit struct {
	divisor decimal.Decimal
	suffix  string
}

var moneyUnits = []moneyUnit{
	{decimal.NewFromInt(1000), "K"},
	{decimal.NewFromInt(1000000), "M"},
	{decimal.NewFromInt(1000000000), "B"},
}

var thousand = decimal.NewFromInt(1000)

// formatAmount formats an amount in the given document.ValueFormat
func (e *TemplateEngine) formatAmount(v any, format document.ValueFormat) string {
	switch format {
	case document.ValueFormatMoney:
		return formatMoney(v)
	case document.ValueFormatPercent:
		return formatPercent(v)
	case document.ValueFormatCount:
		return e.formatCount(v)
	default:
		return toDecimal(v).String()
	}
}

// formatMoney formats a decimal value as US dollars, abbreviated from a thousand up.
// The value is rounded before the unit is chosen, so 999950 is "$1M", not "$1000K".
// Example: 4200000 -> "$4.2M", 950 -> "$950"
func formatMoney(v any) string {
	d := toDecimal(v)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	whole := d.Round(0)
	if whole.LessThan(thousand) {
		return sign + "$" + whole.String()
	}

	for i, unit := range moneyUnits {
		q := d.Div(unit.divisor).Round(1)
		if q.LessThan(thousand) || i == len(moneyUnits)-1 {
			return sign + "$" + trimZeros(q.StringFixed(1)) + unit.suffix
		}
	}
	return sign + "$" + whole.String()
}

// formatPercent formats a ratio as a percentage with at most one decimal
// Example: 0.61 -> "61%"
func formatPercent(v any) string {
	d := toDecimal(v)
	return trimZeros(d.Mul(decimal.NewFromInt(100)).StringFixed(1)) + "%"
}

// formatCount formats an integer count with thousand separators
// Example: 12500 -> "12,500"
func (e *TemplateEngine) formatCount(v any) string {
	return e.printer.Sprintf("%d", toDecimal(v).Round(0).IntPart())
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// toDecimal converts template values to decimal.Decimal
func toDecimal(v any) decimal.Decimal {
	switch val := v.(type) {
	case decimal.Decimal:
		return val
	case *decimal.Decimal:
		if val == nil {
			return decimal.Zero
		}
		return *val
	case int:
		return decimal.NewFromInt(int64(val))
	case int64:
		return decimal.NewFromInt(val)
	case float64:
		return decimal.NewFromFloat(val)
	case string:
		d, err := decimal.NewFromString(val)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		d, err := decimal.NewFromString(fmt.Sprintf("%v", v))
		if err != nil {
			return decimal.Zero
		}
		return d
	}
}
