package render

import (
	"testing"

	"github.com/briefing/backend/internal/domain/document"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		input    any
		expected string
	}{
		{decimal.NewFromInt(4200000), "$4.2M"},
		{"6800000", "$6.8M"},
		{300000, "$300K"},
		{1250, "$1.3K"},
		{950, "$950"},
		{"1500000000", "$1.5B"},
		{-2100000, "-$2.1M"},
		{"not a number", "$0"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatMoney(tt.input))
		})
	}
}

func TestFormatMoney_UnitBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"dollars round into thousands", "999.6", "$1K"},
		{"thousands round into millions", 999950, "$1M"},
		{"millions round into billions", 999960000, "$1B"},
		{"just below the rounding point", 999940, "$999.9K"},
		{"negative boundary", -999950, "-$1M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatMoney(tt.input))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "61%", formatPercent("0.61"))
	assert.Equal(t, "12.5%", formatPercent(0.125))
	assert.Equal(t, "100%", formatPercent(1))
}

func TestTemplateEngine_FormatCount(t *testing.T) {
	e := NewTemplateEngine()

	assert.Equal(t, "312", e.formatCount("312"))
	assert.Equal(t, "12,500", e.formatCount(12500))
	assert.Equal(t, "1,000,000", e.formatCount(int64(1000000)))
	assert.Equal(t, "-4,000", e.formatCount(-4000))
}

func TestTemplateEngine_FormatAmount(t *testing.T) {
	e := NewTemplateEngine()

	assert.Equal(t, "$4.2M", e.formatAmount("4200000", document.ValueFormatMoney))
	assert.Equal(t, "61%", e.formatAmount("0.61", document.ValueFormatPercent))
	assert.Equal(t, "2,048", e.formatAmount("2048", document.ValueFormatCount))
	assert.Equal(t, "7.5", e.formatAmount("7.5", document.ValueFormatNone))
}

func TestTemplateEngine_GetFuncMap(t *testing.T) {
	e := NewTemplateEngine()

	funcs := e.GetFuncMap()
	assert.Contains(t, funcs, "formatAmount")

	delete(funcs, "formatAmount")
	assert.Contains(t, e.GetFuncMap(), "formatAmount")
}
