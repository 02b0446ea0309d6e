package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/briefing/backend/internal/domain/document"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_ReferenceSections(t *testing.T) {
	payload, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "Executive Summary", payload.Title())
	assert.Equal(t, "2026.10", payload.Meta().Version)
	assert.Equal(t, document.AllSectionKinds(), payload.Kinds())

	for _, s := range payload.Sections() {
		assert.NotEmpty(t, s.Title(), s.Kind().String())
		assert.NotZero(t, s.ItemCount(), s.Kind().String())
	}
}

func TestDefault_FooterTitleFallsBack(t *testing.T) {
	payload, err := Default()
	require.NoError(t, err)

	footer, ok := payload.Find(document.SectionKindFooter)
	require.True(t, ok)
	assert.Equal(t, "Footer", footer.Title())
}

func TestDefault_MetricItems(t *testing.T) {
	payload, err := Default()
	require.NoError(t, err)

	metrics, ok := payload.Find(document.SectionKindMetrics)
	require.True(t, ok)

	items := metrics.Items()
	require.NotEmpty(t, items)

	arr := items[0]
	assert.Equal(t, "Annual recurring revenue", arr.Label())
	assert.Equal(t, document.EmphasisPositive, arr.Emphasis())
	amount, ok := arr.Amount()
	require.True(t, ok)
	assert.True(t, amount.Equal(decimal.NewFromInt(4200000)))
	assert.Equal(t, document.ValueFormatMoney, arr.Format())

	emphases := make(map[document.Emphasis]bool)
	for _, it := range items {
		emphases[it.Emphasis()] = true
	}
	assert.True(t, emphases[document.EmphasisCritical])
	assert.True(t, emphases[document.EmphasisWarning])
}

func TestParse(t *testing.T) {
	data := []byte(`
meta:
  title: Board Brief
sections:
  - kind: next_steps
    items:
      - value: Sign off
  - kind: risk
    title: Risks
    items:
      - label: Vendor
        value: Single supplier
        emphasis: critical
        amount: not-a-number
`)

	payload, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "Board Brief", payload.Title())
	assert.Equal(t, []document.SectionKind{document.SectionKindNextSteps, document.SectionKindRisk}, payload.Kinds())

	risk, _ := payload.Find(document.SectionKindRisk)
	item := risk.Items()[0]
	assert.Equal(t, document.EmphasisCritical, item.Emphasis())
	_, hasAmount := item.Amount()
	assert.False(t, hasAmount)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("sections: [unterminated"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode payload")
}

func TestLoad(t *testing.T) {
	t.Run("empty path uses embedded payload", func(t *testing.T) {
		payload, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 12, payload.Len())
	})

	t.Run("reads override file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "summary.yaml")
		require.NoError(t, os.WriteFile(path, []byte("meta:\n  title: Override\nsections:\n  - kind: tldr\n"), 0o644))

		payload, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "Override", payload.Title())
		assert.Equal(t, 1, payload.Len())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestDefaultBytes_IsCopy(t *testing.T) {
	a := DefaultBytes()
	a[0] = 'X'
	assert.NotEqual(t, a[0], DefaultBytes()[0])
}
