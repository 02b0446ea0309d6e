// Package content loads the executive summary payload.
//
// The default payload is embedded into the binary at build time. An override
// file may be supplied; either way the payload is read once and never changes.
package content

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/briefing/backend/internal/domain/document"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed executive_summary.yaml
var defaultPayload []byte

// payloadFile is the on-disk shape of a payload document
type payloadFile struct {
	Version  string        `yaml:"version"`
	Meta     metaFile      `yaml:"meta"`
	Sections []sectionFile `yaml:"sections"`
}

type metaFile struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Date     string `yaml:"date"`
	Audience string `yaml:"audience"`
}

type sectionFile struct {
	Kind  string     `yaml:"kind"`
	Title string     `yaml:"title"`
	Lead  string     `yaml:"lead"`
	Items []itemFile `yaml:"items"`
}

type itemFile struct {
	Label    string `yaml:"label"`
	Value    string `yaml:"value"`
	Detail   string `yaml:"detail"`
	Emphasis string `yaml:"emphasis"`
	Amount   string `yaml:"amount"`
	Format   string `yaml:"format"`
}

// Default returns the payload embedded at build time
func Default() (*document.Payload, error) {
	return Parse(defaultPayload)
}

// DefaultBytes returns the raw embedded payload document
func DefaultBytes() []byte {
	out := make([]byte, len(defaultPayload))
	copy(out, defaultPayload)
	return out
}

// Load returns the payload at path, or the embedded payload when path is empty
func Load(path string) (*document.Payload, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML payload document.
// The payload is trusted content: it is decoded, not validated.
func Parse(data []byte) (*document.Payload, error) {
	var file payloadFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}

	sections := make([]document.Section, 0, len(file.Sections))
	for _, s := range file.Sections {
		items := make([]document.Item, 0, len(s.Items))
		for _, it := range s.Items {
			items = append(items, buildItem(it))
		}
		kind := document.SectionKind(strings.ToUpper(strings.TrimSpace(s.Kind)))
		sections = append(sections, document.NewSection(kind, s.Title, strings.TrimSpace(s.Lead), items...))
	}

	meta := document.Meta{
		Title:    file.Meta.Title,
		Subtitle: file.Meta.Subtitle,
		Date:     file.Meta.Date,
		Version:  file.Version,
		Audience: file.Meta.Audience,
	}
	return document.NewPayload(meta, sections...), nil
}

func buildItem(it itemFile) document.Item {
	var opts []document.ItemOption
	if it.Detail != "" {
		opts = append(opts, document.WithDetail(it.Detail))
	}
	if it.Emphasis != "" {
		opts = append(opts, document.WithEmphasis(document.Emphasis(strings.ToUpper(it.Emphasis))))
	}
	if it.Amount != "" {
		// Unparseable amounts are dropped; the display value still renders.
		if amount, err := decimal.NewFromString(it.Amount); err == nil {
			opts = append(opts, document.WithAmount(amount, document.ValueFormat(strings.ToLower(it.Format))))
		}
	}
	return document.NewItem(it.Label, it.Value, opts...)
}
