package printing

import (
	"fmt"

	"github.com/briefing/backend/internal/domain/shared"
)

// Margins represents the page margins in millimeters
type Margins struct {
	Top    int `json:"top"`    // Top margin in mm
	Right  int `json:"right"`  // Right margin in mm
	Bottom int `json:"bottom"` // Bottom margin in mm
	Left   int `json:"left"`   // Left margin in mm
}

// NewMargins creates a new Margins value object
func NewMargins(top, right, bottom, left int) (Margins, error) {
	if top < 0 || right < 0 || bottom < 0 || left < 0 {
		return Margins{}, shared.NewDomainError("INVALID_MARGINS", "Margins cannot be negative")
	}
	if top > 100 || right > 100 || bottom > 100 || left > 100 {
		return Margins{}, shared.NewDomainError("INVALID_MARGINS", "Margins cannot exceed 100mm")
	}
	return Margins{
		Top:    top,
		Right:  right,
		Bottom: bottom,
		Left:   left,
	}, nil
}

// UniformMargins returns the same margin on all four sides
func UniformMargins(mm int) Margins {
	return Margins{Top: mm, Right: mm, Bottom: mm, Left: mm}
}

// DefaultMargins returns the page margins of the reference document (15mm)
func DefaultMargins() Margins {
	return UniformMargins(15)
}

// IsZero returns true if all margins are zero
func (m Margins) IsZero() bool {
	return m.Top == 0 && m.Right == 0 && m.Bottom == 0 && m.Left == 0
}

// Equals checks if two Margins are equal
func (m Margins) Equals(other Margins) bool {
	return m.Top == other.Top &&
		m.Right == other.Right &&
		m.Bottom == other.Bottom &&
		m.Left == other.Left
}

// CSS returns the margins as a CSS margin shorthand, collapsed where possible
func (m Margins) CSS() string {
	switch {
	case m.Top == m.Right && m.Right == m.Bottom && m.Bottom == m.Left:
		return fmt.Sprintf("%dmm", m.Top)
	case m.Top == m.Bottom && m.Right == m.Left:
		return fmt.Sprintf("%dmm %dmm", m.Top, m.Right)
	default:
		return fmt.Sprintf("%dmm %dmm %dmm %dmm", m.Top, m.Right, m.Bottom, m.Left)
	}
}
