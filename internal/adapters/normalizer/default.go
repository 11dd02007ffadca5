package normalizer

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/baditaflorin/go_thrones_audit/internal/ports"
)

// DefaultNormalizer composes text to NFC and collapses runs of whitespace.
// Case is preserved so that matching stays case-sensitive.
type DefaultNormalizer struct{}

// NewDefaultNormalizer creates a new default normalizer.
func NewDefaultNormalizer() ports.Normalizer {
	return &DefaultNormalizer{}
}

// Normalize returns text in NFC form with surrounding whitespace trimmed and
// inner whitespace runs replaced by a single space.
func (n *DefaultNormalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}
	return strings.Join(strings.Fields(norm.NFC.String(text)), " ")
}
