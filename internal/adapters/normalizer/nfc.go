package normalizer

import (
	"golang.org/x/text/unicode/norm"

	"github.com/baditaflorin/go_thrones_audit/internal/ports"
)

// NFCNormalizer only composes text to NFC. Whitespace is kept as is.
type NFCNormalizer struct{}

// NewNFCNormalizer creates a new NFC-only normalizer.
func NewNFCNormalizer() ports.Normalizer {
	return &NFCNormalizer{}
}

// Normalize returns text in NFC form.
func (n *NFCNormalizer) Normalize(text string) string {
	return norm.NFC.String(text)
}
