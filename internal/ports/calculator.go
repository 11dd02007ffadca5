package ports

import "github.com/baditaflorin/go_thrones_audit/internal/core/domain"

// SimilarityCalculator scores how alike two strings are on a 0-1 scale.
type SimilarityCalculator interface {
	Similarity(a, b string) float64
}

// Matcher picks the closest candidate for a string.
type Matcher interface {
	SimilarityCalculator
	// BestMatch returns the top-ranked candidate. ok is false when candidates is empty.
	BestMatch(s string, candidates []string) (m domain.Match, ok bool)
}
