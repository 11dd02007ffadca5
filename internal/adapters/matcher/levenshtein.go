package matcher

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/baditaflorin/go_thrones_audit/internal/adapters/normalizer"
	"github.com/baditaflorin/go_thrones_audit/internal/core/domain"
	"github.com/baditaflorin/go_thrones_audit/internal/ports"
)

// Levenshtein scores strings by normalized edit similarity:
//
//	score = 1 - distance(a, b) / max(len(a), len(b))
//
// Lengths are counted in runes. Two empty strings score 1.
type Levenshtein struct {
	normalizer ports.Normalizer
}

// NewLevenshtein creates a matcher. A nil normalizer selects the default one.
func NewLevenshtein(n ports.Normalizer) *Levenshtein {
	if n == nil {
		n = normalizer.NewDefaultNormalizer()
	}
	return &Levenshtein{normalizer: n}
}

// Similarity returns the normalized edit similarity of a and b in [0, 1].
func (m *Levenshtein) Similarity(a, b string) float64 {
	a = m.normalizer.Normalize(a)
	b = m.normalizer.Normalize(b)

	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1
	}

	distance := levenshtein.ComputeDistance(a, b)
	return 1 - float64(distance)/float64(longest)
}

// BestMatch returns the candidate with the highest score. Equal scores are
// broken by picking the lexicographically smallest candidate, so the result
// does not depend on the order of candidates.
func (m *Levenshtein) BestMatch(s string, candidates []string) (domain.Match, bool) {
	var best domain.Match
	found := false
	for _, c := range candidates {
		score := m.Similarity(s, c)
		if !found || score > best.Score || (score == best.Score && c < best.Candidate) {
			best = domain.Match{Candidate: c, Score: score}
			found = true
		}
	}
	return best, found
}
