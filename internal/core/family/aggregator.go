package family

import (
	"errors"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/baditaflorin/go_thrones_audit/internal/core/domain"
	"github.com/baditaflorin/go_thrones_audit/internal/ports"
)

// HeraldicPrefix is the token stripped from the front of raw family names.
const HeraldicPrefix = "House"

// DefaultThreshold is the minimum similarity accepted for a fuzzy correction.
const DefaultThreshold = 0.8

// Config holds configuration for the family aggregator.
type Config struct {
	Threshold  float64
	Vocabulary domain.Vocabulary
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Threshold:  DefaultThreshold,
		Vocabulary: domain.DefaultVocabulary(),
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 1 {
		return errors.New("threshold must be between 0 and 1")
	}
	if len(c.Vocabulary.Families) == 0 {
		return errors.New("vocabulary must contain at least one family")
	}
	return nil
}

// Aggregator canonicalizes family names and counts characters per family.
type Aggregator struct {
	config     Config
	candidates []string
	logger     ports.Logger
	matcher    ports.Matcher
}

// NewAggregator creates a new family aggregator.
func NewAggregator(config Config, logger ports.Logger, matcher ports.Matcher) (*Aggregator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if matcher == nil {
		return nil, errors.New("matcher is required")
	}

	return &Aggregator{
		config:     config,
		candidates: config.Vocabulary.Candidates(),
		logger:     logger,
		matcher:    matcher,
	}, nil
}

// StripPrefix removes leading "House" tokens and surrounding whitespace.
// The prefix only counts as a token when followed by whitespace or the end of
// the string, so "Housekeeper" is left alone.
func StripPrefix(raw string) string {
	s := strings.TrimSpace(raw)
	for strings.HasPrefix(s, HeraldicPrefix) {
		rest := s[len(HeraldicPrefix):]
		if rest != "" {
			r, _ := utf8.DecodeRuneInString(rest)
			if !unicode.IsSpace(r) {
				break
			}
		}
		s = strings.TrimSpace(rest)
	}
	return s
}

// Resolve returns the vocabulary entry closest to cleaned when its score
// reaches the threshold, and cleaned unchanged otherwise.
func (a *Aggregator) Resolve(cleaned string) string {
	match, ok := a.matcher.BestMatch(cleaned, a.candidates)
	if !ok || match.Score < a.config.Threshold {
		a.logger.Debug("No family match above threshold",
			"family", cleaned,
			"best", match.Candidate,
			"score", match.Score,
		)
		return cleaned
	}
	if match.Candidate != cleaned {
		a.logger.Debug("Corrected family name",
			"family", cleaned,
			"canonical", match.Candidate,
			"score", match.Score,
		)
	}
	return match.Candidate
}

// Aggregate classifies every character as counted, excluded or without a
// family. Family fields are rewritten in place to their canonical value.
func (a *Aggregator) Aggregate(characters []domain.Character) domain.NormalizationResult {
	result := domain.NormalizationResult{
		Counts: make(map[string]int),
		Total:  len(characters),
	}

	for i := range characters {
		c := &characters[i]
		if strings.TrimSpace(c.Family) == "" {
			result.NoFamily++
			continue
		}

		cleaned := StripPrefix(c.Family)
		if cleaned == "" {
			result.NoFamily++
			continue
		}

		canonical := a.Resolve(cleaned)
		c.Family = canonical

		if a.config.Vocabulary.IsExcluded(canonical) {
			result.Excluded++
			continue
		}
		result.Counts[canonical]++
	}

	result.Families = make([]string, 0, len(result.Counts))
	for name := range result.Counts {
		result.Families = append(result.Families, name)
	}
	sort.Strings(result.Families)

	a.logger.Info("Aggregated families",
		"total", result.Total,
		"families", len(result.Families),
		"no_family", result.NoFamily,
		"excluded", result.Excluded,
	)

	return result
}

// Affiliations lists, in input order, whether each character belongs to one
// of the families counted in result.
func Affiliations(characters []domain.Character, result domain.NormalizationResult) []domain.Affiliation {
	out := make([]domain.Affiliation, 0, len(characters))
	for _, c := range characters {
		out = append(out, domain.Affiliation{
			FullName: c.FullName,
			Family:   c.Family,
			Member:   c.Family != "" && result.HasFamily(c.Family),
		})
	}
	return out
}
