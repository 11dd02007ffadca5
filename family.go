// family.go
// Package thronesaudit normalizes and aggregates the family names of characters
// from the Thrones character catalog.
//
// Raw family strings are cleaned of the heraldic "House" prefix and matched
// against a fixed vocabulary using normalized edit similarity:
//
//	score = 1 - levenshtein(a, b) / max(len(a), len(b))
//
// The best candidate is accepted when its score meets the threshold (0.8 by
// default); otherwise the cleaned string is kept as is and counted as a family
// of its own.
package thronesaudit

import (
	"github.com/baditaflorin/go_thrones_audit/internal/adapters/logger"
	"github.com/baditaflorin/go_thrones_audit/internal/adapters/matcher"
	"github.com/baditaflorin/go_thrones_audit/internal/core/domain"
	"github.com/baditaflorin/go_thrones_audit/internal/core/family"
	"github.com/baditaflorin/go_thrones_audit/internal/ports"
	"github.com/baditaflorin/l"
)

type (
	// Character is a single catalog record.
	Character = domain.Character
	// Vocabulary holds canonical family names and excluded sentinels.
	Vocabulary = domain.Vocabulary
	// NormalizationResult is the outcome of Aggregate.
	NormalizationResult = domain.NormalizationResult
	// Affiliation is one line of the membership listing.
	Affiliation = domain.Affiliation
	// Matcher picks the closest vocabulary entry for a family name.
	Matcher = ports.Matcher
)

// DefaultThreshold is the default minimum similarity for a fuzzy correction.
const DefaultThreshold = family.DefaultThreshold

// DefaultVocabulary returns the family vocabulary of the Thrones catalog.
func DefaultVocabulary() Vocabulary {
	return domain.DefaultVocabulary()
}

// FamilyNormalizer canonicalizes family names and aggregates characters by family.
type FamilyNormalizer struct {
	aggregator *family.Aggregator
	logger     ports.Logger
}

// FamilyOption defines a functional option for configuring FamilyNormalizer.
type FamilyOption func(*familyConfig)

type familyConfig struct {
	Threshold  float64
	Vocabulary Vocabulary
	Logger     ports.Logger
	Matcher    ports.Matcher
}

// WithThreshold sets the minimum similarity a correction must reach.
func WithThreshold(th float64) FamilyOption {
	return func(cfg *familyConfig) {
		cfg.Threshold = th
	}
}

// WithVocabulary sets the canonical and excluded family names.
func WithVocabulary(v Vocabulary) FamilyOption {
	return func(cfg *familyConfig) {
		cfg.Vocabulary = v
	}
}

// WithLogger sets a custom logger.
func WithLogger(l l.Logger) FamilyOption {
	return func(cfg *familyConfig) {
		cfg.Logger = logger.FromExisting(l)
	}
}

// WithPortsLogger sets a logger already adapted to the internal logging interface.
func WithPortsLogger(lg ports.Logger) FamilyOption {
	return func(cfg *familyConfig) {
		cfg.Logger = lg
	}
}

// WithMatcher replaces the similarity matcher.
func WithMatcher(m Matcher) FamilyOption {
	return func(cfg *familyConfig) {
		cfg.Matcher = m
	}
}

// NewFamilyNormalizer creates a new FamilyNormalizer.
func NewFamilyNormalizer(opts ...FamilyOption) (*FamilyNormalizer, error) {
	defaultConfig := family.DefaultConfig()

	config := &familyConfig{
		Threshold:  defaultConfig.Threshold,
		Vocabulary: defaultConfig.Vocabulary,
	}

	for _, opt := range opts {
		opt(config)
	}

	if config.Logger == nil {
		var err error
		config.Logger, err = createDefaultLogger()
		if err != nil {
			return nil, err
		}
	}

	if config.Matcher == nil {
		config.Matcher = matcher.NewLevenshtein(nil)
	}

	coreConfig := family.Config{
		Threshold:  config.Threshold,
		Vocabulary: config.Vocabulary,
	}
	aggregator, err := family.NewAggregator(coreConfig, config.Logger, config.Matcher)
	if err != nil {
		return nil, err
	}

	return &FamilyNormalizer{
		aggregator: aggregator,
		logger:     config.Logger,
	}, nil
}

// StripPrefix removes the heraldic "House" prefix and surrounding whitespace.
func StripPrefix(raw string) string {
	return family.StripPrefix(raw)
}

// Resolve returns the canonical family for an already cleaned name, or the
// name itself when nothing in the vocabulary is close enough.
func (fn *FamilyNormalizer) Resolve(cleaned string) string {
	return fn.aggregator.Resolve(cleaned)
}

// Aggregate classifies characters by family and rewrites their Family field
// in place to the canonical value.
func (fn *FamilyNormalizer) Aggregate(characters []Character) NormalizationResult {
	return fn.aggregator.Aggregate(characters)
}

// Affiliations lists whether each character belongs to a counted family.
func (fn *FamilyNormalizer) Affiliations(characters []Character, result NormalizationResult) []Affiliation {
	return family.Affiliations(characters, result)
}
