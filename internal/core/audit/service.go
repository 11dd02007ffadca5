package audit

import (
	"context"
	"errors"
	"fmt"

	"github.com/baditaflorin/go_thrones_audit/internal/core/domain"
	"github.com/baditaflorin/go_thrones_audit/internal/core/family"
	"github.com/baditaflorin/go_thrones_audit/internal/ports"
)

// CharactersPath is the catalog path of the character list.
const CharactersPath = "/Characters"

// StatusOK is the only status code treated as success.
const StatusOK = 200

// FamilyAggregator aggregates characters by family.
type FamilyAggregator interface {
	Aggregate(characters []domain.Character) domain.NormalizationResult
}

// StatusReport is the outcome of the list endpoint status check.
type StatusReport struct {
	Code int
}

// OK reports whether the endpoint answered 200.
func (r StatusReport) OK() bool { return r.Code == StatusOK }

// FetchError records a character that could not be fetched individually.
type FetchError struct {
	ID  int
	Err error
}

// ConsistencyReport compares the list endpoint with per-ID lookups.
type ConsistencyReport struct {
	Checked      int
	Inconsistent []int
	Failed       []FetchError
}

// FamilyReport is the outcome of family normalization.
type FamilyReport struct {
	Characters   []domain.Character
	Result       domain.NormalizationResult
	Affiliations []domain.Affiliation
}

// ImageEntry is the probe outcome for one character image.
type ImageEntry struct {
	ID    int
	Probe ports.ImageProbe
	Err   error
}

// WriteProbeReport records the outcome of the write probe.
type WriteProbeReport struct {
	Sample          domain.Character
	PostStatus      int
	EmptyPostStatus int
	// Fetched is the record read back; nil when the read failed.
	Fetched  *domain.Character
	FetchErr error
}

// Updated reports whether the record read back equals the posted sample.
func (r WriteProbeReport) Updated() bool {
	return r.Fetched != nil && *r.Fetched == r.Sample
}

// SampleCharacter returns the record the write probe posts.
func SampleCharacter() domain.Character {
	return domain.Character{
		ID:        1,
		FirstName: "New_first_name",
		LastName:  "New_last_name",
		FullName:  "New_full_name",
		Title:     "New_title",
		Family:    "New_family",
		Image:     "New_image",
		ImageURL:  "https://thronesapi.com/assets/images/new_image_path.jpg",
	}
}

// Service runs audit checks against a character source.
type Service struct {
	source     ports.CharacterSource
	aggregator FamilyAggregator
	normalizer ports.Normalizer
	logger     ports.Logger
}

// NewService creates a new audit service.
func NewService(source ports.CharacterSource, aggregator FamilyAggregator, normalizer ports.Normalizer, logger ports.Logger) (*Service, error) {
	if source == nil {
		return nil, errors.New("character source is required")
	}
	if aggregator == nil {
		return nil, errors.New("family aggregator is required")
	}
	if normalizer == nil {
		return nil, errors.New("normalizer is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Service{
		source:     source,
		aggregator: aggregator,
		normalizer: normalizer,
		logger:     logger,
	}, nil
}

// StatusCheck reports the status code of the character list endpoint.
func (s *Service) StatusCheck(ctx context.Context) (StatusReport, error) {
	code, err := s.source.Status(ctx, CharactersPath)
	if err != nil {
		return StatusReport{}, fmt.Errorf("status check: %w", err)
	}
	s.logger.Info("Status check completed", "status", code)
	return StatusReport{Code: code}, nil
}

// Profiles returns every character profile.
func (s *Service) Profiles(ctx context.Context) ([]domain.Character, error) {
	characters, err := s.source.ListCharacters(ctx)
	if err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	return characters, nil
}

// Consistency fetches every listed character by ID and reports records that
// differ from the list. Individual fetch failures are recorded, not fatal.
func (s *Service) Consistency(ctx context.Context) (ConsistencyReport, error) {
	characters, err := s.Profiles(ctx)
	if err != nil {
		return ConsistencyReport{}, err
	}

	var report ConsistencyReport
	for _, listed := range characters {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Checked++

		fetched, err := s.source.GetCharacter(ctx, listed.ID)
		if err != nil {
			s.logger.Warn("Failed to fetch character", "id", listed.ID, "error", err)
			report.Failed = append(report.Failed, FetchError{ID: listed.ID, Err: err})
			continue
		}
		if fetched != listed {
			s.logger.Debug("Inconsistent character data", "id", listed.ID)
			report.Inconsistent = append(report.Inconsistent, listed.ID)
		}
	}

	s.logger.Info("Consistency check completed",
		"checked", report.Checked,
		"inconsistent", len(report.Inconsistent),
		"failed", len(report.Failed),
	)
	return report, nil
}

// Completeness reports missing fields for every character.
func (s *Service) Completeness(ctx context.Context) ([]CompletenessEntry, error) {
	characters, err := s.Profiles(ctx)
	if err != nil {
		return nil, err
	}
	return CheckCompleteness(characters), nil
}

// FullNames reports characters whose full name does not match first and last name.
func (s *Service) FullNames(ctx context.Context) ([]FullNameMismatch, error) {
	characters, err := s.Profiles(ctx)
	if err != nil {
		return nil, err
	}
	return CheckFullNames(characters, s.normalizer), nil
}

// Families normalizes family names and aggregates characters by family.
func (s *Service) Families(ctx context.Context) (FamilyReport, error) {
	characters, err := s.Profiles(ctx)
	if err != nil {
		return FamilyReport{}, err
	}
	result := s.aggregator.Aggregate(characters)
	return FamilyReport{
		Characters:   characters,
		Result:       result,
		Affiliations: family.Affiliations(characters, result),
	}, nil
}

// Images probes the image URL of every character.
func (s *Service) Images(ctx context.Context) ([]ImageEntry, error) {
	characters, err := s.Profiles(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ImageEntry, 0, len(characters))
	for _, c := range characters {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		probe, err := s.source.ProbeURL(ctx, c.ImageURL)
		if err != nil {
			s.logger.Warn("Failed to probe image", "id", c.ID, "url", c.ImageURL, "error", err)
		}
		out = append(out, ImageEntry{ID: c.ID, Probe: probe, Err: err})
	}
	return out, nil
}

// WriteProbe posts sample, posts an empty body, then reads the sample's ID
// back to see whether the catalog accepted the write.
func (s *Service) WriteProbe(ctx context.Context, sample domain.Character) (WriteProbeReport, error) {
	report := WriteProbeReport{Sample: sample}

	code, err := s.source.CreateCharacter(ctx, &sample)
	if err != nil {
		return report, fmt.Errorf("post character: %w", err)
	}
	report.PostStatus = code

	code, err = s.source.CreateCharacter(ctx, nil)
	if err != nil {
		return report, fmt.Errorf("post empty body: %w", err)
	}
	report.EmptyPostStatus = code

	fetched, err := s.source.GetCharacter(ctx, sample.ID)
	if err != nil {
		s.logger.Warn("Failed to read back character", "id", sample.ID, "error", err)
		report.FetchErr = err
	} else {
		report.Fetched = &fetched
	}

	s.logger.Info("Write probe completed",
		"post_status", report.PostStatus,
		"empty_post_status", report.EmptyPostStatus,
		"updated", report.Updated(),
	)
	return report, nil
}
