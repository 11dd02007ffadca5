package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_thrones_audit/internal/core/audit"
)

// step is one audit check rendered to the report writer.
type step func(ctx context.Context, a *app) error

func runStatus(ctx context.Context, a *app) error {
	r, err := a.service.StatusCheck(ctx)
	if err != nil {
		return err
	}
	a.out.Status(r)
	return a.out.Err()
}

func runProfiles(ctx context.Context, a *app) error {
	characters, err := a.service.Profiles(ctx)
	if err != nil {
		return err
	}
	a.out.Profiles(characters)
	return a.out.Err()
}

func runConsistency(ctx context.Context, a *app) error {
	r, err := a.service.Consistency(ctx)
	if err != nil {
		return err
	}
	a.out.Consistency(r)
	return a.out.Err()
}

func runCompleteness(ctx context.Context, a *app) error {
	entries, err := a.service.Completeness(ctx)
	if err != nil {
		return err
	}
	a.out.Completeness(entries)
	return a.out.Err()
}

func runFullNames(ctx context.Context, a *app) error {
	mismatches, err := a.service.FullNames(ctx)
	if err != nil {
		return err
	}
	a.out.FullNames(mismatches)
	return a.out.Err()
}

func runFamilies(ctx context.Context, a *app) error {
	r, err := a.service.Families(ctx)
	if err != nil {
		return err
	}
	a.out.Families(r)
	return a.out.Err()
}

func runImages(ctx context.Context, a *app) error {
	entries, err := a.service.Images(ctx)
	if err != nil {
		return err
	}
	a.out.Images(entries)
	return a.out.Err()
}

func runWriteProbe(ctx context.Context, a *app) error {
	r, err := a.service.WriteProbe(ctx, audit.SampleCharacter())
	if err != nil {
		return err
	}
	a.out.WriteProbe(r)
	return a.out.Err()
}

func newStepCommand(a *app, use, short string, s step) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return s(cmd.Context(), a)
		},
	}
}

func newStatusCommand(a *app) *cobra.Command {
	return newStepCommand(a, "status", "Check the status code of the character list endpoint", runStatus)
}

func newProfilesCommand(a *app) *cobra.Command {
	return newStepCommand(a, "profiles", "Print every character profile", runProfiles)
}

func newConsistencyCommand(a *app) *cobra.Command {
	return newStepCommand(a, "consistency", "Compare the character list with per-ID lookups", runConsistency)
}

func newCompletenessCommand(a *app) *cobra.Command {
	return newStepCommand(a, "completeness", "Report characters with missing fields", runCompleteness)
}

func newFullNamesCommand(a *app) *cobra.Command {
	return newStepCommand(a, "fullnames", "Report full names that do not match first and last name", runFullNames)
}

func newFamiliesCommand(a *app) *cobra.Command {
	return newStepCommand(a, "families", "Normalize family names and print family statistics", runFamilies)
}

func newImagesCommand(a *app) *cobra.Command {
	return newStepCommand(a, "images", "Check that every character image URL is reachable", runImages)
}

func newWriteProbeCommand(a *app) *cobra.Command {
	return newStepCommand(a, "write-probe", "POST a sample character and check whether the catalog stored it", runWriteProbe)
}

// allSteps runs in the same order as the read-only audit.
var allSteps = []step{
	runStatus,
	runProfiles,
	runConsistency,
	runCompleteness,
	runFullNames,
	runFamilies,
	runImages,
}

func newAllCommand(a *app) *cobra.Command {
	return newStepCommand(a, "all", "Run every read-only check in order", func(ctx context.Context, a *app) error {
		for _, s := range allSteps {
			a.out.Break()
			if err := s(ctx, a); err != nil {
				return err
			}
		}
		return nil
	})
}
