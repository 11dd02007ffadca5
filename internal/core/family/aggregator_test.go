package family

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_thrones_audit/internal/adapters/logger"
	"github.com/baditaflorin/go_thrones_audit/internal/adapters/matcher"
	"github.com/baditaflorin/go_thrones_audit/internal/core/domain"
)

func newTestAggregator(t *testing.T) *Aggregator {
	t.Helper()
	agg, err := NewAggregator(DefaultConfig(), logger.Nop(), matcher.NewLevenshtein(nil))
	require.NoError(t, err)
	return agg
}

func characters(families ...string) []domain.Character {
	out := make([]domain.Character, len(families))
	for i, f := range families {
		out[i] = domain.Character{ID: i, FullName: "Character " + f, Family: f}
	}
	return out
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "Default", config: DefaultConfig()},
		{name: "Zero threshold", config: Config{Threshold: 0, Vocabulary: domain.DefaultVocabulary()}},
		{name: "Negative threshold", config: Config{Threshold: -0.1, Vocabulary: domain.DefaultVocabulary()}, wantErr: true},
		{name: "Threshold above one", config: Config{Threshold: 1.5, Vocabulary: domain.DefaultVocabulary()}, wantErr: true},
		{name: "Empty vocabulary", config: Config{Threshold: 0.8}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewAggregatorRequiresCollaborators(t *testing.T) {
	_, err := NewAggregator(DefaultConfig(), nil, matcher.NewLevenshtein(nil))
	assert.Error(t, err)

	_, err = NewAggregator(DefaultConfig(), logger.Nop(), nil)
	assert.Error(t, err)
}

func TestStripPrefix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "House Stark", want: "Stark"},
		{in: "Stark", want: "Stark"},
		{in: "  House   Lannister  ", want: "Lannister"},
		{in: "House", want: ""},
		{in: "", want: ""},
		{in: "House House Tully", want: "Tully"},
		{in: "Housekeeper", want: "Housekeeper"},
		{in: "house Stark", want: "house Stark"},
		{in: "Stark House", want: "Stark House"},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got := StripPrefix(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, StripPrefix(got), "StripPrefix should be idempotent")
		})
	}
}

func TestResolve(t *testing.T) {
	agg := newTestAggregator(t)

	tests := []struct {
		in   string
		want string
	}{
		{in: "Lanister", want: "Lannister"},
		{in: "Starkk", want: "Stark"},
		{in: "Targaryan", want: "Targaryen"},
		{in: "Lannister", want: "Lannister"},
		{in: "Unkown", want: "Unknown"},
		{in: "Zzxqplorp", want: "Zzxqplorp"},
		{in: "Tully", want: "Tully"},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, agg.Resolve(tc.in))
		})
	}
}

func TestResolveHonoursThreshold(t *testing.T) {
	strict := DefaultConfig()
	strict.Threshold = 1
	agg, err := NewAggregator(strict, logger.Nop(), matcher.NewLevenshtein(nil))
	require.NoError(t, err)

	assert.Equal(t, "Lanister", agg.Resolve("Lanister"))
	assert.Equal(t, "Lannister", agg.Resolve("Lannister"))
}

func TestAggregate(t *testing.T) {
	agg := newTestAggregator(t)
	batch := characters("House Stark", "Stark", "House Lanister", "", "   ", "None", "Unknown", "Zzxqplorp", "House")

	result := agg.Aggregate(batch)

	assert.Equal(t, map[string]int{"Stark": 2, "Lannister": 1, "Zzxqplorp": 1}, result.Counts)
	assert.Equal(t, []string{"Lannister", "Stark", "Zzxqplorp"}, result.Families)
	assert.Equal(t, 3, result.NoFamily)
	assert.Equal(t, 2, result.Excluded)
	assert.Equal(t, len(batch), result.Total)
	assert.Equal(t, 4, result.WithFamily())

	// Family fields are rewritten in place.
	assert.Equal(t, "Stark", batch[0].Family)
	assert.Equal(t, "Lannister", batch[2].Family)
	assert.Equal(t, "", batch[3].Family)
	assert.Equal(t, "None", batch[5].Family)
	assert.Equal(t, "Zzxqplorp", batch[7].Family)
}

func TestAggregateNoFamilyDoesNotTouchCounts(t *testing.T) {
	agg := newTestAggregator(t)

	result := agg.Aggregate(characters("", "\t", " "))

	assert.Empty(t, result.Counts)
	assert.Empty(t, result.Families)
	assert.Equal(t, 3, result.NoFamily)
	assert.Zero(t, result.Excluded)
}

func TestAggregateExactMatchCountsOnce(t *testing.T) {
	agg := newTestAggregator(t)
	vocab := domain.DefaultVocabulary()

	for _, name := range vocab.Families {
		t.Run(name, func(t *testing.T) {
			batch := characters(name)
			result := agg.Aggregate(batch)
			assert.Equal(t, map[string]int{name: 1}, result.Counts)
			assert.Equal(t, name, batch[0].Family)
		})
	}
}

func TestAggregateExcludedNeverCounted(t *testing.T) {
	agg := newTestAggregator(t)

	result := agg.Aggregate(characters("None", "House None", "Unknown", "Unknwn"))

	assert.Equal(t, 4, result.Excluded)
	for _, sentinel := range domain.DefaultVocabulary().Excluded {
		assert.NotContains(t, result.Counts, sentinel)
	}
}

func TestAggregateConservesTotal(t *testing.T) {
	agg := newTestAggregator(t)
	batches := [][]string{
		{},
		{""},
		{"House Stark", "House Targaryen", "Tarly", "Baratheon", "None"},
		{"Greyjoi", "Free folk", "House Tyrel", "Night's Watch", "", "Unknown", "Sandd"},
	}

	for _, families := range batches {
		result := agg.Aggregate(characters(families...))
		sum := 0
		for _, n := range result.Counts {
			sum += n
		}
		assert.Equal(t, len(families), sum+result.NoFamily+result.Excluded, "batch %v", families)
	}
}

func TestAggregateIsIdempotent(t *testing.T) {
	agg := newTestAggregator(t)
	batch := characters("House Stark", "Lanister", "House Tyrel", "Zzxqplorp", "None", "", "Night's Watch")

	first := agg.Aggregate(batch)
	snapshot := append([]domain.Character(nil), batch...)
	second := agg.Aggregate(batch)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, batch)
}

func TestAggregateUsesConfiguredVocabulary(t *testing.T) {
	config := Config{
		Threshold: 0.8,
		Vocabulary: domain.Vocabulary{
			Families: []string{"Tully", "Arryn"},
			Excluded: []string{"Unaffiliated"},
		},
	}
	agg, err := NewAggregator(config, logger.Nop(), matcher.NewLevenshtein(nil))
	require.NoError(t, err)

	result := agg.Aggregate(characters("House Tuly", "Arryn", "Unafiliated", "Stark"))

	assert.Equal(t, map[string]int{"Tully": 1, "Arryn": 1, "Stark": 1}, result.Counts)
	assert.Equal(t, 1, result.Excluded)
}

func TestAffiliations(t *testing.T) {
	agg := newTestAggregator(t)
	batch := []domain.Character{
		{FullName: "Jon Snow", Family: "House Stark"},
		{FullName: "Bronn", Family: "None"},
		{FullName: "Varys", Family: ""},
	}

	result := agg.Aggregate(batch)
	got := Affiliations(batch, result)

	assert.Equal(t, []domain.Affiliation{
		{FullName: "Jon Snow", Family: "Stark", Member: true},
		{FullName: "Bronn", Family: "None", Member: false},
		{FullName: "Varys", Family: "", Member: false},
	}, got)
}
