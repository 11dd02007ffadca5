package domain

import "sort"

// Character is a single record of the character catalog.
type Character struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName"`
	Title     string `json:"title"`
	Family    string `json:"family"`
	Image     string `json:"image"`
	ImageURL  string `json:"imageUrl"`
}

// Vocabulary holds the canonical family names and the sentinel values that
// stand for "no real family".
type Vocabulary struct {
	Families []string
	Excluded []string
}

// DefaultVocabulary returns the family vocabulary of the Thrones catalog.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Families: []string{
			"Baelish", "Baratheon", "Bolton", "Bronn", "Clegane", "Free Folk", "Greyjoy",
			"Lannister", "Lorath", "Mormont", "Naathi", "Naharis", "Qyburn", "Sand", "Seaworth",
			"Sparrow", "Stark", "Targaryen", "Tarly", "Tarth", "Tyrell", "Viper", "Worm",
		},
		Excluded: []string{"None", "Unknown"},
	}
}

// Candidates returns the union of canonical and excluded names, sorted and
// without duplicates.
func (v Vocabulary) Candidates() []string {
	seen := make(map[string]struct{}, len(v.Families)+len(v.Excluded))
	out := make([]string, 0, len(v.Families)+len(v.Excluded))
	for _, group := range [][]string{v.Families, v.Excluded} {
		for _, name := range group {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// IsExcluded reports whether name is one of the excluded sentinels.
func (v Vocabulary) IsExcluded(name string) bool {
	for _, e := range v.Excluded {
		if e == name {
			return true
		}
	}
	return false
}

// NormalizationResult holds the outcome of aggregating a batch of characters
// by family.
type NormalizationResult struct {
	// Counts maps a canonical family name to its member count.
	Counts map[string]int
	// Families lists the distinct families observed, sorted ascending.
	Families []string
	// NoFamily counts characters without a resolvable family.
	NoFamily int
	// Excluded counts characters whose family matched an excluded sentinel.
	Excluded int
	// Total is the number of characters in the batch.
	Total int
}

// WithFamily returns the number of characters counted under a real family.
func (r NormalizationResult) WithFamily() int {
	return r.Total - r.NoFamily - r.Excluded
}

// HasFamily reports whether name was observed as a counted family.
func (r NormalizationResult) HasFamily(name string) bool {
	_, ok := r.Counts[name]
	return ok
}

// Affiliation is a single line of the membership listing.
type Affiliation struct {
	FullName string
	Family   string
	Member   bool
}

// Match is the outcome of a best-match lookup.
type Match struct {
	Candidate string
	Score     float64
}
