package match

import (
	"sort"
	"strings"
	"unicode"
)

// DefaultMinScore is the lowest similarity Suggest reports.
const DefaultMinScore = 0.7

// DefaultMaxSuggestions bounds the number of names Suggest returns.
const DefaultMaxSuggestions = 3

// NormalizeName folds a grammar or editor name for fuzzy comparison: lower
// case, with '-', '_', ':' and spaces removed. A leading "block_" editor
// prefix is dropped so "block_para" compares against "p"-like kinds.
func NormalizeName(s string) string {
	s = strings.TrimPrefix(strings.ToLower(s), "block_")

	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		switch {
		case r == '-' || r == '_' || r == ':' || unicode.IsSpace(r):
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

// Candidate is a known name scored against an unknown one.
type Candidate struct {
	Name  string
	Score float64
}

type candidates []Candidate

func (c candidates) Len() int      { return len(c) }
func (c candidates) Swap(i, j int) { c[i], c[j] = c[j], c[i] }
func (c candidates) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// Rank scores every known name against name, best first. Ties are broken by
// name so the result is deterministic.
func Rank(name string, known []string) []Candidate {
	norm := NormalizeName(name)
	out := make(candidates, 0, len(known))

	for _, k := range known {
		out = append(out, Candidate{Name: k, Score: Similarity(norm, NormalizeName(k))})
	}

	sort.Sort(out)

	return out
}

// Suggest returns up to DefaultMaxSuggestions known names whose similarity to
// name is at least DefaultMinScore.
func Suggest(name string, known []string) []string {
	var out []string

	for _, c := range Rank(name, known) {
		if c.Score < DefaultMinScore || len(out) == DefaultMaxSuggestions {
			break
		}

		out = append(out, c.Name)
	}

	return out
}
