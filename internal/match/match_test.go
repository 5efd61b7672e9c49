package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		{"", "", 0},
		{"video", "video", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"p", "pre", 2},
		{"kitten", "sitting", 3},
		{"mediasource", "mediasorce", 1},
		{"shortdesc", "shortdescr", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.expected, Levenshtein(tt.b, tt.a), "distance must be symmetric")
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 1.0, Similarity("alt", "alt"), 1e-9)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
	assert.InDelta(t, 0.5, Similarity("ab", "ax"), 1e-9)
}

func TestNormalizeName(t *testing.T) {
	tests := map[string]string{
		"media-source":       "mediasource",
		"block_media_source": "mediasource",
		"xml:lang":           "xmllang",
		"Short Desc":         "shortdesc",
	}

	for in, want := range tests {
		assert.Equal(t, want, NormalizeName(in), in)
	}
}

func TestSuggest(t *testing.T) {
	known := []string{"media-source", "media-track", "media-muted", "shortdesc", "p"}

	assert.Equal(t, []string{"media-source"}, Suggest("media-sorce", known))
	assert.Equal(t, []string{"shortdesc"}, Suggest("short_desc", known))
	assert.Empty(t, Suggest("simpletable", known))
}

func TestRankIsDeterministic(t *testing.T) {
	known := []string{"ul", "ol", "dl"}

	ranked := Rank("xl", known)
	assert.Equal(t, []string{"dl", "ol", "ul"}, []string{ranked[0].Name, ranked[1].Name, ranked[2].Name})
}
