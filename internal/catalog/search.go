package catalog

import (
	"sort"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// minSearchScore drops matches that share little more than a few letters.
const minSearchScore = 0.75

// Match is a search hit.
type Match struct {
	Entry *MovieEntry
	Score float64
}

// Search ranks entries by how closely their title matches query. Titles that
// contain the query outright score 1; the rest are scored with Jaro-Winkler
// similarity. Ties keep catalog order.
func (c *Catalog) Search(query string) []Match {
	q := normalizeTitle(query)
	if q == "" {
		return nil
	}

	var matches []Match
	for _, m := range c.movies {
		t := normalizeTitle(m.Title)
		score := 1.0
		if !strings.Contains(t, q) {
			score = float64(edlib.JaroWinklerSimilarity(t, q))
		}
		if score >= minSearchScore {
			matches = append(matches, Match{Entry: m, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// normalizeTitle lower-cases, strips accents and collapses whitespace so
// "Amélie" and "amelie" compare equal.
func normalizeTitle(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}
