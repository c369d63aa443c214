package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/tokosena/tokosena/server/internal/model"
	"github.com/tokosena/tokosena/server/internal/textkey"
)

// Matcher tunables. Scores live on a 0 (exact) .. 1 (worst) scale; a candidate
// is kept only when its best field scores at or under the threshold. minMatch
// rejects spurious one-letter matches, and maxDrift bounds how far into a long
// field a match may sit before the location penalty saturates.
const (
	defaultScoreThreshold = 0.3
	defaultMinMatchChars  = 2
	maxLocationDrift      = 100
	locationPenalty       = 0.1

	// name is the dominant relevance signal; its score is discounted so a
	// name hit outranks an equal description or category hit.
	nameFieldBoost = 0.9
)

type matcherOptions struct {
	threshold float64
	minMatch  int
}

// fieldScore rates how well the normalized query matches the normalized field.
// An exact substring hit scores near zero, penalized only by how far from the
// field start it sits. Otherwise the best edit-distance over query-sized
// windows of the field decides, with the same drift penalty.
func fieldScore(query, field string, opt matcherOptions) float64 {
	if field == "" || utf8.RuneCountInString(query) < opt.minMatch {
		return 1
	}

	if idx := strings.Index(field, query); idx >= 0 {
		return locationPenalty * drift(len(field[:idx]))
	}

	qlen := utf8.RuneCountInString(query)
	runes := []rune(field)
	best := 1.0
	for start := 0; start < len(runes); start++ {
		// windows of query length and one longer, so single-character
		// insertions in the field are not double-counted
		for _, width := range [2]int{qlen, qlen + 1} {
			end := start + width
			if end > len(runes) {
				end = len(runes)
			}
			window := string(runes[start:end])
			d := levenshtein.ComputeDistance(query, window)
			if qlen-d < opt.minMatch {
				continue
			}
			denom := qlen
			if end-start > denom {
				denom = end - start
			}
			s := float64(d)/float64(denom) + locationPenalty*drift(start)
			if s < best {
				best = s
			}
		}
	}
	if best > 1 {
		best = 1
	}
	return best
}

func drift(offset int) float64 {
	d := float64(offset) / float64(maxLocationDrift)
	if d > 1 {
		return 1
	}
	return d
}

// scoreProduct returns the best weighted field score for p against the
// normalized query. categoryNames resolves CategoryID to a display name so
// category text is searchable the same way the UI renders it.
func scoreProduct(query string, p *model.Product, categoryNames map[string]string, opt matcherOptions) float64 {
	best := fieldScore(query, textkey.Normalize(p.Name), opt) * nameFieldBoost
	if s := fieldScore(query, textkey.Normalize(p.Description), opt); s < best {
		best = s
	}
	if cat := categoryNames[p.CategoryID]; cat != "" {
		if s := fieldScore(query, textkey.Normalize(cat), opt); s < best {
			best = s
		}
	}
	return best
}

// rank scores every product and returns those at or under the acceptance
// threshold, best match first. Ties keep insertion order.
func rank(query string, products []*model.Product, categoryNames map[string]string, opt matcherOptions) []*model.Product {
	type scored struct {
		p     *model.Product
		score float64
	}
	matches := make([]scored, 0, len(products))
	for _, p := range products {
		if s := scoreProduct(query, p, categoryNames, opt); s <= opt.threshold {
			matches = append(matches, scored{p: p, score: s})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score < matches[j].score })

	out := make([]*model.Product, len(matches))
	for i, m := range matches {
		out[i] = m.p
	}
	return out
}
