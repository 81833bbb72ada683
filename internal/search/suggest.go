package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Suggest ranks recent terms against the current input for autocompletion.
// recent is most-recent-first; ties keep that order. An empty input returns
// the most recent terms.
func Suggest(input string, recent []string, limit int) []string {
	if limit <= 0 {
		return nil
	}

	input = strings.TrimSpace(input)
	if input == "" {
		if len(recent) > limit {
			return append([]string(nil), recent[:limit]...)
		}
		return append([]string(nil), recent...)
	}

	ranks := fuzzy.RankFindNormalizedFold(input, recent)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	var out []string
	for _, r := range ranks {
		if strings.EqualFold(r.Target, input) {
			continue
		}
		out = append(out, r.Target)
		if len(out) == limit {
			break
		}
	}
	return out
}
