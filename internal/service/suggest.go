package service

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

const maxSuggestions = 3

// suggestNames ranks candidates that fuzzily resemble query. A candidate that
// is itself contained in the query (e.g. "민수" for "민수씨") is also offered.
func suggestNames(query string, candidates []string) []string {
	query = strings.TrimSpace(query)
	if query == "" || len(candidates) == 0 {
		return nil
	}
	ranks := fuzzy.RankFindNormalizedFold(query, candidates)
	sort.Sort(ranks)

	var out []string
	seen := map[string]bool{}
	add := func(name string) {
		if name == query || seen[name] || len(out) >= maxSuggestions {
			return
		}
		seen[name] = true
		out = append(out, name)
	}
	for _, r := range ranks {
		add(r.Target)
	}
	for _, c := range candidates {
		if c != "" && fuzzy.MatchFold(c, query) {
			add(c)
		}
	}
	return out
}

func withSuggestions(message string, suggestions []string) string {
	if len(suggestions) == 0 {
		return message
	}
	return message + " (혹시: " + strings.Join(suggestions, ", ") + "?)"
}
