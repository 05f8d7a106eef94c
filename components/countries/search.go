package countries

import (
	"sort"
	"strings"
)

// Search filters entries by code or name. Prefix matches rank first; the
// dataset order is kept otherwise.
func Search(entries []Entry, query string, limit int, opts Options) []Entry {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode != EmptySearchAll {
			return nil
		}
		if len(entries) <= limit {
			return append([]Entry{}, entries...)
		}
		return append([]Entry{}, entries[:limit]...)
	}

	q := strings.ToLower(query)
	matches := make([]matchedEntry, 0, 16)
	for _, e := range entries {
		name := strings.ToLower(e.Name)
		code := strings.ToLower(e.Code)
		if code != q && !strings.Contains(name, q) {
			continue
		}
		matches = append(matches, matchedEntry{
			entry:    e,
			isPrefix: code == q || strings.HasPrefix(name, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].isPrefix && !matches[j].isPrefix
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]Entry, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.entry)
	}
	return out
}

// SearchOptions wraps Search results as select options.
func SearchOptions(entries []Entry, query string, limit int, opts Options) []Option {
	results := Search(entries, query, limit, opts)
	if len(results) == 0 {
		return nil
	}

	out := make([]Option, 0, len(results))
	for _, e := range results {
		out = append(out, Option{Value: e.Code, Label: e.Name})
	}
	return out
}

type matchedEntry struct {
	entry    Entry
	isPrefix bool
}
