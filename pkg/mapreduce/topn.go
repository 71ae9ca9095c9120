package mapreduce

import (
	"fmt"
	"io"
	"sort"
)

type kv struct {
	Key   string
	Value int
}

// sorted orders counts by value descending, then key ascending so ties are stable.
func sorted(counts map[string]int) []kv {
	ss := make([]kv, 0, len(counts))
	for k, v := range counts {
		ss = append(ss, kv{k, v})
	}

	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Value != ss[j].Value {
			return ss[i].Value > ss[j].Value
		}
		return ss[i].Key < ss[j].Key
	})

	return ss
}

// TopTags returns the top N tags from aggregated counts as formatted strings.
// Each string is formatted as "tag:count" (e.g., "dice_roll:42").
func TopTags(counts map[string]int, n int) []string {
	ss := sorted(counts)

	limit := n
	if len(ss) < n {
		limit = len(ss)
	}
	if limit < 0 {
		limit = 0
	}

	tags := make([]string, limit)
	for i := 0; i < limit; i++ {
		tags[i] = fmt.Sprintf("%s:%d", ss[i].Key, ss[i].Value)
	}

	return tags
}

// PrintTopTags writes the top N tags to w as a numbered list.
func PrintTopTags(w io.Writer, counts map[string]int, n int) {
	for i, entry := range TopTags(counts, n) {
		fmt.Fprintf(w, "%d. %s\n", i+1, entry)
	}
}
