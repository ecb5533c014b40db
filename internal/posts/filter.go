package posts

// Filter returns the items in category, keeping their relative order.
// CategoryAll returns items unchanged.
func Filter(items []Item, category string) []Item {
	if category == CategoryAll {
		return items
	}
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

// SourceCount is the number of items attributed to one source.
type SourceCount struct {
	Source string
	Count  int
}

// Sources tallies items per source in order of first appearance.
func Sources(items []Item) []SourceCount {
	idx := make(map[string]int)
	var out []SourceCount
	for _, it := range items {
		i, ok := idx[it.Source]
		if !ok {
			idx[it.Source] = len(out)
			out = append(out, SourceCount{Source: it.Source, Count: 1})
			continue
		}
		out[i].Count++
	}
	return out
}
