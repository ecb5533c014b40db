package posts

import (
	"fmt"
	"strings"
)

// Normalize converts store rows into items. Rows without a title or URL are
// dropped; the remaining optional columns fall back to defaults, with today
// standing in for a missing date. Row order is preserved.
func Normalize(records []Record, today string) []Item {
	items := make([]Item, 0, len(records))
	for _, r := range records {
		title := fieldString(r.Fields, FieldTitle)
		link := fieldString(r.Fields, FieldURL)
		if title == "" || link == "" {
			continue
		}
		items = append(items, Item{
			ID:       r.ID,
			Title:    title,
			URL:      link,
			Category: orDefault(fieldString(r.Fields, FieldCategory), CategoryAll),
			Source:   orDefault(fieldString(r.Fields, FieldSource), UnknownSource),
			Date:     orDefault(fieldString(r.Fields, FieldDate), today),
		})
	}
	return items
}

// fieldString reads a column as trimmed text. Lists (multi-select columns)
// yield their first non-blank element.
func fieldString(fields map[string]any, name string) string {
	v, ok := fields[name]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []string:
		for _, s := range t {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
		return ""
	case []any:
		for _, e := range t {
			if e == nil {
				continue
			}
			if s := strings.TrimSpace(fmt.Sprint(e)); s != "" {
				return s
			}
		}
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
