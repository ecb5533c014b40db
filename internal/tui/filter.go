package tui

import (
	"fmt"
	"strings"

	"github.com/0wl93/ocean-road-archive/internal/posts"
	"github.com/charmbracelet/lipgloss"
)

// filterBar holds the selected category and the two panel flags. It never
// touches the network.
type filterBar struct {
	categories  []string
	selected    int
	filtersOpen bool
	sourcesOpen bool
}

func newFilterBar(categories []string) filterBar {
	if len(categories) == 0 || categories[0] != posts.CategoryAll {
		categories = append([]string{posts.CategoryAll}, categories...)
	}
	return filterBar{
		categories:  categories,
		filtersOpen: true,
	}
}

func (f *filterBar) current() string {
	return f.categories[f.selected]
}

func (f *filterBar) selectIndex(i int) bool {
	if i < 0 || i >= len(f.categories) || i == f.selected {
		return false
	}
	f.selected = i
	return true
}

func (f *filterBar) next() bool { return f.selectIndex(f.selected + 1) }
func (f *filterBar) prev() bool { return f.selectIndex(f.selected - 1) }

func (f *filterBar) toggleFilters() { f.filtersOpen = !f.filtersOpen }
func (f *filterBar) toggleSources() { f.sourcesOpen = !f.sourcesOpen }

func (f *filterBar) render(items []posts.Item, width int) string {
	openLabel := "[open]"
	if f.filtersOpen {
		openLabel = "[close]"
	}
	title := sidebarTitleStyle.Render("Filters")
	toggle := sidebarToggleStyle.Render(openLabel + " f")
	gap := width - lipgloss.Width(title) - lipgloss.Width(toggle)
	if gap < 1 {
		gap = 1
	}
	lines := []string{title + strings.Repeat(" ", gap) + toggle}
	if !f.filtersOpen {
		return strings.Join(lines, "\n")
	}

	sources := posts.Sources(items)
	marker := "[+]"
	if f.sourcesOpen {
		marker = "[-]"
	}
	lines = append(lines, "", sidebarToggleStyle.Render(fmt.Sprintf("%s All sources %d  s", marker, len(sources))))
	if f.sourcesOpen {
		for _, sc := range sources {
			lines = append(lines, itemMetaStyle.Render(fmt.Sprintf("    %s %d", truncateStr(sc.Source, width-8), sc.Count)))
		}
	}

	lines = append(lines, "")
	for i, c := range f.categories {
		style := tabInactiveStyle
		if i == f.selected {
			style = tabActiveStyle
		}
		label := c
		if i < 9 {
			label = fmt.Sprintf("%d %s", i+1, c)
		}
		lines = append(lines, style.Render(label))
	}
	return strings.Join(lines, "\n")
}
