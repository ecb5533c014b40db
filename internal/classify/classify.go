package classify

import (
	"strings"
	"unicode"
)

var defaultKeywords = map[string][]string{
	"Technology": {
		"software", "hardware", "startup", "internet", "web", "browser", "app",
		"device", "computer", "chip", "open source", "protocol", "network",
	},
	"Design": {
		"design", "typography", "typeface", "font", "layout", "grid", "color",
		"interface", "ux", "ui", "illustration", "graphic", "visual", "poster",
	},
	"AI": {
		"ai", "machine learning", "deep learning", "neural", "llm", "gpt",
		"transformer", "inference", "embedding", "diffusion", "model", "agent",
	},
	"Culture": {
		"culture", "art", "music", "film", "book", "essay", "history", "museum",
		"photography", "literature", "society", "city", "architecture",
	},
	"Engineering": {
		"engineering", "database", "kubernetes", "compiler", "distributed",
		"performance", "latency", "postgres", "rust", "golang", "infrastructure",
		"debugging", "testing", "refactor", "scaling",
	},
}

// Classifier maps feed items onto a fixed category set.
type Classifier struct {
	categories []string
	keywords   map[string][]string
}

// New builds a classifier for the given categories. Categories without a
// built-in keyword list can still be matched by an exact feed tag.
func New(categories []string) *Classifier {
	c := &Classifier{keywords: make(map[string][]string)}
	for _, cat := range categories {
		if cat == "" || strings.EqualFold(cat, "All") {
			continue
		}
		c.categories = append(c.categories, cat)
		if kws, ok := defaultKeywords[cat]; ok {
			c.keywords[cat] = kws
		}
	}
	return c
}

// Categories returns the categories the classifier can assign, in order.
func (c *Classifier) Categories() []string {
	return append([]string(nil), c.categories...)
}

// Classify picks a category for an item. A tag naming a known category wins
// (case-insensitive). Otherwise title keywords count double against
// description keywords, ties go to the earlier category, and no match
// returns "".
func (c *Classifier) Classify(tags []string, title, description string) string {
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		for _, cat := range c.categories {
			if strings.EqualFold(tag, cat) {
				return cat
			}
		}
	}

	titleTokens := tokenize(title)
	descTokens := tokenize(description)
	titleLower := strings.ToLower(title)
	descLower := strings.ToLower(description)

	best, bestScore := "", 0
	for _, cat := range c.categories {
		score := 0
		for _, kw := range c.keywords[cat] {
			if strings.Contains(kw, " ") {
				if strings.Contains(titleLower, kw) {
					score += 2
				}
				if strings.Contains(descLower, kw) {
					score++
				}
				continue
			}
			score += 2 * count(titleTokens, kw)
			score += count(descTokens, kw)
		}
		// strict > keeps the earlier category on ties
		if score > bestScore {
			best, bestScore = cat, score
		}
	}
	return best
}

func count(tokens []string, kw string) int {
	n := 0
	for _, t := range tokens {
		if t == kw {
			n++
		}
	}
	return n
}

func tokenize(s string) []string {
	var tokens []string
	for _, word := range strings.Fields(strings.ToLower(s)) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if word != "" {
			tokens = append(tokens, word)
		}
	}
	return tokens
}
