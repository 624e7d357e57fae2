package enrich

import (
	"github.com/atemmel/sims-chatbot/pkg/knowledge"
)

// maxSelectedArticles is the number of selection attempts per query. Fewer
// articles are returned when not enough of them score above zero.
const maxSelectedArticles = 3

// ArticleFilter groups requested values by the article field they target.
type ArticleFilter struct {
	Tags          []string
	CompanyFields []string
}

// IsEmpty reports whether the filter requests nothing at all.
func (f ArticleFilter) IsEmpty() bool {
	return len(f.Tags) == 0 && len(f.CompanyFields) == 0
}

// SelectArticles grades every article against the filter and picks up to
// three of them, highest score first. An article scores at most one point
// per filter field: one for any tag overlap, one for a company-field match.
// Ties break towards the earlier table position, and articles scoring zero
// are never selected, so the result can hold anywhere from zero to three
// entries. Selection is deterministic for a given table and filter.
func SelectArticles(articles []knowledge.Article, filter ArticleFilter) []knowledge.Article {
	scores := make([]int, len(articles))
	for i, article := range articles {
		if containsAny(article.Tags, filter.Tags) {
			scores[i]++
		}
		if equalsAny(article.CompanyField, filter.CompanyFields) {
			scores[i]++
		}
	}

	selected := make([]knowledge.Article, 0, maxSelectedArticles)
	for attempt := 0; attempt < maxSelectedArticles; attempt++ {
		best := -1
		bestScore := 0
		for i, score := range scores {
			if score > bestScore {
				best = i
				bestScore = score
			}
		}
		if best == -1 {
			continue
		}
		selected = append(selected, articles[best])
		// Consumed; keep it out of later attempts.
		scores[best] = -1
	}

	return selected
}

func containsAny(haystack, needles []string) bool {
	for _, needle := range needles {
		for _, value := range haystack {
			if value == needle {
				return true
			}
		}
	}
	return false
}

func equalsAny(value string, needles []string) bool {
	for _, needle := range needles {
		if value == needle {
			return true
		}
	}
	return false
}
