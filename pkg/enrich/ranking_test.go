package enrich

import (
	"testing"

	"github.com/atemmel/sims-chatbot/pkg/knowledge"
)

func rankingFixture() []knowledge.Article {
	return []knowledge.Article{
		{Title: "Go in production", Tags: []string{"cloud", "backend"}, CompanyField: "consulting"},
		{Title: "Scaling kubernetes", Tags: []string{"cloud", "devops"}, CompanyField: "operations"},
		{Title: "Office culture", Tags: []string{"people"}, CompanyField: "hr"},
		{Title: "Frontend trends", Tags: []string{"web"}, CompanyField: "consulting"},
	}
}

func TestSelectArticles(t *testing.T) {
	tests := []struct {
		name       string
		filter     ArticleFilter
		wantTitles []string
	}{
		{
			name:       "empty filter selects nothing",
			filter:     ArticleFilter{},
			wantTitles: []string{},
		},
		{
			name:       "single tag matches two articles",
			filter:     ArticleFilter{Tags: []string{"cloud"}},
			wantTitles: []string{"Go in production", "Scaling kubernetes"},
		},
		{
			name:       "no overlap selects nothing",
			filter:     ArticleFilter{Tags: []string{"blockchain"}},
			wantTitles: []string{},
		},
		{
			name:       "company field matches scalar",
			filter:     ArticleFilter{CompanyFields: []string{"hr"}},
			wantTitles: []string{"Office culture"},
		},
		{
			name: "tag plus field outranks single match",
			filter: ArticleFilter{
				Tags:          []string{"cloud"},
				CompanyFields: []string{"consulting"},
			},
			// "Go in production" scores 2, the others 1; ties break by
			// table position.
			wantTitles: []string{"Go in production", "Scaling kubernetes", "Office culture"},
		},
		{
			name: "never more than three",
			filter: ArticleFilter{
				Tags:          []string{"cloud", "people", "web"},
				CompanyFields: []string{"consulting", "operations", "hr"},
			},
			wantTitles: []string{"Go in production", "Scaling kubernetes", "Office culture"},
		},
		{
			name:       "multiple values on one field score at most one point",
			filter:     ArticleFilter{Tags: []string{"cloud", "backend"}},
			wantTitles: []string{"Go in production", "Scaling kubernetes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selected := SelectArticles(rankingFixture(), tt.filter)

			if len(selected) != len(tt.wantTitles) {
				t.Fatalf("selected %d articles, want %d", len(selected), len(tt.wantTitles))
			}
			for i, want := range tt.wantTitles {
				if selected[i].Title != want {
					t.Errorf("selected[%d] = %q, want %q", i, selected[i].Title, want)
				}
			}
		})
	}
}

func TestSelectArticlesTieBreaksByPosition(t *testing.T) {
	articles := []knowledge.Article{
		{Title: "first", Tags: []string{"go"}},
		{Title: "second", Tags: []string{"go"}},
		{Title: "third", Tags: []string{"go"}},
		{Title: "fourth", Tags: []string{"go"}},
	}

	selected := SelectArticles(articles, ArticleFilter{Tags: []string{"go"}})

	want := []string{"first", "second", "third"}
	if len(selected) != len(want) {
		t.Fatalf("selected %d articles, want %d", len(selected), len(want))
	}
	for i := range want {
		if selected[i].Title != want[i] {
			t.Errorf("selected[%d] = %q, want %q", i, selected[i].Title, want[i])
		}
	}
}

func TestSelectArticlesNoDuplicates(t *testing.T) {
	selected := SelectArticles(rankingFixture(), ArticleFilter{
		Tags:          []string{"cloud"},
		CompanyFields: []string{"consulting", "operations"},
	})

	seen := make(map[string]bool)
	for _, article := range selected {
		if seen[article.Title] {
			t.Fatalf("article %q selected twice", article.Title)
		}
		seen[article.Title] = true
	}
}

func TestSelectArticlesDeterministic(t *testing.T) {
	filter := ArticleFilter{Tags: []string{"cloud"}, CompanyFields: []string{"consulting"}}

	first := SelectArticles(rankingFixture(), filter)
	for i := 0; i < 10; i++ {
		again := SelectArticles(rankingFixture(), filter)
		if len(again) != len(first) {
			t.Fatalf("run %d selected %d articles, want %d", i, len(again), len(first))
		}
		for j := range first {
			if again[j].Title != first[j].Title {
				t.Fatalf("run %d selected[%d] = %q, want %q", i, j, again[j].Title, first[j].Title)
			}
		}
	}
}
