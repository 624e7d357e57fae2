package enrich

import (
	"strconv"
	"strings"

	"github.com/atemmel/sims-chatbot/internal/dto"
	"github.com/atemmel/sims-chatbot/internal/pkg/logger"
	"github.com/atemmel/sims-chatbot/pkg/assistant"
	"github.com/atemmel/sims-chatbot/pkg/knowledge"
)

// Recognized intent and entity names as the dialogue engine reports them.
const (
	IntentNumberOfOffices   = "NumberOfOffices"
	IntentNumberOfEmployees = "NumberOfEmployees"

	EntityCity         = "CompanyCity"
	EntitySkill        = "Skill"
	EntityArticleTag   = "ArticleTag"
	EntityCompanyField = "CompanyField"
)

// Placeholder tokens the engine-side dialog templates embed in their text.
const (
	numberToken = "{number}"
	amountToken = "{amount}"
)

const noArticlesText = "Sorry, I could not find any relevant articles to your case"

// Engine turns a dialogue engine output into an enriched response: canned
// counts for known intents, office lookups for cities, demand amounts for
// skills, or a ranked article selection. It holds only a read-only knowledge
// snapshot and is safe for concurrent use.
type Engine struct {
	store  *knowledge.Store
	logger logger.ILogger
}

func NewEngine(store *knowledge.Store, log logger.ILogger) *Engine {
	return &Engine{
		store:  store,
		logger: log,
	}
}

// Enrich decides what to attach to the engine output, first match wins:
// primary intent shortcut, then entity lookups in detection order, then the
// article filter, then the plain generic text.
func (e *Engine) Enrich(out *assistant.Output) []dto.Fragment {
	if len(out.Intents) > 0 {
		primary := out.Intents[0].Intent
		switch primary {
		case IntentNumberOfOffices:
			e.logger.Debug("Enrich", "Primary intent matched", map[string]interface{}{"intent": primary})
			return e.countFragment(out, e.store.OfficeCount())
		case IntentNumberOfEmployees:
			e.logger.Debug("Enrich", "Primary intent matched", map[string]interface{}{"intent": primary})
			return e.countFragment(out, e.store.EmployeeCount())
		}
	}

	if len(out.Entities) > 0 {
		for _, entity := range out.Entities {
			switch entity.Entity {
			case EntityCity:
				e.logger.Debug("Enrich", "City entity matched", map[string]interface{}{"city": entity.Value})
				return e.cityFragments(out, entity.Value)
			case EntitySkill:
				e.logger.Debug("Enrich", "Skill entity matched", map[string]interface{}{"skill": entity.Value})
				return e.skillFragments(out, entity)
			}
		}
		return e.articleFragments(out)
	}

	return []dto.Fragment{{Text: genericText(out, 0)}}
}

// Greeting shapes the engine's opening reply for a fresh connection. Only
// the first generic text is delivered; no enrichment applies yet.
func (e *Engine) Greeting(out *assistant.Output) []dto.Fragment {
	return []dto.Fragment{{Text: genericText(out, 0)}}
}

// countFragment substitutes a static count into the first generic text.
func (e *Engine) countFragment(out *assistant.Output, count int) []dto.Fragment {
	text := strings.ReplaceAll(genericText(out, 0), numberToken, strconv.Itoa(count))
	return []dto.Fragment{{Text: text}}
}

// cityFragments answers with every office in the requested city, reshaped
// into display form. No matches still yields the generic text.
func (e *Engine) cityFragments(out *assistant.Output, city string) []dto.Fragment {
	return []dto.Fragment{{
		Text:    genericText(out, 0),
		Offices: e.officeDTOs(city),
	}}
}

// skillFragments answers a skill query. A city entity anywhere in the same
// result turns it into a combined query: the office list wins and the skill
// amount is dropped.
func (e *Engine) skillFragments(out *assistant.Output, skill assistant.Entity) []dto.Fragment {
	for _, other := range out.Entities {
		if other.Entity == EntityCity {
			e.logger.Debug("Enrich", "Skill query combined with city", map[string]interface{}{
				"skill": skill.Value,
				"city":  other.Value,
			})
			return []dto.Fragment{{
				Text:    genericText(out, 0),
				Offices: e.officeDTOs(other.Value),
			}}
		}
	}

	amount := e.store.SkillDemand(skill.Value)
	text := strings.ReplaceAll(genericText(out, 0), amountToken, strconv.Itoa(amount))
	return []dto.Fragment{{Text: text}}
}

// articleFragments builds a filter from every article-relevant entity and
// attaches the ranked selection. The second generic text item rides along
// as its own fragment when anything was selected.
func (e *Engine) articleFragments(out *assistant.Output) []dto.Fragment {
	var filter ArticleFilter
	for _, entity := range out.Entities {
		switch entity.Entity {
		case EntityArticleTag:
			filter.Tags = append(filter.Tags, entity.Value)
		case EntityCompanyField:
			filter.CompanyFields = append(filter.CompanyFields, entity.Value)
		}
	}

	selected := SelectArticles(e.store.Articles(), filter)
	e.logger.Debug("Enrich", "Article selection done", map[string]interface{}{
		"tags":     filter.Tags,
		"fields":   filter.CompanyFields,
		"selected": len(selected),
	})

	if len(selected) == 0 {
		return []dto.Fragment{{Text: noArticlesText}}
	}

	articles := make([]dto.ArticleDTO, 0, len(selected))
	for _, article := range selected {
		articles = append(articles, dto.NewArticleDTO(article))
	}

	return []dto.Fragment{
		{Text: genericText(out, 0), Articles: articles},
		{Text: genericText(out, 1)},
	}
}

func (e *Engine) officeDTOs(city string) []dto.OfficeDTO {
	offices := e.store.FindOffices(city)
	views := make([]dto.OfficeDTO, 0, len(offices))
	for _, office := range offices {
		views = append(views, dto.NewOfficeDTO(office))
	}
	return views
}

// genericText returns the i-th generic text item, or "" when the engine
// sent fewer items than the template expects.
func genericText(out *assistant.Output, i int) string {
	if i >= len(out.Generic) {
		return ""
	}
	return out.Generic[i].Text
}
