package knowledge

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/patrickmn/go-cache"
)

// Paths names the dataset files the store is loaded from.
type Paths struct {
	Offices   string
	Employees string
	Articles  string
	Skills    string
}

// Store holds the static knowledge tables. It is loaded once at startup and
// read-only afterwards, so it is safe for concurrent use without locking.
type Store struct {
	offices   []Office
	employees []Employee
	articles  []Article
	skills    []SkillDemand

	// Memoizes FindOffices results per city. The underlying tables never
	// change, so entries never expire.
	officesByCity *cache.Cache
}

// NewStore builds a store directly from in-memory tables. Load is the
// normal entry point; this exists so callers can assemble a snapshot from
// fixture data.
func NewStore(offices []Office, employees []Employee, articles []Article, skills []SkillDemand) *Store {
	return &Store{
		offices:       offices,
		employees:     employees,
		articles:      articles,
		skills:        skills,
		officesByCity: cache.New(cache.NoExpiration, 0),
	}
}

// Load reads and validates all dataset files. Any missing or malformed file
// is an error; the process cannot serve without the full knowledge store.
func Load(paths Paths) (*Store, error) {
	s := &Store{
		officesByCity: cache.New(cache.NoExpiration, 0),
	}

	if err := readJSONFile(paths.Offices, &s.offices); err != nil {
		return nil, fmt.Errorf("load offices dataset: %w", err)
	}
	if err := readJSONFile(paths.Employees, &s.employees); err != nil {
		return nil, fmt.Errorf("load employees dataset: %w", err)
	}
	if err := readJSONFile(paths.Articles, &s.articles); err != nil {
		return nil, fmt.Errorf("load articles dataset: %w", err)
	}
	if err := readJSONFile(paths.Skills, &s.skills); err != nil {
		return nil, fmt.Errorf("load skills dataset: %w", err)
	}

	validate := validator.New()
	for i, office := range s.offices {
		if err := validate.Struct(office); err != nil {
			return nil, fmt.Errorf("offices dataset: record %d invalid: %w", i, err)
		}
	}
	for i, article := range s.articles {
		if err := validate.Struct(article); err != nil {
			return nil, fmt.Errorf("articles dataset: record %d invalid: %w", i, err)
		}
	}
	for i, skill := range s.skills {
		if err := validate.Struct(skill); err != nil {
			return nil, fmt.Errorf("skills dataset: record %d invalid: %w", i, err)
		}
	}

	return s, nil
}

func readJSONFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// FindOffices returns every office whose visit address city equals the given
// city, in table order. The match is an exact string comparison.
func (s *Store) FindOffices(city string) []Office {
	if hit, found := s.officesByCity.Get(city); found {
		return hit.([]Office)
	}

	found := make([]Office, 0)
	for _, office := range s.offices {
		if office.VisitAddress.City == city {
			found = append(found, office)
		}
	}

	s.officesByCity.Set(city, found, cache.NoExpiration)
	return found
}

// SkillDemand returns the demand amount for a skill name, first match wins.
// Unknown skills return -1.
func (s *Store) SkillDemand(skill string) int {
	for _, entry := range s.skills {
		if entry.Skill == skill {
			return entry.Amount
		}
	}
	return -1
}

// Articles returns the full article table in load order.
func (s *Store) Articles() []Article {
	return s.articles
}

// OfficeCount returns the number of loaded offices.
func (s *Store) OfficeCount() int {
	return len(s.offices)
}

// EmployeeCount returns the number of loaded employees.
func (s *Store) EmployeeCount() int {
	return len(s.employees)
}
