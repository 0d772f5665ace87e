package categories

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/budgetbook/budgetbook/internal/model"
)

// RelPath is the location of categories.csv inside a workspace.
const RelPath = "categories/categories.csv"

// Service provides in-memory lookup over a category list.
type Service struct {
	categories []model.Category
	byID       map[string]model.Category
	byName     map[string]model.Category
}

// NewService creates a Service. For duplicate names the first category wins.
func NewService(cats []model.Category) *Service {
	s := &Service{
		categories: cats,
		byID:       make(map[string]model.Category, len(cats)),
		byName:     make(map[string]model.Category, len(cats)),
	}
	for _, c := range cats {
		s.byID[c.ID] = c
		key := nameKey(c.Name)
		if _, ok := s.byName[key]; !ok {
			s.byName[key] = c
		}
	}
	return s
}

// Load reads categories.csv from a workspace root.
func Load(root string) (*Service, error) {
	f, err := os.Open(filepath.Join(root, RelPath))
	if err != nil {
		return nil, fmt.Errorf("opening categories: %w", err)
	}
	defer f.Close()

	cats, err := ReadCategories(f)
	if err != nil {
		return nil, fmt.Errorf("reading categories: %w", err)
	}
	return NewService(cats), nil
}

// All returns all categories.
func (s *Service) All() []model.Category {
	return s.categories
}

// Get returns a category by ID.
func (s *Service) Get(id string) (model.Category, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// Exists reports whether a category ID exists.
func (s *Service) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// ByName finds a category by case-insensitive name.
func (s *Service) ByName(name string) (model.Category, bool) {
	c, ok := s.byName[nameKey(name)]
	return c, ok
}

// ListCategories returns all categories. Categories are shared by every user
// of a workspace.
func (s *Service) ListCategories(_ context.Context, _ string) ([]model.Category, error) {
	return s.categories, nil
}

// Save writes categories.csv under root.
func (s *Service) Save(root string) error {
	path := filepath.Join(root, RelPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating categories dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating categories file: %w", err)
	}
	defer f.Close()

	if err := WriteCategories(f, s.categories); err != nil {
		return fmt.Errorf("writing categories: %w", err)
	}
	return nil
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
