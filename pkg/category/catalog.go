package category

import "strings"

// UnknownCategoryName is the display fallback for ids that no longer resolve
// to a catalog entry. Consumers degrade to this label instead of failing.
const UnknownCategoryName = "Categoria não encontrada"

// Catalog is an immutable, read-only set of categories. It is injected into
// its consumers so tests can substitute fixture categories.
type Catalog struct {
	categories []Category
	byID       map[string]Category
}

func NewCatalog(categories []Category) *Catalog {
	byID := make(map[string]Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	return &Catalog{categories: categories, byID: byID}
}

// NewDefaultCatalog returns a catalog seeded with the default category set.
func NewDefaultCatalog() *Catalog {
	return NewCatalog(DefaultCategories())
}

func (c *Catalog) All() []Category {
	all := make([]Category, len(c.categories))
	copy(all, c.categories)
	return all
}

func (c *Catalog) GetByID(id string) (Category, bool) {
	cat, ok := c.byID[id]
	return cat, ok
}

func (c *Catalog) GetByType(t Type) []Category {
	var result []Category
	for _, cat := range c.categories {
		if cat.Type == t {
			result = append(result, cat)
		}
	}
	return result
}

// GetByName finds a category by case-insensitive name match.
func (c *Catalog) GetByName(name string) (Category, bool) {
	for _, cat := range c.categories {
		if strings.EqualFold(cat.Name, name) {
			return cat, true
		}
	}
	return Category{}, false
}

// DisplayName resolves a category id to its name, falling back to
// UnknownCategoryName for stale or unknown ids.
func (c *Catalog) DisplayName(id string) string {
	if cat, ok := c.byID[id]; ok {
		return cat.Name
	}
	return UnknownCategoryName
}
