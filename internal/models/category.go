package models

// FallbackCategoryName is the display name of the catch-all category.
const FallbackCategoryName = "Outros"

// Category represents one of the fixed, process-wide transaction categories.
// Exactly one category has IsFallback set; it is the catch-all bucket with
// keyword filtering semantics in reports.
type Category struct {
	Base
	Name       string `gorm:"uniqueIndex;not null" json:"name"`
	IsFallback bool   `gorm:"not null;default:false" json:"is_fallback"`

	// Relationships
	Subcategories []Subcategory `gorm:"foreignKey:CategoryID" json:"subcategories,omitempty"`
}

// DefaultCategories returns the seeded category set, fallback last.
func DefaultCategories() []Category {
	names := []string{
		"Alimentação",
		"Transporte",
		"Lazer",
		"Moradia",
		"Saúde",
		"Educação",
		"Dívidas/Empréstimos",
		"Investimentos",
		"Receitas",
	}
	categories := make([]Category, 0, len(names)+1)
	for _, name := range names {
		categories = append(categories, Category{Name: name})
	}
	return append(categories, Category{Name: FallbackCategoryName, IsFallback: true})
}
