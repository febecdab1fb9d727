package models

// Subcategory is a user-owned child of a Category.
type Subcategory struct {
	Base
	Name       string `gorm:"not null" json:"name"`
	UserID     string `gorm:"type:uuid;not null;index" json:"userId"`
	CategoryID string `gorm:"type:uuid;not null;index" json:"categoryId"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
