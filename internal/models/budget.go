package models

import "github.com/shopspring/decimal"

// Budget is a monthly spending limit for one principal category. It is
// matched to transactions through the category's subcategories at read time.
type Budget struct {
	Base
	UserID   string          `gorm:"type:uuid;not null;uniqueIndex:idx_budgets_user_category_period" json:"user_id"`
	Category string          `gorm:"not null;uniqueIndex:idx_budgets_user_category_period" json:"categoria"`
	Limit    decimal.Decimal `gorm:"column:limit_amount;type:decimal(10,2);not null" json:"limite"`
	Month    int             `gorm:"not null;uniqueIndex:idx_budgets_user_category_period" json:"mes"`
	Year     int             `gorm:"not null;uniqueIndex:idx_budgets_user_category_period" json:"ano"`

	// CurrentSpend is computed per request and never persisted.
	CurrentSpend decimal.Decimal `gorm:"-" json:"gasto_atual"`
}
