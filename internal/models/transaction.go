package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// RecurrenceKind distinguishes one-off entries from fixed monthly series.
type RecurrenceKind string

const (
	RecurrenceSingle RecurrenceKind = "single"
	RecurrenceFixed  RecurrenceKind = "fixed"
)

// Transaction represents an income or expense entry. Rows of a fixed series
// share RecurrenceGroupID and RecurrenceEndDate; single rows leave both nil.
type Transaction struct {
	Base
	UserID            string          `gorm:"type:uuid;not null;index" json:"userId"`
	SubcategoryID     *string         `gorm:"type:uuid;index" json:"subcategoryId"`
	Type              TransactionType `gorm:"not null" json:"tipo"`
	Amount            decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"valor"`
	Date              time.Time       `gorm:"type:date;not null;index" json:"data"`
	Description       string          `json:"descricao"`
	Recurrence        RecurrenceKind  `gorm:"not null;default:single" json:"recurrence"`
	RecurrenceGroupID *string         `gorm:"type:uuid;index" json:"recurrence_group_id"`
	RecurrenceEndDate *time.Time      `gorm:"type:date" json:"recurrence_end_date"`

	// Relationships
	Subcategory *Subcategory `gorm:"foreignKey:SubcategoryID;constraint:OnDelete:SET NULL" json:"subcategory,omitempty"`
}

// IsRecurring reports whether the row belongs to a fixed series.
func (t *Transaction) IsRecurring() bool {
	return t.RecurrenceGroupID != nil
}
