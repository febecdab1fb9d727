package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal is a manually updated savings tracker, independent of transactions.
type Goal struct {
	Base
	UserID        string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Title         string          `gorm:"not null" json:"titulo"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"valor_objetivo"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"valor_atual"`
	Deadline      *time.Time      `gorm:"type:date" json:"prazo"`
}
