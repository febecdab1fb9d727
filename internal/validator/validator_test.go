package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Amount     decimal.Decimal  `binding:"required,gt=0"`
	Limit      *decimal.Decimal `binding:"omitempty,gt=0"`
	Type       string           `binding:"required,transaction_type"`
	Recurrence string           `binding:"omitempty,recurrence_kind"`
}

func TestRegister(t *testing.T) {
	Register()

	negative := decimal.RequireFromString("-1")
	tests := []struct {
		name  string
		input sample
		valid bool
	}{
		{"valid", sample{Amount: decimal.RequireFromString("10.50"), Type: "expense", Recurrence: "fixed"}, true},
		{"zero amount", sample{Amount: decimal.Zero, Type: "income"}, false},
		{"negative amount", sample{Amount: decimal.RequireFromString("-3"), Type: "income"}, false},
		{"negative optional limit", sample{Amount: decimal.RequireFromString("1"), Limit: &negative, Type: "income"}, false},
		{"unknown type", sample{Amount: decimal.RequireFromString("1"), Type: "transfer"}, false},
		{"unknown recurrence", sample{Amount: decimal.RequireFromString("1"), Type: "income", Recurrence: "weekly"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tt.input)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
