package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		amount    string
		isExpense bool
		want      string
	}{
		{"42.50", true, "-42.50"},
		{"42.50", false, "42.50"},
		{"0", true, "0.00"},
	}
	for _, tt := range tests {
		txn := Transaction{Amount: decimal.RequireFromString(tt.amount), IsExpense: tt.isExpense}
		assert.Equal(t, tt.want, txn.SignedAmount().StringFixed(2), "SignedAmount(%s, %v)", tt.amount, tt.isExpense)
	}
}
