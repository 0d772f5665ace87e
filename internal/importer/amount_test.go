package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"42.50", "42.50"},
		{"-42.50", "-42.50"},
		{"+7", "7.00"},
		{"$1,234.56", "1234.56"},
		{"-$1,234.56", "-1234.56"},
		{" 1 000.00 ", "1000.00"},
		{"(18.99)", "-18.99"},
		{"($5.00)", "-5.00"},
		{"0", "0.00"},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.raw)
		require.NoError(t, err, "ParseAmount(%q)", tt.raw)
		assert.Equal(t, tt.want, got.StringFixed(2), "ParseAmount(%q)", tt.raw)
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, raw := range []string{"", "abc", "12abc", "$", "-", "1e3", "(-5)", "1.2.3", "++1"} {
		_, err := ParseAmount(raw)
		assert.ErrorIs(t, err, errInvalidAmount, "ParseAmount(%q)", raw)
	}
}
