package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		symbol   string
		expected string
	}{
		{"Small amount", "120.5", "Q", "Q120.50"},
		{"Thousands", "1234.5", "Q", "Q1,234.50"},
		{"Millions", "1234567.891", "Q", "Q1,234,567.89"},
		{"Zero", "0", "Q", "Q0.00"},
		{"Other symbol", "99.999", "$", "$100.00"},
		{"No symbol", "4500", "", "4,500.00"},
		{"Negative", "-1234.5", "Q", "Q-1,234.50"},
		{"Exactly three digits", "999.994", "Q", "Q999.99"},
		{"Half cent rounds away from zero", "0.125", "Q", "Q0.13"},
		{"Beyond float64 precision", "123456789012345678.125", "Q", "Q123,456,789,012,345,678.13"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatCurrency(decimal.RequireFromString(tc.amount), tc.symbol))
		})
	}
}

func TestFormatFixed(t *testing.T) {
	assert.Equal(t, "1234.50", FormatFixed(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "0.00", FormatFixed(decimal.Zero))
	assert.Equal(t, "10.13", FormatFixed(decimal.RequireFromString("10.125")))
}

func TestFormatSQLNumeric(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"120.50", "120.5"},
		{"120.5", "120.5"},
		{"100", "100.0"},
		{"100.00", "100.0"},
		{"0", "0.0"},
		{"0.05", "0.05"},
		{"1e3", "1000.0"},
		{"1500.75", "1500.75"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatSQLNumeric(decimal.RequireFromString(tc.input)))
		})
	}
}
