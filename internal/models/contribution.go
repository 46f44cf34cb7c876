// Package models provides the data structures used throughout the application.
package models

import (
	"github.com/shopspring/decimal"
)

// ContributionRecord is one row of the contributions file: the amount a house is
// expected to contribute to a project and how many remote controls it receives.
type ContributionRecord struct {
	HouseID     int             `json:"id_casa" yaml:"id_casa"`
	Amount      decimal.Decimal `json:"monto" yaml:"monto"`
	Notes       string          `json:"notas" yaml:"notas"`
	DeviceCount int             `json:"controles" yaml:"controles"`
}

// ContributionCSVRow maps the raw columns of the contributions file.
// Values are kept as strings and converted explicitly so that conversion
// failures can name the offending row and column.
type ContributionCSVRow struct {
	HouseID     string `csv:"id_casa"`
	Amount      string `csv:"monto"`
	Notes       string `csv:"notas"`
	DeviceCount string `csv:"controles"`
}

// RequiredColumns lists the header names every contributions file must carry.
var RequiredColumns = []string{"id_casa", "monto", "notas", "controles"}
