package models

import (
	"sort"

	"fjacquet/contrib-sql/internal/logging"

	"github.com/shopspring/decimal"
)

// AggregateStats holds the totals derived from a set of contribution records.
// All values are independent of record order.
type AggregateStats struct {
	TotalAmount        decimal.Decimal `json:"total_amount" yaml:"total_amount"`
	TotalDevices       int             `json:"total_devices" yaml:"total_devices"`
	DeviceDistribution map[int]int     `json:"device_distribution" yaml:"device_distribution"`
	RecordCount        int             `json:"record_count" yaml:"record_count"`
}

// NewAggregateStats returns empty statistics ready to accumulate records
func NewAggregateStats() AggregateStats {
	return AggregateStats{
		TotalAmount:        decimal.Zero,
		DeviceDistribution: make(map[int]int),
	}
}

// Add folds a single record into the running totals
func (s *AggregateStats) Add(record ContributionRecord) {
	if s.DeviceDistribution == nil {
		s.DeviceDistribution = make(map[int]int)
	}
	s.TotalAmount = s.TotalAmount.Add(record.Amount)
	s.TotalDevices += record.DeviceCount
	s.DeviceDistribution[record.DeviceCount]++
	s.RecordCount++
}

// DistributionKeys returns the distinct device counts in ascending order
func (s AggregateStats) DistributionKeys() []int {
	keys := make([]int, 0, len(s.DeviceDistribution))
	for k := range s.DeviceDistribution {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// LogSummary logs the aggregate values
func (s AggregateStats) LogSummary(logger logging.Logger, source string) {
	if logger == nil {
		return
	}

	logger.Info("Contribution summary",
		logging.Field{Key: logging.FieldInputFile, Value: source},
		logging.Field{Key: logging.FieldCount, Value: s.RecordCount},
		logging.Field{Key: logging.FieldTotalAmount, Value: s.TotalAmount.StringFixed(2)},
		logging.Field{Key: logging.FieldTotalDevices, Value: s.TotalDevices},
	)
}
