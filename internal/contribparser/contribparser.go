// Package contribparser reads contribution CSV files into typed records and
// accumulates their aggregate statistics in the same pass.
package contribparser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"fjacquet/contrib-sql/internal/common"
	"fjacquet/contrib-sql/internal/fileutils"
	"fjacquet/contrib-sql/internal/logging"
	"fjacquet/contrib-sql/internal/models"
	"fjacquet/contrib-sql/internal/parsererror"

	"github.com/shopspring/decimal"
)

const parserName = "contribuciones"

// Parser converts contribution CSV data into ContributionRecords.
type Parser struct {
	delimiter rune
	logger    logging.Logger
}

// Result is the outcome of parsing one contributions file.
type Result struct {
	Records []models.ContributionRecord
	Stats   models.AggregateStats
}

// New creates a Parser for the given delimiter. A nil logger falls back to a
// default logrus-backed one.
func New(delimiter rune, logger logging.Logger) *Parser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if delimiter == 0 {
		delimiter = ','
	}
	return &Parser{delimiter: delimiter, logger: logger}
}

// ParseFile opens filePath and parses it. The file is closed on every path.
func (p *Parser) ParseFile(filePath string) (*Result, error) {
	p.logger.Info("Reading contributions file", logging.Field{Key: logging.FieldInputFile, Value: filePath})

	if !fileutils.FileExists(filePath) {
		err := fmt.Errorf("error opening CSV file: %s does not exist or is a directory", filePath)
		p.logger.WithError(err).Error("Input file not found")
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		p.logger.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			p.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	return p.parse(file, filePath)
}

// Parse reads contribution rows from r.
func (p *Parser) Parse(r io.Reader) (*Result, error) {
	return p.parse(r, "<input>")
}

func (p *Parser) parse(r io.Reader, source string) (*Result, error) {
	rows, err := common.ReadCSV[models.ContributionCSVRow](r, p.delimiter, p.logger)
	if err != nil {
		if errors.Is(err, common.ErrEmptyCSV) {
			// An empty file has no rows to process.
			p.logger.Warn("Contributions file is empty", logging.Field{Key: logging.FieldInputFile, Value: source})
			return &Result{Stats: models.NewAggregateStats()}, nil
		}
		expected := "CSV with columns " + strings.Join(models.RequiredColumns, ",")
		if errors.Is(err, common.ErrInvalidUTF8) {
			expected = "UTF-8 encoded text"
		}
		return nil, &parsererror.InvalidFormatError{
			FilePath:       source,
			ExpectedFormat: expected,
			Msg:            err.Error(),
			Err:            err,
		}
	}

	result := &Result{
		Records: make([]models.ContributionRecord, 0, len(rows)),
		Stats:   models.NewAggregateStats(),
	}
	for i, row := range rows {
		record, err := convertRow(row, i+1)
		if err != nil {
			p.logger.WithError(err).Error("Failed to convert row")
			return nil, err
		}
		result.Records = append(result.Records, record)
		result.Stats.Add(record)
	}

	result.Stats.LogSummary(p.logger, source)
	return result, nil
}

// convertRow converts a raw CSV row into a ContributionRecord. row is the
// 1-based data row number used in error messages.
func convertRow(row models.ContributionCSVRow, rowNum int) (models.ContributionRecord, error) {
	houseID, err := parseInt(row.HouseID, "id_casa", rowNum)
	if err != nil {
		return models.ContributionRecord{}, err
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(row.Amount))
	if err != nil {
		return models.ContributionRecord{}, &parsererror.ParseError{
			Parser: parserName, Row: rowNum, Field: "monto", Value: row.Amount, Err: err,
		}
	}

	devices, err := parseInt(row.DeviceCount, "controles", rowNum)
	if err != nil {
		return models.ContributionRecord{}, err
	}

	return models.ContributionRecord{
		HouseID:     houseID,
		Amount:      amount,
		Notes:       row.Notes,
		DeviceCount: devices,
	}, nil
}

func parseInt(value, field string, rowNum int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, &parsererror.ParseError{
			Parser: parserName, Row: rowNum, Field: field, Value: value, Err: err,
		}
	}
	return n, nil
}
