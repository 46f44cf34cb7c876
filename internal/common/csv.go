// Package common provides shared CSV reading used by the parsers.
package common

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"fjacquet/contrib-sql/internal/logging"

	"github.com/gocarina/gocsv"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

func init() {
	// Every csv-tagged field is a required column.
	gocsv.FailIfUnmatchedStructTags = true
}

// ErrEmptyCSV is returned when the input holds no header row at all.
var ErrEmptyCSV = gocsv.ErrEmptyCSVFile

// ErrInvalidUTF8 is returned when the input holds a byte sequence that is not valid UTF-8.
var ErrInvalidUTF8 = encoding.ErrInvalidUTF8

// NewUTF8Reader reads r as strict UTF-8, dropping a leading byte order mark if
// present. Invalid input fails with ErrInvalidUTF8 instead of being replaced.
func NewUTF8Reader(r io.Reader) io.Reader {
	return transform.NewReader(r, transform.Chain(
		encoding.UTF8Validator,
		unicode.BOMOverride(transform.Nop),
	))
}

// lineCounter counts the line breaks handed to the CSV reader so decoding
// failures can name the line they occurred on.
type lineCounter struct {
	r     io.Reader
	lines int
}

func (c *lineCounter) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.lines += bytes.Count(p[:n], []byte{'\n'})
	return n, err
}

// ReadCSV reads header-driven CSV data into a slice of structs using gocsv.
// TCSVRow is the struct type that maps to the CSV columns through `csv` tags;
// a tag without a matching header column is an error.
func ReadCSV[TCSVRow any](r io.Reader, delimiter rune, logger logging.Logger) ([]TCSVRow, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	counter := &lineCounter{r: NewUTF8Reader(r)}
	csvReader := csv.NewReader(counter)
	csvReader.Comma = delimiter

	var rows []TCSVRow
	if err := gocsv.UnmarshalCSV(csvReader, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, ErrEmptyCSV
		}
		if errors.Is(err, ErrInvalidUTF8) {
			// valid bytes are delivered before the error, so the count is exact
			line := counter.lines + 1
			logger.WithError(err).Error("CSV data is not valid UTF-8",
				logging.Field{Key: logging.FieldLine, Value: line})
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		logger.WithError(err).Error("Failed to parse CSV data")
		return nil, fmt.Errorf("error parsing CSV data: %w", err)
	}

	logger.Debug("Successfully read CSV data",
		logging.Field{Key: logging.FieldCount, Value: len(rows)},
		logging.Field{Key: logging.FieldDelimiter, Value: string(delimiter)})
	return rows, nil
}
