package parsererror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		expected string
	}{
		{
			name: "parse error with row",
			err: &ParseError{
				Parser: "contribuciones",
				Row:    3,
				Field:  "monto",
				Value:  "abc",
				Err:    errors.New("invalid decimal"),
			},
			expected: "contribuciones: row 3: failed to parse monto='abc': invalid decimal",
		},
		{
			name: "parse error without row",
			err: &ParseError{
				Parser: "cli",
				Field:  "project_id",
				Value:  "",
				Err:    errors.New("empty value"),
			},
			expected: "cli: failed to parse project_id='': empty value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestParseError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	parseErr := &ParseError{Parser: "contribuciones", Field: "id_casa", Value: "x", Err: originalErr}

	assert.Equal(t, originalErr, parseErr.Unwrap())
	assert.True(t, errors.Is(parseErr, originalErr))
}

func TestInvalidFormatError(t *testing.T) {
	inner := errors.New("found unmatched struct field with tags [controles]")
	err := &InvalidFormatError{
		FilePath:       "aportes.csv",
		ExpectedFormat: "id_casa,monto,notas,controles",
		Msg:            inner.Error(),
		Err:            inner,
	}

	assert.Equal(t, "invalid format in file 'aportes.csv': found unmatched struct field with tags [controles]. Expected: id_casa,monto,notas,controles", err.Error())
	assert.True(t, errors.Is(err, inner))
}

func TestUsageError_As(t *testing.T) {
	wrapped := fmt.Errorf("command failed: %w", &UsageError{Usage: "Uso: contrib-sql <archivo.csv> <id_proyecto>"})

	var usageErr *UsageError
	require.True(t, errors.As(wrapped, &usageErr))
	assert.Contains(t, usageErr.Error(), "Uso:")
}
