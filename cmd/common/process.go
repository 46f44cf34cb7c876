// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"io"

	"fjacquet/contrib-sql/internal/contribparser"
	"fjacquet/contrib-sql/internal/fileutils"
	"fjacquet/contrib-sql/internal/logging"
	"fjacquet/contrib-sql/internal/report"
	"fjacquet/contrib-sql/internal/sqlgen"
)

// ProcessOptions describes one run of the generator.
type ProcessOptions struct {
	InputFile      string
	ProjectID      int
	Delimiter      rune
	Table          string
	ProjectLabel   string
	CurrencySymbol string
	OutputSuffix   string
	SummaryFile    string
}

func (o ProcessOptions) withDefaults() ProcessOptions {
	if o.Delimiter == 0 {
		o.Delimiter = ','
	}
	if o.Table == "" {
		o.Table = sqlgen.DefaultTable
	}
	if o.ProjectLabel == "" {
		o.ProjectLabel = sqlgen.DefaultProjectLabel
	}
	if o.CurrencySymbol == "" {
		o.CurrencySymbol = sqlgen.DefaultCurrencySymbol
	}
	if o.OutputSuffix == "" {
		o.OutputSuffix = fileutils.DefaultOutputSuffix
	}
	return o
}

// ProcessResult reports where the generated files were written.
type ProcessResult struct {
	OutputFile  string
	SummaryFile string
	RecordCount int
}

// ProcessFile parses opts.InputFile, writes the report and the SQL script to out
// and saves the same SQL script next to the input file.
func ProcessFile(opts ProcessOptions, out io.Writer, log logging.Logger) (*ProcessResult, error) {
	opts = opts.withDefaults()
	log = log.WithFields(
		logging.Field{Key: logging.FieldInputFile, Value: opts.InputFile},
		logging.Field{Key: logging.FieldProjectID, Value: opts.ProjectID},
	)

	var summaryFormat string
	if opts.SummaryFile != "" {
		format, err := report.FormatFromPath(opts.SummaryFile)
		if err != nil {
			return nil, err
		}
		summaryFormat = format
	}

	parsed, err := contribparser.New(opts.Delimiter, log).ParseFile(opts.InputFile)
	if err != nil {
		return nil, err
	}

	generator := report.NewGenerator(opts.CurrencySymbol, log)
	if err := generator.WriteSummary(out, parsed.Records, parsed.Stats); err != nil {
		return nil, err
	}

	renderer := sqlgen.NewRenderer()
	renderer.Table = opts.Table
	renderer.ProjectLabel = opts.ProjectLabel
	renderer.CurrencySymbol = opts.CurrencySymbol
	script, err := renderer.Render(parsed.Records, parsed.Stats, opts.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("error rendering SQL: %w", err)
	}
	if _, err := io.WriteString(out, script); err != nil {
		return nil, fmt.Errorf("error writing SQL to output: %w", err)
	}

	outputFile := fileutils.OutputPath(opts.InputFile, opts.OutputSuffix)
	if err := fileutils.WriteFileAtomic(outputFile, []byte(script), 0644); err != nil {
		log.WithError(err).Error("Failed to write SQL file")
		return nil, fmt.Errorf("error writing SQL file: %w", err)
	}
	log.Info("SQL file written", logging.Field{Key: logging.FieldOutputFile, Value: outputFile})
	if _, err := fmt.Fprintf(out, "\n✅ SQL guardado en: %s\n", outputFile); err != nil {
		return nil, fmt.Errorf("error writing to output: %w", err)
	}

	result := &ProcessResult{OutputFile: outputFile, RecordCount: parsed.Stats.RecordCount}

	if opts.SummaryFile != "" {
		summary := report.NewSummary(opts.ProjectID, opts.InputFile, outputFile, parsed.Records, parsed.Stats)
		data, err := generator.GenerateReport(summary, summaryFormat)
		if err != nil {
			return nil, err
		}
		if err := fileutils.WriteFileAtomic(opts.SummaryFile, data, 0644); err != nil {
			return nil, fmt.Errorf("error writing summary file: %w", err)
		}
		log.Info("Summary file written",
			logging.Field{Key: logging.FieldOutputFile, Value: opts.SummaryFile},
			logging.Field{Key: logging.FieldFormat, Value: summaryFormat})
		result.SummaryFile = opts.SummaryFile
	}

	return result, nil
}
