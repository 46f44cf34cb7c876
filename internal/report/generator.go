// Package report renders the human-readable contribution summary and the
// machine-readable summary files.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"fjacquet/contrib-sql/internal/currencyutils"
	"fjacquet/contrib-sql/internal/logging"
	"fjacquet/contrib-sql/internal/models"

	"gopkg.in/yaml.v3"
)

const bannerWidth = 80

// Generator writes contribution reports.
type Generator struct {
	CurrencySymbol string
	logger         logging.Logger
}

// NewGenerator creates a new Generator. A nil logger falls back to a default one.
func NewGenerator(currencySymbol string, logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Generator{
		CurrencySymbol: currencySymbol,
		logger:         logger.WithField("component", "ReportGenerator"),
	}
}

// Banner returns the separator line framing report sections.
func Banner() string {
	return strings.Repeat("=", bannerWidth)
}

// WriteSummary writes the human-readable report for records followed by the
// heading of the SQL section.
func (g *Generator) WriteSummary(w io.Writer, records []models.ContributionRecord, stats models.AggregateStats) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, Banner())
	fmt.Fprintln(bw, "DATOS EXTRAÍDOS DEL CSV")
	fmt.Fprintln(bw, Banner())
	fmt.Fprintf(bw, "Total de registros: %d\n", stats.RecordCount)
	fmt.Fprintf(bw, "Suma de montos: %s\n", currencyutils.FormatCurrency(stats.TotalAmount, g.CurrencySymbol))
	fmt.Fprintf(bw, "Total de controles: %d\n", stats.TotalDevices)

	fmt.Fprintln(bw, "\nDistribución de controles:")
	for _, devices := range stats.DistributionKeys() {
		fmt.Fprintf(bw, "  %d casas con %d controles\n", stats.DeviceDistribution[devices], devices)
	}

	fmt.Fprintln(bw, "\nCasas:")
	for _, r := range records {
		fmt.Fprintf(bw, "  Casa %2d: %s%7s (%d controles)\n",
			r.HouseID, g.CurrencySymbol, currencyutils.FormatFixed(r.Amount), r.DeviceCount)
	}

	fmt.Fprintln(bw, "\n"+Banner())
	fmt.Fprintln(bw, "SENTENCIAS UPDATE SQL")
	fmt.Fprintln(bw, Banner())

	if err := bw.Flush(); err != nil {
		g.logger.WithError(err).Error("Failed to write summary")
		return fmt.Errorf("error writing summary: %w", err)
	}
	return nil
}

// DistributionEntry is one line of the device-count distribution.
type DistributionEntry struct {
	Devices int `json:"controles" yaml:"controles"`
	Houses  int `json:"casas" yaml:"casas"`
}

// Summary is the machine-readable form of a run.
type Summary struct {
	ProjectID    int                 `json:"id_proyecto" yaml:"id_proyecto"`
	SourceFile   string              `json:"archivo_csv" yaml:"archivo_csv"`
	OutputFile   string              `json:"archivo_sql" yaml:"archivo_sql"`
	RecordCount  int                 `json:"total_casas" yaml:"total_casas"`
	TotalAmount  string              `json:"total_esperado" yaml:"total_esperado"`
	TotalDevices int                 `json:"total_controles" yaml:"total_controles"`
	Distribution []DistributionEntry `json:"distribucion_controles" yaml:"distribucion_controles"`
	HouseIDs     []int               `json:"casas" yaml:"casas"`
}

// NewSummary builds a Summary for one run.
func NewSummary(projectID int, sourceFile, outputFile string, records []models.ContributionRecord, stats models.AggregateStats) *Summary {
	s := &Summary{
		ProjectID:    projectID,
		SourceFile:   sourceFile,
		OutputFile:   outputFile,
		RecordCount:  stats.RecordCount,
		TotalAmount:  currencyutils.FormatFixed(stats.TotalAmount),
		TotalDevices: stats.TotalDevices,
		Distribution: make([]DistributionEntry, 0, len(stats.DeviceDistribution)),
		HouseIDs:     make([]int, 0, len(records)),
	}
	for _, devices := range stats.DistributionKeys() {
		s.Distribution = append(s.Distribution, DistributionEntry{Devices: devices, Houses: stats.DeviceDistribution[devices]})
	}
	for _, r := range records {
		s.HouseIDs = append(s.HouseIDs, r.HouseID)
	}
	return s
}

// FormatFromPath picks the summary format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json", nil
	case ".yaml", ".yml":
		return "yaml", nil
	default:
		return "", fmt.Errorf("unsupported summary file extension: %q (use .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// GenerateReport renders summary in the specified format (json or yaml).
func (g *Generator) GenerateReport(summary *Summary, format string) ([]byte, error) {
	switch format {
	case "json":
		return g.generateJSONReport(summary)
	case "yaml":
		return g.generateYAMLReport(summary)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *Generator) generateJSONReport(summary *Summary) ([]byte, error) {
	jsonReport, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(jsonReport, '\n'), nil
}

func (g *Generator) generateYAMLReport(summary *Summary) ([]byte, error) {
	yamlReport, err := yaml.Marshal(summary)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return yamlReport, nil
}
