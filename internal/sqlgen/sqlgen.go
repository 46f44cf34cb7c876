// Package sqlgen renders contribution records as a transactional block of
// PostgreSQL UPDATE statements followed by a verification query.
package sqlgen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"fjacquet/contrib-sql/internal/currencyutils"
	"fjacquet/contrib-sql/internal/models"
)

const (
	DefaultTable          = "contribuciones_proyectos"
	DefaultProjectLabel   = "AUTOMATIZACION DEL PORTON CONDOMINIO"
	DefaultCurrencySymbol = "Q"
)

// Renderer produces the SQL text for one project.
type Renderer struct {
	Table          string
	ProjectLabel   string
	CurrencySymbol string
}

// NewRenderer returns a Renderer using the default table, label and currency.
func NewRenderer() *Renderer {
	return &Renderer{
		Table:          DefaultTable,
		ProjectLabel:   DefaultProjectLabel,
		CurrencySymbol: DefaultCurrencySymbol,
	}
}

// Render returns the complete SQL script for records. stats must be the
// aggregates of the same records; they are echoed as expected values.
func (r *Renderer) Render(records []models.ContributionRecord, stats models.AggregateStats, projectID int) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "-- Proyecto ID: %d\n", projectID)
	fmt.Fprintf(&b, "-- Total registros: %d\n", stats.RecordCount)
	fmt.Fprintf(&b, "-- Total esperado: %s\n", currencyutils.FormatCurrency(stats.TotalAmount, r.CurrencySymbol))
	b.WriteString("\n")
	b.WriteString("BEGIN;\n")
	b.WriteString("\n")

	for _, rec := range records {
		stmt, err := r.UpdateStatement(rec, projectID)
		if err != nil {
			return "", err
		}
		b.WriteString(stmt)
		b.WriteString("\n")
	}

	b.WriteString("COMMIT;\n")
	b.WriteString("\n")
	b.WriteString(r.VerificationQuery(stats, projectID))

	return b.String(), nil
}

// UpdateStatement renders the comment line and UPDATE for a single record.
func (r *Renderer) UpdateStatement(rec models.ContributionRecord, projectID int) (string, error) {
	metadata, err := r.MetadataJSON(rec.DeviceCount)
	if err != nil {
		return "", err
	}
	notes := fmt.Sprintf("%s - %d controles remotos", rec.Notes, rec.DeviceCount)

	var b strings.Builder
	fmt.Fprintf(&b, "-- Casa %d - %d controles\n", rec.HouseID, rec.DeviceCount)
	fmt.Fprintf(&b, "UPDATE %s\n", r.Table)
	b.WriteString("SET\n")
	fmt.Fprintf(&b, "    monto_esperado = %s,\n", currencyutils.FormatSQLNumeric(rec.Amount))
	fmt.Fprintf(&b, "    metadata_json = %s::jsonb,\n", QuoteLiteral(metadata))
	fmt.Fprintf(&b, "    notas = %s\n", QuoteLiteral(notes))
	fmt.Fprintf(&b, "WHERE id_proyecto = %d AND id_casa = %d;\n", projectID, rec.HouseID)
	return b.String(), nil
}

// VerificationQuery renders the SELECT that checks the applied totals, followed
// by the expected values as comments.
func (r *Renderer) VerificationQuery(stats models.AggregateStats, projectID int) string {
	var b strings.Builder
	b.WriteString("-- Verificación\n")
	b.WriteString("SELECT\n")
	b.WriteString("    COUNT(*) as total_casas,\n")
	b.WriteString("    SUM(monto_esperado) as total_esperado,\n")
	b.WriteString("    SUM((metadata_json->>'controles')::int) as total_controles\n")
	fmt.Fprintf(&b, "FROM %s\n", r.Table)
	fmt.Fprintf(&b, "WHERE id_proyecto = %d;\n", projectID)
	b.WriteString("\n")
	b.WriteString("-- Resultado esperado:\n")
	fmt.Fprintf(&b, "-- total_casas: %d\n", stats.RecordCount)
	fmt.Fprintf(&b, "-- total_esperado: %s\n", currencyutils.FormatFixed(stats.TotalAmount))
	fmt.Fprintf(&b, "-- total_controles: %d\n", stats.TotalDevices)
	return b.String()
}

// MetadataJSON returns the metadata object stored with each contribution:
// {"controles": 2, "proyecto": "<label>"}. Non-ASCII characters are kept as is.
func (r *Renderer) MetadataJSON(deviceCount int) (string, error) {
	label, err := marshalString(r.ProjectLabel)
	if err != nil {
		return "", fmt.Errorf("error encoding project label: %w", err)
	}
	return fmt.Sprintf(`{"controles": %d, "proyecto": %s}`, deviceCount, label), nil
}

func marshalString(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// QuoteLiteral wraps s in single quotes, doubling any embedded single quote.
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
