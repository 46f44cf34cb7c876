package sqlgen

import (
	"strings"
	"testing"

	"fjacquet/contrib-sql/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(id int, amount, notes string, devices int) models.ContributionRecord {
	return models.ContributionRecord{
		HouseID:     id,
		Amount:      decimal.RequireFromString(amount),
		Notes:       notes,
		DeviceCount: devices,
	}
}

func TestRender_SingleRecord(t *testing.T) {
	records := []models.ContributionRecord{rec(5, "120.50", "test", 2)}

	sql, err := NewRenderer().Render(records, statsFor(records), 4)
	require.NoError(t, err)

	expected := `-- Proyecto ID: 4
-- Total registros: 1
-- Total esperado: Q120.50

BEGIN;

-- Casa 5 - 2 controles
UPDATE contribuciones_proyectos
SET
    monto_esperado = 120.5,
    metadata_json = '{"controles": 2, "proyecto": "AUTOMATIZACION DEL PORTON CONDOMINIO"}'::jsonb,
    notas = 'test - 2 controles remotos'
WHERE id_proyecto = 4 AND id_casa = 5;

COMMIT;

-- Verificación
SELECT
    COUNT(*) as total_casas,
    SUM(monto_esperado) as total_esperado,
    SUM((metadata_json->>'controles')::int) as total_controles
FROM contribuciones_proyectos
WHERE id_proyecto = 4;

-- Resultado esperado:
-- total_casas: 1
-- total_esperado: 120.50
-- total_controles: 2
`
	assert.Equal(t, expected, sql)
}

func TestRender_PreservesOrderAndReferencesOnlyInputHouses(t *testing.T) {
	records := []models.ContributionRecord{
		rec(9, "100", "a", 1),
		rec(2, "1250.25", "b", 3),
		rec(14, "60", "c", 0),
	}

	sql, err := NewRenderer().Render(records, statsFor(records), 7)
	require.NoError(t, err)

	assert.Equal(t, 3, strings.Count(sql, "UPDATE contribuciones_proyectos"))
	i9 := strings.Index(sql, "AND id_casa = 9;")
	i2 := strings.Index(sql, "AND id_casa = 2;")
	i14 := strings.Index(sql, "AND id_casa = 14;")
	assert.True(t, i9 >= 0 && i9 < i2 && i2 < i14, "statements must follow input order")
	assert.Equal(t, 3, strings.Count(sql, "WHERE id_proyecto = 7 AND id_casa = "))

	assert.Contains(t, sql, "-- Total esperado: Q1,410.25\n")
	assert.Contains(t, sql, "-- total_esperado: 1410.25\n")
	assert.Contains(t, sql, "-- total_controles: 4\n")
	assert.Contains(t, sql, "    monto_esperado = 100.0,\n")
	assert.Contains(t, sql, "    notas = 'c - 0 controles remotos'\n")
}

func TestRender_Empty(t *testing.T) {
	sql, err := NewRenderer().Render(nil, models.NewAggregateStats(), 1)
	require.NoError(t, err)

	assert.Contains(t, sql, "BEGIN;\n\nCOMMIT;\n")
	assert.Contains(t, sql, "-- total_casas: 0\n")
	assert.Contains(t, sql, "-- total_esperado: 0.00\n")
}

func TestRender_CustomRenderer(t *testing.T) {
	r := &Renderer{Table: "aportes", ProjectLabel: "CÁMARAS <ENTRADA>", CurrencySymbol: "$"}
	records := []models.ContributionRecord{rec(1, "10", "x", 1)}

	sql, err := r.Render(records, statsFor(records), 2)
	require.NoError(t, err)

	assert.Contains(t, sql, "UPDATE aportes\n")
	assert.Contains(t, sql, "FROM aportes\n")
	assert.Contains(t, sql, `"proyecto": "CÁMARAS <ENTRADA>"`)
	assert.Contains(t, sql, "-- Total esperado: $10.00\n")
}

func TestMetadataJSON(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		devices  int
		expected string
	}{
		{"default label", DefaultProjectLabel, 2, `{"controles": 2, "proyecto": "AUTOMATIZACION DEL PORTON CONDOMINIO"}`},
		{"non ascii kept", "PORTÓN ÑANDÚ", 0, `{"controles": 0, "proyecto": "PORTÓN ÑANDÚ"}`},
		{"quotes escaped as json", `EL "GRANDE"`, 1, `{"controles": 1, "proyecto": "EL \"GRANDE\""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Renderer{Table: DefaultTable, ProjectLabel: tt.label}
			got, err := r.MetadataJSON(tt.devices)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestQuoteLiteral(t *testing.T) {
	assert.Equal(t, "'test'", QuoteLiteral("test"))
	assert.Equal(t, "''", QuoteLiteral(""))
	assert.Equal(t, "'O''Brien'", QuoteLiteral("O'Brien"))
}

func TestUpdateStatement_EscapesNotes(t *testing.T) {
	stmt, err := NewRenderer().UpdateStatement(rec(3, "50", "casa de D'Angelo", 1), 4)
	require.NoError(t, err)

	assert.Contains(t, stmt, "    notas = 'casa de D''Angelo - 1 controles remotos'\n")
	assert.True(t, strings.HasPrefix(stmt, "-- Casa 3 - 1 controles\n"))
}

// statsFor folds records into aggregates the way the parser does while reading
func statsFor(records []models.ContributionRecord) models.AggregateStats {
	stats := models.NewAggregateStats()
	for _, r := range records {
		stats.Add(r)
	}
	return stats
}
