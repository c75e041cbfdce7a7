package service

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cpjuanluismartell-lgtm/pdf-extractor-validation/dto"
)

func exportRecord() dto.FieldRecord {
	return dto.FieldRecord{
		NumeroAcreedorSAP: "100234567",
		Importe:           "125,000.00",
		IVA:               "20,000.00",
		Total:             "145,000.00",
		FechaCont:         "15/03/2024",
		NetoAPagar:        "143,840.00",
		Descuento:         &dto.DiscountRecord{Cantidad: "-1,000.00", Total: "-1,160.00"},
	}
}

func TestFormatLabeled(t *testing.T) {
	out := FormatLabeled(exportRecord(), DefaultExportOptions())
	lines := strings.Split(out, "\n")

	require.Len(t, lines, len(dto.OrderedFieldKeys)+2+len(dto.OrderedDiscountKeys))
	assert.Equal(t, "Número de Acreedor SAP: 100234567", lines[0])
	assert.Equal(t, "No. COPADE: Not found", lines[1])
	assert.Equal(t, "Importe: 125000.00", lines[3])
	assert.Equal(t, "Neto a pagar: 143840.00", lines[13])
	assert.Equal(t, "", lines[14])
	assert.Equal(t, "DESCUENTO S/COMPRAS (NC):", lines[15])
	assert.Equal(t, "  Cantidad: -1000.00", lines[16])
	assert.Equal(t, "  IVA: Not found", lines[17])
	assert.Equal(t, "  Total: -1160.00", lines[18])
}

func TestFormatLabeledKeepsCommas(t *testing.T) {
	out := FormatLabeled(dto.FieldRecord{Importe: "1,234.56"}, ExportOptions{})

	assert.Contains(t, out, "Importe: 1,234.56")
	assert.NotContains(t, out, dto.DiscountSectionHeader)
}

func TestFormatValuesOnly(t *testing.T) {
	rec := exportRecord()
	rec.NoCopade = dto.NotFoundPlaceholder
	rec.NoContrato = "   "

	out := FormatValuesOnly(rec, DefaultExportOptions())

	assert.Equal(t, "100234567\n125000.00\n20000.00\n145000.00\n15/03/2024\n143840.00\n-1000.00\n-1160.00", out)
}

func TestFormatValuesOnlyEmptyRecord(t *testing.T) {
	assert.Equal(t, "", FormatValuesOnly(dto.FieldRecord{}, DefaultExportOptions()))
}

func TestExportJSON(t *testing.T) {
	data, err := ExportJSON(exportRecord(), DefaultExportOptions())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "125000.00", got["importe"])
	assert.NotContains(t, got, "noCopade")
	assert.Equal(t, map[string]any{"cantidad": "-1000.00", "total": "-1160.00"}, got["descuento"])
}

func TestExportJSONDoesNotMutateRecord(t *testing.T) {
	rec := exportRecord()
	_, err := ExportJSON(rec, DefaultExportOptions())
	require.NoError(t, err)

	assert.Equal(t, "125,000.00", rec.Importe)
	assert.Equal(t, "-1,000.00", rec.Descuento.Cantidad)
}

func TestExportXLSX(t *testing.T) {
	data, err := ExportXLSX(exportRecord(), DefaultExportOptions())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	cell := func(axis string) string {
		v, err := f.GetCellValue(xlsxSheet, axis)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Campo", cell("A1"))
	assert.Equal(t, "Número de Acreedor SAP:", cell("A2"))
	assert.Equal(t, "100234567", cell("B2"))
	assert.Equal(t, "Importe:", cell("A5"))
	assert.Equal(t, "125000.00", cell("B5"))
	assert.Equal(t, "DESCUENTO S/COMPRAS (NC):", cell("A17"))
	assert.Equal(t, "Cantidad:", cell("A18"))
	assert.Equal(t, "-1000.00", cell("B18"))
}

func TestExportDispatch(t *testing.T) {
	tests := []struct {
		format      ExportFormat
		contentType string
		extension   string
	}{
		{FormatText, "text/plain; charset=utf-8", "txt"},
		{FormatValues, "text/plain; charset=utf-8", "txt"},
		{FormatJSON, "application/json", "json"},
		{FormatXLSX, xlsxContentType, "xlsx"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			res, err := Export(exportRecord(), tt.format, DefaultExportOptions())
			require.NoError(t, err)
			assert.Equal(t, tt.contentType, res.ContentType)
			assert.Equal(t, tt.extension, res.Extension)
			assert.NotEmpty(t, res.Data)
		})
	}

	_, err := Export(exportRecord(), ExportFormat("pdf"), DefaultExportOptions())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseExportFormat(t *testing.T) {
	f, err := ParseExportFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	f, err = ParseExportFormat(" XLSX ")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseExportFormat("csv")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
