package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cpjuanluismartell-lgtm/pdf-extractor-validation/dto"
)

// ErrUnsupportedFormat is returned for an unknown export format
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ExportFormat names an export rendering
type ExportFormat string

const (
	FormatText   ExportFormat = "text"
	FormatValues ExportFormat = "values"
	FormatJSON   ExportFormat = "json"
	FormatXLSX   ExportFormat = "xlsx"
)

// ParseExportFormat accepts a format name; the empty string means text
func ParseExportFormat(raw string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatValues, FormatJSON, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, raw)
}

// ExportOptions controls value rendering. Commas are only stripped here,
// never during extraction.
type ExportOptions struct {
	RemoveCommas bool
}

// DefaultExportOptions strips thousands separators
func DefaultExportOptions() ExportOptions {
	return ExportOptions{RemoveCommas: true}
}

// FormatValue renders a single value
func (o ExportOptions) FormatValue(value string) string {
	if o.RemoveCommas {
		return strings.ReplaceAll(value, ",", "")
	}
	return value
}

// ExportResult is a rendered export ready to be written out
type ExportResult struct {
	Data        []byte
	ContentType string
	Extension   string
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Export renders a record in the requested format
func Export(rec dto.FieldRecord, format ExportFormat, opts ExportOptions) (*ExportResult, error) {
	switch format {
	case FormatText, "":
		return &ExportResult{Data: []byte(FormatLabeled(rec, opts)), ContentType: "text/plain; charset=utf-8", Extension: "txt"}, nil
	case FormatValues:
		return &ExportResult{Data: []byte(FormatValuesOnly(rec, opts)), ContentType: "text/plain; charset=utf-8", Extension: "txt"}, nil
	case FormatJSON:
		data, err := ExportJSON(rec, opts)
		if err != nil {
			return nil, err
		}
		return &ExportResult{Data: data, ContentType: "application/json", Extension: "json"}, nil
	case FormatXLSX:
		data, err := ExportXLSX(rec, opts)
		if err != nil {
			return nil, err
		}
		return &ExportResult{Data: data, ContentType: xlsxContentType, Extension: "xlsx"}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// FormatLabeled renders one "<label> <value>" line per field, absent values
// shown as "Not found", followed by the discount section when present.
func FormatLabeled(rec dto.FieldRecord, opts ExportOptions) string {
	lines := make([]string, 0, len(dto.OrderedFieldKeys))
	for _, key := range dto.OrderedFieldKeys {
		lines = append(lines, dto.FieldLabel(key)+" "+labeledValue(rec.Get(key), opts))
	}
	out := strings.Join(lines, "\n")

	if rec.Descuento != nil {
		discount := make([]string, 0, len(dto.OrderedDiscountKeys))
		for _, key := range dto.OrderedDiscountKeys {
			discount = append(discount, "  "+dto.DiscountLabel(key)+" "+labeledValue(rec.Descuento.Get(key), opts))
		}
		out += "\n\n" + dto.DiscountSectionHeader + "\n" + strings.Join(discount, "\n")
	}
	return out
}

// FormatValuesOnly renders the present values one per line in schema order
func FormatValuesOnly(rec dto.FieldRecord, opts ExportOptions) string {
	var values []string
	add := func(v string) {
		v = opts.FormatValue(v)
		if t := strings.TrimSpace(v); t != "" && t != dto.NotFoundPlaceholder {
			values = append(values, v)
		}
	}

	for _, key := range dto.OrderedFieldKeys {
		add(rec.Get(key))
	}
	if rec.Descuento != nil {
		for _, key := range dto.OrderedDiscountKeys {
			add(rec.Descuento.Get(key))
		}
	}
	return strings.Join(values, "\n")
}

// ExportJSON renders the record with the same value formatting as the text exports
func ExportJSON(rec dto.FieldRecord, opts ExportOptions) ([]byte, error) {
	out := rec.Clone()
	for _, key := range dto.OrderedFieldKeys {
		out.Set(key, opts.FormatValue(out.Get(key)))
	}
	if out.Descuento != nil {
		for _, key := range dto.OrderedDiscountKeys {
			out.Descuento.Set(key, opts.FormatValue(out.Descuento.Get(key)))
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json encode: %w", err)
	}
	return data, nil
}

const xlsxSheet = "Factura"

// ExportXLSX returns a workbook with one label/value row per field
func ExportXLSX(rec dto.FieldRecord, opts ExportOptions) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}

	row := 1
	write := func(label, value string) {
		labelCell, _ := excelize.CoordinatesToCellName(1, row)
		valueCell, _ := excelize.CoordinatesToCellName(2, row)
		_ = f.SetCellValue(xlsxSheet, labelCell, label)
		_ = f.SetCellValue(xlsxSheet, valueCell, value)
		row++
	}

	write("Campo", "Valor")
	for _, key := range dto.OrderedFieldKeys {
		write(dto.FieldLabel(key), opts.FormatValue(rec.Get(key)))
	}
	if rec.Descuento != nil {
		row++
		write(dto.DiscountSectionHeader, "")
		for _, key := range dto.OrderedDiscountKeys {
			write(dto.DiscountLabel(key), opts.FormatValue(rec.Descuento.Get(key)))
		}
	}

	_ = f.SetColWidth(xlsxSheet, "A", "A", 34)
	_ = f.SetColWidth(xlsxSheet, "B", "B", 60)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func labeledValue(value string, opts ExportOptions) string {
	if v := opts.FormatValue(value); v != "" {
		return v
	}
	return dto.NotFoundPlaceholder
}
