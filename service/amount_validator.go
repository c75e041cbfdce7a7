package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cpjuanluismartell-lgtm/pdf-extractor-validation/dto"
)

// Warning codes reported by AmountValidator
const (
	CodeTotalMismatch        = "total_mismatch"
	CodeNetoMismatch         = "neto_mismatch"
	CodeLinkedAmountMismatch = "linked_amount_mismatch"
	CodeInvalidAmount        = "invalid_amount"
	CodeInvalidDate          = "invalid_date"
)

const dateLayout = "02/01/2006"

// AmountValidator cross-checks the amounts of a record. It only reports;
// the record is never changed.
type AmountValidator struct {
	tolerance decimal.Decimal
}

// NewAmountValidator creates a validator accepting one cent of rounding difference
func NewAmountValidator() *AmountValidator {
	return &AmountValidator{tolerance: decimal.New(1, -2)}
}

var amountKeys = []dto.FieldKey{
	dto.FieldImporte,
	dto.FieldIVA,
	dto.FieldTotal,
	dto.FieldImportePedidoSap,
	dto.FieldImporteRecepcionBien,
	dto.FieldNetoAPagar,
}

// Validate runs every check and collects the warnings
func (v *AmountValidator) Validate(rec dto.FieldRecord) dto.ValidationResult {
	result := dto.ValidationResult{Valid: true, Warnings: []dto.ValidationWarning{}}
	warn := func(field, code, format string, args ...any) {
		result.Warnings = append(result.Warnings, dto.ValidationWarning{
			Field:   field,
			Code:    code,
			Message: fmt.Sprintf(format, args...),
		})
	}

	amounts := make(map[dto.FieldKey]decimal.Decimal, len(amountKeys))
	for _, key := range amountKeys {
		raw := rec.Get(key)
		if raw == "" {
			continue
		}
		d, err := ParseAmount(raw)
		if err != nil {
			warn(string(key), CodeInvalidAmount, "%q is not an amount", raw)
			continue
		}
		amounts[key] = d
	}

	var discountTotal *decimal.Decimal
	if rec.Descuento != nil {
		for _, key := range dto.OrderedDiscountKeys {
			raw := rec.Descuento.Get(key)
			if raw == "" {
				continue
			}
			d, err := ParseAmount(raw)
			if err != nil {
				warn(dto.DiscountSelection(key).String(), CodeInvalidAmount, "%q is not an amount", raw)
				continue
			}
			if key == dto.DiscountTotal {
				discountTotal = &d
			}
		}
	}

	importe, hasImporte := amounts[dto.FieldImporte]
	iva, hasIVA := amounts[dto.FieldIVA]
	total, hasTotal := amounts[dto.FieldTotal]
	if hasImporte && hasIVA && hasTotal {
		if expected := importe.Add(iva); !v.close(expected, total) {
			warn(string(dto.FieldTotal), CodeTotalMismatch,
				"importe + iva = %s but total is %s", expected.StringFixed(2), total.StringFixed(2))
		}
	}

	if neto, ok := amounts[dto.FieldNetoAPagar]; ok && hasTotal {
		expected := total
		if discountTotal != nil {
			expected = total.Add(*discountTotal)
		}
		if !v.close(expected, neto) {
			warn(string(dto.FieldNetoAPagar), CodeNetoMismatch,
				"expected neto a pagar %s but found %s", expected.StringFixed(2), neto.StringFixed(2))
		}
	}

	pedido, hasPedido := amounts[dto.FieldImportePedidoSap]
	recepcion, hasRecepcion := amounts[dto.FieldImporteRecepcionBien]
	if hasPedido && hasRecepcion && !pedido.Equal(recepcion) {
		warn(string(dto.FieldImporteRecepcionBien), CodeLinkedAmountMismatch,
			"importe pedido sap %s differs from importe recepción %s", pedido.StringFixed(2), recepcion.StringFixed(2))
	}

	if rec.FechaCont != "" {
		if _, err := time.Parse(dateLayout, rec.FechaCont); err != nil {
			warn(string(dto.FieldFechaCont), CodeInvalidDate, "%q is not a DD/MM/YYYY date", rec.FechaCont)
		}
	}

	result.Valid = len(result.Warnings) == 0
	return result
}

func (v *AmountValidator) close(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(v.tolerance)
}

// ParseAmount reads a money value, ignoring a currency sign and thousands separators
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.NewReplacer(",", "", "$", "", " ", "").Replace(strings.TrimSpace(raw))
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse amount %q: %w", raw, err)
	}
	return d, nil
}
