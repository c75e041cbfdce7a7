package dto

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownField is returned when a selection key does not name a schema field
var ErrUnknownField = errors.New("unknown field key")

// FieldKey identifies a top-level field of a FieldRecord
type FieldKey string

const (
	FieldNumeroAcreedorSAP       FieldKey = "numeroAcreedorSAP"
	FieldNoCopade                FieldKey = "noCopade"
	FieldNoContrato              FieldKey = "noContrato"
	FieldImporte                 FieldKey = "importe"
	FieldIVA                     FieldKey = "iva"
	FieldTotal                   FieldKey = "total"
	FieldNoEstRem                FieldKey = "noEstRem"
	FieldDescripcionBienServicio FieldKey = "descripcionBienServicio"
	FieldPedidoSap               FieldKey = "pedidoSap"
	FieldRecepcionBien           FieldKey = "recepcionBien"
	FieldImportePedidoSap        FieldKey = "importePedidoSap"
	FieldImporteRecepcionBien    FieldKey = "importeRecepcionBien"
	FieldFechaCont               FieldKey = "fechaCont"
	FieldNetoAPagar              FieldKey = "netoAPagar"
)

// DiscountKey identifies a field of the nested DiscountRecord
type DiscountKey string

const (
	DiscountCantidad DiscountKey = "cantidad"
	DiscountIVA      DiscountKey = "iva"
	DiscountTotal    DiscountKey = "total"
)

// DiscountKeyPrefix prefixes compound selection keys that address the discount record
const DiscountKeyPrefix = "descuento."

// DiscountSectionHeader is the header line written before discount rows in exports
const DiscountSectionHeader = "DESCUENTO S/COMPRAS (NC):"

// NotFoundPlaceholder is rendered for absent values in labeled exports
const NotFoundPlaceholder = "Not found"

// OrderedFieldKeys is the display and export order of the top-level fields
var OrderedFieldKeys = []FieldKey{
	FieldNumeroAcreedorSAP,
	FieldNoCopade,
	FieldNoContrato,
	FieldImporte,
	FieldIVA,
	FieldTotal,
	FieldNoEstRem,
	FieldDescripcionBienServicio,
	FieldPedidoSap,
	FieldRecepcionBien,
	FieldImportePedidoSap,
	FieldImporteRecepcionBien,
	FieldFechaCont,
	FieldNetoAPagar,
}

// OrderedDiscountKeys is the display and export order of the discount fields
var OrderedDiscountKeys = []DiscountKey{
	DiscountCantidad,
	DiscountIVA,
	DiscountTotal,
}

var fieldLabels = map[FieldKey]string{
	FieldNumeroAcreedorSAP:       "Número de Acreedor SAP:",
	FieldNoCopade:                "No. COPADE:",
	FieldNoContrato:              "No. Contrato:",
	FieldImporte:                 "Importe:",
	FieldIVA:                     "IVA:",
	FieldTotal:                   "TOTAL:",
	FieldNoEstRem:                "No. Est / Rem:",
	FieldDescripcionBienServicio: "Descripción de Bien y Servicio:",
	FieldPedidoSap:               "Pedido Sap:",
	FieldImportePedidoSap:        "Importe Pedido Sap:",
	FieldRecepcionBien:           "Recepción del bien (s):",
	FieldImporteRecepcionBien:    "Importe Recepción bien:",
	FieldFechaCont:               "Fecha cont.:",
	FieldNetoAPagar:              "Neto a pagar:",
}

var discountLabels = map[DiscountKey]string{
	DiscountCantidad: "Cantidad:",
	DiscountIVA:      "IVA:",
	DiscountTotal:    "Total:",
}

// FieldLabel returns the display label of a top-level field
func FieldLabel(key FieldKey) string {
	return fieldLabels[key]
}

// DiscountLabel returns the display label of a discount field
func DiscountLabel(key DiscountKey) string {
	return discountLabels[key]
}

// IsValid reports whether key is one of the fixed top-level keys
func (k FieldKey) IsValid() bool {
	_, ok := fieldLabels[k]
	return ok
}

// IsValid reports whether key is one of the fixed discount keys
func (k DiscountKey) IsValid() bool {
	_, ok := discountLabels[k]
	return ok
}

// SelectionKey addresses either a top-level field or a discount sub-field.
// Exactly one of Field and Discount is set.
type SelectionKey struct {
	Field    FieldKey
	Discount DiscountKey
}

// FieldSelection builds a key for a top-level field
func FieldSelection(key FieldKey) SelectionKey {
	return SelectionKey{Field: key}
}

// DiscountSelection builds a key for a discount sub-field
func DiscountSelection(key DiscountKey) SelectionKey {
	return SelectionKey{Discount: key}
}

// IsDiscount reports whether the key addresses the discount record
func (k SelectionKey) IsDiscount() bool {
	return k.Discount != ""
}

// Label returns the display label of the addressed field
func (k SelectionKey) Label() string {
	if k.IsDiscount() {
		return DiscountLabel(k.Discount)
	}
	return FieldLabel(k.Field)
}

func (k SelectionKey) String() string {
	if k.IsDiscount() {
		return DiscountKeyPrefix + string(k.Discount)
	}
	return string(k.Field)
}

// ParseSelectionKey parses "fieldKey" or "descuento.<subkey>"
func ParseSelectionKey(raw string) (SelectionKey, error) {
	raw = strings.TrimSpace(raw)
	if sub, ok := strings.CutPrefix(raw, DiscountKeyPrefix); ok {
		key := DiscountKey(sub)
		if !key.IsValid() {
			return SelectionKey{}, fmt.Errorf("%w: %q", ErrUnknownField, raw)
		}
		return DiscountSelection(key), nil
	}

	key := FieldKey(raw)
	if !key.IsValid() {
		return SelectionKey{}, fmt.Errorf("%w: %q", ErrUnknownField, raw)
	}
	return FieldSelection(key), nil
}
