package utils

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/cpjuanluismartell-lgtm/pdf-extractor-validation/dto"
)

// moneyValue matches an optional currency sign and an amount with two decimals.
// The matched amount keeps its thousands separators.
const moneyValue = `\$?\s*([\d,]+\.\d{2})`

// signedMoneyValue is moneyValue allowing a leading minus, used by discount rows
const signedMoneyValue = `\$?\s*(-?[\d,]+\.\d{2})`

// lineAmount matches a whole amount on the line following a linked identifier.
// It may be followed by punctuation but not by more digits, so dates like
// 14.03.2024 are skipped.
const lineAmount = `\b(\d{1,3}(?:,\d{3})*\.\d{2}|\d+\.\d{2})[.,]?(?:[^\d.,]|$)`

// fieldRule extracts one field. Patterns are tried in order and the first one
// that matches anywhere in the text wins.
type fieldRule struct {
	key       dto.FieldKey
	patterns  []*regexp.Regexp
	normalize func(match []string) string
}

func (r fieldRule) extract(text string) string {
	for _, re := range r.patterns {
		match := re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		if r.normalize != nil {
			return r.normalize(match)
		}
		return strings.TrimSpace(match[1])
	}
	return ""
}

// linkedRule finds an identifier and then the amount printed after it on the same line
type linkedRule struct {
	idKey     dto.FieldKey
	amountKey dto.FieldKey
	label     string
	id        *regexp.Regexp
}

func (r linkedRule) amountPattern(id string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + r.label + `\s+` + regexp.QuoteMeta(id) + `\b[^\r\n]*?` + lineAmount)
}

// discountRule extracts one discount row from the discount section
type discountRule struct {
	key     dto.DiscountKey
	pattern *regexp.Regexp
}

func ci(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(`(?i)`+p))
	}
	return out
}

var invoiceRules = []fieldRule{
	{key: dto.FieldNumeroAcreedorSAP, patterns: ci(`Número de Acreedor SAP:?\s*(\d+)`)},
	{key: dto.FieldNoCopade, patterns: ci(`No\.\s*COPADE:?\s*([\w-]+)`)},
	{key: dto.FieldNoContrato, patterns: ci(`No\.\s*Contrato:?\s*([\w-]+)`)},
	{key: dto.FieldNoEstRem, patterns: ci(`(?:No\.\s*Est\s*/\s*Rem|Estimación|Remisión|\bRem\b):?\s*([\w.-]+)`)},
	{
		key:       dto.FieldFechaCont,
		patterns:  ci(`(?:Fecha\s*cont\.|Emisión):?\s*(\d{2})[./](\d{2})[./](\d{4})`),
		normalize: normalizeDate,
	},
	{key: dto.FieldImporte, patterns: ci(`\bImporte:?\s+` + moneyValue)},
	{key: dto.FieldIVA, patterns: ci(`\bIVA:?\s+` + moneyValue)},
	{key: dto.FieldTotal, patterns: ci(`\bTOTAL:?\s+` + moneyValue)},
	{key: dto.FieldNetoAPagar, patterns: ci(`(?:Neto a\s+)?Pagar:?\s+` + moneyValue)},
	{
		key:       dto.FieldDescripcionBienServicio,
		patterns:  ci(`(?s)Descripción de Bien y Servicio\s*(.*?)(?:Pedido Sap|TOTAL|Neto a pagar|$)`),
		normalize: cleanDescription,
	},
}

var linkedRules = []linkedRule{
	{
		idKey:     dto.FieldPedidoSap,
		amountKey: dto.FieldImportePedidoSap,
		label:     `Pedido Sap`,
		id:        regexp.MustCompile(`(?i)Pedido Sap\s+(\d+)`),
	},
	{
		idKey:     dto.FieldRecepcionBien,
		amountKey: dto.FieldImporteRecepcionBien,
		label:     `Recepción del bien \(s\)`,
		id:        regexp.MustCompile(`(?i)Recepción del bien \(s\)\s+(\d+)`),
	},
}

// The section ends at "Neto a pagar" in any case or at the uppercase word TOTAL,
// so a mixed-case "Total" row inside the section stays inside it.
var reDiscountSection = regexp.MustCompile(`(?s)(?i:DESCUENTO S/COMPRAS \(NC\))(.*?)(?:(?i:Neto\s+a\s+pagar)|\bTOTAL\b|$)`)

var discountRules = []discountRule{
	{key: dto.DiscountCantidad, pattern: regexp.MustCompile(`(?i)Cantidad:?\s+` + signedMoneyValue)},
	{key: dto.DiscountIVA, pattern: regexp.MustCompile(`(?i)IVA:?\s+` + signedMoneyValue)},
	{key: dto.DiscountTotal, pattern: regexp.MustCompile(`(?i)Total:?\s+` + signedMoneyValue)},
}

var (
	reAcceptance   = regexp.MustCompile(`(?i)Aceptación del Bien o Servicio`)
	reLeadingColon = regexp.MustCompile(`^:\s*`)
	reWhitespace   = regexp.MustCompile(`\s+`)
)

// ParseInvoice extracts the invoice fields from the text of a document.
// Fields without a match are left empty; it never fails.
func ParseInvoice(text string) dto.FieldRecord {
	text = normalizeSpaces(text)

	var record dto.FieldRecord
	for _, rule := range invoiceRules {
		record.Set(rule.key, rule.extract(text))
	}

	for _, rule := range linkedRules {
		id := firstGroup(rule.id, text)
		if id == "" {
			continue
		}
		record.Set(rule.idKey, id)
		record.Set(rule.amountKey, firstGroup(rule.amountPattern(id), text))
	}

	record.Descuento = parseDiscount(text)
	return record
}

// parseDiscount returns nil unless at least one discount row was found
func parseDiscount(text string) *dto.DiscountRecord {
	section := reDiscountSection.FindStringSubmatch(text)
	if section == nil {
		return nil
	}

	var discount dto.DiscountRecord
	for _, rule := range discountRules {
		discount.Set(rule.key, firstGroup(rule.pattern, section[1]))
	}
	if discount.IsEmpty() {
		return nil
	}
	return &discount
}

func firstGroup(re *regexp.Regexp, text string) string {
	if match := re.FindStringSubmatch(text); len(match) > 1 {
		return strings.TrimSpace(match[1])
	}
	return ""
}

// normalizeDate renders DD.MM.YYYY and DD/MM/YYYY as DD/MM/YYYY
func normalizeDate(match []string) string {
	return match[1] + "/" + match[2] + "/" + match[3]
}

func cleanDescription(match []string) string {
	desc := reAcceptance.ReplaceAllString(match[1], "")
	desc = reLeadingColon.ReplaceAllString(desc, "")
	desc = reWhitespace.ReplaceAllString(desc, " ")
	return strings.TrimSpace(desc)
}

// normalizeSpaces turns non-breaking and other Unicode spaces into plain
// spaces so label patterns match them; line breaks are kept.
func normalizeSpaces(text string) string {
	return strings.Map(func(r rune) rune {
		if r != '\n' && r != '\r' && r != ' ' && unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, text)
}
