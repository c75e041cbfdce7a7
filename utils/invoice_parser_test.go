package utils

import (
	"testing"

	"github.com/cpjuanluismartell-lgtm/pdf-extractor-validation/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleInvoice = `PEMEX Exploración y Producción
Número de Acreedor SAP: 100234567
No. COPADE: COP-2024-0915
No. Contrato: 640228807-A
No. Est / Rem: EST-07
Fecha cont. 15.03.2024
Descripción de Bien y Servicio: Aceptación del Bien o Servicio
Servicio de mantenimiento   preventivo a
equipos de bombeo
Pedido Sap 4500123456 Posición 10 125,000.00 MXN
Recepción del bien (s) 5000987654 Fecha 14.03.2024 125,000.00
Importe: $ 125,000.00 IVA: $ 20,000.00
TOTAL: $ 145,000.00
DESCUENTO S/COMPRAS (NC)
Cantidad -1,000.00
IVA -160.00
Total -1,160.00
Neto a pagar $ 143,840.00

`

func TestParseInvoice(t *testing.T) {
	data := ParseInvoice(sampleInvoice)

	assert.Equal(t, "100234567", data.NumeroAcreedorSAP)
	assert.Equal(t, "COP-2024-0915", data.NoCopade)
	assert.Equal(t, "640228807-A", data.NoContrato)
	assert.Equal(t, "EST-07", data.NoEstRem)
	assert.Equal(t, "15/03/2024", data.FechaCont)
	assert.Equal(t, "Servicio de mantenimiento preventivo a equipos de bombeo", data.DescripcionBienServicio)
	assert.Equal(t, "4500123456", data.PedidoSap)
	assert.Equal(t, "125,000.00", data.ImportePedidoSap)
	assert.Equal(t, "5000987654", data.RecepcionBien)
	assert.Equal(t, "125,000.00", data.ImporteRecepcionBien)
	assert.Equal(t, "125,000.00", data.Importe)
	assert.Equal(t, "20,000.00", data.IVA)
	assert.Equal(t, "145,000.00", data.Total)
	assert.Equal(t, "143,840.00", data.NetoAPagar)

	require.NotNil(t, data.Descuento)
	assert.Equal(t, "-1,000.00", data.Descuento.Cantidad)
	assert.Equal(t, "-160.00", data.Descuento.IVA)
	assert.Equal(t, "-1,160.00", data.Descuento.Total)
}

func TestParseInvoiceNoLabels(t *testing.T) {
	for _, text := range []string{"", "   \n\n  ", "Factura de servicios sin datos reconocibles 123.45"} {
		data := ParseInvoice(text)
		assert.True(t, data.IsEmpty(), "text %q", text)
		assert.Nil(t, data.Descuento, "text %q", text)
	}
}

func TestParseInvoiceMoneyKeepsCommas(t *testing.T) {
	withCommas := ParseInvoice("Importe: 1,234.56")
	withoutCommas := ParseInvoice("Importe 1234.56")

	assert.Equal(t, "1,234.56", withCommas.Importe)
	assert.Equal(t, "1234.56", withoutCommas.Importe)
}

func TestParseInvoiceMoneyNotLineAnchored(t *testing.T) {
	data := ParseInvoice("Subtotal de la factura Importe $1,500.00 y IVA 240.00 con TOTAL: 1,740.00")

	assert.Equal(t, "1,500.00", data.Importe)
	assert.Equal(t, "240.00", data.IVA)
	assert.Equal(t, "1,740.00", data.Total)
}

func TestParseInvoiceNetoAPagar(t *testing.T) {
	assert.Equal(t, "950.00", ParseInvoice("Neto a Pagar: $ 950.00").NetoAPagar)
	assert.Equal(t, "500.00", ParseInvoice("Pagar 500.00").NetoAPagar)
}

func TestParseInvoiceDate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"dotted", "Fecha cont. 15.03.2024", "15/03/2024"},
		{"slashed", "Fecha cont.: 15/03/2024", "15/03/2024"},
		{"emision", "Emisión: 01/02/2023", "01/02/2023"},
		{"first textual match wins", "Emisión 01.02.2024\nFecha cont. 15.03.2024", "01/02/2024"},
		{"no date", "Fecha cont. pendiente", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseInvoice(tt.text).FechaCont)
		})
	}
}

func TestParseInvoiceEstRemPriority(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"est rem label", "No. Est/Rem: 12.A", "12.A"},
		{"first label in text wins", "Rem: R-1\nEstimación: E-5", "R-1"},
		{"estimacion before rem", "Estimación: E-5\nRem: R-1", "E-5"},
		{"remision", "Remisión 778", "778"},
		{"bare rem", "Rem 45-B", "45-B"},
		{"rem inside a word", "Remitente ACME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseInvoice(tt.text).NoEstRem)
		})
	}
}

func TestParseInvoiceLinkedFields(t *testing.T) {
	t.Run("amount on the same line", func(t *testing.T) {
		data := ParseInvoice("Pedido Sap 123 Posición 10 456.78")
		assert.Equal(t, "123", data.PedidoSap)
		assert.Equal(t, "456.78", data.ImportePedidoSap)
	})

	t.Run("amount on another line", func(t *testing.T) {
		data := ParseInvoice("Pedido Sap 123 Posición 10\nImporte 456.78")
		assert.Equal(t, "123", data.PedidoSap)
		assert.Empty(t, data.ImportePedidoSap)
		assert.Equal(t, "456.78", data.Importe)
	})

	t.Run("amount is read whole", func(t *testing.T) {
		data := ParseInvoice("Pedido Sap 99 1234.56")
		assert.Equal(t, "1234.56", data.ImportePedidoSap)
	})

	t.Run("identifier absent", func(t *testing.T) {
		data := ParseInvoice("Pedido Sap: pendiente 456.78\nRecepción del bien (s) sin folio 456.78")
		assert.Empty(t, data.PedidoSap)
		assert.Empty(t, data.ImportePedidoSap)
		assert.Empty(t, data.RecepcionBien)
		assert.Empty(t, data.ImporteRecepcionBien)
	})

	t.Run("amount followed by punctuation", func(t *testing.T) {
		assert.Equal(t, "456.78", ParseInvoice("Pedido Sap 123 Importe 456.78, IVA 73.08").ImportePedidoSap)
		assert.Equal(t, "456.78", ParseInvoice("Pedido Sap 123 por un monto de 456.78.").ImportePedidoSap)
		assert.Equal(t, "1,234.56", ParseInvoice("Pedido Sap 123 monto 1,234.56.\nIVA 73.08").ImportePedidoSap)
	})

	t.Run("date on the line is skipped", func(t *testing.T) {
		data := ParseInvoice("Recepción del bien (s) 5000987654 Fecha 14.03.2024 9,870.10")
		assert.Equal(t, "5000987654", data.RecepcionBien)
		assert.Equal(t, "9,870.10", data.ImporteRecepcionBien)
	})
}

func TestParseInvoiceDescription(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "stops at pedido sap",
			text:     "Descripción de Bien y Servicio: Renta de grúa\nPedido Sap 1",
			expected: "Renta de grúa",
		},
		{
			name:     "strips acceptance phrase in any case",
			text:     "Descripción de Bien y Servicio ACEPTACIÓN DEL BIEN O SERVICIO Suministro de válvulas Neto a pagar 10.00",
			expected: "Suministro de válvulas",
		},
		{
			name:     "runs to end of text",
			text:     "Descripción de Bien y Servicio:\n  Limpieza   de\ttanques  ",
			expected: "Limpieza de tanques",
		},
		{
			name:     "empty after cleanup",
			text:     "Descripción de Bien y Servicio: Aceptación del Bien o Servicio TOTAL 5.00",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseInvoice(tt.text).DescripcionBienServicio)
		})
	}
}

func TestParseInvoiceDiscount(t *testing.T) {
	t.Run("only cantidad", func(t *testing.T) {
		data := ParseInvoice("DESCUENTO S/COMPRAS (NC) Cantidad -50.00 Neto a pagar 950.00")
		require.NotNil(t, data.Descuento)
		assert.Equal(t, dto.DiscountRecord{Cantidad: "-50.00"}, *data.Descuento)
	})

	t.Run("no values", func(t *testing.T) {
		data := ParseInvoice("DESCUENTO S/COMPRAS (NC) sin descuento\nTOTAL 100.00")
		assert.Nil(t, data.Descuento)
		assert.Equal(t, "100.00", data.Total)
	})

	t.Run("values after the section are ignored", func(t *testing.T) {
		data := ParseInvoice("DESCUENTO S/COMPRAS (NC)\nNeto a pagar 900.00\nCantidad -50.00")
		assert.Nil(t, data.Descuento)
	})

	t.Run("no section", func(t *testing.T) {
		data := ParseInvoice("Cantidad -50.00\nIVA -8.00")
		assert.Nil(t, data.Descuento)
	})
}

func TestParseInvoiceNonBreakingSpaces(t *testing.T) {
	data := ParseInvoice("Importe:\u00a0$\u00a01,500.00\u2009MXN")
	assert.Equal(t, "1,500.00", data.Importe)
}
