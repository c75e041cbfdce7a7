package dto

// DiscountRecord holds the "DESCUENTO S/COMPRAS (NC)" line items
type DiscountRecord struct {
	Cantidad string `json:"cantidad,omitempty"`
	IVA      string `json:"iva,omitempty"`
	Total    string `json:"total,omitempty"`
}

// FieldRecord is the structured result of extraction and correction.
// An empty string means the field was not found.
type FieldRecord struct {
	NumeroAcreedorSAP       string          `json:"numeroAcreedorSAP,omitempty"`
	NoCopade                string          `json:"noCopade,omitempty"`
	NoContrato              string          `json:"noContrato,omitempty"`
	Importe                 string          `json:"importe,omitempty"`
	IVA                     string          `json:"iva,omitempty"`
	Total                   string          `json:"total,omitempty"`
	NoEstRem                string          `json:"noEstRem,omitempty"`
	DescripcionBienServicio string          `json:"descripcionBienServicio,omitempty"`
	PedidoSap               string          `json:"pedidoSap,omitempty"`
	RecepcionBien           string          `json:"recepcionBien,omitempty"`
	ImportePedidoSap        string          `json:"importePedidoSap,omitempty"`
	ImporteRecepcionBien    string          `json:"importeRecepcionBien,omitempty"`
	FechaCont               string          `json:"fechaCont,omitempty"`
	NetoAPagar              string          `json:"netoAPagar,omitempty"`
	Descuento               *DiscountRecord `json:"descuento,omitempty"`
}

func (r *FieldRecord) field(key FieldKey) *string {
	switch key {
	case FieldNumeroAcreedorSAP:
		return &r.NumeroAcreedorSAP
	case FieldNoCopade:
		return &r.NoCopade
	case FieldNoContrato:
		return &r.NoContrato
	case FieldImporte:
		return &r.Importe
	case FieldIVA:
		return &r.IVA
	case FieldTotal:
		return &r.Total
	case FieldNoEstRem:
		return &r.NoEstRem
	case FieldDescripcionBienServicio:
		return &r.DescripcionBienServicio
	case FieldPedidoSap:
		return &r.PedidoSap
	case FieldRecepcionBien:
		return &r.RecepcionBien
	case FieldImportePedidoSap:
		return &r.ImportePedidoSap
	case FieldImporteRecepcionBien:
		return &r.ImporteRecepcionBien
	case FieldFechaCont:
		return &r.FechaCont
	case FieldNetoAPagar:
		return &r.NetoAPagar
	}
	return nil
}

// Get returns the value of a top-level field, or "" for unknown keys
func (r FieldRecord) Get(key FieldKey) string {
	if p := r.field(key); p != nil {
		return *p
	}
	return ""
}

// Set overwrites a top-level field. Unknown keys are ignored.
func (r *FieldRecord) Set(key FieldKey, value string) {
	if p := r.field(key); p != nil {
		*p = value
	}
}

// Clone returns a deep copy; the discount record is not shared
func (r FieldRecord) Clone() FieldRecord {
	out := r
	if r.Descuento != nil {
		d := *r.Descuento
		out.Descuento = &d
	}
	return out
}

// IsEmpty reports whether no field, including the discount record, holds a value
func (r FieldRecord) IsEmpty() bool {
	for _, key := range OrderedFieldKeys {
		if r.Get(key) != "" {
			return false
		}
	}
	return r.Descuento == nil || r.Descuento.IsEmpty()
}

func (d *DiscountRecord) field(key DiscountKey) *string {
	switch key {
	case DiscountCantidad:
		return &d.Cantidad
	case DiscountIVA:
		return &d.IVA
	case DiscountTotal:
		return &d.Total
	}
	return nil
}

// Get returns the value of a discount field
func (d DiscountRecord) Get(key DiscountKey) string {
	if p := d.field(key); p != nil {
		return *p
	}
	return ""
}

// Set overwrites a discount field
func (d *DiscountRecord) Set(key DiscountKey, value string) {
	if p := d.field(key); p != nil {
		*p = value
	}
}

// IsEmpty reports whether every discount value is empty
func (d DiscountRecord) IsEmpty() bool {
	return d.Cantidad == "" && d.IVA == "" && d.Total == ""
}
