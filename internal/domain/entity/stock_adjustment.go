package entity

import "time"

// Tipos de ajuste de stock.
const (
	AdjustmentTypeAdd    = "add"    // suma Quantity
	AdjustmentTypeRemove = "remove" // resta Quantity, nunca por debajo de 0
	AdjustmentTypeAdjust = "adjust" // fija CurrentQty = Quantity
)

// StockAdjustment es un registro inmutable de auditoría por cada cambio de cantidad.
// Se crea exactamente una vez por ajuste y nunca se modifica ni se elimina;
// StockID es referencia débil (sobrevive al borrado del stock referenciado).
type StockAdjustment struct {
	ID              string
	StockID         string
	PartID          string
	PartName        string // snapshot desnormalizado al momento del ajuste
	AdjustmentType  string
	Quantity        int64 // delta en add/remove, valor absoluto en adjust
	PreviousQty     int64
	NewQty          int64
	Clamped         bool // true si un remove pidió más de lo disponible y se recortó a 0
	Reason          string
	AdjustedBy      string
	AdjustedAt      time.Time
	Notes           string
	ReferenceNumber string // ej. número de salida de repuestos
}
