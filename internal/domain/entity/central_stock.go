package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados derivados del stock central. Nunca los asigna el caller directamente:
// se recalculan en cada mutación de CurrentQty (ver inventory.StockStatus).
const (
	StockStatusInStock    = "In Stock"
	StockStatusLowStock   = "Low Stock"
	StockStatusOutOfStock = "Out of Stock"
)

// CentralStock representa la existencia en el almacén central de un repuesto.
// PartID es la clave de negocio; ID es el identificador interno generado.
type CentralStock struct {
	ID            string
	PartID        string
	PartName      string
	PartNumber    string
	HSNCode       string
	Category      string
	UnitPrice     decimal.Decimal
	CurrentQty    int64 // siempre >= 0
	MinStock      int64 // umbral de stock bajo
	Status        string
	LastUpdated   time.Time
	LastUpdatedBy string
}
