package inventory

import "github.com/jhoicas/AlmacenCentral-api/internal/domain/entity"

// StockStatus deriva el estado de una fila de stock (servicio de dominio).
// Regla: Out of Stock si qty = 0; Low Stock si 0 < qty < minStock; In Stock en otro caso.
// Debe recalcularse en cada mutación de CurrentQty, nunca quedar obsoleto.
func StockStatus(currentQty, minStock int64) string {
	switch {
	case currentQty <= 0:
		return entity.StockStatusOutOfStock
	case currentQty < minStock:
		return entity.StockStatusLowStock
	default:
		return entity.StockStatusInStock
	}
}

// ClampRemove aplica una salida de cantidad recortando en cero.
// Devuelve la cantidad resultante y si hubo recorte (se pidió más de lo disponible).
func ClampRemove(currentQty, removeQty int64) (newQty int64, clamped bool) {
	newQty = currentQty - removeQty
	if newQty < 0 {
		return 0, true
	}
	return newQty, false
}
