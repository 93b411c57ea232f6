package inventory

import (
	"context"

	"github.com/jhoicas/AlmacenCentral-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que la mutación de stock y su registro de auditoría
// se confirmen o reviertan juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.CentralStockRepository,
		adjRepo repository.StockAdjustmentRepository,
	) error) error
}
