package issues

import (
	"context"

	"github.com/jhoicas/AlmacenCentral-api/internal/domain/repository"
)

// TxRunner ejecuta una función con los repositorios de salida, stock, ajustes y
// órdenes atados a una misma transacción. CreateIssue escribe la salida, N débitos
// de stock con sus ajustes y (condicionalmente) la orden de compra: o se confirman
// todos o no queda ningún efecto parcial visible.
type TxRunner interface {
	RunIssue(ctx context.Context, fn func(
		issueRepo repository.PartsIssueRepository,
		stockRepo repository.CentralStockRepository,
		adjRepo repository.StockAdjustmentRepository,
		poRepo repository.PurchaseOrderRepository,
	) error) error
}
