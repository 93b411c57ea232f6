package orders

import (
	"context"

	"github.com/jhoicas/AlmacenCentral-api/internal/domain/repository"
)

// TxRunner ejecuta una función con el repositorio de órdenes atado a una transacción.
// Permite que la verificación de precondición (status pending) y la escritura sean
// atómicas frente a otros escritores: de dos aprobaciones concurrentes solo gana una.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(poRepo repository.PurchaseOrderRepository) error) error
}
