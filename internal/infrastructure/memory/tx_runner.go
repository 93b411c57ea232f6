package memory

import (
	"context"
	"sync"

	appinventory "github.com/jhoicas/AlmacenCentral-api/internal/application/inventory"
	"github.com/jhoicas/AlmacenCentral-api/internal/application/issues"
	"github.com/jhoicas/AlmacenCentral-api/internal/application/orders"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/repository"
)

// Ensure TxRunner implementa los puertos transaccionales de los casos de uso.
var _ appinventory.TxRunner = (*TxRunner)(nil)
var _ orders.TxRunner = (*TxRunner)(nil)
var _ issues.TxRunner = (*TxRunner)(nil)

// TxRunner emula transacciones sobre el Store: serializa cada transacción con
// un mutex propio, toma un snapshot al entrar y lo restaura si el callback
// falla. Así ningún efecto parcial queda visible tras un error, igual que
// con el rollback de PostgreSQL.
type TxRunner struct {
	txMu sync.Mutex
	s    *Store
}

// NewTxRunner construye el runner sobre el Store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (r *TxRunner) run(fn func() error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	snap := r.s.snapshot()
	if err := fn(); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

// Run ejecuta un ajuste de stock: mutación + registro de auditoría se
// confirman o revierten juntos.
func (r *TxRunner) Run(_ context.Context, fn func(
	stockRepo repository.CentralStockRepository,
	adjRepo repository.StockAdjustmentRepository,
) error) error {
	return r.run(func() error {
		return fn(NewCentralStockRepository(r.s), NewStockAdjustmentRepository(r.s))
	})
}

// RunOrder ejecuta una transición de orden de compra de forma atómica.
func (r *TxRunner) RunOrder(_ context.Context, fn func(
	poRepo repository.PurchaseOrderRepository,
) error) error {
	return r.run(func() error {
		return fn(NewPurchaseOrderRepository(r.s))
	})
}

// RunIssue ejecuta la creación de una salida: salida, débitos de stock con sus
// ajustes y avance de la orden de compra, todo o nada.
func (r *TxRunner) RunIssue(_ context.Context, fn func(
	issueRepo repository.PartsIssueRepository,
	stockRepo repository.CentralStockRepository,
	adjRepo repository.StockAdjustmentRepository,
	poRepo repository.PurchaseOrderRepository,
) error) error {
	return r.run(func() error {
		return fn(
			NewPartsIssueRepository(r.s),
			NewCentralStockRepository(r.s),
			NewStockAdjustmentRepository(r.s),
			NewPurchaseOrderRepository(r.s),
		)
	})
}
