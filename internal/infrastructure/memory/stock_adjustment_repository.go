package memory

import (
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/entity"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/repository"
)

// StockAdjustmentRepo implementa el log de ajustes sobre un slice append-only.
type StockAdjustmentRepo struct {
	s *Store
}

var _ repository.StockAdjustmentRepository = (*StockAdjustmentRepo)(nil)

// NewStockAdjustmentRepository crea el repositorio de ajustes en memoria.
func NewStockAdjustmentRepository(s *Store) *StockAdjustmentRepo {
	return &StockAdjustmentRepo{s: s}
}

func (r *StockAdjustmentRepo) Create(adj *entity.StockAdjustment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.adjustments = append(r.s.adjustments, cloneAdjustment(adj))
	return nil
}

func (r *StockAdjustmentRepo) GetByID(id string) (*entity.StockAdjustment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, adj := range r.s.adjustments {
		if adj.ID == id {
			return cloneAdjustment(adj), nil
		}
	}
	return nil, nil
}

// List devuelve los ajustes del más reciente al más antiguo.
func (r *StockAdjustmentRepo) List(limit, offset int) ([]*entity.StockAdjustment, error) {
	return r.listFiltered("", limit, offset)
}

// ListByStock devuelve los ajustes de una fila de stock, del más reciente al más antiguo.
func (r *StockAdjustmentRepo) ListByStock(stockID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	return r.listFiltered(stockID, limit, offset)
}

func (r *StockAdjustmentRepo) listFiltered(stockID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// El slice está en orden de inserción; se recorre al revés para
	// devolver el más reciente primero.
	out := make([]*entity.StockAdjustment, 0, len(r.s.adjustments))
	for i := len(r.s.adjustments) - 1; i >= 0; i-- {
		adj := r.s.adjustments[i]
		if stockID != "" && adj.StockID != stockID {
			continue
		}
		out = append(out, cloneAdjustment(adj))
	}
	return paginate(out, limit, offset), nil
}
