package memory

import (
	"sort"

	"github.com/jhoicas/AlmacenCentral-api/internal/domain"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/entity"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/repository"
)

// PurchaseOrderRepo implementa repository.PurchaseOrderRepository sobre el Store.
type PurchaseOrderRepo struct {
	s *Store
}

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// NewPurchaseOrderRepository crea el repositorio de órdenes en memoria.
func NewPurchaseOrderRepository(s *Store) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{s: s}
}

func (r *PurchaseOrderRepo) Create(po *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.orders[po.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.orders[po.ID] = cloneOrder(po)
	return nil
}

func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	po, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(po), nil
}

func (r *PurchaseOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	return r.listWhere(func(*entity.PurchaseOrder) bool { return true }, limit, offset)
}

func (r *PurchaseOrderRepo) ListByStatus(status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	return r.listWhere(func(po *entity.PurchaseOrder) bool { return po.Status == status }, limit, offset)
}

func (r *PurchaseOrderRepo) ListByServiceCenter(serviceCenterID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	return r.listWhere(func(po *entity.PurchaseOrder) bool { return po.ServiceCenterID == serviceCenterID }, limit, offset)
}

func (r *PurchaseOrderRepo) listWhere(keep func(*entity.PurchaseOrder) bool, limit, offset int) ([]*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*entity.PurchaseOrder, 0, len(r.s.orders))
	for _, po := range r.s.orders {
		if keep(po) {
			out = append(out, cloneOrder(po))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestedAt.After(out[j].RequestedAt) })
	return paginate(out, limit, offset), nil
}

func (r *PurchaseOrderRepo) Update(po *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.orders[po.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.orders[po.ID] = cloneOrder(po)
	return nil
}

// GetForUpdate equivale a GetByID: el TxRunner en memoria serializa las transacciones.
func (r *PurchaseOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(id)
}

func (r *PurchaseOrderRepo) CountByStatus(status string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, po := range r.s.orders {
		if po.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *PurchaseOrderRepo) CountByYear(year int) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, po := range r.s.orders {
		if po.RequestedAt.Year() == year {
			n++
		}
	}
	return n, nil
}
