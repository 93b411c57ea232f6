package memory

import (
	"sort"

	"github.com/jhoicas/AlmacenCentral-api/internal/domain"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/entity"
	domaininv "github.com/jhoicas/AlmacenCentral-api/internal/domain/inventory"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/repository"
)

// CentralStockRepo implementa repository.CentralStockRepository sobre el Store.
type CentralStockRepo struct {
	s *Store
}

var _ repository.CentralStockRepository = (*CentralStockRepo)(nil)

// NewCentralStockRepository crea el repositorio de stock en memoria.
func NewCentralStockRepository(s *Store) *CentralStockRepo {
	return &CentralStockRepo{s: s}
}

func (r *CentralStockRepo) Create(stock *entity.CentralStock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.stocks[stock.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.stocks[stock.ID] = cloneStock(stock)
	return nil
}

func (r *CentralStockRepo) GetByID(id string) (*entity.CentralStock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	st, ok := r.s.stocks[id]
	if !ok {
		return nil, nil
	}
	return cloneStock(st), nil
}

func (r *CentralStockRepo) GetByPartID(partID string) (*entity.CentralStock, error) {
	list, err := r.List()
	if err != nil {
		return nil, err
	}
	// Misma regla de desempate que el adaptador SQL: la fila más antigua gana.
	var found *entity.CentralStock
	for _, st := range list {
		if st.PartID != partID {
			continue
		}
		if found == nil || st.LastUpdated.Before(found.LastUpdated) {
			found = st
		}
	}
	return found, nil
}

func (r *CentralStockRepo) List() ([]*entity.CentralStock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	list := make([]*entity.CentralStock, 0, len(r.s.stocks))
	for _, st := range r.s.stocks {
		list = append(list, cloneStock(st))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].PartName < list[j].PartName })
	return list, nil
}

func (r *CentralStockRepo) Search(query string) ([]*entity.CentralStock, error) {
	list, err := r.List()
	if err != nil {
		return nil, err
	}
	normalized := domaininv.NormalizeQuery(query)
	out := make([]*entity.CentralStock, 0, len(list))
	for _, st := range list {
		if domaininv.MatchesQuery(normalized, st.PartName, st.PartNumber, st.HSNCode, st.Category) {
			out = append(out, st)
		}
	}
	return out, nil
}

func (r *CentralStockRepo) Update(stock *entity.CentralStock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.stocks[stock.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.stocks[stock.ID] = cloneStock(stock)
	return nil
}

func (r *CentralStockRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.stocks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.stocks, id)
	return nil
}

// GetForUpdate equivale a GetByID: el TxRunner en memoria serializa las
// transacciones, así que no hay bloqueo por fila que emular.
func (r *CentralStockRepo) GetForUpdate(id string) (*entity.CentralStock, error) {
	return r.GetByID(id)
}
