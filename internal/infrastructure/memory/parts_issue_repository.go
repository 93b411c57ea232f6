package memory

import (
	"sort"

	"github.com/jhoicas/AlmacenCentral-api/internal/domain"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/entity"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/repository"
)

// PartsIssueRepo implementa repository.PartsIssueRepository sobre el Store.
type PartsIssueRepo struct {
	s *Store
}

var _ repository.PartsIssueRepository = (*PartsIssueRepo)(nil)

// NewPartsIssueRepository crea el repositorio de salidas en memoria.
func NewPartsIssueRepository(s *Store) *PartsIssueRepo {
	return &PartsIssueRepo{s: s}
}

func (r *PartsIssueRepo) Create(issue *entity.PartsIssue) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.issues[issue.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.issues[issue.ID] = cloneIssue(issue)
	return nil
}

func (r *PartsIssueRepo) GetByID(id string) (*entity.PartsIssue, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	pi, ok := r.s.issues[id]
	if !ok {
		return nil, nil
	}
	return cloneIssue(pi), nil
}

func (r *PartsIssueRepo) List(limit, offset int) ([]*entity.PartsIssue, error) {
	return r.listWhere(func(*entity.PartsIssue) bool { return true }, limit, offset)
}

func (r *PartsIssueRepo) ListByServiceCenter(serviceCenterID string, limit, offset int) ([]*entity.PartsIssue, error) {
	return r.listWhere(func(pi *entity.PartsIssue) bool { return pi.ServiceCenterID == serviceCenterID }, limit, offset)
}

func (r *PartsIssueRepo) listWhere(keep func(*entity.PartsIssue) bool, limit, offset int) ([]*entity.PartsIssue, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*entity.PartsIssue, 0, len(r.s.issues))
	for _, pi := range r.s.issues {
		if keep(pi) {
			out = append(out, cloneIssue(pi))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IssuedAt.After(out[j].IssuedAt) })
	return paginate(out, limit, offset), nil
}

func (r *PartsIssueRepo) Update(issue *entity.PartsIssue) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.issues[issue.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.issues[issue.ID] = cloneIssue(issue)
	return nil
}

// GetForUpdate equivale a GetByID: el TxRunner en memoria serializa las transacciones.
func (r *PartsIssueRepo) GetForUpdate(id string) (*entity.PartsIssue, error) {
	return r.GetByID(id)
}

func (r *PartsIssueRepo) CountByYear(year int) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, pi := range r.s.issues {
		if pi.IssuedAt.Year() == year {
			n++
		}
	}
	return n, nil
}

func (r *PartsIssueRepo) CountByStatus(status string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, pi := range r.s.issues {
		if pi.Status == status {
			n++
		}
	}
	return n, nil
}
