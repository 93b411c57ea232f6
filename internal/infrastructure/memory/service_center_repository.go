package memory

import (
	"sort"

	"github.com/jhoicas/AlmacenCentral-api/internal/domain"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/entity"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/repository"
)

// ServiceCenterRepo implementa repository.ServiceCenterRepository sobre el Store.
type ServiceCenterRepo struct {
	s *Store
}

var _ repository.ServiceCenterRepository = (*ServiceCenterRepo)(nil)

// NewServiceCenterRepository crea el repositorio de centros en memoria.
func NewServiceCenterRepository(s *Store) *ServiceCenterRepo {
	return &ServiceCenterRepo{s: s}
}

func (r *ServiceCenterRepo) Create(sc *entity.ServiceCenter) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.centers {
		if existing.ID == sc.ID || existing.Code == sc.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.centers[sc.ID] = cloneCenter(sc)
	return nil
}

func (r *ServiceCenterRepo) GetByID(id string) (*entity.ServiceCenter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sc, ok := r.s.centers[id]
	if !ok {
		return nil, nil
	}
	return cloneCenter(sc), nil
}

func (r *ServiceCenterRepo) List(limit, offset int) ([]*entity.ServiceCenter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*entity.ServiceCenter, 0, len(r.s.centers))
	for _, sc := range r.s.centers {
		out = append(out, cloneCenter(sc))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}
