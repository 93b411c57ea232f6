package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/entity"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/repository"
)

// ServiceCenterUseCase casos de uso CRUD para centros de servicio.
type ServiceCenterUseCase struct {
	repo repository.ServiceCenterRepository
}

// NewServiceCenterUseCase construye el caso de uso.
func NewServiceCenterUseCase(repo repository.ServiceCenterRepository) *ServiceCenterUseCase {
	return &ServiceCenterUseCase{repo: repo}
}

// Create registra un centro de servicio nuevo.
func (uc *ServiceCenterUseCase) Create(code, name, address, phone string) (*entity.ServiceCenter, error) {
	if code == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	sc := &entity.ServiceCenter{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      name,
		Address:   address,
		Phone:     phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(sc); err != nil {
		return nil, err
	}
	return sc, nil
}

// GetByID obtiene un centro por ID. Devuelve (nil, nil) si no existe.
func (uc *ServiceCenterUseCase) GetByID(id string) (*entity.ServiceCenter, error) {
	return uc.repo.GetByID(id)
}

// List lista centros con paginación.
func (uc *ServiceCenterUseCase) List(limit, offset int) ([]*entity.ServiceCenter, error) {
	return uc.repo.List(limit, offset)
}
