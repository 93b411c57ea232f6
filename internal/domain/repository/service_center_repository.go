package repository

import "github.com/jhoicas/AlmacenCentral-api/internal/domain/entity"

// ServiceCenterRepository define el puerto de persistencia de centros de servicio.
type ServiceCenterRepository interface {
	Create(sc *entity.ServiceCenter) error
	GetByID(id string) (*entity.ServiceCenter, error)
	List(limit, offset int) ([]*entity.ServiceCenter, error)
}
