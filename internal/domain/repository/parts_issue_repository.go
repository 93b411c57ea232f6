package repository

import "github.com/jhoicas/AlmacenCentral-api/internal/domain/entity"

// PartsIssueRepository define el puerto de persistencia de salidas de repuestos.
type PartsIssueRepository interface {
	Create(issue *entity.PartsIssue) error
	GetByID(id string) (*entity.PartsIssue, error)
	// List devuelve las salidas de la más reciente a la más antigua.
	List(limit, offset int) ([]*entity.PartsIssue, error)
	ListByServiceCenter(serviceCenterID string, limit, offset int) ([]*entity.PartsIssue, error)
	Update(issue *entity.PartsIssue) error
	// GetForUpdate bloquea la salida para update dentro de una tx (recepción).
	GetForUpdate(id string) (*entity.PartsIssue, error)
	// CountByYear cuenta salidas emitidas en un año (secuencia del número PI-{año}-{NNN}).
	CountByYear(year int) (int64, error)
	// CountByStatus cuenta salidas por estado (proyección de estadísticas).
	CountByStatus(status string) (int64, error)
}
