package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/entity"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/repository"
)

var _ repository.ServiceCenterRepository = (*ServiceCenterRepo)(nil)

// ServiceCenterRepo implementación de ServiceCenterRepository sobre PostgreSQL.
type ServiceCenterRepo struct {
	q Querier
}

// NewServiceCenterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewServiceCenterRepository(q Querier) *ServiceCenterRepo {
	return &ServiceCenterRepo{q: q}
}

// Create persiste un centro de servicio.
func (r *ServiceCenterRepo) Create(sc *entity.ServiceCenter) error {
	query := `
		INSERT INTO service_centers (id, code, name, address, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		sc.ID, sc.Code, sc.Name, sc.Address, sc.Phone, sc.CreatedAt, sc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert service_center: %w", err)
	}
	return nil
}

// GetByID obtiene un centro por ID. (nil, nil) si no existe.
func (r *ServiceCenterRepo) GetByID(id string) (*entity.ServiceCenter, error) {
	query := `
		SELECT id, code, name, address, phone, created_at, updated_at
		FROM service_centers WHERE id = $1`
	var sc entity.ServiceCenter
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&sc.ID, &sc.Code, &sc.Name, &sc.Address, &sc.Phone, &sc.CreatedAt, &sc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service_center: %w", err)
	}
	return &sc, nil
}

// List lista centros con paginación.
func (r *ServiceCenterRepo) List(limit, offset int) ([]*entity.ServiceCenter, error) {
	query := `
		SELECT id, code, name, address, phone, created_at, updated_at
		FROM service_centers ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list service_centers: %w", err)
	}
	defer rows.Close()
	var list []*entity.ServiceCenter
	for rows.Next() {
		var sc entity.ServiceCenter
		if err := rows.Scan(&sc.ID, &sc.Code, &sc.Name, &sc.Address, &sc.Phone, &sc.CreatedAt, &sc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan service_center: %w", err)
		}
		list = append(list, &sc)
	}
	return list, rows.Err()
}
