package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/entity"
	domaininv "github.com/jhoicas/AlmacenCentral-api/internal/domain/inventory"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/repository"
)

var _ repository.CentralStockRepository = (*CentralStockRepo)(nil)

const stockColumns = `id, part_id, part_name, part_number, hsn_code, category, unit_price, current_qty, min_stock, status, last_updated, last_updated_by`

// CentralStockRepo implementación de CentralStockRepository sobre PostgreSQL (usable con pool o tx).
type CentralStockRepo struct {
	q Querier
}

// NewCentralStockRepository construye el adaptador de stock central. Pasar pool o tx (Querier).
func NewCentralStockRepository(q Querier) *CentralStockRepo {
	return &CentralStockRepo{q: q}
}

// Create persiste una fila de stock nueva.
func (r *CentralStockRepo) Create(stock *entity.CentralStock) error {
	query := `
		INSERT INTO central_stock (` + stockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		stock.ID, stock.PartID, stock.PartName, stock.PartNumber, stock.HSNCode, stock.Category,
		stock.UnitPrice, stock.CurrentQty, stock.MinStock, stock.Status, stock.LastUpdated, stock.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert central_stock: %w", err)
	}
	return nil
}

func (r *CentralStockRepo) scanOne(row pgx.Row) (*entity.CentralStock, error) {
	var s entity.CentralStock
	err := row.Scan(
		&s.ID, &s.PartID, &s.PartName, &s.PartNumber, &s.HSNCode, &s.Category,
		&s.UnitPrice, &s.CurrentQty, &s.MinStock, &s.Status, &s.LastUpdated, &s.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan central_stock: %w", err)
	}
	return &s, nil
}

// GetByID obtiene una fila de stock por ID. (nil, nil) si no existe.
func (r *CentralStockRepo) GetByID(id string) (*entity.CentralStock, error) {
	return r.scanOne(r.q.QueryRow(context.Background(),
		`SELECT `+stockColumns+` FROM central_stock WHERE id = $1`, id))
}

// GetByPartID obtiene la primera fila por clave de negocio (orden de alta).
func (r *CentralStockRepo) GetByPartID(partID string) (*entity.CentralStock, error) {
	return r.scanOne(r.q.QueryRow(context.Background(),
		`SELECT `+stockColumns+` FROM central_stock WHERE part_id = $1 ORDER BY last_updated ASC LIMIT 1`, partID))
}

// GetForUpdate obtiene la fila y la bloquea para update (SELECT FOR UPDATE).
func (r *CentralStockRepo) GetForUpdate(id string) (*entity.CentralStock, error) {
	return r.scanOne(r.q.QueryRow(context.Background(),
		`SELECT `+stockColumns+` FROM central_stock WHERE id = $1 FOR UPDATE`, id))
}

func (r *CentralStockRepo) queryMany(query string, args ...any) ([]*entity.CentralStock, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("query central_stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.CentralStock
	for rows.Next() {
		var s entity.CentralStock
		if err := rows.Scan(
			&s.ID, &s.PartID, &s.PartName, &s.PartNumber, &s.HSNCode, &s.Category,
			&s.UnitPrice, &s.CurrentQty, &s.MinStock, &s.Status, &s.LastUpdated, &s.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan central_stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// List devuelve todas las filas de stock ordenadas por nombre de parte.
func (r *CentralStockRepo) List() ([]*entity.CentralStock, error) {
	return r.queryMany(`SELECT ` + stockColumns + ` FROM central_stock ORDER BY part_name ASC`)
}

// Search busca por subcadena insensible a mayúsculas y tildes en nombre, número
// de parte, HSN y categoría. El plegado de tildes se hace en memoria para
// mantener la misma semántica que el adaptador en memoria.
func (r *CentralStockRepo) Search(query string) ([]*entity.CentralStock, error) {
	list, err := r.List()
	if err != nil {
		return nil, err
	}
	normalized := domaininv.NormalizeQuery(query)
	var out []*entity.CentralStock
	for _, s := range list {
		if domaininv.MatchesQuery(normalized, s.PartName, s.PartNumber, s.HSNCode, s.Category) {
			out = append(out, s)
		}
	}
	return out, nil
}

// Update persiste una fila completa (el estado ya viene recalculado por el caso de uso).
func (r *CentralStockRepo) Update(stock *entity.CentralStock) error {
	query := `
		UPDATE central_stock
		SET part_name = $2, part_number = $3, hsn_code = $4, category = $5, unit_price = $6,
		    current_qty = $7, min_stock = $8, status = $9, last_updated = $10, last_updated_by = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		stock.ID, stock.PartName, stock.PartNumber, stock.HSNCode, stock.Category, stock.UnitPrice,
		stock.CurrentQty, stock.MinStock, stock.Status, stock.LastUpdated, stock.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("update central_stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una fila de stock por ID. Los ajustes y salidas que la
// referencian se conservan (referencia débil).
func (r *CentralStockRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM central_stock WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete central_stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
