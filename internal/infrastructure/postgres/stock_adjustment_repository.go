package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/entity"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/repository"
)

var _ repository.StockAdjustmentRepository = (*StockAdjustmentRepo)(nil)

const adjustmentColumns = `id, stock_id, part_id, part_name, adjustment_type, quantity, previous_qty, new_qty, clamped, reason, adjusted_by, adjusted_at, notes, reference_number`

// StockAdjustmentRepo implementación del log de ajustes sobre PostgreSQL.
// Solo inserta y lee: los ajustes son inmutables.
type StockAdjustmentRepo struct {
	q Querier
}

// NewStockAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAdjustmentRepository(q Querier) *StockAdjustmentRepo {
	return &StockAdjustmentRepo{q: q}
}

// Create persiste un registro de ajuste.
func (r *StockAdjustmentRepo) Create(adj *entity.StockAdjustment) error {
	query := `
		INSERT INTO stock_adjustments (` + adjustmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		adj.ID, adj.StockID, adj.PartID, adj.PartName, adj.AdjustmentType, adj.Quantity,
		adj.PreviousQty, adj.NewQty, adj.Clamped, adj.Reason, adj.AdjustedBy, adj.AdjustedAt,
		adj.Notes, adj.ReferenceNumber,
	)
	if err != nil {
		return fmt.Errorf("insert stock_adjustment: %w", err)
	}
	return nil
}

// GetByID obtiene un ajuste por ID. (nil, nil) si no existe.
func (r *StockAdjustmentRepo) GetByID(id string) (*entity.StockAdjustment, error) {
	var a entity.StockAdjustment
	err := r.q.QueryRow(context.Background(),
		`SELECT `+adjustmentColumns+` FROM stock_adjustments WHERE id = $1`, id,
	).Scan(
		&a.ID, &a.StockID, &a.PartID, &a.PartName, &a.AdjustmentType, &a.Quantity,
		&a.PreviousQty, &a.NewQty, &a.Clamped, &a.Reason, &a.AdjustedBy, &a.AdjustedAt,
		&a.Notes, &a.ReferenceNumber,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock_adjustment: %w", err)
	}
	return &a, nil
}

func (r *StockAdjustmentRepo) queryMany(query string, args ...any) ([]*entity.StockAdjustment, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("query stock_adjustments: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockAdjustment
	for rows.Next() {
		var a entity.StockAdjustment
		if err := rows.Scan(
			&a.ID, &a.StockID, &a.PartID, &a.PartName, &a.AdjustmentType, &a.Quantity,
			&a.PreviousQty, &a.NewQty, &a.Clamped, &a.Reason, &a.AdjustedBy, &a.AdjustedAt,
			&a.Notes, &a.ReferenceNumber,
		); err != nil {
			return nil, fmt.Errorf("scan stock_adjustment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// List devuelve ajustes del más reciente al más antiguo.
func (r *StockAdjustmentRepo) List(limit, offset int) ([]*entity.StockAdjustment, error) {
	return r.queryMany(
		`SELECT `+adjustmentColumns+` FROM stock_adjustments ORDER BY adjusted_at DESC, id DESC LIMIT $1 OFFSET $2`,
		limit, offset)
}

// ListByStock devuelve el historial de una fila de stock, del más reciente al más antiguo.
func (r *StockAdjustmentRepo) ListByStock(stockID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	return r.queryMany(
		`SELECT `+adjustmentColumns+` FROM stock_adjustments WHERE stock_id = $1 ORDER BY adjusted_at DESC, id DESC LIMIT $2 OFFSET $3`,
		stockID, limit, offset)
}
