package repository

import "github.com/jhoicas/AlmacenCentral-api/internal/domain/entity"

// StockAdjustmentRepository define el puerto del log de ajustes (append-only).
// No expone Update ni Delete: los ajustes son inmutables.
type StockAdjustmentRepository interface {
	Create(adj *entity.StockAdjustment) error
	GetByID(id string) (*entity.StockAdjustment, error)
	// List devuelve los ajustes del más reciente al más antiguo.
	List(limit, offset int) ([]*entity.StockAdjustment, error)
	// ListByStock devuelve los ajustes de una fila de stock, del más reciente al más antiguo.
	ListByStock(stockID string, limit, offset int) ([]*entity.StockAdjustment, error)
}
