package repository

import "github.com/jhoicas/AlmacenCentral-api/internal/domain/entity"

// PurchaseOrderRepository define el puerto de persistencia de órdenes de compra.
// Update persiste la orden completa incluyendo sus líneas.
type PurchaseOrderRepository interface {
	Create(po *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	List(limit, offset int) ([]*entity.PurchaseOrder, error)
	ListByStatus(status string, limit, offset int) ([]*entity.PurchaseOrder, error)
	ListByServiceCenter(serviceCenterID string, limit, offset int) ([]*entity.PurchaseOrder, error)
	Update(po *entity.PurchaseOrder) error
	// GetForUpdate bloquea la orden para update dentro de una tx. Necesario para que
	// solo una transición pending -> approved/rejected concurrente tenga éxito.
	GetForUpdate(id string) (*entity.PurchaseOrder, error)
	// CountByStatus cuenta órdenes por estado (proyección de estadísticas).
	CountByStatus(status string) (int64, error)
	// CountByYear cuenta órdenes solicitadas en un año (secuencia del número PO-{año}-{NNN}).
	CountByYear(year int) (int64, error)
}
