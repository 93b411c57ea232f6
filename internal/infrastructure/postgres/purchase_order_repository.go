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

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const poColumns = `id, po_number, service_center_id, service_center_name, status, priority, total_amount, requested_by, requested_at, approved_by, approved_at, rejected_by, rejected_at, rejection_reason, fulfilled_by, fulfilled_at, job_card_id, customer_name`

const poItemColumns = `id, po_id, part_id, part_name, part_number, hsn_code, requested_qty, approved_qty, issued_qty, status, notes, sort_order`

// PurchaseOrderRepo implementación de PurchaseOrderRepository sobre PostgreSQL.
// Las líneas viven en purchase_order_items y se cargan/persisten con la orden.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste la orden y sus líneas.
func (r *PurchaseOrderRepo) Create(po *entity.PurchaseOrder) error {
	ctx := context.Background()
	query := `
		INSERT INTO purchase_orders (` + poColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		po.ID, po.PONumber, po.ServiceCenterID, po.ServiceCenterName, po.Status, po.Priority,
		po.TotalAmount, po.RequestedBy, po.RequestedAt, po.ApprovedBy, po.ApprovedAt,
		po.RejectedBy, po.RejectedAt, po.RejectionReason, po.FulfilledBy, po.FulfilledAt,
		po.JobCardID, po.CustomerName,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase_order: %w", err)
	}
	return r.insertItems(ctx, po)
}

func (r *PurchaseOrderRepo) insertItems(ctx context.Context, po *entity.PurchaseOrder) error {
	for i, it := range po.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO purchase_order_items (`+poItemColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			it.ID, po.ID, it.PartID, it.PartName, it.PartNumber, it.HSNCode,
			it.RequestedQty, it.ApprovedQty, it.IssuedQty, it.Status, it.Notes, i,
		)
		if err != nil {
			return fmt.Errorf("insert purchase_order_item: %w", err)
		}
	}
	return nil
}

func (r *PurchaseOrderRepo) loadItems(ctx context.Context, poID string) ([]entity.PurchaseOrderItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+poItemColumns+` FROM purchase_order_items WHERE po_id = $1 ORDER BY sort_order ASC`, poID)
	if err != nil {
		return nil, fmt.Errorf("query purchase_order_items: %w", err)
	}
	defer rows.Close()
	var items []entity.PurchaseOrderItem
	for rows.Next() {
		var it entity.PurchaseOrderItem
		var poRef string
		var sortOrder int
		if err := rows.Scan(
			&it.ID, &poRef, &it.PartID, &it.PartName, &it.PartNumber, &it.HSNCode,
			&it.RequestedQty, &it.ApprovedQty, &it.IssuedQty, &it.Status, &it.Notes, &sortOrder,
		); err != nil {
			return nil, fmt.Errorf("scan purchase_order_item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PurchaseOrderRepo) getOne(ctx context.Context, query string, args ...any) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&po.ID, &po.PONumber, &po.ServiceCenterID, &po.ServiceCenterName, &po.Status, &po.Priority,
		&po.TotalAmount, &po.RequestedBy, &po.RequestedAt, &po.ApprovedBy, &po.ApprovedAt,
		&po.RejectedBy, &po.RejectedAt, &po.RejectionReason, &po.FulfilledBy, &po.FulfilledAt,
		&po.JobCardID, &po.CustomerName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase_order: %w", err)
	}
	if po.Items, err = r.loadItems(ctx, po.ID); err != nil {
		return nil, err
	}
	return &po, nil
}

// GetByID obtiene una orden con sus líneas. (nil, nil) si no existe.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	return r.getOne(context.Background(),
		`SELECT `+poColumns+` FROM purchase_orders WHERE id = $1`, id)
}

// GetForUpdate obtiene la orden y bloquea su fila (SELECT FOR UPDATE).
func (r *PurchaseOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.getOne(context.Background(),
		`SELECT `+poColumns+` FROM purchase_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *PurchaseOrderRepo) queryMany(query string, args ...any) ([]*entity.PurchaseOrder, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query purchase_orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		var po entity.PurchaseOrder
		if err := rows.Scan(
			&po.ID, &po.PONumber, &po.ServiceCenterID, &po.ServiceCenterName, &po.Status, &po.Priority,
			&po.TotalAmount, &po.RequestedBy, &po.RequestedAt, &po.ApprovedBy, &po.ApprovedAt,
			&po.RejectedBy, &po.RejectedAt, &po.RejectionReason, &po.FulfilledBy, &po.FulfilledAt,
			&po.JobCardID, &po.CustomerName,
		); err != nil {
			return nil, fmt.Errorf("scan purchase_order: %w", err)
		}
		list = append(list, &po)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, po := range list {
		if po.Items, err = r.loadItems(ctx, po.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// List lista órdenes de la más reciente a la más antigua.
func (r *PurchaseOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	return r.queryMany(
		`SELECT `+poColumns+` FROM purchase_orders ORDER BY requested_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
}

// ListByStatus filtra por estado.
func (r *PurchaseOrderRepo) ListByStatus(status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	return r.queryMany(
		`SELECT `+poColumns+` FROM purchase_orders WHERE status = $1 ORDER BY requested_at DESC LIMIT $2 OFFSET $3`,
		status, limit, offset)
}

// ListByServiceCenter filtra por centro de servicio.
func (r *PurchaseOrderRepo) ListByServiceCenter(serviceCenterID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	return r.queryMany(
		`SELECT `+poColumns+` FROM purchase_orders WHERE service_center_id = $1 ORDER BY requested_at DESC LIMIT $2 OFFSET $3`,
		serviceCenterID, limit, offset)
}

// Update persiste la orden completa: cabecera y líneas (reemplazo total de líneas).
func (r *PurchaseOrderRepo) Update(po *entity.PurchaseOrder) error {
	ctx := context.Background()
	query := `
		UPDATE purchase_orders
		SET status = $2, priority = $3, total_amount = $4, approved_by = $5, approved_at = $6,
		    rejected_by = $7, rejected_at = $8, rejection_reason = $9, fulfilled_by = $10,
		    fulfilled_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		po.ID, po.Status, po.Priority, po.TotalAmount, po.ApprovedBy, po.ApprovedAt,
		po.RejectedBy, po.RejectedAt, po.RejectionReason, po.FulfilledBy, po.FulfilledAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase_order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM purchase_order_items WHERE po_id = $1`, po.ID); err != nil {
		return fmt.Errorf("delete purchase_order_items: %w", err)
	}
	return r.insertItems(ctx, po)
}

// CountByStatus cuenta órdenes por estado.
func (r *PurchaseOrderRepo) CountByStatus(status string) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM purchase_orders WHERE status = $1`, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count purchase_orders: %w", err)
	}
	return n, nil
}

// CountByYear cuenta órdenes solicitadas en un año.
func (r *PurchaseOrderRepo) CountByYear(year int) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM purchase_orders WHERE EXTRACT(YEAR FROM requested_at) = $1`, year).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count purchase_orders by year: %w", err)
	}
	return n, nil
}
