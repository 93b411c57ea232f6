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

var _ repository.PartsIssueRepository = (*PartsIssueRepo)(nil)

const issueColumns = `id, issue_number, service_center_id, service_center_name, issued_by, issued_at, status, total_amount, purchase_order_id, notes, transport_details, received_by, received_at`

const issueItemColumns = `id, issue_id, part_id, part_name, part_number, hsn_code, quantity, unit_price, total_price, from_stock, sort_order`

// PartsIssueRepo implementación de PartsIssueRepository sobre PostgreSQL.
type PartsIssueRepo struct {
	q Querier
}

// NewPartsIssueRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPartsIssueRepository(q Querier) *PartsIssueRepo {
	return &PartsIssueRepo{q: q}
}

// Create persiste la salida y sus líneas.
func (r *PartsIssueRepo) Create(issue *entity.PartsIssue) error {
	ctx := context.Background()
	query := `
		INSERT INTO parts_issues (` + issueColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		issue.ID, issue.IssueNumber, issue.ServiceCenterID, issue.ServiceCenterName,
		issue.IssuedBy, issue.IssuedAt, issue.Status, issue.TotalAmount,
		issue.PurchaseOrderID, issue.Notes, issue.TransportDetails,
		issue.ReceivedBy, issue.ReceivedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert parts_issue: %w", err)
	}
	for i, it := range issue.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO parts_issue_items (`+issueItemColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			it.ID, issue.ID, it.PartID, it.PartName, it.PartNumber, it.HSNCode,
			it.Quantity, it.UnitPrice, it.TotalPrice, it.FromStock, i,
		)
		if err != nil {
			return fmt.Errorf("insert parts_issue_item: %w", err)
		}
	}
	return nil
}

func (r *PartsIssueRepo) loadItems(ctx context.Context, issueID string) ([]entity.PartsIssueItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+issueItemColumns+` FROM parts_issue_items WHERE issue_id = $1 ORDER BY sort_order ASC`, issueID)
	if err != nil {
		return nil, fmt.Errorf("query parts_issue_items: %w", err)
	}
	defer rows.Close()
	var items []entity.PartsIssueItem
	for rows.Next() {
		var it entity.PartsIssueItem
		var issueRef string
		var sortOrder int
		if err := rows.Scan(
			&it.ID, &issueRef, &it.PartID, &it.PartName, &it.PartNumber, &it.HSNCode,
			&it.Quantity, &it.UnitPrice, &it.TotalPrice, &it.FromStock, &sortOrder,
		); err != nil {
			return nil, fmt.Errorf("scan parts_issue_item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PartsIssueRepo) getOne(ctx context.Context, query string, args ...any) (*entity.PartsIssue, error) {
	var issue entity.PartsIssue
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&issue.ID, &issue.IssueNumber, &issue.ServiceCenterID, &issue.ServiceCenterName,
		&issue.IssuedBy, &issue.IssuedAt, &issue.Status, &issue.TotalAmount,
		&issue.PurchaseOrderID, &issue.Notes, &issue.TransportDetails,
		&issue.ReceivedBy, &issue.ReceivedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get parts_issue: %w", err)
	}
	if issue.Items, err = r.loadItems(ctx, issue.ID); err != nil {
		return nil, err
	}
	return &issue, nil
}

// GetByID obtiene una salida con sus líneas. (nil, nil) si no existe.
func (r *PartsIssueRepo) GetByID(id string) (*entity.PartsIssue, error) {
	return r.getOne(context.Background(),
		`SELECT `+issueColumns+` FROM parts_issues WHERE id = $1`, id)
}

// GetForUpdate obtiene la salida y bloquea su fila (SELECT FOR UPDATE).
func (r *PartsIssueRepo) GetForUpdate(id string) (*entity.PartsIssue, error) {
	return r.getOne(context.Background(),
		`SELECT `+issueColumns+` FROM parts_issues WHERE id = $1 FOR UPDATE`, id)
}

func (r *PartsIssueRepo) queryMany(query string, args ...any) ([]*entity.PartsIssue, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query parts_issues: %w", err)
	}
	defer rows.Close()
	var list []*entity.PartsIssue
	for rows.Next() {
		var issue entity.PartsIssue
		if err := rows.Scan(
			&issue.ID, &issue.IssueNumber, &issue.ServiceCenterID, &issue.ServiceCenterName,
			&issue.IssuedBy, &issue.IssuedAt, &issue.Status, &issue.TotalAmount,
			&issue.PurchaseOrderID, &issue.Notes, &issue.TransportDetails,
			&issue.ReceivedBy, &issue.ReceivedAt,
		); err != nil {
			return nil, fmt.Errorf("scan parts_issue: %w", err)
		}
		list = append(list, &issue)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, issue := range list {
		if issue.Items, err = r.loadItems(ctx, issue.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// List lista salidas de la más reciente a la más antigua.
func (r *PartsIssueRepo) List(limit, offset int) ([]*entity.PartsIssue, error) {
	return r.queryMany(
		`SELECT `+issueColumns+` FROM parts_issues ORDER BY issued_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
}

// ListByServiceCenter filtra por centro de servicio.
func (r *PartsIssueRepo) ListByServiceCenter(serviceCenterID string, limit, offset int) ([]*entity.PartsIssue, error) {
	return r.queryMany(
		`SELECT `+issueColumns+` FROM parts_issues WHERE service_center_id = $1 ORDER BY issued_at DESC LIMIT $2 OFFSET $3`,
		serviceCenterID, limit, offset)
}

// Update persiste la cabecera (estado de recepción). Las líneas son inmutables.
func (r *PartsIssueRepo) Update(issue *entity.PartsIssue) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE parts_issues
		SET status = $2, notes = $3, transport_details = $4, received_by = $5, received_at = $6
		WHERE id = $1`,
		issue.ID, issue.Status, issue.Notes, issue.TransportDetails, issue.ReceivedBy, issue.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("update parts_issue: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByYear cuenta salidas emitidas en un año (secuencia de numeración).
func (r *PartsIssueRepo) CountByYear(year int) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM parts_issues WHERE EXTRACT(YEAR FROM issued_at) = $1`, year).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count parts_issues by year: %w", err)
	}
	return n, nil
}

// CountByStatus cuenta salidas por estado.
func (r *PartsIssueRepo) CountByStatus(status string) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM parts_issues WHERE status = $1`, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count parts_issues: %w", err)
	}
	return n, nil
}
