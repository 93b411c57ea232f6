package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePartsIssueRequest body para POST /api/parts-issues.
type CreatePartsIssueRequest struct {
	ServiceCenterID  string                        `json:"service_center_id"`
	PurchaseOrderID  string                        `json:"purchase_order_id,omitempty"`
	Items            []CreatePartsIssueItemRequest `json:"items"`
	Notes            string                        `json:"notes,omitempty"`
	TransportDetails string                        `json:"transport_details,omitempty"`
}

// CreatePartsIssueItemRequest una línea a despachar. FromStock es el ID de la fila
// de stock central a debitar.
type CreatePartsIssueItemRequest struct {
	FromStock string `json:"from_stock"`
	Quantity  int64  `json:"quantity"`
}

// PartsIssueItemResponse una línea despachada.
type PartsIssueItemResponse struct {
	ID         string          `json:"id"`
	PartID     string          `json:"part_id"`
	PartName   string          `json:"part_name"`
	PartNumber string          `json:"part_number"`
	HSNCode    string          `json:"hsn_code,omitempty"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	FromStock  string          `json:"from_stock"`
}

// PartsIssueResponse representación HTTP de una salida de repuestos.
type PartsIssueResponse struct {
	ID                string                   `json:"id"`
	IssueNumber       string                   `json:"issue_number"`
	ServiceCenterID   string                   `json:"service_center_id"`
	ServiceCenterName string                   `json:"service_center_name"`
	IssuedBy          string                   `json:"issued_by"`
	IssuedAt          time.Time                `json:"issued_at"`
	Status            string                   `json:"status"`
	Items             []PartsIssueItemResponse `json:"items"`
	TotalAmount       decimal.Decimal          `json:"total_amount"`
	PurchaseOrderID   string                   `json:"purchase_order_id,omitempty"`
	Notes             string                   `json:"notes,omitempty"`
	TransportDetails  string                   `json:"transport_details,omitempty"`
	ReceivedBy        string                   `json:"received_by,omitempty"`
	ReceivedAt        *time.Time               `json:"received_at,omitempty"`
}

// CreatePartsIssueResponse salida creada + filas de stock debitadas.
type CreatePartsIssueResponse struct {
	Issue        PartsIssueResponse `json:"issue"`
	StockUpdates []StockResponse    `json:"stock_updates"`
}

// PartsIssueListResponse listado paginado de salidas.
type PartsIssueListResponse struct {
	Items []PartsIssueResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
