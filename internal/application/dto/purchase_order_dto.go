package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	ServiceCenterID string                           `json:"service_center_id"`
	Priority        string                           `json:"priority,omitempty"` // low|normal|high|urgent; default normal
	Items           []CreatePurchaseOrderItemRequest `json:"items"`
	JobCardID       string                           `json:"job_card_id,omitempty"`
	CustomerName    string                           `json:"customer_name,omitempty"`
}

// CreatePurchaseOrderItemRequest una línea solicitada.
type CreatePurchaseOrderItemRequest struct {
	PartID       string `json:"part_id"`
	RequestedQty int64  `json:"requested_qty"`
	Notes        string `json:"notes,omitempty"`
}

// ApprovePurchaseOrderRequest body para POST /api/purchase-orders/:id/approve.
// Items vacío = aprobar cada línea por su cantidad solicitada completa.
type ApprovePurchaseOrderRequest struct {
	Items []ApprovedItemRequest `json:"items,omitempty"`
}

// ApprovedItemRequest aprobación por línea. ApprovedQty = 0 rechaza la línea.
type ApprovedItemRequest struct {
	ItemID      string `json:"item_id"`
	ApprovedQty int64  `json:"approved_qty"`
}

// RejectPurchaseOrderRequest body para POST /api/purchase-orders/:id/reject.
type RejectPurchaseOrderRequest struct {
	Reason string `json:"reason"`
}

// PurchaseOrderItemResponse una línea de la orden.
type PurchaseOrderItemResponse struct {
	ID           string `json:"id"`
	PartID       string `json:"part_id"`
	PartName     string `json:"part_name"`
	PartNumber   string `json:"part_number"`
	HSNCode      string `json:"hsn_code,omitempty"`
	RequestedQty int64  `json:"requested_qty"`
	ApprovedQty  int64  `json:"approved_qty"`
	IssuedQty    int64  `json:"issued_qty"`
	Status       string `json:"status"`
	Notes        string `json:"notes,omitempty"`
}

// PurchaseOrderResponse representación HTTP de una orden de compra.
type PurchaseOrderResponse struct {
	ID                string                      `json:"id"`
	PONumber          string                      `json:"po_number"`
	ServiceCenterID   string                      `json:"service_center_id"`
	ServiceCenterName string                      `json:"service_center_name"`
	Status            string                      `json:"status"`
	Priority          string                      `json:"priority"`
	Items             []PurchaseOrderItemResponse `json:"items"`
	TotalAmount       decimal.Decimal             `json:"total_amount"`
	RequestedBy       string                      `json:"requested_by"`
	RequestedAt       time.Time                   `json:"requested_at"`
	ApprovedBy        string                      `json:"approved_by,omitempty"`
	ApprovedAt        *time.Time                  `json:"approved_at,omitempty"`
	RejectedBy        string                      `json:"rejected_by,omitempty"`
	RejectedAt        *time.Time                  `json:"rejected_at,omitempty"`
	RejectionReason   string                      `json:"rejection_reason,omitempty"`
	FulfilledBy       string                      `json:"fulfilled_by,omitempty"`
	FulfilledAt       *time.Time                  `json:"fulfilled_at,omitempty"`
	JobCardID         string                      `json:"job_card_id,omitempty"`
	CustomerName      string                      `json:"customer_name,omitempty"`
}

// PurchaseOrderListResponse listado paginado de órdenes.
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
