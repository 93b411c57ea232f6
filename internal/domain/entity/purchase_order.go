package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra. pending -> {approved, rejected};
// approved -> {partially_fulfilled, fulfilled} (solo vía salidas de repuestos).
// rejected y fulfilled son terminales.
const (
	POStatusPending            = "pending"
	POStatusApproved           = "approved"
	POStatusRejected           = "rejected"
	POStatusPartiallyFulfilled = "partially_fulfilled"
	POStatusFulfilled          = "fulfilled"
)

// Estados por línea. Se fijan en aprobación (approved/rejected por ítem)
// y en salida (issued cuando IssuedQty >= ApprovedQty, o RequestedQty si no hubo
// aprobación explícita por ítem). Independientes del estado de la orden.
const (
	POItemStatusPending  = "pending"
	POItemStatusApproved = "approved"
	POItemStatusRejected = "rejected"
	POItemStatusIssued   = "issued"
)

// Prioridades de una orden de compra.
const (
	POPriorityLow    = "low"
	POPriorityNormal = "normal"
	POPriorityHigh   = "high"
	POPriorityUrgent = "urgent"
)

// PurchaseOrderItem es una línea de la orden: un repuesto solicitado al almacén central.
type PurchaseOrderItem struct {
	ID           string
	PartID       string
	PartName     string
	PartNumber   string
	HSNCode      string
	RequestedQty int64
	ApprovedQty  int64
	IssuedQty    int64
	Status       string
	Notes        string
}

// PurchaseOrder es la solicitud formal de un centro de servicio para retirar
// repuestos del almacén central. Nunca se elimina.
type PurchaseOrder struct {
	ID                string
	PONumber          string
	ServiceCenterID   string
	ServiceCenterName string
	Status            string
	Priority          string
	Items             []PurchaseOrderItem
	TotalAmount       decimal.Decimal
	RequestedBy       string
	RequestedAt       time.Time
	ApprovedBy        string
	ApprovedAt        *time.Time
	RejectedBy        string
	RejectedAt        *time.Time
	RejectionReason   string
	FulfilledBy       string
	FulfilledAt       *time.Time
	JobCardID         string // enlace opcional a la orden de trabajo de origen
	CustomerName      string
}
