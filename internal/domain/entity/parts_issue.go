package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una salida de repuestos: issued al despachar,
// received cuando el centro de servicio confirma recepción (terminal).
const (
	IssueStatusIssued   = "issued"
	IssueStatusReceived = "received"
)

// PartsIssueItem es una línea despachada. FromStock referencia (débil) la fila
// de CentralStock debitada; UnitPrice es el precio vigente al momento de la salida.
type PartsIssueItem struct {
	ID         string
	PartID     string
	PartName   string
	PartNumber string
	HSNCode    string
	Quantity   int64
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
	FromStock  string
}

// PartsIssue registra un despacho real de repuestos a un centro de servicio.
// Su creación debita el stock central y, si enlaza una orden de compra,
// avanza el estado de cumplimiento de esa orden.
type PartsIssue struct {
	ID               string
	IssueNumber      string // PI-{año}-{NNN}, secuencia por año
	ServiceCenterID  string
	ServiceCenterName string
	IssuedBy         string
	IssuedAt         time.Time
	Status           string
	Items            []PartsIssueItem
	TotalAmount      decimal.Decimal
	PurchaseOrderID  string
	Notes            string
	TransportDetails string
	ReceivedBy       string
	ReceivedAt       *time.Time
}
