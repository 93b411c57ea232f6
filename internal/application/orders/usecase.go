package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/AlmacenCentral-api/internal/application/dto"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/entity"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/repository"
)

// PurchaseOrderUseCase gobierna el flujo de aprobación de órdenes de compra:
// pending -> approved/rejected. El avance a partially_fulfilled/fulfilled NO ocurre
// aquí: lo dispara exclusivamente el caso de uso de salidas, porque el cumplimiento
// se define en términos de despacho real, no de aprobación.
type PurchaseOrderUseCase struct {
	poRepo    repository.PurchaseOrderRepository
	stockRepo repository.CentralStockRepository
	scRepo    repository.ServiceCenterRepository
	txRunner  TxRunner
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	poRepo repository.PurchaseOrderRepository,
	stockRepo repository.CentralStockRepository,
	scRepo repository.ServiceCenterRepository,
	txRunner TxRunner,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{poRepo: poRepo, stockRepo: stockRepo, scRepo: scRepo, txRunner: txRunner}
}

// Create registra una orden nueva en estado pending. Resuelve cada línea contra el
// stock central para copiar nombre, número de parte y HSN, y calcula el total con
// el precio vigente (informativo: el precio definitivo se fija al despachar).
func (uc *PurchaseOrderUseCase) Create(in dto.CreatePurchaseOrderRequest, requestedBy string) (*dto.PurchaseOrderResponse, error) {
	if in.ServiceCenterID == "" || requestedBy == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.POPriorityNormal
	}
	switch priority {
	case entity.POPriorityLow, entity.POPriorityNormal, entity.POPriorityHigh, entity.POPriorityUrgent:
	default:
		return nil, domain.ErrInvalidInput
	}

	sc, err := uc.scRepo.GetByID(in.ServiceCenterID)
	if err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	total := decimal.Zero
	items := make([]entity.PurchaseOrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.PartID == "" || it.RequestedQty <= 0 {
			return nil, domain.ErrInvalidInput
		}
		stock, err := uc.stockRepo.GetByPartID(it.PartID)
		if err != nil {
			return nil, err
		}
		if stock == nil {
			return nil, fmt.Errorf("repuesto %s: %w", it.PartID, domain.ErrNotFound)
		}
		total = total.Add(stock.UnitPrice.Mul(decimal.NewFromInt(it.RequestedQty)))
		items = append(items, entity.PurchaseOrderItem{
			ID:           uuid.New().String(),
			PartID:       stock.PartID,
			PartName:     stock.PartName,
			PartNumber:   stock.PartNumber,
			HSNCode:      stock.HSNCode,
			RequestedQty: it.RequestedQty,
			Status:       entity.POItemStatusPending,
			Notes:        it.Notes,
		})
	}

	seq, err := uc.poRepo.CountByYear(now.Year())
	if err != nil {
		return nil, err
	}
	po := &entity.PurchaseOrder{
		ID:                uuid.New().String(),
		PONumber:          fmt.Sprintf("PO-%d-%03d", now.Year(), seq+1),
		ServiceCenterID:   sc.ID,
		ServiceCenterName: sc.Name,
		Status:            entity.POStatusPending,
		Priority:          priority,
		Items:             items,
		TotalAmount:       total,
		RequestedBy:       requestedBy,
		RequestedAt:       now,
		JobCardID:         in.JobCardID,
		CustomerName:      in.CustomerName,
	}
	if err := uc.poRepo.Create(po); err != nil {
		return nil, err
	}
	return ToPurchaseOrderResponse(po), nil
}

// GetByID obtiene una orden por ID. Devuelve (nil, nil) si no existe.
func (uc *PurchaseOrderUseCase) GetByID(id string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.poRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return ToPurchaseOrderResponse(po), nil
}

// List lista órdenes con filtros opcionales por estado o centro de servicio.
func (uc *PurchaseOrderUseCase) List(status, serviceCenterID string, limit, offset int) (*dto.PurchaseOrderListResponse, error) {
	var (
		list []*entity.PurchaseOrder
		err  error
	)
	switch {
	case status != "":
		list, err = uc.poRepo.ListByStatus(status, limit, offset)
	case serviceCenterID != "":
		list, err = uc.poRepo.ListByServiceCenter(serviceCenterID, limit, offset)
	default:
		list, err = uc.poRepo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		items = append(items, *ToPurchaseOrderResponse(po))
	}
	return &dto.PurchaseOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Approve aprueba una orden pending. Con Items se aplica aprobación por línea
// (ApprovedQty = 0 rechaza la línea); sin Items se aprueba cada línea por su
// cantidad solicitada completa. La verificación del estado y la escritura son
// atómicas: se toma el bloqueo de fila antes de comprobar la precondición.
func (uc *PurchaseOrderUseCase) Approve(ctx context.Context, id string, approvedBy string, in dto.ApprovePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if approvedBy == "" {
		return nil, domain.ErrInvalidInput
	}
	approvedByItem := make(map[string]int64, len(in.Items))
	for _, it := range in.Items {
		if it.ApprovedQty < 0 {
			return nil, domain.ErrInvalidInput
		}
		approvedByItem[it.ItemID] = it.ApprovedQty
	}

	var out *dto.PurchaseOrderResponse
	err := uc.txRunner.RunOrder(ctx, func(poRepo repository.PurchaseOrderRepository) error {
		po, err := poRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if po.Status != entity.POStatusPending {
			return domain.ErrConflict
		}
		for i := range po.Items {
			item := &po.Items[i]
			qty, ok := approvedByItem[item.ID]
			if len(in.Items) == 0 {
				// Aprobación sin detalle: cantidad solicitada completa.
				qty, ok = item.RequestedQty, true
			}
			if !ok {
				// Línea no mencionada en una aprobación parcial: rechazada.
				qty = 0
			}
			item.ApprovedQty = qty
			if qty > 0 {
				item.Status = entity.POItemStatusApproved
			} else {
				item.Status = entity.POItemStatusRejected
			}
		}
		now := time.Now()
		po.Status = entity.POStatusApproved
		po.ApprovedBy = approvedBy
		po.ApprovedAt = &now
		if err := poRepo.Update(po); err != nil {
			return err
		}
		out = ToPurchaseOrderResponse(po)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Reject rechaza una orden pending. El motivo es obligatorio (se valida aquí,
// no en el caller). Estado terminal: la orden no vuelve a transicionar.
func (uc *PurchaseOrderUseCase) Reject(ctx context.Context, id string, rejectedBy, reason string) (*dto.PurchaseOrderResponse, error) {
	if rejectedBy == "" || reason == "" {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.PurchaseOrderResponse
	err := uc.txRunner.RunOrder(ctx, func(poRepo repository.PurchaseOrderRepository) error {
		po, err := poRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if po.Status != entity.POStatusPending {
			return domain.ErrConflict
		}
		now := time.Now()
		po.Status = entity.POStatusRejected
		po.RejectedBy = rejectedBy
		po.RejectedAt = &now
		po.RejectionReason = reason
		for i := range po.Items {
			po.Items[i].Status = entity.POItemStatusRejected
		}
		if err := poRepo.Update(po); err != nil {
			return err
		}
		out = ToPurchaseOrderResponse(po)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ToPurchaseOrderResponse mapea la entidad a su representación HTTP.
func ToPurchaseOrderResponse(po *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	if po == nil {
		return nil
	}
	items := make([]dto.PurchaseOrderItemResponse, 0, len(po.Items))
	for _, it := range po.Items {
		items = append(items, dto.PurchaseOrderItemResponse{
			ID:           it.ID,
			PartID:       it.PartID,
			PartName:     it.PartName,
			PartNumber:   it.PartNumber,
			HSNCode:      it.HSNCode,
			RequestedQty: it.RequestedQty,
			ApprovedQty:  it.ApprovedQty,
			IssuedQty:    it.IssuedQty,
			Status:       it.Status,
			Notes:        it.Notes,
		})
	}
	return &dto.PurchaseOrderResponse{
		ID:                po.ID,
		PONumber:          po.PONumber,
		ServiceCenterID:   po.ServiceCenterID,
		ServiceCenterName: po.ServiceCenterName,
		Status:            po.Status,
		Priority:          po.Priority,
		Items:             items,
		TotalAmount:       po.TotalAmount,
		RequestedBy:       po.RequestedBy,
		RequestedAt:       po.RequestedAt,
		ApprovedBy:        po.ApprovedBy,
		ApprovedAt:        po.ApprovedAt,
		RejectedBy:        po.RejectedBy,
		RejectedAt:        po.RejectedAt,
		RejectionReason:   po.RejectionReason,
		FulfilledBy:       po.FulfilledBy,
		FulfilledAt:       po.FulfilledAt,
		JobCardID:         po.JobCardID,
		CustomerName:      po.CustomerName,
	}
}
