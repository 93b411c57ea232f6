package issues

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/AlmacenCentral-api/internal/application/dto"
	appinventory "github.com/jhoicas/AlmacenCentral-api/internal/application/inventory"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/entity"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/repository"
)

// PartsIssueUseCase registra despachos de repuestos y propaga sus efectos:
// debita el stock central (con ajuste de auditoría por ítem) y, si la salida
// enlaza una orden de compra, avanza su estado de cumplimiento. Es el único
// componente que lleva una orden a partially_fulfilled/fulfilled.
type PartsIssueUseCase struct {
	issueRepo repository.PartsIssueRepository
	scRepo    repository.ServiceCenterRepository
	ledger    *appinventory.StockLedgerUseCase
	txRunner  TxRunner
}

// NewPartsIssueUseCase construye el caso de uso.
func NewPartsIssueUseCase(
	issueRepo repository.PartsIssueRepository,
	scRepo repository.ServiceCenterRepository,
	ledger *appinventory.StockLedgerUseCase,
	txRunner TxRunner,
) *PartsIssueUseCase {
	return &PartsIssueUseCase{issueRepo: issueRepo, scRepo: scRepo, ledger: ledger, txRunner: txRunner}
}

// CreateIssue registra un despacho en una sola transacción lógica:
//  1. resuelve el centro de servicio y TODAS las referencias fromStock antes de
//     mutar nada (resolver-luego-aplicar: una referencia inválida aborta sin
//     debitar ninguna fila),
//  2. fija precios con el precio unitario vigente al momento de la salida,
//  3. persiste la salida, debita cada fila con su ajuste de auditoría
//     ("Issued to {centro}", referencia = número de salida),
//  4. si hay orden de compra enlazada, incrementa IssuedQty por línea y recalcula
//     el estado agregado (fulfilled cuando toda línea no rechazada quedó issued).
func (uc *PartsIssueUseCase) CreateIssue(ctx context.Context, in dto.CreatePartsIssueRequest, issuedBy string) (*dto.CreatePartsIssueResponse, error) {
	if issuedBy == "" || in.ServiceCenterID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.FromStock == "" || it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	sc, err := uc.scRepo.GetByID(in.ServiceCenterID)
	if err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, fmt.Errorf("centro de servicio %s: %w", in.ServiceCenterID, domain.ErrNotFound)
	}

	var out dto.CreatePartsIssueResponse
	err = uc.txRunner.RunIssue(ctx, func(
		issueRepo repository.PartsIssueRepository,
		stockRepo repository.CentralStockRepository,
		adjRepo repository.StockAdjustmentRepository,
		poRepo repository.PurchaseOrderRepository,
	) error {
		now := time.Now()

		// Resolución previa de todas las referencias: bloquea y verifica cada fila
		// de stock antes del primer débito.
		stocks := make([]*entity.CentralStock, 0, len(in.Items))
		for _, it := range in.Items {
			stock, err := stockRepo.GetForUpdate(it.FromStock)
			if err != nil {
				return err
			}
			if stock == nil {
				return fmt.Errorf("stock %s: %w", it.FromStock, domain.ErrNotFound)
			}
			stocks = append(stocks, stock)
		}

		seq, err := issueRepo.CountByYear(now.Year())
		if err != nil {
			return err
		}
		issueNumber := fmt.Sprintf("PI-%d-%03d", now.Year(), seq+1)

		total := decimal.Zero
		items := make([]entity.PartsIssueItem, 0, len(in.Items))
		for i, it := range in.Items {
			stock := stocks[i]
			lineTotal := stock.UnitPrice.Mul(decimal.NewFromInt(it.Quantity))
			total = total.Add(lineTotal)
			items = append(items, entity.PartsIssueItem{
				ID:         uuid.New().String(),
				PartID:     stock.PartID,
				PartName:   stock.PartName,
				PartNumber: stock.PartNumber,
				HSNCode:    stock.HSNCode,
				Quantity:   it.Quantity,
				UnitPrice:  stock.UnitPrice,
				TotalPrice: lineTotal,
				FromStock:  stock.ID,
			})
		}

		issue := &entity.PartsIssue{
			ID:                uuid.New().String(),
			IssueNumber:       issueNumber,
			ServiceCenterID:   sc.ID,
			ServiceCenterName: sc.Name,
			IssuedBy:          issuedBy,
			IssuedAt:          now,
			Status:            entity.IssueStatusIssued,
			Items:             items,
			TotalAmount:       total,
			PurchaseOrderID:   in.PurchaseOrderID,
			Notes:             in.Notes,
			TransportDetails:  in.TransportDetails,
		}
		if err := issueRepo.Create(issue); err != nil {
			return err
		}

		stockUpdates := make([]dto.StockResponse, 0, len(items))
		for _, it := range issue.Items {
			updated, _, err := uc.ledger.AdjustInTx(stockRepo, adjRepo, it.FromStock, dto.AdjustStockRequest{
				AdjustmentType:  entity.AdjustmentTypeRemove,
				Quantity:        it.Quantity,
				Reason:          fmt.Sprintf("Issued to %s", sc.Name),
				ReferenceNumber: issueNumber,
			}, issuedBy, now)
			if err != nil {
				return err
			}
			stockUpdates = append(stockUpdates, *appinventory.ToStockResponse(updated))
		}

		if in.PurchaseOrderID != "" {
			if err := advanceFulfillment(poRepo, in.PurchaseOrderID, issue, issuedBy, now); err != nil {
				return err
			}
		}

		out.Issue = *ToPartsIssueResponse(issue)
		out.StockUpdates = stockUpdates
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// advanceFulfillment aplica las cantidades despachadas sobre las líneas de la
// orden enlazada y recalcula su estado agregado. Una línea queda issued cuando
// IssuedQty alcanza ApprovedQty (o RequestedQty si nunca hubo aprobación por línea).
func advanceFulfillment(
	poRepo repository.PurchaseOrderRepository,
	purchaseOrderID string,
	issue *entity.PartsIssue,
	issuedBy string,
	now time.Time,
) error {
	po, err := poRepo.GetForUpdate(purchaseOrderID)
	if err != nil {
		return err
	}
	if po == nil {
		return fmt.Errorf("orden de compra %s: %w", purchaseOrderID, domain.ErrNotFound)
	}
	// Solo se despacha contra órdenes aprobadas (o ya en cumplimiento parcial);
	// rejected y fulfilled son terminales, pending aún no fue aprobada.
	if po.Status != entity.POStatusApproved && po.Status != entity.POStatusPartiallyFulfilled {
		return domain.ErrConflict
	}

	for _, issued := range issue.Items {
		for i := range po.Items {
			line := &po.Items[i]
			if line.PartID != issued.PartID || line.Status == entity.POItemStatusRejected {
				continue
			}
			line.IssuedQty += issued.Quantity
			target := line.ApprovedQty
			if target == 0 {
				target = line.RequestedQty
			}
			if line.IssuedQty >= target {
				line.Status = entity.POItemStatusIssued
			}
			break
		}
	}

	allIssued := true
	for _, line := range po.Items {
		if line.Status == entity.POItemStatusRejected {
			continue // una línea rechazada no bloquea el cumplimiento
		}
		if line.Status != entity.POItemStatusIssued {
			allIssued = false
			break
		}
	}
	if allIssued {
		po.Status = entity.POStatusFulfilled
		po.FulfilledBy = issuedBy
		po.FulfilledAt = &now
	} else {
		po.Status = entity.POStatusPartiallyFulfilled
	}
	return poRepo.Update(po)
}

// Receive marca una salida como recibida por el centro de servicio. Terminal.
func (uc *PartsIssueUseCase) Receive(ctx context.Context, id, receivedBy string) (*dto.PartsIssueResponse, error) {
	if receivedBy == "" {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.PartsIssueResponse
	err := uc.txRunner.RunIssue(ctx, func(
		issueRepo repository.PartsIssueRepository,
		_ repository.CentralStockRepository,
		_ repository.StockAdjustmentRepository,
		_ repository.PurchaseOrderRepository,
	) error {
		issue, err := issueRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if issue == nil {
			return domain.ErrNotFound
		}
		if issue.Status != entity.IssueStatusIssued {
			return domain.ErrConflict
		}
		now := time.Now()
		issue.Status = entity.IssueStatusReceived
		issue.ReceivedBy = receivedBy
		issue.ReceivedAt = &now
		if err := issueRepo.Update(issue); err != nil {
			return err
		}
		out = ToPartsIssueResponse(issue)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID obtiene una salida por ID. Devuelve (nil, nil) si no existe.
func (uc *PartsIssueUseCase) GetByID(id string) (*dto.PartsIssueResponse, error) {
	issue, err := uc.issueRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return ToPartsIssueResponse(issue), nil
}

// List lista salidas (más recientes primero), opcionalmente por centro de servicio.
func (uc *PartsIssueUseCase) List(serviceCenterID string, limit, offset int) (*dto.PartsIssueListResponse, error) {
	var (
		list []*entity.PartsIssue
		err  error
	)
	if serviceCenterID != "" {
		list, err = uc.issueRepo.ListByServiceCenter(serviceCenterID, limit, offset)
	} else {
		list, err = uc.issueRepo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartsIssueResponse, 0, len(list))
	for _, issue := range list {
		items = append(items, *ToPartsIssueResponse(issue))
	}
	return &dto.PartsIssueListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ToPartsIssueResponse mapea la entidad a su representación HTTP.
func ToPartsIssueResponse(issue *entity.PartsIssue) *dto.PartsIssueResponse {
	if issue == nil {
		return nil
	}
	items := make([]dto.PartsIssueItemResponse, 0, len(issue.Items))
	for _, it := range issue.Items {
		items = append(items, dto.PartsIssueItemResponse{
			ID:         it.ID,
			PartID:     it.PartID,
			PartName:   it.PartName,
			PartNumber: it.PartNumber,
			HSNCode:    it.HSNCode,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
			FromStock:  it.FromStock,
		})
	}
	return &dto.PartsIssueResponse{
		ID:                issue.ID,
		IssueNumber:       issue.IssueNumber,
		ServiceCenterID:   issue.ServiceCenterID,
		ServiceCenterName: issue.ServiceCenterName,
		IssuedBy:          issue.IssuedBy,
		IssuedAt:          issue.IssuedAt,
		Status:            issue.Status,
		Items:             items,
		TotalAmount:       issue.TotalAmount,
		PurchaseOrderID:   issue.PurchaseOrderID,
		Notes:             issue.Notes,
		TransportDetails:  issue.TransportDetails,
		ReceivedBy:        issue.ReceivedBy,
		ReceivedAt:        issue.ReceivedAt,
	}
}
