package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/AlmacenCentral-api/internal/application/dto"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/entity"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/inventory"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/repository"
)

// StockLedgerUseCase mantiene la cantidad disponible y el estado derivado de cada
// repuesto del almacén central. Toda mutación de cantidad recalcula el estado y
// queda registrada en el log de ajustes.
type StockLedgerUseCase struct {
	stockRepo repository.CentralStockRepository
	adjRepo   repository.StockAdjustmentRepository
	txRunner  TxRunner
}

// NewStockLedgerUseCase construye el caso de uso.
func NewStockLedgerUseCase(
	stockRepo repository.CentralStockRepository,
	adjRepo repository.StockAdjustmentRepository,
	txRunner TxRunner,
) *StockLedgerUseCase {
	return &StockLedgerUseCase{stockRepo: stockRepo, adjRepo: adjRepo, txRunner: txRunner}
}

// List devuelve todas las filas de stock (copia defensiva, sin paginación).
func (uc *StockLedgerUseCase) List() ([]dto.StockResponse, error) {
	list, err := uc.stockRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *ToStockResponse(s))
	}
	return items, nil
}

// Search busca por subcadena (insensible a mayúsculas y tildes) en nombre,
// número de parte, código HSN y categoría. Query vacío devuelve todo.
func (uc *StockLedgerUseCase) Search(query string) ([]dto.StockResponse, error) {
	list, err := uc.stockRepo.Search(query)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *ToStockResponse(s))
	}
	return items, nil
}

// GetByID obtiene una fila de stock por ID. Devuelve (nil, nil) si no existe.
func (uc *StockLedgerUseCase) GetByID(id string) (*dto.StockResponse, error) {
	s, err := uc.stockRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return ToStockResponse(s), nil
}

// GetByPartID obtiene la primera fila que coincida con la clave de negocio.
func (uc *StockLedgerUseCase) GetByPartID(partID string) (*dto.StockResponse, error) {
	s, err := uc.stockRepo.GetByPartID(partID)
	if err != nil {
		return nil, err
	}
	return ToStockResponse(s), nil
}

// Create da de alta una fila de stock. El estado inicial se deriva de la cantidad
// y el umbral suministrados; nunca lo fija el caller.
func (uc *StockLedgerUseCase) Create(in dto.CreateStockRequest, createdBy string) (*dto.StockResponse, error) {
	if in.PartID == "" || in.PartName == "" || createdBy == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CurrentQty < 0 || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	stock := &entity.CentralStock{
		ID:            uuid.New().String(),
		PartID:        in.PartID,
		PartName:      in.PartName,
		PartNumber:    in.PartNumber,
		HSNCode:       in.HSNCode,
		Category:      in.Category,
		UnitPrice:     in.UnitPrice,
		CurrentQty:    in.CurrentQty,
		MinStock:      in.MinStock,
		Status:        inventory.StockStatus(in.CurrentQty, in.MinStock),
		LastUpdated:   now,
		LastUpdatedBy: createdBy,
	}
	if err := uc.stockRepo.Create(stock); err != nil {
		return nil, err
	}
	return ToStockResponse(stock), nil
}

// Update fusiona campos parciales y refresca LastUpdated. Si cambia CurrentQty o
// MinStock se recalcula el estado derivado.
func (uc *StockLedgerUseCase) Update(id string, in dto.UpdateStockRequest, updatedBy string) (*dto.StockResponse, error) {
	if updatedBy == "" {
		return nil, domain.ErrInvalidInput
	}
	stock, err := uc.stockRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}
	if in.PartName != nil {
		stock.PartName = *in.PartName
	}
	if in.PartNumber != nil {
		stock.PartNumber = *in.PartNumber
	}
	if in.HSNCode != nil {
		stock.HSNCode = *in.HSNCode
	}
	if in.Category != nil {
		stock.Category = *in.Category
	}
	if in.UnitPrice != nil {
		stock.UnitPrice = *in.UnitPrice
	}
	if in.CurrentQty != nil {
		if *in.CurrentQty < 0 {
			return nil, domain.ErrInvalidInput
		}
		stock.CurrentQty = *in.CurrentQty
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		stock.MinStock = *in.MinStock
	}
	stock.Status = inventory.StockStatus(stock.CurrentQty, stock.MinStock)
	stock.LastUpdated = time.Now()
	stock.LastUpdatedBy = updatedBy
	if err := uc.stockRepo.Update(stock); err != nil {
		return nil, err
	}
	return ToStockResponse(stock), nil
}

// Delete elimina una fila de stock. No hay cascada: los ajustes y salidas que la
// referencian quedan como histórico (referencia débil).
func (uc *StockLedgerUseCase) Delete(id string) error {
	stock, err := uc.stockRepo.GetByID(id)
	if err != nil {
		return err
	}
	if stock == nil {
		return domain.ErrNotFound
	}
	return uc.stockRepo.Delete(id)
}

// AdjustStock es la primitiva central de mutación: aplica add/remove/adjust sobre
// una fila y registra el ajuste de auditoría, ambos dentro de una transacción.
// remove recorta en cero (nunca negativo) y marca Clamped en el registro cuando
// se pidió más de lo disponible.
func (uc *StockLedgerUseCase) AdjustStock(ctx context.Context, stockID string, in dto.AdjustStockRequest, adjustedBy string) (*dto.AdjustStockResponse, error) {
	if adjustedBy == "" || in.Reason == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.AdjustmentType {
	case entity.AdjustmentTypeAdd, entity.AdjustmentTypeRemove:
		if in.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	case entity.AdjustmentTypeAdjust:
		if in.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	var out dto.AdjustStockResponse
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.CentralStockRepository,
		adjRepo repository.StockAdjustmentRepository,
	) error {
		stock, adj, err := uc.AdjustInTx(stockRepo, adjRepo, stockID, in, adjustedBy, time.Now())
		if err != nil {
			return err
		}
		out.Stock = *ToStockResponse(stock)
		out.Adjustment = *ToAdjustmentResponse(adj)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AdjustInTx ejecuta el ajuste con repositorios ya atados a la transacción del
// caller. Lo reutiliza el caso de uso de salidas para debitar stock dentro de su
// propia tx sin perder el registro de auditoría.
func (uc *StockLedgerUseCase) AdjustInTx(
	stockRepo repository.CentralStockRepository,
	adjRepo repository.StockAdjustmentRepository,
	stockID string,
	in dto.AdjustStockRequest,
	adjustedBy string,
	now time.Time,
) (*entity.CentralStock, *entity.StockAdjustment, error) {
	stock, err := stockRepo.GetForUpdate(stockID)
	if err != nil {
		return nil, nil, err
	}
	if stock == nil {
		return nil, nil, domain.ErrNotFound
	}

	previousQty := stock.CurrentQty
	var newQty int64
	var clamped bool
	switch in.AdjustmentType {
	case entity.AdjustmentTypeAdd:
		newQty = previousQty + in.Quantity
	case entity.AdjustmentTypeRemove:
		newQty, clamped = inventory.ClampRemove(previousQty, in.Quantity)
	case entity.AdjustmentTypeAdjust:
		newQty = in.Quantity
	default:
		return nil, nil, domain.ErrInvalidInput
	}

	stock.CurrentQty = newQty
	stock.Status = inventory.StockStatus(newQty, stock.MinStock)
	stock.LastUpdated = now
	stock.LastUpdatedBy = adjustedBy
	if err := stockRepo.Update(stock); err != nil {
		return nil, nil, err
	}

	adj := &entity.StockAdjustment{
		ID:              uuid.New().String(),
		StockID:         stock.ID,
		PartID:          stock.PartID,
		PartName:        stock.PartName,
		AdjustmentType:  in.AdjustmentType,
		Quantity:        in.Quantity,
		PreviousQty:     previousQty,
		NewQty:          newQty,
		Clamped:         clamped,
		Reason:          in.Reason,
		AdjustedBy:      adjustedBy,
		AdjustedAt:      now,
		Notes:           in.Notes,
		ReferenceNumber: in.ReferenceNumber,
	}
	if err := adjRepo.Create(adj); err != nil {
		return nil, nil, err
	}
	return stock, adj, nil
}

// ListAdjustments devuelve el log de ajustes, del más reciente al más antiguo.
func (uc *StockLedgerUseCase) ListAdjustments(limit, offset int) ([]dto.AdjustmentResponse, error) {
	list, err := uc.adjRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AdjustmentResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *ToAdjustmentResponse(a))
	}
	return items, nil
}

// ListAdjustmentsByStock devuelve el historial de una fila de stock.
func (uc *StockLedgerUseCase) ListAdjustmentsByStock(stockID string, limit, offset int) ([]dto.AdjustmentResponse, error) {
	list, err := uc.adjRepo.ListByStock(stockID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AdjustmentResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *ToAdjustmentResponse(a))
	}
	return items, nil
}

// ToStockResponse mapea la entidad a su representación HTTP.
func ToStockResponse(s *entity.CentralStock) *dto.StockResponse {
	if s == nil {
		return nil
	}
	return &dto.StockResponse{
		ID:            s.ID,
		PartID:        s.PartID,
		PartName:      s.PartName,
		PartNumber:    s.PartNumber,
		HSNCode:       s.HSNCode,
		Category:      s.Category,
		UnitPrice:     s.UnitPrice,
		CurrentQty:    s.CurrentQty,
		MinStock:      s.MinStock,
		Status:        s.Status,
		LastUpdated:   s.LastUpdated,
		LastUpdatedBy: s.LastUpdatedBy,
	}
}

// ToAdjustmentResponse mapea el registro de auditoría a su representación HTTP.
func ToAdjustmentResponse(a *entity.StockAdjustment) *dto.AdjustmentResponse {
	if a == nil {
		return nil
	}
	return &dto.AdjustmentResponse{
		ID:              a.ID,
		StockID:         a.StockID,
		PartID:          a.PartID,
		PartName:        a.PartName,
		AdjustmentType:  a.AdjustmentType,
		Quantity:        a.Quantity,
		PreviousQty:     a.PreviousQty,
		NewQty:          a.NewQty,
		Clamped:         a.Clamped,
		Reason:          a.Reason,
		AdjustedBy:      a.AdjustedBy,
		AdjustedAt:      a.AdjustedAt,
		Notes:           a.Notes,
		ReferenceNumber: a.ReferenceNumber,
	}
}
