package usecase

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/AlmacenCentral-api/internal/application/dto"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/entity"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/repository"
)

// StatsUseCase proyección de lectura del almacén central. Recalcula bajo demanda
// desde las colecciones actuales; no guarda estado propio ni cachea entre mutaciones.
type StatsUseCase struct {
	stockRepo repository.CentralStockRepository
	poRepo    repository.PurchaseOrderRepository
	issueRepo repository.PartsIssueRepository
}

// NewStatsUseCase construye la proyección.
func NewStatsUseCase(
	stockRepo repository.CentralStockRepository,
	poRepo repository.PurchaseOrderRepository,
	issueRepo repository.PartsIssueRepository,
) *StatsUseCase {
	return &StatsUseCase{stockRepo: stockRepo, poRepo: poRepo, issueRepo: issueRepo}
}

// GetStats calcula totales de partes, valor de stock (Σ qty × precio), conteos de
// stock bajo/agotado, órdenes pendientes/aprobadas y salidas aún no recibidas.
func (uc *StatsUseCase) GetStats() (*dto.CentralInventoryStatsResponse, error) {
	stocks, err := uc.stockRepo.List()
	if err != nil {
		return nil, err
	}
	stats := &dto.CentralInventoryStatsResponse{TotalStockValue: decimal.Zero}
	for _, s := range stocks {
		stats.TotalParts++
		stats.TotalStockValue = stats.TotalStockValue.Add(s.UnitPrice.Mul(decimal.NewFromInt(s.CurrentQty)))
		switch s.Status {
		case entity.StockStatusLowStock:
			stats.LowStockCount++
		case entity.StockStatusOutOfStock:
			stats.OutOfStockCount++
		}
	}

	if stats.PendingOrders, err = uc.poRepo.CountByStatus(entity.POStatusPending); err != nil {
		return nil, err
	}
	if stats.ApprovedOrders, err = uc.poRepo.CountByStatus(entity.POStatusApproved); err != nil {
		return nil, err
	}
	if stats.PendingIssues, err = uc.issueRepo.CountByStatus(entity.IssueStatusIssued); err != nil {
		return nil, err
	}
	return stats, nil
}
