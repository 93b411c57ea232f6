package usecase_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/AlmacenCentral-api/internal/application/usecase"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/entity"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/inventory"
	"github.com/jhoicas/AlmacenCentral-api/internal/infrastructure/memory"
)

func seedStock(t *testing.T, repo *memory.CentralStockRepo, i int, qty, minStock int64, price int64) {
	t.Helper()
	require.NoError(t, repo.Create(&entity.CentralStock{
		ID:            fmt.Sprintf("stock-%d", i),
		PartID:        fmt.Sprintf("PRT-%04d", i),
		PartName:      fmt.Sprintf("Repuesto %d", i),
		UnitPrice:     decimal.NewFromInt(price),
		CurrentQty:    qty,
		MinStock:      minStock,
		Status:        inventory.StockStatus(qty, minStock),
		LastUpdated:   time.Now(),
		LastUpdatedBy: "seed",
	}))
}

func TestGetStats_ProyeccionCompleta(t *testing.T) {
	store := memory.NewStore()
	stockRepo := memory.NewCentralStockRepository(store)
	poRepo := memory.NewPurchaseOrderRepository(store)
	issueRepo := memory.NewPartsIssueRepository(store)

	// Tres filas de stock: In Stock, Low Stock y Out of Stock.
	seedStock(t, stockRepo, 1, 10, 5, 1000) // In Stock, valor 10000
	seedStock(t, stockRepo, 2, 2, 5, 500)   // Low Stock, valor 1000
	seedStock(t, stockRepo, 3, 0, 5, 9999)  // Out of Stock, valor 0

	// Órdenes: dos pending, una approved, una rejected (no cuenta).
	for i, status := range []string{
		entity.POStatusPending, entity.POStatusPending,
		entity.POStatusApproved, entity.POStatusRejected,
	} {
		require.NoError(t, poRepo.Create(&entity.PurchaseOrder{
			ID: fmt.Sprintf("po-%d", i), PONumber: fmt.Sprintf("PO-2026-%03d", i+1),
			ServiceCenterID: "sc-1", Status: status, RequestedBy: "centro", RequestedAt: time.Now(),
		}))
	}

	// Salidas: una despachada sin recibir, una ya recibida.
	require.NoError(t, issueRepo.Create(&entity.PartsIssue{
		ID: "pi-1", IssueNumber: "PI-2026-001", ServiceCenterID: "sc-1",
		Status: entity.IssueStatusIssued, IssuedBy: "bodeguero", IssuedAt: time.Now(),
	}))
	require.NoError(t, issueRepo.Create(&entity.PartsIssue{
		ID: "pi-2", IssueNumber: "PI-2026-002", ServiceCenterID: "sc-1",
		Status: entity.IssueStatusReceived, IssuedBy: "bodeguero", IssuedAt: time.Now(),
	}))

	stats, err := usecase.NewStatsUseCase(stockRepo, poRepo, issueRepo).GetStats()
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalParts)
	assert.True(t, decimal.NewFromInt(11000).Equal(stats.TotalStockValue), "valor %s", stats.TotalStockValue)
	assert.Equal(t, int64(1), stats.LowStockCount)
	assert.Equal(t, int64(1), stats.OutOfStockCount)
	assert.Equal(t, int64(2), stats.PendingOrders)
	assert.Equal(t, int64(1), stats.ApprovedOrders)
	assert.Equal(t, int64(1), stats.PendingIssues, "solo cuentan las salidas aún no recibidas")
}

func TestGetStats_AlmacenVacio(t *testing.T) {
	store := memory.NewStore()
	stats, err := usecase.NewStatsUseCase(
		memory.NewCentralStockRepository(store),
		memory.NewPurchaseOrderRepository(store),
		memory.NewPartsIssueRepository(store),
	).GetStats()
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.TotalParts)
	assert.True(t, decimal.Zero.Equal(stats.TotalStockValue))
	assert.Equal(t, int64(0), stats.PendingOrders)
}
