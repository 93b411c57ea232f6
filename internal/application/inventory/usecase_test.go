package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/AlmacenCentral-api/internal/application/dto"
	appinventory "github.com/jhoicas/AlmacenCentral-api/internal/application/inventory"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/entity"
	"github.com/jhoicas/AlmacenCentral-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newLedger(t *testing.T) *appinventory.StockLedgerUseCase {
	t.Helper()
	store := memory.NewStore()
	return appinventory.NewStockLedgerUseCase(
		memory.NewCentralStockRepository(store),
		memory.NewStockAdjustmentRepository(store),
		memory.NewTxRunner(store),
	)
}

func createStock(t *testing.T, uc *appinventory.StockLedgerUseCase, qty, minStock int64) *dto.StockResponse {
	t.Helper()
	out, err := uc.Create(dto.CreateStockRequest{
		PartID:     "PRT-0001",
		PartName:   "Filtro de aceite",
		PartNumber: "FO-1042",
		Category:   "Filtros",
		UnitPrice:  decimal.NewFromInt(18500),
		CurrentQty: qty,
		MinStock:   minStock,
	}, "bodeguero")
	require.NoError(t, err)
	require.NotNil(t, out)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Create / Update — el estado siempre es derivado
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_DerivaEstadoInicial(t *testing.T) {
	uc := newLedger(t)

	out := createStock(t, uc, 3, 5)
	assert.Equal(t, entity.StockStatusLowStock, out.Status,
		"al crear con cantidad bajo el umbral el estado debe ser Low Stock")
}

func TestCreate_Validaciones(t *testing.T) {
	uc := newLedger(t)

	_, err := uc.Create(dto.CreateStockRequest{PartName: "sin part_id"}, "bodeguero")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(dto.CreateStockRequest{PartID: "P1", PartName: "x", CurrentQty: -1}, "bodeguero")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad negativa no es válida")

	_, err = uc.Create(dto.CreateStockRequest{PartID: "P1", PartName: "x"}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el actor es obligatorio")
}

func TestUpdate_RecalculaEstado(t *testing.T) {
	uc := newLedger(t)
	stock := createStock(t, uc, 10, 5)

	newMin := int64(20)
	out, err := uc.Update(stock.ID, dto.UpdateStockRequest{MinStock: &newMin}, "bodeguero")
	require.NoError(t, err)
	assert.Equal(t, entity.StockStatusLowStock, out.Status,
		"subir el umbral por sobre la cantidad debe dejar la fila en Low Stock")
	assert.Equal(t, "bodeguero", out.LastUpdatedBy)
}

func TestUpdate_NoExiste(t *testing.T) {
	uc := newLedger(t)
	_, err := uc.Update("no-existe", dto.UpdateStockRequest{}, "bodeguero")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// AdjustStock — la primitiva central de mutación
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustStock_AddRecuperaEstado(t *testing.T) {
	uc := newLedger(t)
	stock := createStock(t, uc, 0, 5)
	require.Equal(t, entity.StockStatusOutOfStock, stock.Status)

	out, err := uc.AdjustStock(context.Background(), stock.ID, dto.AdjustStockRequest{
		AdjustmentType: entity.AdjustmentTypeAdd,
		Quantity:       10,
		Reason:         "Reposición de proveedor",
	}, "bodeguero")
	require.NoError(t, err)

	assert.Equal(t, int64(10), out.Stock.CurrentQty)
	assert.Equal(t, entity.StockStatusInStock, out.Stock.Status)
	assert.Equal(t, int64(0), out.Adjustment.PreviousQty)
	assert.Equal(t, int64(10), out.Adjustment.NewQty)
	assert.False(t, out.Adjustment.Clamped)
}

func TestAdjustStock_RemoveBajoUmbral(t *testing.T) {
	uc := newLedger(t)
	stock := createStock(t, uc, 8, 5)

	out, err := uc.AdjustStock(context.Background(), stock.ID, dto.AdjustStockRequest{
		AdjustmentType: entity.AdjustmentTypeRemove,
		Quantity:       5,
		Reason:         "Merma de bodega",
	}, "bodeguero")
	require.NoError(t, err)

	assert.Equal(t, int64(3), out.Stock.CurrentQty)
	assert.Equal(t, entity.StockStatusLowStock, out.Stock.Status)
}

// Un remove que pide más de lo disponible recorta en cero y deja constancia:
// el registro de auditoría guarda la cantidad pedida y marca el recorte.
func TestAdjustStock_RemoveRecortaEnCero(t *testing.T) {
	uc := newLedger(t)
	stock := createStock(t, uc, 3, 5)

	out, err := uc.AdjustStock(context.Background(), stock.ID, dto.AdjustStockRequest{
		AdjustmentType: entity.AdjustmentTypeRemove,
		Quantity:       10,
		Reason:         "Baja por siniestro",
	}, "bodeguero")
	require.NoError(t, err)

	assert.Equal(t, int64(0), out.Stock.CurrentQty, "la cantidad nunca queda negativa")
	assert.Equal(t, entity.StockStatusOutOfStock, out.Stock.Status)
	assert.Equal(t, int64(3), out.Adjustment.PreviousQty)
	assert.Equal(t, int64(0), out.Adjustment.NewQty)
	assert.Equal(t, int64(10), out.Adjustment.Quantity, "se conserva la cantidad pedida")
	assert.True(t, out.Adjustment.Clamped, "el recorte debe quedar marcado en la auditoría")
}

func TestAdjustStock_AdjustFijaAbsoluto(t *testing.T) {
	uc := newLedger(t)
	stock := createStock(t, uc, 7, 5)

	out, err := uc.AdjustStock(context.Background(), stock.ID, dto.AdjustStockRequest{
		AdjustmentType: entity.AdjustmentTypeAdjust,
		Quantity:       0,
		Reason:         "Conteo físico",
	}, "bodeguero")
	require.NoError(t, err)

	assert.Equal(t, int64(0), out.Stock.CurrentQty, "adjust fija el valor absoluto")
	assert.Equal(t, entity.StockStatusOutOfStock, out.Stock.Status)
	assert.Equal(t, int64(7), out.Adjustment.PreviousQty)
}

func TestAdjustStock_Validaciones(t *testing.T) {
	uc := newLedger(t)
	stock := createStock(t, uc, 5, 2)
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.AdjustStockRequest
		by   string
	}{
		{"tipo desconocido", dto.AdjustStockRequest{AdjustmentType: "swap", Quantity: 1, Reason: "x"}, "bodeguero"},
		{"add con cantidad cero", dto.AdjustStockRequest{AdjustmentType: entity.AdjustmentTypeAdd, Quantity: 0, Reason: "x"}, "bodeguero"},
		{"remove con cantidad negativa", dto.AdjustStockRequest{AdjustmentType: entity.AdjustmentTypeRemove, Quantity: -1, Reason: "x"}, "bodeguero"},
		{"adjust con valor negativo", dto.AdjustStockRequest{AdjustmentType: entity.AdjustmentTypeAdjust, Quantity: -3, Reason: "x"}, "bodeguero"},
		{"sin motivo", dto.AdjustStockRequest{AdjustmentType: entity.AdjustmentTypeAdd, Quantity: 1}, "bodeguero"},
		{"sin actor", dto.AdjustStockRequest{AdjustmentType: entity.AdjustmentTypeAdd, Quantity: 1, Reason: "x"}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.AdjustStock(ctx, stock.ID, tc.in, tc.by)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	// Ningún intento inválido debe haber dejado rastro en el log ni en la fila.
	adjustments, err := uc.ListAdjustmentsByStock(stock.ID, 50, 0)
	require.NoError(t, err)
	assert.Empty(t, adjustments)
	current, err := uc.GetByID(stock.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), current.CurrentQty)
}

func TestAdjustStock_NoExiste(t *testing.T) {
	uc := newLedger(t)
	_, err := uc.AdjustStock(context.Background(), "no-existe", dto.AdjustStockRequest{
		AdjustmentType: entity.AdjustmentTypeAdd,
		Quantity:       1,
		Reason:         "x",
	}, "bodeguero")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Cada mutación exitosa produce exactamente un registro de auditoría; el log se
// lista del más reciente al más antiguo.
func TestAdjustStock_LogCompletoYOrdenado(t *testing.T) {
	uc := newLedger(t)
	stock := createStock(t, uc, 0, 5)
	ctx := context.Background()

	steps := []dto.AdjustStockRequest{
		{AdjustmentType: entity.AdjustmentTypeAdd, Quantity: 10, Reason: "Reposición"},
		{AdjustmentType: entity.AdjustmentTypeRemove, Quantity: 4, Reason: "Salida manual"},
		{AdjustmentType: entity.AdjustmentTypeAdjust, Quantity: 8, Reason: "Conteo físico"},
	}
	for _, in := range steps {
		_, err := uc.AdjustStock(ctx, stock.ID, in, "bodeguero")
		require.NoError(t, err)
	}

	log, err := uc.ListAdjustmentsByStock(stock.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, log, len(steps), "un registro por mutación, ni más ni menos")
	assert.Equal(t, "Conteo físico", log[0].Reason, "el más reciente va primero")
	assert.Equal(t, "Reposición", log[2].Reason)

	// Cada registro encadena con el anterior: NewQty de uno es PreviousQty del siguiente.
	assert.Equal(t, log[1].NewQty, log[0].PreviousQty)
	assert.Equal(t, log[2].NewQty, log[1].PreviousQty)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete / Search
// ──────────────────────────────────────────────────────────────────────────────

// Borrar la fila de stock no borra su histórico de ajustes (referencia débil).
func TestDelete_ConservaHistoricoDeAjustes(t *testing.T) {
	uc := newLedger(t)
	stock := createStock(t, uc, 5, 2)

	_, err := uc.AdjustStock(context.Background(), stock.ID, dto.AdjustStockRequest{
		AdjustmentType: entity.AdjustmentTypeRemove,
		Quantity:       2,
		Reason:         "Salida manual",
	}, "bodeguero")
	require.NoError(t, err)

	require.NoError(t, uc.Delete(stock.ID))

	gone, err := uc.GetByID(stock.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	log, err := uc.ListAdjustmentsByStock(stock.ID, 50, 0)
	require.NoError(t, err)
	assert.Len(t, log, 1, "los ajustes sobreviven al borrado de la fila")
}

func TestSearch_InsensibleATildes(t *testing.T) {
	uc := newLedger(t)
	_, err := uc.Create(dto.CreateStockRequest{
		PartID: "PRT-0003", PartName: "Bujía de iridio", PartNumber: "BJ-7731",
		UnitPrice: decimal.NewFromInt(42000), CurrentQty: 8, MinStock: 10,
	}, "bodeguero")
	require.NoError(t, err)
	createStock(t, uc, 5, 2) // Filtro de aceite

	found, err := uc.Search("BUJIA")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Bujía de iridio", found[0].PartName)

	all, err := uc.Search("")
	require.NoError(t, err)
	assert.Len(t, all, 2, "query vacío devuelve todo")
}
