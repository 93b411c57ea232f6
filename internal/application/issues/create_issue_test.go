package issues_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/AlmacenCentral-api/internal/application/dto"
	appinventory "github.com/jhoicas/AlmacenCentral-api/internal/application/inventory"
	"github.com/jhoicas/AlmacenCentral-api/internal/application/issues"
	"github.com/jhoicas/AlmacenCentral-api/internal/application/orders"
	"github.com/jhoicas/AlmacenCentral-api/internal/application/usecase"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/entity"
	"github.com/jhoicas/AlmacenCentral-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test — almacén con dos repuestos, un centro y los casos de uso
// reales cableados sobre el adaptador en memoria.
// ──────────────────────────────────────────────────────────────────────────────

type issueFixture struct {
	uc       *issues.PartsIssueUseCase
	ledger   *appinventory.StockLedgerUseCase
	ordersUC *orders.PurchaseOrderUseCase
	centerID string
	stockA   string // PRT-0001 Filtro de aceite, qty 100, $18500
	stockB   string // PRT-0002 Pastillas de freno, qty 50, $96000
}

func newIssueFixture(t *testing.T) *issueFixture {
	t.Helper()
	store := memory.NewStore()
	stockRepo := memory.NewCentralStockRepository(store)
	adjRepo := memory.NewStockAdjustmentRepository(store)
	poRepo := memory.NewPurchaseOrderRepository(store)
	issueRepo := memory.NewPartsIssueRepository(store)
	scRepo := memory.NewServiceCenterRepository(store)
	txRunner := memory.NewTxRunner(store)

	sc, err := usecase.NewServiceCenterUseCase(scRepo).Create("SC-BOG", "Centro de Servicio Bogotá", "", "")
	require.NoError(t, err)

	ledger := appinventory.NewStockLedgerUseCase(stockRepo, adjRepo, txRunner)
	stockA, err := ledger.Create(dto.CreateStockRequest{
		PartID: "PRT-0001", PartName: "Filtro de aceite", PartNumber: "FO-1042",
		UnitPrice: decimal.NewFromInt(18500), CurrentQty: 100, MinStock: 10,
	}, "seed")
	require.NoError(t, err)
	stockB, err := ledger.Create(dto.CreateStockRequest{
		PartID: "PRT-0002", PartName: "Pastillas de freno", PartNumber: "PF-2210",
		UnitPrice: decimal.NewFromInt(96000), CurrentQty: 50, MinStock: 5,
	}, "seed")
	require.NoError(t, err)

	return &issueFixture{
		uc:       issues.NewPartsIssueUseCase(issueRepo, scRepo, ledger, txRunner),
		ledger:   ledger,
		ordersUC: orders.NewPurchaseOrderUseCase(poRepo, stockRepo, scRepo, txRunner),
		centerID: sc.ID,
		stockA:   stockA.ID,
		stockB:   stockB.ID,
	}
}

// approvedOrder crea y aprueba una orden por las cantidades dadas de PRT-0001 y PRT-0002.
func (f *issueFixture) approvedOrder(t *testing.T, qtyA, qtyB int64) *dto.PurchaseOrderResponse {
	t.Helper()
	items := []dto.CreatePurchaseOrderItemRequest{}
	if qtyA > 0 {
		items = append(items, dto.CreatePurchaseOrderItemRequest{PartID: "PRT-0001", RequestedQty: qtyA})
	}
	if qtyB > 0 {
		items = append(items, dto.CreatePurchaseOrderItemRequest{PartID: "PRT-0002", RequestedQty: qtyB})
	}
	po, err := f.ordersUC.Create(dto.CreatePurchaseOrderRequest{ServiceCenterID: f.centerID, Items: items}, "centro")
	require.NoError(t, err)
	approved, err := f.ordersUC.Approve(context.Background(), po.ID, "admin", dto.ApprovePurchaseOrderRequest{})
	require.NoError(t, err)
	return approved
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateIssue — débito de stock + auditoría
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateIssue_DebitaStockYRegistraAjustes(t *testing.T) {
	f := newIssueFixture(t)

	out, err := f.uc.CreateIssue(context.Background(), dto.CreatePartsIssueRequest{
		ServiceCenterID: f.centerID,
		Items: []dto.CreatePartsIssueItemRequest{
			{FromStock: f.stockA, Quantity: 10},
			{FromStock: f.stockB, Quantity: 2},
		},
		TransportDetails: "Camión placa ABC-123",
	}, "bodeguero")
	require.NoError(t, err)

	year := time.Now().Year()
	assert.Equal(t, fmt.Sprintf("PI-%d-001", year), out.Issue.IssueNumber)
	assert.Equal(t, entity.IssueStatusIssued, out.Issue.Status)
	assert.Equal(t, "Centro de Servicio Bogotá", out.Issue.ServiceCenterName)
	// 10×18500 + 2×96000
	assert.True(t, decimal.NewFromInt(377000).Equal(out.Issue.TotalAmount), "total %s", out.Issue.TotalAmount)

	// Las filas de stock quedaron debitadas.
	require.Len(t, out.StockUpdates, 2)
	a, err := f.ledger.GetByID(f.stockA)
	require.NoError(t, err)
	assert.Equal(t, int64(90), a.CurrentQty)
	b, err := f.ledger.GetByID(f.stockB)
	require.NoError(t, err)
	assert.Equal(t, int64(48), b.CurrentQty)

	// Cada débito dejó su ajuste con el motivo y la referencia de la salida.
	log, err := f.ledger.ListAdjustmentsByStock(f.stockA, 50, 0)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, entity.AdjustmentTypeRemove, log[0].AdjustmentType)
	assert.Equal(t, "Issued to Centro de Servicio Bogotá", log[0].Reason)
	assert.Equal(t, out.Issue.IssueNumber, log[0].ReferenceNumber)
	assert.Equal(t, "bodeguero", log[0].AdjustedBy)
}

func TestCreateIssue_NumeracionSecuencial(t *testing.T) {
	f := newIssueFixture(t)
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		out, err := f.uc.CreateIssue(ctx, dto.CreatePartsIssueRequest{
			ServiceCenterID: f.centerID,
			Items:           []dto.CreatePartsIssueItemRequest{{FromStock: f.stockA, Quantity: 1}},
		}, "bodeguero")
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("PI-%d-%03d", time.Now().Year(), i), out.Issue.IssueNumber)
	}
}

// El precio de cada línea es el vigente al momento de la salida, no el de la orden.
func TestCreateIssue_PrecioVigenteAlDespachar(t *testing.T) {
	f := newIssueFixture(t)
	po := f.approvedOrder(t, 5, 0)

	nuevoPrecio := decimal.NewFromInt(20000)
	_, err := f.ledger.Update(f.stockA, dto.UpdateStockRequest{UnitPrice: &nuevoPrecio}, "admin")
	require.NoError(t, err)

	out, err := f.uc.CreateIssue(context.Background(), dto.CreatePartsIssueRequest{
		ServiceCenterID: f.centerID,
		PurchaseOrderID: po.ID,
		Items:           []dto.CreatePartsIssueItemRequest{{FromStock: f.stockA, Quantity: 5}},
	}, "bodeguero")
	require.NoError(t, err)

	assert.True(t, nuevoPrecio.Equal(out.Issue.Items[0].UnitPrice))
	assert.True(t, decimal.NewFromInt(100000).Equal(out.Issue.TotalAmount))
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateIssue — atomicidad (resolver-luego-aplicar + rollback)
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateIssue_ReferenciaInvalidaNoDejaEfectos(t *testing.T) {
	f := newIssueFixture(t)

	_, err := f.uc.CreateIssue(context.Background(), dto.CreatePartsIssueRequest{
		ServiceCenterID: f.centerID,
		Items: []dto.CreatePartsIssueItemRequest{
			{FromStock: f.stockA, Quantity: 10},
			{FromStock: "no-existe", Quantity: 1},
		},
	}, "bodeguero")
	require.ErrorIs(t, err, domain.ErrNotFound)

	// Ni débitos, ni ajustes, ni salida persistida.
	a, err := f.ledger.GetByID(f.stockA)
	require.NoError(t, err)
	assert.Equal(t, int64(100), a.CurrentQty, "la primera línea no debe haberse debitado")
	log, err := f.ledger.ListAdjustments(50, 0)
	require.NoError(t, err)
	assert.Empty(t, log)
	list, err := f.uc.List("", 50, 0)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestCreateIssue_OrdenNoAprobadaRevierteTodo(t *testing.T) {
	f := newIssueFixture(t)
	po, err := f.ordersUC.Create(dto.CreatePurchaseOrderRequest{
		ServiceCenterID: f.centerID,
		Items:           []dto.CreatePurchaseOrderItemRequest{{PartID: "PRT-0001", RequestedQty: 5}},
	}, "centro")
	require.NoError(t, err)

	_, err = f.uc.CreateIssue(context.Background(), dto.CreatePartsIssueRequest{
		ServiceCenterID: f.centerID,
		PurchaseOrderID: po.ID,
		Items:           []dto.CreatePartsIssueItemRequest{{FromStock: f.stockA, Quantity: 5}},
	}, "bodeguero")
	require.ErrorIs(t, err, domain.ErrConflict, "no se despacha contra una orden pending")

	// El débito de stock ya aplicado dentro de la tx debe haberse revertido.
	a, err := f.ledger.GetByID(f.stockA)
	require.NoError(t, err)
	assert.Equal(t, int64(100), a.CurrentQty)
	log, err := f.ledger.ListAdjustments(50, 0)
	require.NoError(t, err)
	assert.Empty(t, log, "el rollback también descarta los ajustes de auditoría")
}

func TestCreateIssue_Validaciones(t *testing.T) {
	f := newIssueFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreateIssue(ctx, dto.CreatePartsIssueRequest{ServiceCenterID: f.centerID}, "bodeguero")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas no hay salida")

	_, err = f.uc.CreateIssue(ctx, dto.CreatePartsIssueRequest{
		ServiceCenterID: f.centerID,
		Items:           []dto.CreatePartsIssueItemRequest{{FromStock: f.stockA, Quantity: 0}},
	}, "bodeguero")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.CreateIssue(ctx, dto.CreatePartsIssueRequest{
		ServiceCenterID: "no-existe",
		Items:           []dto.CreatePartsIssueItemRequest{{FromStock: f.stockA, Quantity: 1}},
	}, "bodeguero")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateIssue — avance de cumplimiento de la orden enlazada
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateIssue_CumplimientoParcialYTotal(t *testing.T) {
	f := newIssueFixture(t)
	po := f.approvedOrder(t, 10, 4)
	ctx := context.Background()

	// Primera salida: cubre solo la línea de PRT-0001.
	_, err := f.uc.CreateIssue(ctx, dto.CreatePartsIssueRequest{
		ServiceCenterID: f.centerID,
		PurchaseOrderID: po.ID,
		Items:           []dto.CreatePartsIssueItemRequest{{FromStock: f.stockA, Quantity: 10}},
	}, "bodeguero")
	require.NoError(t, err)

	after, err := f.ordersUC.GetByID(po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusPartiallyFulfilled, after.Status)
	assert.Equal(t, entity.POItemStatusIssued, after.Items[0].Status)
	assert.Equal(t, int64(10), after.Items[0].IssuedQty)
	assert.Equal(t, entity.POItemStatusApproved, after.Items[1].Status)

	// Segunda salida en dos tandas para la línea de PRT-0002.
	_, err = f.uc.CreateIssue(ctx, dto.CreatePartsIssueRequest{
		ServiceCenterID: f.centerID,
		PurchaseOrderID: po.ID,
		Items:           []dto.CreatePartsIssueItemRequest{{FromStock: f.stockB, Quantity: 1}},
	}, "bodeguero")
	require.NoError(t, err)
	after, err = f.ordersUC.GetByID(po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusPartiallyFulfilled, after.Status,
		"varias salidas se agregan sobre la misma línea")
	assert.Equal(t, int64(1), after.Items[1].IssuedQty)

	_, err = f.uc.CreateIssue(ctx, dto.CreatePartsIssueRequest{
		ServiceCenterID: f.centerID,
		PurchaseOrderID: po.ID,
		Items:           []dto.CreatePartsIssueItemRequest{{FromStock: f.stockB, Quantity: 3}},
	}, "bodeguero")
	require.NoError(t, err)

	after, err = f.ordersUC.GetByID(po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusFulfilled, after.Status)
	assert.Equal(t, "bodeguero", after.FulfilledBy)
	require.NotNil(t, after.FulfilledAt)
	assert.Equal(t, entity.POItemStatusIssued, after.Items[1].Status)
}

// Una línea rechazada en la aprobación no bloquea el cumplimiento total.
func TestCreateIssue_LineaRechazadaNoBloqueaCumplimiento(t *testing.T) {
	f := newIssueFixture(t)
	po, err := f.ordersUC.Create(dto.CreatePurchaseOrderRequest{
		ServiceCenterID: f.centerID,
		Items: []dto.CreatePurchaseOrderItemRequest{
			{PartID: "PRT-0001", RequestedQty: 10},
			{PartID: "PRT-0002", RequestedQty: 4},
		},
	}, "centro")
	require.NoError(t, err)
	ctx := context.Background()

	// Aprobación parcial: solo PRT-0001; PRT-0002 queda rechazada.
	approved, err := f.ordersUC.Approve(ctx, po.ID, "admin", dto.ApprovePurchaseOrderRequest{
		Items: []dto.ApprovedItemRequest{{ItemID: po.Items[0].ID, ApprovedQty: 6}},
	})
	require.NoError(t, err)
	require.Equal(t, entity.POItemStatusRejected, approved.Items[1].Status)

	_, err = f.uc.CreateIssue(ctx, dto.CreatePartsIssueRequest{
		ServiceCenterID: f.centerID,
		PurchaseOrderID: po.ID,
		Items:           []dto.CreatePartsIssueItemRequest{{FromStock: f.stockA, Quantity: 6}},
	}, "bodeguero")
	require.NoError(t, err)

	after, err := f.ordersUC.GetByID(po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusFulfilled, after.Status,
		"cubrir la cantidad aprobada de las líneas no rechazadas completa la orden")
	assert.Equal(t, int64(0), after.Items[1].IssuedQty, "a la línea rechazada no se le imputa nada")
}

// ──────────────────────────────────────────────────────────────────────────────
// Receive
// ──────────────────────────────────────────────────────────────────────────────

func TestReceive_TransicionTerminal(t *testing.T) {
	f := newIssueFixture(t)
	ctx := context.Background()

	created, err := f.uc.CreateIssue(ctx, dto.CreatePartsIssueRequest{
		ServiceCenterID: f.centerID,
		Items:           []dto.CreatePartsIssueItemRequest{{FromStock: f.stockA, Quantity: 1}},
	}, "bodeguero")
	require.NoError(t, err)

	out, err := f.uc.Receive(ctx, created.Issue.ID, "centro-bogota")
	require.NoError(t, err)
	assert.Equal(t, entity.IssueStatusReceived, out.Status)
	assert.Equal(t, "centro-bogota", out.ReceivedBy)
	require.NotNil(t, out.ReceivedAt)

	_, err = f.uc.Receive(ctx, created.Issue.ID, "centro-bogota")
	assert.ErrorIs(t, err, domain.ErrConflict, "received es terminal")
}

func TestReceive_NoExiste(t *testing.T) {
	f := newIssueFixture(t)
	_, err := f.uc.Receive(context.Background(), "no-existe", "centro")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
