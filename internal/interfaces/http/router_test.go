package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/AlmacenCentral-api/internal/application/auth"
	"github.com/jhoicas/AlmacenCentral-api/internal/application/dto"
	appinventory "github.com/jhoicas/AlmacenCentral-api/internal/application/inventory"
	"github.com/jhoicas/AlmacenCentral-api/internal/application/issues"
	"github.com/jhoicas/AlmacenCentral-api/internal/application/orders"
	"github.com/jhoicas/AlmacenCentral-api/internal/application/usecase"
	"github.com/jhoicas/AlmacenCentral-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/AlmacenCentral-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/AlmacenCentral-api/pkg/jwt"
)

// buildAPI arma la aplicación completa sobre el adaptador en memoria, igual que
// main pero sin PostgreSQL.
func buildAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	stockRepo := memory.NewCentralStockRepository(store)
	adjRepo := memory.NewStockAdjustmentRepository(store)
	poRepo := memory.NewPurchaseOrderRepository(store)
	issueRepo := memory.NewPartsIssueRepository(store)
	scRepo := memory.NewServiceCenterRepository(store)
	userRepo := memory.NewUserRepository(store)
	txRunner := memory.NewTxRunner(store)

	stockUC := appinventory.NewStockLedgerUseCase(stockRepo, adjRepo, txRunner)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		StockUC:         stockUC,
		PurchaseOrderUC: orders.NewPurchaseOrderUseCase(poRepo, stockRepo, scRepo, txRunner),
		PartsIssueUC:    issues.NewPartsIssueUseCase(issueRepo, scRepo, stockUC, txRunner),
		ServiceCenterUC: usecase.NewServiceCenterUseCase(scRepo),
		StatsUC:         usecase.NewStatsUseCase(stockRepo, poRepo, issueRepo),
		AuthUC: auth.NewAuthUseCase(userRepo, scRepo, auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		JWTSecret: testJWTSecret,
	})
	return app
}

func bearerFor(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "", role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doJSON(t *testing.T, app *fiber.App, method, path, bearer string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo: alta de stock → ajuste → log → dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_FlujoDeStock(t *testing.T) {
	app := buildAPI(t)
	bodeguero := bearerFor(t, "bodeguero")

	resp := doJSON(t, app, http.MethodPost, "/api/stock", bodeguero, dto.CreateStockRequest{
		PartID: "PRT-0001", PartName: "Filtro de aceite", PartNumber: "FO-1042",
		CurrentQty: 20, MinStock: 5,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	stock := decode[dto.StockResponse](t, resp)
	assert.Equal(t, "In Stock", stock.Status)

	resp = doJSON(t, app, http.MethodPost, "/api/stock/"+stock.ID+"/adjust", bodeguero, dto.AdjustStockRequest{
		AdjustmentType: "remove", Quantity: 18, Reason: "Salida manual",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	adjusted := decode[dto.AdjustStockResponse](t, resp)
	assert.Equal(t, int64(2), adjusted.Stock.CurrentQty)
	assert.Equal(t, "Low Stock", adjusted.Stock.Status)
	assert.Equal(t, testUserID, adjusted.Adjustment.AdjustedBy, "el actor sale del token")

	resp = doJSON(t, app, http.MethodGet, "/api/stock/"+stock.ID+"/adjustments", bodeguero, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	log := decode[[]dto.AdjustmentResponse](t, resp)
	require.Len(t, log, 1)

	resp = doJSON(t, app, http.MethodGet, "/api/dashboard/stats", bodeguero, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decode[dto.CentralInventoryStatsResponse](t, resp)
	assert.Equal(t, int64(1), stats.TotalParts)
	assert.Equal(t, int64(1), stats.LowStockCount)
}

// ──────────────────────────────────────────────────────────────────────────────
// RBAC sobre las rutas
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_CentroNoMutaStock(t *testing.T) {
	app := buildAPI(t)

	resp := doJSON(t, app, http.MethodPost, "/api/stock", bearerFor(t, "centro"), dto.CreateStockRequest{
		PartID: "PRT-0001", PartName: "Filtro", CurrentQty: 1,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAPI_SoloAdminApruebaOrdenes(t *testing.T) {
	app := buildAPI(t)

	resp := doJSON(t, app, http.MethodPost, "/api/purchase-orders/cualquiera/approve", bearerFor(t, "bodeguero"), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAPI_SinTokenRetorna401(t *testing.T) {
	app := buildAPI(t)
	resp := doJSON(t, app, http.MethodGet, "/api/stock", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores de dominio mapeados a HTTP
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_NotFoundYConflict(t *testing.T) {
	app := buildAPI(t)
	admin := bearerFor(t, "admin")

	resp := doJSON(t, app, http.MethodGet, "/api/stock/no-existe", admin, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	errBody := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "NOT_FOUND", errBody.Code)

	// Orden rechazada dos veces: la segunda es un conflicto de estado.
	resp = doJSON(t, app, http.MethodPost, "/api/service-centers", admin, dto.CreateServiceCenterRequest{
		Code: "SC-BOG", Name: "Centro Bogotá",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sc := decode[dto.ServiceCenterResponse](t, resp)

	resp = doJSON(t, app, http.MethodPost, "/api/stock", admin, dto.CreateStockRequest{
		PartID: "PRT-0001", PartName: "Filtro", CurrentQty: 10, MinStock: 2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/purchase-orders", admin, dto.CreatePurchaseOrderRequest{
		ServiceCenterID: sc.ID,
		Items:           []dto.CreatePurchaseOrderItemRequest{{PartID: "PRT-0001", RequestedQty: 2}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	po := decode[dto.PurchaseOrderResponse](t, resp)

	reject := func() *http.Response {
		return doJSON(t, app, http.MethodPost,
			fmt.Sprintf("/api/purchase-orders/%s/reject", po.ID), admin,
			dto.RejectPurchaseOrderRequest{Reason: "Presupuesto agotado"})
	}
	resp = reject()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = reject()
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	conflict := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INVALID_STATE", conflict.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth end to end: register + login + uso del token emitido
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_RegisterLoginYUsoDelToken(t *testing.T) {
	app := buildAPI(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email: "bodega@almacen.local", Password: "secreto123", Role: "bodeguero",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email: "bodega@almacen.local", Password: "secreto123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[dto.LoginResponse](t, resp)
	require.NotEmpty(t, login.Token)
	assert.Equal(t, "bodeguero", login.User.Role)

	resp = doJSON(t, app, http.MethodGet, "/api/stock", "Bearer "+login.Token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Password incorrecto no revela si el usuario existe.
	resp2 := doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email: "bodega@almacen.local", Password: "incorrecto",
	})
	require.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
	errBody := decode[dto.ErrorResponse](t, resp2)
	assert.Equal(t, "INVALID_CREDENTIALS", errBody.Code)
}
