package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-ledger-api/internal/application/auth"
	"github.com/jhoicas/pos-ledger-api/internal/application/inventory"
	"github.com/jhoicas/pos-ledger-api/internal/application/orders"
	"github.com/jhoicas/pos-ledger-api/internal/application/purchases"
	"github.com/jhoicas/pos-ledger-api/internal/application/ratelimit"
	"github.com/jhoicas/pos-ledger-api/internal/application/sales"
	"github.com/jhoicas/pos-ledger-api/internal/application/usecase"
	"github.com/jhoicas/pos-ledger-api/internal/infrastructure/ledgerstore"
	infrapdf "github.com/jhoicas/pos-ledger-api/internal/infrastructure/pdf"
	approuter "github.com/jhoicas/pos-ledger-api/internal/interfaces/http"
	"github.com/jhoicas/pos-ledger-api/pkg/keylock"
	"github.com/jhoicas/pos-ledger-api/pkg/logger"
)

// buildFullApp cablea la API completa sobre el almacén en memoria, igual que
// cmd/api pero sin servidor.
func buildFullApp(t *testing.T) *fiber.App {
	t.Helper()

	store := ledgerstore.NewMemoryStore()
	productRepo := ledgerstore.NewProductRepository(store)
	historyRepo := ledgerstore.NewStockHistoryRepository(store)
	transactionRepo := ledgerstore.NewTransactionRepository(store)
	orderRepo := ledgerstore.NewOrderRepository(store)
	purchaseRepo := ledgerstore.NewPurchaseRepository(store)
	userRepo := ledgerstore.NewUserRepository(store)

	locks := keylock.New()
	log := logger.Nop()
	stockLedgerUC := inventory.NewStockLedgerUseCase(locks, productRepo, historyRepo, log)
	transactionUC := sales.NewTransactionUseCase(stockLedgerUC, productRepo, transactionRepo, infrapdf.NewReceiptGenerator("Tienda de prueba"), log)
	orderUC := orders.NewOrderUseCase(locks, orderRepo, productRepo, stockLedgerUC, log)
	purchaseUC := purchases.NewPurchaseUseCase(purchaseRepo)
	productUC := usecase.NewProductUseCase(productRepo, stockLedgerUC, log)
	reportUC := usecase.NewReportUseCase(transactionRepo, productRepo)
	limiter := ratelimit.New(ratelimit.DefaultConfig(), nil)
	authUC := auth.NewAuthUseCase(userRepo, limiter, auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: testExpMin,
		Issuer:     testIssuer,
	}, log)

	app := fiber.New()
	approuter.Router(app, approuter.RouterDeps{
		AuthUC:        authUC,
		ProductUC:     productUC,
		ReportUC:      reportUC,
		StockLedger:   stockLedgerUC,
		TransactionUC: transactionUC,
		OrderUC:       orderUC,
		PurchaseUC:    purchaseUC,
		JWTSecret:     testJWTSecret,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// El recibo PDF se sirve en GET /api/transactions/:id/pdf, la misma ruta que
// publica docs/swagger.json.
func TestRouter_RecibosPDFEnRutaPdf(t *testing.T) {
	app := buildFullApp(t)
	admin := tokenForRole(t, "admin")

	resp := doJSON(t, app, http.MethodPost, "/api/products/", admin, fiber.Map{
		"name":          "Café 500g",
		"selling_price": "10",
		"cost_price":    "4",
		"initial_stock": 5,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var product struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&product))
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/transactions/", admin, fiber.Map{
		"items": []fiber.Map{{"product_id": product.ID, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var tx struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tx))
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/transactions/"+tx.ID+"/pdf", admin, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")), "el cuerpo debe ser un PDF")
}

// Los reportes responden para admin/gerente y rechazan a cajero.
func TestRouter_ReportesRespondenConRBAC(t *testing.T) {
	app := buildFullApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/reports/sales?from=2025-06-01&to=2025-06-02", tokenForRole(t, "gerente"), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp2 := doJSON(t, app, http.MethodGet, "/api/reports/stock", tokenForRole(t, "cajero"), nil)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp2.StatusCode)
}
