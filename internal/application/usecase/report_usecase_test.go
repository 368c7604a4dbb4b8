package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/infrastructure/ledgerstore"
)

func newReportFixture(t *testing.T) (*ReportUseCase, *ledgerstore.TransactionRepo, *ledgerstore.ProductRepo) {
	t.Helper()
	store := ledgerstore.NewMemoryStore()
	transactions := ledgerstore.NewTransactionRepository(store)
	products := ledgerstore.NewProductRepository(store)
	return NewReportUseCase(transactions, products), transactions, products
}

func seedTx(t *testing.T, repo *ledgerstore.TransactionRepo, id, date string, total, cogs int64, items []entity.TransactionItem) {
	t.Helper()
	totalDec := decimal.NewFromInt(total)
	cogsDec := decimal.NewFromInt(cogs)
	ts, _ := time.Parse("2006-01-02", date)
	require.NoError(t, repo.Save(context.Background(), &entity.Transaction{
		ID:        id,
		Items:     items,
		Subtotal:  totalDec,
		Total:     totalDec,
		COGS:      cogsDec,
		Profit:    totalDec.Sub(cogsDec),
		Timestamp: ts,
		Date:      date,
	}))
}

func TestSalesSummary_AgregaPorPeriodoYPorDia(t *testing.T) {
	uc, txRepo, _ := newReportFixture(t)

	cafe := []entity.TransactionItem{{ProductID: "p-1", ProductName: "Café 500g", Quantity: 2, LineTotal: decimal.NewFromInt(20)}}
	pan := []entity.TransactionItem{{ProductID: "p-2", ProductName: "Pan integral", Quantity: 5, LineTotal: decimal.NewFromInt(25)}}

	seedTx(t, txRepo, "t-1", "2025-06-01", 20, 8, cafe)
	seedTx(t, txRepo, "t-2", "2025-06-01", 25, 10, pan)
	seedTx(t, txRepo, "t-3", "2025-06-02", 20, 8, cafe)
	seedTx(t, txRepo, "t-4", "2025-06-05", 20, 8, cafe) // fuera del rango

	summary, err := uc.SalesSummary(context.Background(), "2025-06-01", "2025-06-03")
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Transactions)
	assert.True(t, summary.Revenue.Equal(decimal.NewFromInt(65)))
	assert.True(t, summary.COGS.Equal(decimal.NewFromInt(26)))
	assert.True(t, summary.Profit.Equal(decimal.NewFromInt(39)))

	require.Len(t, summary.Days, 2, "solo los días con ventas aparecen")
	assert.Equal(t, "2025-06-01", summary.Days[0].Date)
	assert.Equal(t, 2, summary.Days[0].Transactions)
	assert.True(t, summary.Days[0].Revenue.Equal(decimal.NewFromInt(45)))
	assert.Equal(t, "2025-06-02", summary.Days[1].Date)

	// Top por unidades vendidas: pan (5) sobre café (4)
	require.Len(t, summary.TopProducts, 2)
	assert.Equal(t, "Pan integral", summary.TopProducts[0].ProductName)
	assert.Equal(t, 5, summary.TopProducts[0].UnitsSold)
	assert.Equal(t, "Café 500g", summary.TopProducts[1].ProductName)
	assert.Equal(t, 4, summary.TopProducts[1].UnitsSold)
}

func TestSalesSummary_RangoInvalido(t *testing.T) {
	uc, _, _ := newReportFixture(t)
	ctx := context.Background()

	_, err := uc.SalesSummary(ctx, "", "2025-06-03")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.SalesSummary(ctx, "2025-06-05", "2025-06-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "from posterior a to")
}

func TestStockReport_FiltraPorUmbralYOrdenaAscendente(t *testing.T) {
	uc, _, products := newReportFixture(t)
	ctx := context.Background()
	now := time.Now()

	for _, p := range []struct {
		id    string
		name  string
		stock int
	}{
		{"p-1", "Café 500g", 12},
		{"p-2", "Pan integral", 0},
		{"p-3", "Leche entera", 5},
		{"p-4", "Azúcar", 3},
	} {
		require.NoError(t, products.Save(ctx, &entity.Product{
			ID: p.id, Name: p.name, Stock: p.stock,
			SellingPrice: decimal.NewFromInt(1), CostPrice: decimal.NewFromInt(1),
			CreatedAt: now, UpdatedAt: now,
		}))
	}

	alerts, err := uc.StockReport(ctx, 5)
	require.NoError(t, err)
	require.Len(t, alerts, 3)
	assert.Equal(t, "Pan integral", alerts[0].ProductName)
	assert.Equal(t, 0, alerts[0].Stock)
	assert.Equal(t, "Azúcar", alerts[1].ProductName)
	assert.Equal(t, "Leche entera", alerts[2].ProductName)

	_, err = uc.StockReport(ctx, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
