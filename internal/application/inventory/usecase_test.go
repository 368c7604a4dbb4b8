package inventory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/infrastructure/ledgerstore"
	"github.com/jhoicas/pos-ledger-api/pkg/keylock"
	"github.com/jhoicas/pos-ledger-api/pkg/logger"
)

var testActor = entity.Actor{UserID: "u-1", UserName: "Ana", Role: entity.RoleGerente}

// newTestLedger arma el caso de uso sobre el store en memoria.
func newTestLedger(t *testing.T) (*StockLedgerUseCase, *ledgerstore.ProductRepo, *ledgerstore.StockHistoryRepo) {
	t.Helper()
	store := ledgerstore.NewMemoryStore()
	products := ledgerstore.NewProductRepository(store)
	history := ledgerstore.NewStockHistoryRepository(store)
	uc := NewStockLedgerUseCase(keylock.New(), products, history, logger.Nop())
	return uc, products, history
}

func seedProduct(t *testing.T, products *ledgerstore.ProductRepo, id string, stock int) {
	t.Helper()
	now := time.Now()
	err := products.Save(context.Background(), &entity.Product{
		ID:           id,
		Name:         "Café 500g",
		Category:     "abarrotes",
		SellingPrice: decimal.NewFromInt(10),
		CostPrice:    decimal.NewFromInt(4),
		Stock:        stock,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
}

func TestAdjust_DeltaPositivo_IncrementaYRegistraAsiento(t *testing.T) {
	uc, products, _ := newTestLedger(t)
	seedProduct(t, products, "p-1", 10)

	product, entry, err := uc.Adjust(context.Background(), AdjustInput{
		ProductID: "p-1",
		Delta:     5,
		Type:      entity.StockChangeAdjustment,
		Actor:     testActor,
		Reason:    "Reposición",
	})

	require.NoError(t, err)
	assert.Equal(t, 15, product.Stock)
	assert.Equal(t, 5, entry.Change)
	assert.Equal(t, entity.StockChangeAdjustment, entry.Type)
	assert.Equal(t, "Ana", entry.UserName)
	assert.Equal(t, "Café 500g", entry.ProductName)
}

func TestAdjust_SinClamp_StockInsuficiente_NoMutaNada(t *testing.T) {
	uc, products, _ := newTestLedger(t)
	seedProduct(t, products, "p-1", 3)

	_, _, err := uc.Adjust(context.Background(), AdjustInput{
		ProductID: "p-1",
		Delta:     -5,
		Type:      entity.StockChangeTransaction,
		Actor:     testActor,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	stock, err := uc.Availability(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, 3, stock, "el stock no debe cambiar tras un ajuste rechazado")

	entries, err := uc.History(context.Background(), "p-1", 0)
	require.NoError(t, err)
	assert.Empty(t, entries, "un ajuste rechazado no deja asiento")
}

func TestAdjust_ConClamp_RecortaACeroYRegistraDeltaEfectivo(t *testing.T) {
	uc, products, _ := newTestLedger(t)
	seedProduct(t, products, "p-1", 3)

	product, entry, err := uc.Adjust(context.Background(), AdjustInput{
		ProductID: "p-1",
		Delta:     -10,
		Type:      entity.StockChangeAdjustment,
		Actor:     testActor,
		Reason:    "Merma",
		Clamp:     true,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, product.Stock)
	assert.Equal(t, -3, entry.Change, "el asiento registra el delta efectivo, no el solicitado")
}

func TestAdjust_EntradasInvalidas(t *testing.T) {
	uc, products, _ := newTestLedger(t)
	seedProduct(t, products, "p-1", 10)
	ctx := context.Background()

	cases := []struct {
		name string
		in   AdjustInput
	}{
		{"producto vacío", AdjustInput{Delta: 1, Type: entity.StockChangeAdjustment, Actor: testActor}},
		{"delta cero", AdjustInput{ProductID: "p-1", Type: entity.StockChangeAdjustment, Actor: testActor}},
		{"actor anónimo", AdjustInput{ProductID: "p-1", Delta: 1, Type: entity.StockChangeAdjustment}},
		{"tipo desconocido", AdjustInput{ProductID: "p-1", Delta: 1, Type: "otro", Actor: testActor}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := uc.Adjust(ctx, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestAdjust_ProductoInexistente_RetornaNotFound(t *testing.T) {
	uc, _, _ := newTestLedger(t)

	_, _, err := uc.Adjust(context.Background(), AdjustInput{
		ProductID: "no-existe",
		Delta:     1,
		Type:      entity.StockChangeAdjustment,
		Actor:     testActor,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// La reconciliación: stock actual == suma de los Change del historial desde la
// creación (el producto nace con stock 0 en este escenario).
func TestAdjust_Reconciliacion_StockIgualASumaDeAsientos(t *testing.T) {
	uc, products, _ := newTestLedger(t)
	seedProduct(t, products, "p-1", 0)
	ctx := context.Background()

	deltas := []int{20, -5, 7, -3, -6}
	for _, d := range deltas {
		_, _, err := uc.Adjust(ctx, AdjustInput{
			ProductID: "p-1",
			Delta:     d,
			Type:      entity.StockChangeAdjustment,
			Actor:     testActor,
		})
		require.NoError(t, err)
	}

	stock, err := uc.Availability(ctx, "p-1")
	require.NoError(t, err)

	entries, err := uc.History(ctx, "p-1", 0)
	require.NoError(t, err)

	sum := 0
	for _, e := range entries {
		sum += e.Change
	}
	assert.Equal(t, stock, sum, "la suma de asientos debe reconstruir el stock")
	assert.Equal(t, 13, stock)
}

// Tormenta de decrementos concurrentes: con stock N y N goroutines descontando
// 1, todas deben aplicar sin lost updates y el stock final es 0.
func TestAdjust_DecrementosConcurrentes_SinLostUpdates(t *testing.T) {
	const n = 50
	uc, products, _ := newTestLedger(t)
	seedProduct(t, products, "p-1", n)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := uc.Adjust(ctx, AdjustInput{
				ProductID: "p-1",
				Delta:     -1,
				Type:      entity.StockChangeTransaction,
				Actor:     testActor,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stock, err := uc.Availability(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 0, stock)

	entries, err := uc.History(ctx, "p-1", 0)
	require.NoError(t, err)
	assert.Len(t, entries, n, "cada decremento debe dejar su asiento")
}

func TestAdjustBatch_DescuentaTodasLasLineas(t *testing.T) {
	uc, products, _ := newTestLedger(t)
	seedProduct(t, products, "p-1", 10)
	seedProduct(t, products, "p-2", 10)
	ctx := context.Background()

	entries, err := uc.AdjustBatch(ctx, []Line{
		{ProductID: "p-1", Quantity: 2},
		{ProductID: "p-2", Quantity: 3},
	}, entity.StockChangeTransaction, testActor, "Venta")

	require.NoError(t, err)
	require.Len(t, entries, 2)

	s1, _ := uc.Availability(ctx, "p-1")
	s2, _ := uc.Availability(ctx, "p-2")
	assert.Equal(t, 8, s1)
	assert.Equal(t, 7, s2)
}

// Todo-o-nada: si una línea no tiene stock, ninguna línea del lote se aplica,
// ni siquiera las que sí tenían disponibilidad.
func TestAdjustBatch_LineaInsuficiente_NadaSeMuta(t *testing.T) {
	uc, products, _ := newTestLedger(t)
	seedProduct(t, products, "p-1", 10)
	seedProduct(t, products, "p-2", 1)
	ctx := context.Background()

	_, err := uc.AdjustBatch(ctx, []Line{
		{ProductID: "p-1", Quantity: 2},
		{ProductID: "p-2", Quantity: 5},
	}, entity.StockChangeTransaction, testActor, "Venta")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	s1, _ := uc.Availability(ctx, "p-1")
	s2, _ := uc.Availability(ctx, "p-2")
	assert.Equal(t, 10, s1, "la línea con stock suficiente tampoco debe aplicarse")
	assert.Equal(t, 1, s2)

	entries, err := uc.History(ctx, "", 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// Un mismo producto repetido en el lote valida por cantidad acumulada.
func TestAdjustBatch_ProductoRepetido_ValidaAcumulado(t *testing.T) {
	uc, products, _ := newTestLedger(t)
	seedProduct(t, products, "p-1", 5)
	ctx := context.Background()

	_, err := uc.AdjustBatch(ctx, []Line{
		{ProductID: "p-1", Quantity: 3},
		{ProductID: "p-1", Quantity: 3},
	}, entity.StockChangeTransaction, testActor, "Venta")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	stock, _ := uc.Availability(ctx, "p-1")
	assert.Equal(t, 5, stock, "3+3 > 5: el lote completo debe rechazarse sin mutación parcial")
}

func TestAdjustBatch_LotesConcurrentes_NuncaSobrevenden(t *testing.T) {
	uc, products, _ := newTestLedger(t)
	seedProduct(t, products, "p-1", 10)
	seedProduct(t, products, "p-2", 10)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	applied := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.AdjustBatch(ctx, []Line{
				{ProductID: "p-1", Quantity: 2},
				{ProductID: "p-2", Quantity: 2},
			}, entity.StockChangeTransaction, testActor, "Venta")
			if err == nil {
				mu.Lock()
				applied++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, applied, "solo caben 5 lotes de 2 unidades en stock 10")
	s1, _ := uc.Availability(ctx, "p-1")
	s2, _ := uc.Availability(ctx, "p-2")
	assert.Equal(t, 0, s1)
	assert.Equal(t, 0, s2)
}

func TestHistory_OrdenDescendenteYLimite(t *testing.T) {
	uc, products, _ := newTestLedger(t)
	seedProduct(t, products, "p-1", 0)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	i := 0
	uc.now = func() time.Time {
		i++
		return base.Add(time.Duration(i) * time.Minute)
	}

	for j := 0; j < 5; j++ {
		_, _, err := uc.Adjust(ctx, AdjustInput{
			ProductID: "p-1",
			Delta:     1,
			Type:      entity.StockChangeAdjustment,
			Actor:     testActor,
		})
		require.NoError(t, err)
	}

	entries, err := uc.History(ctx, "p-1", 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.True(t, entries[0].Timestamp.After(entries[1].Timestamp))
	assert.True(t, entries[1].Timestamp.After(entries[2].Timestamp))
}
