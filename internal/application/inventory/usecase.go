package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
	"github.com/jhoicas/pos-ledger-api/pkg/id"
	"github.com/jhoicas/pos-ledger-api/pkg/keylock"
	"github.com/jhoicas/pos-ledger-api/pkg/logger"
)

// StockLedgerUseCase es el único camino por el que se muta el stock de un
// producto y el único escritor del libro de inventario. Serializa las
// mutaciones por producto con locks por clave: dos Adjust concurrentes sobre el
// mismo producto nunca se pisan (lost update), y productos distintos proceden
// en paralelo.
type StockLedgerUseCase struct {
	locks    *keylock.KeyLock
	products repository.ProductRepository
	history  repository.StockHistoryRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewStockLedgerUseCase construye el libro de inventario.
func NewStockLedgerUseCase(
	locks *keylock.KeyLock,
	products repository.ProductRepository,
	history repository.StockHistoryRepository,
	log *logger.Logger,
) *StockLedgerUseCase {
	return &StockLedgerUseCase{
		locks:    locks,
		products: products,
		history:  history,
		log:      log,
		now:      time.Now,
	}
}

// AdjustInput parámetros de una mutación de stock.
// Clamp=true (correcciones manuales): un delta que dejaría stock negativo se
// recorta a 0 y el asiento registra el delta efectivo, preservando la
// reconciliación. Clamp=false (ventas, despachos): stock insuficiente falla
// con ErrInsufficientStock sin mutar nada.
type AdjustInput struct {
	ProductID string
	Delta     int
	Type      string // transaction, order, adjustment
	Actor     entity.Actor
	Reason    string
	Clamp     bool
}

// Line línea de una mutación multi-producto (AdjustBatch).
type Line struct {
	ProductID string
	Quantity  int // cantidad a descontar, > 0
}

func lockKey(productID string) string { return "product:" + productID }

// Adjust aplica un delta al stock de un producto y agrega el asiento
// correspondiente al libro. Escritura de producto y asiento se tratan como una
// unidad lógica: si el append del asiento falla, se restaura el documento
// anterior del producto (compensación) y la operación reporta fallo.
func (uc *StockLedgerUseCase) Adjust(ctx context.Context, in AdjustInput) (*entity.Product, *entity.StockHistoryEntry, error) {
	if in.ProductID == "" || in.Delta == 0 || in.Actor.Anonymous() {
		return nil, nil, domain.ErrInvalidInput
	}
	switch in.Type {
	case entity.StockChangeTransaction, entity.StockChangeOrder, entity.StockChangeAdjustment:
	default:
		return nil, nil, domain.ErrInvalidInput
	}

	key := lockKey(in.ProductID)
	uc.locks.Lock(key)
	defer uc.locks.Unlock(key)

	return uc.adjustLocked(ctx, in)
}

// adjustLocked ejecuta la mutación asumiendo que el lock del producto ya fue
// adquirido por el caller.
func (uc *StockLedgerUseCase) adjustLocked(ctx context.Context, in AdjustInput) (*entity.Product, *entity.StockHistoryEntry, error) {
	product, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, nil, err
	}

	previous := *product
	newStock := product.Stock + in.Delta
	effectiveDelta := in.Delta
	if newStock < 0 {
		if !in.Clamp {
			return nil, nil, domain.ErrInsufficientStock
		}
		// Corrección manual: recortar a 0 y registrar el delta efectivo
		effectiveDelta = -product.Stock
		newStock = 0
	}

	now := uc.now()
	product.Stock = newStock
	product.UpdatedAt = now
	if err := uc.products.Save(ctx, product); err != nil {
		return nil, nil, err
	}

	entry := &entity.StockHistoryEntry{
		ID:          id.NewAt(now),
		ProductID:   product.ID,
		ProductName: product.Name,
		Change:      effectiveDelta,
		Type:        in.Type,
		Timestamp:   now,
		UserID:      in.Actor.UserID,
		UserName:    in.Actor.UserName,
		Reason:      in.Reason,
	}
	if err := uc.history.Append(ctx, entry); err != nil {
		// Compensación: revertir el stock para no dejarlo sin asiento que lo respalde
		if restoreErr := uc.products.Save(ctx, &previous); restoreErr != nil {
			uc.log.Error().Err(restoreErr).
				Str("product_id", product.ID).
				Int("stock", previous.Stock).
				Msg("compensación de stock fallida: libro y contador divergen")
		}
		return nil, nil, err
	}

	return product, entry, nil
}

// AdjustBatch descuenta stock de varias líneas como unidad todo-o-nada:
// adquiere los locks de todos los productos involucrados en orden lexicográfico
// (evita deadlocks entre lotes concurrentes), valida la disponibilidad de cada
// línea antes de mutar nada y recién entonces aplica los descuentos. Si una
// escritura intermedia falla, compensa las líneas ya aplicadas. Nunca queda
// visible un descuento parcial por insuficiencia de stock.
func (uc *StockLedgerUseCase) AdjustBatch(
	ctx context.Context,
	lines []Line,
	changeType string,
	actor entity.Actor,
	reason string,
) ([]*entity.StockHistoryEntry, error) {
	if len(lines) == 0 || actor.Anonymous() {
		return nil, domain.ErrInvalidInput
	}
	for _, l := range lines {
		if l.ProductID == "" || l.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	// Claves únicas en orden lexicográfico
	keySet := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		keySet[lockKey(l.ProductID)] = struct{}{}
	}
	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	uc.locks.LockAll(keys)
	defer uc.locks.UnlockAll(keys)

	// Fase 1: validar todas las líneas contra el stock actual (acumulando
	// cantidades cuando un producto se repite en el lote)
	needed := make(map[string]int, len(lines))
	for _, l := range lines {
		needed[l.ProductID] += l.Quantity
	}
	for pid, qty := range needed {
		p, err := uc.products.GetByID(ctx, pid)
		if err != nil {
			return nil, err
		}
		if p.Stock < qty {
			return nil, domain.ErrInsufficientStock
		}
	}

	// Fase 2: aplicar línea por línea; compensar lo aplicado si algo falla
	entries := make([]*entity.StockHistoryEntry, 0, len(lines))
	for i, l := range lines {
		_, entry, err := uc.adjustLocked(ctx, AdjustInput{
			ProductID: l.ProductID,
			Delta:     -l.Quantity,
			Type:      changeType,
			Actor:     actor,
			Reason:    reason,
		})
		if err != nil {
			uc.compensate(ctx, lines[:i], changeType, actor)
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// compensate revierte los descuentos ya aplicados de un lote fallido, dejando
// asientos de ajuste que documentan la reversión. Best effort: un fallo aquí
// solo se loguea (el backend ya está fallando).
func (uc *StockLedgerUseCase) compensate(ctx context.Context, applied []Line, changeType string, actor entity.Actor) {
	for _, l := range applied {
		_, _, err := uc.adjustLocked(ctx, AdjustInput{
			ProductID: l.ProductID,
			Delta:     l.Quantity,
			Type:      entity.StockChangeAdjustment,
			Actor:     actor,
			Reason:    "Reversión de " + changeType + " fallido",
		})
		if err != nil {
			uc.log.Error().Err(err).
				Str("product_id", l.ProductID).
				Int("quantity", l.Quantity).
				Msg("compensación de lote fallida")
		}
	}
}

// Availability devuelve el stock actual de un producto. Lectura pura.
func (uc *StockLedgerUseCase) Availability(ctx context.Context, productID string) (int, error) {
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	return product.Stock, nil
}

// maxHistoryLimit techo de asientos devueltos por History.
const maxHistoryLimit = 500

// History devuelve los asientos del libro ordenados por Timestamp descendente,
// opcionalmente filtrados por producto y limitados en cantidad.
func (uc *StockLedgerUseCase) History(ctx context.Context, productID string, limit int) ([]*entity.StockHistoryEntry, error) {
	entries, err := uc.history.List(ctx)
	if err != nil {
		return nil, err
	}
	if productID != "" {
		filtered := make([]*entity.StockHistoryEntry, 0, len(entries))
		for _, e := range entries {
			if e.ProductID == productID {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	if limit <= 0 || limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
