package ledgerstore

import (
	"context"
	"encoding/json"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

var _ repository.StockHistoryRepository = (*StockHistoryRepo)(nil)

// StockHistoryRepo implementación append-only del libro de inventario sobre el
// Ledger Store. Los asientos nunca se actualizan ni se borran.
type StockHistoryRepo struct {
	store repository.LedgerStore
}

// NewStockHistoryRepository construye el adaptador.
func NewStockHistoryRepository(store repository.LedgerStore) *StockHistoryRepo {
	return &StockHistoryRepo{store: store}
}

// Append agrega un asiento inmutable al libro.
func (r *StockHistoryRepo) Append(ctx context.Context, e *entity.StockHistoryEntry) error {
	return setJSON(ctx, r.store, prefixStockHistory+e.ID, e)
}

// List devuelve todos los asientos. El orden del scan no es significativo; los
// casos de uso re-ordenan por Timestamp.
func (r *StockHistoryRepo) List(ctx context.Context) ([]*entity.StockHistoryEntry, error) {
	docs, err := r.store.ScanByPrefix(ctx, prefixStockHistory)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.StockHistoryEntry, 0, len(docs))
	for _, doc := range docs {
		var e entity.StockHistoryEntry
		if err := json.Unmarshal(doc, &e); err != nil {
			return nil, domain.StoreFailure("unmarshal stock_history", err)
		}
		out = append(out, &e)
	}
	return out, nil
}
