package ledgerstore

import (
	"context"
	"encoding/json"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

// Prefijos de clave persistidos. Deben permanecer estables: los scans por
// prefijo del Ledger Store dependen de ellos.
const (
	prefixProduct      = "product:"
	prefixTransaction  = "transaction:"
	prefixStockHistory = "stock_history:"
	prefixOrder        = "order:"
	prefixPurchase     = "purchase:"
	prefixUser         = "user:"
)

// setJSON serializa y guarda un documento bajo la clave dada.
func setJSON(ctx context.Context, store repository.LedgerStore, key string, v any) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return domain.StoreFailure("marshal "+key, err)
	}
	return store.Set(ctx, key, doc)
}

// getJSON lee y deserializa el documento de la clave dada en out.
func getJSON(ctx context.Context, store repository.LedgerStore, key string, out any) error {
	doc, err := store.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(doc, out); err != nil {
		return domain.StoreFailure("unmarshal "+key, err)
	}
	return nil
}
