package ledgerstore

import (
	"context"
	"encoding/json"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación del puerto PurchaseRepository sobre el Ledger Store.
type PurchaseRepo struct {
	store repository.LedgerStore
}

// NewPurchaseRepository construye el adaptador.
func NewPurchaseRepository(store repository.LedgerStore) *PurchaseRepo {
	return &PurchaseRepo{store: store}
}

// GetByID obtiene una compra por ID. ErrNotFound si no existe.
func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	var p entity.Purchase
	if err := getJSON(ctx, r.store, prefixPurchase+id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Save persiste una compra.
func (r *PurchaseRepo) Save(ctx context.Context, p *entity.Purchase) error {
	return setJSON(ctx, r.store, prefixPurchase+p.ID, p)
}

// Delete elimina una compra por ID.
func (r *PurchaseRepo) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, prefixPurchase+id)
}

// List devuelve todas las compras.
func (r *PurchaseRepo) List(ctx context.Context) ([]*entity.Purchase, error) {
	docs, err := r.store.ScanByPrefix(ctx, prefixPurchase)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Purchase, 0, len(docs))
	for _, doc := range docs {
		var p entity.Purchase
		if err := json.Unmarshal(doc, &p); err != nil {
			return nil, domain.StoreFailure("unmarshal purchase", err)
		}
		out = append(out, &p)
	}
	return out, nil
}
