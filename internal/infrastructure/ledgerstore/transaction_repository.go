package ledgerstore

import (
	"context"
	"encoding/json"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del puerto TransactionRepository sobre el
// Ledger Store. Los recibos son inmutables: solo Save al crear.
type TransactionRepo struct {
	store repository.LedgerStore
}

// NewTransactionRepository construye el adaptador.
func NewTransactionRepository(store repository.LedgerStore) *TransactionRepo {
	return &TransactionRepo{store: store}
}

// Save persiste un recibo de venta.
func (r *TransactionRepo) Save(ctx context.Context, t *entity.Transaction) error {
	return setJSON(ctx, r.store, prefixTransaction+t.ID, t)
}

// GetByID obtiene un recibo por ID. ErrNotFound si no existe.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var t entity.Transaction
	if err := getJSON(ctx, r.store, prefixTransaction+id, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// List devuelve todos los recibos.
func (r *TransactionRepo) List(ctx context.Context) ([]*entity.Transaction, error) {
	docs, err := r.store.ScanByPrefix(ctx, prefixTransaction)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Transaction, 0, len(docs))
	for _, doc := range docs {
		var t entity.Transaction
		if err := json.Unmarshal(doc, &t); err != nil {
			return nil, domain.StoreFailure("unmarshal transaction", err)
		}
		out = append(out, &t)
	}
	return out, nil
}
