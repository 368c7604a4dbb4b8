package ledgerstore

import (
	"context"
	"encoding/json"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre el Ledger Store.
type OrderRepo struct {
	store repository.LedgerStore
}

// NewOrderRepository construye el adaptador.
func NewOrderRepository(store repository.LedgerStore) *OrderRepo {
	return &OrderRepo{store: store}
}

// GetByID obtiene un pedido por ID. ErrNotFound si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var o entity.Order
	if err := getJSON(ctx, r.store, prefixOrder+id, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Save persiste (crea o reemplaza) un pedido.
func (r *OrderRepo) Save(ctx context.Context, o *entity.Order) error {
	return setJSON(ctx, r.store, prefixOrder+o.ID, o)
}

// Delete elimina un pedido por ID.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, prefixOrder+id)
}

// List devuelve todos los pedidos.
func (r *OrderRepo) List(ctx context.Context) ([]*entity.Order, error) {
	docs, err := r.store.ScanByPrefix(ctx, prefixOrder)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Order, 0, len(docs))
	for _, doc := range docs {
		var o entity.Order
		if err := json.Unmarshal(doc, &o); err != nil {
			return nil, domain.StoreFailure("unmarshal order", err)
		}
		out = append(out, &o)
	}
	return out, nil
}
