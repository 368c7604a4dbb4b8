package ledgerstore

import (
	"context"
	"encoding/json"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre el Ledger Store.
type ProductRepo struct {
	store repository.LedgerStore
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(store repository.LedgerStore) *ProductRepo {
	return &ProductRepo{store: store}
}

// GetByID obtiene un producto por ID. ErrNotFound si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var p entity.Product
	if err := getJSON(ctx, r.store, prefixProduct+id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Save persiste (crea o reemplaza) un producto.
func (r *ProductRepo) Save(ctx context.Context, p *entity.Product) error {
	return setJSON(ctx, r.store, prefixProduct+p.ID, p)
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, prefixProduct+id)
}

// List devuelve todos los productos del catálogo.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	docs, err := r.store.ScanByPrefix(ctx, prefixProduct)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Product, 0, len(docs))
	for _, doc := range docs {
		var p entity.Product
		if err := json.Unmarshal(doc, &p); err != nil {
			return nil, domain.StoreFailure("unmarshal product", err)
		}
		out = append(out, &p)
	}
	return out, nil
}
