package repository

import (
	"context"

	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

// Puertos de persistencia tipados sobre el LedgerStore. Las implementaciones
// viven en internal/infrastructure/ledgerstore y devuelven domain.ErrNotFound
// cuando el documento no existe.

// ProductRepository persistencia de productos.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Save(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Product, error)
}

// StockHistoryRepository persistencia del libro de inventario (append-only:
// los asientos nunca se actualizan ni se borran).
type StockHistoryRepository interface {
	Append(ctx context.Context, e *entity.StockHistoryEntry) error
	List(ctx context.Context) ([]*entity.StockHistoryEntry, error)
}

// TransactionRepository persistencia de recibos de venta.
type TransactionRepository interface {
	Save(ctx context.Context, t *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	List(ctx context.Context) ([]*entity.Transaction, error)
}

// OrderRepository persistencia de pedidos.
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	Save(ctx context.Context, o *entity.Order) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Order, error)
}

// PurchaseRepository persistencia de compras a proveedor.
type PurchaseRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	Save(ctx context.Context, p *entity.Purchase) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Purchase, error)
}

// UserRepository persistencia de usuarios.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Save(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.User, error)
}
