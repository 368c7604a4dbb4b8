package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/pos-ledger-api/internal/application/dto"
	"github.com/jhoicas/pos-ledger-api/internal/application/inventory"
	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
	"github.com/jhoicas/pos-ledger-api/pkg/id"
	"github.com/jhoicas/pos-ledger-api/pkg/logger"
)

// ProductUseCase CRUD del catálogo. El stock no se muta por aquí: el stock
// inicial entra como ajuste del libro de inventario y toda mutación posterior
// pasa por el StockLedgerUseCase.
type ProductUseCase struct {
	products repository.ProductRepository
	ledger   *inventory.StockLedgerUseCase
	log      *logger.Logger
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso de productos.
func NewProductUseCase(products repository.ProductRepository, ledger *inventory.StockLedgerUseCase, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{products: products, ledger: ledger, log: log, now: time.Now}
}

// Create registra el producto con stock 0 y, si hay stock inicial, lo aplica
// como ajuste del libro. Así la reconciliación (stock == suma de asientos) se
// cumple desde la creación.
func (uc *ProductUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateProductRequest) (*entity.Product, error) {
	if strings.TrimSpace(in.Name) == "" || actor.Anonymous() {
		return nil, domain.ErrInvalidInput
	}
	if in.SellingPrice.IsNegative() || in.CostPrice.IsNegative() || in.InitialStock < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := uc.now()
	product := &entity.Product{
		ID:           id.NewAt(now),
		Name:         strings.TrimSpace(in.Name),
		Category:     in.Category,
		SellingPrice: in.SellingPrice,
		CostPrice:    in.CostPrice,
		Stock:        0,
		Description:  in.Description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.products.Save(ctx, product); err != nil {
		return nil, err
	}

	if in.InitialStock > 0 {
		updated, _, err := uc.ledger.Adjust(ctx, inventory.AdjustInput{
			ProductID: product.ID,
			Delta:     in.InitialStock,
			Type:      entity.StockChangeAdjustment,
			Actor:     actor,
			Reason:    "Stock inicial",
		})
		if err != nil {
			uc.log.Error().Err(err).Str("product_id", product.ID).Msg("stock inicial no aplicado")
			return nil, err
		}
		product = updated
	}

	uc.log.Info().Str("product_id", product.ID).Str("name", product.Name).Msg("producto creado")
	return product, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, productID string) (*entity.Product, error) {
	return uc.products.GetByID(ctx, productID)
}

// List devuelve el catálogo ordenado por nombre, filtrable por categoría.
func (uc *ProductUseCase) List(ctx context.Context, category string) ([]*entity.Product, error) {
	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	if category != "" {
		filtered := make([]*entity.Product, 0, len(products))
		for _, p := range products {
			if strings.EqualFold(p.Category, category) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}
	sort.Slice(products, func(i, j int) bool {
		return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
	})
	return products, nil
}

// Update aplica un patch de nombre, categoría, precios o descripción. Stock
// nunca se toca aquí.
func (uc *ProductUseCase) Update(ctx context.Context, productID string, in dto.UpdateProductRequest) (*entity.Product, error) {
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		product.Name = strings.TrimSpace(in.Name)
	}
	if in.Category != "" {
		product.Category = in.Category
	}
	if in.SellingPrice != nil {
		if in.SellingPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.SellingPrice = *in.SellingPrice
	}
	if in.CostPrice != nil {
		if in.CostPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.CostPrice = *in.CostPrice
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	product.UpdatedAt = uc.now()
	if err := uc.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete elimina un producto del catálogo. Los asientos del libro y los
// recibos que lo referencian conservan sus snapshots.
func (uc *ProductUseCase) Delete(ctx context.Context, productID string) error {
	if _, err := uc.products.GetByID(ctx, productID); err != nil {
		return err
	}
	return uc.products.Delete(ctx, productID)
}
