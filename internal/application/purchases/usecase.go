package purchases

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-ledger-api/internal/application/dto"
	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
	"github.com/jhoicas/pos-ledger-api/pkg/id"
)

// PurchaseUseCase compras a proveedor: crear, listar, consultar y eliminar.
// Una compra es inmutable salvo su eliminación.
type PurchaseUseCase struct {
	purchases repository.PurchaseRepository
	now       func() time.Time
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(purchases repository.PurchaseRepository) *PurchaseUseCase {
	return &PurchaseUseCase{purchases: purchases, now: time.Now}
}

// Create registra una compra con totales calculados por línea.
func (uc *PurchaseUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreatePurchaseRequest) (*entity.Purchase, error) {
	if len(in.Items) == 0 || actor.Anonymous() {
		return nil, domain.ErrInvalidInput
	}
	items := make([]entity.PurchaseItem, 0, len(in.Items))
	total := decimal.Zero
	for _, item := range in.Items {
		if item.ItemName == "" || item.Quantity <= 0 || item.PurchasePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		lineTotal := item.PurchasePrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		items = append(items, entity.PurchaseItem{
			ItemName:      item.ItemName,
			Quantity:      item.Quantity,
			PurchasePrice: item.PurchasePrice,
			Unit:          item.Unit,
			LineTotal:     lineTotal,
		})
		total = total.Add(lineTotal)
	}

	fundingSource := in.FundingSource
	if fundingSource == "" {
		fundingSource = entity.FundingSourceCompany
	}
	now := uc.now()
	purchaseDate := in.PurchaseDate
	if purchaseDate == "" {
		purchaseDate = now.Format("2006-01-02")
	}
	purchase := &entity.Purchase{
		ID:            id.NewAt(now),
		Supplier:      in.Supplier,
		FundingSource: fundingSource,
		FundingOwner:  in.FundingOwner,
		Items:         items,
		TotalAmount:   total,
		PurchaseDate:  purchaseDate,
		CreatedByID:   actor.UserID,
		CreatedByName: actor.UserName,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.purchases.Save(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

// GetByID obtiene una compra por ID.
func (uc *PurchaseUseCase) GetByID(ctx context.Context, purchaseID string) (*entity.Purchase, error) {
	return uc.purchases.GetByID(ctx, purchaseID)
}

// List devuelve las compras ordenadas por PurchaseDate descendente.
func (uc *PurchaseUseCase) List(ctx context.Context) ([]*entity.Purchase, error) {
	purchases, err := uc.purchases.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(purchases, func(i, j int) bool {
		if purchases[i].PurchaseDate != purchases[j].PurchaseDate {
			return purchases[i].PurchaseDate > purchases[j].PurchaseDate
		}
		return purchases[i].CreatedAt.After(purchases[j].CreatedAt)
	})
	return purchases, nil
}

// Delete elimina una compra por ID.
func (uc *PurchaseUseCase) Delete(ctx context.Context, purchaseID string) error {
	if _, err := uc.purchases.GetByID(ctx, purchaseID); err != nil {
		return err
	}
	return uc.purchases.Delete(ctx, purchaseID)
}
