package sales

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-ledger-api/internal/application/dto"
	"github.com/jhoicas/pos-ledger-api/internal/application/inventory"
	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
	"github.com/jhoicas/pos-ledger-api/pkg/id"
	"github.com/jhoicas/pos-ledger-api/pkg/logger"
)

// ReceiptPDFGenerator puerto hacia el generador de PDF del recibo.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, tx *entity.Transaction) ([]byte, error)
}

// TransactionUseCase motor de ventas: convierte una solicitud multi-línea en
// descuentos de stock confirmados, totales calculados y un recibo persistido.
// Los descuentos pasan por el libro de inventario (AdjustBatch, todo-o-nada):
// jamás se persiste un recibo cuyas líneas no coincidan con los deltas de
// stock realmente aplicados.
type TransactionUseCase struct {
	ledger       *inventory.StockLedgerUseCase
	products     repository.ProductRepository
	transactions repository.TransactionRepository
	pdf          ReceiptPDFGenerator
	log          *logger.Logger
	now          func() time.Time
}

// NewTransactionUseCase construye el motor de ventas. pdf puede ser nil si la
// generación de recibos PDF está deshabilitada.
func NewTransactionUseCase(
	ledger *inventory.StockLedgerUseCase,
	products repository.ProductRepository,
	transactions repository.TransactionRepository,
	pdf ReceiptPDFGenerator,
	log *logger.Logger,
) *TransactionUseCase {
	return &TransactionUseCase{
		ledger:       ledger,
		products:     products,
		transactions: transactions,
		pdf:          pdf,
		log:          log,
		now:          time.Now,
	}
}

// Commit valida y confirma una venta:
//  1. Rechaza listas vacías, cantidades no positivas y descuentos negativos.
//  2. Snapshotea nombre y precios de cada producto.
//  3. Descuenta el stock de todas las líneas como unidad (AdjustBatch): si
//     alguna línea no tiene stock suficiente, nada se muta y el commit falla
//     con ErrInsufficientStock.
//  4. Calcula subtotal, total = max(0, subtotal - descuento), COGS y utilidad,
//     y persiste el recibo.
func (uc *TransactionUseCase) Commit(ctx context.Context, actor entity.Actor, in dto.CommitTransactionRequest) (*entity.Transaction, error) {
	if len(in.Items) == 0 || actor.Anonymous() {
		return nil, domain.ErrInvalidInput
	}
	if in.Discount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	// Snapshot de nombre y precios por línea
	items := make([]entity.TransactionItem, 0, len(in.Items))
	lines := make([]inventory.Line, 0, len(in.Items))
	subtotal := decimal.Zero
	cogs := decimal.Zero
	for _, item := range in.Items {
		product, err := uc.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		qty := decimal.NewFromInt(int64(item.Quantity))
		lineTotal := product.SellingPrice.Mul(qty)
		lineCost := product.CostPrice.Mul(qty)
		items = append(items, entity.TransactionItem{
			ProductID:    product.ID,
			ProductName:  product.Name,
			Quantity:     item.Quantity,
			SellingPrice: product.SellingPrice,
			CostPrice:    product.CostPrice,
			LineTotal:    lineTotal,
			LineCost:     lineCost,
		})
		lines = append(lines, inventory.Line{ProductID: item.ProductID, Quantity: item.Quantity})
		subtotal = subtotal.Add(lineTotal)
		cogs = cogs.Add(lineCost)
	}

	if _, err := uc.ledger.AdjustBatch(ctx, lines, entity.StockChangeTransaction, actor, "Venta"); err != nil {
		return nil, err
	}

	total := subtotal.Sub(in.Discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	now := uc.now()
	tx := &entity.Transaction{
		ID:            id.NewAt(now),
		Items:         items,
		Subtotal:      subtotal,
		Discount:      in.Discount,
		Total:         total,
		COGS:          cogs,
		Profit:        total.Sub(cogs),
		PaymentMethod: in.PaymentMethod,
		CashierID:     actor.UserID,
		CashierName:   actor.UserName,
		Timestamp:     now,
		Date:          now.Format("2006-01-02"),
	}
	if err := uc.transactions.Save(ctx, tx); err != nil {
		// El stock ya se descontó: revertir para no dejar deltas sin recibo
		uc.revertLines(ctx, lines, actor)
		return nil, err
	}

	uc.log.Info().
		Str("transaction_id", tx.ID).
		Str("cashier", actor.UserName).
		Str("total", tx.Total.String()).
		Int("items", len(tx.Items)).
		Msg("venta confirmada")
	return tx, nil
}

// revertLines devuelve el stock de una venta cuyo recibo no pudo persistirse.
func (uc *TransactionUseCase) revertLines(ctx context.Context, lines []inventory.Line, actor entity.Actor) {
	for _, l := range lines {
		_, _, err := uc.ledger.Adjust(ctx, inventory.AdjustInput{
			ProductID: l.ProductID,
			Delta:     l.Quantity,
			Type:      entity.StockChangeAdjustment,
			Actor:     actor,
			Reason:    "Reversión de venta no persistida",
		})
		if err != nil {
			uc.log.Error().Err(err).
				Str("product_id", l.ProductID).
				Int("quantity", l.Quantity).
				Msg("reversión de venta fallida")
		}
	}
}

// GetByID obtiene un recibo por ID.
func (uc *TransactionUseCase) GetByID(ctx context.Context, txID string) (*entity.Transaction, error) {
	return uc.transactions.GetByID(ctx, txID)
}

// List devuelve los recibos ordenados por Timestamp descendente, filtrables
// por rango de fechas (componente Date, inclusive).
func (uc *TransactionUseCase) List(ctx context.Context, in dto.ListTransactionsRequest) ([]*entity.Transaction, error) {
	txs, err := uc.transactions.List(ctx)
	if err != nil {
		return nil, err
	}
	if in.From != "" || in.To != "" {
		filtered := make([]*entity.Transaction, 0, len(txs))
		for _, t := range txs {
			if in.From != "" && t.Date < in.From {
				continue
			}
			if in.To != "" && t.Date > in.To {
				continue
			}
			filtered = append(filtered, t)
		}
		txs = filtered
	}
	sort.Slice(txs, func(i, j int) bool {
		return txs[i].Timestamp.After(txs[j].Timestamp)
	})
	return txs, nil
}

// ReceiptPDF genera el PDF del recibo de una venta.
func (uc *TransactionUseCase) ReceiptPDF(ctx context.Context, txID string) ([]byte, error) {
	if uc.pdf == nil {
		return nil, domain.ErrNotFound
	}
	tx, err := uc.transactions.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateReceiptPDF(ctx, tx)
}
