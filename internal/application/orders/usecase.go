package orders

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
	"github.com/jhoicas/pos-ledger-api/pkg/keylock"
	"github.com/jhoicas/pos-ledger-api/pkg/logger"
)

// OrderUseCase máquina de estados de pedidos: pending -> shipped -> delivered,
// solo hacia adelante. El descuento de stock se acopla a pending->shipped y
// ocurre a lo sumo una vez por pedido (StockReduced monotónico), sin importar
// cuántas veces se re-solicite "shipped". Las transiciones de un mismo pedido
// se serializan con lock por clave.
type OrderUseCase struct {
	locks    *keylock.KeyLock
	orders   repository.OrderRepository
	products repository.ProductRepository
	ledger   *inventory.StockLedgerUseCase
	log      *logger.Logger
	now      func() time.Time
}

// NewOrderUseCase construye el caso de uso de pedidos.
func NewOrderUseCase(
	locks *keylock.KeyLock,
	orders repository.OrderRepository,
	products repository.ProductRepository,
	ledger *inventory.StockLedgerUseCase,
	log *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		locks:    locks,
		orders:   orders,
		products: products,
		ledger:   ledger,
		log:      log,
		now:      time.Now,
	}
}

func orderLockKey(orderID string) string { return "order:" + orderID }

// Create registra un pedido en estado pending con precios snapshoteados. No
// toca stock: el descuento ocurre al despachar.
func (uc *OrderUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateOrderRequest) (*entity.Order, error) {
	if len(in.Items) == 0 || in.DeliveryDate == "" || actor.Anonymous() {
		return nil, domain.ErrInvalidInput
	}
	items := make([]entity.OrderItem, 0, len(in.Items))
	total := decimal.Zero
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		lineTotal := product.SellingPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		items = append(items, entity.OrderItem{
			ProductID:    product.ID,
			ProductName:  product.Name,
			Quantity:     item.Quantity,
			SellingPrice: product.SellingPrice,
			LineTotal:    lineTotal,
		})
		total = total.Add(lineTotal)
	}

	now := uc.now()
	order := &entity.Order{
		ID:              id.NewAt(now),
		CustomerName:    in.CustomerName,
		CustomerPhone:   in.CustomerPhone,
		CustomerAddress: in.CustomerAddress,
		Items:           items,
		TotalAmount:     total,
		DeliveryDate:    in.DeliveryDate,
		DeliveryTime:    in.DeliveryTime,
		Status:          entity.OrderStatusPending,
		StockReduced:    false,
		Notes:           in.Notes,
		CreatedByID:     actor.UserID,
		CreatedByName:   actor.UserName,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Transition mueve el pedido al estado solicitado aplicando el efecto de
// inventario de cada transición:
//   - pending -> shipped: descuenta el stock de todas las líneas como unidad;
//     si StockReduced ya es true, el stock no se toca (guardia de reingreso
//     idempotente). Con stock insuficiente el pedido queda en pending y
//     StockReduced no cambia.
//   - * -> delivered: estampa DeliveredAt; el stock no se toca.
//
// delivered es terminal y los retrocesos se rechazan con ErrConflict.
func (uc *OrderUseCase) Transition(ctx context.Context, orderID, newStatus string, actor entity.Actor) (*entity.Order, error) {
	if actor.Anonymous() {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidOrderStatus(newStatus) {
		return nil, domain.ErrInvalidInput
	}

	key := orderLockKey(orderID)
	uc.locks.Lock(key)
	defer uc.locks.Unlock(key)

	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == entity.OrderStatusDelivered {
		return nil, domain.ErrConflict // terminal
	}
	if newStatus == entity.OrderStatusPending && order.Status != entity.OrderStatusPending {
		return nil, domain.ErrConflict // sin retrocesos
	}

	now := uc.now()
	switch newStatus {
	case entity.OrderStatusShipped:
		if !order.StockReduced {
			lines := make([]inventory.Line, 0, len(order.Items))
			for _, item := range order.Items {
				lines = append(lines, inventory.Line{ProductID: item.ProductID, Quantity: item.Quantity})
			}
			reason := "Despacho de pedido"
			if order.CustomerName != "" {
				reason = "Pedido de " + order.CustomerName
			}
			if _, err := uc.ledger.AdjustBatch(ctx, lines, entity.StockChangeOrder, actor, reason); err != nil {
				// El pedido permanece pending con StockReduced intacto
				return nil, err
			}
			order.StockReduced = true
			order.ShippedAt = &now
			order.ShippedByID = actor.UserID
			order.ShippedByName = actor.UserName
		}
		order.Status = entity.OrderStatusShipped

	case entity.OrderStatusDelivered:
		order.DeliveredAt = &now
		order.Status = entity.OrderStatusDelivered

	case entity.OrderStatusPending:
		// pending -> pending: sin efecto
	}

	order.UpdatedAt = now
	if err := uc.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_id", order.ID).
		Str("status", order.Status).
		Bool("stock_reduced", order.StockReduced).
		Msg("transición de pedido")
	return order, nil
}

// Update aplica un patch de campos independientes del estado (datos del
// cliente, notas, agenda de entrega). El estado nunca se toca por aquí.
func (uc *OrderUseCase) Update(ctx context.Context, orderID string, actor entity.Actor, in dto.UpdateOrderRequest) (*entity.Order, error) {
	if actor.Anonymous() {
		return nil, domain.ErrInvalidInput
	}

	key := orderLockKey(orderID)
	uc.locks.Lock(key)
	defer uc.locks.Unlock(key)

	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if in.CustomerName != nil {
		order.CustomerName = *in.CustomerName
	}
	if in.CustomerPhone != nil {
		order.CustomerPhone = *in.CustomerPhone
	}
	if in.CustomerAddress != nil {
		order.CustomerAddress = *in.CustomerAddress
	}
	if in.DeliveryDate != nil {
		order.DeliveryDate = *in.DeliveryDate
	}
	if in.DeliveryTime != nil {
		order.DeliveryTime = *in.DeliveryTime
	}
	if in.Notes != nil {
		order.Notes = *in.Notes
	}
	order.UpdatedAt = uc.now()
	if err := uc.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetByID obtiene un pedido por ID.
func (uc *OrderUseCase) GetByID(ctx context.Context, orderID string) (*entity.Order, error) {
	return uc.orders.GetByID(ctx, orderID)
}

// List devuelve los pedidos ordenados por CreatedAt descendente, filtrables
// por estado.
func (uc *OrderUseCase) List(ctx context.Context, status string) ([]*entity.Order, error) {
	if status != "" && !entity.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	orders, err := uc.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	if status != "" {
		filtered := make([]*entity.Order, 0, len(orders))
		for _, o := range orders {
			if o.Status == status {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// Delete elimina un pedido. No revierte stock: un pedido despachado ya salió
// de bodega.
func (uc *OrderUseCase) Delete(ctx context.Context, orderID string) error {
	if _, err := uc.orders.GetByID(ctx, orderID); err != nil {
		return err
	}
	return uc.orders.Delete(ctx, orderID)
}
