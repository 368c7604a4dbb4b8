package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un pedido de domicilio.
// Transiciones hacia adelante solamente: pending -> shipped -> delivered.
const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered" // terminal
)

// ValidOrderStatus indica si el valor es uno de los tres estados conocidos.
func ValidOrderStatus(s string) bool {
	return s == OrderStatusPending || s == OrderStatusShipped || s == OrderStatusDelivered
}

// OrderItem línea de un pedido con precio snapshoteado al momento de creación.
type OrderItem struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

// Order pedido de entrega a domicilio. StockReduced es monotónico false->true y
// se acopla a la transición pending->shipped: el stock de las líneas se
// descuenta exactamente una vez sin importar cuántas veces se re-solicite
// "shipped".
type Order struct {
	ID              string          `json:"id"`
	CustomerName    string          `json:"customer_name,omitempty"`
	CustomerPhone   string          `json:"customer_phone,omitempty"`
	CustomerAddress string          `json:"customer_address,omitempty"`
	Items           []OrderItem     `json:"items"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	DeliveryDate    string          `json:"delivery_date"` // YYYY-MM-DD
	DeliveryTime    string          `json:"delivery_time,omitempty"`
	Status          string          `json:"status"`
	StockReduced    bool            `json:"stock_reduced"`
	Notes           string          `json:"notes,omitempty"`
	CreatedByID     string          `json:"created_by_id"`
	CreatedByName   string          `json:"created_by_name"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	ShippedAt       *time.Time      `json:"shipped_at,omitempty"`
	ShippedByID     string          `json:"shipped_by_id,omitempty"`
	ShippedByName   string          `json:"shipped_by_name,omitempty"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty"`
}
