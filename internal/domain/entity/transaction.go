package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionItem línea de un recibo de venta. Los precios son snapshots del
// producto al momento de la venta.
type TransactionItem struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	LineTotal    decimal.Decimal `json:"line_total"` // SellingPrice * Quantity
	LineCost     decimal.Decimal `json:"line_cost"`  // CostPrice * Quantity
}

// Transaction recibo de venta. Inmutable una vez creado.
// Total = max(0, Subtotal - Discount); Profit = Total - COGS.
type Transaction struct {
	ID            string            `json:"id"`
	Items         []TransactionItem `json:"items"`
	Subtotal      decimal.Decimal   `json:"subtotal"`
	Discount      decimal.Decimal   `json:"discount"`
	Total         decimal.Decimal   `json:"total"`
	COGS          decimal.Decimal   `json:"cogs"`
	Profit        decimal.Decimal   `json:"profit"`
	PaymentMethod string            `json:"payment_method,omitempty"`
	CashierID     string            `json:"cashier_id"`
	CashierName   string            `json:"cashier_name"`
	Timestamp     time.Time         `json:"timestamp"`
	Date          string            `json:"date"` // componente fecha ISO del timestamp (YYYY-MM-DD)
}
