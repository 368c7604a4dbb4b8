package dto

import "github.com/shopspring/decimal"

// TransactionItemRequest línea de una venta: solo producto y cantidad; los
// precios se snapshotean del catálogo al momento del commit.
type TransactionItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CommitTransactionRequest body para POST /api/transactions.
type CommitTransactionRequest struct {
	Items         []TransactionItemRequest `json:"items"`
	Discount      decimal.Decimal          `json:"discount"`
	PaymentMethod string                   `json:"payment_method,omitempty"`
}

// ListTransactionsRequest filtros de GET /api/transactions.
type ListTransactionsRequest struct {
	From string `query:"from"` // YYYY-MM-DD inclusive
	To   string `query:"to"`   // YYYY-MM-DD inclusive
}
