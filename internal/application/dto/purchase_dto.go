package dto

import "github.com/shopspring/decimal"

// PurchaseItemRequest línea de una compra a proveedor.
type PurchaseItemRequest struct {
	ItemName      string          `json:"item_name"`
	Quantity      int             `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Unit          string          `json:"unit,omitempty"`
}

// CreatePurchaseRequest body para POST /api/purchases.
type CreatePurchaseRequest struct {
	Supplier      string                `json:"supplier,omitempty"`
	FundingSource string                `json:"funding_source,omitempty"` // default "company"
	FundingOwner  string                `json:"funding_owner,omitempty"`
	Items         []PurchaseItemRequest `json:"items"`
	PurchaseDate  string                `json:"purchase_date"` // YYYY-MM-DD
}
