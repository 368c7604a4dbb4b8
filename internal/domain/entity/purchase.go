package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FundingSourceCompany origen de fondos por defecto de una compra.
const FundingSourceCompany = "company"

// PurchaseItem línea de una compra a proveedor.
type PurchaseItem struct {
	ItemName      string          `json:"item_name"`
	Quantity      int             `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Unit          string          `json:"unit,omitempty"`
	LineTotal     decimal.Decimal `json:"line_total"`
}

// Purchase compra a proveedor. Inmutable salvo eliminación.
type Purchase struct {
	ID            string          `json:"id"`
	Supplier      string          `json:"supplier,omitempty"`
	FundingSource string          `json:"funding_source"` // default "company"
	FundingOwner  string          `json:"funding_owner,omitempty"`
	Items         []PurchaseItem  `json:"items"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PurchaseDate  string          `json:"purchase_date"` // YYYY-MM-DD
	CreatedByID   string          `json:"created_by_id"`
	CreatedByName string          `json:"created_by_name"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
