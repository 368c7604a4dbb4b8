package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/products.
// InitialStock se registra a través del libro de inventario como ajuste, de
// modo que la reconciliación del producto se cumple desde su creación.
type CreateProductRequest struct {
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	InitialStock int             `json:"initial_stock"`
	Description  string          `json:"description,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id. Stock no se toca aquí:
// toda mutación de stock pasa por /api/inventory/adjust.
type UpdateProductRequest struct {
	Name         string           `json:"name,omitempty"`
	Category     string           `json:"category,omitempty"`
	SellingPrice *decimal.Decimal `json:"selling_price,omitempty"`
	CostPrice    *decimal.Decimal `json:"cost_price,omitempty"`
	Description  *string          `json:"description,omitempty"`
}
