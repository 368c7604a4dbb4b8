package dto

import "github.com/shopspring/decimal"

// DailySalesDTO agregado de ventas de un día.
type DailySalesDTO struct {
	Date         string          `json:"date"` // YYYY-MM-DD
	Revenue      decimal.Decimal `json:"revenue"`
	COGS         decimal.Decimal `json:"cogs"`
	Profit       decimal.Decimal `json:"profit"`
	Transactions int             `json:"transactions"`
}

// TopProductDTO producto por unidades vendidas en el período.
type TopProductDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitsSold   int             `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// SalesSummaryDTO reporte de ventas de un período.
type SalesSummaryDTO struct {
	From         string          `json:"from"`
	To           string          `json:"to"`
	Revenue      decimal.Decimal `json:"revenue"`
	COGS         decimal.Decimal `json:"cogs"`
	Profit       decimal.Decimal `json:"profit"`
	Transactions int             `json:"transactions"`
	Days         []DailySalesDTO `json:"days"`
	TopProducts  []TopProductDTO `json:"top_products"`
}

// StockAlertDTO producto en o por debajo del umbral de stock.
type StockAlertDTO struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Category    string `json:"category,omitempty"`
	Stock       int    `json:"stock"`
}
