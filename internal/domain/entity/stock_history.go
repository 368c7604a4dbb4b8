package entity

import "time"

// Tipos de movimiento del libro de inventario.
const (
	StockChangeTransaction = "transaction" // venta
	StockChangeOrder       = "order"       // despacho de pedido
	StockChangeAdjustment  = "adjustment"  // corrección manual
)

// StockHistoryEntry es un registro inmutable del libro de inventario: un asiento
// por cada mutación de stock. Sumando los Change de un producto desde su creación
// se reconstruye el stock actual (invariante de reconciliación).
// ProductName es un snapshot denormalizado: conserva la exactitud histórica
// aunque el producto cambie de nombre después.
type StockHistoryEntry struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Change      int       `json:"change"` // delta con signo
	Type        string    `json:"type"`   // transaction, order, adjustment
	Timestamp   time.Time `json:"timestamp"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	Reason      string    `json:"reason,omitempty"`
}
