package dto

// AdjustStockRequest body para POST /api/inventory/adjust (corrección manual).
// Delta es el cambio con signo; un decremento mayor que el stock actual se
// recorta a 0.
type AdjustStockRequest struct {
	ProductID string `json:"product_id"`
	Delta     int    `json:"delta"`
	Reason    string `json:"reason,omitempty"`
}

// AdjustStockResponse stock resultante + id del asiento creado.
type AdjustStockResponse struct {
	ProductID string `json:"product_id"`
	NewStock  int    `json:"new_stock"`
	EntryID   string `json:"entry_id"`
}
