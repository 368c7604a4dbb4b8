package dto

// OrderItemRequest línea de un pedido.
type OrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	CustomerName    string             `json:"customer_name,omitempty"`
	CustomerPhone   string             `json:"customer_phone,omitempty"`
	CustomerAddress string             `json:"customer_address,omitempty"`
	Items           []OrderItemRequest `json:"items"`
	DeliveryDate    string             `json:"delivery_date"`
	DeliveryTime    string             `json:"delivery_time,omitempty"`
	Notes           string             `json:"notes,omitempty"`
}

// TransitionOrderRequest body para PUT /api/orders/:id/status.
type TransitionOrderRequest struct {
	Status string `json:"status"` // pending | shipped | delivered
}

// UpdateOrderRequest patch de campos independientes del estado (PATCH
// /api/orders/:id). El estado nunca se toca por aquí: siempre pasa por la
// máquina de estados.
type UpdateOrderRequest struct {
	CustomerName    *string `json:"customer_name,omitempty"`
	CustomerPhone   *string `json:"customer_phone,omitempty"`
	CustomerAddress *string `json:"customer_address,omitempty"`
	DeliveryDate    *string `json:"delivery_date,omitempty"`
	DeliveryTime    *string `json:"delivery_time,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}
