package repository

import (
	"context"
	"encoding/json"
)

// LedgerStore es el puerto hacia el almacén clave-valor durable (colaborador
// externo): documentos JSON indexados por clave string, con lectura puntual y
// scan ordenado por prefijo. No ofrece transacciones ni compare-and-swap; la
// serialización por clave la aporta el core (pkg/keylock).
//
// Get retorna domain.ErrNotFound si la clave no existe. Cualquier fallo del
// backend se reporta envuelto con domain.ErrStore y nunca se reintenta aquí.
type LedgerStore interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Set(ctx context.Context, key string, doc json.RawMessage) error
	Delete(ctx context.Context, key string) error
	ScanByPrefix(ctx context.Context, prefix string) ([]json.RawMessage, error)
}
