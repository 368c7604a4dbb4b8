package ledgerstore

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
)

func TestMemoryStore_GetInexistente_NotFound(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "product:nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryStore_SetGetDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	doc := json.RawMessage(`{"id":"p-1","name":"Café"}`)
	require.NoError(t, s.Set(ctx, "product:p-1", doc))

	got, err := s.Get(ctx, "product:p-1")
	require.NoError(t, err)
	assert.JSONEq(t, string(doc), string(got))

	require.NoError(t, s.Delete(ctx, "product:p-1"))
	_, err = s.Get(ctx, "product:p-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Borrar una clave inexistente no es error
	assert.NoError(t, s.Delete(ctx, "product:p-1"))
}

func TestMemoryStore_ScanByPrefix_SoloElPrefijoYOrdenado(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "product:b", json.RawMessage(`{"k":"b"}`)))
	require.NoError(t, s.Set(ctx, "product:a", json.RawMessage(`{"k":"a"}`)))
	require.NoError(t, s.Set(ctx, "order:x", json.RawMessage(`{"k":"x"}`)))
	require.NoError(t, s.Set(ctx, "stock_history:1", json.RawMessage(`{"k":"h"}`)))

	docs, err := s.ScanByPrefix(ctx, "product:")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.JSONEq(t, `{"k":"a"}`, string(docs[0]), "scan ordenado por clave")
	assert.JSONEq(t, `{"k":"b"}`, string(docs[1]))

	empty, err := s.ScanByPrefix(ctx, "transaction:")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

// El store devuelve copias defensivas: mutar el slice devuelto no altera lo
// almacenado.
func TestMemoryStore_CopiasDefensivas(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "product:p-1", json.RawMessage(`{"a":1}`)))

	got, err := s.Get(ctx, "product:p-1")
	require.NoError(t, err)
	got[1] = 'X'

	again, err := s.Get(ctx, "product:p-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(again))
}
