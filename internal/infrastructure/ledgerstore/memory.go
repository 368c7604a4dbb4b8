package ledgerstore

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

var _ repository.LedgerStore = (*MemoryStore)(nil)

// MemoryStore implementación en memoria del Ledger Store para modo development
// y tests. El scan por prefijo devuelve los documentos ordenados por clave.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]json.RawMessage
}

// NewMemoryStore construye el store vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]json.RawMessage)}
}

// Get obtiene un documento por clave. ErrNotFound si no existe.
func (s *MemoryStore) Get(_ context.Context, key string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := make(json.RawMessage, len(doc))
	copy(cp, doc)
	return cp, nil
}

// Set guarda (o reemplaza) un documento.
func (s *MemoryStore) Set(_ context.Context, key string, doc json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make(json.RawMessage, len(doc))
	copy(cp, doc)
	s.docs[key] = cp
	return nil
}

// Delete elimina un documento. Borrar una clave inexistente no es error.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, key)
	return nil
}

// ScanByPrefix devuelve los documentos cuyas claves empiezan por prefix,
// ordenados por clave.
func (s *MemoryStore) ScanByPrefix(_ context.Context, prefix string) ([]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0)
	for k := range s.docs {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := make([]json.RawMessage, 0, len(keys))
	for _, k := range keys {
		cp := make(json.RawMessage, len(s.docs[k]))
		copy(cp, s.docs[k])
		out = append(out, cp)
	}
	return out, nil
}
