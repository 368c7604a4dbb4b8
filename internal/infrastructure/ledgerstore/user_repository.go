package ledgerstore

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre el Ledger Store.
// La búsqueda por email recorre el prefijo user: (el catálogo de usuarios es
// pequeño; no amerita un índice secundario).
type UserRepo struct {
	store repository.LedgerStore
}

// NewUserRepository construye el adaptador.
func NewUserRepository(store repository.LedgerStore) *UserRepo {
	return &UserRepo{store: store}
}

// GetByID obtiene un usuario por ID. ErrNotFound si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var u entity.User
	if err := getJSON(ctx, r.store, prefixUser+id, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByEmail busca un usuario por email (case-insensitive). ErrNotFound si no existe.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Save persiste (crea o reemplaza) un usuario.
func (r *UserRepo) Save(ctx context.Context, u *entity.User) error {
	return setJSON(ctx, r.store, prefixUser+u.ID, u)
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, prefixUser+id)
}

// List devuelve todos los usuarios.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	docs, err := r.store.ScanByPrefix(ctx, prefixUser)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.User, 0, len(docs))
	for _, doc := range docs {
		var u entity.User
		if err := json.Unmarshal(doc, &u); err != nil {
			return nil, domain.StoreFailure("unmarshal user", err)
		}
		out = append(out, &u)
	}
	return out, nil
}
