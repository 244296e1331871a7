package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-insumos/internal/domain"
	"github.com/jhoicas/inventario-insumos/internal/domain/entity"
	"github.com/jhoicas/inventario-insumos/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository implementación en memoria de repository.UserRepository.
type UserRepository struct {
	store *Store
	tx    *state
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	return r.store.view(ctx, r.tx, func(st *state) error {
		if _, ok := st.users[u.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, other := range st.users {
			if other.Username == u.Username {
				return domain.ErrDuplicate
			}
		}
		st.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.store.view(ctx, r.tx, func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var out *entity.User
	err := r.store.view(ctx, r.tx, func(st *state) error {
		for _, u := range st.users {
			if u.Username == username {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

// Delete falla si algún movimiento aún referencia al usuario; ClearActor debe ir antes.
func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := r.store.view(ctx, r.tx, func(st *state) error {
		if _, ok := st.users[id]; !ok {
			return nil
		}
		for _, row := range st.movements {
			if row.mov.CreatedBy == id {
				return fmt.Errorf("usuario %s referenciado por movimientos: %w", id, domain.ErrInvalidInput)
			}
		}
		delete(st.users, id)
		deleted = true
		return nil
	})
	return deleted, err
}
