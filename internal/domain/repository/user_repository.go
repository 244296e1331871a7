package repository

import (
	"context"

	"github.com/jhoicas/inventario-insumos/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// Delete elimina el usuario; devuelve false si no existía.
	Delete(ctx context.Context, id string) (bool, error)
}
