package repository

import (
	"context"

	"github.com/jhoicas/inventario-insumos/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para insumos (DIP).
// Los Get* devuelven (nil, nil) si el insumo no existe.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	GetByCode(ctx context.Context, code string) (*entity.Item, error)
	// GetByCodeForUpdate bloquea la fila del insumo hasta el fin de la transacción (SELECT FOR UPDATE).
	GetByCodeForUpdate(ctx context.Context, code string) (*entity.Item, error)
	// GetByIDForUpdate igual que GetByCodeForUpdate pero por ID.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	// UpdateStock actualiza solo stock y updated_at (usado por el ledger).
	UpdateStock(ctx context.Context, id string, stock int) error
	// List devuelve todos los insumos ordenados por código ascendente.
	List(ctx context.Context) ([]*entity.Item, error)
	// Delete elimina el insumo; devuelve false si no existía.
	Delete(ctx context.Context, id string) (bool, error)
}
