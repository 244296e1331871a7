package repository

import (
	"context"

	"github.com/jhoicas/inventario-insumos/internal/domain/entity"
)

// MovementDetail movimiento enriquecido con datos del insumo y del usuario para listados.
type MovementDetail struct {
	entity.Movement
	ItemCode string
	ItemName string
	Username string // vacío si el actor es NULL
}

// MovementRepository define el puerto de persistencia para movimientos de stock.
// No hay Update: los movimientos son inmutables.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	// List devuelve todos los movimientos, más recientes primero.
	List(ctx context.Context) ([]*MovementDetail, error)
	// ListByItem devuelve los movimientos de un insumo, más recientes primero.
	ListByItem(ctx context.Context, itemID string) ([]*MovementDetail, error)
	// DeleteByItem elimina los movimientos de un insumo (cascada explícita).
	DeleteByItem(ctx context.Context, itemID string) (int64, error)
	// ClearActor deja en NULL el actor de los movimientos registrados por userID.
	ClearActor(ctx context.Context, userID string) (int64, error)
}
