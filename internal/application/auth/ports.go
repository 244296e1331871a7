package auth

import (
	"context"

	"github.com/jhoicas/inventario-insumos/internal/domain/repository"
)

// IdentityTxRunner ejecuta una función en una transacción con los repos de usuarios y movimientos.
// Se usa para eliminar un usuario dejando en NULL el actor de sus movimientos.
type IdentityTxRunner interface {
	RunIdentity(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		userRepo repository.UserRepository,
	) error) error
}
