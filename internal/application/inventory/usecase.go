package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-insumos/internal/domain"
	"github.com/jhoicas/inventario-insumos/internal/domain/entity"
	"github.com/jhoicas/inventario-insumos/internal/domain/repository"
)

// RegisterMovementUseCase registra entradas y salidas de stock de forma transaccional,
// con bloqueo de fila del insumo (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	movRepo  repository.MovementRepository
	now      func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner: txRunner,
		itemRepo: itemRepo,
		movRepo:  movRepo,
		now:      time.Now,
	}
}

// SetClock reemplaza el reloj usado para fechar movimientos.
func (uc *RegisterMovementUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

// MovementInput entrada para registrar un movimiento.
// UserID puede venir vacío (ej. scripts de carga); en el flujo HTTP siempre es el usuario del token.
type MovementInput struct {
	ItemCode string
	Type     string
	Quantity int
	UserID   string
}

// MovementResult movimiento creado y stock resultante del insumo.
type MovementResult struct {
	Movement *entity.Movement
	Item     *entity.Item
	NewStock int
	Message  string
}

// RegisterMovement valida la entrada, inicia una transacción, bloquea el insumo, verifica stock
// suficiente en salidas, aplica el delta y guarda el movimiento. Cualquier error hace Rollback.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*MovementResult, error) {
	input.ItemCode = strings.TrimSpace(input.ItemCode)
	if input.ItemCode == "" {
		return nil, domain.NewValidationError("codigo_insumo", "el insumo es requerido")
	}
	if !entity.ValidMovementType(input.Type) {
		return nil, domain.NewValidationError("tipo", "tipo debe ser ENTRADA o SALIDA")
	}
	if input.Quantity <= 0 {
		return nil, domain.NewValidationError("cantidad", "la cantidad debe ser mayor que cero")
	}

	var result *MovementResult
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		item, err := itemRepo.GetByCodeForUpdate(ctx, input.ItemCode)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		now := uc.now()
		mov := &entity.Movement{
			ID:        uuid.New().String(),
			ItemID:    item.ID,
			Type:      input.Type,
			Quantity:  input.Quantity,
			CreatedAt: now,
			CreatedBy: input.UserID,
		}
		newStock, err := applyMovement(item, mov)
		if err != nil {
			return err
		}
		if err := itemRepo.UpdateStock(ctx, item.ID, newStock); err != nil {
			return err
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}

		item.Stock = newStock
		item.UpdatedAt = now
		result = &MovementResult{
			Movement: mov,
			Item:     item,
			NewStock: newStock,
			Message:  confirmationMessage(item, mov),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// applyMovement calcula el stock resultante. Una salida mayor al stock disponible falla
// sin efectos.
func applyMovement(item *entity.Item, mov *entity.Movement) (int, error) {
	if mov.Type == entity.MovementTypeExit && mov.Quantity > item.Stock {
		return 0, &domain.InsufficientStockError{
			Code:      item.Code,
			Available: item.Stock,
			Requested: mov.Quantity,
		}
	}
	return item.Stock + mov.Delta(), nil
}

func confirmationMessage(item *entity.Item, mov *entity.Movement) string {
	if mov.Type == entity.MovementTypeEntry {
		return fmt.Sprintf("Entrada registrada: +%d unidades de %s", mov.Quantity, item.Name)
	}
	return fmt.Sprintf("Salida registrada: -%d unidades de %s", mov.Quantity, item.Name)
}
