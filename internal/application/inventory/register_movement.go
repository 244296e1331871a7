package inventory

import (
	"context"

	"github.com/jhoicas/inventario-insumos/internal/application/dto"
	"github.com/jhoicas/inventario-insumos/internal/domain"
	"github.com/jhoicas/inventario-insumos/internal/domain/repository"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement(ctx, MovementInput).
// userID es el usuario autenticado que queda como responsable del movimiento.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.RegisterMovementResponse, error) {
	res, err := uc.RegisterMovement(ctx, MovementInput{
		ItemCode: in.ItemCode,
		Type:     in.Type,
		Quantity: in.Quantity,
		UserID:   userID,
	})
	if err != nil {
		return nil, err
	}
	out := toMovementResponse(&repository.MovementDetail{
		Movement: *res.Movement,
		ItemCode: res.Item.Code,
		ItemName: res.Item.Name,
	})
	return &dto.RegisterMovementResponse{
		Movement: out,
		NewStock: res.NewStock,
		Message:  res.Message,
	}, nil
}

// ListMovements devuelve el historial completo, más recientes primero.
func (uc *RegisterMovementUseCase) ListMovements(ctx context.Context) (*dto.MovementListResponse, error) {
	list, err := uc.movRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toMovementListResponse(list), nil
}

// ListItemMovements devuelve el historial de un insumo, más recientes primero.
func (uc *RegisterMovementUseCase) ListItemMovements(ctx context.Context, itemID string) (*dto.MovementListResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.movRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return toMovementListResponse(list), nil
}

func toMovementListResponse(list []*repository.MovementDetail) *dto.MovementListResponse {
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m))
	}
	return &dto.MovementListResponse{Items: items, Total: len(items)}
}

func toMovementResponse(m *repository.MovementDetail) dto.MovementResponse {
	out := dto.MovementResponse{
		ID:        m.ID,
		ItemID:    m.ItemID,
		ItemCode:  m.ItemCode,
		ItemName:  m.ItemName,
		Type:      m.Type,
		Quantity:  m.Quantity,
		CreatedAt: m.CreatedAt,
		Username:  m.Username,
	}
	if m.CreatedBy != "" {
		userID := m.CreatedBy
		out.UserID = &userID
	}
	return out
}
