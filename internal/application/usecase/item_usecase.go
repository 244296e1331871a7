package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jhoicas/inventario-insumos/internal/application/dto"
	"github.com/jhoicas/inventario-insumos/internal/application/inventory"
	"github.com/jhoicas/inventario-insumos/internal/domain"
	"github.com/jhoicas/inventario-insumos/internal/domain/entity"
	"github.com/jhoicas/inventario-insumos/internal/domain/repository"
)

const (
	maxCodeLen     = 50
	maxNameLen     = 100
	maxLocationLen = 100
)

// ItemUseCase casos de uso CRUD del catálogo de insumos. El stock se mueve vía ledger;
// aquí solo se fija el inicial o se corrige por edición directa.
type ItemUseCase struct {
	repo     repository.ItemRepository
	txRunner inventory.TxRunner
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository, txRunner inventory.TxRunner) *ItemUseCase {
	return &ItemUseCase{repo: repo, txRunner: txRunner}
}

// Create crea un nuevo insumo. Falla con ValidationError si el código ya existe o el stock es negativo.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	now := time.Now()
	item := &entity.Item{
		ID:          uuid.New().String(),
		Code:        strings.TrimSpace(in.Code),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Stock:       in.Stock,
		Location:    strings.TrimSpace(in.Location),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validateItem(item); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByCode(ctx, item.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, duplicateCode(item.Code)
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, duplicateCode(item.Code)
		}
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un insumo por ID.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// Update aplica una actualización parcial. No registra movimientos.
// Corre en una transacción con el insumo bloqueado para no pisar el stock de un movimiento concurrente.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	var updated *entity.Item
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, _ repository.MovementRepository) error {
		item, err := itemRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		codeChanged := false
		if in.Code != nil {
			code := strings.TrimSpace(*in.Code)
			codeChanged = code != item.Code
			item.Code = code
		}
		if in.Name != nil {
			item.Name = strings.TrimSpace(*in.Name)
		}
		if in.Description != nil {
			item.Description = strings.TrimSpace(*in.Description)
		}
		if in.Stock != nil {
			item.Stock = *in.Stock
		}
		if in.Location != nil {
			item.Location = strings.TrimSpace(*in.Location)
		}
		if err := validateItem(item); err != nil {
			return err
		}
		if codeChanged {
			other, err := itemRepo.GetByCode(ctx, item.Code)
			if err != nil {
				return err
			}
			if other != nil && other.ID != item.ID {
				return duplicateCode(item.Code)
			}
		}
		item.UpdatedAt = time.Now()
		if err := itemRepo.Update(ctx, item); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return duplicateCode(item.Code)
			}
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(updated), nil
}

// List lista todos los insumos ordenados por código.
func (uc *ItemUseCase) List(ctx context.Context) (*dto.ItemListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ItemListResponse{Items: items, Total: len(items)}, nil
}

// Delete elimina el insumo y todos sus movimientos en una sola transacción.
// Devuelve la cantidad de movimientos eliminados.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) (int64, error) {
	var removed int64
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		item, err := itemRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		removed, err = movRepo.DeleteByItem(ctx, id)
		if err != nil {
			return err
		}
		ok, err := itemRepo.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func validateItem(item *entity.Item) error {
	switch {
	case item.Code == "":
		return domain.NewValidationError("codigo", "el código es requerido")
	case utf8.RuneCountInString(item.Code) > maxCodeLen:
		return domain.NewValidationError("codigo", "el código no puede superar 50 caracteres")
	case item.Name == "":
		return domain.NewValidationError("nombre", "el nombre es requerido")
	case utf8.RuneCountInString(item.Name) > maxNameLen:
		return domain.NewValidationError("nombre", "el nombre no puede superar 100 caracteres")
	case item.Location == "":
		return domain.NewValidationError("ubicacion", "la ubicación es requerida")
	case utf8.RuneCountInString(item.Location) > maxLocationLen:
		return domain.NewValidationError("ubicacion", "la ubicación no puede superar 100 caracteres")
	case item.Stock < 0:
		return domain.NewValidationError("stock_actual", "el stock no puede ser negativo")
	}
	return nil
}

func duplicateCode(code string) error {
	return &domain.ValidationError{
		Field:   "codigo",
		Message: "ya existe un insumo con código " + code,
		Err:     domain.ErrDuplicate,
	}
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:          it.ID,
		Code:        it.Code,
		Name:        it.Name,
		Description: it.Description,
		Stock:       it.Stock,
		Location:    it.Location,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}
