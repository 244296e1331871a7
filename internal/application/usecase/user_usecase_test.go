package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/inventario-insumos/internal/domain"
	"github.com/jhoicas/inventario-insumos/internal/domain/entity"
	"github.com/jhoicas/inventario-insumos/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserUseCase_GetByID(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, store.UserRepository().Create(ctx, &entity.User{
		ID: "u-1", Username: "bodega", PasswordHash: "x",
		Role: entity.RoleBodeguero, Status: entity.UserStatusActive,
		CreatedAt: now, UpdatedAt: now,
	}))
	uc := NewUserUseCase(store.UserRepository())

	out, err := uc.GetByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "bodega", out.Username)
	assert.Equal(t, entity.RoleBodeguero, out.Role)

	_, err = uc.GetByID(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
