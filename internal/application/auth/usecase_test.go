package auth_test

import (
	"context"
	"testing"

	"github.com/jhoicas/inventario-insumos/internal/application/auth"
	"github.com/jhoicas/inventario-insumos/internal/application/dto"
	"github.com/jhoicas/inventario-insumos/internal/application/inventory"
	"github.com/jhoicas/inventario-insumos/internal/domain"
	"github.com/jhoicas/inventario-insumos/internal/domain/entity"
	"github.com/jhoicas/inventario-insumos/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-insumos/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func newAuth() (*auth.AuthUseCase, *memory.Store) {
	store := memory.NewStore()
	uc := auth.NewAuthUseCase(store.UserRepository(), store, auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"})
	return uc, store
}

func TestRegisterUser_ReturnsToken(t *testing.T) {
	uc, store := newAuth()

	out, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Username: " ana ", Password: "supersecreta"})
	require.NoError(t, err)
	assert.Equal(t, "ana", out.User.Username)
	assert.Equal(t, entity.RoleBodeguero, out.User.Role)

	userID, username, role, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, "ana", username)
	assert.Equal(t, entity.RoleBodeguero, role)

	stored, err := store.UserRepository().GetByUsername(context.Background(), "ana")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "supersecreta", stored.PasswordHash)
}

func TestRegisterUser_Validation(t *testing.T) {
	uc, _ := newAuth()

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Username: "", Password: "supersecreta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(context.Background(), dto.RegisterRequest{Username: "ana", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterUser_Duplicate(t *testing.T) {
	uc, _ := newAuth()
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Username: "ana", Password: "supersecreta"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(context.Background(), dto.RegisterRequest{Username: "ana", Password: "otraclave1"})
	assert.ErrorIs(t, err, domain.ErrUsernameAlreadyExists)
}

func TestLogin(t *testing.T) {
	uc, _ := newAuth()
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Username: "ana", Password: "supersecreta"})
	require.NoError(t, err)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "supersecreta"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "supersecreta"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestEnsureUser_Idempotent(t *testing.T) {
	uc, _ := newAuth()

	first, created, err := uc.EnsureUser(context.Background(), "admin", "adminadmin", entity.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, entity.RoleAdmin, first.Role)

	second, created, err := uc.EnsureUser(context.Background(), "admin", "otra-clave", entity.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
}

func TestDeleteUser_DetachesMovements(t *testing.T) {
	uc, store := newAuth()
	ctx := context.Background()
	reg, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "ana", Password: "supersecreta"})
	require.NoError(t, err)
	require.NoError(t, store.ItemRepository().Create(ctx, &entity.Item{ID: "i1", Code: "HER-001", Name: "Martillo", Location: "A", Stock: 5}))

	ledger := inventory.NewRegisterMovementUseCase(store, store.ItemRepository(), store.MovementRepository())
	_, err = ledger.RegisterMovement(ctx, inventory.MovementInput{ItemCode: "HER-001", Type: entity.MovementTypeExit, Quantity: 2, UserID: reg.User.ID})
	require.NoError(t, err)

	out, err := uc.DeleteUser(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.MovementsDetached)

	movs, err := store.MovementRepository().List(ctx)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Empty(t, movs[0].CreatedBy)
	assert.Empty(t, movs[0].Username)

	it, err := store.ItemRepository().GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, 3, it.Stock)

	_, err = uc.DeleteUser(ctx, reg.User.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
