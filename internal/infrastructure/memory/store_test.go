package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/inventario-insumos/internal/domain"
	"github.com/jhoicas/inventario-insumos/internal/domain/entity"
	"github.com/jhoicas/inventario-insumos/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedItem(t *testing.T, s *Store, id, code string, stock int) {
	t.Helper()
	require.NoError(t, s.ItemRepository().Create(context.Background(), &entity.Item{
		ID: id, Code: code, Name: "Insumo " + code, Location: "Bodega", Stock: stock,
	}))
}

func TestItemRepository_CodeUnique(t *testing.T) {
	s := NewStore()
	seedItem(t, s, "i1", "HER-001", 1)

	err := s.ItemRepository().Create(context.Background(), &entity.Item{ID: "i2", Code: "HER-001", Name: "x", Location: "y"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestItemRepository_ListOrderedByCode(t *testing.T) {
	s := NewStore()
	seedItem(t, s, "i1", "ZZZ-1", 1)
	seedItem(t, s, "i2", "AAA-1", 1)
	seedItem(t, s, "i3", "MMM-1", 1)

	list, err := s.ItemRepository().List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "AAA-1", list[0].Code)
	assert.Equal(t, "MMM-1", list[1].Code)
	assert.Equal(t, "ZZZ-1", list[2].Code)
}

func TestItemRepository_ReturnsCopies(t *testing.T) {
	s := NewStore()
	seedItem(t, s, "i1", "HER-001", 5)

	it, err := s.ItemRepository().GetByID(context.Background(), "i1")
	require.NoError(t, err)
	it.Stock = 99

	again, err := s.ItemRepository().GetByID(context.Background(), "i1")
	require.NoError(t, err)
	assert.Equal(t, 5, again.Stock)
}

func TestRun_RollbackOnError(t *testing.T) {
	s := NewStore()
	seedItem(t, s, "i1", "HER-001", 5)
	boom := errors.New("boom")

	err := s.Run(context.Background(), func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		require.NoError(t, itemRepo.UpdateStock(context.Background(), "i1", 1))
		require.NoError(t, movRepo.Create(context.Background(), &entity.Movement{
			ID: "m1", ItemID: "i1", Type: entity.MovementTypeExit, Quantity: 4, CreatedAt: time.Now(),
		}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	it, err := s.ItemRepository().GetByID(context.Background(), "i1")
	require.NoError(t, err)
	assert.Equal(t, 5, it.Stock)
	movs, err := s.MovementRepository().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestRun_CanceledContext(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.Run(ctx, func(repository.ItemRepository, repository.MovementRepository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestMovementRepository_ListNewestFirstWithDetails(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedItem(t, s, "i1", "HER-001", 5)
	require.NoError(t, s.UserRepository().Create(ctx, &entity.User{ID: "u1", Username: "ana"}))

	t1 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	movs := s.MovementRepository()
	require.NoError(t, movs.Create(ctx, &entity.Movement{ID: "m1", ItemID: "i1", Type: entity.MovementTypeEntry, Quantity: 1, CreatedAt: t1, CreatedBy: "u1"}))
	require.NoError(t, movs.Create(ctx, &entity.Movement{ID: "m2", ItemID: "i1", Type: entity.MovementTypeEntry, Quantity: 2, CreatedAt: t1.Add(time.Minute)}))
	require.NoError(t, movs.Create(ctx, &entity.Movement{ID: "m3", ItemID: "i1", Type: entity.MovementTypeEntry, Quantity: 3, CreatedAt: t1.Add(time.Minute)}))

	list, err := movs.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "m3", list[0].ID)
	assert.Equal(t, "m2", list[1].ID)
	assert.Equal(t, "m1", list[2].ID)
	assert.Equal(t, "HER-001", list[2].ItemCode)
	assert.Equal(t, "ana", list[2].Username)
	assert.Empty(t, list[0].Username)
}

func TestMovementRepository_ForeignKeys(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedItem(t, s, "i1", "HER-001", 5)

	err := s.MovementRepository().Create(ctx, &entity.Movement{ID: "m1", ItemID: "nope", Type: entity.MovementTypeEntry, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = s.MovementRepository().Create(ctx, &entity.Movement{ID: "m1", ItemID: "i1", Type: entity.MovementTypeEntry, Quantity: 1, CreatedBy: "ghost"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestDeleteRequiresCascade(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedItem(t, s, "i1", "HER-001", 5)
	require.NoError(t, s.UserRepository().Create(ctx, &entity.User{ID: "u1", Username: "ana"}))
	require.NoError(t, s.MovementRepository().Create(ctx, &entity.Movement{ID: "m1", ItemID: "i1", Type: entity.MovementTypeEntry, Quantity: 1, CreatedBy: "u1"}))

	_, err := s.ItemRepository().Delete(ctx, "i1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = s.UserRepository().Delete(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	n, err := s.MovementRepository().ClearActor(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	ok, err := s.UserRepository().Delete(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)

	n, err = s.MovementRepository().DeleteByItem(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	ok, err = s.ItemRepository().Delete(ctx, "i1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.ItemRepository().Delete(ctx, "i1")
	require.NoError(t, err)
	assert.False(t, ok)
}
