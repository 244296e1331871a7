package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/inventario-insumos/internal/application/dto"
	"github.com/jhoicas/inventario-insumos/internal/application/inventory"
	"github.com/jhoicas/inventario-insumos/internal/domain"
	"github.com/jhoicas/inventario-insumos/internal/domain/entity"
	"github.com/jhoicas/inventario-insumos/internal/domain/repository"
	"github.com/jhoicas/inventario-insumos/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store *memory.Store
	uc    *inventory.RegisterMovementUseCase
}

func newFixture(t *testing.T, items ...*entity.Item) *fixture {
	t.Helper()
	store := memory.NewStore()
	for _, it := range items {
		require.NoError(t, store.ItemRepository().Create(context.Background(), it))
	}
	uc := inventory.NewRegisterMovementUseCase(store, store.ItemRepository(), store.MovementRepository())
	return &fixture{store: store, uc: uc}
}

func hammer(stock int) *entity.Item {
	return &entity.Item{ID: "item-her", Code: "HER-001", Name: "Martillo", Location: "Estante A", Stock: stock}
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	it, err := f.store.ItemRepository().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, it)
	return it.Stock
}

func (f *fixture) movements(t *testing.T) []*repository.MovementDetail {
	t.Helper()
	list, err := f.store.MovementRepository().List(context.Background())
	require.NoError(t, err)
	return list
}

func TestRegisterMovement_Entry(t *testing.T) {
	f := newFixture(t, hammer(15))

	res, err := f.uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ItemCode: "HER-001", Type: entity.MovementTypeEntry, Quantity: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 25, res.NewStock)
	assert.Equal(t, "Entrada registrada: +10 unidades de Martillo", res.Message)
	assert.Equal(t, 25, f.stock(t, "item-her"))

	movs := f.movements(t)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeEntry, movs[0].Type)
	assert.Equal(t, 10, movs[0].Quantity)
	assert.Equal(t, "item-her", movs[0].ItemID)
}

func TestRegisterMovement_Exit(t *testing.T) {
	f := newFixture(t, hammer(25))

	res, err := f.uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ItemCode: "HER-001", Type: entity.MovementTypeExit, Quantity: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 20, res.NewStock)
	assert.Equal(t, "Salida registrada: -5 unidades de Martillo", res.Message)
}

func TestRegisterMovement_ExitWholeStock(t *testing.T) {
	f := newFixture(t, hammer(7))

	res, err := f.uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ItemCode: "HER-001", Type: entity.MovementTypeExit, Quantity: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.NewStock)
}

func TestRegisterMovement_InsufficientStock(t *testing.T) {
	f := newFixture(t, hammer(25))

	_, err := f.uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ItemCode: "HER-001", Type: entity.MovementTypeExit, Quantity: 30,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 25, stockErr.Available)
	assert.Equal(t, 30, stockErr.Requested)
	assert.Equal(t, "Stock insuficiente. Disponible: 25 unidades. Solicitado: 30 unidades.", err.Error())

	assert.Equal(t, 25, f.stock(t, "item-her"))
	assert.Empty(t, f.movements(t))
}

func TestRegisterMovement_MessagesFormatLargeQuantitiesAlike(t *testing.T) {
	f := newFixture(t, hammer(0))

	res, err := f.uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ItemCode: "HER-001", Type: entity.MovementTypeEntry, Quantity: 1000,
	})
	require.NoError(t, err)
	assert.Equal(t, "Entrada registrada: +1000 unidades de Martillo", res.Message)

	_, err = f.uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ItemCode: "HER-001", Type: entity.MovementTypeExit, Quantity: 1500,
	})
	require.Error(t, err)
	assert.Equal(t, "Stock insuficiente. Disponible: 1000 unidades. Solicitado: 1500 unidades.", err.Error())

	res, err = f.uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ItemCode: "HER-001", Type: entity.MovementTypeExit, Quantity: 1000,
	})
	require.NoError(t, err)
	assert.Equal(t, "Salida registrada: -1000 unidades de Martillo", res.Message)
}

func TestRegisterMovement_InvalidQuantity(t *testing.T) {
	for _, typ := range []string{entity.MovementTypeEntry, entity.MovementTypeExit} {
		for _, qty := range []int{0, -3} {
			f := newFixture(t, hammer(10))
			_, err := f.uc.RegisterMovement(context.Background(), inventory.MovementInput{
				ItemCode: "HER-001", Type: typ, Quantity: qty,
			})
			assert.ErrorIs(t, err, domain.ErrInvalidInput, "%s %d", typ, qty)

			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, "cantidad", ve.Field)
			assert.Equal(t, 10, f.stock(t, "item-her"))
			assert.Empty(t, f.movements(t))
		}
	}
}

func TestRegisterMovement_InvalidType(t *testing.T) {
	f := newFixture(t, hammer(10))

	_, err := f.uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ItemCode: "HER-001", Type: "AJUSTE", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterMovement_UnknownItem(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ItemCode: "NOPE", Type: entity.MovementTypeEntry, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterMovement_NoDeduplication(t *testing.T) {
	f := newFixture(t, hammer(0))
	in := inventory.MovementInput{ItemCode: "HER-001", Type: entity.MovementTypeEntry, Quantity: 2}

	first, err := f.uc.RegisterMovement(context.Background(), in)
	require.NoError(t, err)
	second, err := f.uc.RegisterMovement(context.Background(), in)
	require.NoError(t, err)

	assert.NotEqual(t, first.Movement.ID, second.Movement.ID)
	assert.Equal(t, 4, f.stock(t, "item-her"))
	assert.Len(t, f.movements(t), 2)
}

func TestRegisterMovement_LedgerInvariant(t *testing.T) {
	const initial = 40
	f := newFixture(t, hammer(initial))
	steps := []struct {
		typ string
		qty int
	}{
		{entity.MovementTypeEntry, 5},
		{entity.MovementTypeExit, 12},
		{entity.MovementTypeExit, 100}, // rechazada
		{entity.MovementTypeEntry, 1},
		{entity.MovementTypeExit, 34},
		{entity.MovementTypeExit, 1}, // rechazada, stock 0
	}
	for _, s := range steps {
		_, _ = f.uc.RegisterMovement(context.Background(), inventory.MovementInput{
			ItemCode: "HER-001", Type: s.typ, Quantity: s.qty,
		})
	}

	sum := initial
	for _, m := range f.movements(t) {
		sum += m.Delta()
	}
	assert.Equal(t, sum, f.stock(t, "item-her"))
	assert.Equal(t, 0, f.stock(t, "item-her"))
	assert.Len(t, f.movements(t), 4)
}

func TestRegisterMovement_ConcurrentExits(t *testing.T) {
	f := newFixture(t, hammer(10))

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, rejected := 0, 0
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.RegisterMovement(context.Background(), inventory.MovementInput{
				ItemCode: "HER-001", Type: entity.MovementTypeExit, Quantity: 1,
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if errors.Is(err, domain.ErrInsufficientStock) {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.Equal(t, 15, rejected)
	assert.Equal(t, 0, f.stock(t, "item-her"))
	assert.Len(t, f.movements(t), 10)
}

func TestListMovements_NewestFirst(t *testing.T) {
	f := newFixture(t, hammer(10))
	t1 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := t1
	f.uc.SetClock(func() time.Time { return clock })

	_, err := f.uc.RegisterMovement(context.Background(), inventory.MovementInput{ItemCode: "HER-001", Type: entity.MovementTypeEntry, Quantity: 1})
	require.NoError(t, err)
	clock = t1.Add(time.Hour)
	_, err = f.uc.RegisterMovement(context.Background(), inventory.MovementInput{ItemCode: "HER-001", Type: entity.MovementTypeExit, Quantity: 2})
	require.NoError(t, err)

	out, err := f.uc.ListMovements(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, out.Total)
	assert.Equal(t, entity.MovementTypeExit, out.Items[0].Type)
	assert.True(t, out.Items[0].CreatedAt.Equal(t1.Add(time.Hour)))
	assert.Equal(t, entity.MovementTypeEntry, out.Items[1].Type)
	assert.Equal(t, "HER-001", out.Items[1].ItemCode)
	assert.Equal(t, "Martillo", out.Items[1].ItemName)
}

func TestRegisterMovementFromRequest_RecordsActor(t *testing.T) {
	f := newFixture(t, hammer(3))
	require.NoError(t, f.store.UserRepository().Create(context.Background(), &entity.User{ID: "u-1", Username: "ana"}))

	out, err := f.uc.RegisterMovementFromRequest(context.Background(), "u-1", dto.RegisterMovementRequest{
		ItemCode: "HER-001", Type: entity.MovementTypeEntry, Quantity: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, out.NewStock)
	require.NotNil(t, out.Movement.UserID)
	assert.Equal(t, "u-1", *out.Movement.UserID)

	list, err := f.uc.ListMovements(context.Background())
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "ana", list.Items[0].Username)
}

func TestListItemMovements(t *testing.T) {
	other := &entity.Item{ID: "item-cab", Code: "CAB-002", Name: "Cable", Location: "Estante B", Stock: 5}
	f := newFixture(t, hammer(10), other)

	_, err := f.uc.RegisterMovement(context.Background(), inventory.MovementInput{ItemCode: "HER-001", Type: entity.MovementTypeExit, Quantity: 1})
	require.NoError(t, err)
	_, err = f.uc.RegisterMovement(context.Background(), inventory.MovementInput{ItemCode: "CAB-002", Type: entity.MovementTypeExit, Quantity: 1})
	require.NoError(t, err)

	out, err := f.uc.ListItemMovements(context.Background(), "item-cab")
	require.NoError(t, err)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "CAB-002", out.Items[0].ItemCode)
	assert.Nil(t, out.Items[0].UserID)

	_, err = f.uc.ListItemMovements(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
