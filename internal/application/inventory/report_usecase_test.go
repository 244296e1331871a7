package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/inventario-insumos/internal/application/inventory"
	"github.com/jhoicas/inventario-insumos/internal/domain/entity"
	"github.com/jhoicas/inventario-insumos/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	items []*entity.Item
	err   error
}

func (g *fakeGenerator) GenerateStockReport(_ context.Context, items []*entity.Item, _ time.Time) ([]byte, error) {
	g.items = items
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-fake"), nil
}

func TestStockReport_Download(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.ItemRepository().Create(ctx, &entity.Item{ID: "b", Code: "B-1", Name: "B", Location: "x", Stock: 1}))
	require.NoError(t, store.ItemRepository().Create(ctx, &entity.Item{ID: "a", Code: "A-1", Name: "A", Location: "x", Stock: 2}))

	gen := &fakeGenerator{}
	uc := inventory.NewStockReportUseCase(store.ItemRepository(), gen)

	pdf, filename, err := uc.Download(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	assert.Regexp(t, `^inventario_\d{8}\.pdf$`, filename)
	require.Len(t, gen.items, 2)
	assert.Equal(t, "A-1", gen.items[0].Code)
}

func TestStockReport_GeneratorError(t *testing.T) {
	store := memory.NewStore()
	gen := &fakeGenerator{err: errors.New("sin fuentes")}
	uc := inventory.NewStockReportUseCase(store.ItemRepository(), gen)

	_, _, err := uc.Download(context.Background())
	assert.ErrorIs(t, err, gen.err)
}
