package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/inventario-insumos/internal/domain"
	"github.com/jhoicas/inventario-insumos/internal/domain/entity"
	"github.com/jhoicas/inventario-insumos/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepository)(nil)

// ItemRepository implementación en memoria de repository.ItemRepository.
type ItemRepository struct {
	store *Store
	tx    *state
}

func (r *ItemRepository) Create(ctx context.Context, item *entity.Item) error {
	return r.store.view(ctx, r.tx, func(st *state) error {
		if item.Stock < 0 {
			return fmt.Errorf("insumo %s: stock negativo", item.Code)
		}
		if _, ok := st.items[item.ID]; ok {
			return domain.ErrDuplicate
		}
		if findByCode(st, item.Code) != nil {
			return domain.ErrDuplicate
		}
		st.items[item.ID] = *item
		return nil
	})
}

func (r *ItemRepository) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	var out *entity.Item
	err := r.store.view(ctx, r.tx, func(st *state) error {
		if it, ok := st.items[id]; ok {
			out = &it
		}
		return nil
	})
	return out, err
}

func (r *ItemRepository) GetByCode(ctx context.Context, code string) (*entity.Item, error) {
	var out *entity.Item
	err := r.store.view(ctx, r.tx, func(st *state) error {
		out = findByCode(st, code)
		return nil
	})
	return out, err
}

// GetByCodeForUpdate equivale a GetByCode: la transacción ya tiene el lock del almacén.
func (r *ItemRepository) GetByCodeForUpdate(ctx context.Context, code string) (*entity.Item, error) {
	return r.GetByCode(ctx, code)
}

func (r *ItemRepository) GetByIDForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *ItemRepository) Update(ctx context.Context, item *entity.Item) error {
	return r.store.view(ctx, r.tx, func(st *state) error {
		if _, ok := st.items[item.ID]; !ok {
			return domain.ErrNotFound
		}
		if other := findByCode(st, item.Code); other != nil && other.ID != item.ID {
			return domain.ErrDuplicate
		}
		if item.Stock < 0 {
			return fmt.Errorf("insumo %s: stock negativo", item.Code)
		}
		st.items[item.ID] = *item
		return nil
	})
}

func (r *ItemRepository) UpdateStock(ctx context.Context, id string, stock int) error {
	return r.store.view(ctx, r.tx, func(st *state) error {
		it, ok := st.items[id]
		if !ok {
			return domain.ErrNotFound
		}
		if stock < 0 {
			return fmt.Errorf("insumo %s: stock negativo", it.Code)
		}
		it.Stock = stock
		it.UpdatedAt = time.Now()
		st.items[id] = it
		return nil
	})
}

func (r *ItemRepository) List(ctx context.Context) ([]*entity.Item, error) {
	var out []*entity.Item
	err := r.store.view(ctx, r.tx, func(st *state) error {
		out = make([]*entity.Item, 0, len(st.items))
		for _, it := range st.items {
			it := it
			out = append(out, &it)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *ItemRepository) Delete(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := r.store.view(ctx, r.tx, func(st *state) error {
		if _, ok := st.items[id]; !ok {
			return nil
		}
		for _, row := range st.movements {
			if row.mov.ItemID == id {
				return fmt.Errorf("insumo %s tiene movimientos: %w", id, domain.ErrInvalidInput)
			}
		}
		delete(st.items, id)
		deleted = true
		return nil
	})
	return deleted, err
}

func findByCode(st *state, code string) *entity.Item {
	for _, it := range st.items {
		if it.Code == code {
			it := it
			return &it
		}
	}
	return nil
}
