package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/inventario-insumos/internal/domain"
	"github.com/jhoicas/inventario-insumos/internal/domain/entity"
	"github.com/jhoicas/inventario-insumos/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepository)(nil)

// MovementRepository implementación en memoria de repository.MovementRepository.
type MovementRepository struct {
	store *Store
	tx    *state
}

func (r *MovementRepository) Create(ctx context.Context, m *entity.Movement) error {
	return r.store.view(ctx, r.tx, func(st *state) error {
		if _, ok := st.items[m.ItemID]; !ok {
			return fmt.Errorf("movimiento: insumo %s: %w", m.ItemID, domain.ErrNotFound)
		}
		if m.CreatedBy != "" {
			if _, ok := st.users[m.CreatedBy]; !ok {
				return fmt.Errorf("movimiento: usuario %s: %w", m.CreatedBy, domain.ErrUserNotFound)
			}
		}
		if m.Quantity <= 0 || !entity.ValidMovementType(m.Type) {
			return fmt.Errorf("movimiento: %w", domain.ErrInvalidInput)
		}
		for _, row := range st.movements {
			if row.mov.ID == m.ID {
				return domain.ErrDuplicate
			}
		}
		st.seq++
		st.movements = append(st.movements, movementRow{mov: *m, seq: st.seq})
		return nil
	})
}

func (r *MovementRepository) List(ctx context.Context) ([]*repository.MovementDetail, error) {
	return r.list(ctx, func(*entity.Movement) bool { return true })
}

func (r *MovementRepository) ListByItem(ctx context.Context, itemID string) ([]*repository.MovementDetail, error) {
	return r.list(ctx, func(m *entity.Movement) bool { return m.ItemID == itemID })
}

func (r *MovementRepository) list(ctx context.Context, keep func(*entity.Movement) bool) ([]*repository.MovementDetail, error) {
	var rows []movementRow
	var out []*repository.MovementDetail
	err := r.store.view(ctx, r.tx, func(st *state) error {
		for _, row := range st.movements {
			if keep(&row.mov) {
				rows = append(rows, row)
			}
		}
		// más reciente primero; a igual fecha, el último insertado primero
		sort.Slice(rows, func(i, j int) bool {
			if !rows[i].mov.CreatedAt.Equal(rows[j].mov.CreatedAt) {
				return rows[i].mov.CreatedAt.After(rows[j].mov.CreatedAt)
			}
			return rows[i].seq > rows[j].seq
		})
		out = make([]*repository.MovementDetail, 0, len(rows))
		for _, row := range rows {
			d := &repository.MovementDetail{Movement: row.mov}
			if it, ok := st.items[row.mov.ItemID]; ok {
				d.ItemCode = it.Code
				d.ItemName = it.Name
			}
			if u, ok := st.users[row.mov.CreatedBy]; ok {
				d.Username = u.Username
			}
			out = append(out, d)
		}
		return nil
	})
	return out, err
}

func (r *MovementRepository) DeleteByItem(ctx context.Context, itemID string) (int64, error) {
	var n int64
	err := r.store.view(ctx, r.tx, func(st *state) error {
		kept := st.movements[:0:0]
		for _, row := range st.movements {
			if row.mov.ItemID == itemID {
				n++
				continue
			}
			kept = append(kept, row)
		}
		st.movements = kept
		return nil
	})
	return n, err
}

func (r *MovementRepository) ClearActor(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.store.view(ctx, r.tx, func(st *state) error {
		for i := range st.movements {
			if st.movements[i].mov.CreatedBy == userID {
				st.movements[i].mov.CreatedBy = ""
				n++
			}
		}
		return nil
	})
	return n, err
}
