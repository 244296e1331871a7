package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-insumos/internal/domain"
	"github.com/jhoicas/inventario-insumos/internal/domain/entity"
	"github.com/jhoicas/inventario-insumos/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre PostgreSQL.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de movimientos. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta el movimiento; created_by vacío se guarda como NULL.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	var createdBy *string
	if m.CreatedBy != "" {
		if !validUUID(m.CreatedBy) {
			return fmt.Errorf("insert movement: %w", domain.ErrUserNotFound)
		}
		createdBy = &m.CreatedBy
	}
	query := `
		INSERT INTO movements (id, item_id, type, quantity, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, m.ID, m.ItemID, m.Type, m.Quantity, m.CreatedAt, createdBy)
	if err != nil {
		if isForeignKeyViolation(err) {
			if violatedConstraint(err) == "movements_created_by_fkey" {
				return fmt.Errorf("insert movement: %w", domain.ErrUserNotFound)
			}
			return fmt.Errorf("insert movement: %w", domain.ErrNotFound)
		}
		if isCheckViolation(err) {
			return fmt.Errorf("insert movement: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

const movementDetailQuery = `
	SELECT m.id, m.item_id, m.type, m.quantity, m.created_at, m.created_by,
	       i.code, i.name, COALESCE(u.username, '')
	FROM movements m
	JOIN items i ON i.id = m.item_id
	LEFT JOIN users u ON u.id = m.created_by`

// List devuelve todos los movimientos, más recientes primero.
func (r *MovementRepo) List(ctx context.Context) ([]*repository.MovementDetail, error) {
	return r.query(ctx, movementDetailQuery+` ORDER BY m.created_at DESC, m.id DESC`)
}

// ListByItem devuelve los movimientos de un insumo, más recientes primero.
func (r *MovementRepo) ListByItem(ctx context.Context, itemID string) ([]*repository.MovementDetail, error) {
	if !validUUID(itemID) {
		return []*repository.MovementDetail{}, nil
	}
	return r.query(ctx, movementDetailQuery+` WHERE m.item_id = $1 ORDER BY m.created_at DESC, m.id DESC`, itemID)
}

func (r *MovementRepo) query(ctx context.Context, sql string, args ...any) ([]*repository.MovementDetail, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	list := make([]*repository.MovementDetail, 0)
	for rows.Next() {
		var d repository.MovementDetail
		var createdBy *string
		if err := rows.Scan(
			&d.ID, &d.ItemID, &d.Type, &d.Quantity, &d.CreatedAt, &createdBy,
			&d.ItemCode, &d.ItemName, &d.Username,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if createdBy != nil {
			d.CreatedBy = *createdBy
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// DeleteByItem elimina los movimientos del insumo (cascada explícita al borrar el insumo).
func (r *MovementRepo) DeleteByItem(ctx context.Context, itemID string) (int64, error) {
	if !validUUID(itemID) {
		return 0, nil
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM movements WHERE item_id = $1`, itemID)
	if err != nil {
		return 0, fmt.Errorf("delete movements: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ClearActor deja created_by en NULL para los movimientos del usuario.
func (r *MovementRepo) ClearActor(ctx context.Context, userID string) (int64, error) {
	if !validUUID(userID) {
		return 0, nil
	}
	tag, err := r.q.Exec(ctx, `UPDATE movements SET created_by = NULL WHERE created_by = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("clear movement actor: %w", err)
	}
	return tag.RowsAffected(), nil
}
