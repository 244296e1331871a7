// Package memory implementa los repositorios sobre un almacén en memoria protegido por mutex.
// Cada transacción trabaja sobre una copia del estado y la publica solo si fn no falla.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-insumos/internal/application/auth"
	"github.com/jhoicas/inventario-insumos/internal/application/inventory"
	"github.com/jhoicas/inventario-insumos/internal/domain/entity"
	"github.com/jhoicas/inventario-insumos/internal/domain/repository"
)

var (
	_ inventory.TxRunner    = (*Store)(nil)
	_ auth.IdentityTxRunner = (*Store)(nil)
)

type movementRow struct {
	mov entity.Movement
	seq int64
}

type state struct {
	items     map[string]entity.Item
	movements []movementRow
	users     map[string]entity.User
	seq       int64
}

func newState() *state {
	return &state{
		items: make(map[string]entity.Item),
		users: make(map[string]entity.User),
	}
}

func (s *state) clone() *state {
	c := &state{
		items:     make(map[string]entity.Item, len(s.items)),
		movements: make([]movementRow, len(s.movements)),
		users:     make(map[string]entity.User, len(s.users)),
		seq:       s.seq,
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	copy(c.movements, s.movements)
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

// Store almacén en memoria. El mutex serializa transacciones, lo que equivale al row lock de PostgreSQL.
type Store struct {
	mu    sync.Mutex
	state *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{state: newState()}
}

// ItemRepository repo de insumos fuera de transacción.
func (s *Store) ItemRepository() *ItemRepository { return &ItemRepository{store: s} }

// MovementRepository repo de movimientos fuera de transacción.
func (s *Store) MovementRepository() *MovementRepository { return &MovementRepository{store: s} }

// UserRepository repo de usuarios fuera de transacción.
func (s *Store) UserRepository() *UserRepository { return &UserRepository{store: s} }

// Run ejecuta fn con repos de insumos y movimientos atados a una copia del estado.
func (s *Store) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
) error) error {
	return s.inTx(ctx, func(tx *state) error {
		return fn(&ItemRepository{store: s, tx: tx}, &MovementRepository{store: s, tx: tx})
	})
}

// RunIdentity ejecuta fn con repos de movimientos y usuarios en una transacción.
func (s *Store) RunIdentity(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	userRepo repository.UserRepository,
) error) error {
	return s.inTx(ctx, func(tx *state) error {
		return fn(&MovementRepository{store: s, tx: tx}, &UserRepository{store: s, tx: tx})
	})
}

func (s *Store) inTx(ctx context.Context, fn func(tx *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.state.clone()
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.state = tx
	return nil
}

// view ejecuta fn sobre el estado: el de la transacción si tx != nil, si no el publicado bajo lock.
func (s *Store) view(ctx context.Context, tx *state, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if tx != nil {
		return fn(tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}
