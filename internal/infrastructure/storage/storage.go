// Package storage elige el adaptador de persistencia según STORE_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-insumos/internal/application/auth"
	"github.com/jhoicas/inventario-insumos/internal/application/inventory"
	"github.com/jhoicas/inventario-insumos/internal/domain/repository"
	"github.com/jhoicas/inventario-insumos/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-insumos/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-insumos/pkg/config"
	"github.com/jhoicas/inventario-insumos/pkg/logger"
)

// Backend repos y runners de transacción listos para inyectar en los casos de uso.
type Backend struct {
	Driver    string
	Items     repository.ItemRepository
	Movements repository.MovementRepository
	Users     repository.UserRepository
	Tx        inventory.TxRunner
	Identity  auth.IdentityTxRunner
	close     func()
}

// Close libera conexiones. Seguro de llamar más de una vez.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
		b.close = nil
	}
}

// Open abre el backend configurado. Con postgres aplica las migraciones pendientes.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Backend, error) {
	switch cfg.App.StoreDriver {
	case config.StoreDriverMemory:
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		return NewMemory(), nil
	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("migraciones: %w", err)
		}
		if len(applied) > 0 {
			log.Info().Strs("versions", applied).Msg("migraciones aplicadas")
		}
		tx := postgres.NewTxRunner(pool)
		return &Backend{
			Driver:    config.StoreDriverPostgres,
			Items:     postgres.NewItemRepository(pool),
			Movements: postgres.NewMovementRepository(pool),
			Users:     postgres.NewUserRepository(pool),
			Tx:        tx,
			Identity:  tx,
			close:     pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("STORE_DRIVER desconocido: %q", cfg.App.StoreDriver)
	}
}

// NewMemory backend en memoria, usado en desarrollo y tests.
func NewMemory() *Backend {
	store := memory.NewStore()
	return &Backend{
		Driver:    config.StoreDriverMemory,
		Items:     store.ItemRepository(),
		Movements: store.MovementRepository(),
		Users:     store.UserRepository(),
		Tx:        store,
		Identity:  store,
	}
}
