// seed carga datos de ejemplo: el usuario de pruebas, un insumo INS-001 y una salida de 10 unidades.
// Es idempotente: si el insumo ya existe no vuelve a registrar la salida.
// Con SEED_ADMIN_PASSWORD definido también crea el administrador.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/inventario-insumos/internal/application/auth"
	"github.com/jhoicas/inventario-insumos/internal/application/dto"
	"github.com/jhoicas/inventario-insumos/internal/application/inventory"
	"github.com/jhoicas/inventario-insumos/internal/application/usecase"
	"github.com/jhoicas/inventario-insumos/internal/domain"
	"github.com/jhoicas/inventario-insumos/internal/domain/entity"
	"github.com/jhoicas/inventario-insumos/internal/infrastructure/storage"
	"github.com/jhoicas/inventario-insumos/pkg/config"
	"github.com/jhoicas/inventario-insumos/pkg/logger"
)

var sampleItem = dto.CreateItemRequest{
	Code:        "INS-001",
	Name:        "Ejemplo Insumo",
	Description: "Insumo de prueba para la aplicación",
	Stock:       100,
	Location:    "Almacén 1",
}

const sampleExit = 10

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer backend.Close()

	if err := run(ctx, backend, cfg.Seed, log); err != nil {
		log.Error().Err(err).Msg("seed fallido")
		backend.Close()
		os.Exit(1)
	}
	log.Info().Msg("seed completado")
}

func run(ctx context.Context, backend *storage.Backend, seed config.SeedConfig, log *logger.Logger) error {
	authUC := auth.NewAuthUseCase(backend.Users, backend.Identity, auth.JWTConfig{Secret: "seed"})

	user, created, err := authUC.EnsureUser(ctx, seed.Username, seed.Password, entity.RoleBodeguero)
	if err != nil {
		return fmt.Errorf("usuario %s: %w", seed.Username, err)
	}
	log.Info().Str("username", user.Username).Bool("created", created).Msg("usuario de pruebas")

	if seed.AdminPassword != "" {
		admin, created, err := authUC.EnsureUser(ctx, seed.AdminUsername, seed.AdminPassword, entity.RoleAdmin)
		if err != nil {
			return fmt.Errorf("usuario %s: %w", seed.AdminUsername, err)
		}
		log.Info().Str("username", admin.Username).Bool("created", created).Msg("administrador")
	}

	itemUC := usecase.NewItemUseCase(backend.Items, backend.Tx)
	item, err := itemUC.Create(ctx, sampleItem)
	if errors.Is(err, domain.ErrDuplicate) {
		log.Info().Str("codigo", sampleItem.Code).Msg("el insumo ya existe, no se registran movimientos")
		return nil
	}
	if err != nil {
		return fmt.Errorf("insumo %s: %w", sampleItem.Code, err)
	}
	log.Info().Str("codigo", item.Code).Int("stock", item.Stock).Msg("insumo creado")

	movUC := inventory.NewRegisterMovementUseCase(backend.Tx, backend.Items, backend.Movements)
	res, err := movUC.RegisterMovement(ctx, inventory.MovementInput{
		ItemCode: item.Code,
		Type:     entity.MovementTypeExit,
		Quantity: sampleExit,
		UserID:   user.ID,
	})
	if err != nil {
		return fmt.Errorf("movimiento de ejemplo: %w", err)
	}
	log.Info().Str("codigo", item.Code).Int("stock", res.NewStock).Msg(res.Message)
	return nil
}
