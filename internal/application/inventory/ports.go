package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-insumos/internal/domain/entity"
	"github.com/jhoicas/inventario-insumos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el ledger: stock del insumo y movimiento se confirman juntos o no se confirman.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// StockReportGenerator genera el listado de stock en PDF.
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, items []*entity.Item, generatedAt time.Time) ([]byte, error)
}
