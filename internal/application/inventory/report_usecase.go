package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-insumos/internal/domain/repository"
)

// StockReportUseCase genera el listado de stock actual (PDF) para descargar.
type StockReportUseCase struct {
	itemRepo  repository.ItemRepository
	generator StockReportGenerator
	now       func() time.Time
}

// NewStockReportUseCase construye el caso de uso.
func NewStockReportUseCase(itemRepo repository.ItemRepository, generator StockReportGenerator) *StockReportUseCase {
	return &StockReportUseCase{itemRepo: itemRepo, generator: generator, now: time.Now}
}

// Download devuelve el PDF con todos los insumos ordenados por código y el nombre de archivo sugerido.
func (uc *StockReportUseCase) Download(ctx context.Context) (pdfBytes []byte, filename string, err error) {
	items, err := uc.itemRepo.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: listar insumos: %w", err)
	}
	now := uc.now()
	pdfBytes, err = uc.generator.GenerateStockReport(ctx, items, now)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("inventario_%s.pdf", now.Format("20060102")), nil
}
