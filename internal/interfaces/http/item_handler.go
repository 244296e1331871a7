package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-insumos/internal/application/dto"
	"github.com/jhoicas/inventario-insumos/internal/application/inventory"
	"github.com/jhoicas/inventario-insumos/internal/application/usecase"
)

// ItemHandler maneja el catálogo de insumos (protegido).
type ItemHandler struct {
	uc     *usecase.ItemUseCase
	ledger *inventory.RegisterMovementUseCase
	report *inventory.StockReportUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase, ledger *inventory.RegisterMovementUseCase, report *inventory.StockReportUseCase) *ItemHandler {
	return &ItemHandler{uc: uc, ledger: ledger, report: report}
}

// List godoc
// @Summary      Listar insumos
// @Tags         insumos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ItemListResponse
// @Router       /api/insumos [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear insumo
// @Tags         insumos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateItemRequest  true  "insumo"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/insumos [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Detalle de insumo
// @Tags         insumos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del insumo"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/insumos/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar insumo (parcial)
// @Tags         insumos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                 true  "ID del insumo"
// @Param        body  body  dto.UpdateItemRequest  true  "campos a modificar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/insumos/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar insumo y sus movimientos
// @Tags         insumos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del insumo"
// @Success      200  {object}  dto.DeleteItemResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/insumos/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	removed, err := h.uc.Delete(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DeleteItemResponse{ID: id, MovementsRemoved: removed})
}

// Movements godoc
// @Summary      Historial de movimientos de un insumo
// @Tags         insumos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del insumo"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/insumos/{id}/movimientos [get]
func (h *ItemHandler) Movements(c *fiber.Ctx) error {
	out, err := h.ledger.ListItemMovements(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Listado de stock en PDF
// @Tags         insumos
// @Produce      application/pdf
// @Security     BearerAuth
// @Success      200  {file}  binary
// @Router       /api/insumos/reporte.pdf [get]
func (h *ItemHandler) Report(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.report.Download(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
