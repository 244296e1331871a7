package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-insumos/internal/application/dto"
	"github.com/jhoicas/inventario-insumos/internal/application/inventory"
)

// InventoryHandler maneja el registro y consulta de movimientos (protegido).
type InventoryHandler struct {
	uc *inventory.RegisterMovementUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RegisterMovementUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento (ENTRADA/SALIDA)
// @Description  El usuario del token queda como responsable. Una SALIDA mayor al stock devuelve 409.
// @Tags         movimientos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.RegisterMovementRequest  true  "codigo_insumo, tipo, cantidad"
// @Success      201   {object}  dto.RegisterMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Router       /api/movimientos [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.RegisterMovementFromRequest(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Historial de movimientos (más recientes primero)
// @Tags         movimientos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movimientos [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	out, err := h.uc.ListMovements(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
