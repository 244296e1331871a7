package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-insumos/internal/application/auth"
	"github.com/jhoicas/inventario-insumos/internal/application/dto"
	"github.com/jhoicas/inventario-insumos/internal/application/usecase"
)

// UserHandler perfil del usuario autenticado y administración de usuarios.
type UserHandler struct {
	uc     *auth.AuthUseCase
	userUC *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *auth.AuthUseCase, userUC *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc, userUC: userUC}
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         usuarios
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	out, err := h.userUC.GetByID(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar usuario
// @Description  Los movimientos que registró se conservan sin usuario.
// @Tags         usuarios
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.DeleteUserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == GetUserID(c) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no puede eliminar su propio usuario"})
	}
	out, err := h.uc.DeleteUser(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
