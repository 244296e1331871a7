package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/jhoicas/inventario-insumos/internal/application/auth"
	"github.com/jhoicas/inventario-insumos/internal/application/dto"
	"github.com/jhoicas/inventario-insumos/internal/application/inventory"
	"github.com/jhoicas/inventario-insumos/internal/application/usecase"
	"github.com/jhoicas/inventario-insumos/internal/domain/entity"
	"github.com/swaggo/swag"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC           *usecase.ItemUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	StockReport      *inventory.StockReportUseCase
	AuthUC           *auth.AuthUseCase
	UserUC           *usecase.UserUseCase
	JWTSecret        string
	AuthRateLimit    int // peticiones por minuto e IP; 0 = sin límite
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	api.Get("/openapi.json", openAPI)

	// Auth (público, con rate limit)
	authGroup := api.Group("/auth")
	if deps.AuthRateLimit > 0 {
		authGroup.Use(authLimiter(deps.AuthRateLimit))
	}
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	items := protected.Group("/insumos")
	itemHandler := NewItemHandler(deps.ItemUC, deps.RegisterMovement, deps.StockReport)
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Get("/reporte.pdf", itemHandler.Report)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", adminOnly, itemHandler.Delete)
	items.Get("/:id/movimientos", itemHandler.Movements)

	movements := protected.Group("/movimientos")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement)
	movements.Get("/", inventoryHandler.ListMovements)
	movements.Post("/", inventoryHandler.RegisterMovement)

	users := protected.Group("/usuarios")
	userHandler := NewUserHandler(deps.AuthUC, deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Delete("/:id", adminOnly, userHandler.Delete)
}

func authLimiter(perMinute int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "demasiadas solicitudes, intente en un minuto"})
		},
	})
}

// openAPI sirve el documento registrado en swag por el paquete docs.
func openAPI(c *fiber.Ctx) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "documentación no disponible"})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.SendString(doc)
}
