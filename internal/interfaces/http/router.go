package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/usuarios-api/internal/application/auth"
	"github.com/jhoicas/usuarios-api/internal/application/usecase"
	"github.com/jhoicas/usuarios-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	UserUC          *usecase.UserUseCase
	JWTAccessSecret string
}

// Router registra las rutas de la API. La restricción de roles de cada
// operación se declara aquí, explícita, junto a la ruta.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)

	// Users (protegido: Bearer Token + RBAC por ruta)
	userHandler := NewUserHandler(deps.UserUC)
	users := api.Group("/users", AuthMiddleware(deps.JWTAccessSecret))

	// /me va antes de /:id para que Fiber no lo capture como parámetro.
	users.Get("/me", RequireRole(), userHandler.Me)
	users.Post("/", RequireRole(entity.RoleAdmin), userHandler.Create)
	users.Get("/", RequireRole(entity.RoleAdmin, entity.RoleBodeguero, entity.RoleVendedor), userHandler.List)
	users.Get("/:id", RequireRole(entity.RoleAdmin, entity.RoleBodeguero, entity.RoleVendedor), userHandler.GetByID)
	users.Patch("/:id", RequireRole(entity.RoleAdmin), userHandler.Update)
	users.Delete("/:id", RequireRole(entity.RoleAdmin), userHandler.Delete)
}
