// Seeder de desarrollo: crea el usuario superAdmin inicial si no existe.
// Fuera de development no hace nada.
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/usuarios-api/internal/domain/entity"
	"github.com/jhoicas/usuarios-api/internal/infrastructure/postgres"
	"github.com/jhoicas/usuarios-api/pkg/config"
	"github.com/jhoicas/usuarios-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	if cfg.App.Env != "development" {
		log.Warn().Str("env", cfg.App.Env).Msg("seed omitido: solo corre en development")
		return
	}

	pool, err := postgres.NewPool(context.Background(), cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	repo := postgres.NewUserRepository(pool)

	exists, err := repo.ExistsByRole(entity.RoleSuperAdmin)
	if err != nil {
		log.Fatal().Err(err).Msg("verificar superAdmin existente")
	}
	if exists {
		log.Info().Msg("superAdmin ya existe, seed omitido")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hashear password del seed")
	}

	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     "admin",
		Email:        "admin@raison.com",
		PasswordHash: string(hash),
		Role:         entity.RoleSuperAdmin,
		DocumentID:   "123456789",
		DocumentType: entity.DocumentTypeNIT,
		IsActive:     true,
		CreatedAt:    time.Now(),
		CreatedBy:    "system",
	}
	if err := repo.Create(user); err != nil {
		log.Fatal().Err(err).Msg("crear superAdmin")
	}
	log.Info().Str("email", user.Email).Msg("superAdmin creado")
}
