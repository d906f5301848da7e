// cmd/seedadmin/main.go — Crea/actualiza el usuario administrador inicial.
// Uso: ADMIN_EMAIL=... ADMIN_PASSWORD=... go run ./cmd/seedadmin
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/santyarena1/soundtec-fin/internal/config"
	"github.com/santyarena1/soundtec-fin/internal/infra"
	"github.com/santyarena1/soundtec-fin/internal/repository"
	"github.com/santyarena1/soundtec-fin/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	users := service.NewUserService(repository.NewUserRepository(db), infra.NewMailer(cfg))
	if err := users.EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("seed error: %v", err)
	}
	fmt.Printf("✅ Administrador '%s' verificado/creado\n", cfg.AdminEmail)
}
