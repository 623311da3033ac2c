// Package routes defines the API routing configuration.
package routes

import (
	"log/slog"

	"ledger/internal/handlers"
	"ledger/internal/repositories"
	"ledger/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes wires the wallet service over db and mounts its handlers.
func SetupRoutes(app *fiber.App, db *repositories.Database, logger *slog.Logger) {
	walletService := wallet.NewService(db, logger)
	walletHandler := handlers.NewWalletHandler(walletService)

	app.Get("/health", handlers.HealthCheck(db.Backend, db, logger))

	clientes := app.Group("/clientes/:id")
	clientes.Post("/transacoes", walletHandler.PostTransaction)
	clientes.Get("/extrato", walletHandler.GetStatement)
}
