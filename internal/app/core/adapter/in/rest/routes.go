package rest

import (
	"github.com/gofiber/fiber/v3"

	"github.com/JoeShih716/go-bank-ledger/internal/app/core/usecase"
)

// NewApp 建立已註冊所有路由的 fiber App
func NewApp(core *usecase.CoreUseCase) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler,
	})
	InitializeRoutes(app, core)
	return app
}

func InitializeRoutes(app *fiber.App, core *usecase.CoreUseCase) {
	h := NewHandler(core)
	api := app.Group("/api/accounts")
	api.Post("/", h.CreateAccount)
	api.Get("/", h.ListAccounts)
	api.Post("/transfer", h.TransferFunds)
	api.Get("/:id", h.GetAccount)
	api.Put("/:id/deposit", h.Deposit)
	api.Put("/:id/withdraw", h.Withdraw)
	api.Delete("/:id", h.DeleteAccount)
	api.Get("/:id/transactions", h.ListTransactions)
}
