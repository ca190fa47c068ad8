package rest

import (
	"github.com/gofiber/fiber/v3"

	"github.com/JoeShih716/go-bank-ledger/internal/app/core/usecase"
)

type Handler struct {
	core *usecase.CoreUseCase
}

func NewHandler(core *usecase.CoreUseCase) *Handler {
	return &Handler{core: core}
}

func (h *Handler) CreateAccount(c fiber.Ctx) error {
	var body CreateAccountSchema
	if err := bindBody(c, &body); err != nil {
		return err
	}
	account, err := h.core.CreateAccount(c.Context(), body.HolderName, *body.Balance)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toAccountShow(*account))
}

func (h *Handler) GetAccount(c fiber.Ctx) error {
	id, err := accountID(c, "id")
	if err != nil {
		return err
	}
	account, err := h.core.GetAccount(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(toAccountShow(*account))
}

func (h *Handler) ListAccounts(c fiber.Ctx) error {
	page, err := h.core.ListAccounts(c.Context(), GetPageRequest(c))
	if err != nil {
		return err
	}
	return c.JSON(NewPagination(page, toAccountShow))
}

func (h *Handler) Deposit(c fiber.Ctx) error {
	id, err := accountID(c, "id")
	if err != nil {
		return err
	}
	var body AmountSchema
	if err := bindBody(c, &body); err != nil {
		return err
	}
	account, err := h.core.Deposit(c.Context(), id, *body.Amount)
	if err != nil {
		return err
	}
	return c.JSON(toAccountShow(*account))
}

func (h *Handler) Withdraw(c fiber.Ctx) error {
	id, err := accountID(c, "id")
	if err != nil {
		return err
	}
	var body AmountSchema
	if err := bindBody(c, &body); err != nil {
		return err
	}
	account, err := h.core.Withdraw(c.Context(), id, *body.Amount)
	if err != nil {
		return err
	}
	return c.JSON(toAccountShow(*account))
}

func (h *Handler) DeleteAccount(c fiber.Ctx) error {
	id, err := accountID(c, "id")
	if err != nil {
		return err
	}
	if err := h.core.DeleteAccount(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) TransferFunds(c fiber.Ctx) error {
	var body TransferSchema
	if err := bindBody(c, &body); err != nil {
		return err
	}
	if err := h.core.TransferFunds(c.Context(), body.FromAccountID, body.ToAccountID, *body.Amount); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) ListTransactions(c fiber.Ctx) error {
	id, err := accountID(c, "id")
	if err != nil {
		return err
	}
	page, err := h.core.ListTransactions(c.Context(), id, GetPageRequest(c))
	if err != nil {
		return err
	}
	return c.JSON(NewPagination(page, toTransactionShow))
}
