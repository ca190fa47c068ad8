package rest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-bank-ledger/internal/app/core/domain"
)

type CreateAccountSchema struct {
	HolderName string           `json:"holder_name"`
	Balance    *decimal.Decimal `json:"balance" validate:"required"`
}

type AmountSchema struct {
	Amount *decimal.Decimal `json:"amount" validate:"required"`
}

type TransferSchema struct {
	FromAccountID int64            `json:"from_account_id" validate:"required"`
	ToAccountID   int64            `json:"to_account_id" validate:"required"`
	Amount        *decimal.Decimal `json:"amount" validate:"required"`
}

type AccountShowSchema struct {
	ID         int64           `json:"id"`
	HolderName string          `json:"holder_name"`
	Balance    decimal.Decimal `json:"balance"`
}

type TransactionShowSchema struct {
	ID        int64           `json:"id"`
	RefID     string          `json:"ref_id"`
	AccountID int64           `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
}

func toAccountShow(a domain.Account) AccountShowSchema {
	return AccountShowSchema{
		ID:         a.ID,
		HolderName: a.HolderName,
		Balance:    a.Balance,
	}
}

func toTransactionShow(t domain.Transaction) TransactionShowSchema {
	return TransactionShowSchema{
		ID:        t.ID,
		RefID:     t.RefID.String(),
		AccountID: t.AccountID,
		Amount:    t.Amount,
		Type:      string(t.Type),
		Timestamp: t.Timestamp,
	}
}
