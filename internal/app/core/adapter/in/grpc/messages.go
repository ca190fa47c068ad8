package grpc

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-bank-ledger/internal/app/core/domain"
)

type CreateAccountRequest struct {
	HolderName     string          `json:"holder_name"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

type GetAccountRequest struct {
	AccountID int64 `json:"account_id"`
}

type DeleteAccountRequest struct {
	AccountID int64 `json:"account_id"`
}

// AmountRequest 用於存款與提款
type AmountRequest struct {
	AccountID int64           `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
}

type TransferRequest struct {
	FromAccountID int64           `json:"from_account_id"`
	ToAccountID   int64           `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
}

type ListAccountsRequest struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

type ListTransactionsRequest struct {
	AccountID int64 `json:"account_id"`
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
}

type Empty struct{}

type AccountReply struct {
	AccountID  int64           `json:"account_id"`
	HolderName string          `json:"holder_name"`
	Balance    decimal.Decimal `json:"balance"`
}

type TransactionReply struct {
	TransactionID int64           `json:"transaction_id"`
	RefID         string          `json:"ref_id"`
	AccountID     int64           `json:"account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	Timestamp     time.Time       `json:"timestamp"`
}

type ListAccountsReply struct {
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Total    int64          `json:"total"`
	Accounts []AccountReply `json:"accounts"`
}

type ListTransactionsReply struct {
	Page         int                `json:"page"`
	PageSize     int                `json:"page_size"`
	Total        int64              `json:"total"`
	Transactions []TransactionReply `json:"transactions"`
}

func toAccountReply(a domain.Account) AccountReply {
	return AccountReply{
		AccountID:  a.ID,
		HolderName: a.HolderName,
		Balance:    a.Balance,
	}
}

func toTransactionReply(t domain.Transaction) TransactionReply {
	return TransactionReply{
		TransactionID: t.ID,
		RefID:         t.RefID.String(),
		AccountID:     t.AccountID,
		Amount:        t.Amount,
		Type:          string(t.Type),
		Timestamp:     t.Timestamp,
	}
}
