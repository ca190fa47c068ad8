package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType 交易類型
type TransactionType string

const (
	// 存款
	TransactionTypeDeposit TransactionType = "deposit"
	// 提款
	TransactionTypeWithdraw TransactionType = "withdraw"
	// 轉帳
	TransactionTypeTransfer TransactionType = "transfer"
)

// Transaction 交易紀錄 (append-only)
// Amount 永遠是金額大小，不帶正負號
type Transaction struct {
	// ID: 由 Ledger 分配
	ID int64 `json:"id"`
	// RefID: 外部追蹤號 (UUID)
	RefID     uuid.UUID       `json:"ref_id"`
	AccountID int64           `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
	Type      TransactionType `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewTransaction 建立一筆交易紀錄，時間戳記於建立時決定
func NewTransaction(accountID int64, amount decimal.Decimal, txType TransactionType, at time.Time) *Transaction {
	return &Transaction{
		RefID:     uuid.New(),
		AccountID: accountID,
		Amount:    amount,
		Type:      txType,
		Timestamp: at,
	}
}

// Transfer 轉帳請求
type Transfer struct {
	From   int64
	To     int64
	Amount decimal.Decimal
}

// LockIDs 回傳需要鎖定的帳號 ID，由小到大排列以避免死鎖
// From 與 To 相同時只回傳一個 ID
func (t Transfer) LockIDs() (ids []int64) {
	ids = make([]int64, 0, 2)
	switch {
	case t.From < t.To:
		ids = append(ids, t.From, t.To)
	case t.From > t.To:
		ids = append(ids, t.To, t.From)
	default:
		ids = append(ids, t.From)
	}
	return ids
}
