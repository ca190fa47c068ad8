package usecase

import (
	"context"

	"github.com/JoeShih716/go-bank-ledger/internal/app/core/domain"
)

// Ledger 是帳務儲存層的介面
type Ledger interface {
	// WithinTransaction 在單一原子單元內執行 fn
	// fn 回傳錯誤時所有寫入皆不生效
	WithinTransaction(ctx context.Context, fn func(tx LedgerTx) error) error
	// GetAccount 取得帳戶 (不加鎖)
	GetAccount(ctx context.Context, id int64) (*domain.Account, error)
	// ListAccounts 依 ID 遞增分頁列出帳戶
	ListAccounts(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Account], error)
	// ListTransactionsByAccount 依時間遞減分頁列出帳戶的交易紀錄
	ListTransactionsByAccount(ctx context.Context, accountID int64, req domain.PageRequest) (domain.Page[domain.Transaction], error)
}

// LedgerTx 是原子單元內可用的操作
// 透過 GetAccount 讀取的帳戶會被鎖定直到 commit 或 rollback
type LedgerTx interface {
	GetAccount(ctx context.Context, id int64) (*domain.Account, error)
	// SaveAccount upsert，ID 為 0 時分配新 ID 並寫回 account
	SaveAccount(ctx context.Context, account *domain.Account) error
	DeleteAccount(ctx context.Context, id int64) error
	// AppendTransaction 新增交易紀錄並寫回分配的 ID
	AppendTransaction(ctx context.Context, tran *domain.Transaction) error
}
