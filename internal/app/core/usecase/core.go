package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/JoeShih716/go-bank-ledger/internal/app/core/domain"
)

// CoreUseCase 是核心業務邏輯層
// 本身不保存任何狀態，每次操作都重新讀取 Ledger
type CoreUseCase struct {
	ledger Ledger
	logger *zap.Logger
	now    func() time.Time
}

// Option 設定 CoreUseCase
type Option func(*CoreUseCase)

// WithClock 替換交易紀錄使用的時鐘
func WithClock(now func() time.Time) Option {
	return func(c *CoreUseCase) {
		c.now = now
	}
}

func NewCoreUseCase(ledger Ledger, logger *zap.Logger, opts ...Option) *CoreUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &CoreUseCase{
		ledger: ledger,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateAccount 建立帳戶
func (c *CoreUseCase) CreateAccount(ctx context.Context, holderName string, initialBalance decimal.Decimal) (*domain.Account, error) {
	account := domain.NewAccount(holderName, initialBalance)
	err := c.ledger.WithinTransaction(ctx, func(tx LedgerTx) error {
		return tx.SaveAccount(ctx, account)
	})
	if err != nil {
		return nil, err
	}
	c.logger.Info("account created",
		zap.Int64("account_id", account.ID),
		zap.String("balance", account.Balance.String()))
	return account, nil
}

// GetAccount 取得帳戶
func (c *CoreUseCase) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	return c.ledger.GetAccount(ctx, id)
}

// Deposit 存款並記錄交易
func (c *CoreUseCase) Deposit(ctx context.Context, id int64, amount decimal.Decimal) (*domain.Account, error) {
	var account *domain.Account
	err := c.ledger.WithinTransaction(ctx, func(tx LedgerTx) error {
		var err error
		account, err = tx.GetAccount(ctx, id)
		if err != nil {
			return err
		}
		account.Deposit(amount)
		if err := tx.SaveAccount(ctx, account); err != nil {
			return err
		}
		return tx.AppendTransaction(ctx, domain.NewTransaction(id, amount, domain.TransactionTypeDeposit, c.now()))
	})
	if err != nil {
		c.reject("deposit", err, zap.Int64("account_id", id))
		return nil, err
	}
	c.logger.Info("deposit committed",
		zap.Int64("account_id", id),
		zap.String("amount", amount.String()),
		zap.String("balance", account.Balance.String()))
	return account, nil
}

// Withdraw 提款並記錄交易，餘額不足回傳 domain.ErrInsufficientBalance
func (c *CoreUseCase) Withdraw(ctx context.Context, id int64, amount decimal.Decimal) (*domain.Account, error) {
	var account *domain.Account
	err := c.ledger.WithinTransaction(ctx, func(tx LedgerTx) error {
		var err error
		account, err = tx.GetAccount(ctx, id)
		if err != nil {
			return err
		}
		if err := account.Withdraw(amount); err != nil {
			return err
		}
		if err := tx.SaveAccount(ctx, account); err != nil {
			return err
		}
		return tx.AppendTransaction(ctx, domain.NewTransaction(id, amount, domain.TransactionTypeWithdraw, c.now()))
	})
	if err != nil {
		c.reject("withdraw", err, zap.Int64("account_id", id))
		return nil, err
	}
	c.logger.Info("withdraw committed",
		zap.Int64("account_id", id),
		zap.String("amount", amount.String()),
		zap.String("balance", account.Balance.String()))
	return account, nil
}

// DeleteAccount 刪除帳戶，交易紀錄保留
func (c *CoreUseCase) DeleteAccount(ctx context.Context, id int64) error {
	err := c.ledger.WithinTransaction(ctx, func(tx LedgerTx) error {
		if _, err := tx.GetAccount(ctx, id); err != nil {
			return err
		}
		return tx.DeleteAccount(ctx, id)
	})
	if err != nil {
		c.reject("delete account", err, zap.Int64("account_id", id))
		return err
	}
	c.logger.Info("account deleted", zap.Int64("account_id", id))
	return nil
}

// TransferFunds 轉帳
//
// 兩個帳戶一律依 ID 由小到大鎖定 (與轉出/轉入角色無關)，
// 讓任何共用帳戶的並發轉帳都以相同順序取得鎖。
// 只為轉出帳戶寫入一筆 transfer 紀錄。
func (c *CoreUseCase) TransferFunds(ctx context.Context, fromID, toID int64, amount decimal.Decimal) error {
	transfer := domain.Transfer{From: fromID, To: toID, Amount: amount}
	err := c.ledger.WithinTransaction(ctx, func(tx LedgerTx) error {
		locked := make(map[int64]*domain.Account, 2)
		for _, id := range transfer.LockIDs() {
			account, err := tx.GetAccount(ctx, id)
			if err != nil {
				return err
			}
			locked[id] = account
		}
		from, to := locked[transfer.From], locked[transfer.To]

		if err := from.Withdraw(transfer.Amount); err != nil {
			return err
		}
		to.Deposit(transfer.Amount)

		if err := tx.SaveAccount(ctx, from); err != nil {
			return err
		}
		if to != from {
			if err := tx.SaveAccount(ctx, to); err != nil {
				return err
			}
		}
		return tx.AppendTransaction(ctx, domain.NewTransaction(from.ID, transfer.Amount, domain.TransactionTypeTransfer, c.now()))
	})
	if err != nil {
		c.reject("transfer", err, zap.Int64("from", fromID), zap.Int64("to", toID))
		return err
	}
	c.logger.Info("transfer committed",
		zap.Int64("from", fromID),
		zap.Int64("to", toID),
		zap.String("amount", amount.String()))
	return nil
}

// ListAccounts 分頁列出帳戶
func (c *CoreUseCase) ListAccounts(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Account], error) {
	return c.ledger.ListAccounts(ctx, req)
}

// ListTransactions 分頁列出帳戶交易紀錄 (新到舊)
// 不檢查帳戶是否存在，沒有紀錄時回傳空頁
func (c *CoreUseCase) ListTransactions(ctx context.Context, accountID int64, req domain.PageRequest) (domain.Page[domain.Transaction], error) {
	return c.ledger.ListTransactionsByAccount(ctx, accountID, req)
}

func (c *CoreUseCase) reject(op string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	if errors.Is(err, domain.ErrAccountNotFound) || errors.Is(err, domain.ErrInsufficientBalance) {
		c.logger.Debug(op+" rejected", fields...)
		return
	}
	c.logger.Error(op+" failed", fields...)
}
