package domain

import "github.com/shopspring/decimal"

// Account 帳戶
type Account struct {
	ID         int64           `json:"id"`
	HolderName string          `json:"holder_name"`
	Balance    decimal.Decimal `json:"balance"`
}

// NewAccount 建立尚未持久化的帳戶，ID 由 Ledger 分配
func NewAccount(holderName string, balance decimal.Decimal) *Account {
	return &Account{
		HolderName: holderName,
		Balance:    balance,
	}
}

// Deposit 存款
func (a *Account) Deposit(amount decimal.Decimal) {
	a.Balance = a.Balance.Add(amount)
}

// Withdraw 提款，餘額不足時不修改帳戶
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if a.Balance.LessThan(amount) {
		return ErrInsufficientBalance
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}
