// Package sqlstore 以 GORM 實作 usecase.Ledger，支援 MySQL 與 PostgreSQL。
//
// 原子單元對應一個資料庫 transaction；單元內讀取帳戶時使用
// SELECT ... FOR UPDATE (悲觀鎖)，鎖定到 commit 或 rollback 為止，
// 因此 read-check-write 之間不會被其他 transaction 修改。
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/JoeShih716/go-bank-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-bank-ledger/internal/app/core/usecase"
	"github.com/JoeShih716/go-bank-ledger/pkg/database"
)

// sqlAccount 對應資料庫的 accounts 表
type sqlAccount struct {
	ID         int64           `gorm:"primaryKey;autoIncrement"`
	HolderName string          `gorm:"column:account_holder_name;size:255"`
	Balance    decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	CreatedAt  int64           `gorm:"autoCreateTime:milli"`
	UpdatedAt  int64           `gorm:"autoUpdateTime:milli"`
}

func (*sqlAccount) TableName() string {
	return "accounts"
}

// sqlTransaction 對應資料庫的 transactions 表
type sqlTransaction struct {
	ID         int64           `gorm:"primaryKey;autoIncrement"`
	RefID      string          `gorm:"column:ref_id;size:36;uniqueIndex"`
	AccountID  int64           `gorm:"index:idx_transactions_account_time,priority:1;not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Type       string          `gorm:"size:16;not null"`
	OccurredAt time.Time       `gorm:"index:idx_transactions_account_time,priority:2;not null"`
}

func (*sqlTransaction) TableName() string {
	return "transactions"
}

func toSQLAccount(a *domain.Account) sqlAccount {
	return sqlAccount{
		ID:         a.ID,
		HolderName: a.HolderName,
		Balance:    a.Balance,
	}
}

func toDomainAccount(row sqlAccount) domain.Account {
	return domain.Account{
		ID:         row.ID,
		HolderName: row.HolderName,
		Balance:    row.Balance,
	}
}

func toSQLTransaction(t *domain.Transaction) sqlTransaction {
	return sqlTransaction{
		ID:         t.ID,
		RefID:      t.RefID.String(),
		AccountID:  t.AccountID,
		Amount:     t.Amount,
		Type:       string(t.Type),
		OccurredAt: t.Timestamp,
	}
}

func toDomainTransaction(row sqlTransaction) domain.Transaction {
	refID, _ := uuid.Parse(row.RefID)
	return domain.Transaction{
		ID:        row.ID,
		RefID:     refID,
		AccountID: row.AccountID,
		Amount:    row.Amount,
		Type:      domain.TransactionType(row.Type),
		Timestamp: row.OccurredAt,
	}
}

type Ledger struct {
	client *database.Client
}

func NewLedger(client *database.Client) *Ledger {
	return &Ledger{
		client: client,
	}
}

// Migrate 建立或更新資料表
func (ledger *Ledger) Migrate(ctx context.Context) error {
	return ledger.client.DB().WithContext(ctx).AutoMigrate(&sqlAccount{}, &sqlTransaction{})
}

// WithinTransaction 以一個資料庫 transaction 執行 fn，fn 回傳錯誤時 rollback
func (ledger *Ledger) WithinTransaction(ctx context.Context, fn func(tx usecase.LedgerTx) error) error {
	return ledger.client.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&sqlTx{db: tx})
	})
}

// GetAccount 取得帳戶 (不加鎖)
func (ledger *Ledger) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	return findAccount(ledger.client.DB().WithContext(ctx), id)
}

// ListAccounts 依 ID 遞增分頁
func (ledger *Ledger) ListAccounts(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Account], error) {
	db := ledger.client.DB().WithContext(ctx)

	var total int64
	if err := db.Model(&sqlAccount{}).Count(&total).Error; err != nil {
		return domain.Page[domain.Account]{}, fmt.Errorf("count accounts: %w", err)
	}
	var rows []sqlAccount
	if err := db.Scopes(paginate(req)).Order("id ASC").Find(&rows).Error; err != nil {
		return domain.Page[domain.Account]{}, fmt.Errorf("list accounts: %w", err)
	}

	items := make([]domain.Account, 0, len(rows))
	for _, row := range rows {
		items = append(items, toDomainAccount(row))
	}
	return domain.NewPage(items, req, total), nil
}

// ListTransactionsByAccount 依時間遞減分頁，時間相同時 ID 大的在前
func (ledger *Ledger) ListTransactionsByAccount(ctx context.Context, accountID int64, req domain.PageRequest) (domain.Page[domain.Transaction], error) {
	db := ledger.client.DB().WithContext(ctx).
		Where("account_id = ?", accountID).
		Session(&gorm.Session{})

	var total int64
	if err := db.Model(&sqlTransaction{}).Count(&total).Error; err != nil {
		return domain.Page[domain.Transaction]{}, fmt.Errorf("count transactions: %w", err)
	}
	var rows []sqlTransaction
	err := db.Scopes(paginate(req)).
		Order("occurred_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return domain.Page[domain.Transaction]{}, fmt.Errorf("list transactions: %w", err)
	}

	items := make([]domain.Transaction, 0, len(rows))
	for _, row := range rows {
		items = append(items, toDomainTransaction(row))
	}
	return domain.NewPage(items, req, total), nil
}

// paginate 是套用 offset 與 limit 的 GORM scope
func paginate(req domain.PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset()).Limit(req.Size)
	}
}

func findAccount(db *gorm.DB, id int64) (*domain.Account, error) {
	var row sqlAccount
	err := db.Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select account %d: %w", id, err)
	}
	account := toDomainAccount(row)
	return &account, nil
}

// sqlTx 是綁定在一個資料庫 transaction 上的 LedgerTx
type sqlTx struct {
	db *gorm.DB
}

// GetAccount 以 SELECT ... FOR UPDATE 讀取並鎖定帳戶
func (t *sqlTx) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	return findAccount(t.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (t *sqlTx) SaveAccount(ctx context.Context, account *domain.Account) error {
	row := toSQLAccount(account)
	db := t.db.WithContext(ctx)
	if row.ID == 0 {
		if err := db.Create(&row).Error; err != nil {
			return fmt.Errorf("insert account: %w", err)
		}
		account.ID = row.ID
		return nil
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert account %d: %w", row.ID, err)
	}
	return nil
}

func (t *sqlTx) DeleteAccount(ctx context.Context, id int64) error {
	if err := t.db.WithContext(ctx).Delete(&sqlAccount{}, id).Error; err != nil {
		return fmt.Errorf("delete account %d: %w", id, err)
	}
	return nil
}

func (t *sqlTx) AppendTransaction(ctx context.Context, tran *domain.Transaction) error {
	row := toSQLTransaction(tran)
	if err := t.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	tran.ID = row.ID
	return nil
}

var (
	_ usecase.Ledger   = (*Ledger)(nil)
	_ usecase.LedgerTx = (*sqlTx)(nil)
)
