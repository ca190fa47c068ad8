package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/JoeShih716/go-bank-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-bank-ledger/internal/app/core/usecase"
	"github.com/JoeShih716/go-bank-ledger/pkg/wal"
)

// MutexLedger 是一個使用 Mutex 實現的帳本
//
// 結構:
//
//	accounts: 已 commit 的帳戶資料
//	transactions: 已 commit 的交易紀錄 (append-only)
//	rowLocks: 每個帳戶一把鎖，模擬資料庫的 row lock；帳戶不存在且無人持有時移除
//	mu: 保護上述 map 與 ID 計數器
//	wal: Write-Ahead Log 實例 (可為 nil)
type MutexLedger struct {
	mu                sync.RWMutex
	accounts          map[int64]*domain.Account
	transactions      []*domain.Transaction
	rowLocks          map[int64]*rowLock
	lastAccountID     int64
	lastTransactionID int64
	wal               *wal.WAL
}

// walRecord 是一個已 commit 原子單元的內容
type walRecord struct {
	Accounts     []domain.Account     `json:"accounts,omitempty"`
	Deleted      []int64              `json:"deleted,omitempty"`
	Transactions []domain.Transaction `json:"transactions,omitempty"`
}

// NewMutexLedger 建立一個新的 MutexLedger 實例
// w 不為 nil 時會先從 WAL 恢復狀態
func NewMutexLedger(w *wal.WAL) (*MutexLedger, error) {
	ledger := &MutexLedger{
		accounts: make(map[int64]*domain.Account),
		rowLocks: make(map[int64]*rowLock),
		wal:      w,
	}
	if w != nil {
		if err := ledger.recoverFromWAL(); err != nil {
			return nil, err
		}
	}
	return ledger, nil
}

// recoverFromWAL 重放 WAL (只有 NewMutexLedger 呼叫，無需 Lock)
func (m *MutexLedger) recoverFromWAL() error {
	return m.wal.Replay(func(raw json.RawMessage) error {
		var rec walRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("decode wal record: %w", err)
		}
		m.apply(&rec)
		return nil
	})
}

// apply 將 record 套用到記憶體 (呼叫端需持有寫鎖)
func (m *MutexLedger) apply(rec *walRecord) {
	for i := range rec.Accounts {
		account := rec.Accounts[i]
		m.accounts[account.ID] = &account
		m.lastAccountID = max(m.lastAccountID, account.ID)
	}
	for _, id := range rec.Deleted {
		delete(m.accounts, id)
	}
	for i := range rec.Transactions {
		tran := rec.Transactions[i]
		m.transactions = append(m.transactions, &tran)
		m.lastTransactionID = max(m.lastTransactionID, tran.ID)
	}
}

// rowLock 是帳戶的 row lock，refs 為持有或等待中的單元數
type rowLock struct {
	mu   sync.Mutex
	refs int
}

// acquireRow 取得 id 的 row lock，可能阻塞直到其他單元釋放
func (m *MutexLedger) acquireRow(id int64) *rowLock {
	m.mu.Lock()
	lock, ok := m.rowLocks[id]
	if !ok {
		lock = &rowLock{}
		m.rowLocks[id] = lock
	}
	lock.refs++
	m.mu.Unlock()

	lock.mu.Lock()
	return lock
}

// releaseRow 釋放 row lock；帳戶不存在時 (查無或已刪除) 移除該鎖
func (m *MutexLedger) releaseRow(id int64, lock *rowLock) {
	lock.mu.Unlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	lock.refs--
	if _, exists := m.accounts[id]; lock.refs == 0 && !exists {
		delete(m.rowLocks, id)
	}
}

func (m *MutexLedger) rowLockCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rowLocks)
}

// WithinTransaction 執行一個原子單元
// 寫入先暫存在 mutexTx，fn 成功後才寫 WAL 並套用；row lock 在結束時釋放
func (m *MutexLedger) WithinTransaction(ctx context.Context, fn func(tx usecase.LedgerTx) error) error {
	tx := &mutexTx{
		ledger:   m,
		held:     make(map[int64]*rowLock),
		accounts: make(map[int64]*domain.Account),
		deleted:  make(map[int64]struct{}),
	}
	defer tx.release()

	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.commit(tx.record())
}

func (m *MutexLedger) commit(rec *walRecord) error {
	if len(rec.Accounts) == 0 && len(rec.Deleted) == 0 && len(rec.Transactions) == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.wal != nil {
		if err := m.wal.Append(rec); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrWALWriteFailed, err)
		}
	}
	m.apply(rec)
	return nil
}

// GetAccount 取得已 commit 的帳戶 (不加 row lock)
func (m *MutexLedger) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	account, ok := m.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	cp := *account
	return &cp, nil
}

// ListAccounts 依 ID 遞增分頁
func (m *MutexLedger) ListAccounts(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Account], error) {
	m.mu.RLock()
	all := make([]domain.Account, 0, len(m.accounts))
	for _, account := range m.accounts {
		all = append(all, *account)
	}
	m.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return domain.NewPage(slice(all, req), req, int64(len(all))), nil
}

// ListTransactionsByAccount 依時間遞減分頁，時間相同時 ID 大的在前
func (m *MutexLedger) ListTransactionsByAccount(ctx context.Context, accountID int64, req domain.PageRequest) (domain.Page[domain.Transaction], error) {
	m.mu.RLock()
	var matched []domain.Transaction
	for _, tran := range m.transactions {
		if tran.AccountID == accountID {
			matched = append(matched, *tran)
		}
	}
	m.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Timestamp.Equal(matched[j].Timestamp) {
			return matched[i].Timestamp.After(matched[j].Timestamp)
		}
		return matched[i].ID > matched[j].ID
	})
	return domain.NewPage(slice(matched, req), req, int64(len(matched))), nil
}

func slice[T any](all []T, req domain.PageRequest) []T {
	start := req.Offset()
	if start >= len(all) {
		return nil
	}
	end := min(start+req.Size, len(all))
	return all[start:end]
}

// mutexTx 是 MutexLedger 的原子單元
type mutexTx struct {
	ledger   *MutexLedger
	held     map[int64]*rowLock
	order    []int64
	accounts map[int64]*domain.Account
	deleted  map[int64]struct{}
	appended []domain.Transaction
}

// lock 取得帳戶的 row lock，同一單元內重複取得不會阻塞
func (t *mutexTx) lock(id int64) {
	if _, ok := t.held[id]; ok {
		return
	}
	t.held[id] = t.ledger.acquireRow(id)
	t.order = append(t.order, id)
}

func (t *mutexTx) release() {
	for i := len(t.order) - 1; i >= 0; i-- {
		id := t.order[i]
		t.ledger.releaseRow(id, t.held[id])
	}
	t.held = nil
	t.order = nil
}

func (t *mutexTx) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	t.lock(id)
	if _, ok := t.deleted[id]; ok {
		return nil, domain.ErrAccountNotFound
	}
	if staged, ok := t.accounts[id]; ok {
		cp := *staged
		return &cp, nil
	}
	return t.ledger.GetAccount(ctx, id)
}

func (t *mutexTx) SaveAccount(ctx context.Context, account *domain.Account) error {
	if account.ID == 0 {
		t.ledger.mu.Lock()
		t.ledger.lastAccountID++
		account.ID = t.ledger.lastAccountID
		t.ledger.mu.Unlock()
	}
	t.lock(account.ID)
	cp := *account
	t.accounts[account.ID] = &cp
	delete(t.deleted, account.ID)
	return nil
}

func (t *mutexTx) DeleteAccount(ctx context.Context, id int64) error {
	t.lock(id)
	delete(t.accounts, id)
	t.deleted[id] = struct{}{}
	return nil
}

func (t *mutexTx) AppendTransaction(ctx context.Context, tran *domain.Transaction) error {
	t.ledger.mu.Lock()
	t.ledger.lastTransactionID++
	tran.ID = t.ledger.lastTransactionID
	t.ledger.mu.Unlock()
	t.appended = append(t.appended, *tran)
	return nil
}

func (t *mutexTx) record() *walRecord {
	rec := &walRecord{Transactions: t.appended}
	for _, account := range t.accounts {
		rec.Accounts = append(rec.Accounts, *account)
	}
	sort.Slice(rec.Accounts, func(i, j int) bool { return rec.Accounts[i].ID < rec.Accounts[j].ID })
	for id := range t.deleted {
		rec.Deleted = append(rec.Deleted, id)
	}
	sort.Slice(rec.Deleted, func(i, j int) bool { return rec.Deleted[i] < rec.Deleted[j] })
	return rec
}

var (
	_ usecase.Ledger   = (*MutexLedger)(nil)
	_ usecase.LedgerTx = (*mutexTx)(nil)
)
