package domain

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestTransferLockIDs(t *testing.T) {
	tests := []struct {
		name     string
		from, to int64
		want     []int64
	}{
		{"ascending", 1, 2, []int64{1, 2}},
		{"descending", 9, 3, []int64{3, 9}},
		{"same account", 5, 5, []int64{5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Transfer{From: tt.from, To: tt.to}.LockIDs()
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("LockIDs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransferLockIDsIgnoresRole(t *testing.T) {
	ab := Transfer{From: 7, To: 4}.LockIDs()
	ba := Transfer{From: 4, To: 7}.LockIDs()
	if !reflect.DeepEqual(ab, ba) {
		t.Fatalf("opposite transfers lock in different order: %v vs %v", ab, ba)
	}
}

func TestNewTransaction(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tx := NewTransaction(42, decimal.RequireFromString("50.00"), TransactionTypeDeposit, at)

	if tx.ID != 0 {
		t.Fatalf("ID = %d, want unassigned", tx.ID)
	}
	if tx.RefID == uuid.Nil {
		t.Fatal("RefID not assigned")
	}
	if tx.AccountID != 42 || tx.Type != TransactionTypeDeposit || !tx.Timestamp.Equal(at) {
		t.Fatalf("unexpected transaction %+v", tx)
	}
	other := NewTransaction(42, decimal.RequireFromString("50.00"), TransactionTypeDeposit, at)
	if other.RefID == tx.RefID {
		t.Fatal("RefID reused")
	}
}
