package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	grpc_adapter "github.com/JoeShih716/go-bank-ledger/internal/app/core/adapter/in/grpc"
	"github.com/JoeShih716/go-bank-ledger/internal/app/core/domain"
	grpcpool "github.com/JoeShih716/go-bank-ledger/pkg/grpc"
)

const (
	Target         = "localhost:50051"
	TotalCount     = 100000
	Concurrency    = 200
	InitialBalance = 1000000
)

func main() {
	// 計算單筆交易 buffer大小
	if len(os.Args) > 1 && os.Args[1] == "measure" {
		measureTransactionSize()
		return
	}

	pool := grpcpool.NewPool()
	defer pool.Close()
	conn, err := pool.GetConnection(Target)
	if err != nil {
		log.Fatalf("did not connect: %v", err)
	}
	c := grpc_adapter.NewClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	// 每次執行建立兩個新帳戶，互相轉帳
	suffix := uuid.NewString()[:8]
	a, err := c.CreateAccount(ctx, &grpc_adapter.CreateAccountRequest{
		HolderName:     "stress-a-" + suffix,
		InitialBalance: decimal.NewFromInt(InitialBalance),
	})
	if err != nil {
		log.Fatalf("create account a: %v", err)
	}
	b, err := c.CreateAccount(ctx, &grpc_adapter.CreateAccountRequest{
		HolderName:     "stress-b-" + suffix,
		InitialBalance: decimal.NewFromInt(InitialBalance),
	})
	if err != nil {
		log.Fatalf("create account b: %v", err)
	}

	var wg sync.WaitGroup
	var failed atomic.Int64
	wg.Add(TotalCount)
	sem := make(chan struct{}, Concurrency)
	amount := decimal.NewFromInt(1)

	startTime := time.Now()
	for i := 0; i < TotalCount; i++ {
		sem <- struct{}{}

		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			// 奇偶交錯方向，同時存在 a->b 與 b->a
			from, to := a.AccountID, b.AccountID
			if idx%2 == 1 {
				from, to = to, from
			}
			_, err := c.Transfer(ctx, &grpc_adapter.TransferRequest{
				FromAccountID: from,
				ToAccountID:   to,
				Amount:        amount,
			})
			if err != nil {
				failed.Add(1)
				if idx%10000 == 0 {
					log.Printf("Transfer %d failed: %v", idx, err)
				}
			}
		}(i)
	}
	wg.Wait()
	elapsed := time.Since(startTime)

	fmt.Printf("Completed %d requests in %v (%d failed)\n", TotalCount, elapsed, failed.Load())
	fmt.Printf("TPS: %.2f\n", float64(TotalCount)/elapsed.Seconds())

	// 驗證總額守恆
	total := decimal.Zero
	for _, id := range []int64{a.AccountID, b.AccountID} {
		acc, err := c.GetAccount(ctx, &grpc_adapter.GetAccountRequest{AccountID: id})
		if err != nil {
			log.Fatalf("get account %d: %v", id, err)
		}
		total = total.Add(acc.Balance)
	}
	want := decimal.NewFromInt(2 * InitialBalance)
	if !total.Equal(want) {
		log.Fatalf("total balance %s, want %s", total, want)
	}
	fmt.Printf("Total balance conserved: %s\n", total)
}

// measureTransactionSize 測試計算單筆交易大小
func measureTransactionSize() {
	// 模擬一筆典型的交易
	tx := domain.NewTransaction(1234567890123456789, decimal.RequireFromString("1000000.0001"), domain.TransactionTypeTransfer, time.Now())
	tx.ID = 1234567890123456789

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(tx); err != nil {
		panic(err)
	}

	fmt.Printf("Single Transaction JSON Size: %d bytes\n", buf.Len())
}
