package rest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap/zaptest"

	"github.com/JoeShih716/go-bank-ledger/internal/app/core/adapter/out/memory"
	"github.com/JoeShih716/go-bank-ledger/internal/app/core/usecase"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	ledger, err := memory.NewMutexLedger(nil)
	if err != nil {
		t.Fatal(err)
	}
	return NewApp(usecase.NewCoreUseCase(ledger, zaptest.NewLogger(t)))
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return v
}

func TestHandler_Scenario(t *testing.T) {
	app := newTestApp(t)

	code, body := do(t, app, http.MethodPost, "/api/accounts", `{"holder_name":"A","balance":"100"}`)
	if code != http.StatusCreated {
		t.Fatalf("create A: %d %s", code, body)
	}
	a := decode[AccountShowSchema](t, body)

	code, body = do(t, app, http.MethodPost, "/api/accounts", `{"holder_name":"B","balance":"50"}`)
	if code != http.StatusCreated {
		t.Fatalf("create B: %d %s", code, body)
	}
	b := decode[AccountShowSchema](t, body)

	code, body = do(t, app, http.MethodPost, "/api/accounts/transfer",
		`{"from_account_id":`+itoa(a.ID)+`,"to_account_id":`+itoa(b.ID)+`,"amount":"30"}`)
	if code != http.StatusNoContent {
		t.Fatalf("transfer: %d %s", code, body)
	}

	code, body = do(t, app, http.MethodGet, "/api/accounts/"+itoa(a.ID), "")
	if code != http.StatusOK {
		t.Fatalf("get A: %d %s", code, body)
	}
	if got := decode[AccountShowSchema](t, body); !got.Balance.Equal(decimal.NewFromInt(70)) {
		t.Errorf("A balance = %s, want 70", got.Balance)
	}

	code, body = do(t, app, http.MethodPut, "/api/accounts/"+itoa(b.ID)+"/withdraw", `{"amount":"80"}`)
	if code != http.StatusOK {
		t.Fatalf("withdraw: %d %s", code, body)
	}
	if got := decode[AccountShowSchema](t, body); !got.Balance.IsZero() {
		t.Errorf("B balance = %s, want 0", got.Balance)
	}

	code, body = do(t, app, http.MethodPut, "/api/accounts/"+itoa(a.ID)+"/deposit", `{"amount":"5"}`)
	if code != http.StatusOK {
		t.Fatalf("deposit: %d %s", code, body)
	}

	code, body = do(t, app, http.MethodGet, "/api/accounts/"+itoa(a.ID)+"/transactions", "")
	if code != http.StatusOK {
		t.Fatalf("list transactions: %d %s", code, body)
	}
	page := decode[Pagination[TransactionShowSchema]](t, body)
	if page.Total != 2 || len(page.Items) != 2 {
		t.Fatalf("A transactions = %+v, want 2", page)
	}
	if page.Items[0].Type != "deposit" || page.Items[1].Type != "transfer" {
		t.Errorf("order = %s,%s, want deposit,transfer", page.Items[0].Type, page.Items[1].Type)
	}

	code, body = do(t, app, http.MethodGet, "/api/accounts?page=1&size=1", "")
	if code != http.StatusOK {
		t.Fatalf("list accounts: %d %s", code, body)
	}
	accounts := decode[Pagination[AccountShowSchema]](t, body)
	if accounts.Total != 2 || accounts.TotalPages != 2 || len(accounts.Items) != 1 || accounts.Items[0].ID != a.ID {
		t.Errorf("accounts page = %+v", accounts)
	}

	code, _ = do(t, app, http.MethodDelete, "/api/accounts/"+itoa(b.ID), "")
	if code != http.StatusNoContent {
		t.Fatalf("delete: %d", code)
	}
	code, _ = do(t, app, http.MethodGet, "/api/accounts/"+itoa(b.ID), "")
	if code != http.StatusNotFound {
		t.Errorf("get deleted = %d, want 404", code)
	}
}

func TestHandler_Errors(t *testing.T) {
	app := newTestApp(t)
	_, body := do(t, app, http.MethodPost, "/api/accounts", `{"holder_name":"A","balance":"10"}`)
	a := decode[AccountShowSchema](t, body)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{"missing account", http.MethodGet, "/api/accounts/999", "", http.StatusNotFound},
		{"bad id", http.MethodGet, "/api/accounts/abc", "", http.StatusBadRequest},
		{"deposit missing", http.MethodPut, "/api/accounts/999/deposit", `{"amount":"1"}`, http.StatusNotFound},
		{"overdraw", http.MethodPut, "/api/accounts/" + itoa(a.ID) + "/withdraw", `{"amount":"11"}`, http.StatusConflict},
		{"transfer missing", http.MethodPost, "/api/accounts/transfer",
			`{"from_account_id":` + itoa(a.ID) + `,"to_account_id":999,"amount":"1"}`, http.StatusNotFound},
		{"missing amount", http.MethodPut, "/api/accounts/" + itoa(a.ID) + "/deposit", `{}`, http.StatusUnprocessableEntity},
		{"missing balance", http.MethodPost, "/api/accounts", `{"holder_name":"B"}`, http.StatusUnprocessableEntity},
		{"empty holder", http.MethodPost, "/api/accounts", `{"holder_name":"","balance":"1"}`, http.StatusCreated},
		{"delete missing", http.MethodDelete, "/api/accounts/999", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := do(t, app, tt.method, tt.target, tt.body)
			if code != tt.want {
				t.Errorf("status = %d, want %d (%s)", code, tt.want, body)
			}
		})
	}

	code, body := do(t, app, http.MethodGet, "/api/accounts/999/transactions", "")
	if code != http.StatusOK {
		t.Fatalf("unknown account transactions = %d, want 200", code)
	}
	if page := decode[Pagination[TransactionShowSchema]](t, body); page.Total != 0 || page.Items == nil {
		t.Errorf("page = %+v, want empty items", page)
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
