package grpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "ledger.v1.AccountLedger"

// AccountLedgerServer 是 ledger.v1.AccountLedger 的服務端介面
type AccountLedgerServer interface {
	CreateAccount(context.Context, *CreateAccountRequest) (*AccountReply, error)
	GetAccount(context.Context, *GetAccountRequest) (*AccountReply, error)
	Deposit(context.Context, *AmountRequest) (*AccountReply, error)
	Withdraw(context.Context, *AmountRequest) (*AccountReply, error)
	DeleteAccount(context.Context, *DeleteAccountRequest) (*Empty, error)
	Transfer(context.Context, *TransferRequest) (*Empty, error)
	ListAccounts(context.Context, *ListAccountsRequest) (*ListAccountsReply, error)
	ListTransactions(context.Context, *ListTransactionsRequest) (*ListTransactionsReply, error)
}

// AccountLedgerServiceDesc 描述 ledger.v1.AccountLedger 的所有 unary 方法
var AccountLedgerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AccountLedgerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateAccount", Handler: unaryHandler("CreateAccount", AccountLedgerServer.CreateAccount)},
		{MethodName: "GetAccount", Handler: unaryHandler("GetAccount", AccountLedgerServer.GetAccount)},
		{MethodName: "Deposit", Handler: unaryHandler("Deposit", AccountLedgerServer.Deposit)},
		{MethodName: "Withdraw", Handler: unaryHandler("Withdraw", AccountLedgerServer.Withdraw)},
		{MethodName: "DeleteAccount", Handler: unaryHandler("DeleteAccount", AccountLedgerServer.DeleteAccount)},
		{MethodName: "Transfer", Handler: unaryHandler("Transfer", AccountLedgerServer.Transfer)},
		{MethodName: "ListAccounts", Handler: unaryHandler("ListAccounts", AccountLedgerServer.ListAccounts)},
		{MethodName: "ListTransactions", Handler: unaryHandler("ListTransactions", AccountLedgerServer.ListTransactions)},
	},
	Streams:  []grpc.StreamDesc{},
	// 使用 JSON codec，沒有 proto 檔描述，不支援 server reflection
	Metadata: "",
}

// RegisterAccountLedgerServer 將 srv 註冊到 gRPC server
func RegisterAccountLedgerServer(s grpc.ServiceRegistrar, srv AccountLedgerServer) {
	s.RegisterService(&AccountLedgerServiceDesc, srv)
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

func unaryHandler[Req, Resp any](method string, call func(AccountLedgerServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AccountLedgerServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod(method),
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AccountLedgerServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
