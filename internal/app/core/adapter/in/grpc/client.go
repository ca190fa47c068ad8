package grpc

import (
	"context"

	"google.golang.org/grpc"
)

// Client 是 ledger.v1.AccountLedger 的客戶端
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAccount(ctx context.Context, in *CreateAccountRequest, opts ...grpc.CallOption) (*AccountReply, error) {
	return invoke[AccountReply](ctx, c.cc, "CreateAccount", in, opts)
}

func (c *Client) GetAccount(ctx context.Context, in *GetAccountRequest, opts ...grpc.CallOption) (*AccountReply, error) {
	return invoke[AccountReply](ctx, c.cc, "GetAccount", in, opts)
}

func (c *Client) Deposit(ctx context.Context, in *AmountRequest, opts ...grpc.CallOption) (*AccountReply, error) {
	return invoke[AccountReply](ctx, c.cc, "Deposit", in, opts)
}

func (c *Client) Withdraw(ctx context.Context, in *AmountRequest, opts ...grpc.CallOption) (*AccountReply, error) {
	return invoke[AccountReply](ctx, c.cc, "Withdraw", in, opts)
}

func (c *Client) DeleteAccount(ctx context.Context, in *DeleteAccountRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "DeleteAccount", in, opts)
}

func (c *Client) Transfer(ctx context.Context, in *TransferRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "Transfer", in, opts)
}

func (c *Client) ListAccounts(ctx context.Context, in *ListAccountsRequest, opts ...grpc.CallOption) (*ListAccountsReply, error) {
	return invoke[ListAccountsReply](ctx, c.cc, "ListAccounts", in, opts)
}

func (c *Client) ListTransactions(ctx context.Context, in *ListTransactionsRequest, opts ...grpc.CallOption) (*ListTransactionsReply, error) {
	return invoke[ListTransactionsReply](ctx, c.cc, "ListTransactions", in, opts)
}
