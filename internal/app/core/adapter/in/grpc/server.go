package grpc

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/JoeShih716/go-bank-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-bank-ledger/internal/app/core/usecase"
)

type GrpcServer struct {
	core *usecase.CoreUseCase
}

func NewGrpcServer(core *usecase.CoreUseCase) *GrpcServer {
	return &GrpcServer{
		core: core,
	}
}

func (s *GrpcServer) CreateAccount(ctx context.Context, req *CreateAccountRequest) (*AccountReply, error) {
	account, err := s.core.CreateAccount(ctx, req.HolderName, req.InitialBalance)
	if err != nil {
		return nil, toStatus(err)
	}
	reply := toAccountReply(*account)
	return &reply, nil
}

func (s *GrpcServer) GetAccount(ctx context.Context, req *GetAccountRequest) (*AccountReply, error) {
	account, err := s.core.GetAccount(ctx, req.AccountID)
	if err != nil {
		return nil, toStatus(err)
	}
	reply := toAccountReply(*account)
	return &reply, nil
}

func (s *GrpcServer) Deposit(ctx context.Context, req *AmountRequest) (*AccountReply, error) {
	account, err := s.core.Deposit(ctx, req.AccountID, req.Amount)
	if err != nil {
		return nil, toStatus(err)
	}
	reply := toAccountReply(*account)
	return &reply, nil
}

func (s *GrpcServer) Withdraw(ctx context.Context, req *AmountRequest) (*AccountReply, error) {
	account, err := s.core.Withdraw(ctx, req.AccountID, req.Amount)
	if err != nil {
		return nil, toStatus(err)
	}
	reply := toAccountReply(*account)
	return &reply, nil
}

func (s *GrpcServer) DeleteAccount(ctx context.Context, req *DeleteAccountRequest) (*Empty, error) {
	if err := s.core.DeleteAccount(ctx, req.AccountID); err != nil {
		return nil, toStatus(err)
	}
	return &Empty{}, nil
}

func (s *GrpcServer) Transfer(ctx context.Context, req *TransferRequest) (*Empty, error) {
	if err := s.core.TransferFunds(ctx, req.FromAccountID, req.ToAccountID, req.Amount); err != nil {
		return nil, toStatus(err)
	}
	return &Empty{}, nil
}

func (s *GrpcServer) ListAccounts(ctx context.Context, req *ListAccountsRequest) (*ListAccountsReply, error) {
	page, err := s.core.ListAccounts(ctx, domain.NewPageRequest(req.Page, req.PageSize))
	if err != nil {
		return nil, toStatus(err)
	}
	replies := domain.MapPage(page, toAccountReply)
	return &ListAccountsReply{
		Page:     replies.Page,
		PageSize: replies.Size,
		Total:    replies.Total,
		Accounts: replies.Items,
	}, nil
}

func (s *GrpcServer) ListTransactions(ctx context.Context, req *ListTransactionsRequest) (*ListTransactionsReply, error) {
	page, err := s.core.ListTransactions(ctx, req.AccountID, domain.NewPageRequest(req.Page, req.PageSize))
	if err != nil {
		return nil, toStatus(err)
	}
	replies := domain.MapPage(page, toTransactionReply)
	return &ListTransactionsReply{
		Page:         replies.Page,
		PageSize:     replies.Size,
		Total:        replies.Total,
		Transactions: replies.Items,
	}, nil
}

// toStatus 將業務錯誤轉換成 gRPC status
func toStatus(err error) error {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrInsufficientBalance):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// LoggingInterceptor 記錄每個 unary 呼叫的方法、耗時與結果
func LoggingInterceptor(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("code", status.Code(err).String()),
		}
		if status.Code(err) == codes.Internal {
			log.Error("grpc call failed", append(fields, zap.Error(err))...)
		} else {
			log.Debug("grpc call", fields...)
		}
		return resp, err
	}
}

var _ AccountLedgerServer = (*GrpcServer)(nil)
