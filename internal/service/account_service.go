package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/daojo/internal/governance"
	"github.com/mmynk/daojo/pkg/api"
	"github.com/mmynk/daojo/pkg/api/apiconnect"
)

var _ apiconnect.AccountServiceHandler = (*AccountService)(nil)

// ErrDepositsDisabled is returned by Deposit when the external on-ramp is turned off.
var ErrDepositsDisabled = errors.New("deposits are disabled on this server")

// AccountService implements the AccountService RPC interface.
type AccountService struct {
	engine        *governance.Engine
	logger        *slog.Logger
	allowDeposits bool
}

// NewAccountService creates a new AccountService. When allowDeposits is
// false, Deposit always fails.
func NewAccountService(engine *governance.Engine, logger *slog.Logger, allowDeposits bool) *AccountService {
	return &AccountService{
		engine:        engine,
		logger:        logger,
		allowDeposits: allowDeposits,
	}
}

// OpenAccount opens an empty wallet for the caller.
func (s *AccountService) OpenAccount(ctx context.Context, req *connect.Request[api.OpenAccountRequest]) (*connect.Response[api.OpenAccountResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	account, err := s.engine.OpenAccount(ctx, userID)
	if err != nil {
		s.logger.Error("OpenAccount failed", "user_id", userID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.OpenAccountResponse{Account: toAPIAccount(account)}), nil
}

// Deposit credits one of the caller's wallets from outside the ledger.
func (s *AccountService) Deposit(ctx context.Context, req *connect.Request[api.DepositRequest]) (*connect.Response[api.DepositResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if !s.allowDeposits {
		return nil, connect.NewError(connect.CodeFailedPrecondition, ErrDepositsDisabled)
	}
	if err := requireID("account_id", req.Msg.AccountID); err != nil {
		return nil, err
	}
	if req.Msg.Amount == 0 {
		return nil, invalidArgument("amount must be positive")
	}
	if err := validateAmount("amount", req.Msg.Amount); err != nil {
		return nil, err
	}

	account, err := s.engine.Deposit(ctx, userID, req.Msg.AccountID, req.Msg.Amount)
	if err != nil {
		s.logger.Warn("Deposit failed", "account_id", req.Msg.AccountID, "user_id", userID, "error", err)
		return nil, connectError(err)
	}

	s.logger.Info("Deposit recorded", "account_id", account.ID, "user_id", userID, "amount", req.Msg.Amount)
	return connect.NewResponse(&api.DepositResponse{Account: toAPIAccount(account)}), nil
}

// Withdraw moves funds out of one of the caller's wallets. It is not gated
// by ledger.allow_deposits; members can always take their money out.
func (s *AccountService) Withdraw(ctx context.Context, req *connect.Request[api.WithdrawRequest]) (*connect.Response[api.WithdrawResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireID("account_id", req.Msg.AccountID); err != nil {
		return nil, err
	}
	if req.Msg.Amount == 0 {
		return nil, invalidArgument("amount must be positive")
	}
	if err := validateAmount("amount", req.Msg.Amount); err != nil {
		return nil, err
	}

	account, transfer, err := s.engine.Withdraw(ctx, userID, req.Msg.AccountID, req.Msg.Amount)
	if err != nil {
		s.logger.Warn("Withdraw failed", "account_id", req.Msg.AccountID, "user_id", userID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.WithdrawResponse{
		Account:  toAPIAccount(account),
		Transfer: toAPITransfer(transfer),
	}), nil
}

// GetAccount returns one of the caller's accounts.
func (s *AccountService) GetAccount(ctx context.Context, req *connect.Request[api.GetAccountRequest]) (*connect.Response[api.GetAccountResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireID("account_id", req.Msg.AccountID); err != nil {
		return nil, err
	}

	account, err := s.engine.GetAccount(ctx, userID, req.Msg.AccountID)
	if err != nil {
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.GetAccountResponse{Account: toAPIAccount(account)}), nil
}

// ListAccounts returns every account the caller owns.
func (s *AccountService) ListAccounts(ctx context.Context, req *connect.Request[api.ListAccountsRequest]) (*connect.Response[api.ListAccountsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	accounts, err := s.engine.ListAccounts(ctx, userID)
	if err != nil {
		return nil, connectError(err)
	}

	out := make([]*api.Account, len(accounts))
	for i, a := range accounts {
		out[i] = toAPIAccount(a)
	}
	return connect.NewResponse(&api.ListAccountsResponse{Accounts: out}), nil
}
