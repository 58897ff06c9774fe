package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/daojo/pkg/api"
)

const AccountServiceName = "daojo.v1.AccountService"

const (
	AccountServiceOpenAccountProcedure  = "/daojo.v1.AccountService/OpenAccount"
	AccountServiceDepositProcedure      = "/daojo.v1.AccountService/Deposit"
	AccountServiceWithdrawProcedure     = "/daojo.v1.AccountService/Withdraw"
	AccountServiceGetAccountProcedure   = "/daojo.v1.AccountService/GetAccount"
	AccountServiceListAccountsProcedure = "/daojo.v1.AccountService/ListAccounts"
)

// AccountServiceHandler is implemented by the server side of daojo.v1.AccountService.
type AccountServiceHandler interface {
	OpenAccount(context.Context, *connect.Request[api.OpenAccountRequest]) (*connect.Response[api.OpenAccountResponse], error)
	Deposit(context.Context, *connect.Request[api.DepositRequest]) (*connect.Response[api.DepositResponse], error)
	Withdraw(context.Context, *connect.Request[api.WithdrawRequest]) (*connect.Response[api.WithdrawResponse], error)
	GetAccount(context.Context, *connect.Request[api.GetAccountRequest]) (*connect.Response[api.GetAccountResponse], error)
	ListAccounts(context.Context, *connect.Request[api.ListAccountsRequest]) (*connect.Response[api.ListAccountsResponse], error)
}

// NewAccountServiceHandler returns the mount path and handler for svc.
func NewAccountServiceHandler(svc AccountServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + AccountServiceName + "/", route{
		AccountServiceOpenAccountProcedure:  connect.NewUnaryHandler(AccountServiceOpenAccountProcedure, svc.OpenAccount, opts...),
		AccountServiceDepositProcedure:      connect.NewUnaryHandler(AccountServiceDepositProcedure, svc.Deposit, opts...),
		AccountServiceWithdrawProcedure:     connect.NewUnaryHandler(AccountServiceWithdrawProcedure, svc.Withdraw, opts...),
		AccountServiceGetAccountProcedure:   connect.NewUnaryHandler(AccountServiceGetAccountProcedure, svc.GetAccount, opts...),
		AccountServiceListAccountsProcedure: connect.NewUnaryHandler(AccountServiceListAccountsProcedure, svc.ListAccounts, opts...),
	}
}

// AccountServiceClient is a client for daojo.v1.AccountService.
type AccountServiceClient interface {
	OpenAccount(context.Context, *connect.Request[api.OpenAccountRequest]) (*connect.Response[api.OpenAccountResponse], error)
	Deposit(context.Context, *connect.Request[api.DepositRequest]) (*connect.Response[api.DepositResponse], error)
	Withdraw(context.Context, *connect.Request[api.WithdrawRequest]) (*connect.Response[api.WithdrawResponse], error)
	GetAccount(context.Context, *connect.Request[api.GetAccountRequest]) (*connect.Response[api.GetAccountResponse], error)
	ListAccounts(context.Context, *connect.Request[api.ListAccountsRequest]) (*connect.Response[api.ListAccountsResponse], error)
}

// NewAccountServiceClient builds a client for the service at baseURL.
func NewAccountServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AccountServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &accountServiceClient{
		openAccount:  connect.NewClient[api.OpenAccountRequest, api.OpenAccountResponse](httpClient, baseURL+AccountServiceOpenAccountProcedure, opts...),
		deposit:      connect.NewClient[api.DepositRequest, api.DepositResponse](httpClient, baseURL+AccountServiceDepositProcedure, opts...),
		withdraw:     connect.NewClient[api.WithdrawRequest, api.WithdrawResponse](httpClient, baseURL+AccountServiceWithdrawProcedure, opts...),
		getAccount:   connect.NewClient[api.GetAccountRequest, api.GetAccountResponse](httpClient, baseURL+AccountServiceGetAccountProcedure, opts...),
		listAccounts: connect.NewClient[api.ListAccountsRequest, api.ListAccountsResponse](httpClient, baseURL+AccountServiceListAccountsProcedure, opts...),
	}
}

type accountServiceClient struct {
	openAccount  *connect.Client[api.OpenAccountRequest, api.OpenAccountResponse]
	deposit      *connect.Client[api.DepositRequest, api.DepositResponse]
	withdraw     *connect.Client[api.WithdrawRequest, api.WithdrawResponse]
	getAccount   *connect.Client[api.GetAccountRequest, api.GetAccountResponse]
	listAccounts *connect.Client[api.ListAccountsRequest, api.ListAccountsResponse]
}

func (c *accountServiceClient) OpenAccount(ctx context.Context, req *connect.Request[api.OpenAccountRequest]) (*connect.Response[api.OpenAccountResponse], error) {
	return c.openAccount.CallUnary(ctx, req)
}

func (c *accountServiceClient) Deposit(ctx context.Context, req *connect.Request[api.DepositRequest]) (*connect.Response[api.DepositResponse], error) {
	return c.deposit.CallUnary(ctx, req)
}

func (c *accountServiceClient) Withdraw(ctx context.Context, req *connect.Request[api.WithdrawRequest]) (*connect.Response[api.WithdrawResponse], error) {
	return c.withdraw.CallUnary(ctx, req)
}

func (c *accountServiceClient) GetAccount(ctx context.Context, req *connect.Request[api.GetAccountRequest]) (*connect.Response[api.GetAccountResponse], error) {
	return c.getAccount.CallUnary(ctx, req)
}

func (c *accountServiceClient) ListAccounts(ctx context.Context, req *connect.Request[api.ListAccountsRequest]) (*connect.Response[api.ListAccountsResponse], error) {
	return c.listAccounts.CallUnary(ctx, req)
}
