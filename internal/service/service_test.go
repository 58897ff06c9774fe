package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/daojo/internal/governance"
	"github.com/mmynk/daojo/internal/middleware"
	"github.com/mmynk/daojo/internal/storage/sqlite"
	"github.com/mmynk/daojo/pkg/api"
	"github.com/mmynk/daojo/pkg/api/apiconnect"
)

// testUserHeader names the header the test auth interceptor trusts.
const testUserHeader = "X-Test-User"

// testAuthInterceptor returns a Connect interceptor that sets the user ID
// from the X-Test-User header in the context.
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if user := req.Header().Get(testUserHeader); user != "" {
				ctx = context.WithValue(ctx, middleware.UserIDKey, user)
			}
			return next(ctx, req)
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testClients struct {
	circles  apiconnect.CircleServiceClient
	accounts apiconnect.AccountServiceClient
}

// setupTestServer creates a test server backed by a temporary SQLite database.
func setupTestServer(t *testing.T, allowDeposits bool) (testClients, func()) {
	t.Helper()

	// Create temp database
	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	logger := discardLogger()
	engine := governance.NewEngine(store, governance.WithLogger(logger))

	// Create services and handlers with test auth interceptor
	authInterceptor := connect.WithInterceptors(testAuthInterceptor())
	circlePath, circleHandler := apiconnect.NewCircleServiceHandler(NewCircleService(engine, logger), authInterceptor)
	accountPath, accountHandler := apiconnect.NewAccountServiceHandler(NewAccountService(engine, logger, allowDeposits), authInterceptor)

	mux := http.NewServeMux()
	mux.Handle(circlePath, circleHandler)
	mux.Handle(accountPath, accountHandler)

	server := httptest.NewServer(mux)

	clients := testClients{
		circles:  apiconnect.NewCircleServiceClient(http.DefaultClient, server.URL),
		accounts: apiconnect.NewAccountServiceClient(http.DefaultClient, server.URL),
	}

	cleanup := func() {
		server.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	}

	return clients, cleanup
}

// as builds a request carrying the test identity header.
func as[T any](user string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set(testUserHeader, user)
	return req
}

// wantError asserts the Connect code and governance error code of err.
func wantError(t *testing.T, err error, code connect.Code, errorCode string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v / %s, got nil error", code, errorCode)
	}
	if got := connect.CodeOf(err); got != code {
		t.Errorf("code = %v, want %v (err: %v)", got, code, err)
	}
	if got := api.ErrorCode(err); got != errorCode {
		t.Errorf("error code = %q, want %q", got, errorCode)
	}
}

// openFundedWallet opens a wallet for user and deposits amount.
func openFundedWallet(t *testing.T, c testClients, user string, amount uint64) string {
	t.Helper()
	ctx := context.Background()

	resp, err := c.accounts.OpenAccount(ctx, as(user, &api.OpenAccountRequest{}))
	if err != nil {
		t.Fatalf("OpenAccount failed: %v", err)
	}
	id := resp.Msg.Account.ID
	if amount > 0 {
		if _, err := c.accounts.Deposit(ctx, as(user, &api.DepositRequest{AccountID: id, Amount: amount})); err != nil {
			t.Fatalf("Deposit failed: %v", err)
		}
	}
	return id
}
