package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/daojo/internal/auth"
	"github.com/mmynk/daojo/internal/governance"
	"github.com/mmynk/daojo/internal/middleware"
	"github.com/mmynk/daojo/internal/storage/memory"
	"github.com/mmynk/daojo/pkg/api"
	"github.com/mmynk/daojo/pkg/api/apiconnect"
)

// setupAuthServer wires the auth and circle services with real JWT
// interceptors over an in-memory store.
func setupAuthServer(t *testing.T) (apiconnect.AuthServiceClient, apiconnect.CircleServiceClient) {
	t.Helper()

	store := memory.New()
	logger := discardLogger()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	engine := governance.NewEngine(store, governance.WithLogger(logger))

	authPath, authHandler := apiconnect.NewAuthServiceHandler(
		NewAuthService(auth.NewPasswordAuthenticator(store, auth.WithBcryptCost(bcrypt.MinCost)), store, jwtManager, logger),
		connect.WithInterceptors(middleware.OptionalAuth(jwtManager)),
	)
	circlePath, circleHandler := apiconnect.NewCircleServiceHandler(
		NewCircleService(engine, logger),
		connect.WithInterceptors(middleware.RequireAuth(jwtManager)),
	)

	mux := http.NewServeMux()
	mux.Handle(authPath, authHandler)
	mux.Handle(circlePath, circleHandler)
	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		apiconnect.NewCircleServiceClient(http.DefaultClient, server.URL)
}

func withToken[T any](token string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func TestAuthService(t *testing.T) {
	authClient, circleClient := setupAuthServer(t)
	ctx := context.Background()

	registered, err := authClient.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email:       "Amara@Example.com",
		DisplayName: "Amara",
		Password:    "correct-horse",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if registered.Msg.Token == "" {
		t.Fatal("expected token on register")
	}
	if registered.Msg.User.Email != "amara@example.com" {
		t.Errorf("email = %q, want normalized address", registered.Msg.User.Email)
	}

	t.Run("duplicate email", func(t *testing.T) {
		_, err := authClient.Register(ctx, connect.NewRequest(&api.RegisterRequest{
			Email:       "amara@example.com",
			DisplayName: "Other",
			Password:    "another-password",
		}))
		if connect.CodeOf(err) != connect.CodeAlreadyExists {
			t.Errorf("code = %v, want AlreadyExists", connect.CodeOf(err))
		}
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := authClient.Register(ctx, connect.NewRequest(&api.RegisterRequest{
			Email:       "kofi@example.com",
			DisplayName: "Kofi",
			Password:    "short",
		}))
		if connect.CodeOf(err) != connect.CodeInvalidArgument {
			t.Errorf("code = %v, want InvalidArgument", connect.CodeOf(err))
		}
	})

	t.Run("login", func(t *testing.T) {
		resp, err := authClient.Login(ctx, connect.NewRequest(&api.LoginRequest{
			Email:    "amara@example.com",
			Password: "correct-horse",
		}))
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if resp.Msg.User.ID != registered.Msg.User.ID {
			t.Errorf("login user = %s, want %s", resp.Msg.User.ID, registered.Msg.User.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := authClient.Login(ctx, connect.NewRequest(&api.LoginRequest{
			Email:    "amara@example.com",
			Password: "wrong-password",
		}))
		if connect.CodeOf(err) != connect.CodeUnauthenticated {
			t.Errorf("code = %v, want Unauthenticated", connect.CodeOf(err))
		}
	})

	t.Run("current user", func(t *testing.T) {
		resp, err := authClient.GetCurrentUser(ctx, withToken(registered.Msg.Token, &api.GetCurrentUserRequest{}))
		if err != nil {
			t.Fatalf("GetCurrentUser failed: %v", err)
		}
		if resp.Msg.User.DisplayName != "Amara" {
			t.Errorf("display name = %q, want Amara", resp.Msg.User.DisplayName)
		}

		_, err = authClient.GetCurrentUser(ctx, connect.NewRequest(&api.GetCurrentUserRequest{}))
		if connect.CodeOf(err) != connect.CodeUnauthenticated {
			t.Errorf("anonymous: code = %v, want Unauthenticated", connect.CodeOf(err))
		}
	})

	t.Run("token authorizes circle calls", func(t *testing.T) {
		resp, err := circleClient.CreateCircle(ctx, withToken(registered.Msg.Token, &api.CreateCircleRequest{
			Name:               "Accra",
			ContributionAmount: 25,
			InviteCode:         "ACCRA",
		}))
		if err != nil {
			t.Fatalf("CreateCircle failed: %v", err)
		}
		if resp.Msg.Circle.Creator != registered.Msg.User.ID {
			t.Errorf("creator = %s, want %s", resp.Msg.Circle.Creator, registered.Msg.User.ID)
		}

		_, err = circleClient.CreateCircle(ctx, withToken("not-a-token", &api.CreateCircleRequest{Name: "X", InviteCode: "X"}))
		if connect.CodeOf(err) != connect.CodeUnauthenticated {
			t.Errorf("bad token: code = %v, want Unauthenticated", connect.CodeOf(err))
		}
	})
}
