package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/daojo/internal/auth"
	"github.com/mmynk/daojo/internal/metrics"
	"github.com/mmynk/daojo/internal/models"
)

type testRequest struct{}

func newRequest(header string) *connect.Request[testRequest] {
	req := connect.NewRequest(&testRequest{})
	if header != "" {
		req.Header().Set("Authorization", header)
	}
	return req
}

// captureUser is a terminal UnaryFunc that reports the user ID it saw.
func captureUser(seen *string) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		*seen = GetUserID(ctx)
		return connect.NewResponse(&testRequest{}), nil
	}
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("secret", time.Hour)
	token, err := jwtManager.Generate(&models.User{ID: "user-1", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	tests := []struct {
		name     string
		header   string
		wantCode connect.Code
		wantUser string
	}{
		{"valid token", "Bearer " + token, 0, "user-1"},
		{"lowercase scheme", "bearer " + token, 0, "user-1"},
		{"missing header", "", connect.CodeUnauthenticated, ""},
		{"empty token", "Bearer ", connect.CodeUnauthenticated, ""},
		{"wrong scheme", "Basic " + token, connect.CodeUnauthenticated, ""},
		{"bad token", "Bearer nope", connect.CodeUnauthenticated, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := RequireAuth(jwtManager)(captureUser(&seen))
			_, err := handler(context.Background(), newRequest(tt.header))
			if tt.wantCode == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			} else if connect.CodeOf(err) != tt.wantCode {
				t.Fatalf("code = %v, want %v", connect.CodeOf(err), tt.wantCode)
			}
			if seen != tt.wantUser {
				t.Errorf("user = %q, want %q", seen, tt.wantUser)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("secret", time.Hour)

	var seen string
	handler := OptionalAuth(jwtManager)(captureUser(&seen))
	if _, err := handler(context.Background(), newRequest("Bearer garbage")); err != nil {
		t.Fatalf("OptionalAuth rejected request: %v", err)
	}
	if seen != "" {
		t.Errorf("user = %q, want empty for invalid token", seen)
	}
}

func TestLoggingInterceptorRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := metrics.New(reg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	failing := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("circle not found"))
	}
	ok := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return connect.NewResponse(&testRequest{}), nil
	}

	interceptor := LoggingInterceptor(logger, collector)
	if _, err := interceptor(failing)(context.Background(), newRequest("")); err == nil {
		t.Fatal("expected error to pass through")
	}
	if _, err := interceptor(ok)(context.Background(), newRequest("")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n := testutil.CollectAndCount(collector.RPCDurationSeconds); n != 2 {
		t.Errorf("observed series = %d, want 2", n)
	}
}
