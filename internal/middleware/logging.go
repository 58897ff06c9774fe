package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/daojo/internal/metrics"
	"github.com/mmynk/daojo/pkg/api"
)

// codeOK labels successful calls in logs and metrics.
const codeOK = "ok"

// LoggingInterceptor logs each unary RPC and records its latency on
// collector, which may be nil. Governance rejections log at Warn with their
// stable error code; errors that never became a *connect.Error log at Error.
// Install it after the auth interceptor so user_id is populated.
func LoggingInterceptor(logger *slog.Logger, collector *metrics.Collector) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)
			elapsed := time.Since(start)

			procedure := req.Spec().Procedure
			level, code := slog.LevelInfo, codeOK
			attrs := []slog.Attr{
				slog.String("procedure", procedure),
				slog.String("user_id", GetUserID(ctx)),
				slog.Int64("duration_ms", elapsed.Milliseconds()),
			}

			var connectErr *connect.Error
			switch {
			case err == nil:
			case errors.As(err, &connectErr):
				level, code = slog.LevelWarn, connectErr.Code().String()
				attrs = append(attrs,
					slog.String("code", code),
					slog.String("error", connectErr.Message()),
				)
				if errCode := api.ErrorCode(err); errCode != "" {
					attrs = append(attrs, slog.String("error_code", errCode))
				}
			default:
				level, code = slog.LevelError, connect.CodeUnknown.String()
				attrs = append(attrs, slog.Any("error", err))
			}

			collector.ObserveRPC(procedure, code, elapsed)
			msg := "RPC ok"
			if err != nil {
				msg = "RPC error"
			}
			logger.LogAttrs(ctx, level, msg, attrs...)
			return resp, err
		}
	}
}
