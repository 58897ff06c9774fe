package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"connectrpc.com/connect"

	"github.com/mmynk/daojo/internal/auth"
	"github.com/mmynk/daojo/internal/governance"
	"github.com/mmynk/daojo/internal/middleware"
	"github.com/mmynk/daojo/pkg/api"
)

// connectError converts an engine error into a Connect error. Governance
// rejections carry their stable code in the Daojo-Error-Code metadata.
func connectError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	}

	gerr, ok := governance.AsError(err)
	if !ok {
		return connect.NewError(connect.CodeInternal, err)
	}
	connectErr := connect.NewError(codeFor(gerr), gerr)
	connectErr.Meta().Set(api.ErrorCodeHeader, gerr.Code)
	return connectErr
}

func codeFor(gerr *governance.Error) connect.Code {
	switch gerr.Kind {
	case governance.KindAuthorization:
		return connect.CodePermissionDenied
	case governance.KindStateConflict:
		if gerr == governance.ErrDuplicateInviteCode || gerr == governance.ErrRequestExists {
			return connect.CodeAlreadyExists
		}
		return connect.CodeFailedPrecondition
	case governance.KindPrecondition:
		return connect.CodeInvalidArgument
	case governance.KindResource:
		return connect.CodeFailedPrecondition
	case governance.KindNotFound:
		return connect.CodeNotFound
	default:
		return connect.CodeInternal
	}
}

// requireUser returns the authenticated caller or an Unauthenticated error.
func requireUser(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

// invalidArgument builds a CodeInvalidArgument error from a format string.
func invalidArgument(format string, args ...any) error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}

// validateText checks that value is non-empty (when required) and at most max bytes.
func validateText(field, value string, max int, required bool) error {
	if required && value == "" {
		return invalidArgument("%s is required", field)
	}
	if len(value) > max {
		return invalidArgument("%s must be at most %d bytes", field, max)
	}
	return nil
}

// validateAmount rejects amounts the ledger cannot store.
func validateAmount(field string, amount uint64) error {
	if amount > math.MaxInt64 {
		return invalidArgument("%s exceeds the maximum of %d", field, int64(math.MaxInt64))
	}
	return nil
}

func requireID(field, value string) error {
	if value == "" {
		return invalidArgument("%s is required", field)
	}
	return nil
}
