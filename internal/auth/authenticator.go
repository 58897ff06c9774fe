// Package auth registers users and issues the bearer tokens whose subject
// becomes the member identity in circles.
package auth

import (
	"context"

	"github.com/mmynk/daojo/internal/models"
)

var _ Authenticator = (*PasswordAuthenticator)(nil)

// Authenticator turns credentials into a user. The service layer only
// depends on this interface; PasswordAuthenticator is the bcrypt-backed
// implementation.
type Authenticator interface {
	// Register creates a user. Emails are unique after normalization;
	// a taken email returns ErrEmailExists.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the user for a matching email and credential,
	// or ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential rejects credentials too weak to register with.
	ValidateCredential(credential string) error
}
