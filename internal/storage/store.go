// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/daojo/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists is returned when a record with the same key exists.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrInsufficientBalance is returned by Transfer when the source
	// account cannot cover the amount.
	ErrInsufficientBalance = errors.New("insufficient account balance")
	// ErrNoEndpoint is returned by Transfer when both account IDs are empty.
	ErrNoEndpoint = errors.New("transfer needs a source or destination account")
)

// Store defines the interface for persistence operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, memory)
// without changing the governance or service layers.
type Store interface {
	// Atomic runs fn inside a single transaction. If fn returns an error,
	// every write made through tx is discarded.
	Atomic(ctx context.Context, fn func(tx Tx) error) error

	// CreateUser persists a new user. Returns ErrAlreadyExists on duplicate email.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail returns ErrNotFound if no user has that email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns ErrNotFound if the user does not exist.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}

// Tx is the set of operations available inside Store.Atomic.
type Tx interface {
	// CreateCircle inserts a circle. Returns ErrAlreadyExists if the ID or
	// invite code is taken.
	CreateCircle(ctx context.Context, circle *models.Circle) error
	GetCircle(ctx context.Context, circleID string) (*models.Circle, error)
	// UpdateCircleMembers persists the member roster of an existing circle.
	UpdateCircleMembers(ctx context.Context, circle *models.Circle) error

	// CreateRequest inserts a funding request. Returns ErrAlreadyExists on ID collision.
	CreateRequest(ctx context.Context, req *models.FundingRequest) error
	GetRequest(ctx context.Context, requestID string) (*models.FundingRequest, error)
	// UpdateRequest persists tallies, voters, status and UpdatedAt.
	UpdateRequest(ctx context.Context, req *models.FundingRequest) error
	ListRequestsByCircle(ctx context.Context, circleID string) ([]*models.FundingRequest, error)

	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccount(ctx context.Context, accountID string) (*models.Account, error)
	ListAccountsByOwner(ctx context.Context, owner string) ([]*models.Account, error)

	// Transfer debits FromAccountID and credits ToAccountID, then records the
	// transfer. An empty FromAccountID is an external deposit and an empty
	// ToAccountID an external withdrawal; one side must be set.
	// Generates ID and CreatedAt when unset.
	// Returns ErrInsufficientBalance or ErrNotFound without side effects.
	Transfer(ctx context.Context, transfer *models.Transfer) error
	ListTransfersByCircle(ctx context.Context, circleID string) ([]*models.Transfer, error)
}
