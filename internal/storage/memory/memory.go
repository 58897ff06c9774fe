// Package memory provides an in-process implementation of storage.Store.
// It is intended for development and tests; nothing survives a restart.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/daojo/internal/models"
	"github.com/mmynk/daojo/internal/storage"
)

var _ storage.Store = (*Store)(nil)

type state struct {
	circles     map[string]models.Circle
	inviteCodes map[string]string
	requests    map[string]models.FundingRequest
	accounts    map[string]models.Account
	transfers   []models.Transfer
}

func newState() *state {
	return &state{
		circles:     make(map[string]models.Circle),
		inviteCodes: make(map[string]string),
		requests:    make(map[string]models.FundingRequest),
		accounts:    make(map[string]models.Account),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.circles {
		c.circles[k] = v
	}
	for k, v := range s.inviteCodes {
		c.inviteCodes[k] = v
	}
	for k, v := range s.requests {
		c.requests[k] = v
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	c.transfers = append([]models.Transfer(nil), s.transfers...)
	return c
}

// Store keeps all records in maps guarded by a single mutex.
// Atomic holds the lock for the whole callback, serializing operations.
type Store struct {
	mu    sync.Mutex
	state *state
	users map[string]models.User
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		state: newState(),
		users: make(map[string]models.User),
	}
}

// Atomic runs fn against a private copy of the state and installs the copy
// only if fn succeeds.
func (s *Store) Atomic(ctx context.Context, fn func(tx storage.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	work := s.state.clone()
	if err := fn(&tx{state: work}); err != nil {
		return err
	}
	s.state = work
	return nil
}

// CreateUser stores a new user.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return fmt.Errorf("email %s: %w", user.Email, storage.ErrAlreadyExists)
		}
	}
	s.users[user.ID] = *user
	return nil
}

// GetUserByEmail looks a user up by email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, storage.ErrNotFound)
}

// GetUserByID looks a user up by ID.
func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, storage.ErrNotFound)
	}
	return &u, nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

type tx struct {
	state *state
}

func (t *tx) CreateCircle(ctx context.Context, circle *models.Circle) error {
	if _, ok := t.state.circles[circle.ID]; ok {
		return fmt.Errorf("circle %s: %w", circle.ID, storage.ErrAlreadyExists)
	}
	if _, ok := t.state.inviteCodes[circle.InviteCode]; ok {
		return fmt.Errorf("invite code %s: %w", circle.InviteCode, storage.ErrAlreadyExists)
	}
	if circle.CreatedAt == 0 {
		circle.CreatedAt = time.Now().Unix()
	}
	t.state.circles[circle.ID] = *circle
	t.state.inviteCodes[circle.InviteCode] = circle.ID
	return nil
}

func (t *tx) GetCircle(ctx context.Context, circleID string) (*models.Circle, error) {
	c, ok := t.state.circles[circleID]
	if !ok {
		return nil, fmt.Errorf("circle %s: %w", circleID, storage.ErrNotFound)
	}
	return &c, nil
}

func (t *tx) UpdateCircleMembers(ctx context.Context, circle *models.Circle) error {
	c, ok := t.state.circles[circle.ID]
	if !ok {
		return fmt.Errorf("circle %s: %w", circle.ID, storage.ErrNotFound)
	}
	c.Members = circle.Members
	t.state.circles[circle.ID] = c
	return nil
}

func (t *tx) CreateRequest(ctx context.Context, req *models.FundingRequest) error {
	if _, ok := t.state.requests[req.ID]; ok {
		return fmt.Errorf("request %s: %w", req.ID, storage.ErrAlreadyExists)
	}
	if _, ok := t.state.circles[req.CircleID]; !ok {
		return fmt.Errorf("circle %s: %w", req.CircleID, storage.ErrNotFound)
	}
	t.state.requests[req.ID] = *req
	return nil
}

func (t *tx) GetRequest(ctx context.Context, requestID string) (*models.FundingRequest, error) {
	r, ok := t.state.requests[requestID]
	if !ok {
		return nil, fmt.Errorf("request %s: %w", requestID, storage.ErrNotFound)
	}
	return &r, nil
}

func (t *tx) UpdateRequest(ctx context.Context, req *models.FundingRequest) error {
	r, ok := t.state.requests[req.ID]
	if !ok {
		return fmt.Errorf("request %s: %w", req.ID, storage.ErrNotFound)
	}
	r.VotesFor = req.VotesFor
	r.VotesAgainst = req.VotesAgainst
	r.Voters = req.Voters
	r.Status = req.Status
	r.UpdatedAt = req.UpdatedAt
	t.state.requests[req.ID] = r
	return nil
}

func (t *tx) ListRequestsByCircle(ctx context.Context, circleID string) ([]*models.FundingRequest, error) {
	var out []*models.FundingRequest
	for _, r := range t.state.requests {
		if r.CircleID == circleID {
			r := r
			out = append(out, &r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (t *tx) CreateAccount(ctx context.Context, account *models.Account) error {
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	if account.CreatedAt == 0 {
		account.CreatedAt = time.Now().Unix()
	}
	if _, ok := t.state.accounts[account.ID]; ok {
		return fmt.Errorf("account %s: %w", account.ID, storage.ErrAlreadyExists)
	}
	t.state.accounts[account.ID] = *account
	return nil
}

func (t *tx) GetAccount(ctx context.Context, accountID string) (*models.Account, error) {
	a, ok := t.state.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", accountID, storage.ErrNotFound)
	}
	return &a, nil
}

func (t *tx) ListAccountsByOwner(ctx context.Context, owner string) ([]*models.Account, error) {
	var out []*models.Account
	for _, a := range t.state.accounts {
		if a.Owner == owner {
			a := a
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (t *tx) Transfer(ctx context.Context, transfer *models.Transfer) error {
	if transfer.FromAccountID == "" && transfer.ToAccountID == "" {
		return storage.ErrNoEndpoint
	}
	if transfer.Amount > math.MaxInt64 {
		return fmt.Errorf("transfer amount %d exceeds ledger range", transfer.Amount)
	}

	var from, to models.Account
	if transfer.ToAccountID != "" {
		var ok bool
		if to, ok = t.state.accounts[transfer.ToAccountID]; !ok {
			return fmt.Errorf("account %s: %w", transfer.ToAccountID, storage.ErrNotFound)
		}
	}
	if transfer.FromAccountID != "" {
		var ok bool
		if from, ok = t.state.accounts[transfer.FromAccountID]; !ok {
			return fmt.Errorf("account %s: %w", transfer.FromAccountID, storage.ErrNotFound)
		}
		if from.Balance < transfer.Amount {
			return fmt.Errorf("account %s: %w", from.ID, storage.ErrInsufficientBalance)
		}
	}
	if transfer.ToAccountID != "" && to.Balance > math.MaxInt64-transfer.Amount {
		return fmt.Errorf("account %s: balance overflow", to.ID)
	}

	if transfer.FromAccountID != "" {
		from.Balance -= transfer.Amount
		t.state.accounts[from.ID] = from
	}
	if transfer.ToAccountID != "" {
		// Re-read in case source and destination are the same account.
		to = t.state.accounts[to.ID]
		to.Balance += transfer.Amount
		t.state.accounts[to.ID] = to
	}

	if transfer.ID == "" {
		transfer.ID = uuid.New().String()
	}
	if transfer.CreatedAt == 0 {
		transfer.CreatedAt = time.Now().Unix()
	}
	t.state.transfers = append(t.state.transfers, *transfer)
	return nil
}

func (t *tx) ListTransfersByCircle(ctx context.Context, circleID string) ([]*models.Transfer, error) {
	var out []*models.Transfer
	for _, tr := range t.state.transfers {
		if tr.CircleID == circleID {
			tr := tr
			out = append(out, &tr)
		}
	}
	return out, nil
}
