// Package storagetest holds behaviour checks shared by every storage.Store
// implementation.
package storagetest

import (
	"context"
	"errors"
	"testing"

	"github.com/mmynk/daojo/internal/models"
	"github.com/mmynk/daojo/internal/storage"
)

// Run exercises store against the storage.Store contract. The store must be empty.
func Run(t *testing.T, store storage.Store) {
	t.Helper()
	ctx := context.Background()

	atomic := func(t *testing.T, fn func(tx storage.Tx) error) {
		t.Helper()
		if err := store.Atomic(ctx, fn); err != nil {
			t.Fatalf("Atomic failed: %v", err)
		}
	}

	circle := &models.Circle{
		ID:                 "circle-1",
		Name:               "Lagos Savers",
		InviteCode:         "LAGOS",
		ContributionAmount: 100,
		Creator:            "alice",
		Members:            models.NewRoster("alice"),
		Bump:               254,
		CreatedAt:          1_700_000_000,
	}

	t.Run("circle round trip", func(t *testing.T) {
		atomic(t, func(tx storage.Tx) error {
			return tx.CreateCircle(ctx, circle)
		})
		atomic(t, func(tx storage.Tx) error {
			got, err := tx.GetCircle(ctx, circle.ID)
			if err != nil {
				return err
			}
			if got.Name != circle.Name || got.InviteCode != circle.InviteCode ||
				got.ContributionAmount != 100 || got.Bump != 254 || got.CreatedAt != circle.CreatedAt {
				t.Errorf("GetCircle = %+v, want %+v", got, circle)
			}
			if got.Members.Count != 1 || got.Members.Slots[0] != "alice" {
				t.Errorf("members = %+v, want [alice]", got.Members)
			}
			return nil
		})
	})

	t.Run("duplicate circle", func(t *testing.T) {
		dup := *circle
		dup.ID = "circle-2"
		err := store.Atomic(ctx, func(tx storage.Tx) error {
			return tx.CreateCircle(ctx, &dup)
		})
		if !errors.Is(err, storage.ErrAlreadyExists) {
			t.Errorf("duplicate invite code: err = %v, want ErrAlreadyExists", err)
		}
		err = store.Atomic(ctx, func(tx storage.Tx) error {
			return tx.CreateCircle(ctx, circle)
		})
		if !errors.Is(err, storage.ErrAlreadyExists) {
			t.Errorf("duplicate ID: err = %v, want ErrAlreadyExists", err)
		}
	})

	t.Run("missing circle", func(t *testing.T) {
		err := store.Atomic(ctx, func(tx storage.Tx) error {
			_, err := tx.GetCircle(ctx, "nope")
			return err
		})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("update members", func(t *testing.T) {
		atomic(t, func(tx storage.Tx) error {
			c, err := tx.GetCircle(ctx, circle.ID)
			if err != nil {
				return err
			}
			c.Members.Append("bob")
			c.Members.Append("carol")
			return tx.UpdateCircleMembers(ctx, c)
		})
		atomic(t, func(tx storage.Tx) error {
			c, err := tx.GetCircle(ctx, circle.ID)
			if err != nil {
				return err
			}
			want := []string{"alice", "bob", "carol"}
			got := c.Members.Members()
			if len(got) != 3 || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
				t.Errorf("members = %v, want %v", got, want)
			}
			return nil
		})
	})

	req := &models.FundingRequest{
		ID:          "request-1",
		CircleID:    circle.ID,
		Requester:   "bob",
		Amount:      250,
		Description: "School fees",
		Status:      models.RequestStatusActive,
		Bump:        253,
		CreatedAt:   1_700_000_100,
		UpdatedAt:   1_700_000_100,
	}

	t.Run("request lifecycle", func(t *testing.T) {
		atomic(t, func(tx storage.Tx) error {
			return tx.CreateRequest(ctx, req)
		})
		err := store.Atomic(ctx, func(tx storage.Tx) error {
			return tx.CreateRequest(ctx, req)
		})
		if !errors.Is(err, storage.ErrAlreadyExists) {
			t.Errorf("duplicate request: err = %v, want ErrAlreadyExists", err)
		}

		atomic(t, func(tx storage.Tx) error {
			r, err := tx.GetRequest(ctx, req.ID)
			if err != nil {
				return err
			}
			r.Voters.Append("alice")
			r.Voters.Append("carol")
			r.VotesFor = 2
			r.Status = models.RequestStatusApproved
			r.UpdatedAt = 1_700_000_200
			return tx.UpdateRequest(ctx, r)
		})

		atomic(t, func(tx storage.Tx) error {
			reqs, err := tx.ListRequestsByCircle(ctx, circle.ID)
			if err != nil {
				return err
			}
			if len(reqs) != 1 {
				t.Fatalf("ListRequestsByCircle returned %d, want 1", len(reqs))
			}
			r := reqs[0]
			if r.Status != models.RequestStatusApproved || r.VotesFor != 2 || r.VotesAgainst != 0 {
				t.Errorf("request = %+v", r)
			}
			if r.Voters.Count != 2 || !r.Voters.Contains("alice") || !r.Voters.Contains("carol") {
				t.Errorf("voters = %+v", r.Voters)
			}
			if r.Amount != 250 || r.Bump != 253 || r.UpdatedAt != 1_700_000_200 || r.CreatedAt != 1_700_000_100 {
				t.Errorf("request fields not preserved: %+v", r)
			}
			return nil
		})
	})

	t.Run("transfers", func(t *testing.T) {
		atomic(t, func(tx storage.Tx) error {
			for _, a := range []*models.Account{
				{ID: "wallet-bob", Owner: "bob", Kind: models.AccountKindWallet},
				{ID: "treasury", Owner: "authority", Kind: models.AccountKindTreasury},
			} {
				if err := tx.CreateAccount(ctx, a); err != nil {
					return err
				}
			}
			return tx.Transfer(ctx, &models.Transfer{
				ToAccountID: "wallet-bob",
				Amount:      500,
				Kind:        models.TransferKindDeposit,
				CreatedBy:   "bob",
			})
		})

		err := store.Atomic(ctx, func(tx storage.Tx) error {
			return tx.Transfer(ctx, &models.Transfer{
				CircleID:      circle.ID,
				FromAccountID: "wallet-bob",
				ToAccountID:   "treasury",
				Amount:        501,
				Kind:          models.TransferKindContribution,
				CreatedBy:     "bob",
			})
		})
		if !errors.Is(err, storage.ErrInsufficientBalance) {
			t.Errorf("overdraw: err = %v, want ErrInsufficientBalance", err)
		}

		atomic(t, func(tx storage.Tx) error {
			return tx.Transfer(ctx, &models.Transfer{
				CircleID:      circle.ID,
				FromAccountID: "wallet-bob",
				ToAccountID:   "treasury",
				Amount:        100,
				Kind:          models.TransferKindContribution,
				CreatedBy:     "bob",
			})
		})

		err = store.Atomic(ctx, func(tx storage.Tx) error {
			return tx.Transfer(ctx, &models.Transfer{FromAccountID: "wallet-bob", ToAccountID: "nope", Amount: 1})
		})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("missing destination: err = %v, want ErrNotFound", err)
		}

		atomic(t, func(tx storage.Tx) error {
			wallet, err := tx.GetAccount(ctx, "wallet-bob")
			if err != nil {
				return err
			}
			treasury, err := tx.GetAccount(ctx, "treasury")
			if err != nil {
				return err
			}
			if wallet.Balance != 400 || treasury.Balance != 100 {
				t.Errorf("balances = %d/%d, want 400/100", wallet.Balance, treasury.Balance)
			}

			transfers, err := tx.ListTransfersByCircle(ctx, circle.ID)
			if err != nil {
				return err
			}
			if len(transfers) != 1 {
				t.Fatalf("ListTransfersByCircle returned %d, want 1", len(transfers))
			}
			if transfers[0].ID == "" || transfers[0].Amount != 100 || transfers[0].Kind != models.TransferKindContribution {
				t.Errorf("transfer = %+v", transfers[0])
			}

			accounts, err := tx.ListAccountsByOwner(ctx, "bob")
			if err != nil {
				return err
			}
			if len(accounts) != 1 || accounts[0].ID != "wallet-bob" {
				t.Errorf("ListAccountsByOwner = %+v", accounts)
			}
			return nil
		})
	})

	t.Run("withdrawals", func(t *testing.T) {
		tests := []struct {
			name    string
			from    string
			amount  uint64
			wantErr error
		}{
			{name: "overdraw", from: "wallet-bob", amount: 401, wantErr: storage.ErrInsufficientBalance},
			{name: "missing source", from: "nope", amount: 1, wantErr: storage.ErrNotFound},
			{name: "no endpoints", from: "", amount: 1, wantErr: storage.ErrNoEndpoint},
			{name: "to the outside", from: "wallet-bob", amount: 150},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := store.Atomic(ctx, func(tx storage.Tx) error {
					return tx.Transfer(ctx, &models.Transfer{
						FromAccountID: tt.from,
						Amount:        tt.amount,
						Kind:          models.TransferKindWithdrawal,
						CreatedBy:     "bob",
					})
				})
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("err = %v, want %v", err, tt.wantErr)
				}
			})
		}

		atomic(t, func(tx storage.Tx) error {
			wallet, err := tx.GetAccount(ctx, "wallet-bob")
			if err != nil {
				return err
			}
			if wallet.Balance != 250 {
				t.Errorf("balance = %d, want 250", wallet.Balance)
			}
			return nil
		})
	})

	t.Run("rollback", func(t *testing.T) {
		boom := errors.New("boom")
		err := store.Atomic(ctx, func(tx storage.Tx) error {
			if err := tx.Transfer(ctx, &models.Transfer{
				FromAccountID: "wallet-bob",
				ToAccountID:   "treasury",
				Amount:        50,
			}); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("err = %v, want boom", err)
		}
		atomic(t, func(tx storage.Tx) error {
			wallet, err := tx.GetAccount(ctx, "wallet-bob")
			if err != nil {
				return err
			}
			if wallet.Balance != 250 {
				t.Errorf("wallet = %d after rollback, want 250", wallet.Balance)
			}
			return nil
		})
	})

	t.Run("users", func(t *testing.T) {
		user := &models.User{
			ID:           "user-1",
			Email:        "alice@example.com",
			DisplayName:  "Alice",
			PasswordHash: "hash",
			CreatedAt:    1_700_000_000,
			UpdatedAt:    1_700_000_000,
		}
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		dup := *user
		dup.ID = "user-2"
		if err := store.CreateUser(ctx, &dup); !errors.Is(err, storage.ErrAlreadyExists) {
			t.Errorf("duplicate email: err = %v, want ErrAlreadyExists", err)
		}

		got, err := store.GetUserByEmail(ctx, user.Email)
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got.ID != user.ID || got.DisplayName != "Alice" {
			t.Errorf("GetUserByEmail = %+v", got)
		}
		if _, err := store.GetUserByID(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetUserByID: err = %v, want ErrNotFound", err)
		}
		if _, err := store.GetUserByEmail(ctx, "nope@example.com"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetUserByEmail: err = %v, want ErrNotFound", err)
		}
	})
}
