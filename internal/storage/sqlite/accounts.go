package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/daojo/internal/models"
	"github.com/mmynk/daojo/internal/storage"
)

// CreateAccount persists a new token account.
func (t *sqliteTx) CreateAccount(ctx context.Context, account *models.Account) error {
	// Generate ID if not set
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	if account.CreatedAt == 0 {
		account.CreatedAt = time.Now().Unix()
	}

	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO accounts (id, owner, kind, balance, created_at) VALUES (?, ?, ?, ?, ?)`,
		account.ID, account.Owner, string(account.Kind), int64(account.Balance), account.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("account %s: %w", account.ID, storage.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

// GetAccount retrieves an account by ID.
func (t *sqliteTx) GetAccount(ctx context.Context, accountID string) (*models.Account, error) {
	account, err := scanAccount(t.tx.QueryRowContext(ctx,
		`SELECT id, owner, kind, balance, created_at FROM accounts WHERE id = ?`,
		accountID,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("account %s: %w", accountID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// ListAccountsByOwner retrieves all accounts owned by owner, oldest first.
func (t *sqliteTx) ListAccountsByOwner(ctx context.Context, owner string) ([]*models.Account, error) {
	rows, err := t.tx.QueryContext(ctx,
		`SELECT id, owner, kind, balance, created_at FROM accounts WHERE owner = ? ORDER BY created_at, id`,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}
	return accounts, nil
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var (
		account models.Account
		kind    string
		balance int64
	)
	if err := row.Scan(&account.ID, &account.Owner, &kind, &balance, &account.CreatedAt); err != nil {
		return nil, err
	}
	account.Kind = models.AccountKind(kind)
	account.Balance = uint64(balance)
	return &account, nil
}

// Transfer moves funds between accounts, or across the ledger boundary when
// one side is empty, and records the movement. Balances are checked before
// any row is written.
func (t *sqliteTx) Transfer(ctx context.Context, transfer *models.Transfer) error {
	if transfer.Amount > math.MaxInt64 {
		return fmt.Errorf("transfer amount %d exceeds ledger range", transfer.Amount)
	}

	if transfer.FromAccountID == "" && transfer.ToAccountID == "" {
		return storage.ErrNoEndpoint
	}

	if transfer.ToAccountID != "" {
		to, err := t.GetAccount(ctx, transfer.ToAccountID)
		if err != nil {
			return err
		}
		if to.Balance > math.MaxInt64-transfer.Amount {
			return fmt.Errorf("account %s: balance overflow", to.ID)
		}
	}

	if transfer.FromAccountID != "" {
		from, err := t.GetAccount(ctx, transfer.FromAccountID)
		if err != nil {
			return err
		}
		if from.Balance < transfer.Amount {
			return fmt.Errorf("account %s: %w", from.ID, storage.ErrInsufficientBalance)
		}
		if _, err := t.tx.ExecContext(ctx,
			`UPDATE accounts SET balance = balance - ? WHERE id = ?`,
			int64(transfer.Amount), from.ID,
		); err != nil {
			return fmt.Errorf("failed to debit account: %w", err)
		}
	}

	if transfer.ToAccountID != "" {
		if _, err := t.tx.ExecContext(ctx,
			`UPDATE accounts SET balance = balance + ? WHERE id = ?`,
			int64(transfer.Amount), transfer.ToAccountID,
		); err != nil {
			return fmt.Errorf("failed to credit account: %w", err)
		}
	}

	if transfer.ID == "" {
		transfer.ID = uuid.New().String()
	}
	if transfer.CreatedAt == 0 {
		transfer.CreatedAt = time.Now().Unix()
	}
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO transfers (id, circle_id, request_id, from_account_id, to_account_id, amount, kind, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		transfer.ID, transfer.CircleID, transfer.RequestID, transfer.FromAccountID, transfer.ToAccountID,
		int64(transfer.Amount), string(transfer.Kind), transfer.CreatedBy, transfer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transfer: %w", err)
	}
	return nil
}

// ListTransfersByCircle retrieves all transfers recorded against a circle in insertion order.
func (t *sqliteTx) ListTransfersByCircle(ctx context.Context, circleID string) ([]*models.Transfer, error) {
	rows, err := t.tx.QueryContext(ctx,
		`SELECT id, circle_id, request_id, from_account_id, to_account_id, amount, kind, created_by, created_at
		 FROM transfers WHERE circle_id = ? ORDER BY rowid`,
		circleID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}
	defer rows.Close()

	var transfers []*models.Transfer
	for rows.Next() {
		var (
			tr     models.Transfer
			amount int64
			kind   string
		)
		if err := rows.Scan(&tr.ID, &tr.CircleID, &tr.RequestID, &tr.FromAccountID, &tr.ToAccountID,
			&amount, &kind, &tr.CreatedBy, &tr.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}
		tr.Amount = uint64(amount)
		tr.Kind = models.TransferKind(kind)
		transfers = append(transfers, &tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transfers: %w", err)
	}
	return transfers, nil
}
