package postgres

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mmynk/daojo/internal/models"
	"github.com/mmynk/daojo/internal/storage"
)

func (t *pgTx) CreateAccount(ctx context.Context, account *models.Account) error {
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	if account.CreatedAt == 0 {
		account.CreatedAt = time.Now().Unix()
	}

	_, err := t.tx.Exec(ctx,
		`INSERT INTO accounts (id, owner, kind, balance, created_at) VALUES ($1, $2, $3, $4, $5)`,
		account.ID, account.Owner, string(account.Kind), int64(account.Balance), account.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("account %s: %w", account.ID, storage.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("postgres: insert account: %w", err)
	}
	return nil
}

func (t *pgTx) GetAccount(ctx context.Context, accountID string) (*models.Account, error) {
	return t.getAccount(ctx, `SELECT id, owner, kind, balance, created_at FROM accounts WHERE id = $1`, accountID)
}

// lockAccount reads an account with a row lock held until commit.
func (t *pgTx) lockAccount(ctx context.Context, accountID string) (*models.Account, error) {
	return t.getAccount(ctx, `SELECT id, owner, kind, balance, created_at FROM accounts WHERE id = $1 FOR UPDATE`, accountID)
}

func (t *pgTx) getAccount(ctx context.Context, query, accountID string) (*models.Account, error) {
	account, err := scanAccount(t.tx.QueryRow(ctx, query, accountID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("account %s: %w", accountID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: get account: %w", err)
	}
	return account, nil
}

func (t *pgTx) ListAccountsByOwner(ctx context.Context, owner string) ([]*models.Account, error) {
	rows, err := t.tx.Query(ctx,
		`SELECT id, owner, kind, balance, created_at FROM accounts WHERE owner = $1 ORDER BY created_at, id`,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate accounts: %w", err)
	}
	return accounts, nil
}

func scanAccount(row pgx.Row) (*models.Account, error) {
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

// Transfer locks the accounts it touches, checks balances, then moves funds
// and records the transfer. An empty side is the outside world.
func (t *pgTx) Transfer(ctx context.Context, transfer *models.Transfer) error {
	if transfer.Amount > math.MaxInt64 {
		return fmt.Errorf("transfer amount %d exceeds ledger range", transfer.Amount)
	}

	if transfer.FromAccountID == "" && transfer.ToAccountID == "" {
		return storage.ErrNoEndpoint
	}

	if transfer.ToAccountID != "" {
		to, err := t.lockAccount(ctx, transfer.ToAccountID)
		if err != nil {
			return err
		}
		if to.Balance > math.MaxInt64-transfer.Amount {
			return fmt.Errorf("account %s: balance overflow", to.ID)
		}
	}

	if transfer.FromAccountID != "" {
		from, err := t.lockAccount(ctx, transfer.FromAccountID)
		if err != nil {
			return err
		}
		if from.Balance < transfer.Amount {
			return fmt.Errorf("account %s: %w", from.ID, storage.ErrInsufficientBalance)
		}
		if _, err := t.tx.Exec(ctx,
			`UPDATE accounts SET balance = balance - $1 WHERE id = $2`,
			int64(transfer.Amount), from.ID,
		); err != nil {
			return fmt.Errorf("postgres: debit account: %w", err)
		}
	}

	if transfer.ToAccountID != "" {
		if _, err := t.tx.Exec(ctx,
			`UPDATE accounts SET balance = balance + $1 WHERE id = $2`,
			int64(transfer.Amount), transfer.ToAccountID,
		); err != nil {
			return fmt.Errorf("postgres: credit account: %w", err)
		}
	}

	if transfer.ID == "" {
		transfer.ID = uuid.New().String()
	}
	if transfer.CreatedAt == 0 {
		transfer.CreatedAt = time.Now().Unix()
	}
	_, err := t.tx.Exec(ctx,
		`INSERT INTO transfers (id, circle_id, request_id, from_account_id, to_account_id, amount, kind, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		transfer.ID, transfer.CircleID, transfer.RequestID, transfer.FromAccountID, transfer.ToAccountID,
		int64(transfer.Amount), string(transfer.Kind), transfer.CreatedBy, transfer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: insert transfer: %w", err)
	}
	return nil
}

func (t *pgTx) ListTransfersByCircle(ctx context.Context, circleID string) ([]*models.Transfer, error) {
	rows, err := t.tx.Query(ctx,
		`SELECT id, circle_id, request_id, from_account_id, to_account_id, amount, kind, created_by, created_at
		 FROM transfers WHERE circle_id = $1 ORDER BY seq`,
		circleID,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: list transfers: %w", err)
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
			return nil, fmt.Errorf("postgres: scan transfer: %w", err)
		}
		tr.Amount = uint64(amount)
		tr.Kind = models.TransferKind(kind)
		transfers = append(transfers, &tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate transfers: %w", err)
	}
	return transfers, nil
}
