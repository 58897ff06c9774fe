package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/daojo/internal/models"
	"github.com/mmynk/daojo/internal/storage"
)

const requestColumns = `id, circle_id, requester, amount, description, votes_for, votes_against,
	voter1, voter2, voter3, status, bump, created_at, updated_at`

// CreateRequest inserts a funding request.
func (t *sqliteTx) CreateRequest(ctx context.Context, req *models.FundingRequest) error {
	v1, v2, v3 := rosterColumns(req.Voters)
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO funding_requests (`+requestColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.ID, req.CircleID, req.Requester, int64(req.Amount), req.Description,
		req.VotesFor, req.VotesAgainst, v1, v2, v3, string(req.Status), req.Bump,
		req.CreatedAt, req.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("request %s: %w", req.ID, storage.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("failed to insert funding request: %w", err)
	}
	return nil
}

// GetRequest retrieves a funding request by ID.
func (t *sqliteTx) GetRequest(ctx context.Context, requestID string) (*models.FundingRequest, error) {
	req, err := scanRequest(t.tx.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM funding_requests WHERE id = ?`,
		requestID,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("request %s: %w", requestID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get funding request: %w", err)
	}
	return req, nil
}

// UpdateRequest writes tallies, voter slots, status and updated_at.
func (t *sqliteTx) UpdateRequest(ctx context.Context, req *models.FundingRequest) error {
	v1, v2, v3 := rosterColumns(req.Voters)
	res, err := t.tx.ExecContext(ctx,
		`UPDATE funding_requests
		 SET votes_for = ?, votes_against = ?, voter1 = ?, voter2 = ?, voter3 = ?, status = ?, updated_at = ?
		 WHERE id = ?`,
		req.VotesFor, req.VotesAgainst, v1, v2, v3, string(req.Status), req.UpdatedAt, req.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update funding request: %w", err)
	}
	return requireRow(res, "request", req.ID)
}

// ListRequestsByCircle retrieves all funding requests for a circle, newest first.
func (t *sqliteTx) ListRequestsByCircle(ctx context.Context, circleID string) ([]*models.FundingRequest, error) {
	rows, err := t.tx.QueryContext(ctx,
		`SELECT `+requestColumns+` FROM funding_requests WHERE circle_id = ? ORDER BY created_at DESC, id`,
		circleID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list funding requests: %w", err)
	}
	defer rows.Close()

	var reqs []*models.FundingRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan funding request: %w", err)
		}
		reqs = append(reqs, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate funding requests: %w", err)
	}
	return reqs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*models.FundingRequest, error) {
	var (
		req        models.FundingRequest
		amount     int64
		status     string
		v1, v2, v3 string
	)
	if err := row.Scan(&req.ID, &req.CircleID, &req.Requester, &amount, &req.Description,
		&req.VotesFor, &req.VotesAgainst, &v1, &v2, &v3, &status, &req.Bump,
		&req.CreatedAt, &req.UpdatedAt); err != nil {
		return nil, err
	}
	req.Amount = uint64(amount)
	req.Status = models.RequestStatus(status)
	req.Voters = scanRoster(v1, v2, v3)
	return &req, nil
}
