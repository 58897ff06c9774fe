package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mmynk/daojo/internal/models"
	"github.com/mmynk/daojo/internal/storage"
)

const requestColumns = `id, circle_id, requester, amount, description, votes_for, votes_against,
	voter1, voter2, voter3, status, bump, created_at, updated_at`

func (t *pgTx) CreateRequest(ctx context.Context, req *models.FundingRequest) error {
	v1, v2, v3 := rosterColumns(req.Voters)
	_, err := t.tx.Exec(ctx,
		`INSERT INTO funding_requests (`+requestColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		req.ID, req.CircleID, req.Requester, int64(req.Amount), req.Description,
		int32(req.VotesFor), int32(req.VotesAgainst), v1, v2, v3, string(req.Status), int16(req.Bump),
		req.CreatedAt, req.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("request %s: %w", req.ID, storage.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("postgres: insert funding request: %w", err)
	}
	return nil
}

func (t *pgTx) GetRequest(ctx context.Context, requestID string) (*models.FundingRequest, error) {
	req, err := scanRequest(t.tx.QueryRow(ctx,
		`SELECT `+requestColumns+` FROM funding_requests WHERE id = $1`,
		requestID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("request %s: %w", requestID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: get funding request: %w", err)
	}
	return req, nil
}

func (t *pgTx) UpdateRequest(ctx context.Context, req *models.FundingRequest) error {
	v1, v2, v3 := rosterColumns(req.Voters)
	tag, err := t.tx.Exec(ctx,
		`UPDATE funding_requests
		 SET votes_for = $1, votes_against = $2, voter1 = $3, voter2 = $4, voter3 = $5, status = $6, updated_at = $7
		 WHERE id = $8`,
		int32(req.VotesFor), int32(req.VotesAgainst), v1, v2, v3, string(req.Status), req.UpdatedAt, req.ID,
	)
	if err != nil {
		return fmt.Errorf("postgres: update funding request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("request %s: %w", req.ID, storage.ErrNotFound)
	}
	return nil
}

func (t *pgTx) ListRequestsByCircle(ctx context.Context, circleID string) ([]*models.FundingRequest, error) {
	rows, err := t.tx.Query(ctx,
		`SELECT `+requestColumns+` FROM funding_requests WHERE circle_id = $1 ORDER BY created_at DESC, id`,
		circleID,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: list funding requests: %w", err)
	}
	defer rows.Close()

	var reqs []*models.FundingRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan funding request: %w", err)
		}
		reqs = append(reqs, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate funding requests: %w", err)
	}
	return reqs, nil
}

func scanRequest(row pgx.Row) (*models.FundingRequest, error) {
	var (
		req          models.FundingRequest
		amount       int64
		votesFor     int32
		votesAgainst int32
		bump         int16
		status       string
		v1, v2, v3   string
	)
	if err := row.Scan(&req.ID, &req.CircleID, &req.Requester, &amount, &req.Description,
		&votesFor, &votesAgainst, &v1, &v2, &v3, &status, &bump,
		&req.CreatedAt, &req.UpdatedAt); err != nil {
		return nil, err
	}
	req.Amount = uint64(amount)
	req.VotesFor = uint32(votesFor)
	req.VotesAgainst = uint32(votesAgainst)
	req.Bump = uint8(bump)
	req.Status = models.RequestStatus(status)
	req.Voters = scanRoster(v1, v2, v3)
	return &req, nil
}
