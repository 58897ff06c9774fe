package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mmynk/daojo/internal/models"
	"github.com/mmynk/daojo/internal/storage"
)

const circleColumns = `id, name, invite_code, contribution_amount, creator, member1, member2, member3, bump, created_at`

func (t *pgTx) CreateCircle(ctx context.Context, circle *models.Circle) error {
	m1, m2, m3 := rosterColumns(circle.Members)
	_, err := t.tx.Exec(ctx,
		`INSERT INTO circles (`+circleColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		circle.ID, circle.Name, circle.InviteCode, int64(circle.ContributionAmount), circle.Creator,
		m1, m2, m3, int16(circle.Bump), circle.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("circle %s: %w", circle.ID, storage.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("postgres: insert circle: %w", err)
	}
	return nil
}

func (t *pgTx) GetCircle(ctx context.Context, circleID string) (*models.Circle, error) {
	var (
		circle     models.Circle
		amount     int64
		bump       int16
		m1, m2, m3 string
	)
	err := t.tx.QueryRow(ctx,
		`SELECT `+circleColumns+` FROM circles WHERE id = $1`,
		circleID,
	).Scan(&circle.ID, &circle.Name, &circle.InviteCode, &amount, &circle.Creator,
		&m1, &m2, &m3, &bump, &circle.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("circle %s: %w", circleID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: get circle: %w", err)
	}

	circle.ContributionAmount = uint64(amount)
	circle.Bump = uint8(bump)
	circle.Members = scanRoster(m1, m2, m3)
	return &circle, nil
}

func (t *pgTx) UpdateCircleMembers(ctx context.Context, circle *models.Circle) error {
	m1, m2, m3 := rosterColumns(circle.Members)
	tag, err := t.tx.Exec(ctx,
		`UPDATE circles SET member1 = $1, member2 = $2, member3 = $3 WHERE id = $4`,
		m1, m2, m3, circle.ID,
	)
	if err != nil {
		return fmt.Errorf("postgres: update circle members: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("circle %s: %w", circle.ID, storage.ErrNotFound)
	}
	return nil
}
