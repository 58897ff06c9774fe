package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/daojo/internal/models"
	"github.com/mmynk/daojo/internal/storage"
)

const circleColumns = `id, name, invite_code, contribution_amount, creator, member1, member2, member3, bump, created_at`

// CreateCircle inserts a circle. The primary key and the invite code
// uniqueness constraint both map to storage.ErrAlreadyExists.
func (t *sqliteTx) CreateCircle(ctx context.Context, circle *models.Circle) error {
	m1, m2, m3 := rosterColumns(circle.Members)
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO circles (`+circleColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		circle.ID, circle.Name, circle.InviteCode, int64(circle.ContributionAmount), circle.Creator,
		m1, m2, m3, circle.Bump, circle.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("circle %s: %w", circle.ID, storage.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("failed to insert circle: %w", err)
	}
	return nil
}

// GetCircle retrieves a circle by ID.
func (t *sqliteTx) GetCircle(ctx context.Context, circleID string) (*models.Circle, error) {
	var (
		circle     models.Circle
		amount     int64
		m1, m2, m3 string
	)
	err := t.tx.QueryRowContext(ctx,
		`SELECT `+circleColumns+` FROM circles WHERE id = ?`,
		circleID,
	).Scan(&circle.ID, &circle.Name, &circle.InviteCode, &amount, &circle.Creator,
		&m1, &m2, &m3, &circle.Bump, &circle.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("circle %s: %w", circleID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get circle: %w", err)
	}

	circle.ContributionAmount = uint64(amount)
	circle.Members = scanRoster(m1, m2, m3)
	return &circle, nil
}

// UpdateCircleMembers writes the member slots of an existing circle.
func (t *sqliteTx) UpdateCircleMembers(ctx context.Context, circle *models.Circle) error {
	m1, m2, m3 := rosterColumns(circle.Members)
	res, err := t.tx.ExecContext(ctx,
		`UPDATE circles SET member1 = ?, member2 = ?, member3 = ? WHERE id = ?`,
		m1, m2, m3, circle.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update circle members: %w", err)
	}
	return requireRow(res, "circle", circle.ID)
}

// requireRow returns storage.ErrNotFound when an UPDATE matched nothing.
func requireRow(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", what, id, storage.ErrNotFound)
	}
	return nil
}
