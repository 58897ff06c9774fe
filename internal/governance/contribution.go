package governance

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/daojo/internal/models"
	"github.com/mmynk/daojo/internal/storage"
)

// Contribute moves the circle's fixed contribution amount from the member's
// source account into the treasury.
func (e *Engine) Contribute(ctx context.Context, member, circleID, inviteCode, sourceAccountID string) (*models.Transfer, error) {
	var transfer *models.Transfer
	err := e.atomic(ctx, "contribute", func(tx storage.Tx) error {
		circle, err := loadCircle(ctx, tx, circleID)
		if err != nil {
			return err
		}
		if circle.InviteCode != inviteCode {
			return ErrInvalidInviteCode
		}
		if !circle.IsMember(member) {
			return ErrNotAMember
		}

		source, err := tx.GetAccount(ctx, sourceAccountID)
		if err != nil {
			return notFound(err, ErrAccountNotFound, "source account")
		}
		if source.Owner != member {
			return ErrWrongTokenOwner
		}
		treasury, err := loadTreasury(ctx, tx, circle)
		if err != nil {
			return err
		}

		transfer = &models.Transfer{
			CircleID:      circle.ID,
			FromAccountID: source.ID,
			ToAccountID:   treasury.ID,
			Amount:        circle.ContributionAmount,
			Kind:          models.TransferKindContribution,
			CreatedBy:     member,
			CreatedAt:     e.timestamp(),
		}
		if err := tx.Transfer(ctx, transfer); err != nil {
			if errors.Is(err, storage.ErrInsufficientBalance) {
				return ErrInsufficientBalance
			}
			return fmt.Errorf("transfer contribution: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.metrics.Contributed(transfer.Amount)
	e.logger.Info("Member contributed", "circle_id", circleID, "user_id", member, "amount", transfer.Amount)
	return transfer, nil
}
