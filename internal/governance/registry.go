package governance

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/daojo/internal/models"
	"github.com/mmynk/daojo/internal/storage"
)

// CircleSnapshot is a circle together with its current treasury balance.
type CircleSnapshot struct {
	Circle          *models.Circle
	TreasuryAccount string
	TreasuryBalance uint64
}

// CreateCircle founds a circle with creator as its only member and opens
// the circle's treasury account.
func (e *Engine) CreateCircle(ctx context.Context, creator, name string, contributionAmount uint64, inviteCode string) (*models.Circle, error) {
	id, bump := CircleAddress(inviteCode)
	circle := &models.Circle{
		ID:                 id,
		Name:               name,
		InviteCode:         inviteCode,
		ContributionAmount: contributionAmount,
		Creator:            creator,
		Members:            models.NewRoster(creator),
		Bump:               bump,
		CreatedAt:          e.timestamp(),
	}

	err := e.atomic(ctx, "create_circle", func(tx storage.Tx) error {
		if err := tx.CreateCircle(ctx, circle); err != nil {
			if errors.Is(err, storage.ErrAlreadyExists) {
				return ErrDuplicateInviteCode
			}
			return fmt.Errorf("create circle: %w", err)
		}

		treasury := &models.Account{
			ID:        TreasuryAccountID(inviteCode),
			Owner:     TreasuryAuthority(inviteCode),
			Kind:      models.AccountKindTreasury,
			CreatedAt: circle.CreatedAt,
		}
		if err := tx.CreateAccount(ctx, treasury); err != nil {
			if errors.Is(err, storage.ErrAlreadyExists) {
				return ErrDuplicateInviteCode
			}
			return fmt.Errorf("open treasury: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("Circle created", "circle_id", circle.ID, "creator", creator, "contribution_amount", contributionAmount)
	return circle, nil
}

// JoinCircle appends joiner to the next open member slot.
func (e *Engine) JoinCircle(ctx context.Context, joiner, circleID, inviteCode string) (*models.Circle, error) {
	var circle *models.Circle
	err := e.atomic(ctx, "join_circle", func(tx storage.Tx) error {
		var err error
		circle, err = loadCircle(ctx, tx, circleID)
		if err != nil {
			return err
		}
		if circle.InviteCode != inviteCode {
			return ErrInvalidInviteCode
		}
		if circle.IsMember(joiner) {
			return ErrAlreadyMember
		}
		if !circle.Members.Append(joiner) {
			return ErrCircleFull
		}
		return tx.UpdateCircleMembers(ctx, circle)
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("Member joined circle", "circle_id", circle.ID, "user_id", joiner, "member_count", circle.MemberCount())
	return circle, nil
}

// GetCircle returns a circle and its treasury balance. The invite code is
// the only gate on JoinCircle, so it is blanked unless caller is a member.
func (e *Engine) GetCircle(ctx context.Context, caller, circleID string) (*CircleSnapshot, error) {
	var snap *CircleSnapshot
	err := e.store.Atomic(ctx, func(tx storage.Tx) error {
		circle, err := loadCircle(ctx, tx, circleID)
		if err != nil {
			return err
		}
		treasury, err := loadTreasury(ctx, tx, circle)
		if err != nil {
			return err
		}
		if !circle.IsMember(caller) {
			circle.InviteCode = ""
		}
		snap = &CircleSnapshot{
			Circle:          circle,
			TreasuryAccount: treasury.ID,
			TreasuryBalance: treasury.Balance,
		}
		return nil
	})
	return snap, err
}

func loadTreasury(ctx context.Context, tx storage.Tx, circle *models.Circle) (*models.Account, error) {
	treasury, err := tx.GetAccount(ctx, TreasuryAccountID(circle.InviteCode))
	if err != nil {
		return nil, notFound(err, ErrAccountNotFound, "treasury")
	}
	if treasury.Owner != TreasuryAuthority(circle.InviteCode) {
		return nil, fmt.Errorf("treasury %s is not controlled by circle %s", treasury.ID, circle.ID)
	}
	return treasury, nil
}
