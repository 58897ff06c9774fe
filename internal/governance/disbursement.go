package governance

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/daojo/internal/models"
	"github.com/mmynk/daojo/internal/storage"
)

// DisburseFunds pays an approved request out of the circle treasury into
// destinationAccountID, which must belong to the requester. Any caller may
// trigger it; the transfer is authorized by the circle's treasury authority.
// A second call for the same request fails with ErrRequestAlreadyDisbursed.
func (e *Engine) DisburseFunds(ctx context.Context, caller, circleID, requestID, destinationAccountID string) (*models.FundingRequest, *models.Transfer, error) {
	var (
		req      *models.FundingRequest
		transfer *models.Transfer
		from     models.RequestStatus
	)
	err := e.atomic(ctx, "disburse_funds", func(tx storage.Tx) error {
		circle, err := loadCircle(ctx, tx, circleID)
		if err != nil {
			return err
		}
		req, err = tx.GetRequest(ctx, requestID)
		if err != nil {
			return notFound(err, ErrRequestNotFound, "request")
		}
		if req.CircleID != circle.ID || !verifyAddress(req.ID, req.Bump, seedRequest, circle.ID, req.Requester) {
			return ErrWrongCircle
		}

		destination, err := tx.GetAccount(ctx, destinationAccountID)
		if err != nil {
			return notFound(err, ErrAccountNotFound, "destination account")
		}
		if destination.Owner != req.Requester {
			return ErrWrongTokenOwner
		}

		from = req.Status
		if err := checkTransition(req.Status, models.RequestStatusDisbursed); err != nil {
			return err
		}

		treasury, err := loadTreasury(ctx, tx, circle)
		if err != nil {
			return err
		}
		if treasury.Balance < req.Amount {
			return ErrInsufficientFunds
		}

		transfer = &models.Transfer{
			CircleID:      circle.ID,
			RequestID:     req.ID,
			FromAccountID: treasury.ID,
			ToAccountID:   destination.ID,
			Amount:        req.Amount,
			Kind:          models.TransferKindDisbursement,
			CreatedBy:     caller,
			CreatedAt:     e.timestamp(),
		}
		if err := tx.Transfer(ctx, transfer); err != nil {
			if errors.Is(err, storage.ErrInsufficientBalance) {
				return ErrInsufficientFunds
			}
			return fmt.Errorf("transfer disbursement: %w", err)
		}

		if err := transition(req, models.RequestStatusDisbursed); err != nil {
			return err
		}
		req.UpdatedAt = transfer.CreatedAt
		return tx.UpdateRequest(ctx, req)
	})
	if err != nil {
		return nil, nil, err
	}

	e.metrics.Disbursed(transfer.Amount)
	e.metrics.Transition(string(from), string(req.Status))
	e.logger.Info("Funds disbursed",
		"request_id", req.ID,
		"circle_id", circleID,
		"requester", req.Requester,
		"amount", transfer.Amount,
	)
	return req, transfer, nil
}
