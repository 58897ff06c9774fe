package governance

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/daojo/internal/models"
	"github.com/mmynk/daojo/internal/storage"
)

// MajorityThreshold is the number of same-direction votes needed to
// resolve a request in a circle with memberCount members.
func MajorityThreshold(memberCount int) uint32 {
	return uint32(memberCount/2 + 1)
}

// CreateRequest opens a funding request for requester in the circle.
// The request ID is derived from (circle, requester), so a member can hold
// only one request per circle.
func (e *Engine) CreateRequest(ctx context.Context, requester, circleID string, amount uint64, description string) (*models.FundingRequest, error) {
	var req *models.FundingRequest
	err := e.atomic(ctx, "create_request", func(tx storage.Tx) error {
		circle, err := loadCircle(ctx, tx, circleID)
		if err != nil {
			return err
		}
		if !circle.IsMember(requester) {
			return ErrNotAMember
		}

		id, bump := RequestAddress(circle.ID, requester)
		now := e.timestamp()
		req = &models.FundingRequest{
			ID:          id,
			CircleID:    circle.ID,
			Requester:   requester,
			Amount:      amount,
			Description: description,
			Status:      models.RequestStatusActive,
			Bump:        bump,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.CreateRequest(ctx, req); err != nil {
			if errors.Is(err, storage.ErrAlreadyExists) {
				return ErrRequestExists
			}
			return fmt.Errorf("create request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("Funding request created", "request_id", req.ID, "circle_id", circleID, "requester", requester, "amount", amount)
	return req, nil
}

// VoteOnRequest records voter's ballot and resolves the request once either
// side reaches the majority threshold.
func (e *Engine) VoteOnRequest(ctx context.Context, voter, requestID string, vote models.Vote) (*models.FundingRequest, error) {
	var (
		req  *models.FundingRequest
		from models.RequestStatus
	)
	err := e.atomic(ctx, "vote_on_request", func(tx storage.Tx) error {
		var (
			circle *models.Circle
			err    error
		)
		req, circle, err = loadRequestWithCircle(ctx, tx, requestID)
		if err != nil {
			return err
		}

		from = req.Status
		if err := applyVote(circle, req, voter, vote); err != nil {
			return err
		}
		req.UpdatedAt = e.timestamp()
		return tx.UpdateRequest(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	e.metrics.Vote(bool(vote))
	if req.Status != from {
		e.metrics.Transition(string(from), string(req.Status))
		e.logger.Info("Funding request resolved",
			"request_id", req.ID,
			"status", req.Status,
			"votes_for", req.VotesFor,
			"votes_against", req.VotesAgainst,
		)
	}
	e.logger.Info("Vote recorded", "request_id", req.ID, "user_id", voter, "vote", vote.String())
	return req, nil
}

// applyVote validates and tallies one ballot in place.
func applyVote(circle *models.Circle, req *models.FundingRequest, voter string, vote models.Vote) error {
	if !circle.IsMember(voter) {
		return ErrNotAMember
	}
	if err := checkTransition(req.Status, models.RequestStatusApproved); err != nil {
		return err
	}
	if req.HasVoted(voter) || !req.Voters.Append(voter) {
		return ErrAlreadyVoted
	}

	if vote == models.VoteYes {
		req.VotesFor++
	} else {
		req.VotesAgainst++
	}

	threshold := MajorityThreshold(circle.MemberCount())
	switch {
	case req.VotesFor >= threshold:
		return transition(req, models.RequestStatusApproved)
	case req.VotesAgainst >= threshold:
		return transition(req, models.RequestStatusRejected)
	}
	return nil
}

// GetRequest returns a request visible to caller, who must be a member of its circle.
func (e *Engine) GetRequest(ctx context.Context, caller, requestID string) (*models.FundingRequest, error) {
	var req *models.FundingRequest
	err := e.store.Atomic(ctx, func(tx storage.Tx) error {
		var (
			circle *models.Circle
			err    error
		)
		req, circle, err = loadRequestWithCircle(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if !circle.IsMember(caller) {
			return ErrNotAMember
		}
		return nil
	})
	return req, err
}

// ListRequests returns every request in the circle, newest first.
func (e *Engine) ListRequests(ctx context.Context, caller, circleID string) ([]*models.FundingRequest, error) {
	var reqs []*models.FundingRequest
	err := e.store.Atomic(ctx, func(tx storage.Tx) error {
		circle, err := loadCircle(ctx, tx, circleID)
		if err != nil {
			return err
		}
		if !circle.IsMember(caller) {
			return ErrNotAMember
		}
		reqs, err = tx.ListRequestsByCircle(ctx, circle.ID)
		return err
	})
	return reqs, err
}

// loadRequestWithCircle fetches a request and re-validates its circle
// reference: the circle must exist and the request ID must be the one
// derived from (circle, requester).
func loadRequestWithCircle(ctx context.Context, tx storage.Tx, requestID string) (*models.FundingRequest, *models.Circle, error) {
	req, err := tx.GetRequest(ctx, requestID)
	if err != nil {
		return nil, nil, notFound(err, ErrRequestNotFound, "request")
	}
	circle, err := loadCircle(ctx, tx, req.CircleID)
	if err != nil {
		if errors.Is(err, ErrCircleNotFound) {
			return nil, nil, ErrWrongCircle
		}
		return nil, nil, err
	}
	if !verifyAddress(req.ID, req.Bump, seedRequest, circle.ID, req.Requester) {
		return nil, nil, ErrWrongCircle
	}
	return req, circle, nil
}
