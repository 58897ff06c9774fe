package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/daojo/internal/governance"
	"github.com/mmynk/daojo/internal/models"
	"github.com/mmynk/daojo/pkg/api"
	"github.com/mmynk/daojo/pkg/api/apiconnect"
)

var _ apiconnect.CircleServiceHandler = (*CircleService)(nil)

// CircleService implements the CircleService RPC interface on top of the
// governance engine. Every method requires an authenticated caller.
type CircleService struct {
	engine *governance.Engine
	logger *slog.Logger
}

// NewCircleService creates a new CircleService.
func NewCircleService(engine *governance.Engine, logger *slog.Logger) *CircleService {
	return &CircleService{
		engine: engine,
		logger: logger,
	}
}

// CreateCircle founds a circle with the caller as its first member.
func (s *CircleService) CreateCircle(ctx context.Context, req *connect.Request[api.CreateCircleRequest]) (*connect.Response[api.CreateCircleResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	// Validate input
	if err := validateText("name", req.Msg.Name, models.MaxCircleNameLen, true); err != nil {
		return nil, err
	}
	if err := validateText("invite_code", req.Msg.InviteCode, models.MaxInviteCodeLen, true); err != nil {
		return nil, err
	}
	if err := validateAmount("contribution_amount", req.Msg.ContributionAmount); err != nil {
		return nil, err
	}

	circle, err := s.engine.CreateCircle(ctx, userID, req.Msg.Name, req.Msg.ContributionAmount, req.Msg.InviteCode)
	if err != nil {
		s.logger.Warn("CreateCircle failed", "user_id", userID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.CreateCircleResponse{Circle: toAPICircle(circle)}), nil
}

// JoinCircle adds the caller to a circle using its invite code.
func (s *CircleService) JoinCircle(ctx context.Context, req *connect.Request[api.JoinCircleRequest]) (*connect.Response[api.JoinCircleResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireID("circle_id", req.Msg.CircleID); err != nil {
		return nil, err
	}

	circle, err := s.engine.JoinCircle(ctx, userID, req.Msg.CircleID, req.Msg.InviteCode)
	if err != nil {
		s.logger.Warn("JoinCircle failed", "circle_id", req.Msg.CircleID, "user_id", userID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.JoinCircleResponse{Circle: toAPICircle(circle)}), nil
}

// GetCircle returns a circle and its treasury balance. Non-members see an
// empty invite code.
func (s *CircleService) GetCircle(ctx context.Context, req *connect.Request[api.GetCircleRequest]) (*connect.Response[api.GetCircleResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireID("circle_id", req.Msg.CircleID); err != nil {
		return nil, err
	}

	snap, err := s.engine.GetCircle(ctx, userID, req.Msg.CircleID)
	if err != nil {
		return nil, connectError(err)
	}

	circle := toAPICircle(snap.Circle)
	circle.TreasuryAccountID = snap.TreasuryAccount
	return connect.NewResponse(&api.GetCircleResponse{
		Circle:          circle,
		TreasuryBalance: snap.TreasuryBalance,
	}), nil
}

// Contribute pays the circle's contribution amount from one of the caller's wallets.
func (s *CircleService) Contribute(ctx context.Context, req *connect.Request[api.ContributeRequest]) (*connect.Response[api.ContributeResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireID("circle_id", req.Msg.CircleID); err != nil {
		return nil, err
	}
	if err := requireID("source_account_id", req.Msg.SourceAccountID); err != nil {
		return nil, err
	}

	transfer, err := s.engine.Contribute(ctx, userID, req.Msg.CircleID, req.Msg.InviteCode, req.Msg.SourceAccountID)
	if err != nil {
		s.logger.Warn("Contribute failed", "circle_id", req.Msg.CircleID, "user_id", userID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.ContributeResponse{Transfer: toAPITransfer(transfer)}), nil
}

// GetCircleBalances reports per-member positions and the treasury balance.
func (s *CircleService) GetCircleBalances(ctx context.Context, req *connect.Request[api.GetCircleBalancesRequest]) (*connect.Response[api.GetCircleBalancesResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireID("circle_id", req.Msg.CircleID); err != nil {
		return nil, err
	}

	positions, snap, err := s.engine.CircleBalances(ctx, userID, req.Msg.CircleID)
	if err != nil {
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.GetCircleBalancesResponse{
		Positions:       toAPIPositions(positions),
		TreasuryBalance: snap.TreasuryBalance,
	}), nil
}

// CreateRequest opens the caller's funding request in a circle.
func (s *CircleService) CreateRequest(ctx context.Context, req *connect.Request[api.CreateRequestRequest]) (*connect.Response[api.CreateRequestResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireID("circle_id", req.Msg.CircleID); err != nil {
		return nil, err
	}
	if err := validateAmount("amount", req.Msg.Amount); err != nil {
		return nil, err
	}
	if err := validateText("description", req.Msg.Description, models.MaxDescriptionLen, false); err != nil {
		return nil, err
	}

	fr, err := s.engine.CreateRequest(ctx, userID, req.Msg.CircleID, req.Msg.Amount, req.Msg.Description)
	if err != nil {
		s.logger.Warn("CreateRequest failed", "circle_id", req.Msg.CircleID, "user_id", userID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.CreateRequestResponse{Request: toAPIRequest(fr)}), nil
}

// VoteOnRequest records the caller's vote.
func (s *CircleService) VoteOnRequest(ctx context.Context, req *connect.Request[api.VoteOnRequestRequest]) (*connect.Response[api.VoteOnRequestResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireID("request_id", req.Msg.RequestID); err != nil {
		return nil, err
	}

	fr, err := s.engine.VoteOnRequest(ctx, userID, req.Msg.RequestID, models.Vote(req.Msg.Approve))
	if err != nil {
		s.logger.Warn("VoteOnRequest failed", "request_id", req.Msg.RequestID, "user_id", userID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.VoteOnRequestResponse{Request: toAPIRequest(fr)}), nil
}

// DisburseFunds pays out an approved request to the requester's account.
func (s *CircleService) DisburseFunds(ctx context.Context, req *connect.Request[api.DisburseFundsRequest]) (*connect.Response[api.DisburseFundsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireID("circle_id", req.Msg.CircleID); err != nil {
		return nil, err
	}
	if err := requireID("request_id", req.Msg.RequestID); err != nil {
		return nil, err
	}
	if err := requireID("destination_account_id", req.Msg.DestinationAccountID); err != nil {
		return nil, err
	}

	fr, transfer, err := s.engine.DisburseFunds(ctx, userID, req.Msg.CircleID, req.Msg.RequestID, req.Msg.DestinationAccountID)
	if err != nil {
		s.logger.Warn("DisburseFunds failed", "request_id", req.Msg.RequestID, "user_id", userID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.DisburseFundsResponse{
		Request:  toAPIRequest(fr),
		Transfer: toAPITransfer(transfer),
	}), nil
}

// GetRequest returns a single funding request.
func (s *CircleService) GetRequest(ctx context.Context, req *connect.Request[api.GetRequestRequest]) (*connect.Response[api.GetRequestResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireID("request_id", req.Msg.RequestID); err != nil {
		return nil, err
	}

	fr, err := s.engine.GetRequest(ctx, userID, req.Msg.RequestID)
	if err != nil {
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.GetRequestResponse{Request: toAPIRequest(fr)}), nil
}

// ListRequests returns every funding request in a circle, newest first.
func (s *CircleService) ListRequests(ctx context.Context, req *connect.Request[api.ListRequestsRequest]) (*connect.Response[api.ListRequestsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireID("circle_id", req.Msg.CircleID); err != nil {
		return nil, err
	}

	reqs, err := s.engine.ListRequests(ctx, userID, req.Msg.CircleID)
	if err != nil {
		return nil, connectError(err)
	}

	out := make([]*api.FundingRequest, len(reqs))
	for i, fr := range reqs {
		out[i] = toAPIRequest(fr)
	}
	return connect.NewResponse(&api.ListRequestsResponse{Requests: out}), nil
}
