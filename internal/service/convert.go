package service

import (
	"github.com/mmynk/daojo/internal/calculator"
	"github.com/mmynk/daojo/internal/governance"
	"github.com/mmynk/daojo/internal/models"
	"github.com/mmynk/daojo/pkg/api"
)

func toAPICircle(c *models.Circle) *api.Circle {
	return &api.Circle{
		ID:                 c.ID,
		Name:               c.Name,
		InviteCode:         c.InviteCode,
		ContributionAmount: c.ContributionAmount,
		Creator:            c.Creator,
		Members:            c.Members.Members(),
		MemberCount:        c.MemberCount(),
		TreasuryAccountID:  governance.TreasuryAccountID(c.InviteCode),
		CreatedAt:          c.CreatedAt,
	}
}

func toAPIRequest(r *models.FundingRequest) *api.FundingRequest {
	return &api.FundingRequest{
		ID:           r.ID,
		CircleID:     r.CircleID,
		Requester:    r.Requester,
		Amount:       r.Amount,
		Description:  r.Description,
		VotesFor:     r.VotesFor,
		VotesAgainst: r.VotesAgainst,
		Voters:       r.Voters.Members(),
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toAPIAccount(a *models.Account) *api.Account {
	return &api.Account{
		ID:        a.ID,
		Owner:     a.Owner,
		Kind:      string(a.Kind),
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
	}
}

func toAPITransfer(t *models.Transfer) *api.Transfer {
	return &api.Transfer{
		ID:            t.ID,
		CircleID:      t.CircleID,
		RequestID:     t.RequestID,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		Amount:        t.Amount,
		Kind:          string(t.Kind),
		CreatedBy:     t.CreatedBy,
		CreatedAt:     t.CreatedAt,
	}
}

func toAPIPositions(positions []calculator.MemberPosition) []*api.MemberPosition {
	out := make([]*api.MemberPosition, len(positions))
	for i, p := range positions {
		out[i] = &api.MemberPosition{
			Member:      p.Member,
			Contributed: p.Contributed,
			Received:    p.Received,
			Net:         p.Net,
		}
	}
	return out
}

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}
