package governance

import (
	"errors"
	"testing"

	"github.com/mmynk/daojo/internal/models"
)

func TestMajorityThreshold(t *testing.T) {
	tests := []struct {
		members int
		want    uint32
	}{
		{1, 1},
		{2, 2},
		{3, 2},
	}
	for _, tt := range tests {
		if got := MajorityThreshold(tt.members); got != tt.want {
			t.Errorf("MajorityThreshold(%d) = %d, want %d", tt.members, got, tt.want)
		}
	}
}

func newActiveRequest() *models.FundingRequest {
	return &models.FundingRequest{
		ID:        "req",
		CircleID:  "circle",
		Requester: "alice",
		Amount:    250,
		Status:    models.RequestStatusActive,
	}
}

func TestApplyVote(t *testing.T) {
	threeMembers := &models.Circle{Members: models.NewRoster("alice", "bob", "carol")}

	t.Run("first yes in three-member circle stays active", func(t *testing.T) {
		req := newActiveRequest()
		if err := applyVote(threeMembers, req, "bob", models.VoteYes); err != nil {
			t.Fatalf("applyVote failed: %v", err)
		}
		if req.Status != models.RequestStatusActive {
			t.Errorf("status = %s, want ACTIVE", req.Status)
		}
		if req.VotesFor != 1 || req.VotesAgainst != 0 {
			t.Errorf("tallies = %d/%d, want 1/0", req.VotesFor, req.VotesAgainst)
		}
		if req.Voters.Count != 1 || req.Voters.Slots[0] != "bob" {
			t.Errorf("voters = %+v, want [bob]", req.Voters)
		}
	})

	t.Run("two yes votes approve", func(t *testing.T) {
		req := newActiveRequest()
		_ = applyVote(threeMembers, req, "bob", models.VoteYes)
		if err := applyVote(threeMembers, req, "carol", models.VoteYes); err != nil {
			t.Fatalf("applyVote failed: %v", err)
		}
		if req.Status != models.RequestStatusApproved {
			t.Errorf("status = %s, want APPROVED", req.Status)
		}
	})

	t.Run("two no votes reject", func(t *testing.T) {
		req := newActiveRequest()
		_ = applyVote(threeMembers, req, "alice", models.VoteNo)
		if err := applyVote(threeMembers, req, "bob", models.VoteNo); err != nil {
			t.Fatalf("applyVote failed: %v", err)
		}
		if req.Status != models.RequestStatusRejected {
			t.Errorf("status = %s, want REJECTED", req.Status)
		}
	})

	t.Run("split vote waits for the third member", func(t *testing.T) {
		req := newActiveRequest()
		_ = applyVote(threeMembers, req, "alice", models.VoteYes)
		_ = applyVote(threeMembers, req, "bob", models.VoteNo)
		if req.Status != models.RequestStatusActive {
			t.Fatalf("status = %s, want ACTIVE", req.Status)
		}
		if err := applyVote(threeMembers, req, "carol", models.VoteNo); err != nil {
			t.Fatalf("applyVote failed: %v", err)
		}
		if req.Status != models.RequestStatusRejected {
			t.Errorf("status = %s, want REJECTED", req.Status)
		}
	})

	t.Run("sole member resolves immediately", func(t *testing.T) {
		solo := &models.Circle{Members: models.NewRoster("alice")}
		req := newActiveRequest()
		if err := applyVote(solo, req, "alice", models.VoteYes); err != nil {
			t.Fatalf("applyVote failed: %v", err)
		}
		if req.Status != models.RequestStatusApproved {
			t.Errorf("status = %s, want APPROVED", req.Status)
		}
	})

	t.Run("second vote from same member is rejected regardless of value", func(t *testing.T) {
		for _, second := range []models.Vote{models.VoteYes, models.VoteNo} {
			req := newActiveRequest()
			_ = applyVote(threeMembers, req, "bob", models.VoteYes)
			err := applyVote(threeMembers, req, "bob", second)
			if !errors.Is(err, ErrAlreadyVoted) {
				t.Errorf("second vote %s: err = %v, want ErrAlreadyVoted", second, err)
			}
			if req.VotesFor != 1 || req.VotesAgainst != 0 || req.Voters.Count != 1 {
				t.Errorf("second vote %s mutated tallies: %+v", second, req)
			}
		}
	})

	t.Run("non-member cannot vote", func(t *testing.T) {
		req := newActiveRequest()
		err := applyVote(threeMembers, req, "mallory", models.VoteYes)
		if !errors.Is(err, ErrNotAMember) {
			t.Errorf("err = %v, want ErrNotAMember", err)
		}
	})

	t.Run("resolved request takes no more votes", func(t *testing.T) {
		for _, status := range []models.RequestStatus{
			models.RequestStatusApproved,
			models.RequestStatusRejected,
			models.RequestStatusDisbursed,
		} {
			req := newActiveRequest()
			req.Status = status
			err := applyVote(threeMembers, req, "carol", models.VoteYes)
			if !errors.Is(err, ErrRequestNotActive) {
				t.Errorf("status %s: err = %v, want ErrRequestNotActive", status, err)
			}
		}
	})

	t.Run("exhausted voter slots reject a new voter", func(t *testing.T) {
		// Only reachable when the roster and voter slots disagree.
		req := newActiveRequest()
		req.Voters = models.NewRoster("x", "y", "z")
		err := applyVote(threeMembers, req, "alice", models.VoteYes)
		if !errors.Is(err, ErrAlreadyVoted) {
			t.Errorf("err = %v, want ErrAlreadyVoted", err)
		}
	})
}
