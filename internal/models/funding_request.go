package models

// RequestStatus is the lifecycle state of a FundingRequest.
type RequestStatus string

const (
	RequestStatusActive    RequestStatus = "ACTIVE"
	RequestStatusApproved  RequestStatus = "APPROVED"
	RequestStatusRejected  RequestStatus = "REJECTED"
	RequestStatusDisbursed RequestStatus = "DISBURSED"
)

// Valid reports whether s is one of the four known statuses.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusActive, RequestStatusApproved, RequestStatusRejected, RequestStatusDisbursed:
		return true
	}
	return false
}

// Vote is a member's ballot on a funding request.
type Vote bool

const (
	VoteYes Vote = true
	VoteNo  Vote = false
)

func (v Vote) String() string {
	if v {
		return "yes"
	}
	return "no"
}

// FundingRequest is a member's proposal to withdraw funds from the
// circle treasury, subject to a majority vote.
type FundingRequest struct {
	// ID is derived from (CircleID, Requester); a requester holds at most
	// one request per circle.
	ID string

	// CircleID references the owning circle. Non-owning; re-checked on every use.
	CircleID string

	// Requester is the user ID of the member asking for funds.
	Requester string

	// Amount is the requested payout.
	Amount uint64

	// Description explains the purpose of the request.
	Description string

	VotesFor     uint32
	VotesAgainst uint32

	// Voters holds the user IDs that have cast a vote, in voting order.
	Voters Roster

	Status RequestStatus

	// Bump is the canonical bump byte found when deriving ID.
	Bump uint8

	// CreatedAt is the Unix timestamp when the request was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last vote or disbursement.
	UpdatedAt int64
}

// HasVoted reports whether userID already cast a vote on this request.
func (r *FundingRequest) HasVoted(userID string) bool {
	return r.Voters.Contains(userID)
}
