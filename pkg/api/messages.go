package api

// Amounts are in the smallest token unit. 64-bit integers are encoded as
// JSON strings so browser clients do not lose precision.

type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   int64  `json:"createdAt,string"`
}

type Circle struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	InviteCode         string   `json:"inviteCode,omitempty"`
	ContributionAmount uint64   `json:"contributionAmount,string"`
	Creator            string   `json:"creator"`
	Members            []string `json:"members"`
	MemberCount        int      `json:"memberCount"`
	TreasuryAccountID  string   `json:"treasuryAccountId"`
	CreatedAt          int64    `json:"createdAt,string"`
}

type FundingRequest struct {
	ID           string   `json:"id"`
	CircleID     string   `json:"circleId"`
	Requester    string   `json:"requester"`
	Amount       uint64   `json:"amount,string"`
	Description  string   `json:"description"`
	VotesFor     uint32   `json:"votesFor"`
	VotesAgainst uint32   `json:"votesAgainst"`
	Voters       []string `json:"voters"`
	Status       string   `json:"status"`
	CreatedAt    int64    `json:"createdAt,string"`
	UpdatedAt    int64    `json:"updatedAt,string"`
}

type Account struct {
	ID        string `json:"id"`
	Owner     string `json:"owner"`
	Kind      string `json:"kind"`
	Balance   uint64 `json:"balance,string"`
	CreatedAt int64  `json:"createdAt,string"`
}

type Transfer struct {
	ID            string `json:"id"`
	CircleID      string `json:"circleId,omitempty"`
	RequestID     string `json:"requestId,omitempty"`
	FromAccountID string `json:"fromAccountId,omitempty"`
	ToAccountID   string `json:"toAccountId,omitempty"`
	Amount        uint64 `json:"amount,string"`
	Kind          string `json:"kind"`
	CreatedBy     string `json:"createdBy"`
	CreatedAt     int64  `json:"createdAt,string"`
}

type MemberPosition struct {
	Member      string `json:"member"`
	Contributed uint64 `json:"contributed,string"`
	Received    uint64 `json:"received,string"`
	Net         int64  `json:"net,string"`
}

// AuthService

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}

// CircleService

type CreateCircleRequest struct {
	Name               string `json:"name"`
	ContributionAmount uint64 `json:"contributionAmount,string"`
	InviteCode         string `json:"inviteCode"`
}

type CreateCircleResponse struct {
	Circle *Circle `json:"circle"`
}

type JoinCircleRequest struct {
	CircleID   string `json:"circleId"`
	InviteCode string `json:"inviteCode"`
}

type JoinCircleResponse struct {
	Circle *Circle `json:"circle"`
}

type GetCircleRequest struct {
	CircleID string `json:"circleId"`
}

type GetCircleResponse struct {
	Circle          *Circle `json:"circle"`
	TreasuryBalance uint64  `json:"treasuryBalance,string"`
}

type ContributeRequest struct {
	CircleID        string `json:"circleId"`
	InviteCode      string `json:"inviteCode"`
	SourceAccountID string `json:"sourceAccountId"`
}

type ContributeResponse struct {
	Transfer *Transfer `json:"transfer"`
}

type GetCircleBalancesRequest struct {
	CircleID string `json:"circleId"`
}

type GetCircleBalancesResponse struct {
	Positions       []*MemberPosition `json:"positions"`
	TreasuryBalance uint64            `json:"treasuryBalance,string"`
}

type CreateRequestRequest struct {
	CircleID    string `json:"circleId"`
	Amount      uint64 `json:"amount,string"`
	Description string `json:"description"`
}

type CreateRequestResponse struct {
	Request *FundingRequest `json:"request"`
}

type VoteOnRequestRequest struct {
	RequestID string `json:"requestId"`
	Approve   bool   `json:"approve"`
}

type VoteOnRequestResponse struct {
	Request *FundingRequest `json:"request"`
}

type DisburseFundsRequest struct {
	CircleID             string `json:"circleId"`
	RequestID            string `json:"requestId"`
	DestinationAccountID string `json:"destinationAccountId"`
}

type DisburseFundsResponse struct {
	Request  *FundingRequest `json:"request"`
	Transfer *Transfer       `json:"transfer"`
}

type GetRequestRequest struct {
	RequestID string `json:"requestId"`
}

type GetRequestResponse struct {
	Request *FundingRequest `json:"request"`
}

type ListRequestsRequest struct {
	CircleID string `json:"circleId"`
}

type ListRequestsResponse struct {
	Requests []*FundingRequest `json:"requests"`
}

// AccountService

type OpenAccountRequest struct{}

type OpenAccountResponse struct {
	Account *Account `json:"account"`
}

type DepositRequest struct {
	AccountID string `json:"accountId"`
	Amount    uint64 `json:"amount,string"`
}

type DepositResponse struct {
	Account *Account `json:"account"`
}

type WithdrawRequest struct {
	AccountID string `json:"accountId"`
	Amount    uint64 `json:"amount,string"`
}

type WithdrawResponse struct {
	Account  *Account  `json:"account"`
	Transfer *Transfer `json:"transfer"`
}

type GetAccountRequest struct {
	AccountID string `json:"accountId"`
}

type GetAccountResponse struct {
	Account *Account `json:"account"`
}

type ListAccountsRequest struct{}

type ListAccountsResponse struct {
	Accounts []*Account `json:"accounts"`
}
