package governance

import "errors"

// Kind groups governance errors by the reason a call was rejected.
type Kind int

const (
	KindInternal Kind = iota
	// KindAuthorization: the caller or an account lacks the required relationship.
	KindAuthorization
	// KindStateConflict: the entity is in a state incompatible with the transition.
	KindStateConflict
	// KindPrecondition: supplied references do not match expected relationships.
	KindPrecondition
	// KindResource: not enough funds to complete the operation.
	KindResource
	// KindNotFound: a referenced record does not exist.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindAuthorization:
		return "authorization"
	case KindStateConflict:
		return "state_conflict"
	case KindPrecondition:
		return "precondition"
	case KindResource:
		return "resource"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error is a governance rejection. Each one is a package-level sentinel;
// compare with errors.Is.
type Error struct {
	// Code is a stable identifier exposed to API clients.
	Code string
	Kind Kind
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

func newError(code string, kind Kind, msg string) *Error {
	return &Error{Code: code, Kind: kind, msg: msg}
}

var (
	ErrNotAMember      = newError("NOT_A_MEMBER", KindAuthorization, "you are not a member of this circle")
	ErrWrongTokenOwner = newError("WRONG_TOKEN_OWNER", KindAuthorization, "token account does not belong to the expected owner")

	ErrDuplicateInviteCode     = newError("DUPLICATE_INVITE_CODE", KindStateConflict, "invite code is already in use")
	ErrCircleFull              = newError("CIRCLE_FULL", KindStateConflict, "circle already has the maximum number of members")
	ErrAlreadyMember           = newError("ALREADY_MEMBER", KindStateConflict, "you are already a member of this circle")
	ErrRequestExists           = newError("REQUEST_EXISTS", KindStateConflict, "you already have a funding request in this circle")
	ErrRequestNotActive        = newError("REQUEST_NOT_ACTIVE", KindStateConflict, "request is not active")
	ErrAlreadyVoted            = newError("ALREADY_VOTED", KindStateConflict, "you have already voted on this request")
	ErrRequestRejected         = newError("REQUEST_REJECTED", KindStateConflict, "request has been rejected by the group")
	ErrRequestAlreadyDisbursed = newError("REQUEST_ALREADY_DISBURSED", KindStateConflict, "request has already been disbursed")

	ErrInvalidInviteCode  = newError("INVALID_INVITE_CODE", KindPrecondition, "invalid invite code")
	ErrWrongCircle        = newError("WRONG_CIRCLE", KindPrecondition, "request belongs to a different circle")
	ErrRequestNotApproved = newError("REQUEST_NOT_APPROVED", KindPrecondition, "request not approved - only approved requests can be disbursed")

	ErrInsufficientFunds   = newError("INSUFFICIENT_FUNDS", KindResource, "insufficient funds in treasury")
	ErrInsufficientBalance = newError("INSUFFICIENT_BALANCE", KindResource, "insufficient balance in source account")

	ErrCircleNotFound  = newError("CIRCLE_NOT_FOUND", KindNotFound, "circle not found")
	ErrRequestNotFound = newError("REQUEST_NOT_FOUND", KindNotFound, "request not found")
	ErrAccountNotFound = newError("ACCOUNT_NOT_FOUND", KindNotFound, "account not found")
)

// AsError returns the governance error wrapped in err, if any.
func AsError(err error) (*Error, bool) {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr, true
	}
	return nil, false
}
