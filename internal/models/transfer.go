package models

// TransferKind classifies a value movement.
type TransferKind string

const (
	TransferKindDeposit      TransferKind = "deposit"
	TransferKindContribution TransferKind = "contribution"
	TransferKindDisbursement TransferKind = "disbursement"
	TransferKindWithdrawal   TransferKind = "withdrawal"
)

// Transfer records a completed movement of funds between accounts.
type Transfer struct {
	// ID is the unique identifier for the transfer (UUID format).
	ID string

	// CircleID is the circle this transfer belongs to. Empty for deposits and withdrawals.
	CircleID string

	// RequestID is the funding request paid out. Set only for disbursements.
	RequestID string

	// FromAccountID is the debited account. Empty for external deposits.
	FromAccountID string

	// ToAccountID is the credited account. Empty for external withdrawals.
	ToAccountID string

	Amount uint64

	Kind TransferKind

	// CreatedBy is the user ID that triggered the transfer.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the transfer was recorded.
	CreatedAt int64
}
