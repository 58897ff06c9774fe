package models

// AccountKind distinguishes member wallets from circle treasuries.
type AccountKind string

const (
	AccountKindWallet   AccountKind = "wallet"
	AccountKindTreasury AccountKind = "treasury"
)

// Account is a token account holding a balance for one owner.
type Account struct {
	// ID is the unique identifier for the account (UUID format).
	// Treasury account IDs are derived from the circle invite code.
	ID string

	// Owner is the user ID (wallets) or the derived treasury authority (treasuries).
	Owner string

	Kind AccountKind

	// Balance is the current amount held, in the smallest token unit.
	Balance uint64

	// CreatedAt is the Unix timestamp when the account was opened.
	CreatedAt int64
}
