package models

// Field limits enforced at the RPC boundary and by the storage schema.
const (
	MaxCircleNameLen  = 32
	MaxInviteCodeLen  = 16
	MaxDescriptionLen = 100
)

// Circle is a small group pooling funds into a shared treasury.
// Its ID is derived from the invite code, so the code doubles as the
// circle's lookup key.
type Circle struct {
	// ID is the derived circle address (UUID format).
	ID string

	// Name is the display name of the circle (e.g., "Lagos Circle").
	Name string

	// InviteCode is the code members present to join. Unique across circles.
	InviteCode string

	// ContributionAmount is the fixed amount each Contribute call moves
	// from a member into the treasury.
	ContributionAmount uint64

	// Creator is the user ID of the founder. Always occupies the first member slot.
	Creator string

	// Members holds up to three member user IDs.
	Members Roster

	// Bump is the canonical bump byte found when deriving ID.
	Bump uint8

	// CreatedAt is the Unix timestamp when the circle was created.
	CreatedAt int64
}

// MemberCount returns the number of occupied member slots.
func (c *Circle) MemberCount() int {
	return c.Members.Count
}

// IsMember reports whether userID occupies one of the member slots.
func (c *Circle) IsMember(userID string) bool {
	return c.Members.Contains(userID)
}
