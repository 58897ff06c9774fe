package governance

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// addressSpace namespaces every derived identifier.
var addressSpace = uuid.MustParse("6f0c3e52-8d4b-5a3e-9b1f-4d2f7c9a1e05")

// Seed prefixes for derived addresses.
const (
	seedCircle        = "circle"
	seedRequest       = "request"
	seedTreasuryAuth  = "treasury_auth"
	seedTreasuryToken = "treasury"
)

// deriveAddress finds the canonical address for seeds: starting at 255 it
// walks bump values down and returns the first whose digest has the high
// bit of its first byte clear.
func deriveAddress(seeds ...string) (string, uint8) {
	base := strings.Join(seeds, "/")
	for bump := 255; bump >= 0; bump-- {
		id := uuid.NewSHA1(addressSpace, []byte(base+"/"+strconv.Itoa(bump)))
		if id[0]&0x80 == 0 {
			return id.String(), uint8(bump)
		}
	}
	return uuid.NewSHA1(addressSpace, []byte(base+"/0")).String(), 0
}

// verifyAddress reports whether id is the address derived from seeds with bump.
func verifyAddress(id string, bump uint8, seeds ...string) bool {
	want, wantBump := deriveAddress(seeds...)
	return id == want && bump == wantBump
}

// CircleAddress derives the circle ID for an invite code.
func CircleAddress(inviteCode string) (string, uint8) {
	return deriveAddress(seedCircle, inviteCode)
}

// RequestAddress derives the funding request ID for a requester in a circle.
func RequestAddress(circleID, requester string) (string, uint8) {
	return deriveAddress(seedRequest, circleID, requester)
}

// TreasuryAuthority derives the identity that owns a circle's treasury account.
func TreasuryAuthority(inviteCode string) string {
	id, _ := deriveAddress(seedTreasuryAuth, inviteCode)
	return id
}

// TreasuryAccountID derives the treasury token account ID for a circle.
func TreasuryAccountID(inviteCode string) string {
	id, _ := deriveAddress(seedTreasuryToken, TreasuryAuthority(inviteCode))
	return id
}
