// Package calculator derives per-member treasury positions from a circle's
// transfer history.
package calculator

import (
	"errors"
	"fmt"
	"math"
)

// ErrOverflow is returned when a member's totals do not fit the position fields.
var ErrOverflow = errors.New("position total overflows")

// ContributionForPosition is a contribution with the minimal information
// needed for position calculations.
type ContributionForPosition struct {
	Member string
	Amount uint64
}

// DisbursementForPosition is a paid-out funding request.
type DisbursementForPosition struct {
	Requester string
	Amount    uint64
}

// MemberPosition summarizes one member's standing against the treasury.
type MemberPosition struct {
	Member      string
	Contributed uint64 // Total moved into the treasury
	Received    uint64 // Total paid out to this member
	Net         int64  // Contributed - Received; negative means the member drew more than they put in
}

// CalculateMemberPositions aggregates contributions and disbursements per
// member. The result follows the order of members; transfers attributed to
// identities outside members are rejected, since only members can move
// funds through a circle.
func CalculateMemberPositions(members []string, contributions []ContributionForPosition, disbursements []DisbursementForPosition) ([]MemberPosition, error) {
	index := make(map[string]int, len(members))
	positions := make([]MemberPosition, len(members))
	for i, m := range members {
		index[m] = i
		positions[i] = MemberPosition{Member: m}
	}

	for _, c := range contributions {
		i, ok := index[c.Member]
		if !ok {
			return nil, fmt.Errorf("contribution from non-member %s", c.Member)
		}
		if positions[i].Contributed > math.MaxUint64-c.Amount {
			return nil, fmt.Errorf("contributions from %s: %w", c.Member, ErrOverflow)
		}
		positions[i].Contributed += c.Amount
	}

	for _, d := range disbursements {
		i, ok := index[d.Requester]
		if !ok {
			return nil, fmt.Errorf("disbursement to non-member %s", d.Requester)
		}
		if positions[i].Received > math.MaxUint64-d.Amount {
			return nil, fmt.Errorf("disbursements to %s: %w", d.Requester, ErrOverflow)
		}
		positions[i].Received += d.Amount
	}

	for i := range positions {
		if positions[i].Contributed > math.MaxInt64 || positions[i].Received > math.MaxInt64 {
			return nil, fmt.Errorf("net position of %s: %w", positions[i].Member, ErrOverflow)
		}
		positions[i].Net = int64(positions[i].Contributed) - int64(positions[i].Received)
	}

	return positions, nil
}
