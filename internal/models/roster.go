package models

// RosterCapacity is the number of identity slots in a Roster.
// The majority threshold in the governance package is derived for this
// capacity; changing it requires revisiting that formula.
const RosterCapacity = 3

// Roster is a fixed-capacity ordered set of identities.
// Slots are filled contiguously from the first slot; slots at or beyond
// Count hold the empty string.
type Roster struct {
	Slots [RosterCapacity]string
	Count int
}

// NewRoster returns a roster holding the given identities in order.
// Identities beyond capacity are ignored.
func NewRoster(ids ...string) Roster {
	var r Roster
	for _, id := range ids {
		if !r.Append(id) {
			break
		}
	}
	return r
}

// Full reports whether every slot is occupied.
func (r *Roster) Full() bool {
	return r.Count >= RosterCapacity
}

// Contains reports whether id occupies one of the filled slots.
func (r *Roster) Contains(id string) bool {
	if id == "" {
		return false
	}
	for i := 0; i < r.Count && i < RosterCapacity; i++ {
		if r.Slots[i] == id {
			return true
		}
	}
	return false
}

// Append places id in the next open slot. It returns false and leaves the
// roster untouched when all slots are taken.
func (r *Roster) Append(id string) bool {
	if r.Full() {
		return false
	}
	r.Slots[r.Count] = id
	r.Count++
	return true
}

// Members returns the occupied slots in order.
func (r Roster) Members() []string {
	n := r.Count
	if n > RosterCapacity {
		n = RosterCapacity
	}
	out := make([]string, n)
	copy(out, r.Slots[:n])
	return out
}
