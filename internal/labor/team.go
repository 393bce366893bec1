package labor

// RateBounds is the allowed hourly rate range for one role. Adjustments
// that would land outside the range are rejected outright (the rate stays
// where it was); they are NOT saturated at the boundary. This matches the
// calculator's historical behavior and is relied on by its UI.
type RateBounds struct {
	Min float64
	Max float64
}

// roleBounds holds the per-role adjustment ranges.
var roleBounds = map[Role]RateBounds{
	RoleTech: {Min: 50, Max: 200},
	RoleLead: {Min: 60, Max: 250},
	RolePM:   {Min: 80, Max: 300},
	RoleEng:  {Min: 90, Max: 350},
}

// BoundsForRole returns the adjustment range for a role.
func BoundsForRole(role Role) RateBounds {
	return roleBounds[role]
}

// RoleState is the mutable per-role slice of a team composition.
type RoleState struct {
	Count  int     `json:"count"`
	Rate   float64 `json:"rate"`
	Locked bool    `json:"locked"`
}

// TeamComposition tracks headcount and current hourly rate per role.
// Rates are seeded from the active vehicle's billed rates and may be
// adjusted within per-role bounds; a locked role keeps its rate across
// adjustments, resets and vehicle switches.
type TeamComposition struct {
	roles map[Role]*RoleState
}

// NewTeamComposition builds a team seeded from the given vehicle with the
// calculator's default headcount (two technicians, one lead).
func NewTeamComposition(v Vehicle) *TeamComposition {
	tc := &TeamComposition{roles: make(map[Role]*RoleState, 4)}
	for _, role := range Roles() {
		tc.roles[role] = &RoleState{Rate: v.Rates.ForRole(role).Billed}
	}
	tc.roles[RoleTech].Count = 2
	tc.roles[RoleLead].Count = 1
	return tc
}

// Role returns a copy of the state for one role.
func (tc *TeamComposition) Role(role Role) RoleState {
	if st, ok := tc.roles[role]; ok {
		return *st
	}
	return RoleState{}
}

// SeedRates re-seeds every unlocked role's rate from the vehicle's billed
// rates. Called when the active vehicle changes; locked roles keep their
// current rate.
func (tc *TeamComposition) SeedRates(v Vehicle) {
	for _, role := range Roles() {
		st := tc.roles[role]
		if st.Locked {
			continue
		}
		st.Rate = v.Rates.ForRole(role).Billed
	}
}

// AdjustRate applies a delta to a role's rate. Locked roles are left
// untouched, as are adjustments that would leave the role's bounds.
func (tc *TeamComposition) AdjustRate(role Role, delta float64) {
	st, ok := tc.roles[role]
	if !ok || st.Locked {
		return
	}

	next := st.Rate + delta
	bounds := roleBounds[role]
	if next < bounds.Min || next > bounds.Max {
		return
	}
	st.Rate = next
}

// ResetRate restores a role's rate to the vehicle's billed rate,
// discarding any adjustment history. Locked roles are left untouched.
func (tc *TeamComposition) ResetRate(role Role, v Vehicle) {
	st, ok := tc.roles[role]
	if !ok || st.Locked {
		return
	}
	st.Rate = v.Rates.ForRole(role).Billed
}

// ToggleLock flips a role between locked and unlocked. The current rate
// value is never changed by locking.
func (tc *TeamComposition) ToggleLock(role Role) {
	if st, ok := tc.roles[role]; ok {
		st.Locked = !st.Locked
	}
}

// SetCount sets a role's headcount. Negative values are ignored; any
// non-negative integer is accepted (display limits are a UI concern).
func (tc *TeamComposition) SetCount(role Role, n int) {
	st, ok := tc.roles[role]
	if !ok || n < 0 {
		return
	}
	st.Count = n
}

// HourlyRate returns the blended hourly burn rate: the sum over roles of
// headcount times rate. It is applied uniformly to every device line; the
// calculator does not allocate specific roles to specific devices.
func (tc *TeamComposition) HourlyRate() float64 {
	var total float64
	for _, role := range Roles() {
		st := tc.roles[role]
		total += float64(st.Count) * st.Rate
	}
	return total
}

// RoleRates returns the current rate per role.
func (tc *TeamComposition) RoleRates() map[Role]float64 {
	out := make(map[Role]float64, len(tc.roles))
	for role, st := range tc.roles {
		out[role] = st.Rate
	}
	return out
}
