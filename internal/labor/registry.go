package labor

// Registry owns the ordered set of procurement vehicles and tracks which
// one is active. Vehicle ids are unique; the standard vehicle always
// exists and cannot be removed.
type Registry struct {
	vehicles []Vehicle
	activeID string
}

// NewRegistry returns a registry pre-populated with the built-in vehicles,
// with the standard vehicle active.
func NewRegistry() *Registry {
	return &Registry{
		vehicles: BuiltinVehicles(),
		activeID: StandardVehicleID,
	}
}

// Vehicles returns the vehicles in insertion order.
func (r *Registry) Vehicles() []Vehicle {
	out := make([]Vehicle, len(r.vehicles))
	copy(out, r.vehicles)
	return out
}

// Get returns the vehicle with the given id.
func (r *Registry) Get(id string) (Vehicle, error) {
	for _, v := range r.vehicles {
		if v.ID == id {
			return v, nil
		}
	}
	return Vehicle{}, ErrVehicleNotFound
}

// Active returns the currently selected vehicle.
func (r *Registry) Active() Vehicle {
	v, err := r.Get(r.activeID)
	if err != nil {
		// The standard vehicle always exists; fall back to it.
		v, _ = r.Get(StandardVehicleID)
	}
	return v
}

// Add appends a vehicle. Colliding ids are rejected rather than silently
// overwritten; use Upsert for template loads.
func (r *Registry) Add(v Vehicle) error {
	if _, err := r.Get(v.ID); err == nil {
		return ErrDuplicateVehicle
	}
	r.vehicles = append(r.vehicles, v)
	return nil
}

// Upsert replaces the vehicle with the same id in place, preserving its
// position, or appends it when the id is new.
func (r *Registry) Upsert(v Vehicle) {
	for i := range r.vehicles {
		if r.vehicles[i].ID == v.ID {
			r.vehicles[i] = v
			return
		}
	}
	r.vehicles = append(r.vehicles, v)
}

// Remove deletes the vehicle with the given id. The standard vehicle is
// protected. When the active vehicle is removed the standard vehicle
// becomes active; callers that track team rates must re-seed them.
func (r *Registry) Remove(id string) error {
	if id == StandardVehicleID {
		return ErrProtectedVehicle
	}

	for i, v := range r.vehicles {
		if v.ID == id {
			r.vehicles = append(r.vehicles[:i], r.vehicles[i+1:]...)
			if r.activeID == id {
				r.activeID = StandardVehicleID
			}
			return nil
		}
	}
	return ErrVehicleNotFound
}

// SelectActive makes the vehicle with the given id active.
func (r *Registry) SelectActive(id string) error {
	if _, err := r.Get(id); err != nil {
		return err
	}
	r.activeID = id
	return nil
}

// Len returns the number of vehicles.
func (r *Registry) Len() int {
	return len(r.vehicles)
}
