package labor

// Session is one caller's complete calculator state: the vehicle
// registry, the team composition, the project inputs and the catalog
// filter. Every mutation should be followed by Recalculate; results are
// derived values, never stored state.
//
// A session has exactly one logical owner. In a multi-user deployment
// each user gets an independent instance; the session provides no
// locking or conflict resolution of its own.
type Session struct {
	Registry *Registry
	Team     *TeamComposition

	DistanceMiles       float64
	MarginTargetPercent float64
	CategoryFilter      string

	Catalog []DeviceLine
}

// NewSession builds a session with the calculator's defaults: built-in
// vehicles with standard active, the default team, a 25 mile project at a
// 30% margin target, and the full device catalog.
func NewSession() *Session {
	registry := NewRegistry()
	return &Session{
		Registry:            registry,
		Team:                NewTeamComposition(registry.Active()),
		DistanceMiles:       25,
		MarginTargetPercent: 30,
		CategoryFilter:      CategoryAll,
		Catalog:             DefaultCatalog(),
	}
}

// SelectVehicle activates a vehicle and re-seeds the unlocked team rates
// from its billed rates.
func (s *Session) SelectVehicle(id string) error {
	if err := s.Registry.SelectActive(id); err != nil {
		return err
	}
	s.Team.SeedRates(s.Registry.Active())
	return nil
}

// AddVehicle creates a vehicle from the form parameters and adds it to
// the registry. The active vehicle is unchanged.
func (s *Session) AddVehicle(name string, multiplier, minMargin, overhead float64) (Vehicle, error) {
	v, err := NewVehicle(name, multiplier, minMargin, overhead)
	if err != nil {
		return Vehicle{}, err
	}
	if err := s.Registry.Add(v); err != nil {
		return Vehicle{}, err
	}
	return v, nil
}

// DeleteVehicle removes a vehicle. When the active vehicle is deleted the
// registry falls back to the standard vehicle and the unlocked team rates
// are re-seeded from it before any further computation.
func (s *Session) DeleteVehicle(id string) error {
	wasActive := s.Registry.Active().ID == id
	if err := s.Registry.Remove(id); err != nil {
		return err
	}
	if wasActive {
		s.Team.SeedRates(s.Registry.Active())
	}
	return nil
}

// LoadTemplate upserts a template vehicle. If the template replaced the
// active vehicle, the unlocked team rates are re-seeded from the new
// definition.
func (s *Session) LoadTemplate(kind TemplateKind) (Vehicle, error) {
	activeID := s.Registry.Active().ID
	v, err := s.Registry.LoadTemplate(kind)
	if err != nil {
		return Vehicle{}, err
	}
	if v.ID == activeID {
		s.Team.SeedRates(s.Registry.Active())
	}
	return v, nil
}

// Recalculate runs the cost computation over the filtered catalog with
// the current inputs.
func (s *Session) Recalculate() Result {
	return Calculate(Inputs{
		Vehicle:             s.Registry.Active(),
		TeamHourlyRate:      s.Team.HourlyRate(),
		DistanceMiles:       s.DistanceMiles,
		MarginTargetPercent: s.MarginTargetPercent,
		Devices:             FilterCatalog(s.Catalog, s.CategoryFilter),
	})
}
