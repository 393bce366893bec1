package labor

// DeviceLine is a static catalog entry: the labor standard for installing
// and programming one device type. Reference data, never mutated by the
// engine.
type DeviceLine struct {
	Category     string  `json:"category"`
	Type         string  `json:"type"`
	InstallHours float64 `json:"installHours"`
	ProgHours    float64 `json:"progHours"`
}

// CategoryAll selects the whole catalog.
const CategoryAll = "all"

// DefaultCatalog returns the built-in device labor standards.
func DefaultCatalog() []DeviceLine {
	return []DeviceLine{
		{Category: "standard", Type: "Indoor Camera", InstallHours: 2, ProgHours: 0.5},
		{Category: "standard", Type: "Outdoor Camera", InstallHours: 4, ProgHours: 0.5},
		{Category: "standard", Type: "Access Control Door", InstallHours: 8, ProgHours: 2},
		{Category: "ai", Type: "License Plate Reader", InstallHours: 8, ProgHours: 6},
		{Category: "ai", Type: "Weapons Detection", InstallHours: 12, ProgHours: 8},
		{Category: "specialty", Type: "Turnstile", InstallHours: 12, ProgHours: 4},
	}
}

// FilterCatalog returns the lines matching the category, or all lines for
// CategoryAll. The filter is a pass-through selection; lines are not
// transformed.
func FilterCatalog(catalog []DeviceLine, category string) []DeviceLine {
	if category == "" || category == CategoryAll {
		out := make([]DeviceLine, len(catalog))
		copy(out, catalog)
		return out
	}

	out := make([]DeviceLine, 0, len(catalog))
	for _, line := range catalog {
		if line.Category == category {
			out = append(out, line)
		}
	}
	return out
}
