package labor

import "strings"

// Wage is a prevailing wage lookup result. The figures are placeholder
// estimates; official determinations must always be verified against the
// published schedules.
type Wage struct {
	Classification string  `json:"classification"`
	State          string  `json:"state"`
	County         string  `json:"county"`
	Base           float64 `json:"base"`
	Fringe         float64 `json:"fringe"`
	Total          float64 `json:"total"`
}

var wageTable = map[string]Wage{
	"electrician": {Base: 45, Fringe: 28, Total: 73},
	"technician":  {Base: 35, Fringe: 22, Total: 57},
	"laborer":     {Base: 28, Fringe: 18, Total: 46},
	"operator":    {Base: 40, Fringe: 25, Total: 65},
}

// LookupWage returns the prevailing wage for a classification and
// location. Unknown classifications fall back to technician; missing
// location fields fall back to NY / All Counties.
func LookupWage(state, county, classification string) Wage {
	classification = strings.ToLower(strings.TrimSpace(classification))
	wage, ok := wageTable[classification]
	if !ok {
		classification = "technician"
		wage = wageTable[classification]
	}

	wage.Classification = classification
	wage.State = state
	if wage.State == "" {
		wage.State = "NY"
	}
	wage.County = county
	if wage.County == "" {
		wage.County = "All Counties"
	}
	return wage
}
