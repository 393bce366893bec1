package labor

const (
	// RatePerMile is the flat mileage charge applied to travel.
	RatePerMile = 0.67

	// RoundTripFactor doubles the one-way distance. The full round-trip
	// charge is added to every device line, not amortized once per
	// project; that is the calculator's historical behavior and is kept
	// as-is.
	RoundTripFactor = 2
)

// Inputs carries everything one cost run needs. The computation is pure:
// the same inputs always produce the same result.
type Inputs struct {
	Vehicle             Vehicle
	TeamHourlyRate      float64
	DistanceMiles       float64
	MarginTargetPercent float64
	Devices             []DeviceLine
}

// CostLine is the computed breakdown for one device line.
type CostLine struct {
	Category     string  `json:"category"`
	Type         string  `json:"type"`
	Hours        float64 `json:"hours"`
	HourlyRate   float64 `json:"hourlyRate"`
	LaborCost    float64 `json:"laborCost"`
	TravelCost   float64 `json:"travelCost"`
	Overhead     float64 `json:"overhead"`
	TrueCost     float64 `json:"trueCost"`
	MarkupAmount float64 `json:"markupAmount"`
	SellPrice    float64 `json:"sellPrice"`
	ActualMargin float64 `json:"actualMargin"`
}

// Totals are the aggregates across all included lines.
type Totals struct {
	TrueCost  float64 `json:"trueCost"`
	SellPrice float64 `json:"sellPrice"`
	Markup    float64 `json:"markup"`
}

// Result groups the per-line breakdowns and the run totals.
type Result struct {
	Lines  []CostLine `json:"lines"`
	Totals Totals     `json:"totals"`
}

// Calculate runs the cost computation over the given device lines.
//
// Per line: hours are install plus programming; labor cost is hours times
// the blended team rate times the vehicle multiplier; travel is the flat
// round-trip mileage charge; overhead is the vehicle's percentage of labor
// cost; true cost sums the three. The markup target is applied on cost,
// and the realized margin is re-expressed on price; the two differ
// arithmetically and both are reported.
//
// Zero staff, an empty device list and a negative margin target are all
// valid inputs that produce arithmetically consistent output.
func Calculate(in Inputs) Result {
	result := Result{Lines: make([]CostLine, 0, len(in.Devices))}

	for _, device := range in.Devices {
		hours := device.InstallHours + device.ProgHours
		laborCost := hours * in.TeamHourlyRate * in.Vehicle.Multiplier
		travelCost := in.DistanceMiles * RatePerMile * RoundTripFactor
		overhead := laborCost * (in.Vehicle.Overhead / 100)
		trueCost := laborCost + travelCost + overhead

		markupAmount := trueCost * (in.MarginTargetPercent / 100)
		sellPrice := trueCost + markupAmount

		var actualMargin float64
		if sellPrice != 0 {
			actualMargin = markupAmount / sellPrice * 100
		}

		result.Totals.TrueCost += trueCost
		result.Totals.SellPrice += sellPrice

		result.Lines = append(result.Lines, CostLine{
			Category:     device.Category,
			Type:         device.Type,
			Hours:        hours,
			HourlyRate:   in.TeamHourlyRate,
			LaborCost:    laborCost,
			TravelCost:   travelCost,
			Overhead:     overhead,
			TrueCost:     trueCost,
			MarkupAmount: markupAmount,
			SellPrice:    sellPrice,
			ActualMargin: actualMargin,
		})
	}

	result.Totals.Markup = result.Totals.SellPrice - result.Totals.TrueCost
	return result
}
