package export

import (
	"encoding/json"
	"fmt"

	"github.com/vantagesec/laborcalc/internal/labor"
)

// ResultEnvelope is the JSON download shape: the flat result rows plus
// the vehicle name.
type ResultEnvelope struct {
	Vehicle string           `json:"vehicle"`
	Lines   []labor.CostLine `json:"lines"`
	Totals  labor.Totals     `json:"totals"`
}

// ResultJSON renders a calculation result for download.
func ResultJSON(vehicleName string, result labor.Result) ([]byte, error) {
	out, err := json.MarshalIndent(ResultEnvelope{
		Vehicle: vehicleName,
		Lines:   result.Lines,
		Totals:  result.Totals,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return out, nil
}

// VehiclesJSON renders the full vehicle list as the procurement rates
// file (the "Export Analysis" download).
func VehiclesJSON(vehicles []labor.Vehicle) ([]byte, error) {
	out, err := json.MarshalIndent(vehicles, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal vehicles: %w", err)
	}
	return out, nil
}
