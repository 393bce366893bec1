package main

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vantagesec/laborcalc/internal/labor"
)

type deviceLineRequest struct {
	DeviceType string `json:"device_type"`
	Quantity   int    `json:"quantity"`
}

// calculateRequest mirrors the calculator's historical API contract.
// Counts for tech and lead distinguish "absent" from zero; the other
// fields treat zero as unset.
type calculateRequest struct {
	Devices []deviceLineRequest `json:"devices"`

	ProjectDistanceMiles float64 `json:"project_distance_miles"`
	ProjectDurationDays  float64 `json:"project_duration_days"`
	MarginTargetPercent  float64 `json:"margin_target_percent"`

	TechCount     *int `json:"tech_count"`
	LeadCount     *int `json:"lead_count"`
	PMCount       int  `json:"pm_count"`
	EngineerCount int  `json:"engineer_count"`

	TechRate     float64 `json:"tech_rate"`
	LeadRate     float64 `json:"lead_rate"`
	PMRate       float64 `json:"pm_rate"`
	EngineerRate float64 `json:"engineer_rate"`

	VehicleID string `json:"vehicle_id"`
}

type lineItemResponse struct {
	DeviceType    string  `json:"device_type"`
	Quantity      int     `json:"quantity"`
	Category      string  `json:"category"`
	HoursPerUnit  float64 `json:"hours_per_unit"`
	TotalHours    float64 `json:"total_hours"`
	HourlyRate    float64 `json:"hourly_rate"`
	LaborCost     float64 `json:"labor_cost"`
	TravelCost    float64 `json:"travel_cost"`
	OverheadCost  float64 `json:"overhead_cost"`
	TrueCost      float64 `json:"true_cost"`
	MarkupAmount  float64 `json:"markup_amount"`
	SellPrice     float64 `json:"sell_price"`
	MarginPercent float64 `json:"margin_percent"`
}

type totalsResponse struct {
	LaborHours    float64 `json:"labor_hours"`
	LaborCost     float64 `json:"labor_cost"`
	TravelCost    float64 `json:"travel_cost"`
	OverheadCost  float64 `json:"overhead_cost"`
	TrueCost      float64 `json:"true_cost"`
	MarkupAmount  float64 `json:"markup_amount"`
	SellPrice     float64 `json:"sell_price"`
	MarginPercent float64 `json:"margin_percent"`
}

type calculateResponse struct {
	RateTable struct {
		ID         string  `json:"id"`
		Name       string  `json:"name"`
		Multiplier float64 `json:"multiplier"`
		MinMargin  float64 `json:"min_margin"`
		Overhead   float64 `json:"overhead"`
	} `json:"rate_table"`
	ProjectParameters struct {
		DistanceMiles       float64 `json:"distance_miles"`
		DurationDays        float64 `json:"duration_days"`
		MarginTargetPercent float64 `json:"margin_target_percent"`
	} `json:"project_parameters"`
	TeamComposition struct {
		TechCount         int     `json:"tech_count"`
		LeadCount         int     `json:"lead_count"`
		PMCount           int     `json:"pm_count"`
		EngineerCount     int     `json:"engineer_count"`
		TechRate          float64 `json:"tech_rate"`
		LeadRate          float64 `json:"lead_rate"`
		PMRate            float64 `json:"pm_rate"`
		EngineerRate      float64 `json:"engineer_rate"`
		BlendedHourlyRate float64 `json:"blended_hourly_rate"`
	} `json:"team_composition"`

	LineItems    []lineItemResponse `json:"line_items"`
	Totals       totalsResponse     `json:"totals"`
	CalculatedAt string             `json:"calculated_at"`
}

func (s *server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Devices) == 0 {
		s.writeError(w, http.StatusBadRequest, "devices array required")
		return
	}

	var vehicle labor.Vehicle
	var err error
	if req.VehicleID != "" {
		vehicle, err = s.getVehicle(req.VehicleID)
	} else {
		vehicle, err = s.activeVehicle()
	}
	if err != nil {
		if errors.Is(err, labor.ErrVehicleNotFound) {
			s.writeError(w, http.StatusNotFound, "no matching rate table found")
			return
		}
		s.logger.Error("failed to load rate table", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to calculate labor costs")
		return
	}

	standards, err := s.listDeviceStandards()
	if err != nil {
		s.logger.Error("failed to load device standards", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to calculate labor costs")
		return
	}
	if len(standards) == 0 {
		s.writeError(w, http.StatusNotFound, "no device labor standards configured")
		return
	}
	standardsByType := make(map[string]labor.DeviceLine, len(standards))
	for _, std := range standards {
		standardsByType[strings.ToLower(std.Type)] = std
	}

	distance := req.ProjectDistanceMiles
	if distance == 0 {
		distance = 25
	}
	duration := req.ProjectDurationDays
	if duration == 0 {
		duration = 5
	}
	marginTarget := req.MarginTargetPercent
	if marginTarget == 0 {
		marginTarget = 30
	}

	techCount, leadCount := 2, 1
	if req.TechCount != nil {
		techCount = *req.TechCount
	}
	if req.LeadCount != nil {
		leadCount = *req.LeadCount
	}

	techRate := rateOrDefault(req.TechRate, vehicle.Rates.Tech.Billed, 90)
	leadRate := rateOrDefault(req.LeadRate, vehicle.Rates.Lead.Billed, 120)
	pmRate := rateOrDefault(req.PMRate, vehicle.Rates.PM.Billed, 140)
	engRate := rateOrDefault(req.EngineerRate, vehicle.Rates.Engineer.Billed, 150)

	teamHourlyRate := float64(techCount)*techRate +
		float64(leadCount)*leadRate +
		float64(req.PMCount)*pmRate +
		float64(req.EngineerCount)*engRate

	// Devices without a known labor standard are skipped, matching the
	// calculator's historical behavior.
	type matchedLine struct {
		request  deviceLineRequest
		standard labor.DeviceLine
	}
	var matched []matchedLine
	var engineLines []labor.DeviceLine
	for _, device := range req.Devices {
		standard, ok := standardsByType[strings.ToLower(device.DeviceType)]
		if !ok {
			s.logger.Warn("no labor standard for device", zap.String("device_type", device.DeviceType))
			continue
		}
		matched = append(matched, matchedLine{request: device, standard: standard})

		qty := float64(device.Quantity)
		engineLines = append(engineLines, labor.DeviceLine{
			Category:     standard.Category,
			Type:         standard.Type,
			InstallHours: standard.InstallHours * qty,
			ProgHours:    standard.ProgHours * qty,
		})
	}

	result := labor.Calculate(labor.Inputs{
		Vehicle:             vehicle,
		TeamHourlyRate:      teamHourlyRate,
		DistanceMiles:       distance,
		MarginTargetPercent: marginTarget,
		Devices:             engineLines,
	})

	resp := calculateResponse{CalculatedAt: time.Now().UTC().Format(time.RFC3339)}
	resp.RateTable.ID = vehicle.ID
	resp.RateTable.Name = vehicle.Name
	resp.RateTable.Multiplier = vehicle.Multiplier
	resp.RateTable.MinMargin = vehicle.MinMargin
	resp.RateTable.Overhead = vehicle.Overhead
	resp.ProjectParameters.DistanceMiles = distance
	resp.ProjectParameters.DurationDays = duration
	resp.ProjectParameters.MarginTargetPercent = marginTarget
	resp.TeamComposition.TechCount = techCount
	resp.TeamComposition.LeadCount = leadCount
	resp.TeamComposition.PMCount = req.PMCount
	resp.TeamComposition.EngineerCount = req.EngineerCount
	resp.TeamComposition.TechRate = techRate
	resp.TeamComposition.LeadRate = leadRate
	resp.TeamComposition.PMRate = pmRate
	resp.TeamComposition.EngineerRate = engRate
	resp.TeamComposition.BlendedHourlyRate = teamHourlyRate

	resp.LineItems = make([]lineItemResponse, 0, len(result.Lines))
	var totals totalsResponse
	for i, line := range result.Lines {
		m := matched[i]
		resp.LineItems = append(resp.LineItems, lineItemResponse{
			DeviceType:    m.request.DeviceType,
			Quantity:      m.request.Quantity,
			Category:      m.standard.Category,
			HoursPerUnit:  m.standard.InstallHours + m.standard.ProgHours,
			TotalHours:    line.Hours,
			HourlyRate:    line.HourlyRate,
			LaborCost:     round2(line.LaborCost),
			TravelCost:    round2(line.TravelCost),
			OverheadCost:  round2(line.Overhead),
			TrueCost:      round2(line.TrueCost),
			MarkupAmount:  round2(line.MarkupAmount),
			SellPrice:     round2(line.SellPrice),
			MarginPercent: round1(line.ActualMargin),
		})

		totals.LaborHours += line.Hours
		totals.LaborCost += line.LaborCost
		totals.TravelCost += line.TravelCost
		totals.OverheadCost += line.Overhead
		totals.TrueCost += line.TrueCost
		totals.MarkupAmount += line.MarkupAmount
		totals.SellPrice += line.SellPrice
	}

	var totalMargin float64
	if totals.SellPrice > 0 {
		totalMargin = totals.MarkupAmount / totals.SellPrice * 100
	}
	resp.Totals = totalsResponse{
		LaborHours:    round2(totals.LaborHours),
		LaborCost:     round2(totals.LaborCost),
		TravelCost:    round2(totals.TravelCost),
		OverheadCost:  round2(totals.OverheadCost),
		TrueCost:      round2(totals.TrueCost),
		MarkupAmount:  round2(totals.MarkupAmount),
		SellPrice:     round2(totals.SellPrice),
		MarginPercent: round1(totalMargin),
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// handleLaborConfig returns the active rate table, its labor rates and
// the device standards in one payload.
func (s *server) handleLaborConfig(w http.ResponseWriter, r *http.Request) {
	vehicle, err := s.activeVehicle()
	if err != nil {
		s.logger.Error("failed to load active vehicle", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to get labor configuration")
		return
	}

	standards, err := s.listDeviceStandards()
	if err != nil {
		s.logger.Error("failed to load device standards", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to get labor configuration")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"rate_table":       vehicle,
		"device_standards": standards,
	})
}

func (s *server) handleWageLookup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	wage := labor.LookupWage(q.Get("state"), q.Get("county"), q.Get("classification"))
	s.writeJSON(w, http.StatusOK, wage)
}

// rateOrDefault resolves a role rate: explicit override first, then the
// vehicle's billed rate, then the hardcoded fallback. Zero means unset.
func rateOrDefault(override, billed, fallback float64) float64 {
	if override != 0 {
		return override
	}
	if billed != 0 {
		return billed
	}
	return fallback
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
