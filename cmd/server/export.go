package main

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/vantagesec/laborcalc/internal/export"
	"github.com/vantagesec/laborcalc/internal/labor"
)

// handleExport runs a cost analysis over the device catalog and streams
// it as a downloadable file. Query parameters:
//
//	format    csv | json | xlsx (default csv)
//	category  catalog filter (default all)
//	distance  one-way miles (default 25)
//	margin    margin target percent (default 30)
//	vehicle   vehicle id (default the active one)
func (s *server) handleExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var vehicle labor.Vehicle
	var err error
	if id := q.Get("vehicle"); id != "" {
		vehicle, err = s.getVehicle(id)
		if err != nil {
			s.writeError(w, http.StatusNotFound, "vehicle not found")
			return
		}
	} else {
		vehicle, err = s.activeVehicle()
		if err != nil {
			s.logger.Error("failed to load active vehicle", zap.Error(err))
			s.writeError(w, http.StatusInternalServerError, "failed to export analysis")
			return
		}
	}

	catalog, err := s.listDeviceStandards()
	if err != nil {
		s.logger.Error("failed to load device standards", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to export analysis")
		return
	}
	devices := labor.FilterCatalog(catalog, q.Get("category"))

	distance := queryFloat(q.Get("distance"), 25)
	margin := queryFloat(q.Get("margin"), 30)

	team := labor.NewTeamComposition(vehicle)
	result := labor.Calculate(labor.Inputs{
		Vehicle:             vehicle,
		TeamHourlyRate:      team.HourlyRate(),
		DistanceMiles:       distance,
		MarginTargetPercent: margin,
		Devices:             devices,
	})

	filename := fmt.Sprintf("labor-analysis-%s", time.Now().UTC().Format("2006-01-02"))

	var payload []byte
	var contentType string
	switch format := q.Get("format"); format {
	case "", "csv":
		payload, err = export.ResultCSV(vehicle.Name, result)
		contentType = "text/csv"
		filename += ".csv"
	case "json":
		payload, err = export.ResultJSON(vehicle.Name, result)
		contentType = "application/json"
		filename += ".json"
	case "xlsx":
		payload, err = export.ResultExcel(vehicle.Name, result)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename += ".xlsx"
	default:
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported export format %q", format))
		return
	}
	if err != nil {
		s.logger.Error("failed to render export", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to export analysis")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func queryFloat(raw string, fallback float64) float64 {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}
