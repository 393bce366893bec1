package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vantagesec/laborcalc/internal/export"
	"github.com/vantagesec/laborcalc/internal/labor"
)

func (s *server) handleVehiclesList(w http.ResponseWriter, r *http.Request) {
	vehicles, err := s.listVehicles()
	if err != nil {
		s.logger.Error("failed to list vehicles", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to list vehicles")
		return
	}

	active, err := s.activeVehicle()
	if err != nil {
		s.logger.Error("failed to load active vehicle", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to list vehicles")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"vehicles":  vehicles,
		"active_id": active.ID,
	})
}

// handleVehiclesExport streams the full vehicle list as a downloadable
// procurement rates file.
func (s *server) handleVehiclesExport(w http.ResponseWriter, r *http.Request) {
	vehicles, err := s.listVehicles()
	if err != nil {
		s.logger.Error("failed to list vehicles", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to export vehicles")
		return
	}

	payload, err := export.VehiclesJSON(vehicles)
	if err != nil {
		s.logger.Error("failed to render vehicles export", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to export vehicles")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="procurement_rates.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (s *server) handleVehicleCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name       string  `json:"name"`
		Multiplier float64 `json:"multiplier"`
		MinMargin  float64 `json:"min_margin"`
		Overhead   float64 `json:"overhead"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	vehicle, err := labor.NewVehicle(body.Name, body.Multiplier, body.MinMargin, body.Overhead)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.insertVehicle(vehicle); err != nil {
		if errors.Is(err, labor.ErrDuplicateVehicle) {
			s.writeError(w, http.StatusConflict, err.Error())
			return
		}
		s.logger.Error("failed to insert vehicle", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to create vehicle")
		return
	}

	s.writeJSON(w, http.StatusCreated, vehicle)
}

func (s *server) handleVehicleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	switch err := s.deleteVehicle(id); {
	case errors.Is(err, labor.ErrProtectedVehicle):
		s.writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, labor.ErrVehicleNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case err != nil:
		s.logger.Error("failed to delete vehicle", zap.String("id", id), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to delete vehicle")
	default:
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func (s *server) handleVehicleActivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	switch err := s.activateVehicle(id); {
	case errors.Is(err, labor.ErrVehicleNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case err != nil:
		s.logger.Error("failed to activate vehicle", zap.String("id", id), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to activate vehicle")
	default:
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "activated", "active_id": id})
	}
}

// handleTemplateLoad upserts a pre-built vehicle definition. Loading a
// template over an existing vehicle replaces it in place.
func (s *server) handleTemplateLoad(w http.ResponseWriter, r *http.Request) {
	kind := labor.TemplateKind(chi.URLParam(r, "kind"))

	vehicle, err := labor.Template(kind)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}

	if _, err := s.upsertVehicle(vehicle); err != nil {
		s.logger.Error("failed to load template", zap.String("kind", string(kind)), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to load template")
		return
	}

	s.writeJSON(w, http.StatusOK, vehicle)
}
