package main

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/vantagesec/laborcalc/internal/labor"
)

// listVehicles loads every procurement vehicle with its rate table,
// ordered by stored position.
func (s *server) listVehicles() ([]labor.Vehicle, error) {
	rows, err := s.db.Query(`
		SELECT id, name, multiplier, min_margin_percent, overhead_percent
		FROM vehicles
		ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []labor.Vehicle
	for rows.Next() {
		var v labor.Vehicle
		if err := rows.Scan(&v.ID, &v.Name, &v.Multiplier, &v.MinMargin, &v.Overhead); err != nil {
			return nil, fmt.Errorf("scan vehicle row: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vehicle rows: %w", err)
	}

	for i := range vehicles {
		rates, err := s.loadVehicleRates(vehicles[i].ID)
		if err != nil {
			return nil, err
		}
		vehicles[i].Rates = rates
	}

	return vehicles, nil
}

func (s *server) getVehicle(id string) (labor.Vehicle, error) {
	var v labor.Vehicle
	err := s.db.QueryRow(`
		SELECT id, name, multiplier, min_margin_percent, overhead_percent
		FROM vehicles
		WHERE id = ?
	`, id).Scan(&v.ID, &v.Name, &v.Multiplier, &v.MinMargin, &v.Overhead)
	if errors.Is(err, sql.ErrNoRows) {
		return labor.Vehicle{}, labor.ErrVehicleNotFound
	}
	if err != nil {
		return labor.Vehicle{}, fmt.Errorf("query vehicle %s: %w", id, err)
	}

	v.Rates, err = s.loadVehicleRates(id)
	if err != nil {
		return labor.Vehicle{}, err
	}
	return v, nil
}

func (s *server) loadVehicleRates(vehicleID string) (labor.RateTable, error) {
	rows, err := s.db.Query(`
		SELECT role, base_rate, burden_rate, billed_rate
		FROM vehicle_rates
		WHERE vehicle_id = ?
	`, vehicleID)
	if err != nil {
		return labor.RateTable{}, fmt.Errorf("query rates for %s: %w", vehicleID, err)
	}
	defer rows.Close()

	var table labor.RateTable
	for rows.Next() {
		var roleName string
		var rate labor.RoleRate
		if err := rows.Scan(&roleName, &rate.Base, &rate.Burden, &rate.Billed); err != nil {
			return labor.RateTable{}, fmt.Errorf("scan rate row for %s: %w", vehicleID, err)
		}

		role, err := labor.ParseRole(roleName)
		if err != nil {
			return labor.RateTable{}, fmt.Errorf("stored rate for %s: %w", vehicleID, err)
		}
		switch role {
		case labor.RoleTech:
			table.Tech = rate
		case labor.RoleLead:
			table.Lead = rate
		case labor.RolePM:
			table.PM = rate
		case labor.RoleEng:
			table.Engineer = rate
		}
	}
	if err := rows.Err(); err != nil {
		return labor.RateTable{}, fmt.Errorf("iterate rate rows for %s: %w", vehicleID, err)
	}

	return table, nil
}

// activeVehicle returns the currently selected vehicle, falling back to
// the standard one if no row is flagged active.
func (s *server) activeVehicle() (labor.Vehicle, error) {
	var id string
	err := s.db.QueryRow(`SELECT id FROM vehicles WHERE is_active = 1 LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		id = labor.StandardVehicleID
	} else if err != nil {
		return labor.Vehicle{}, fmt.Errorf("query active vehicle: %w", err)
	}
	return s.getVehicle(id)
}

// insertVehicle stores a new vehicle and its rate table at the end of
// the list. labor.ErrDuplicateVehicle is returned when the id is taken.
func (s *server) insertVehicle(v labor.Vehicle) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin vehicle insert: %w", err)
	}

	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM vehicles WHERE id = ?)`, v.ID).Scan(&exists); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("check vehicle existence: %w", err)
	}
	if exists {
		_ = tx.Rollback()
		return labor.ErrDuplicateVehicle
	}

	var maxPosition sql.NullInt64
	if err := tx.QueryRow(`SELECT MAX(position) FROM vehicles`).Scan(&maxPosition); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("query max vehicle position: %w", err)
	}

	if err := writeVehicle(tx, v, int(maxPosition.Int64)+1); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit vehicle insert: %w", err)
	}
	return nil
}

// upsertVehicle replaces an existing vehicle in place, keeping its list
// position and active flag, or appends it when new.
func (s *server) upsertVehicle(v labor.Vehicle) (replacedActive bool, err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin vehicle upsert: %w", err)
	}

	var position int
	var wasActive bool
	row := tx.QueryRow(`SELECT position, is_active FROM vehicles WHERE id = ?`, v.ID)
	switch err := row.Scan(&position, &wasActive); {
	case errors.Is(err, sql.ErrNoRows):
		var maxPosition sql.NullInt64
		if err := tx.QueryRow(`SELECT MAX(position) FROM vehicles`).Scan(&maxPosition); err != nil {
			_ = tx.Rollback()
			return false, fmt.Errorf("query max vehicle position: %w", err)
		}
		position = int(maxPosition.Int64) + 1
	case err != nil:
		_ = tx.Rollback()
		return false, fmt.Errorf("query vehicle for upsert: %w", err)
	default:
		if _, err := tx.Exec(`DELETE FROM vehicles WHERE id = ?`, v.ID); err != nil {
			_ = tx.Rollback()
			return false, fmt.Errorf("delete vehicle for upsert: %w", err)
		}
	}

	if err := writeVehicle(tx, v, position); err != nil {
		_ = tx.Rollback()
		return false, err
	}
	if wasActive {
		if _, err := tx.Exec(`UPDATE vehicles SET is_active = 1 WHERE id = ?`, v.ID); err != nil {
			_ = tx.Rollback()
			return false, fmt.Errorf("restore active flag: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit vehicle upsert: %w", err)
	}
	return wasActive, nil
}

func writeVehicle(tx *sql.Tx, v labor.Vehicle, position int) error {
	if _, err := tx.Exec(`
		INSERT INTO vehicles (id, name, multiplier, min_margin_percent, overhead_percent, is_active, position)
		VALUES (?, ?, ?, ?, ?, 0, ?)
	`, v.ID, v.Name, v.Multiplier, v.MinMargin, v.Overhead, position); err != nil {
		return fmt.Errorf("insert vehicle %s: %w", v.ID, err)
	}

	for _, role := range labor.Roles() {
		rate := v.Rates.ForRole(role)
		if _, err := tx.Exec(`
			INSERT INTO vehicle_rates (vehicle_id, role, base_rate, burden_rate, billed_rate)
			VALUES (?, ?, ?, ?, ?)
		`, v.ID, storedRoleName(role), rate.Base, rate.Burden, rate.Billed); err != nil {
			return fmt.Errorf("insert rates for %s/%s: %w", v.ID, role, err)
		}
	}
	return nil
}

// storedRoleName maps a role to its database spelling. The rate tables
// keep the long form "engineer".
func storedRoleName(role labor.Role) string {
	if role == labor.RoleEng {
		return "engineer"
	}
	return string(role)
}

// deleteVehicle removes a vehicle. The standard vehicle is protected;
// deleting the active vehicle moves the active flag back to standard.
func (s *server) deleteVehicle(id string) error {
	if id == labor.StandardVehicleID {
		return labor.ErrProtectedVehicle
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin vehicle delete: %w", err)
	}

	var wasActive bool
	err = tx.QueryRow(`SELECT is_active FROM vehicles WHERE id = ?`, id).Scan(&wasActive)
	if errors.Is(err, sql.ErrNoRows) {
		_ = tx.Rollback()
		return labor.ErrVehicleNotFound
	}
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("query vehicle for delete: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM vehicles WHERE id = ?`, id); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete vehicle %s: %w", id, err)
	}
	if wasActive {
		if _, err := tx.Exec(`UPDATE vehicles SET is_active = 1 WHERE id = ?`, labor.StandardVehicleID); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("reset active vehicle: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit vehicle delete: %w", err)
	}
	return nil
}

func (s *server) activateVehicle(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin vehicle activate: %w", err)
	}

	res, err := tx.Exec(`UPDATE vehicles SET is_active = 1 WHERE id = ?`, id)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("activate vehicle %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("check activation result: %w", err)
	}
	if affected == 0 {
		_ = tx.Rollback()
		return labor.ErrVehicleNotFound
	}

	if _, err := tx.Exec(`UPDATE vehicles SET is_active = 0 WHERE id != ?`, id); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear previous active vehicle: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit vehicle activate: %w", err)
	}
	return nil
}

// listDeviceStandards loads the device labor catalog.
func (s *server) listDeviceStandards() ([]labor.DeviceLine, error) {
	rows, err := s.db.Query(`
		SELECT category, device_type, install_hours, programming_hours
		FROM device_standards
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query device standards: %w", err)
	}
	defer rows.Close()

	var lines []labor.DeviceLine
	for rows.Next() {
		var line labor.DeviceLine
		if err := rows.Scan(&line.Category, &line.Type, &line.InstallHours, &line.ProgHours); err != nil {
			return nil, fmt.Errorf("scan device standard row: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate device standard rows: %w", err)
	}

	return lines, nil
}
