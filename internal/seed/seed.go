// Package seed populates a fresh database with the data the calculator
// needs on first boot: the admin user, the built-in procurement vehicles
// with their rate tables, and the device labor standards.
package seed

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"

	"github.com/vantagesec/laborcalc/internal/labor"
)

// Config contains the values required by startup seed.
type Config struct {
	AdminEmail    string
	AdminPassword string
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run executes the startup seed in an idempotent way.
func Run(db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := seedAdmin(tx, cfg.AdminEmail, cfg.AdminPassword, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureVehicles(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureDeviceStandards(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func seedAdmin(tx *sql.Tx, email, password string, stats *Stats) error {
	if email == "" || password == "" {
		return nil
	}

	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE email = ? LIMIT 1)`, email).Scan(&exists); err != nil {
		return fmt.Errorf("check admin user existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`INSERT INTO users (email, password_hash) VALUES (?, ?)`, email, HashPassword(password)); err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}
	stats.Inserts++
	return nil
}

// HashPassword returns the stored form of a password. Must stay in sync
// with the credential check in cmd/server.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func ensureVehicles(tx *sql.Tx, stats *Stats) error {
	for position, vehicle := range labor.BuiltinVehicles() {
		var exists bool
		if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM vehicles WHERE id = ? LIMIT 1)`, vehicle.ID).Scan(&exists); err != nil {
			return fmt.Errorf("check vehicle %s existence: %w", vehicle.ID, err)
		}
		if exists {
			continue
		}

		isActive := vehicle.ID == labor.StandardVehicleID
		if _, err := tx.Exec(`
			INSERT INTO vehicles (id, name, multiplier, min_margin_percent, overhead_percent, is_active, position)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, vehicle.ID, vehicle.Name, vehicle.Multiplier, vehicle.MinMargin, vehicle.Overhead, isActive, position); err != nil {
			return fmt.Errorf("insert vehicle %s: %w", vehicle.ID, err)
		}
		stats.Inserts++

		for _, role := range []string{"tech", "lead", "pm", "engineer"} {
			parsed, err := labor.ParseRole(role)
			if err != nil {
				return fmt.Errorf("parse seed role: %w", err)
			}
			rate := vehicle.Rates.ForRole(parsed)
			if _, err := tx.Exec(`
				INSERT INTO vehicle_rates (vehicle_id, role, base_rate, burden_rate, billed_rate)
				VALUES (?, ?, ?, ?, ?)
			`, vehicle.ID, role, rate.Base, rate.Burden, rate.Billed); err != nil {
				return fmt.Errorf("insert rates for %s/%s: %w", vehicle.ID, role, err)
			}
			stats.Inserts++
		}
	}
	return nil
}

func ensureDeviceStandards(tx *sql.Tx, stats *Stats) error {
	for _, line := range labor.DefaultCatalog() {
		var exists bool
		if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM device_standards WHERE device_type = ? LIMIT 1)`, line.Type).Scan(&exists); err != nil {
			return fmt.Errorf("check device standard existence: %w", err)
		}
		if exists {
			continue
		}

		if _, err := tx.Exec(`
			INSERT INTO device_standards (category, device_type, install_hours, programming_hours)
			VALUES (?, ?, ?, ?)
		`, line.Category, line.Type, line.InstallHours, line.ProgHours); err != nil {
			return fmt.Errorf("insert device standard %s: %w", line.Type, err)
		}
		stats.Inserts++
	}
	return nil
}
