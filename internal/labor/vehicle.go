// Package labor implements the multi-procurement labor and pricing
// calculator: procurement vehicle rate tables, team composition with
// bounded rate adjustment, and the per-device cost/price computation.
package labor

import (
	"errors"
	"fmt"
	"strings"
)

// Role identifies one of the four billable labor roles.
type Role string

const (
	RoleTech Role = "tech"
	RoleLead Role = "lead"
	RolePM   Role = "pm"
	RoleEng  Role = "eng"
)

// Roles lists all roles in display order.
func Roles() []Role {
	return []Role{RoleTech, RoleLead, RolePM, RoleEng}
}

// StandardVehicleID is the built-in vehicle that can never be deleted.
const StandardVehicleID = "standard"

var (
	// ErrProtectedVehicle is returned when deleting the standard vehicle.
	ErrProtectedVehicle = errors.New("the standard rate table cannot be deleted")

	// ErrDuplicateVehicle is returned when adding a vehicle whose derived
	// id collides with an existing one.
	ErrDuplicateVehicle = errors.New("a vehicle with that id already exists")

	// ErrVehicleNotFound is returned when an id does not match any vehicle.
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrEmptyVehicleName is returned when creating a vehicle without a name.
	ErrEmptyVehicleName = errors.New("vehicle name is required")
)

// RoleRate holds the hourly rates for one role under one vehicle.
// Billed is the only value the cost computation consumes; Base and Burden
// are informational and are not required to sum to Billed.
type RoleRate struct {
	Base   float64 `json:"base"`
	Burden float64 `json:"burden"`
	Billed float64 `json:"billed"`
}

// RateTable maps each role to its rates. A vehicle always carries a
// complete table; there are no partial vehicles.
type RateTable struct {
	Tech     RoleRate `json:"tech"`
	Lead     RoleRate `json:"lead"`
	PM       RoleRate `json:"pm"`
	Engineer RoleRate `json:"engineer"`
}

// ForRole returns the rates for the given role.
func (t RateTable) ForRole(role Role) RoleRate {
	switch role {
	case RoleTech:
		return t.Tech
	case RoleLead:
		return t.Lead
	case RolePM:
		return t.PM
	case RoleEng:
		return t.Engineer
	}
	return RoleRate{}
}

// Vehicle is a named procurement contract context: a rate table plus the
// multiplier, overhead and minimum-margin parameters negotiated for it.
// MinMargin is advisory metadata; the engine never enforces it.
type Vehicle struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Multiplier float64   `json:"multiplier"`
	MinMargin  float64   `json:"minMargin"`
	Overhead   float64   `json:"overhead"`
	Rates      RateTable `json:"rates"`
}

// DefaultRateTable returns the baseline rates used for newly created
// vehicles.
func DefaultRateTable() RateTable {
	return RateTable{
		Tech:     RoleRate{Base: 35, Burden: 25, Billed: 90},
		Lead:     RoleRate{Base: 45, Burden: 30, Billed: 120},
		PM:       RoleRate{Base: 55, Burden: 35, Billed: 140},
		Engineer: RoleRate{Base: 65, Burden: 35, Billed: 150},
	}
}

// NewVehicle builds a vehicle with the default rate table. The id is
// derived from the name: lower-cased, whitespace runs replaced by
// underscores.
func NewVehicle(name string, multiplier, minMargin, overhead float64) (Vehicle, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Vehicle{}, ErrEmptyVehicleName
	}

	return Vehicle{
		ID:         VehicleID(name),
		Name:       name,
		Multiplier: multiplier,
		MinMargin:  minMargin,
		Overhead:   overhead,
		Rates:      DefaultRateTable(),
	}, nil
}

// VehicleID derives the registry key for a vehicle name.
func VehicleID(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}

// StandardVehicle returns the built-in commercial vehicle.
func StandardVehicle() Vehicle {
	return Vehicle{
		ID:         StandardVehicleID,
		Name:       "Standard Commercial",
		Multiplier: 1.0,
		MinMargin:  30,
		Overhead:   25,
		Rates:      DefaultRateTable(),
	}
}

// SourcewellVehicle returns the built-in Sourcewell cooperative vehicle.
func SourcewellVehicle() Vehicle {
	return Vehicle{
		ID:         "sourcewell",
		Name:       "Sourcewell",
		Multiplier: 0.95,
		MinMargin:  20,
		Overhead:   30,
		Rates: RateTable{
			Tech:     RoleRate{Base: 35, Burden: 25, Billed: 85},
			Lead:     RoleRate{Base: 45, Burden: 30, Billed: 115},
			PM:       RoleRate{Base: 55, Burden: 35, Billed: 135},
			Engineer: RoleRate{Base: 65, Burden: 35, Billed: 145},
		},
	}
}

// OmniaVehicle returns the built-in OMNIA Partners vehicle.
func OmniaVehicle() Vehicle {
	return Vehicle{
		ID:         "omnia",
		Name:       "OMNIA Partners",
		Multiplier: 0.92,
		MinMargin:  18,
		Overhead:   28,
		Rates: RateTable{
			Tech:     RoleRate{Base: 35, Burden: 25, Billed: 88},
			Lead:     RoleRate{Base: 45, Burden: 30, Billed: 118},
			PM:       RoleRate{Base: 55, Burden: 35, Billed: 138},
			Engineer: RoleRate{Base: 65, Burden: 35, Billed: 148},
		},
	}
}

// BuiltinVehicles returns the vehicles a fresh registry starts with.
func BuiltinVehicles() []Vehicle {
	return []Vehicle{StandardVehicle(), SourcewellVehicle(), OmniaVehicle()}
}

// ParseRole converts an external role name to a Role. The original data
// model uses "engineer" in rate tables and "eng" in team state; both are
// accepted.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tech":
		return RoleTech, nil
	case "lead":
		return RoleLead, nil
	case "pm":
		return RolePM, nil
	case "eng", "engineer":
		return RoleEng, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}
