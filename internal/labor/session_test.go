package labor

import (
	"errors"
	"testing"
)

func TestSession_LockedRateSurvivesVehicleSwitch(t *testing.T) {
	s := NewSession()

	// Lock tech at the standard vehicle's $90, then switch to Sourcewell
	// where tech bills at $85.
	s.Team.ToggleLock(RoleTech)
	if err := s.SelectVehicle("sourcewell"); err != nil {
		t.Fatalf("SelectVehicle returned error: %v", err)
	}

	nearlyEqual(t, "locked tech rate", s.Team.Role(RoleTech).Rate, 90)
	nearlyEqual(t, "unlocked lead rate", s.Team.Role(RoleLead).Rate, 115)
}

func TestSession_VehicleSwitchReseedsUnlockedRates(t *testing.T) {
	s := NewSession()
	s.Team.AdjustRate(RoleTech, 5)

	if err := s.SelectVehicle("omnia"); err != nil {
		t.Fatalf("SelectVehicle returned error: %v", err)
	}

	// The adjustment is discarded on switch because the role is unlocked.
	nearlyEqual(t, "tech rate", s.Team.Role(RoleTech).Rate, 88)
	nearlyEqual(t, "eng rate", s.Team.Role(RoleEng).Rate, 148)
}

func TestSession_DeleteActiveVehicleFallsBackAndReseeds(t *testing.T) {
	s := NewSession()
	if err := s.SelectVehicle("sourcewell"); err != nil {
		t.Fatalf("SelectVehicle returned error: %v", err)
	}
	nearlyEqual(t, "tech rate on sourcewell", s.Team.Role(RoleTech).Rate, 85)

	if err := s.DeleteVehicle("sourcewell"); err != nil {
		t.Fatalf("DeleteVehicle returned error: %v", err)
	}

	if got := s.Registry.Active().ID; got != StandardVehicleID {
		t.Fatalf("active vehicle = %q, want standard", got)
	}
	nearlyEqual(t, "tech rate after fallback", s.Team.Role(RoleTech).Rate, 90)
}

func TestSession_DeleteInactiveVehicleKeepsRates(t *testing.T) {
	s := NewSession()
	s.Team.AdjustRate(RoleTech, 5)

	if err := s.DeleteVehicle("omnia"); err != nil {
		t.Fatalf("DeleteVehicle returned error: %v", err)
	}

	nearlyEqual(t, "tech rate", s.Team.Role(RoleTech).Rate, 95)
}

func TestSession_AddVehicleDoesNotChangeActive(t *testing.T) {
	s := NewSession()

	v, err := s.AddVehicle("Houston Metro", 0.9, 18, 28)
	if err != nil {
		t.Fatalf("AddVehicle returned error: %v", err)
	}
	if v.ID != "houston_metro" {
		t.Fatalf("vehicle id = %q", v.ID)
	}
	if got := s.Registry.Active().ID; got != StandardVehicleID {
		t.Fatalf("active changed to %q", got)
	}

	if _, err := s.AddVehicle("Houston Metro", 1.0, 20, 25); !errors.Is(err, ErrDuplicateVehicle) {
		t.Fatalf("expected ErrDuplicateVehicle, got %v", err)
	}
}

func TestSession_LoadTemplateOverActiveReseeds(t *testing.T) {
	s := NewSession()
	if _, err := s.LoadTemplate(TemplateFederal); err != nil {
		t.Fatalf("LoadTemplate returned error: %v", err)
	}
	if err := s.SelectVehicle("federal_gsa"); err != nil {
		t.Fatalf("SelectVehicle returned error: %v", err)
	}
	nearlyEqual(t, "tech rate on federal", s.Team.Role(RoleTech).Rate, 95)

	s.Team.AdjustRate(RoleTech, 5)
	if _, err := s.LoadTemplate(TemplateFederal); err != nil {
		t.Fatalf("LoadTemplate reload returned error: %v", err)
	}

	// Reloading the active template re-seeds unlocked rates from it.
	nearlyEqual(t, "tech rate after reload", s.Team.Role(RoleTech).Rate, 95)
}

func TestSession_RecalculateUsesFilterAndInputs(t *testing.T) {
	s := NewSession()
	s.CategoryFilter = "ai"

	result := s.Recalculate()

	if len(result.Lines) != 2 {
		t.Fatalf("expected 2 ai lines, got %d", len(result.Lines))
	}
	for _, line := range result.Lines {
		if line.Category != "ai" {
			t.Fatalf("unexpected category %q", line.Category)
		}
		nearlyEqual(t, "hourlyRate", line.HourlyRate, 300)
		nearlyEqual(t, "travelCost", line.TravelCost, 33.5)
	}
}

func TestSession_RecalculateIsPureOfSessionState(t *testing.T) {
	s := NewSession()

	first := s.Recalculate()
	second := s.Recalculate()

	if len(first.Lines) != len(second.Lines) {
		t.Fatalf("line counts differ: %d vs %d", len(first.Lines), len(second.Lines))
	}
	nearlyEqual(t, "totals trueCost", first.Totals.TrueCost, second.Totals.TrueCost)
	nearlyEqual(t, "totals sellPrice", first.Totals.SellPrice, second.Totals.SellPrice)
}
