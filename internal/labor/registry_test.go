package labor

import (
	"errors"
	"testing"
)

func TestNewVehicle_DerivesID(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Sourcewell", "sourcewell"},
		{"Federal GSA", "federal_gsa"},
		{"  Houston   Metro  Co-op ", "houston_metro_co-op"},
	}

	for _, c := range cases {
		v, err := NewVehicle(c.name, 1.0, 20, 25)
		if err != nil {
			t.Fatalf("NewVehicle(%q) returned error: %v", c.name, err)
		}
		if v.ID != c.want {
			t.Fatalf("NewVehicle(%q).ID = %q, want %q", c.name, v.ID, c.want)
		}
	}
}

func TestNewVehicle_RejectsEmptyName(t *testing.T) {
	if _, err := NewVehicle("   ", 1.0, 20, 25); !errors.Is(err, ErrEmptyVehicleName) {
		t.Fatalf("expected ErrEmptyVehicleName, got %v", err)
	}
}

func TestNewVehicle_UsesDefaultRateTable(t *testing.T) {
	v, err := NewVehicle("City Contract", 0.9, 18, 28)
	if err != nil {
		t.Fatalf("NewVehicle returned error: %v", err)
	}

	nearlyEqual(t, "tech billed", v.Rates.Tech.Billed, 90)
	nearlyEqual(t, "lead billed", v.Rates.Lead.Billed, 120)
	nearlyEqual(t, "pm billed", v.Rates.PM.Billed, 140)
	nearlyEqual(t, "engineer billed", v.Rates.Engineer.Billed, 150)
}

func TestRegistry_DeleteStandardFails(t *testing.T) {
	r := NewRegistry()
	before := r.Len()

	if err := r.Remove(StandardVehicleID); !errors.Is(err, ErrProtectedVehicle) {
		t.Fatalf("expected ErrProtectedVehicle, got %v", err)
	}
	if r.Len() != before {
		t.Fatalf("vehicle count changed: %d -> %d", before, r.Len())
	}
}

func TestRegistry_AddRejectsDuplicateID(t *testing.T) {
	r := NewRegistry()

	v, err := NewVehicle("Sourcewell", 1.0, 20, 25)
	if err != nil {
		t.Fatalf("NewVehicle returned error: %v", err)
	}

	if err := r.Add(v); !errors.Is(err, ErrDuplicateVehicle) {
		t.Fatalf("expected ErrDuplicateVehicle, got %v", err)
	}

	// The existing sourcewell definition was not overwritten.
	existing, err := r.Get("sourcewell")
	if err != nil {
		t.Fatalf("Get(sourcewell) returned error: %v", err)
	}
	nearlyEqual(t, "sourcewell multiplier", existing.Multiplier, 0.95)
}

func TestRegistry_RemoveActiveFallsBackToStandard(t *testing.T) {
	r := NewRegistry()
	if err := r.SelectActive("omnia"); err != nil {
		t.Fatalf("SelectActive returned error: %v", err)
	}

	if err := r.Remove("omnia"); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}

	if got := r.Active().ID; got != StandardVehicleID {
		t.Fatalf("active vehicle after removal = %q, want %q", got, StandardVehicleID)
	}
	if _, err := r.Get("omnia"); !errors.Is(err, ErrVehicleNotFound) {
		t.Fatalf("expected omnia to be gone, got %v", err)
	}
}

func TestRegistry_SelectUnknownVehicle(t *testing.T) {
	r := NewRegistry()
	if err := r.SelectActive("nope"); !errors.Is(err, ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound, got %v", err)
	}
	if got := r.Active().ID; got != StandardVehicleID {
		t.Fatalf("active changed to %q after failed select", got)
	}
}

func TestLoadTemplate_UpsertPreservesPosition(t *testing.T) {
	r := NewRegistry()

	if _, err := r.LoadTemplate(TemplateFederal); err != nil {
		t.Fatalf("LoadTemplate returned error: %v", err)
	}
	if _, err := r.LoadTemplate(TemplateState); err != nil {
		t.Fatalf("LoadTemplate returned error: %v", err)
	}

	vehicles := r.Vehicles()
	if vehicles[3].ID != "federal_gsa" || vehicles[4].ID != "state_contract" {
		t.Fatalf("unexpected order after appends: %v, %v", vehicles[3].ID, vehicles[4].ID)
	}

	// Reloading federal replaces it in place.
	if _, err := r.LoadTemplate(TemplateFederal); err != nil {
		t.Fatalf("LoadTemplate reload returned error: %v", err)
	}
	vehicles = r.Vehicles()
	if len(vehicles) != 5 {
		t.Fatalf("expected 5 vehicles after reload, got %d", len(vehicles))
	}
	if vehicles[3].ID != "federal_gsa" {
		t.Fatalf("federal template moved to position of %q", vehicles[3].ID)
	}
}

func TestTemplate_UnknownKind(t *testing.T) {
	if _, err := Template(TemplateKind("municipal")); err == nil {
		t.Fatal("expected error for unknown template kind")
	}
}

func TestTemplate_FederalParameters(t *testing.T) {
	v, err := Template(TemplateFederal)
	if err != nil {
		t.Fatalf("Template returned error: %v", err)
	}

	if v.ID != "federal_gsa" || v.Name != "Federal GSA" {
		t.Fatalf("unexpected identity: %q %q", v.ID, v.Name)
	}
	nearlyEqual(t, "multiplier", v.Multiplier, 0.85)
	nearlyEqual(t, "minMargin", v.MinMargin, 15)
	nearlyEqual(t, "overhead", v.Overhead, 35)
	nearlyEqual(t, "tech billed", v.Rates.Tech.Billed, 95)
}
