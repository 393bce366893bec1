package main

import (
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandleExport_CSVDefaults(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/labor/export", nil)
	rr := httptest.NewRecorder()
	srv.handleExport(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, ".csv") {
		t.Fatalf("unexpected content disposition %q", cd)
	}

	records, err := csv.NewReader(rr.Body).ReadAll()
	if err != nil {
		t.Fatalf("export is not valid csv: %v", err)
	}
	// Header, six catalog lines, totals.
	if len(records) != 8 {
		t.Fatalf("expected 8 csv records, got %d", len(records))
	}
	if records[0][0] != "Category" {
		t.Fatalf("unexpected header: %v", records[0])
	}
}

func TestHandleExport_CategoryFilter(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/labor/export?category=ai", nil)
	rr := httptest.NewRecorder()
	srv.handleExport(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	records, err := csv.NewReader(rr.Body).ReadAll()
	if err != nil {
		t.Fatalf("export is not valid csv: %v", err)
	}
	// Header, two ai lines, totals.
	if len(records) != 4 {
		t.Fatalf("expected 4 csv records, got %d", len(records))
	}
}

func TestHandleExport_JSONAndXLSX(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/labor/export?format=json&vehicle=sourcewell", nil)
	rr := httptest.NewRecorder()
	srv.handleExport(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for json, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected json content type %q", ct)
	}
	if !strings.Contains(rr.Body.String(), "Sourcewell") {
		t.Fatal("json export missing vehicle name")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/labor/export?format=xlsx", nil)
	rr = httptest.NewRecorder()
	srv.handleExport(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for xlsx, got %d", rr.Code)
	}
	if rr.Body.Len() == 0 {
		t.Fatal("xlsx export is empty")
	}
}

func TestHandleExport_UnknownFormat(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/labor/export?format=pdf", nil)
	rr := httptest.NewRecorder()
	srv.handleExport(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unsupported format, got %d", rr.Code)
	}
}

func TestHandleVehiclesExport(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/vehicles/export", nil)
	rr := httptest.NewRecorder()
	srv.handleVehiclesExport(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "procurement_rates.json") {
		t.Fatalf("unexpected content disposition %q", cd)
	}
	for _, name := range []string{"Standard Commercial", "Sourcewell", "OMNIA Partners"} {
		if !strings.Contains(rr.Body.String(), name) {
			t.Fatalf("vehicles export missing %q", name)
		}
	}
}

func TestHandleExport_UnknownVehicle(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/labor/export?vehicle=ghost", nil)
	rr := httptest.NewRecorder()
	srv.handleExport(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown vehicle, got %d", rr.Code)
	}
}
