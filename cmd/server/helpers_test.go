package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/vantagesec/laborcalc/internal/seed"
)

const (
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "s3cret"
)

func newTestServer(t *testing.T) *server {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	_, err = db.Exec(`
		PRAGMA foreign_keys = ON;
		CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE vehicles (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			multiplier NUMERIC NOT NULL DEFAULT 1.0,
			min_margin_percent NUMERIC NOT NULL DEFAULT 20,
			overhead_percent NUMERIC NOT NULL DEFAULT 25,
			is_active BOOLEAN NOT NULL DEFAULT FALSE,
			position INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE vehicle_rates (
			vehicle_id TEXT NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
			role TEXT NOT NULL,
			base_rate NUMERIC NOT NULL DEFAULT 0,
			burden_rate NUMERIC NOT NULL DEFAULT 0,
			billed_rate NUMERIC NOT NULL DEFAULT 0,
			PRIMARY KEY (vehicle_id, role)
		);
		CREATE TABLE device_standards (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			category TEXT NOT NULL,
			device_type TEXT NOT NULL UNIQUE,
			install_hours NUMERIC NOT NULL DEFAULT 0,
			programming_hours NUMERIC NOT NULL DEFAULT 0
		);
	`)
	if err != nil {
		t.Fatalf("failed creating schema: %v", err)
	}

	if _, err := seed.Run(db, seed.Config{AdminEmail: testAdminEmail, AdminPassword: testAdminPassword}); err != nil {
		t.Fatalf("failed to seed test db: %v", err)
	}

	return &server{
		auth:   newAuthService(db, "test-session-secret"),
		db:     db,
		logger: zap.NewNop(),
	}
}

// requestWithParam builds a request carrying a chi URL parameter, for
// calling handlers directly without a full router.
func requestWithParam(method, target, key, value string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rr.Body.String(), err)
	}
}

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}
