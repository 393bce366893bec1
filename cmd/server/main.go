package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vantagesec/laborcalc/internal/config"
	"github.com/vantagesec/laborcalc/internal/db"
	"github.com/vantagesec/laborcalc/internal/migrations"
	"github.com/vantagesec/laborcalc/internal/seed"
)

type server struct {
	auth   *authService
	db     *sql.DB
	logger *zap.Logger
}

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to build logger: %v", err))
	}
	defer logger.Sync()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database, "migrations"); err != nil {
			logger.Fatal("failed to run database migrations", zap.Error(err))
		}
	}

	stats, err := seed.Run(database, seed.Config{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	})
	if err != nil {
		logger.Fatal("failed to run startup seed", zap.Error(err))
	}
	if stats.Inserts > 0 {
		logger.Info("startup seed applied", zap.Int("inserts", stats.Inserts))
	}

	auth := newAuthService(database, cfg.SessionSecret)
	srv := &server{auth: auth, db: database, logger: logger}

	r := chi.NewRouter()
	r.Use(srv.authMiddleware)
	r.Post("/login", srv.handleLogin)
	r.Post("/logout", srv.handleLogout)

	r.Get("/api/labor/config", srv.handleLaborConfig)
	r.Post("/api/labor/calculate", srv.handleCalculate)
	r.Get("/api/labor/export", srv.handleExport)

	r.Get("/api/vehicles", srv.handleVehiclesList)
	r.Get("/api/vehicles/export", srv.handleVehiclesExport)
	r.Post("/api/vehicles", srv.handleVehicleCreate)
	r.Delete("/api/vehicles/{id}", srv.handleVehicleDelete)
	r.Post("/api/vehicles/{id}/activate", srv.handleVehicleActivate)
	r.Post("/api/templates/{kind}", srv.handleTemplateLoad)

	r.Get("/api/wages", srv.handleWageLookup)

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info", "":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zapLevel)
	return zcfg.Build()
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	valid, err := s.auth.validateCredentials(body.Email, body.Password)
	if err != nil {
		s.logger.Error("credential check failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "authentication error")
		return
	}
	if !valid {
		s.writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	s.auth.setSessionCookie(w, body.Email)
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.clearSessionCookie(w)
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/login" {
			next.ServeHTTP(w, r)
			return
		}

		if !isAuthenticated(r, s.auth) {
			s.writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isAuthenticated(r *http.Request, auth *authService) bool {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return false
	}

	_, ok := auth.verifySessionValue(cookie.Value)
	return ok
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
