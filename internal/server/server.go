package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/aguspuryanto/medi-hospital-erp/internal/booking"
	"github.com/aguspuryanto/medi-hospital-erp/internal/claims"
	"github.com/aguspuryanto/medi-hospital-erp/internal/dashboard"
	"github.com/aguspuryanto/medi-hospital-erp/internal/encounter"
	"github.com/aguspuryanto/medi-hospital-erp/internal/insight"
	"github.com/aguspuryanto/medi-hospital-erp/internal/patient"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/config"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/fixtures"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/logger"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/monitoring"
)

// Server assembles the hospital network management API: the in-memory
// ledgers, the domain services and the HTTP surface.
type Server struct {
	config  *config.Config
	logger  *logger.Logger
	metrics *monitoring.MetricsCollector
	tracing *monitoring.TracingManager
	health  *monitoring.HealthManager

	patients   *patient.Service
	encounters *encounter.Service
	claims     *claims.Service
	bridge     *claims.Bridge
	booking    *booking.Service
	dashboard  *dashboard.Service

	httpServer *http.Server
}

// New wires up all components from configuration
func New(cfg *config.Config, log *logger.Logger) (*Server, error) {
	metrics := monitoring.NewMetricsCollector("dashboard-api")

	var tracing *monitoring.TracingManager
	if cfg.Monitoring.TracingEnabled {
		tm, err := monitoring.NewTracingManager(&monitoring.TracingConfig{
			ServiceName:    "dashboard-api",
			ServiceVersion: "1.0.0",
			OTLPEndpoint:   cfg.Monitoring.OTLPEndpoint,
			Environment:    "production",
			SamplingRate:   cfg.Monitoring.SamplingRate,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
		tracing = tm
	}

	directory := fixtures.NewDirectory()

	patientRepo := patient.NewRepository(log)
	encounterRepo := encounter.NewRepository()
	claimRepo := claims.NewRepository()
	appointmentRepo := booking.NewRepository()

	bridge := claims.NewBridge(claimRepo, cfg.Claims.BridgeDelay, log, metrics)
	insightClient := insight.NewClient(&cfg.Insight, log, metrics)

	s := &Server{
		config:     cfg,
		logger:     log,
		metrics:    metrics,
		tracing:    tracing,
		health:     monitoring.NewHealthManager("dashboard-api", "1.0.0"),
		patients:   patient.NewService(patientRepo, log, metrics),
		encounters: encounter.NewService(encounterRepo, patientRepo, directory, log, metrics),
		bridge:     bridge,
		booking:    booking.NewService(appointmentRepo, directory, directory, &cfg.Scheduling, log, metrics),
	}
	s.claims = claims.NewService(claimRepo, encounterRepo, directory, bridge, log, metrics)
	s.dashboard = dashboard.NewService(encounterRepo, claimRepo, appointmentRepo, directory, insightClient, log)

	s.health.RegisterChecker("encounter-store", monitoring.HealthCheckerFunc(func(ctx context.Context) monitoring.HealthCheck {
		return monitoring.HealthCheck{
			Name:    "encounter-store",
			Status:  monitoring.HealthStatusHealthy,
			Details: map[string]interface{}{"encounters": len(encounterRepo.List())},
		}
	}))

	if cfg.SeedDemoData {
		s.seed(patientRepo, encounterRepo)
	}

	return s, nil
}

// Start runs the HTTP server until Stop is called
func (s *Server) Start() error {
	router := mux.NewRouter()

	api := router.PathPrefix("/api/v1").Subrouter()
	s.patients.RegisterRoutes(api)
	s.encounters.RegisterRoutes(api)
	s.claims.RegisterRoutes(api)
	s.booking.RegisterRoutes(api)
	s.dashboard.RegisterRoutes(api)

	mm := monitoring.NewMonitoringMiddleware(s.metrics, s.tracing, s.logger)
	api.Use(mm.HTTPMiddleware)

	if s.config.Monitoring.Enabled {
		router.Handle(s.config.Monitoring.MetricsPath, s.metrics.Handler()).Methods("GET")
		router.Handle(s.config.Monitoring.HealthPath, s.health.Handler()).Methods("GET")
	}

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(s.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.config.Server.IdleTimeout) * time.Second,
	}

	s.logger.Infof("Dashboard API listening on %s", addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts the server down, cancelling pending claim bridge timers
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.bridge.CancelAll()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return err
		}
	}

	if s.tracing != nil {
		if err := s.tracing.Shutdown(ctx); err != nil {
			s.logger.Errorf("Failed to shut down tracing: %v", err)
		}
	}
	return nil
}

// seed loads the demo records so the dashboard has data on first boot
func (s *Server) seed(patients *patient.Repository, encounters *encounter.Repository) {
	for _, p := range fixtures.DemoPatients() {
		if err := patients.Create(p); err != nil {
			s.logger.Errorf("Failed to seed patient %s: %v", p.ID, err)
		}
	}
	for _, e := range fixtures.DemoEncounters() {
		if err := encounters.Create(e); err != nil {
			s.logger.Errorf("Failed to seed encounter %s: %v", e.ID, err)
		}
	}
	s.logger.Info("Seeded demo reference data")
}
