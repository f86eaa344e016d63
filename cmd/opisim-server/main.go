package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/opisim/opisim/internal/config"
	"github.com/opisim/opisim/internal/domain/dosing"
	"github.com/opisim/opisim/internal/domain/drug"
	"github.com/opisim/opisim/internal/domain/patient"
	"github.com/opisim/opisim/internal/domain/pkmodel"
	"github.com/opisim/opisim/internal/domain/scenario"
	"github.com/opisim/opisim/internal/domain/simulation"
	"github.com/opisim/opisim/internal/platform/auth"
	"github.com/opisim/opisim/internal/platform/db"
	"github.com/opisim/opisim/internal/platform/middleware"
	"github.com/opisim/opisim/internal/platform/telemetry"
)

const version = "0.1.0"

// telemetryRunRecorder adapts the telemetry provider to the
// simulation.RunRecorder interface, avoiding a dependency from the domain
// package on the telemetry package.
type telemetryRunRecorder struct {
	tp *telemetry.TelemetryProvider
}

func newTelemetryRunRecorder(tp *telemetry.TelemetryProvider) *telemetryRunRecorder {
	return &telemetryRunRecorder{tp: tp}
}

// RecordRun implements simulation.RunRecorder.
func (r *telemetryRunRecorder) RecordRun(drugName, model string) {
	r.tp.SimulationRunCounter(drugName, model)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "opisim-server",
		Short: "Opioid PK simulation API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(simulateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the simulation API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	// migrate up
	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	// migrate status
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	// migrate down - keep as warning
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Rollback last migration (not supported)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("WARNING: migrate down is destructive and not supported by the built-in runner.")
			fmt.Println("Write a forward migration that reverses the change instead.")
			return nil
		},
	})

	return cmd
}

// simulateCmd runs one simulation from a scenario JSON file and prints the
// sample series. No server or database is needed; the default horizon cap
// applies.
func simulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run one simulation from a scenario JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			if file == "" {
				return fmt.Errorf("--file is required")
			}

			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read scenario file: %w", err)
			}
			var sc scenario.Scenario
			if err := json.Unmarshal(data, &sc); err != nil {
				return fmt.Errorf("parse scenario file: %w", err)
			}

			req := sc.SimulationRequest()
			if sc.StartTime != nil {
				req.Events, err = dosing.ResolveClockTimes(sc.Events, *sc.StartTime)
				if err != nil {
					return err
				}
			}

			svc := simulation.NewService(0)
			result, err := svc.Run(context.Background(), req)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(result.Samples, "", "  ")
			if err != nil {
				return fmt.Errorf("encode samples: %w", err)
			}
			fmt.Println(string(out))
			return nil
		},
	}
	cmd.Flags().String("file", "", "Path to a scenario JSON file")
	return cmd
}

// seedCmd inserts the demo scenarios in a single transaction, so a partial
// seed never reaches the table.
func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			pool, err := db.NewPool(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			repo := scenario.NewScenarioRepoPG(pool)
			ctx, tx, err := db.WithTx(context.Background(), pool)
			if err != nil {
				return err
			}
			defer tx.Rollback(ctx)

			demos := demoScenarios()
			for _, sc := range demos {
				if err := repo.Create(ctx, sc); err != nil {
					return fmt.Errorf("seed %q: %w", sc.Name, err)
				}
			}
			if err := tx.Commit(ctx); err != nil {
				return fmt.Errorf("commit seed: %w", err)
			}

			fmt.Printf("Seeded %d demo scenario(s).\n", len(demos))
			return nil
		},
	}
}

// demoScenarios returns the starter scenarios the seed command inserts.
// Doses follow the clinical defaults in the drug catalog.
func demoScenarios() []*scenario.Scenario {
	strPtr := func(s string) *string { return &s }

	return []*scenario.Scenario{
		{
			Name:        "Fentanyl PCA bridge",
			Description: strPtr("Loading bolus with a background infusion while PCA is set up."),
			Drug:        "fentanyl",
			Patient:     patient.Profile{Age: 42, Weight: 70, Height: 175, Gender: patient.GenderMale},
			Events: []dosing.Dose{
				{Type: dosing.DoseBolus, Time: 0, Amount: 100},
				{Type: dosing.DoseInfusion, Time: 0, Rate: 50, RateUnit: dosing.UnitMcgPerHr, Indefinite: true},
			},
			DurationMinutes: 480,
		},
		{
			Name:        "Morphine ward q4h",
			Description: strPtr("Intermittent IV morphine on a standard four-hour schedule."),
			Drug:        "morphine",
			Patient:     patient.Profile{Age: 68, Weight: 82, Height: 170, Gender: patient.GenderFemale},
			Events: []dosing.Dose{
				{Type: dosing.DoseBolus, Time: 0, Amount: 5},
				{Type: dosing.DoseBolus, Time: 240, Amount: 5},
				{Type: dosing.DoseBolus, Time: 480, Amount: 5},
			},
			DurationMinutes: 720,
		},
		{
			Name:        "Remifentanil pediatric infusion",
			Description: strPtr("Weight-based remifentanil infusion for a short procedure."),
			Drug:        "remifentanil",
			Patient:     patient.Profile{Age: 8, Weight: 26, Height: 128, Gender: patient.GenderFemale},
			Events: []dosing.Dose{
				{Type: dosing.DoseInfusion, Time: 0, Rate: 0.25, RateUnit: dosing.UnitMcgPerKgMin, DurationMinutes: 120},
			},
			DurationMinutes: 180,
		},
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && lvl != zerolog.NoLevel {
		logger = logger.Level(lvl)
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Telemetry
	tp := telemetry.NewTelemetryProvider(telemetry.TelemetryConfig{
		ServiceName:    "opisim-server",
		ServiceVersion: version,
		Environment:    cfg.Env,
	})
	defer tp.Shutdown(ctx)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))
	e.Use(tp.TracingMiddleware())
	e.Use(tp.MetricsMiddleware())

	// API group
	apiV1 := e.Group("/api/v1")

	// Rate limiting middleware
	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	// Auth middleware
	if cfg.AuthEnabled {
		apiV1.Use(auth.JWTMiddleware(auth.JWTConfig{
			Issuer:     cfg.JWTIssuer,
			Audience:   cfg.JWTAudience,
			SigningKey: []byte(cfg.JWTSecret),
		}))
	} else {
		apiV1.Use(auth.DevAuthMiddleware())
	}

	// Domain services
	simSvc := simulation.NewService(cfg.MaxSimulationMinutes)
	simSvc.SetRunRecorder(newTelemetryRunRecorder(tp))

	scenarioRepo := scenario.NewScenarioRepoPG(pool)
	scenarioSvc := scenario.NewService(scenarioRepo, simSvc)

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":  "ok",
			"version": version,
			"pool":    db.GetPoolStats(pool),
		})
	})

	// DB health check endpoint
	e.GET("/health/db", db.HealthHandler(pool))

	// Prometheus metrics. Pool and scenario gauges are refreshed on scrape.
	healthMetrics := tp.HealthMetrics()
	e.GET("/metrics", func(c echo.Context) error {
		stats := pool.Stat()
		healthMetrics.SetDBPoolActive(int64(stats.AcquiredConns()))
		healthMetrics.SetDBPoolIdle(int64(stats.IdleConns()))
		if _, total, err := scenarioSvc.ListScenarios(c.Request().Context(), "", 1, 0); err == nil {
			healthMetrics.SetScenariosTotal(int64(total))
		}
		return tp.PrometheusHandler()(c)
	})

	// Domain handlers
	drugHandler := drug.NewHandler()
	drugHandler.RegisterRoutes(apiV1)

	patientHandler := patient.NewHandler()
	patientHandler.RegisterRoutes(apiV1)

	pkHandler := pkmodel.NewHandler()
	pkHandler.RegisterRoutes(apiV1)

	dosingHandler := dosing.NewHandler()
	dosingHandler.RegisterRoutes(apiV1)

	simHandler := simulation.NewHandler(simSvc)
	simHandler.RegisterRoutes(apiV1)

	scenarioHandler := scenario.NewHandler(scenarioSvc)
	scenarioHandler.RegisterRoutes(apiV1)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
