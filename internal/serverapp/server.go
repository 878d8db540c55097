// Package serverapp assembles the relay: config in, one http.Handler
// out. All route gating decisions live here so the per-route secret
// locations are visible in one place.
package serverapp

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/geecynthia3-glitch/nfc-webhook/internal/clickup"
	"github.com/geecynthia3-glitch/nfc-webhook/internal/config"
	"github.com/geecynthia3-glitch/nfc-webhook/internal/event"
	"github.com/geecynthia3-glitch/nfc-webhook/internal/guard"
	"github.com/geecynthia3-glitch/nfc-webhook/internal/httpmw"
	"github.com/geecynthia3-glitch/nfc-webhook/internal/portal"
	"github.com/geecynthia3-glitch/nfc-webhook/internal/server"
	"github.com/geecynthia3-glitch/nfc-webhook/internal/tap"
	"github.com/geecynthia3-glitch/nfc-webhook/internal/telemetry"
)

type Options struct {
	Config *config.Config
	Logger *log.Logger
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	cfg := opts.Config

	client := clickup.NewClient(cfg.ClickUpAPIURL, cfg.ClickUpToken)
	stats := telemetry.NewMemoryRepository()

	webhookGuard := guard.New(cfg.WebhookSecret)
	portalGuard := guard.New(cfg.PortalKey)

	eventRepo, err := event.NewFileRepo(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open event registry: %w", err)
	}

	strategy, err := buildStrategy(cfg, eventRepo, client)
	if err != nil {
		return nil, err
	}
	tapHandler := tap.NewHandler(strategy)
	tapHandler.SetTelemetry(stats)

	eventHandler := event.NewHandler(eventRepo)
	eventHandler.SetTelemetry(stats)

	portalHandler := portal.NewHandler(eventRepo, cfg.WebhookSecret, cfg.PortalKey)
	portalHandler.SetTelemetry(stats)

	clickupHandler := clickup.NewHandler(client, cfg.ClickUpListID)

	mux := http.NewServeMux()
	rr := &server.RouteRegistry{}

	server.Handle(mux, rr, "GET /{$}", "Availability check", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("NFC relay is running\n"))
	}))

	server.Handle(mux, rr, "GET /healthz", "Liveness", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":      true,
			"service": "nfc-relay",
			"mode":    string(cfg.TapMode),
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	}))

	// Tap entry points. Tag writers differ on header support, so the
	// secret is accepted from the x-webhook-secret header or the key
	// query parameter. Both route spellings point at the same handler.
	tapGate := webhookGuard.RequireHeaderOrQuery("x-webhook-secret", "key")
	server.Handle(mux, rr, "POST /nfc", "Tap entry point", tapGate(http.HandlerFunc(tapHandler.Tap)))
	server.Handle(mux, rr, "GET /nfc", "Tap entry point (tag readers use GET)", tapGate(http.HandlerFunc(tapHandler.Tap)))
	server.Handle(mux, rr, "POST /nfc-webhook", "Tap entry point (alias)", tapGate(http.HandlerFunc(tapHandler.Tap)))
	server.Handle(mux, rr, "GET /nfc-webhook", "Tap entry point (alias)", tapGate(http.HandlerFunc(tapHandler.Tap)))

	// Registry surface, gated uniformly: the list dump exposes the same
	// data provisioning writes.
	registryGate := webhookGuard.RequireQuery("key")
	server.Handle(mux, rr, "POST /event/create", "Register an event (JSON)", registryGate(http.HandlerFunc(eventHandler.Create)))
	server.Handle(mux, rr, "GET /event/list", "Dump the event registry", registryGate(http.HandlerFunc(eventHandler.List)))

	portalGate := portalGuard.RequireQuery("portal_key")
	server.Handle(mux, rr, "GET /portal", "Event registration form", portalGate(http.HandlerFunc(portalHandler.Form)))
	server.Handle(mux, rr, "POST /portal/create", "Event registration submit", portalGate(http.HandlerFunc(portalHandler.Create)))

	server.Handle(mux, rr, "GET /health/clickup", "Verify ClickUp token", http.HandlerFunc(clickupHandler.Health))
	server.Handle(mux, rr, "GET /clickup/fields", "List custom fields of the configured list", registryGate(http.HandlerFunc(clickupHandler.Fields)))
	server.Handle(mux, rr, "GET /clickup/task/{taskId}", "Inspect one task", registryGate(http.HandlerFunc(clickupHandler.Task)))

	server.RegisterAdminUI(mux, rr, stats)

	return httpmw.Chain(mux,
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
		httpmw.WithAccessLog(opts.Logger),
	), nil
}

func buildStrategy(cfg *config.Config, repo event.Repo, client *clickup.Client) (tap.Strategy, error) {
	switch cfg.TapMode {
	case config.ModeRegistry:
		return tap.NewRegistryStrategy(repo, client, cfg.TapCountFieldID, cfg.StatusFieldID), nil
	case config.ModeMaster:
		return tap.NewMasterStrategy(cfg.MasterTaskID, client, cfg.TapCountFieldID, cfg.StatusFieldID), nil
	case config.ModeCreate:
		return tap.NewCreateStrategy(cfg.ClickUpListID, client), nil
	default:
		return nil, fmt.Errorf("unknown tap mode %q", cfg.TapMode)
	}
}
