// Package daemon wires the contact service together and runs it.
//
// Startup order is limiter, janitor, then HTTP API. Shutdown runs in reverse:
// the API drains in-flight requests first, then the janitor stops.
package daemon

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/aeternum/contact/cmd/contactd/config"
	"github.com/aeternum/contact/internal/api"
	"github.com/aeternum/contact/internal/contact"
	"github.com/aeternum/contact/internal/logging"
	"github.com/aeternum/contact/internal/netutil"
	"github.com/aeternum/contact/internal/ratelimit"
	"github.com/aeternum/contact/internal/version"
)

// buildAPIConfig converts daemon config to API server config
func buildAPIConfig(limiter *ratelimit.SlidingWindow, stats *ratelimit.Stats) *api.Config {
	apiConfig := api.DefaultConfig()
	apiConfig.BindAddr = config.Global.APIAddr
	apiConfig.BindPort = config.Global.APIPort
	apiConfig.Version = version.ContactdVersion
	apiConfig.Limiter = limiter
	apiConfig.Stats = stats
	apiConfig.Notifier = contact.LogNotifier{}
	return apiConfig
}

// Run starts the daemon and blocks until SIGINT or SIGTERM.
func Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return RunContext(ctx)
}

// RunContext starts the daemon and blocks until ctx is done, then shuts
// down gracefully within the configured shutdown timeout.
func RunContext(ctx context.Context) error {
	logging.Info("Starting contactd v%s", version.ContactdVersion)
	if !config.Global.IsExplicitlySet(config.APIAddrField) {
		logging.Info("No API address given, using default %s", config.DefaultAPI)
	}
	logging.Info("Rate limit: %d requests per %s per client", ratelimit.DefaultLimit, ratelimit.DefaultWindow)

	// net/http reports connection level errors through the standard logger
	logging.RedirectStandardLog(logging.NewLevelWriter("WARN", "http"))

	limiter := ratelimit.NewDefault()
	stats := &ratelimit.Stats{}

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	janitorDone := limiter.StartJanitor(janitorCtx, config.Global.SweepInterval)

	apiConfig := buildAPIConfig(limiter, stats)
	if err := apiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid API config: %w", err)
	}

	apiServer := api.NewServer(apiConfig)
	if err := apiServer.Start(); err != nil {
		if netutil.IsAddressInUseError(err) {
			logging.Error("TIP: %s:%d is already in use, choose another address with --api", config.Global.APIAddr, config.Global.APIPort)
		}
		return fmt.Errorf("failed to start API server: %w", err)
	}

	logging.Success("contactd started successfully")
	logging.Info("  - HTTP API: %s:%d", config.Global.APIAddr, config.Global.APIPort)
	logging.Info("  - Janitor sweep interval: %s", config.Global.SweepInterval)
	logging.Info("Daemon running... Press Ctrl+C to shutdown")

	<-ctx.Done()

	logging.Info("Initiating graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Global.ShutdownTimeout)
	defer cancel()

	var shutdownErr error
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logging.Error("Error shutting down API server: %v", err)
		shutdownErr = fmt.Errorf("shutdown API server: %w", err)
	}

	stopJanitor()
	<-janitorDone

	snap := stats.Snapshot()
	logging.Info("Served %d admitted and %d throttled submissions", snap.Allowed, snap.Denied)
	logging.Success("contactd shutdown completed")
	return shutdownErr
}
