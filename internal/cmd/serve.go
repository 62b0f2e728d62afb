package cmd

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/fulmenhq/gofulmen/signals"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/keefcreative/dwb-mcp-server-trello/internal/config"
	"github.com/keefcreative/dwb-mcp-server-trello/internal/core/engine"
	errwrap "github.com/keefcreative/dwb-mcp-server-trello/internal/errors"
	"github.com/keefcreative/dwb-mcp-server-trello/internal/mcp"
	"github.com/keefcreative/dwb-mcp-server-trello/internal/metrics"
	"github.com/keefcreative/dwb-mcp-server-trello/internal/observability"
	"github.com/keefcreative/dwb-mcp-server-trello/internal/server"
	"github.com/keefcreative/dwb-mcp-server-trello/internal/server/handlers"
	"github.com/keefcreative/dwb-mcp-server-trello/internal/templates"
	"github.com/keefcreative/dwb-mcp-server-trello/internal/tools"
	"github.com/keefcreative/dwb-mcp-server-trello/internal/trello"
)

// credentialsHealthChecker reports unhealthy until Trello credentials are set.
type credentialsHealthChecker struct {
	cfg *config.Config
}

func (c credentialsHealthChecker) CheckHealth(ctx context.Context) error {
	if c.cfg.Trello.APIKey == "" || c.cfg.Trello.Token == "" {
		return errwrap.NewServiceUnavailableError("trello credentials not configured")
	}
	return nil
}

// limiterHealthChecker reports the admission controller's window occupancy.
// The limiter is healthy as long as neither window exceeds its capacity.
type limiterHealthChecker struct {
	limiter *engine.RateLimiter
	cfg     *config.Config
}

func (l limiterHealthChecker) CheckHealth(ctx context.Context) error {
	key, token := l.limiter.Snapshot()
	if key > l.cfg.RateLimit.KeyCapacity || token > l.cfg.RateLimit.TokenCapacity {
		return errwrap.NewInternalError("rate limiter window overflow")
	}
	return nil
}

// telemetryHealthChecker ensures telemetry system and exporter are available
type telemetryHealthChecker struct{}

func (telemetryHealthChecker) CheckHealth(ctx context.Context) error {
	if observability.TelemetrySystem == nil || observability.PrometheusExporter == nil {
		return errwrap.NewInternalError("telemetry system not initialized")
	}
	return nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdin/stdout",
	Long: `Start the MCP server. The protocol stream runs over stdin/stdout, so
all logs go to stderr. An optional HTTP sidecar exposes health probes,
version info, and Prometheus metrics.

Signal Handling:
  • Ctrl+C (SIGINT) or SIGTERM: Graceful shutdown
  • Ctrl+C twice within 2s: Force quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		identity := GetAppIdentity()
		observability.InitServerLogger(identity.BinaryName, cfg.Logging.Level)
		logger := observability.ServerLogger

		if cfg.Metrics.Enabled {
			if err := observability.InitMetrics(identity.BinaryName, cfg.Metrics.Port); err != nil {
				logger.Error("Failed to initialize metrics", zap.Error(err))
				return errwrap.Wrap(cmd.Context(), "INTERNAL_ERROR", err, "metrics initialization failed")
			}
		}

		logger.Info("Initializing MCP server",
			zap.String("service", identity.BinaryName),
			zap.String("version", versionInfo.Version),
			zap.Int("key_capacity", cfg.RateLimit.KeyCapacity),
			zap.Int("token_capacity", cfg.RateLimit.TokenCapacity),
			zap.Duration("retry_delay", cfg.Retry.Delay))

		// Admission controller and executor shared by every tool call.
		limiter := engine.NewRateLimiter(
			engine.WindowConfig{Capacity: cfg.RateLimit.KeyCapacity, Interval: cfg.RateLimit.KeyInterval},
			engine.WindowConfig{Capacity: cfg.RateLimit.TokenCapacity, Interval: cfg.RateLimit.TokenInterval},
		)
		limiter.OnWait = metrics.RecordAdmissionWait
		executor := engine.NewExecutor(limiter)
		executor.RetryDelay = cfg.Retry.Delay
		executor.MaxAttempts = cfg.Retry.MaxAttempts
		executor.Logger = logger
		executor.OnThrottle = func(int) { metrics.RecordThrottleRetry() }

		client := trello.NewClient(cfg.Trello.APIKey, cfg.Trello.Token, executor)
		if cfg.Trello.BaseURL != "" {
			client.BaseURL = cfg.Trello.BaseURL
		}
		client.Timeout = cfg.Trello.Timeout

		tpls, err := templates.LoadRegistry(cfg.Templates.Dir)
		if err != nil {
			return errwrap.Wrap(cmd.Context(), "CONFIG_INVALID", err, "failed to load board templates")
		}

		registry := tools.NewRegistry(client, tpls, cfg.Trello.BoardID)

		mcpServer := mcp.NewServer(os.Stdin, os.Stdout, registry, mcp.ServerInfo{
			Name:    identity.BinaryName,
			Version: versionInfo.Version,
		}, logger)

		// Optional HTTP sidecar for health and metrics.
		var httpSrv *server.Server
		if cfg.Server.Enabled {
			handlers.InitHealthManager(versionInfo.Version)
			handlers.SetVersionInfo(versionInfo.Version, versionInfo.Commit, versionInfo.BuildDate)
			handlers.SetAppIdentity(identity)

			hm := handlers.GetHealthManager()
			hm.RegisterChecker("trello_credentials", credentialsHealthChecker{cfg: cfg})
			hm.RegisterChecker("rate_limiter", limiterHealthChecker{limiter: limiter, cfg: cfg})
			if cfg.Metrics.Enabled {
				hm.RegisterChecker("telemetry", telemetryHealthChecker{})
			}

			httpSrv = server.New(cfg.Server)
		}

		shutdownTimeout := cfg.Server.ShutdownTimeout
		if shutdownTimeout == 0 {
			shutdownTimeout = 10 * time.Second
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Shutdown handlers run LIFO: stop the listeners first, flush last.
		signals.OnShutdown(func(ctx context.Context) error {
			logger.Info("Flushing logger...")
			if err := logger.Sync(); err != nil {
				// Sync errors are often benign (stderr already closed)
				logger.Warn("Logger sync returned error (may be benign)", zap.Error(err))
			}
			return nil
		})

		signals.OnShutdown(func(sctx context.Context) error {
			cancel()
			if httpSrv == nil {
				return nil
			}
			logger.Info("Shutting down HTTP sidecar...")
			shutdownCtx, scancel := context.WithTimeout(sctx, shutdownTimeout)
			defer scancel()
			if err := httpSrv.Shutdown(shutdownCtx); err != nil {
				return errwrap.Wrap(sctx, "INTERNAL_ERROR", err, "sidecar shutdown failed")
			}
			return nil
		})

		signals.OnReload(func(rctx context.Context) error {
			logger.Info("Received SIGHUP: attempting config reload")
			if err := viper.ReadInConfig(); err != nil {
				if _, ok := err.(viper.ConfigFileNotFoundError); ok {
					logger.Info("No config file found - using defaults and environment variables")
					return nil
				}
				logger.Error("Failed to reload config file",
					zap.String("file", viper.ConfigFileUsed()),
					zap.Error(err))
				return errwrap.Wrap(rctx, "CONFIG_INVALID", err, "config reload failed")
			}
			logger.Info("Configuration reloaded successfully",
				zap.String("file", viper.ConfigFileUsed()))
			return nil
		})

		if err := signals.EnableDoubleTap(signals.DoubleTapConfig{
			Window:  2 * time.Second,
			Message: "Press Ctrl+C again within 2 seconds to force quit",
		}); err != nil {
			logger.Warn("Failed to enable double-tap force quit", zap.Error(err))
		}

		errChan := make(chan error, 2)

		if httpSrv != nil {
			go func() {
				if err := httpSrv.Start(); err != nil && err != http.ErrServerClosed {
					errChan <- err
				}
			}()
		}

		go func() {
			if err := signals.Listen(ctx); err != nil && err != context.Canceled {
				logger.Error("Signal handler error", zap.Error(err))
			}
		}()

		go func() {
			logger.Info("MCP server listening on stdio")
			errChan <- mcpServer.Serve(ctx)
		}()

		if err := <-errChan; err != nil && err != context.Canceled {
			return errwrap.Wrap(ctx, "INTERNAL_ERROR", err, "server error")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("board", "", "default Trello board ID for tools that omit board_id")
	serveCmd.Flags().Bool("http", false, "enable the HTTP health/metrics sidecar")
	serveCmd.Flags().Int("http-port", 8080, "sidecar HTTP port")

	_ = viper.BindPFlag("trello.board_id", serveCmd.Flags().Lookup("board"))
	_ = viper.BindPFlag("server.enabled", serveCmd.Flags().Lookup("http"))
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("http-port"))
}
