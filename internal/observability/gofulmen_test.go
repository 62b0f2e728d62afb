package observability_test

import (
	"testing"

	"go.uber.org/zap"

	"github.com/keefcreative/dwb-mcp-server-trello/internal/observability"
)

func TestCLILoggerInitialization(t *testing.T) {
	observability.InitCLILogger("test-service", false)

	if observability.CLILogger == nil {
		t.Fatal("CLI logger should not be nil after initialization")
	}

	observability.CLILogger.Info("Test CLI log message",
		zap.String("test", "value"))
}

func TestServerLoggerInitialization(t *testing.T) {
	observability.InitServerLogger("test-service", "info")

	if observability.ServerLogger == nil {
		t.Fatal("Server logger should not be nil after initialization")
	}

	observability.ServerLogger.Info("Test structured log message",
		zap.String("component", "test"),
		zap.Int("request_id", 123))
}

func TestVerboseCLILogger(t *testing.T) {
	observability.InitCLILogger("verbose-test", true)

	if observability.CLILogger == nil {
		t.Fatal("CLI logger should not be nil after initialization")
	}

	observability.CLILogger.Debug("Debug message",
		zap.String("mode", "verbose"))
}
