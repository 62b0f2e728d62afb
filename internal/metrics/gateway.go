// Package metrics emits gateway counters through the gofulmen telemetry
// system. All helpers are no-ops until observability.InitMetrics has run,
// so CLI commands and tests pay nothing.
package metrics

import (
	"strconv"
	"time"

	"github.com/keefcreative/dwb-mcp-server-trello/internal/observability"
)

// Metric names following Prometheus conventions.
const (
	APIRequestsTotalName     = "trello_api_requests_total"
	ThrottleRetriesTotalName = "trello_throttle_retries_total"
	ToolCallsTotalName       = "tool_calls_total"
	AdmissionWaitName        = "admission_wait_seconds"
)

// RecordAPIRequest records one Trello API attempt with its response status.
func RecordAPIRequest(method string, status int) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			APIRequestsTotalName,
			1,
			map[string]string{
				"method": method,
				"status": strconv.Itoa(status),
			},
		)
	}
}

// RecordAdmissionWait records one pause taken while waiting for rate
// window headroom.
func RecordAdmissionWait(d time.Duration) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Histogram(
			AdmissionWaitName,
			d,
			nil,
		)
	}
}

// RecordThrottleRetry records one absorbed 429 retry.
func RecordThrottleRetry() {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			ThrottleRetriesTotalName,
			1,
			nil,
		)
	}
}

// RecordToolCall records one MCP tool invocation.
func RecordToolCall(tool string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}

	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			ToolCallsTotalName,
			1,
			map[string]string{
				"tool":   tool,
				"status": status,
			},
		)
	}
}
