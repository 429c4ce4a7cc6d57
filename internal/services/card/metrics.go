package card

import (
	"time"

	"cardkeeper/internal/logger"
)

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordOperationDuration(Kind, time.Duration) {}
func (n *NoopMetricsCollector) RecordOperationResult(Kind, Phase)           {}

// LogMetricsCollector writes operation metrics to the debug log.
type LogMetricsCollector struct{}

func (l *LogMetricsCollector) RecordOperationDuration(op Kind, duration time.Duration) {
	logger.Debug("card operation finished",
		logger.LoggerOptions{Key: "operation", Data: op},
		logger.LoggerOptions{Key: "duration", Data: duration.String()},
	)
}

func (l *LogMetricsCollector) RecordOperationResult(op Kind, phase Phase) {
	logger.Debug("card operation transition",
		logger.LoggerOptions{Key: "operation", Data: op},
		logger.LoggerOptions{Key: "phase", Data: phase},
	)
}
