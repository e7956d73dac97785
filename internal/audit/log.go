package audit

import (
	"context"
	"log/slog"
)

// LogRecorder writes audit entries to the structured logger. It backs
// dev mode, where no database is configured.
type LogRecorder struct {
	logger *slog.Logger
}

// NewLogRecorder builds a logging audit recorder.
func NewLogRecorder(logger *slog.Logger) *LogRecorder {
	return &LogRecorder{logger: logger}
}

// Record logs the entry.
func (r *LogRecorder) Record(_ context.Context, entry Entry) error {
	if r == nil || r.logger == nil {
		return nil
	}
	r.logger.Info("audit entry",
		"phone", entry.Phone,
		"action", entry.Action,
		"payload", entry.Payload,
		"ip", entry.IPAddress,
	)
	return nil
}
