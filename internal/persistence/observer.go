package persistence

import (
	"log/slog"
	"time"
)

// CallEvent records one adapter operation.
type CallEvent struct {
	Adapter string
	Op      string
	Latency time.Duration
	Err     error
}

// Observer receives adapter call events for logging.
type Observer interface {
	OnCall(event CallEvent)
}

// LogObserver writes adapter call events to a slog.Logger.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer logging through logger.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCall(event CallEvent) {
	attrs := []any{
		"adapter", event.Adapter,
		"op", event.Op,
		"latency_ms", event.Latency.Milliseconds(),
	}
	if event.Err != nil {
		o.logger.Error("adapter_call", append(attrs, "error", event.Err.Error())...)
		return
	}
	o.logger.Debug("adapter_call", attrs...)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnCall(CallEvent) {}
