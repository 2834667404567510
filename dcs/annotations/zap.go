package annotations

import (
	"sort"

	"go.uber.org/zap"
)

// ZapHandler forwards events to a structured zap logger. Error events are
// logged at error level, everything else at debug.
func ZapHandler(logger *zap.Logger) Handler {
	return func(event Event) {
		fields := make([]zap.Field, 0, len(event.Data)+2)
		fields = append(fields, zap.Duration("latency", event.Latency))

		keys := make([]string, 0, len(event.Data))
		for k := range event.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fields = append(fields, zap.Any(k, event.Data[k]))
		}

		if event.Name == ErrorGrounding {
			logger.Error(event.Name, fields...)
			return
		}
		if success, ok := event.Data["success"].(bool); ok && !success {
			logger.Warn(event.Name, fields...)
			return
		}
		logger.Debug(event.Name, fields...)
	}
}
