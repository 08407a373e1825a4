// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance supporting development (console)
// and production (json) encodings, shared by the CLI commands and the
// service mode.
//
// # Request correlation
//
// In service mode every request gets a request_id from the middleware.
// WithRequestID extracts it from the Fiber context and attaches it to the
// log entry so all logs for one request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("sync started")
//
//	// In a request handler:
//	l := logger.WithRequestID(log, c)
//	l.Error("handler failed", zap.Error(err))
package logger
