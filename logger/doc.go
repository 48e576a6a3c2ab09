// Package logger provides structured logging for httpfacade clients using
// zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields. Backends obtain their
// logger through Get so an application can register its own.
//
// # Configuration
//
//	logger:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("nethttp")
//	log.Debug("request completed", logger.Fields(logger.FieldStatus, 200))
package logger
