// Package logger provides structured logging for resultkit using zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("result.local")
//	log.Debug("starting to write result", logger.Fields(logger.FieldLocation, "42.txt"))
package logger
