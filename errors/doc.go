// Package errors provides the typed error taxonomy shared by the result
// variants. Every failure surfaced by a Read, Write or Exists call is an
// *AppError carrying a machine-readable ErrorCode, so an execution engine can
// attach the specific kind to the failed task run.
package errors
