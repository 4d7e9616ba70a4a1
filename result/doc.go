// Package result defines the Result contract used to persist and retrieve
// the output of a unit of work, together with its built-in variants:
//
//   - Constant: a fixed in-memory value that is never persisted
//   - Inline: a value whose location is its own JSON encoding
//   - Secret: a value resolved by name from the execution context or a provider
//   - Local: a CBOR payload stored under a root directory on local disk
//   - Tabular: a tabular.Frame stored on local disk in a registered file format
//
// Results are immutable. Write and Read never modify the receiver; they
// return a new Result carrying the materialized value and location.
//
//	res, _ := result.NewLocal(result.WithLocation("{flow}/{task}.bin"))
//	out, err := res.Write(ctx, value, map[string]any{"flow": "etl", "task": "load"})
//	// out.Location() == "etl/load.bin"
package result
