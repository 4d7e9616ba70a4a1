// Package tabular provides the two-dimensional value persisted by tabular
// results and the registry of on-disk formats it can be written in.
//
// Each format is registered as a codec pair: a ReadFunc that decodes a Frame
// from a stream and a WriteFunc that encodes one. A registry only exposes
// formats that have both halves, so the set of readable formats always equals
// the set of writable ones.
//
//	reg := tabular.DefaultRegistry()
//	write, _ := reg.Writer("csv")
//	err := write(f, frame, tabular.Options{})
package tabular
