package result

import (
	"fmt"

	"github.com/kbukum/resultkit/tabular"
)

// normalize rewrites decoded payloads onto plain Go types: integers become
// int64, json.Number becomes int64 or float64 and maps get string keys.
func normalize(v any) any {
	switch x := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case map[string]any:
		for k, val := range x {
			x[k] = normalize(val)
		}
		return x
	case []any:
		for i, val := range x {
			x[i] = normalize(val)
		}
		return x
	}
	return tabular.Normalize(v)
}
