package telemetry

import (
	"context"

	"github.com/petasbytes/orpheus/internal/metrics"
)

// EmitQueryFeatures records shape features of a raw query without ever
// logging the query text itself.
func EmitQueryFeatures(ctx context.Context, query string) {
	if !ObserveEnabled() {
		return
	}
	queryID, _ := QueryIDFromContext(ctx)
	f := metrics.CountFeatures(query)
	Emit("query_features", map[string]any{
		"query_id":         queryID,
		"features_version": "1",
		"query": map[string]any{
			"bytes": f.Bytes,
			"runes": f.Runes,
			"words": f.Words,
			"lines": f.Lines,
		},
	})
}
