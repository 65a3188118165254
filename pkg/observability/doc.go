/*
Package observability turns generator lifecycle hooks into Prometheus metrics.

	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return err
	}
	gen, err := rulegen.New(rulegen.WithLifecycleHooks(metrics.Hooks()))

Symbol labels come from rule packs, so their cardinality is bounded by the loaded grammar.
*/
package observability
