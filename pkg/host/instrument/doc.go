// Package instrument decorates any dom.Host with structured logging,
// Prometheus metrics and OpenTelemetry spans.
//
// Every host and node operation is counted, timed and traced:
//
//	doc := memhost.New()
//	host := instrument.Wrap(doc,
//	    instrument.WithRegistry(reg),
//	    instrument.WithLogger(logger),
//	)
//	h, _ := dom.Query(host, "#app")
//
// Metrics collected (default namespace "mdom"):
//   - mdom_host_operations_total: operations by op and status
//   - mdom_host_operation_duration_seconds: operation latency by op
//   - mdom_host_listener_calls_total: listener invocations by event
//
// Nodes returned by the decorator wrap the inner host's nodes. Use Unwrap
// to recover the inner node, for example to dispatch memhost events.
package instrument
