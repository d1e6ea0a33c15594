// Package metrics defines the sink interface used to observe report
// generation. Sinks are built by type name through the factory registry and
// combined with NewMultiSink when several are configured.
package metrics
