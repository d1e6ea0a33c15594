// Package plugins links the built-in decoders, cache backends and metrics
// sinks into the binary and lists them.
package plugins

import (
	"github.com/kilianp07/availreport/core/cache"
	"github.com/kilianp07/availreport/core/document"
	coremetrics "github.com/kilianp07/availreport/core/metrics"

	_ "github.com/kilianp07/availreport/infra/cache"
	_ "github.com/kilianp07/availreport/infra/document"
	_ "github.com/kilianp07/availreport/infra/metrics"
)

// Kind names a family of pluggable modules.
type Kind string

const (
	TableDecoders    Kind = "table_decoders"
	DocumentDecoders Kind = "document_decoders"
	CacheBackends    Kind = "cache_backends"
	MetricsSinks     Kind = "metrics_sinks"
)

// Kinds lists the families in display order.
var Kinds = []Kind{TableDecoders, DocumentDecoders, CacheBackends, MetricsSinks}

// Available returns the registered type names of every family.
func Available() map[Kind][]string {
	return map[Kind][]string{
		TableDecoders:    document.TableDecoders(),
		DocumentDecoders: document.DocumentDecoders(),
		CacheBackends:    cache.Backends(),
		MetricsSinks:     coremetrics.Sinks(),
	}
}
