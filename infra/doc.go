// Package infra contains technical adapters: export decoders, cache
// backends, metrics exporters and logging. These packages depend only on
// the interfaces defined in the core packages.
package infra
