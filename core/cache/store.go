// Package cache memoizes parsed documents by content so unchanged uploads
// are not decoded twice.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/kilianp07/availreport/core/factory"
)

// ErrMiss is returned by Get when no value is stored under the key.
var ErrMiss = errors.New("cache miss")

// Store persists opaque values by key. Implementations are safe for
// concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Key derives the cache key of a document from its kind, a fingerprint of
// the options it is parsed with and its raw content.
func Key(kind, fingerprint string, raw []byte) string {
	h := sha256.New()
	h.Write([]byte(kind))
	h.Write([]byte{0})
	h.Write([]byte(fingerprint))
	h.Write([]byte{0})
	h.Write(raw)
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}

// Nop stores nothing.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, error) { return nil, ErrMiss }
func (Nop) Put(context.Context, string, []byte) error   { return nil }
func (Nop) Close() error                                { return nil }

var storeRegistry = factory.NewRegistry[Store]()

func init() {
	_ = RegisterStore("none", func(map[string]any) (Store, error) { return Nop{}, nil })
	_ = RegisterStore("memory", func(conf map[string]any) (Store, error) {
		var c struct {
			MaxEntries int `json:"max_entries"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewMemoryStore(c.MaxEntries), nil
	})
}

// RegisterStore adds a store factory identified by backend name.
func RegisterStore(name string, f factory.Factory[Store]) error {
	return storeRegistry.Register(name, f)
}

// NewStore creates the store described by cfg. An empty type disables
// caching.
func NewStore(cfg factory.ModuleConfig) (Store, error) {
	if cfg.Type == "" {
		return Nop{}, nil
	}
	return storeRegistry.Create(cfg)
}

// Backends lists the registered backend names.
func Backends() []string { return storeRegistry.Names() }
