// Package options provides functional-options configuration for Ember's
// store, engine selection, and network addressing.
package options

import "strings"

// Options controls where Ember stores its data, which engine backs it, and
// where its server listens.
type Options struct {
	// DataDir is the directory holding segment files (native engine) or the
	// bbolt data file (alternate engine), plus the engine lock-in sidecar.
	DataDir string `json:"dataDir"`

	// SegmentPrefix holds a filename prefix for native-engine segment files.
	// The native engine does not read it: it always names its segments with
	// the prefix "segment".
	SegmentPrefix string `json:"segmentPrefix"`

	// Engine selects which engine.Engine implementation backs the store:
	// options.DefaultEngine ("kvs") or options.BoltEngine ("bolt").
	Engine string `json:"engine"`

	// Addr holds a host:port address. ember.Open does not use it, and the
	// server and client binaries take their address from --addr instead.
	Addr string `json:"addr"`
}

// OptionFunc modifies Options in place.
type OptionFunc func(*Options)

// WithDefaultOptions resets every field to Ember's baseline configuration.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		*o = NewDefaultOptions()
	}
}

// WithDataDir sets the base directory where Ember stores its files.
func WithDataDir(directory string) OptionFunc {
	return func(o *Options) {
		directory = strings.TrimSpace(directory)
		if directory != "" {
			o.DataDir = directory
		}
	}
}

// WithSegmentPrefix sets Options.SegmentPrefix, which the native engine
// does not read.
func WithSegmentPrefix(prefix string) OptionFunc {
	return func(o *Options) {
		prefix = strings.TrimSpace(prefix)
		if prefix != "" {
			o.SegmentPrefix = prefix
		}
	}
}

// WithEngine selects which engine backs the store.
func WithEngine(engine string) OptionFunc {
	return func(o *Options) {
		engine = strings.TrimSpace(engine)
		if engine != "" {
			o.Engine = engine
		}
	}
}

// WithAddr sets Options.Addr, which ember.Open does not use.
func WithAddr(addr string) OptionFunc {
	return func(o *Options) {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			o.Addr = addr
		}
	}
}
