// Package ember is Ember's embeddable library facade: open a data
// directory with a chosen engine and get back a handle exposing Set, Get,
// and Remove directly, without going through the network server.
package ember

import (
	"github.com/sagararora86/ember/internal/engine"
	"github.com/sagararora86/ember/internal/engine/boltengine"
	"github.com/sagararora86/ember/internal/engine/storeengine"
	"github.com/sagararora86/ember/internal/sidecar"
	"github.com/sagararora86/ember/pkg/filesys"
	"github.com/sagararora86/ember/pkg/kvserrors"
	"github.com/sagararora86/ember/pkg/logging"
	"github.com/sagararora86/ember/pkg/options"
)

// Ember is a handle onto an open, engine-backed key-value store.
type Ember struct {
	eng engine.Engine
}

// Open creates dataDir if needed, checks (and records) engine lock-in via
// the sidecar file, and opens the requested engine over it.
func Open(opts ...options.OptionFunc) (*Ember, error) {
	o := options.NewDefaultOptions()
	for _, apply := range opts {
		apply(&o)
	}

	if err := filesys.CreateDir(o.DataDir, 0755, true); err != nil {
		return nil, kvserrors.IO(err, "create data directory")
	}
	if err := sidecar.Check(o.DataDir, o.Engine); err != nil {
		return nil, err
	}

	log := logging.Noop()

	var eng engine.Engine
	var err error
	switch o.Engine {
	case options.BoltEngine:
		eng, err = boltengine.Open(o.DataDir, log)
	default:
		eng, err = storeengine.Open(o.DataDir, log)
	}
	if err != nil {
		return nil, err
	}

	return &Ember{eng: eng}, nil
}

// Set assigns value to key.
func (e *Ember) Set(key, value string) error { return e.eng.Set(key, value) }

// Get returns the current value for key. found is false for a never-set
// key; that is not an error.
func (e *Ember) Get(key string) (value string, found bool, err error) { return e.eng.Get(key) }

// Remove deletes key, or returns a KindKeyNotFound error if it is absent.
func (e *Ember) Remove(key string) error { return e.eng.Remove(key) }

// Close releases every resource the underlying engine holds.
func (e *Ember) Close() error { return e.eng.Close() }
