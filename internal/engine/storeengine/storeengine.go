// Package storeengine adapts internal/store.Store to the engine.Engine
// interface so it can be selected as Ember's native ("kvs") backend.
package storeengine

import (
	"go.uber.org/zap"

	"github.com/sagararora86/ember/internal/engine"
	"github.com/sagararora86/ember/internal/store"
)

// Name is the engine identifier used on --engine and in the sidecar file.
const Name = "kvs"

// Engine wraps a *store.Store.
type Engine struct {
	*store.Store
}

var _ engine.Engine = (*Engine)(nil)

// Open replays dir and returns a ready Engine.
func Open(dir string, log *zap.SugaredLogger) (*Engine, error) {
	s, err := store.Open(dir, log)
	if err != nil {
		return nil, err
	}
	return &Engine{Store: s}, nil
}
