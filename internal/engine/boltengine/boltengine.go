// Package boltengine adapts go.etcd.io/bbolt to the engine.Engine
// interface, giving Ember a second, alternate storage backend.
package boltengine

import (
	"path/filepath"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/sagararora86/ember/internal/engine"
	"github.com/sagararora86/ember/pkg/kvserrors"
)

// Name is the engine identifier used on --engine and in the sidecar file.
const Name = "bolt"

const dbFileName = "ember.bolt"

var bucketName = []byte("ember")

// Engine wraps a single bbolt database file holding one bucket.
type Engine struct {
	db  *bbolt.DB
	log *zap.SugaredLogger
}

var _ engine.Engine = (*Engine)(nil)

// Open opens (creating if absent) the bolt database under dir.
func Open(dir string, log *zap.SugaredLogger) (*Engine, error) {
	path := filepath.Join(dir, dbFileName)
	db, err := bbolt.Open(path, 0644, nil)
	if err != nil {
		return nil, kvserrors.IO(err, "open bolt database")
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, kvserrors.IO(err, "create bolt bucket")
	}

	log.Infow("bolt engine opened", "path", path)
	return &Engine{db: db, log: log}, nil
}

// Set assigns value to key.
func (e *Engine) Set(key, value string) error {
	err := e.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return kvserrors.IO(err, "bolt set").WithKey(key)
	}
	return nil
}

// Get returns the current value for key. found is false for a never-set
// key; that is not an error.
func (e *Engine) Get(key string) (value string, found bool, err error) {
	var raw []byte
	err = e.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketName).Get([]byte(key))
		if v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return "", false, kvserrors.IO(err, "bolt get").WithKey(key)
	}
	if raw == nil {
		return "", false, nil
	}
	return string(raw), true, nil
}

// Remove deletes key, returning a KindKeyNotFound error if it is absent.
func (e *Engine) Remove(key string) error {
	err := e.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b.Get([]byte(key)) == nil {
			return kvserrors.KeyNotFound.WithKey(key)
		}
		return b.Delete([]byte(key))
	})
	return err
}

// Close closes the underlying database.
func (e *Engine) Close() error {
	if err := e.db.Close(); err != nil {
		return kvserrors.IO(err, "close bolt database")
	}
	return nil
}
