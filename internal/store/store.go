// Package store implements Ember's native log-structured storage engine:
// an in-memory index over an append-only sequence of segment files,
// rebuilt by replaying every segment in order on open.
package store

import (
	"path/filepath"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/sagararora86/ember/internal/record"
	"github.com/sagararora86/ember/pkg/kvserrors"
)

const segmentPrefix = "segment"

// Store is Ember's native storage engine. It satisfies
// github.com/sagararora86/ember/internal/engine.Engine.
type Store struct {
	dir    string
	log    *zap.SugaredLogger
	mu     sync.Mutex // serializes Set/Remove against the active segment and index
	ix     *index
	segs   map[int]*segment // all segments, keyed by index, including the active one
	active *segment
	clock  int64 // monotonically increasing logical timestamp for index tie-breaks
}

// Open replays every segment already on disk under dir (oldest index
// first) to rebuild the in-memory index, then opens a fresh active
// segment for new writes. dir must already exist.
func Open(dir string, log *zap.SugaredLogger) (*Store, error) {
	paths, err := discoverSegments(dir, segmentPrefix)
	if err != nil {
		return nil, err
	}

	s := &Store{
		dir:  dir,
		log:  log,
		ix:   newIndex(),
		segs: make(map[int]*segment, len(paths)+1),
	}

	maxIndex := -1
	for i, path := range paths {
		seg, err := openReadOnlySegment(path, i)
		if err != nil {
			s.closeAll()
			return nil, err
		}
		s.segs[i] = seg
		if i > maxIndex {
			maxIndex = i
		}
		if err := s.replaySegment(seg); err != nil {
			s.closeAll()
			return nil, err
		}
	}

	activeIndex := maxIndex + 1
	activePath := filepath.Join(dir, segmentFileName(segmentPrefix, activeIndex))
	active, err := openWritableSegment(activePath, activeIndex)
	if err != nil {
		s.closeAll()
		return nil, err
	}
	s.segs[activeIndex] = active
	s.active = active

	s.log.Infow("store opened", "dir", dir, "segments", len(paths), "active_segment", activeIndex)
	return s, nil
}

// replaySegment folds one segment's records into the index, applying the
// tie-break rule (later enumeration wins ties) via upsertIfNewer.
func (s *Store) replaySegment(seg *segment) error {
	return seg.replay(func(offset int64, r record.Record) error {
		s.clock++
		switch r.Op {
		case record.OpSet:
			s.ix.upsertIfNewer(r.Key, IndexEntry{SegmentIndex: seg.index, Offset: offset, Timestamp: s.clock})
		case record.OpRemove:
			// A later Remove must be able to erase an earlier Set even
			// though delete() is unconditional; upsertIfNewer's timestamp
			// comparison only protects Set-over-Set ordering, so removes
			// during replay are applied in strict enumeration order and
			// always win against whatever is currently indexed.
			if e, ok := s.ix.get(r.Key); !ok || s.clock >= e.Timestamp {
				s.ix.delete(r.Key)
			}
		}
		return nil
	})
}

// Set assigns value to key, appending a Set record to the active segment.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	offset, err := s.active.append(record.Set(key, value))
	if err != nil {
		return err
	}
	s.clock++
	s.ix.upsert(key, IndexEntry{SegmentIndex: s.active.index, Offset: offset, Timestamp: s.clock})
	return nil
}

// Get returns the current value for key. found is false for a never-set
// (or since-removed) key; that is not an error.
func (s *Store) Get(key string) (value string, found bool, err error) {
	entry, ok := s.ix.get(key)
	if !ok {
		return "", false, nil
	}

	s.mu.Lock()
	seg, ok := s.segs[entry.SegmentIndex]
	s.mu.Unlock()
	if !ok {
		return "", false, kvserrors.Protocol("index points at unknown segment").WithKey(key).WithLocation(entry.SegmentIndex, entry.Offset)
	}

	r, err := seg.readRecord(entry.Offset)
	if err != nil {
		return "", false, err
	}
	if r.Op != record.OpSet {
		return "", false, kvserrors.Protocol("index points at non-set record").WithKey(key).WithLocation(entry.SegmentIndex, entry.Offset)
	}
	return r.Value, true, nil
}

// Remove deletes key, appending a Remove record to the active segment. It
// returns a KindKeyNotFound error if key is absent (unlike Get, which
// reports absence with found == false).
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ix.get(key); !ok {
		return kvserrors.KeyNotFound.WithKey(key)
	}

	if _, err := s.active.append(record.Remove(key)); err != nil {
		return err
	}
	s.clock++
	s.ix.delete(key)
	return nil
}

// Close flushes and closes every segment handle the store holds,
// combining any errors via multierr so a failure to close one segment
// doesn't suppress reporting on the rest.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeAll()
}

func (s *Store) closeAll() error {
	var err error
	for _, seg := range s.segs {
		err = multierr.Append(err, seg.close())
	}
	return err
}
