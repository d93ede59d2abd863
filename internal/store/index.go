package store

import "sync"

// IndexEntry locates the most recent Set record for a key: which segment it
// lives in, its byte offset within that segment, and the logical timestamp
// used to resolve conflicts between segments during replay.
type IndexEntry struct {
	SegmentIndex int
	Offset       int64
	Timestamp    int64
}

// index is the in-memory key -> location map. A key is present in the
// store iff it has an entry here. Guarded by mu so that Set/Remove and
// Get observe a consistent view, per the store's concurrency contract:
// after a mutation returns, any later Get sees it.
type index struct {
	mu      sync.RWMutex
	entries map[string]IndexEntry
}

func newIndex() *index {
	return &index{entries: make(map[string]IndexEntry, 1024)}
}

func (ix *index) get(key string) (IndexEntry, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	e, ok := ix.entries[key]
	return e, ok
}

func (ix *index) upsert(key string, e IndexEntry) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.entries[key] = e
}

func (ix *index) delete(key string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	delete(ix.entries, key)
}

// upsertIfNewer applies e only if no entry exists for key yet, or the
// existing entry has a strictly smaller timestamp. Ties are broken in
// favor of e, the record encountered later in enumeration order — this is
// the replay tie-break rule.
func (ix *index) upsertIfNewer(key string, e IndexEntry) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	existing, ok := ix.entries[key]
	if !ok || e.Timestamp >= existing.Timestamp {
		ix.entries[key] = e
	}
}
