package store

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/sagararora86/ember/internal/record"
	"github.com/sagararora86/ember/pkg/kvserrors"
)

// segment is one on-disk log file: an ordered, append-only sequence of
// command records. The active segment additionally holds a writer handle.
//
// writer and reader are distinct *os.File values opened on the same path:
// writer is opened O_APPEND and is never seeked, so readRecord's use of
// ReadAt on reader (a pread that never moves any file's cursor) can never
// perturb where the next append lands, even when reads and writes happen
// concurrently.
type segment struct {
	index  int
	path   string
	writer *os.File // nil for read-only segments discovered at open
	reader *os.File
	size   atomic.Int64 // bytes written so far; bounds readRecord's section reader
}

// openWritableSegment creates (or appends to, though callers always start
// active segments fresh) the segment file at path and opens both handles.
func openWritableSegment(path string, index int) (*segment, error) {
	writer, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, kvserrors.IO(err, "open segment for writing").WithLocation(index, 0)
	}
	reader, err := os.Open(path)
	if err != nil {
		writer.Close()
		return nil, kvserrors.IO(err, "open segment for reading").WithLocation(index, 0)
	}
	return &segment{index: index, path: path, writer: writer, reader: reader}, nil
}

// openReadOnlySegment opens a pre-existing segment discovered at store
// open for replay and subsequent random-access reads. It carries no
// writer: bytes before the write cursor of a closed-out segment are
// immutable, so no later append can ever target it.
func openReadOnlySegment(path string, index int) (*segment, error) {
	reader, err := os.Open(path)
	if err != nil {
		return nil, kvserrors.IO(err, "open segment for reading").WithLocation(index, 0)
	}
	info, err := reader.Stat()
	if err != nil {
		reader.Close()
		return nil, kvserrors.IO(err, "stat segment").WithLocation(index, 0)
	}
	seg := &segment{index: index, path: path, reader: reader}
	seg.size.Store(info.Size())
	return seg, nil
}

// append writes r to the segment and returns the byte offset it was
// written at. Not safe for concurrent use; the store serializes writers.
func (s *segment) append(r record.Record) (int64, error) {
	if s.writer == nil {
		return 0, kvserrors.Protocol("segment is not writable").WithLocation(s.index, s.size.Load())
	}
	offset := s.size.Load()

	var buf []byte
	buf, err := appendRecordJSON(buf, r)
	if err != nil {
		return 0, err
	}

	n, err := s.writer.Write(buf)
	if err != nil {
		return 0, kvserrors.IO(err, "append record").WithLocation(s.index, offset)
	}
	if err := s.writer.Sync(); err != nil {
		return 0, kvserrors.IO(err, "flush segment").WithLocation(s.index, offset)
	}

	s.size.Add(int64(n))
	return offset, nil
}

// readRecord decodes exactly one record starting at offset, using ReadAt
// (pread) so concurrent reads never race the writer's append position or
// each other's cursor. size is loaded atomically so a concurrent append
// racing this read never observes a torn value.
func (s *segment) readRecord(offset int64) (record.Record, error) {
	size := s.size.Load()
	if offset < 0 || offset >= size {
		return record.Record{}, kvserrors.Protocol("record offset out of range").WithLocation(s.index, offset)
	}
	sr := io.NewSectionReader(s.reader, offset, size-offset)
	dec := record.NewDecoder(sr)
	r, err := record.Decode(dec)
	if err != nil {
		return record.Record{}, kvserrors.Wrap(kvserrors.KindOf(err), err, "read record").WithLocation(s.index, offset)
	}
	return r, nil
}

// replay streams every record in the segment from the start, invoking fn
// with each record and the offset it began at. The offset is captured via
// dec.InputOffset() before each Decode call: InputOffset reports bytes
// already consumed, so the offset sits on the newline that ends the
// previous record; readRecord's decoder skips that newline.
func (s *segment) replay(fn func(offset int64, r record.Record) error) error {
	sr := io.NewSectionReader(s.reader, 0, s.size.Load())
	dec := record.NewDecoder(sr)
	for {
		offset := dec.InputOffset()
		r, err := record.Decode(dec)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(offset, r); err != nil {
			return err
		}
	}
}

func (s *segment) close() error {
	var firstErr error
	if s.writer != nil {
		if err := s.writer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := s.reader.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// appendRecordJSON encodes r as one JSON object with no trailing bytes
// beyond the newline json.Encoder.Encode appends, which is harmless: the
// decoder's streaming tokenizer skips insignificant whitespace between
// values the same way it would skip it within one value.
func appendRecordJSON(buf []byte, r record.Record) ([]byte, error) {
	w := &sliceWriter{buf: buf}
	if err := record.Encode(w, r); err != nil {
		return nil, err
	}
	return w.buf, nil
}

// sliceWriter is an io.Writer that appends to an in-memory buffer, used so
// append can build the full record in one allocation before issuing a
// single Write syscall.
type sliceWriter struct{ buf []byte }

func (w *sliceWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}
