package fai

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"faidx-core/bases"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/exp/mmap"
)

// Store serves logical-coordinate reads and in-place overwrites against one
// indexed FASTA file. A Store owns its file handles exclusively and is not
// safe for concurrent use; callers serialize access.
type Store struct {
	path    string
	abs     string
	seq     sequenceFile
	w       io.WriterAt // nil when read-only
	sync    func() error
	sidecar *os.File
	idx     *Index
	log     *zap.Logger
	closed  bool
}

type sequenceFile interface {
	io.ReaderAt
	io.Closer
}

// Open opens the FASTA file at path for reading and in-place writing together
// with its path+Ext sidecar. The file is never truncated or appended to.
func Open(path string, opts ...Option) (*Store, error) {
	return open(path, false, opts)
}

// OpenReadOnly opens path via a read-only memory map. Writes on the returned
// Store fail with KindReadOnly.
func OpenReadOnly(path string, opts ...Option) (*Store, error) {
	return open(path, true, opts)
}

func open(path string, readOnly bool, opts []Option) (_ *Store, err error) {
	o := buildOptions(opts)
	faiPath := path + Ext
	if !exists(path) {
		return nil, newErr(KindNotFound, "open", path, "", "no such file")
	}
	if !exists(faiPath) {
		return nil, newErr(KindNotFound, "open", path, "", "missing index %s", faiPath)
	}

	st := &Store{path: path, abs: absPath(path), log: o.log}
	defer func() {
		if err != nil {
			err = multierr.Append(err, st.release())
		}
	}()

	var size int64
	if readOnly {
		m, err := mmap.Open(path)
		if err != nil {
			return nil, ioErr("open", path, err)
		}
		st.seq, size = m, int64(m.Len())
	} else {
		fh, err := os.OpenFile(path, os.O_RDWR, 0)
		if err != nil {
			return nil, ioErr("open", path, err)
		}
		st.seq, st.w, st.sync = fh, fh, fh.Sync
		fi, err := fh.Stat()
		if err != nil {
			return nil, ioErr("open", path, err)
		}
		size = fi.Size()
	}

	st.sidecar, err = os.Open(faiPath)
	if err != nil {
		return nil, ioErr("open", faiPath, err)
	}
	if st.idx, err = readIndex(st.sidecar, faiPath); err != nil {
		return nil, err
	}
	if err := checkExtents(st.idx, size, faiPath); err != nil {
		return nil, err
	}
	st.log.Debug("opened store",
		zap.String("path", path),
		zap.Bool("readOnly", readOnly),
		zap.Int("records", st.idx.Len()))
	return st, nil
}

// checkExtents rejects an index whose records reach past the end of the
// file, the usual sign of a sidecar that no longer matches its FASTA.
func checkExtents(idx *Index, size int64, faiPath string) error {
	for _, r := range idx.records {
		if r.Length == 0 {
			continue
		}
		last := r.Length - 1
		end := r.DataStart + int64(last) + int64(last/r.BasesPerLine)*int64(r.LineTail()) + 1
		if end > size {
			return &Error{Kind: KindIndexCorrupt, Op: "open", Path: faiPath, Name: r.Name,
				Detail: "record extends past end of sequence file (stale index?)"}
		}
	}
	return nil
}

func absPath(p string) string {
	if a, err := filepath.Abs(p); err == nil {
		return a
	}
	return filepath.Clean(p)
}

// Path returns the FASTA path the store was opened with.
func (s *Store) Path() string { return s.path }

// Index returns the loaded index, or nil once the store is closed.
func (s *Store) Index() *Index { return s.idx }

// Names returns record names in file order; nil once the store is closed.
func (s *Store) Names() []string {
	if s.closed {
		return nil
	}
	return s.idx.Names()
}

// Record returns the index entry for name. It reports false once the store
// is closed.
func (s *Store) Record(name string) (IndexRecord, bool) {
	if s.closed {
		return IndexRecord{}, false
	}
	return s.idx.Lookup(name)
}

// Len returns the length of the named record.
func (s *Store) Len(name string) (int, error) {
	if err := s.check("len"); err != nil {
		return 0, err
	}
	rec, ok := s.idx.Lookup(name)
	if !ok {
		return 0, newErr(KindNotFound, "len", s.path, name, "no such sequence")
	}
	return rec.Length, nil
}

// ReadOnly reports whether writes are refused.
func (s *Store) ReadOnly() bool { return s.w == nil }

// Equal reports whether s and other refer to the same FASTA path. Content is
// not compared.
func (s *Store) Equal(other *Store) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.abs == other.abs
}

// Read returns the symbols in [start, stop) of the named record. When start
// is greater than stop the bounds are swapped and the reverse complement of
// the range is returned.
func (s *Store) Read(name string, start, stop int) (string, error) {
	if err := s.check("read"); err != nil {
		return "", err
	}
	revComp := false
	if start > stop {
		start, stop = stop, start
		revComp = true
	}
	rec, err := s.locate("read", name, start, stop)
	if err != nil {
		return "", err
	}
	if start == stop {
		return "", nil
	}

	sp := readSpan(rec, start, stop)
	buf := make([]byte, sp.n)
	n, err := s.seq.ReadAt(buf, sp.off)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", ioErr("read", s.path, err)
	}
	out := stripLayout(buf[:n])
	if len(out) != stop-start {
		return "", newErr(KindIO, "read", s.path, name,
			"short read: %d of %d symbols at byte %d", len(out), stop-start, sp.off)
	}
	s.log.Debug("read",
		zap.String("name", name),
		zap.Int("start", start),
		zap.Int("stop", stop),
		zap.Int64("offset", sp.off),
		zap.Int("bytes", sp.n),
		zap.Bool("revcomp", revComp))
	if revComp {
		out = bases.RevComp(out)
	}
	return string(out), nil
}

// layoutBytes cannot appear in sequence data: they are stripped on read and
// refused on write.
const layoutBytes = "\n\r \t"

// stripLayout removes terminators and blank padding in place.
func stripLayout(b []byte) []byte {
	out := b[:0]
	for _, c := range b {
		if strings.IndexByte(layoutBytes, c) < 0 {
			out = append(out, c)
		}
	}
	return out
}

// Overwrite writes replacement over the record starting at logical start.
// The write is split at line boundaries so terminators are left in place;
// the file's size and the index's geometry are unchanged.
func (s *Store) Overwrite(name string, start int, replacement string) error {
	if err := s.writable("overwrite"); err != nil {
		return err
	}
	if len(replacement) == 0 {
		return nil
	}
	if i := strings.IndexAny(replacement, layoutBytes+">"); i >= 0 {
		return newErr(KindFormat, "overwrite", s.path, name,
			"replacement has layout byte %q at %d", replacement[i], i)
	}
	rec, err := s.locate("overwrite", name, start, start+len(replacement))
	if err != nil {
		return err
	}
	for _, c := range writeChunks(rec, start, len(replacement)) {
		if _, err := s.w.WriteAt([]byte(replacement[c.from:c.to]), c.off); err != nil {
			return ioErr("overwrite", s.path, err)
		}
	}
	s.log.Debug("overwrite",
		zap.String("name", name),
		zap.Int("start", start),
		zap.Int("length", len(replacement)))
	return nil
}

// Sync commits written data to stable storage.
func (s *Store) Sync() error {
	if err := s.writable("sync"); err != nil {
		return err
	}
	if err := s.sync(); err != nil {
		return ioErr("sync", s.path, err)
	}
	return nil
}

// Close releases both file handles. Any later call, including Close, fails
// with KindClosed.
func (s *Store) Close() error {
	if err := s.check("close"); err != nil {
		return err
	}
	s.closed = true
	s.idx = nil
	if err := s.release(); err != nil {
		return ioErr("close", s.path, err)
	}
	return nil
}

func (s *Store) release() error {
	var err error
	if s.seq != nil {
		err = multierr.Append(err, s.seq.Close())
		s.seq = nil
		s.w = nil
	}
	if s.sidecar != nil {
		err = multierr.Append(err, s.sidecar.Close())
		s.sidecar = nil
	}
	return err
}

func (s *Store) check(op string) error {
	if s.closed {
		return newErr(KindClosed, op, s.path, "", "use of closed store")
	}
	return nil
}

func (s *Store) writable(op string) error {
	if err := s.check(op); err != nil {
		return err
	}
	if s.w == nil {
		return newErr(KindReadOnly, op, s.path, "", "store was opened read-only")
	}
	return nil
}

// locate resolves name and validates 0 <= start, stop <= length.
func (s *Store) locate(op, name string, start, stop int) (IndexRecord, error) {
	rec, ok := s.idx.Lookup(name)
	if !ok {
		return rec, newErr(KindNotFound, op, s.path, name, "no such sequence")
	}
	if start < 0 {
		return rec, newErr(KindRange, op, s.path, name, "start %d is negative", start)
	}
	if stop > rec.Length {
		return rec, newErr(KindRange, op, s.path, name,
			"stop %d exceeds sequence length %d", stop, rec.Length)
	}
	return rec, nil
}
