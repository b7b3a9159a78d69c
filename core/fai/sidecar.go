package fai

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// WriteIndex serializes recs as tab-separated rows joined by newlines.
func WriteIndex(w io.Writer, recs []IndexRecord) error {
	bw := bufio.NewWriter(w)
	for i, r := range recs {
		if i > 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return errors.Wrap(err, "write index")
			}
		}
		row := strings.Join([]string{
			r.Name,
			strconv.Itoa(r.Length),
			strconv.FormatInt(r.DataStart, 10),
			strconv.Itoa(r.BasesPerLine),
			strconv.Itoa(r.BytesPerLine),
		}, "\t")
		if _, err := bw.WriteString(row); err != nil {
			return errors.Wrap(err, "write index")
		}
	}
	return errors.Wrap(bw.Flush(), "write index")
}

// MakeIndex builds the index for the FASTA file at path and writes it to
// path+Ext. The sidecar is written to a temporary file in the same directory
// and renamed into place, so readers never observe a partial index.
func MakeIndex(path string, opts ...Option) ([]IndexRecord, error) {
	o := buildOptions(opts)
	recs, err := Build(path, opts...)
	if err != nil {
		return nil, err
	}
	dst := path + Ext
	tmp := filepath.Join(filepath.Dir(dst), "."+filepath.Base(dst)+"."+uuid.NewString()+".tmp")
	fh, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, ioErr("index", tmp, err)
	}
	cleanup := func() {
		_ = fh.Close()
		_ = os.Remove(tmp)
	}
	if err := WriteIndex(fh, recs); err != nil {
		cleanup()
		return nil, ioErr("index", tmp, err)
	}
	if err := fh.Sync(); err != nil {
		cleanup()
		return nil, ioErr("index", tmp, err)
	}
	if err := fh.Close(); err != nil {
		_ = os.Remove(tmp)
		return nil, ioErr("index", tmp, err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return nil, ioErr("index", dst, err)
	}
	o.log.Debug("wrote index", zap.String("path", dst), zap.Int("records", len(recs)))
	return recs, nil
}

// ReadIndex parses a sidecar. Blank lines are skipped; every other row must
// hold a name and four non-negative decimal integers.
func ReadIndex(r io.Reader) (*Index, error) {
	return readIndex(r, "")
}

// LoadIndex reads the sidecar at path.
func LoadIndex(path string) (*Index, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, ioErr("load index", path, err)
	}
	defer func() { _ = fh.Close() }()
	return readIndex(fh, path)
}

func readIndex(r io.Reader, path string) (*Index, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	var recs []IndexRecord
	ln := 0
	for sc.Scan() {
		ln++
		line := bytes.TrimRight(sc.Bytes(), "\r")
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		rec, err := parseRow(string(line))
		if err != nil {
			return nil, &Error{Kind: KindIndexCorrupt, Op: "load index", Path: path,
				Detail: "line " + strconv.Itoa(ln), Err: err}
		}
		recs = append(recs, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, ioErr("load index", path, err)
	}
	return NewIndex(recs), nil
}

func parseRow(line string) (IndexRecord, error) {
	f := strings.Split(line, "\t")
	if len(f) != 5 {
		return IndexRecord{}, errors.Errorf("want 5 tab-separated fields, got %d", len(f))
	}
	var rec IndexRecord
	rec.Name = f[0]
	if rec.Name == "" {
		return rec, errors.New("empty sequence name")
	}
	nums := make([]int64, 4)
	for i, s := range f[1:] {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return rec, errors.Wrapf(err, "field %d", i+2)
		}
		if v < 0 {
			return rec, errors.Errorf("field %d: negative value %d", i+2, v)
		}
		nums[i] = v
	}
	rec.Length = int(nums[0])
	rec.DataStart = nums[1]
	rec.BasesPerLine = int(nums[2])
	rec.BytesPerLine = int(nums[3])
	switch {
	case rec.BytesPerLine < rec.BasesPerLine:
		return rec, errors.Errorf("bytes per line %d < bases per line %d", rec.BytesPerLine, rec.BasesPerLine)
	case rec.Length > 0 && rec.BasesPerLine == 0:
		return rec, errors.Errorf("record of length %d has zero bases per line", rec.Length)
	}
	return rec, nil
}
