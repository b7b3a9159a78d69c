package fai

import (
	"bufio"
	"bytes"
	"io"
	"io/fs"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Option configures Build, MakeIndex and Open.
type Option func(*options)

type options struct {
	log *zap.Logger
}

// WithLogger routes debug output (record geometry, byte offsets) to l.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{log: zap.NewNop()}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func isNotExist(err error) bool { return errors.Is(err, fs.ErrNotExist) }

// exists reports whether path names an existing regular file.
func exists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

var gzipMagic = []byte{0x1f, 0x8b}

// openSource opens a FASTA file for scanning. Compressed input is refused:
// byte offsets into a gzip stream cannot be served by seek-based reads.
func openSource(op, path string) (*os.File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, ioErr(op, path, err)
	}
	var sig [2]byte
	n, _ := io.ReadFull(fh, sig[:])
	if n == 2 && bytes.Equal(sig[:], gzipMagic) {
		_ = fh.Close()
		return nil, newErr(KindFormat, op, path, "", "compressed input is not supported")
	}
	if _, err := fh.Seek(0, io.SeekStart); err != nil {
		_ = fh.Close()
		return nil, ioErr(op, path, err)
	}
	return fh, nil
}

// lineReader yields raw lines (terminator included) and tracks the byte
// offset of the next unread byte.
type lineReader struct {
	r    *bufio.Reader
	off  int64
	line int
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReaderSize(r, 1<<16)}
}

// next returns io.EOF only when no bytes remain; an unterminated final line
// is returned with a nil error.
func (lr *lineReader) next() ([]byte, error) {
	b, err := lr.r.ReadBytes('\n')
	if len(b) > 0 {
		lr.off += int64(len(b))
		lr.line++
		if err == io.EOF {
			err = nil
		}
		return b, err
	}
	if err == nil {
		err = io.EOF
	}
	return nil, err
}
