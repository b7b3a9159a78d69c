// Package fasta parses FASTA text sequentially, one whole record at a time.
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Record is one parsed FASTA sequence with line terminators and surrounding
// whitespace removed.
type Record struct {
	ID  string
	Seq []byte
}

// StreamCtx parses FASTA from r and calls emit once per record, in file
// order. It returns promptly when ctx is done.
func StreamCtx(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	var (
		id     string
		inRec  bool
		seq    = make([]byte, 0, 1<<20)
		lineNo int
	)
	flush := func() error {
		if !inRec {
			return nil
		}
		return emit(Record{ID: id, Seq: append([]byte(nil), seq...)})
	}

	for sc.Scan() {
		lineNo++
		if lineNo%4096 == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		line := sc.Bytes()
		if len(line) > 0 && line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			id, inRec, seq = parseHeaderID(line[1:]), true, seq[:0]
			continue
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if !inRec {
			return errors.Errorf("fasta: line %d: sequence data before first header", lineNo)
		}
		seq = append(seq, line...)
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(err, "fasta scan")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return flush()
}

// StreamPath opens path and streams its records.
func StreamPath(ctx context.Context, path string, emit func(Record) error) error {
	fh, err := os.Open(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() { _ = fh.Close() }()
	return StreamCtx(ctx, fh, emit)
}

// parseHeaderID returns the token right after '>' up to the first whitespace.
func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimRight(hdr, "\r")
	if i := bytes.IndexAny(hdr, " \t\v\f"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
