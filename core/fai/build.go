package fai

import (
	"bytes"
	"io"

	"go.uber.org/zap"
)

// Build scans the FASTA file at path once and returns one IndexRecord per
// header, in file order. It does not write a sidecar; see MakeIndex.
func Build(path string, opts ...Option) ([]IndexRecord, error) {
	o := buildOptions(opts)
	if !exists(path) {
		return nil, newErr(KindNotFound, "build", path, "", "no such file")
	}
	fh, err := openSource("build", path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	recs, err := scan(fh, path, o.log)
	if err != nil {
		return nil, err
	}
	o.log.Debug("indexed fasta", zap.String("path", path), zap.Int("records", len(recs)))
	return recs, nil
}

// BuildFrom is Build over an arbitrary reader. Offsets are relative to the
// first byte read from r.
func BuildFrom(r io.Reader, opts ...Option) ([]IndexRecord, error) {
	o := buildOptions(opts)
	return scan(r, "", o.log)
}

type scanner struct {
	lr   *lineReader
	path string
	log  *zap.Logger
}

func scan(r io.Reader, path string, log *zap.Logger) ([]IndexRecord, error) {
	s := &scanner{lr: newLineReader(r), path: path, log: log}

	hdr, err := s.lr.next()
	if err == io.EOF {
		return nil, s.formatErr("", "empty file, expected a '>' header")
	}
	if err != nil {
		return nil, ioErr("build", path, err)
	}
	if hdr[0] != '>' {
		return nil, s.formatErr("", "line 1: missing '>' header marker")
	}

	var out []IndexRecord
	for hdr != nil {
		rec := IndexRecord{Name: headerName(hdr), DataStart: s.lr.off}
		if rec.Name == "" {
			return nil, s.formatErr("", "line %d: header has no name", s.lr.line)
		}
		next, err := s.record(&rec)
		if err != nil {
			return nil, err
		}
		s.log.Debug("record",
			zap.String("name", rec.Name),
			zap.Int("length", rec.Length),
			zap.Int64("dataStart", rec.DataStart),
			zap.Int("basesPerLine", rec.BasesPerLine),
			zap.Int("bytesPerLine", rec.BytesPerLine))
		out = append(out, rec)
		hdr = next
	}
	return out, nil
}

// record consumes the data lines of rec and returns the next header line,
// or nil at end of input.
//
// Geometry comes from the first data line. A later line that differs from it
// (shorter, or a different terminator width) ends the record's data: only
// blank lines may follow it before the next header.
func (s *scanner) record(rec *IndexRecord) ([]byte, error) {
	var (
		first = true
		ended bool
		endAt int
	)
	for {
		line, err := s.lr.next()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, ioErr("build", s.path, err)
		}
		if line[0] == '>' {
			return line, nil
		}
		bases := len(bytes.TrimSpace(line))
		if bases == 0 {
			if !ended {
				ended, endAt = true, s.lr.line
			}
			continue
		}
		if ended {
			return nil, s.formatErr(rec.Name,
				"line %d: data continues after short line %d (expected %d bases, %d bytes per line)",
				s.lr.line, endAt, rec.BasesPerLine, rec.BytesPerLine)
		}
		if first {
			first = false
			rec.BasesPerLine = bases
			rec.BytesPerLine = len(line)
			rec.Length = bases
			continue
		}
		if bases > rec.BasesPerLine {
			return nil, s.formatErr(rec.Name,
				"line %d: %d bases exceeds line width %d", s.lr.line, bases, rec.BasesPerLine)
		}
		if bases != rec.BasesPerLine || len(line) != rec.BytesPerLine {
			ended, endAt = true, s.lr.line
		}
		rec.Length += bases
	}
}

func (s *scanner) formatErr(name, format string, a ...any) *Error {
	return newErr(KindFormat, "build", s.path, name, format, a...)
}

// headerName returns the token after '>' up to the first whitespace.
func headerName(hdr []byte) string {
	hdr = bytes.TrimRight(hdr[1:], "\r\n")
	if i := bytes.IndexAny(hdr, " \t\v\f\r"); i >= 0 {
		hdr = hdr[:i]
	}
	return string(hdr)
}
