package writers

import (
	"fmt"
	"io"

	"faidx/internal/jsonlutil"
	"faidx/internal/output"
	"faidx/pkg/api"
)

// Options selects the serialization of extracted regions.
type Options struct {
	Format string // fasta | text | json | jsonl
	Width  int    // FASTA line width; <= 0 writes one line per sequence
	Header bool   // header row for text
}

// StartExtractWriter spins up a writer goroutine. Send extracts on the
// returned channel, close it, then read the single result from the error
// channel. FASTA, text and JSONL stream; JSON buffers until the channel closes.
func StartExtractWriter(out io.Writer, opt Options, bufSize int) (chan<- api.ExtractV1, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	if opt.Format == output.FormatJSONL {
		return jsonlutil.Start[api.ExtractV1](out, bufSize, IsBrokenPipe)
	}
	in := make(chan api.ExtractV1, bufSize)
	errCh := make(chan error, 1)

	go func() {
		var err error
		switch opt.Format {
		case output.FormatJSON:
			var buf []api.ExtractV1
			for e := range in {
				buf = append(buf, e)
			}
			err = output.WriteJSON(out, buf)
		case output.FormatFASTA:
			err = output.StreamFASTA(out, in, opt.Width)
		case output.FormatText:
			err = output.StreamText(out, in, opt.Header)
		default:
			err = fmt.Errorf("unsupported output %q", opt.Format)
		}
		// drain so senders never block after a write failure
		for range in {
		}
		errCh <- err
	}()

	return in, errCh
}
