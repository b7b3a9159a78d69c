package output

import (
	"fmt"
	"io"

	"faidx/pkg/api"
)

// StreamText writes one tab-separated row per extract.
func StreamText(w io.Writer, in <-chan api.ExtractV1, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for e := range in {
		if err := writeRow(w, e); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(w io.Writer, e api.ExtractV1) error {
	_, err := fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n", e.SequenceID, e.Start, e.End, e.Strand, e.Seq)
	return err
}
