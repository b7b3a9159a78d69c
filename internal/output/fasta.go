package output

import (
	"bufio"
	"io"

	"faidx/pkg/api"
)

// StreamFASTA writes each extract as a FASTA record, wrapping the sequence
// at width symbols per line (width <= 0 writes one line).
func StreamFASTA(w io.Writer, in <-chan api.ExtractV1, width int) error {
	bw := bufio.NewWriter(w)
	for e := range in {
		if err := writeRecord(bw, e.Label(), e.Seq, width); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeRecord(bw *bufio.Writer, label, seq string, width int) error {
	if _, err := bw.WriteString(">" + label + "\n"); err != nil {
		return err
	}
	if width <= 0 {
		width = len(seq)
	}
	for off := 0; off < len(seq); off += width {
		end := off + width
		if end > len(seq) {
			end = len(seq)
		}
		if _, err := bw.WriteString(seq[off:end]); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}
