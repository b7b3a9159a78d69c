// internal/output/json.go
package output

import (
	"io"

	"faidx-core/fai"

	"faidx/internal/jsonutil"
	"faidx/pkg/api"
)

// ToAPIExtract converts a resolved region and its sequence to the stable wire
// schema (v1).
func ToAPIExtract(r fai.Region, seq, source string) api.ExtractV1 {
	lo, hi := r.Start, r.Stop
	strand := "+"
	if r.Reverse() {
		lo, hi = hi, lo
		strand = "-"
	}
	return api.ExtractV1{
		SequenceID: r.Name,
		Region:     r.String(),
		Start:      lo,
		End:        hi,
		Length:     hi - lo,
		Strand:     strand,
		Seq:        seq,
		SourceFile: source,
	}
}

// WriteJSON writes a single JSON array of v1 extracts (pretty-indented).
func WriteJSON(w io.Writer, list []api.ExtractV1) error {
	if list == nil {
		list = []api.ExtractV1{}
	}
	return jsonutil.EncodePretty(w, list)
}
