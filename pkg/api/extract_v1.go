// pkg/api/extract_v1.go
package api

// ExtractV1 is the stable JSON schema for one extracted region.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ExtractV1 struct {
	SequenceID string `json:"sequence_id"`
	Region     string `json:"region"`
	Start      int    `json:"start"` // 0-based, inclusive
	End        int    `json:"end"`   // 0-based, exclusive
	Length     int    `json:"length"`
	Strand     string `json:"strand"` // "+" | "-"
	Seq        string `json:"seq"`
	SourceFile string `json:"source_file,omitempty"`
}

// Label is the FASTA header for e: the region, with "/rc" on the minus strand.
func (e ExtractV1) Label() string {
	if e.Strand == "-" {
		return e.Region + "/rc"
	}
	return e.Region
}
