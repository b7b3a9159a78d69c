package output

// Output formats accepted by --format.
const (
	FormatFASTA = "fasta"
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// DefaultWidth is the FASTA line width used when none is given.
const DefaultWidth = 60

// TSVHeader is the canonical header row for text/TSV outputs.
const TSVHeader = "sequence_id\tstart\tend\tstrand\tseq"
