// Package fai builds and reads ".fai" sidecar indices for FASTA files and
// serves random-access reads and in-place overwrites against the indexed file.
//
// A sidecar holds one tab-separated line per record:
//
//	<name>\t<length>\t<dataStart>\t<basesPerLine>\t<bytesPerLine>
//
// Coordinates are 0-based and half-open, as in BED.
package fai

// Ext is appended to a FASTA path to locate its sidecar index.
const Ext = ".fai"

// IndexRecord locates one named sequence inside a FASTA file.
type IndexRecord struct {
	Name         string
	Length       int   // symbols, terminators excluded
	DataStart    int64 // byte offset of the first symbol
	BasesPerLine int   // symbols on a full data line
	BytesPerLine int   // raw bytes on a full data line, terminator included
}

// LineTail is the number of terminator bytes that follow every full line.
func (r IndexRecord) LineTail() int { return r.BytesPerLine - r.BasesPerLine }

// Index is the ordered, immutable set of records for one FASTA file.
type Index struct {
	records []IndexRecord
	byName  map[string]int
	dups    []string
}

// NewIndex builds an Index over recs in order. When a name repeats, lookups
// resolve to its first occurrence.
func NewIndex(recs []IndexRecord) *Index {
	idx := &Index{
		records: append([]IndexRecord(nil), recs...),
		byName:  make(map[string]int, len(recs)),
	}
	for i, r := range idx.records {
		if _, seen := idx.byName[r.Name]; seen {
			idx.dups = append(idx.dups, r.Name)
			continue
		}
		idx.byName[r.Name] = i
	}
	return idx
}

// Lookup returns the record for name.
func (x *Index) Lookup(name string) (IndexRecord, bool) {
	i, ok := x.byName[name]
	if !ok {
		return IndexRecord{}, false
	}
	return x.records[i], true
}

// Records returns a copy of the records in file order.
func (x *Index) Records() []IndexRecord {
	return append([]IndexRecord(nil), x.records...)
}

// Names returns record names in file order.
func (x *Index) Names() []string {
	out := make([]string, len(x.records))
	for i, r := range x.records {
		out[i] = r.Name
	}
	return out
}

// Len is the number of records, duplicates included.
func (x *Index) Len() int { return len(x.records) }

// Duplicates lists names that occur more than once, in order of repetition.
func (x *Index) Duplicates() []string { return append([]string(nil), x.dups...) }
