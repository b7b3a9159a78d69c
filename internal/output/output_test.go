package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"faidx-core/fai"
	"faidx/pkg/api"

	"github.com/stretchr/testify/require"
)

func TestTSVHeader_Stable(t *testing.T) {
	const want = "sequence_id\tstart\tend\tstrand\tseq"
	if TSVHeader != want {
		t.Fatalf("TSVHeader changed:\n got:  %q\n want: %q", TSVHeader, want)
	}
}

func TestToAPIExtract(t *testing.T) {
	fwd := ToAPIExtract(fai.Region{Name: "chr1", Start: 4, Stop: 10}, "ACGTAC", "x.fa")
	require.Equal(t, api.ExtractV1{
		SequenceID: "chr1", Region: "chr1:5-10", Start: 4, End: 10, Length: 6,
		Strand: "+", Seq: "ACGTAC", SourceFile: "x.fa",
	}, fwd)

	rev := ToAPIExtract(fai.Region{Name: "chr1", Start: 10, Stop: 4}, "GTACGT", "")
	require.Equal(t, 4, rev.Start)
	require.Equal(t, 10, rev.End)
	require.Equal(t, "-", rev.Strand)
	require.Equal(t, "chr1:10-5/rc", rev.Label())
}

func feed(list ...api.ExtractV1) <-chan api.ExtractV1 {
	in := make(chan api.ExtractV1, len(list))
	for _, e := range list {
		in <- e
	}
	close(in)
	return in
}

func TestStreamFASTAWraps(t *testing.T) {
	buf := &bytes.Buffer{}
	list := []api.ExtractV1{
		{Region: "s:1-10", Seq: "ACGTACGTAC", Strand: "+"},
		{Region: "s:4-1", Seq: "ACGT", Strand: "-"},
		{Region: "e", Seq: "", Strand: "+"},
	}
	require.NoError(t, StreamFASTA(buf, feed(list...), 4))
	require.Equal(t, ">s:1-10\nACGT\nACGT\nAC\n>s:4-1/rc\nACGT\n>e\n", buf.String())

	buf.Reset()
	require.NoError(t, StreamFASTA(buf, feed(list[0]), 0))
	require.Equal(t, ">s:1-10\nACGTACGTAC\n", buf.String())
}

func TestStreamText(t *testing.T) {
	buf := &bytes.Buffer{}
	e := api.ExtractV1{SequenceID: "s", Start: 0, End: 4, Strand: "+", Seq: "ACGT"}
	require.NoError(t, StreamText(buf, feed(e), true))
	require.Equal(t, TSVHeader+"\ns\t0\t4\t+\tACGT\n", buf.String())

	buf.Reset()
	require.NoError(t, StreamText(buf, feed(e), false))
	require.Equal(t, "s\t0\t4\t+\tACGT\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteJSON(buf, nil))
	require.JSONEq(t, "[]", buf.String())

	buf.Reset()
	require.NoError(t, WriteJSON(buf, []api.ExtractV1{{SequenceID: "s", Region: "s:1-2", End: 2, Length: 2, Strand: "+", Seq: "AC"}}))
	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, "AC", got[0]["seq"])
	require.NotContains(t, got[0], "source_file")
}
