// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"faidx/internal/app"
	"faidx/internal/version"
	"faidx/pkg/api"
)

const fixture = ">seq1 description\nAACCGGTT\nACGA\n>seq2\nTCGATCGATCGA\n"

func write(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

func run(t *testing.T, argv ...string) (int, string, string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := app.Run(argv, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

// indexed writes the fixture and its sidecar.
func indexed(t *testing.T) string {
	t.Helper()
	fa := write(t, "ref.fa", fixture)
	code, _, stderr := run(t, "index", fa)
	require.Equal(t, 0, code, stderr)
	return fa
}

func TestIndexWritesSidecar(t *testing.T) {
	fa := indexed(t)
	got, err := os.ReadFile(fa + ".fai")
	require.NoError(t, err)
	require.Equal(t, "seq1\t12\t18\t8\t9\nseq2\t12\t38\t12\t13", string(got))
}

func TestIndexManyFilesInParallel(t *testing.T) {
	dir := t.TempDir()
	for i, body := range []string{fixture, ">x\nAC\n", ">y\nGGGG\nGG\n"} {
		fn := filepath.Join(dir, "r"+string(rune('0'+i))+".fa")
		require.NoError(t, os.WriteFile(fn, []byte(body), 0o644))
	}
	code, _, stderr := run(t, "index", "-t", "2", filepath.Join(dir, "*.fa"))
	require.Equal(t, 0, code, stderr)

	got, err := os.ReadFile(filepath.Join(dir, "r2.fa.fai"))
	require.NoError(t, err)
	require.Equal(t, "y\t6\t3\t4\t5", string(got))

	// Globs skip sidecars, so indexing again is harmless.
	code, _, stderr = run(t, "index", filepath.Join(dir, "*"))
	require.Equal(t, 0, code, stderr)
}

func TestGetForwardAndReverse(t *testing.T) {
	fa := indexed(t)

	code, out, stderr := run(t, "get", fa, "seq1:3-10", "seq1:10-3", "seq2")
	require.Equal(t, 0, code, stderr)
	require.Equal(t,
		">seq1:3-10\nCCGGTTAC\n"+
			">seq1:10-3/rc\nGTAACCGG\n"+
			">seq2:1-12\nTCGATCGATCGA\n",
		out)
}

func TestGetReverseComplementFlag(t *testing.T) {
	fa := indexed(t)
	code, out, stderr := run(t, "get", "-i", fa, "seq1:1-3")
	require.Equal(t, 0, code, stderr)
	require.Equal(t, ">seq1:3-1/rc\nGTT\n", out)
}

func TestGetWidth(t *testing.T) {
	fa := indexed(t)
	code, out, _ := run(t, "get", "-w", "5", fa, "seq1")
	require.Equal(t, 0, code)
	require.Equal(t, ">seq1:1-12\nAACCG\nGTTAC\nGA\n", out)
}

func TestGetText(t *testing.T) {
	fa := indexed(t)
	code, out, _ := run(t, "get", "-f", "text", fa, "seq2:5-8")
	require.Equal(t, 0, code)
	require.Equal(t, "sequence_id\tstart\tend\tstrand\tseq\nseq2\t4\t8\t+\tTCGA\n", out)

	code, out, _ = run(t, "get", "-f", "text", "--no-header", fa, "seq2:5-8")
	require.Equal(t, 0, code)
	require.Equal(t, "seq2\t4\t8\t+\tTCGA\n", out)
}

func TestGetJSON(t *testing.T) {
	fa := indexed(t)
	code, out, stderr := run(t, "get", "-f", "json", fa, "seq1:10-3")
	require.Equal(t, 0, code, stderr)

	var got []api.ExtractV1
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	require.Equal(t, "seq1", got[0].SequenceID)
	require.Equal(t, "seq1:10-3", got[0].Region)
	require.Equal(t, 2, got[0].Start)
	require.Equal(t, 10, got[0].End)
	require.Equal(t, 8, got[0].Length)
	require.Equal(t, "-", got[0].Strand)
	require.Equal(t, "GTAACCGG", got[0].Seq)
	require.Equal(t, fa, got[0].SourceFile)
}

func TestGetJSONL(t *testing.T) {
	fa := indexed(t)
	code, out, stderr := run(t, "get", "-f", "jsonl", fa, "seq1:1-2", "seq2:2-1")
	require.Equal(t, 0, code, stderr)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	var e api.ExtractV1
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &e))
	require.Equal(t, "seq2:2-1", e.Region)
	require.Equal(t, "GA", e.Seq)
}

func TestGetRegionsFile(t *testing.T) {
	fa := indexed(t)
	regions := write(t, "regions.txt", "# comment\nseq2:1-4\n\nseq1\t0\t2\n")
	code, out, stderr := run(t, "get", "-f", "text", "--no-header", "-r", regions, fa)
	require.Equal(t, 0, code, stderr)
	require.Equal(t, "seq2\t0\t4\t+\tTCGA\nseq1\t0\t2\t+\tAA\n", out)
}

func TestGetBuildsMissingIndex(t *testing.T) {
	fa := write(t, "ref.fa", fixture)

	code, _, _ := run(t, "get", fa, "seq2")
	require.Equal(t, app.ExitNotFound, code, "no sidecar and no --build")

	code, out, stderr := run(t, "get", "--build", fa, "seq2:1-2")
	require.Equal(t, 0, code, stderr)
	require.Equal(t, ">seq2:1-2\nTC\n", out)
	require.FileExists(t, fa+".fai")
}

func TestNames(t *testing.T) {
	fa := indexed(t)
	code, out, _ := run(t, "names", fa)
	require.Equal(t, 0, code)
	require.Equal(t, "seq1\nseq2\n", out)

	code, out, _ = run(t, "names", "-l", fa)
	require.Equal(t, 0, code)
	require.Equal(t, "seq1\t12\nseq2\t12\n", out)
}

func TestNamesNeedsOnlySidecar(t *testing.T) {
	fa := indexed(t)
	require.NoError(t, os.Remove(fa))
	code, out, stderr := run(t, "names", "-l", fa)
	require.Equal(t, 0, code, stderr)
	require.Equal(t, "seq1\t12\nseq2\t12\n", out)

	code, _, _ = run(t, "names", fa+".other")
	require.Equal(t, app.ExitNotFound, code)
}

func TestWriteInPlace(t *testing.T) {
	fa := indexed(t)
	before, err := os.Stat(fa)
	require.NoError(t, err)

	code, _, stderr := run(t, "write", fa, "seq1", "6", "NNNN")
	require.Equal(t, 0, code, stderr)

	after, err := os.ReadFile(fa)
	require.NoError(t, err)
	require.Equal(t, before.Size(), int64(len(after)))
	require.Equal(t, ">seq1 description\nAACCGGNN\nNNGA\n>seq2\nTCGATCGATCGA\n", string(after))

	code, _, _ = run(t, "write", fa, "seq1", "10", "ACGT")
	require.Equal(t, app.ExitRange, code, "write past the end of the record")
}

func TestMaskSoftAndHard(t *testing.T) {
	fa := indexed(t)

	code, _, stderr := run(t, "mask", fa, "seq2:1-4")
	require.Equal(t, 0, code, stderr)
	code, _, stderr = run(t, "mask", "-m", "hard", fa, "seq1:9-7")
	require.Equal(t, 0, code, stderr)

	got, err := os.ReadFile(fa)
	require.NoError(t, err)
	require.Equal(t, ">seq1 description\nAACCGGNN\nNCGA\n>seq2\ntcgaTCGATCGA\n", string(got))
}

func TestVerify(t *testing.T) {
	fa := indexed(t)
	code, out, stderr := run(t, "verify", fa)
	require.Equal(t, 0, code, stderr)
	require.Equal(t, "OK\t2 records\n", out)

	// Grow seq2 by one base; the stale row still fits inside the file.
	require.NoError(t, os.WriteFile(fa, []byte(strings.Replace(fixture, "TCGATCGATCGA", "TCGATCGATCGAT", 1)), 0o644))
	code, out, _ = run(t, "verify", fa)
	require.Equal(t, app.ExitFailure, code)
	require.Contains(t, out, "MISMATCH\tseq2\tlength 13, index says 12")
}

func TestExitCodes(t *testing.T) {
	fa := indexed(t)
	bad := write(t, "bad.fa", ">a\nACGT\nAC\nACGT\n")
	corrupt := write(t, "corrupt.fa", fixture)
	require.NoError(t, os.WriteFile(corrupt+".fai", []byte("seq1\t12\t18\n"), 0o644))

	cases := []struct {
		name string
		argv []string
		want int
	}{
		{"no regions", []string{"get", fa}, app.ExitUsage},
		{"missing file arg", []string{"get"}, app.ExitUsage},
		{"bad format", []string{"get", "-f", "xml", fa, "seq1"}, app.ExitUsage},
		{"unknown flag", []string{"get", "--bogus", fa, "seq1"}, app.ExitUsage},
		{"unknown command", []string{"bogus"}, app.ExitUsage},
		{"bad mask mode", []string{"mask", "-m", "medium", fa, "seq1"}, app.ExitUsage},
		{"write arity", []string{"write", fa, "seq1", "0"}, app.ExitUsage},
		{"zero threads", []string{"index", "-t", "0", fa}, app.ExitUsage},
		{"write bad start", []string{"write", fa, "seq1", "x", "A"}, app.ExitUsage},
		{"missing fasta", []string{"get", fa + ".nope", "seq1"}, app.ExitNotFound},
		{"unknown sequence", []string{"get", fa, "chrX"}, app.ExitNotFound},
		{"missing regions file", []string{"get", "-r", fa + ".regions", fa}, app.ExitNotFound},
		{"past end", []string{"get", fa, "seq1:5-100"}, app.ExitRange},
		{"zero coordinate", []string{"get", fa, "seq1:0-4"}, app.ExitRange},
		{"malformed fasta", []string{"index", bad}, app.ExitFormat},
		{"corrupt sidecar", []string{"get", corrupt, "seq1"}, app.ExitFormat},
		{"write layout bytes", []string{"write", fa, "seq1", "0", "A\nC"}, app.ExitFormat},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _, stderr := run(t, tc.argv...)
			require.Equal(t, tc.want, code, stderr)
			require.Contains(t, stderr, "faidx:")
		})
	}
}

func TestHelpAndVersion(t *testing.T) {
	code, out, _ := run(t)
	require.Equal(t, 0, code)
	require.Contains(t, out, "Usage:")

	code, out, _ = run(t, "--version")
	require.Equal(t, 0, code)
	require.Equal(t, "faidx version "+version.Version+"\n", out)
}

func TestQuietSuppressesInfoLogs(t *testing.T) {
	fa := write(t, "ref.fa", fixture)
	code, _, stderr := run(t, "index", fa)
	require.Equal(t, 0, code)
	require.Contains(t, stderr, "indexed")

	code, _, stderr = run(t, "--quiet", "index", fa)
	require.Equal(t, 0, code)
	require.Empty(t, stderr)
}

func TestCanceledRunExits130(t *testing.T) {
	fa := indexed(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	code := app.RunContext(ctx, []string{"get", fa, "seq1"}, io.Discard, io.Discard)
	require.Equal(t, 130, code)
}
