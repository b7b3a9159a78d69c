package app

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"syscall"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"faidx-core/fai"
)

func TestExitCode(t *testing.T) {
	notFound := func() error {
		_, err := fai.Open("/definitely/not/here.fa")
		return err
	}()
	_, rangeErr := fai.ParseRegion("chr1:0-3")
	_, formatErr := fai.BuildFrom(strings.NewReader("ACGT\n"))

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"broken pipe", fmt.Errorf("write: %w", syscall.EPIPE), ExitOK},
		{"usage", usagef("bad"), ExitUsage},
		{"wrapped usage", errors.Wrap(usagef("bad"), "get"), ExitUsage},
		{"canceled", context.Canceled, 130},
		{"not found", notFound, ExitNotFound},
		{"range", rangeErr, ExitRange},
		{"format", formatErr, ExitFormat},
		{"missing file", errors.WithStack(fs.ErrNotExist), ExitNotFound},
		{"other", errors.New("boom"), ExitFailure},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ExitCode(tc.err))
		})
	}
}

func TestCommandTree(t *testing.T) {
	root := NewCommand(io.Discard, io.Discard)
	var got []string
	for _, c := range root.Commands() {
		if c.Name() == "help" || c.Name() == "completion" {
			continue
		}
		got = append(got, c.Name())
	}
	want := []string{"get", "index", "mask", "names", "verify", "write"}
	if d := cmp.Diff(want, got); d != "" {
		t.Fatalf("subcommands (-want +got):\n%s", d)
	}
	require.NotNil(t, root.PersistentFlags().Lookup("quiet"))
	require.NotNil(t, root.PersistentFlags().Lookup("verbose"))
}
