// Package app implements the faidx command tree.
package app

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"faidx-core/fai"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"faidx/internal/appshell"
	"faidx/internal/cli"
	"faidx/internal/cmdutil"
	"faidx/internal/version"
	"faidx/internal/writers"
)

// Exit statuses.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitUsage    = 2
	ExitNotFound = 3
	ExitFormat   = 4
	ExitRange    = 5
)

// usageError marks bad flags or positionals.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, a ...any) error { return usageError{fmt.Errorf(format, a...)} }

func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

type app struct {
	stdout, stderr io.Writer
	global         cli.Global
	log            *zap.Logger
}

// NewCommand builds the root command writing to stdout and stderr.
func NewCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, log: zap.NewNop()}
	root := &cobra.Command{
		Use:   "faidx",
		Short: "Indexed random access and in-place editing of FASTA files",
		Long: `faidx builds samtools-compatible .fai indices and uses them to extract,
overwrite and mask ranges of FASTA files without loading them into memory.

Regions are written name, name:beg or name:beg-end (1-based, inclusive);
beg > end selects the reverse complement.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			lvl := cmdutil.LevelFor(a.global.Quiet, a.global.Verbose, os.Getenv(cmdutil.EnvLogLevel))
			a.log = cmdutil.NewLogger(a.stderr, lvl)
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate("faidx version {{.Version}}\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })
	cli.RegisterGlobal(root.PersistentFlags(), &a.global)

	root.AddCommand(
		a.newIndexCmd(),
		a.newGetCmd(),
		a.newNamesCmd(),
		a.newWriteCmd(),
		a.newMaskCmd(),
		a.newVerifyCmd(),
	)
	return root
}

// RunContext executes argv and returns the process exit status.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	if argv == nil {
		argv = []string{} // nil makes cobra fall back to os.Args
	}
	root := NewCommand(stdout, stderr)
	root.SetArgs(argv)
	err := root.ExecuteContext(ctx)
	code := ExitCode(err)
	if code != ExitOK {
		_, _ = fmt.Fprintf(stderr, "faidx: %v\n", err)
	}
	return code
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// ExitCode maps an error to the process status.
func ExitCode(err error) int {
	if err == nil || writers.IsBrokenPipe(err) {
		return ExitOK
	}
	var ue usageError
	switch {
	case errors.As(err, &ue), strings.HasPrefix(err.Error(), "unknown command"):
		return ExitUsage
	case errors.Is(err, context.Canceled):
		return appshell.ExitInterrupted
	}
	if errors.Is(err, fs.ErrNotExist) {
		return ExitNotFound
	}
	switch fai.KindOf(err) {
	case fai.KindNotFound:
		return ExitNotFound
	case fai.KindFormat, fai.KindIndexCorrupt:
		return ExitFormat
	case fai.KindRange:
		return ExitRange
	}
	return ExitFailure
}

// open opens path as a store, building a missing index first when build is set.
func (a *app) open(path string, readOnly, build bool) (*fai.Store, error) {
	if build {
		if _, err := os.Stat(path + fai.Ext); errors.Is(err, os.ErrNotExist) {
			if _, err := a.makeIndex(path); err != nil {
				return nil, err
			}
		}
	}
	if readOnly {
		return fai.OpenReadOnly(path, fai.WithLogger(a.log))
	}
	return fai.Open(path, fai.WithLogger(a.log))
}

func (a *app) makeIndex(path string) ([]fai.IndexRecord, error) {
	recs, err := fai.MakeIndex(path, fai.WithLogger(a.log))
	if err != nil {
		return nil, err
	}
	return recs, a.reportIndex(path, recs)
}

// reportIndex logs a freshly written index and warns about shadowed names.
func (a *app) reportIndex(path string, recs []fai.IndexRecord) error {
	for _, d := range fai.NewIndex(recs).Duplicates() {
		a.log.Warn("duplicate sequence name; lookups use the first record",
			zap.String("path", path), zap.String("name", d))
	}
	a.log.Info("indexed", zap.String("path", path), zap.Int("records", len(recs)))
	return nil
}

// closeStore closes s and keeps the first error.
func closeStore(s *fai.Store, err *error) {
	if cerr := s.Close(); cerr != nil && *err == nil {
		*err = cerr
	}
}
