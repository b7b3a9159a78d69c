package app

import (
	"context"

	"github.com/spf13/cobra"

	"faidx-core/fai"

	"faidx/internal/cli"
	"faidx/internal/cliutil"
	"faidx/internal/pipeline"
)

func (a *app) newIndexCmd() *cobra.Command {
	var opt cli.IndexOptions
	cmd := &cobra.Command{
		Use:   "index FILE...",
		Short: "Build the .fai index next to each FASTA file",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opt.Validate(); err != nil {
				return usageError{err}
			}
			paths, err := cliutil.ExpandPositionals(args)
			if err != nil {
				return usageError{err}
			}
			if len(paths) == 0 {
				return usagef("no FASTA files match %v", args)
			}
			return pipeline.ForEachFile(cmd.Context(), pipeline.Config{Threads: opt.Threads}, paths,
				func(_ context.Context, p string) ([]fai.IndexRecord, error) {
					return fai.MakeIndex(p, fai.WithLogger(a.log))
				},
				a.reportIndex)
		},
	}
	cli.RegisterIndex(cmd.Flags(), &opt)
	return cmd
}
