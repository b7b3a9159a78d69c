package app

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"faidx-core/fai"

	"faidx/internal/cli"
	"faidx/internal/cliutil"
	"faidx/internal/cmdutil"
	"faidx/internal/output"
	"faidx/internal/writers"
	"faidx/pkg/api"
)

func (a *app) newGetCmd() *cobra.Command {
	var opt cli.GetOptions
	cmd := &cobra.Command{
		Use:   "get FILE [REGION...]",
		Short: "Extract regions through the index",
		Example: `  faidx get ref.fa chr1:1,000-2,000
  faidx get ref.fa chr2:500-401          # reverse complement
  faidx get -f json -r regions.bed ref.fa`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if err := opt.Validate(); err != nil {
				return usageError{err}
			}
			regions, err := a.regions(args[1:], opt.RegionsFile)
			if err != nil {
				return err
			}
			s, err := a.open(args[0], true, opt.Build)
			if err != nil {
				return err
			}
			defer closeStore(s, &err)

			in, done := writers.StartExtractWriter(a.stdout, writers.Options{
				Format: opt.Format,
				Width:  opt.Width,
				Header: !opt.NoHeader,
			}, 0)
			n, runErr := cmdutil.RunStream(cmd.Context(), regions,
				func(r fai.Region) (bool, api.ExtractV1, error) {
					r, err := s.Resolve(r)
					if err != nil {
						return false, api.ExtractV1{}, err
					}
					if opt.RevComp {
						r.Start, r.Stop = r.Stop, r.Start
					}
					seq, err := s.Read(r.Name, r.Start, r.Stop)
					if err != nil {
						return false, api.ExtractV1{}, err
					}
					return true, output.ToAPIExtract(r, seq, s.Path()), nil
				},
				func(e api.ExtractV1) error {
					in <- e
					return nil
				})
			close(in)
			werr := <-done
			a.log.Debug("extracted", zap.Int("regions", n))
			if runErr != nil {
				return runErr
			}
			return writers.IgnoreBrokenPipe(werr)
		},
	}
	cli.RegisterGet(cmd.Flags(), &opt)
	return cmd
}

// regions merges positional regions with those from a regions file.
func (a *app) regions(args []string, file string) ([]fai.Region, error) {
	out, err := cliutil.ParseRegions(args)
	if err != nil {
		return nil, err
	}
	if file != "" {
		more, err := cliutil.LoadRegions(file)
		if err != nil {
			return nil, err
		}
		out = append(out, more...)
	}
	if len(out) == 0 {
		return nil, usagef("no regions given")
	}
	return out, nil
}
