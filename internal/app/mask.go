package app

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"faidx-core/fai"

	"faidx/internal/cli"
)

func (a *app) newMaskCmd() *cobra.Command {
	var opt cli.MaskOptions
	cmd := &cobra.Command{
		Use:   "mask FILE [REGION...]",
		Short: "Soft- or hard-mask regions in place",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if err := opt.Validate(); err != nil {
				return usageError{err}
			}
			mode := fai.SoftMask
			if opt.Mode == cli.MaskHard {
				mode = fai.HardMask
			}
			regions, err := a.regions(args[1:], opt.RegionsFile)
			if err != nil {
				return err
			}
			s, err := a.open(args[0], false, opt.Build)
			if err != nil {
				return err
			}
			defer closeStore(s, &err)

			for _, r := range regions {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				if err := s.MaskRegion(r, mode); err != nil {
					return err
				}
				a.log.Debug("masked", zap.Stringer("region", r), zap.Stringer("mode", mode))
			}
			if err := s.Sync(); err != nil {
				return err
			}
			a.log.Info("masked", zap.Int("regions", len(regions)), zap.Stringer("mode", mode))
			return nil
		},
	}
	cli.RegisterMask(cmd.Flags(), &opt)
	return cmd
}
