package app

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"faidx/internal/cli"
)

func (a *app) newWriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "write FILE NAME START SEQ",
		Short: "Overwrite symbols in place starting at 0-based START",
		Long: `write replaces len(SEQ) symbols of NAME beginning at the 0-based offset
START. The file layout is preserved: line terminators are skipped, never
overwritten, and the file size does not change.`,
		Args: usageArgs(cobra.ExactArgs(4)),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			wa, err := cli.ParseWriteArgs(args)
			if err != nil {
				return usageError{err}
			}
			s, err := a.open(wa.File, false, false)
			if err != nil {
				return err
			}
			defer closeStore(s, &err)

			if err := s.Overwrite(wa.Name, wa.Start, wa.Seq); err != nil {
				return err
			}
			if err := s.Sync(); err != nil {
				return err
			}
			a.log.Info("wrote", zap.String("name", wa.Name),
				zap.Int("start", wa.Start), zap.Int("symbols", len(wa.Seq)))
			return nil
		},
	}
}
