package app

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"faidx-core/fai"

	"faidx/internal/cli"
)

func (a *app) newNamesCmd() *cobra.Command {
	var opt cli.NamesOptions
	var build bool
	cmd := &cobra.Command{
		Use:   "names FILE",
		Short: "List indexed sequence names in file order",
		Long: `names reads only the FILE.fai sidecar; the FASTA itself is not opened
unless --build has to create a missing index.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			faiPath := args[0] + fai.Ext
			if build {
				if _, err := os.Stat(faiPath); errors.Is(err, os.ErrNotExist) {
					if _, err := a.makeIndex(args[0]); err != nil {
						return err
					}
				}
			}
			idx, err := fai.LoadIndex(faiPath)
			if err != nil {
				return err
			}

			bw := bufio.NewWriter(a.stdout)
			for _, rec := range idx.Records() {
				if opt.Lengths {
					_, err = fmt.Fprintf(bw, "%s\t%d\n", rec.Name, rec.Length)
				} else {
					_, err = fmt.Fprintln(bw, rec.Name)
				}
				if err != nil {
					return err
				}
			}
			return bw.Flush()
		},
	}
	cli.RegisterNames(cmd.Flags(), &opt)
	cmd.Flags().BoolVar(&build, "build", false, "build the .fai index first if it is missing")
	return cmd
}
