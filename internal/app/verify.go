package app

import (
	"bufio"
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"faidx-core/fasta"
)

var errMismatch = errors.New("index does not match sequence file")

func (a *app) newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify FILE",
		Short: "Re-read every record sequentially and compare it with indexed reads",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			path := args[0]
			s, err := a.open(path, true, false)
			if err != nil {
				return err
			}
			defer closeStore(s, &err)

			bw := bufio.NewWriter(a.stdout)
			defer func() {
				if ferr := bw.Flush(); ferr != nil && err == nil {
					err = ferr
				}
			}()
			bad, seen := 0, 0
			report := func(name, format string, args ...any) error {
				bad++
				_, err := fmt.Fprintf(bw, "MISMATCH\t%s\t%s\n", name, fmt.Sprintf(format, args...))
				return err
			}
			err = fasta.StreamPath(cmd.Context(), path, func(rec fasta.Record) error {
				seen++
				n, err := s.Len(rec.ID)
				if err != nil {
					return report(rec.ID, "not in index")
				}
				if n != len(rec.Seq) {
					return report(rec.ID, "length %d, index says %d", len(rec.Seq), n)
				}
				got, err := s.Read(rec.ID, 0, n)
				if err != nil {
					return report(rec.ID, "%v", err)
				}
				if !bytes.Equal([]byte(got), rec.Seq) {
					return report(rec.ID, "content differs")
				}
				return nil
			})
			if err != nil {
				return err
			}
			if idx := s.Index().Len(); idx != seen {
				if err := report("-", "file has %d records, index has %d", seen, idx); err != nil {
					return err
				}
			}
			a.log.Info("verified", zap.String("path", path),
				zap.Int("records", seen), zap.Int("mismatches", bad))
			if bad > 0 {
				return errors.Wrapf(errMismatch, "%d mismatches", bad)
			}
			_, err = fmt.Fprintf(bw, "OK\t%d records\n", seen)
			return err
		},
	}
}
