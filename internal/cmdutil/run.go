package cmdutil

import (
	"context"

	"faidx-core/fai"
)

// RunStream visits each region in order and forwards kept results to send.
// It returns the number of results sent and the first error encountered.
func RunStream[T any](
	ctx context.Context,
	regions []fai.Region,
	visit func(fai.Region) (bool, T, error),
	send func(T) error,
) (int, error) {
	total := 0
	for _, r := range regions {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		keep, out, err := visit(r)
		if err != nil {
			return total, err
		}
		if !keep {
			continue
		}
		if err := send(out); err != nil {
			return total, err
		}
		total++
	}
	return total, nil
}
