package cliutil

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"faidx-core/fai"
)

func hasGlobMeta(s string) bool { return strings.ContainsAny(s, "*?[") }

// ExpandPositionals expands any globs among path-like positionals. Matches
// ending in the index extension are dropped so "dir/*" indexes FASTA only.
func ExpandPositionals(posArgs []string) ([]string, error) {
	var out []string
	for _, a := range posArgs {
		if !hasGlobMeta(a) {
			out = append(out, a)
			continue
		}
		m, err := filepath.Glob(a)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %v", a, err)
		}
		n := 0
		for _, p := range m {
			if strings.HasSuffix(p, fai.Ext) {
				continue
			}
			out = append(out, p)
			n++
		}
		if n == 0 {
			return nil, fmt.Errorf("no input matched %q", a)
		}
	}
	return out, nil
}

// ParseRegions parses region strings in order.
func ParseRegions(args []string) ([]fai.Region, error) {
	out := make([]fai.Region, 0, len(args))
	for _, a := range args {
		r, err := fai.ParseRegion(a)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// LoadRegions reads one region per line from path. Blank lines and lines
// starting with '#' are skipped; a BED-style "name<TAB>start<TAB>end" line
// is taken as 0-based half-open.
func LoadRegions(path string) ([]fai.Region, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer func() { _ = fh.Close() }()

	var list []fai.Region
	sc := bufio.NewScanner(fh)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		var (
			r   fai.Region
			err error
		)
		if f := strings.Split(line, "\t"); len(f) >= 3 {
			r, err = bedRegion(f)
		} else {
			r, err = fai.ParseRegion(line)
		}
		if err != nil {
			return nil, fmt.Errorf("%s:%d %v", path, ln, err)
		}
		list = append(list, r)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func bedRegion(f []string) (fai.Region, error) {
	start, err := strconv.Atoi(strings.TrimSpace(f[1]))
	if err != nil {
		return fai.Region{}, fmt.Errorf("bad start %q", f[1])
	}
	stop, err := strconv.Atoi(strings.TrimSpace(f[2]))
	if err != nil {
		return fai.Region{}, fmt.Errorf("bad end %q", f[2])
	}
	if start < 0 || stop < 0 {
		return fai.Region{}, fmt.Errorf("negative coordinate")
	}
	return fai.Region{Name: f[0], Start: start, Stop: stop}, nil
}
