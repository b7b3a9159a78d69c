package fai

import (
	"fmt"
	"strconv"
	"strings"
)

// ToEnd as a Region stop means "through the last symbol of the record".
const ToEnd = -1

// Region is a named 0-based half-open range. Start > Stop denotes the
// reverse strand, as with Store.Read.
type Region struct {
	Name  string
	Start int
	Stop  int
}

// Reverse reports whether r selects the reverse strand.
func (r Region) Reverse() bool { return r.Stop != ToEnd && r.Start > r.Stop }

// Len is the number of symbols r covers once resolved.
func (r Region) Len() int {
	lo, hi := order(r.Start, r.Stop)
	return hi - lo
}

// String formats r in 1-based inclusive samtools notation.
func (r Region) String() string {
	switch {
	case r.Stop == ToEnd && r.Start == 0:
		return r.Name
	case r.Stop == ToEnd:
		return fmt.Sprintf("%s:%d", r.Name, r.Start+1)
	case r.Reverse():
		return fmt.Sprintf("%s:%d-%d", r.Name, r.Start, r.Stop+1)
	}
	return fmt.Sprintf("%s:%d-%d", r.Name, r.Start+1, r.Stop)
}

// ParseRegion parses "name", "name:beg" or "name:beg-end" with 1-based
// inclusive coordinates (commas allowed). beg > end selects the reverse
// strand. A suffix that is not a coordinate is treated as part of the name.
func ParseRegion(s string) (Region, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Region{}, newErr(KindFormat, "region", "", "", "empty region")
	}
	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		return Region{Name: s, Stop: ToEnd}, nil
	}
	name, coords := s[:i], strings.ReplaceAll(s[i+1:], ",", "")
	if name == "" {
		return Region{}, newErr(KindFormat, "region", "", "", "%q has no sequence name", s)
	}
	begS, endS, ranged := strings.Cut(coords, "-")
	beg, err := strconv.Atoi(begS)
	if err != nil {
		return Region{Name: s, Stop: ToEnd}, nil
	}
	if beg < 1 {
		return Region{}, newErr(KindRange, "region", "", name, "%q: coordinates are 1-based", s)
	}
	if !ranged {
		return Region{Name: name, Start: beg - 1, Stop: ToEnd}, nil
	}
	end, err := strconv.Atoi(endS)
	if err != nil {
		return Region{}, newErr(KindFormat, "region", "", name, "%q: bad end coordinate", s)
	}
	if end < 1 {
		return Region{}, newErr(KindRange, "region", "", name, "%q: coordinates are 1-based", s)
	}
	if beg > end {
		return Region{Name: name, Start: beg, Stop: end - 1}, nil
	}
	return Region{Name: name, Start: beg - 1, Stop: end}, nil
}

// Resolve replaces a ToEnd stop with the record length and checks the name.
func (s *Store) Resolve(r Region) (Region, error) {
	if err := s.check("resolve"); err != nil {
		return r, err
	}
	rec, ok := s.idx.Lookup(r.Name)
	if !ok {
		return r, newErr(KindNotFound, "resolve", s.path, r.Name, "no such sequence")
	}
	if r.Stop == ToEnd {
		if r.Start > rec.Length {
			return r, newErr(KindRange, "resolve", s.path, r.Name,
				"start %d exceeds sequence length %d", r.Start, rec.Length)
		}
		r.Stop = rec.Length
	}
	return r, nil
}

// ReadRegion reads r, resolving an open end first.
func (s *Store) ReadRegion(r Region) (string, error) {
	r, err := s.Resolve(r)
	if err != nil {
		return "", err
	}
	return s.Read(r.Name, r.Start, r.Stop)
}
