package fai

import "strings"

// MaskMode selects how MaskRegion rewrites a range.
type MaskMode int

const (
	SoftMask MaskMode = iota // lower-case in place
	HardMask                 // replace with N
)

func (m MaskMode) String() string {
	if m == HardMask {
		return "hard"
	}
	return "soft"
}

// SoftMask lower-cases [min(start,stop), max(start,stop)) in place.
func (s *Store) SoftMask(name string, start, stop int) error {
	if err := s.writable("soft mask"); err != nil {
		return err
	}
	lo, hi := order(start, stop)
	seq, err := s.Read(name, lo, hi)
	if err != nil {
		return err
	}
	return s.Overwrite(name, lo, strings.ToLower(seq))
}

// HardMask writes |stop-start| N symbols beginning at start, without
// reading the existing content. The run is anchored at start even when
// start > stop.
func (s *Store) HardMask(name string, start, stop int) error {
	if err := s.writable("hard mask"); err != nil {
		return err
	}
	n := stop - start
	if n < 0 {
		n = -n
	}
	if _, err := s.locate("hard mask", name, start, start+n); err != nil {
		return err
	}
	return s.Overwrite(name, start, strings.Repeat("N", n))
}

// MaskRegion applies mode to the bases r covers. Open-ended regions are
// resolved first; strand is ignored.
func (s *Store) MaskRegion(r Region, mode MaskMode) error {
	r, err := s.Resolve(r)
	if err != nil {
		return err
	}
	lo, hi := order(r.Start, r.Stop)
	if mode == HardMask {
		return s.HardMask(r.Name, lo, hi)
	}
	return s.SoftMask(r.Name, lo, hi)
}

func order(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
