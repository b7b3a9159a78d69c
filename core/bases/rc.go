// Package bases holds static nucleotide lookup tables.
package bases

// Ambiguous is the symbol substituted for anything without a complement.
const Ambiguous = 'N'

// complement maps IUPAC codes (both cases), gaps and spaces to their
// base-pairing partner. Zero means "no complement".
var complement = func() (t [256]byte) {
	pairs := []string{"AT", "CG", "RY", "KM", "BV", "DH", "SS", "WW", "NN", "--", "  "}
	for _, p := range pairs {
		a, b := p[0], p[1]
		t[a], t[b] = b, a
		if a >= 'A' && a <= 'Z' {
			la, lb := a+'a'-'A', b+'a'-'A'
			t[la], t[lb] = lb, la
		}
	}
	return t
}()

// Complement returns the partner of b, or 'N' when b has none.
func Complement(b byte) byte {
	if c := complement[b]; c != 0 {
		return c
	}
	return Ambiguous
}

// RevComp returns the reverse complement of seq. Case is preserved.
func RevComp(seq []byte) []byte {
	n := len(seq)
	if n == 0 {
		return nil
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = Complement(seq[n-1-i])
	}
	return out
}

// RevCompString is RevComp for strings.
func RevCompString(s string) string { return string(RevComp([]byte(s))) }
