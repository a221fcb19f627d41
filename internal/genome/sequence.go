package genome

// complementBase returns the Watson-Crick complement of a nucleotide,
// preserving case. Non-ACGT characters (e.g. N, ambiguity codes, gaps)
// pass through unchanged.
func complementBase(c byte) byte {
	switch c {
	case 'A':
		return 'T'
	case 'T':
		return 'A'
	case 'C':
		return 'G'
	case 'G':
		return 'C'
	case 'a':
		return 't'
	case 't':
		return 'a'
	case 'c':
		return 'g'
	case 'g':
		return 'c'
	}
	return c
}

// ReverseComplement returns the reverse complement of a DNA sequence.
func ReverseComplement(seq string) string {
	n := len(seq)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[n-1-i] = complementBase(seq[i])
	}
	return string(out)
}
