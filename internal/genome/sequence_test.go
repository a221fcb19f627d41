package genome

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReverseComplement(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "ACGT", "ACGT"},
		{"asymmetric", "AACG", "CGTT"},
		{"case preserved", "acGT", "ACgt"},
		{"N passthrough", "ANNT", "ANNT"},
		{"ambiguity codes unchanged", "ARYT", "AYRT"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ReverseComplement(tt.input))
		})
	}
}

func TestReverseComplement_Involution(t *testing.T) {
	inputs := []string{"ACGT", "aacgtNRYKn", "GATTACA", "nnNN", ""}
	for _, s := range inputs {
		assert.Equal(t, s, ReverseComplement(ReverseComplement(s)), "involution failed for %q", s)
	}
}
