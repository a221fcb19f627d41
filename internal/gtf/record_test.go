package gtf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAttributes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected map[string]string
	}{
		{
			name:  "basic attributes",
			input: `gene_id "ENSG00000001"; transcript_id "ENST00000001"; gene_name "GENE1";`,
			expected: map[string]string{
				"gene_id":       "ENSG00000001",
				"transcript_id": "ENST00000001",
				"gene_name":     "GENE1",
			},
		},
		{
			name:  "extra whitespace and trailing semicolon",
			input: ` gene_id "ENSG00000002" ;  exon_number "3"; `,
			expected: map[string]string{
				"gene_id":     "ENSG00000002",
				"exon_number": "3",
			},
		},
		{
			name:     "empty",
			input:    "",
			expected: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseAttributes(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseLine(t *testing.T) {
	line := "chr1\tHAVANA\texon\t1000\t1200\t.\t+\t.\tgene_id \"ENSG00000001\"; transcript_id \"ENST00000001\";"
	rec, err := ParseLine(line)
	require.NoError(t, err)

	assert.Equal(t, "chr1", rec.Chrom)
	assert.Equal(t, "HAVANA", rec.Source)
	assert.Equal(t, "exon", rec.Feature)
	assert.Equal(t, int64(1000), rec.Start)
	assert.Equal(t, int64(1200), rec.End)
	assert.Equal(t, "+", rec.Strand)
	assert.Equal(t, ".", rec.Frame)
	assert.Equal(t, "ENSG00000001", rec.GeneID())
	assert.Equal(t, "ENST00000001", rec.TranscriptID())
	assert.Empty(t, rec.GeneName())
}

func TestParseLine_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too few fields", "chr1\texon\t1000\t1200"},
		{"non-numeric start", "chr1\tsrc\texon\tabc\t1200\t.\t+\t.\tgene_id \"g\";"},
		{"non-numeric end", "chr1\tsrc\texon\t1000\txyz\t.\t+\t.\tgene_id \"g\";"},
		{"start after end", "chr1\tsrc\texon\t1200\t1000\t.\t+\t.\tgene_id \"g\";"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLine(tt.line)
			assert.Error(t, err)
		})
	}
}

func TestIsUTRFeature(t *testing.T) {
	assert.True(t, (&Record{Feature: FeatureUTR}).IsUTRFeature())
	assert.True(t, (&Record{Feature: FeatureFivePrimeUTR}).IsUTRFeature())
	assert.True(t, (&Record{Feature: FeatureThreePrimeUTR}).IsUTRFeature())
	assert.False(t, (&Record{Feature: FeatureExon}).IsUTRFeature())
	assert.False(t, (&Record{Feature: FeatureCDS}).IsUTRFeature())
}

func TestAttributeString(t *testing.T) {
	attrs := AttributeString([][2]string{
		{"gene_id", "ENSG00000001"},
		{"transcript_id", "ENST00000001"},
	})
	assert.Equal(t, `gene_id "ENSG00000001"; transcript_id "ENST00000001";`, attrs)

	// Round trip through the parser
	parsed := parseAttributes(attrs)
	assert.Equal(t, "ENSG00000001", parsed["gene_id"])
	assert.Equal(t, "ENST00000001", parsed["transcript_id"])
}
