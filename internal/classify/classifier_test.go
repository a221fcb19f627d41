package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codingTranscript(strand string, exons []Interval, cds []Interval) *Transcript {
	t := &Transcript{
		ID:       "ENST00000001",
		GeneID:   "ENSG00000001",
		GeneName: "GENE1",
		Chrom:    "chr1",
		Strand:   strand,
		Exons:    exons,
	}
	for _, c := range cds {
		t.CDS = append(t.CDS, CDSInterval{Interval: c, Frame: "0"})
	}
	return t
}

func regionByType(regions []*UTRRegion, utrType UTRType) *UTRRegion {
	for _, r := range regions {
		if r.Type == utrType {
			return r
		}
	}
	return nil
}

func TestClassify_NoCDS(t *testing.T) {
	c := NewClassifier()
	tr := codingTranscript("+", []Interval{{100, 200}}, nil)
	assert.Nil(t, c.Classify(tr))
	assert.Equal(t, 0, c.Stats().CodingTranscripts)
}

func TestClassify_CDSCoversAllExons(t *testing.T) {
	c := NewClassifier()
	tr := codingTranscript("+",
		[]Interval{{100, 200}, {300, 400}},
		[]Interval{{100, 200}, {300, 400}})
	assert.Empty(t, c.Classify(tr))
}

func TestClassify_PlusStrandSingleExon(t *testing.T) {
	// Exon [100,200], CDS [130,170]: 5'UTR [100,129], 3'UTR [171,200].
	c := NewClassifier()
	tr := codingTranscript("+", []Interval{{100, 200}}, []Interval{{130, 170}})

	regions := c.Classify(tr)
	require.Len(t, regions, 2)

	five := regionByType(regions, FivePrime)
	require.NotNil(t, five)
	assert.Equal(t, []Interval{{100, 129}}, five.Segments)
	assert.Equal(t, int64(30), five.Length())

	three := regionByType(regions, ThreePrime)
	require.NotNil(t, three)
	assert.Equal(t, []Interval{{171, 200}}, three.Segments)
	assert.Equal(t, int64(30), three.Length())
}

func TestClassify_MinusStrandMirrorsTypes(t *testing.T) {
	// Same intervals on the minus strand: the genomically-lower fragment
	// becomes the 3'UTR and the higher one the 5'UTR.
	c := NewClassifier()
	tr := codingTranscript("-", []Interval{{100, 200}}, []Interval{{130, 170}})

	regions := c.Classify(tr)
	require.Len(t, regions, 2)

	five := regionByType(regions, FivePrime)
	require.NotNil(t, five)
	assert.Equal(t, []Interval{{171, 200}}, five.Segments)

	three := regionByType(regions, ThreePrime)
	require.NotNil(t, three)
	assert.Equal(t, []Interval{{100, 129}}, three.Segments)
}

func TestClassify_MultiExonFragments(t *testing.T) {
	// Two exons, CDS in the middle of each: the 5'UTR and 3'UTR each get
	// one fragment, and fragments are never merged across exons.
	c := NewClassifier()
	tr := codingTranscript("+",
		[]Interval{{100, 200}, {300, 400}},
		[]Interval{{150, 200}, {300, 350}})

	regions := c.Classify(tr)
	require.Len(t, regions, 2)

	five := regionByType(regions, FivePrime)
	require.NotNil(t, five)
	assert.Equal(t, []Interval{{100, 149}}, five.Segments)

	three := regionByType(regions, ThreePrime)
	require.NotNil(t, three)
	assert.Equal(t, []Interval{{351, 400}}, three.Segments)
}

func TestClassify_MultiExonUTRSegments(t *testing.T) {
	// Three exons; CDS confined to the middle exon. Both flanking exons
	// contribute whole segments plus the middle exon's clipped edges.
	c := NewClassifier()
	tr := codingTranscript("+",
		[]Interval{{100, 200}, {300, 400}, {500, 600}},
		[]Interval{{330, 370}})

	regions := c.Classify(tr)
	require.Len(t, regions, 2)

	five := regionByType(regions, FivePrime)
	require.NotNil(t, five)
	assert.Equal(t, []Interval{{100, 200}, {300, 329}}, five.Segments)

	three := regionByType(regions, ThreePrime)
	require.NotNil(t, three)
	assert.Equal(t, []Interval{{371, 400}, {500, 600}}, three.Segments)

	// No intron bases appear: total UTR length is exonic only.
	assert.Equal(t, int64(101+30), five.Length())
	assert.Equal(t, int64(30+101), three.Length())
}

func TestClassify_SegmentsSortedAndDisjoint(t *testing.T) {
	c := NewClassifier()
	tr := codingTranscript("-",
		[]Interval{{100, 150}, {200, 250}, {300, 350}, {400, 450}},
		[]Interval{{220, 250}, {300, 320}})

	for _, r := range c.Classify(tr) {
		for i := 1; i < len(r.Segments); i++ {
			assert.Less(t, r.Segments[i-1].End, r.Segments[i].Start,
				"segments must be sorted ascending and disjoint")
		}
	}
}

func TestClassify_ExplicitUTRsTakePrecedence(t *testing.T) {
	// When the annotation already carries UTR features, exon-derived UTRs
	// must not be computed on top of them.
	c := NewClassifier()
	tr := codingTranscript("+", []Interval{{100, 200}}, []Interval{{130, 170}})
	tr.UTRs = []Interval{{100, 129}}

	regions := c.Classify(tr)
	require.Len(t, regions, 1)
	assert.Equal(t, FivePrime, regions[0].Type)
	assert.Equal(t, []Interval{{100, 129}}, regions[0].Segments)
}

func TestClassify_ExplicitUTRClippedAtCDSBoundary(t *testing.T) {
	// A UTR feature overlapping the CDS envelope is clipped to its
	// non-coding side.
	c := NewClassifier()
	tr := codingTranscript("+", []Interval{{100, 200}}, []Interval{{130, 170}})
	tr.UTRs = []Interval{{100, 140}, {160, 200}}

	regions := c.Classify(tr)
	require.Len(t, regions, 2)

	five := regionByType(regions, FivePrime)
	require.NotNil(t, five)
	assert.Equal(t, []Interval{{100, 129}}, five.Segments)

	three := regionByType(regions, ThreePrime)
	require.NotNil(t, three)
	assert.Equal(t, []Interval{{171, 200}}, three.Segments)
}

func TestClassify_ExplicitUTRInsideCDSDropped(t *testing.T) {
	c := NewClassifier()
	tr := codingTranscript("+", []Interval{{100, 200}}, []Interval{{130, 170}})
	tr.UTRs = []Interval{{140, 160}}

	assert.Empty(t, c.Classify(tr))
}

func TestClassify_IncompleteTranscript(t *testing.T) {
	c := NewClassifier()
	tr := codingTranscript("+", nil, []Interval{{130, 170}})

	assert.Nil(t, c.Classify(tr))
	assert.Equal(t, 1, c.Stats().IncompleteTranscripts)
}

func TestClassify_FivePrimeListedFirst(t *testing.T) {
	c := NewClassifier()
	for _, strand := range []string{"+", "-"} {
		tr := codingTranscript(strand, []Interval{{100, 200}}, []Interval{{130, 170}})
		regions := c.Classify(tr)
		require.Len(t, regions, 2)
		assert.Equal(t, FivePrime, regions[0].Type, "strand %s", strand)
		assert.Equal(t, ThreePrime, regions[1].Type, "strand %s", strand)
	}
}

func TestResolveUTRType(t *testing.T) {
	tests := []struct {
		strand   string
		upstream bool
		expected UTRType
	}{
		{"+", true, FivePrime},
		{"+", false, ThreePrime},
		{"-", true, ThreePrime},
		{"-", false, FivePrime},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, resolveUTRType(tt.strand, tt.upstream),
			"resolveUTRType(%q, %v)", tt.strand, tt.upstream)
	}
}

func TestUTRTypeStrings(t *testing.T) {
	assert.Equal(t, "five_prime_utr", FivePrime.Feature())
	assert.Equal(t, "three_prime_utr", ThreePrime.Feature())
	assert.Equal(t, "5UTR", FivePrime.Label())
	assert.Equal(t, "3UTR", ThreePrime.Label())
}
