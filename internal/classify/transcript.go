// Package classify derives 5'/3' UTR regions from transcript annotations.
package classify

// Interval is a 1-based inclusive genomic interval. Start <= End.
// Chromosome and strand live on the owning transcript; all of a
// transcript's intervals share them.
type Interval struct {
	Start int64
	End   int64
}

// Length returns the number of bases covered by the interval.
func (iv Interval) Length() int64 {
	return iv.End - iv.Start + 1
}

// CDSInterval is a coding interval with its reading frame column.
type CDSInterval struct {
	Interval
	Frame string
}

// Transcript collects the annotation intervals of one transcript,
// accumulated from a GTF stream and finalized before classification.
type Transcript struct {
	ID             string
	GeneID         string
	GeneName       string
	GeneType       string
	TranscriptType string
	Chrom          string
	Strand         string // "+" or "-"
	Exons          []Interval
	UTRs           []Interval // explicit UTR features, any recognized type
	CDS            []CDSInterval
}

// IsCoding reports whether the transcript has annotated CDS intervals.
func (t *Transcript) IsCoding() bool {
	return len(t.CDS) > 0
}

// cdsEnvelope returns the minimum start and maximum end across all CDS
// intervals (genomic, strand-independent).
func (t *Transcript) cdsEnvelope() (int64, int64) {
	cdsMin := t.CDS[0].Start
	cdsMax := t.CDS[0].End
	for _, c := range t.CDS[1:] {
		if c.Start < cdsMin {
			cdsMin = c.Start
		}
		if c.End > cdsMax {
			cdsMax = c.End
		}
	}
	return cdsMin, cdsMax
}

// UTRType distinguishes 5' from 3' untranslated regions.
type UTRType int

const (
	FivePrime UTRType = iota
	ThreePrime
)

// Feature returns the GTF feature name for the UTR type.
func (u UTRType) Feature() string {
	if u == FivePrime {
		return "five_prime_utr"
	}
	return "three_prime_utr"
}

// Label returns the short header label for the UTR type.
func (u UTRType) Label() string {
	if u == FivePrime {
		return "5UTR"
	}
	return "3UTR"
}

// UTRRegion is the classified UTR of one type for one transcript.
// Segments are disjoint and sorted ascending by genomic start.
type UTRRegion struct {
	TranscriptID string
	GeneID       string
	GeneName     string
	Chrom        string
	Strand       string
	Type         UTRType
	Segments     []Interval
}

// Length returns the total number of bases across all segments.
func (r *UTRRegion) Length() int64 {
	var n int64
	for _, s := range r.Segments {
		n += s.Length()
	}
	return n
}
