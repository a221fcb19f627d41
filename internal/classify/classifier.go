package classify

import (
	"go.uber.org/zap"
)

// Classifier derives UTR regions from finalized transcripts.
type Classifier struct {
	logger *zap.Logger
	stats  Stats
}

// Stats holds run-scoped classification counters.
type Stats struct {
	Transcripts           int // transcripts classified
	CodingTranscripts     int // transcripts with at least one CDS interval
	IncompleteTranscripts int // CDS present but no exon or UTR intervals
	FivePrimeRegions      int
	ThreePrimeRegions     int
}

// NewClassifier creates a classifier with a no-op logger.
func NewClassifier() *Classifier {
	return &Classifier{logger: zap.NewNop()}
}

// SetLogger sets the logger for warning messages.
func (c *Classifier) SetLogger(l *zap.Logger) {
	c.logger = l
}

// Stats returns a copy of the run counters.
func (c *Classifier) Stats() Stats {
	return c.stats
}

// Classify derives the 5' and 3' UTR regions of a transcript.
// It returns zero, one, or two regions: transcripts without CDS produce
// none, and so do transcripts whose CDS covers every exon base.
//
// When the transcript carries explicit UTR features those are
// authoritative and exon-derived UTRs are not computed, so a transcript
// annotated both ways is not emitted twice. Explicit intervals are still
// clipped against the CDS envelope, which reclassifies mislabeled UTR
// features by their actual position.
func (c *Classifier) Classify(t *Transcript) []*UTRRegion {
	c.stats.Transcripts++

	if !t.IsCoding() {
		return nil
	}
	c.stats.CodingTranscripts++

	cdsMin, cdsMax := t.cdsEnvelope()

	source := t.UTRs
	if len(source) == 0 {
		source = t.Exons
	}
	if len(source) == 0 {
		c.stats.IncompleteTranscripts++
		c.logger.Warn("transcript has CDS but no exon or UTR intervals",
			zap.String("transcript_id", t.ID))
		return nil
	}

	var upstream, downstream []Interval
	for _, iv := range source {
		up, down := clipToEnvelope(iv, cdsMin, cdsMax)
		if up != nil {
			upstream = append(upstream, *up)
		}
		if down != nil {
			downstream = append(downstream, *down)
		}
	}

	var regions []*UTRRegion
	if r := t.newRegion(resolveUTRType(t.Strand, true), upstream); r != nil {
		regions = append(regions, r)
	}
	if r := t.newRegion(resolveUTRType(t.Strand, false), downstream); r != nil {
		regions = append(regions, r)
	}

	// Keep 5' before 3' in the output regardless of strand.
	if len(regions) == 2 && regions[0].Type == ThreePrime {
		regions[0], regions[1] = regions[1], regions[0]
	}

	for _, r := range regions {
		if r.Type == FivePrime {
			c.stats.FivePrimeRegions++
		} else {
			c.stats.ThreePrimeRegions++
		}
	}

	return regions
}

// newRegion wraps non-empty segment lists in a UTRRegion. Segments arrive
// in ascending order because source intervals are pre-sorted and clipping
// preserves order.
func (t *Transcript) newRegion(utrType UTRType, segments []Interval) *UTRRegion {
	if len(segments) == 0 {
		return nil
	}
	return &UTRRegion{
		TranscriptID: t.ID,
		GeneID:       t.GeneID,
		GeneName:     t.GeneName,
		Chrom:        t.Chrom,
		Strand:       t.Strand,
		Type:         utrType,
		Segments:     segments,
	}
}

// clipToEnvelope clips an interval against the CDS envelope [cdsMin, cdsMax].
// The portion strictly below cdsMin is the upstream candidate, the portion
// strictly above cdsMax the downstream candidate; overlap with the envelope
// is coding and excluded.
func clipToEnvelope(iv Interval, cdsMin, cdsMax int64) (upstream, downstream *Interval) {
	if iv.Start < cdsMin {
		end := iv.End
		if end >= cdsMin {
			end = cdsMin - 1
		}
		upstream = &Interval{Start: iv.Start, End: end}
	}
	if iv.End > cdsMax {
		start := iv.Start
		if start <= cdsMax {
			start = cdsMax + 1
		}
		downstream = &Interval{Start: start, End: iv.End}
	}
	return upstream, downstream
}

// resolveUTRType maps genomic position relative to the CDS to a UTR type.
// On the plus strand upstream (lower coordinate) is 5'; on the minus strand
// transcription runs genomic-high-to-low, so the mapping reverses.
func resolveUTRType(strand string, upstream bool) UTRType {
	if (strand == "-") == upstream {
		return ThreePrime
	}
	return FivePrime
}
