package classify

import (
	"sort"

	"github.com/inodb/gtf2utr/internal/gtf"
)

// Builder accumulates GTF records into transcripts keyed by transcript id.
// Records for one transcript need not be contiguous in the input: the
// builder buffers across the whole stream, trading memory for correctness
// on unsorted GTFs.
type Builder struct {
	transcripts       map[string]*Transcript
	proteinCodingOnly bool
	ignored           int
}

// NewBuilder creates an empty transcript builder.
func NewBuilder() *Builder {
	return &Builder{transcripts: make(map[string]*Transcript)}
}

// SetProteinCodingOnly restricts accumulation to records whose gene_type
// and transcript_type attributes are both "protein_coding".
func (b *Builder) SetProteinCodingOnly(on bool) {
	b.proteinCodingOnly = on
}

// Add routes one GTF record to its transcript accumulator.
// Records without a transcript_id or with an unrecognized feature type
// are ignored.
func (b *Builder) Add(rec *gtf.Record) {
	switch rec.Feature {
	case gtf.FeatureExon, gtf.FeatureCDS, gtf.FeatureUTR, gtf.FeatureFivePrimeUTR, gtf.FeatureThreePrimeUTR:
	default:
		return
	}

	if b.proteinCodingOnly {
		if rec.Attributes["gene_type"] != "protein_coding" ||
			rec.Attributes["transcript_type"] != "protein_coding" {
			b.ignored++
			return
		}
	}

	id := rec.TranscriptID()
	if id == "" {
		b.ignored++
		return
	}

	t, ok := b.transcripts[id]
	if !ok {
		t = &Transcript{
			ID:             id,
			GeneID:         rec.GeneID(),
			GeneName:       rec.GeneName(),
			GeneType:       rec.Attributes["gene_type"],
			TranscriptType: rec.Attributes["transcript_type"],
			Chrom:          rec.Chrom,
			Strand:         rec.Strand,
		}
		b.transcripts[id] = t
	}

	iv := Interval{Start: rec.Start, End: rec.End}
	switch rec.Feature {
	case gtf.FeatureExon:
		t.Exons = append(t.Exons, iv)
	case gtf.FeatureCDS:
		t.CDS = append(t.CDS, CDSInterval{Interval: iv, Frame: rec.Frame})
	default:
		t.UTRs = append(t.UTRs, iv)
	}
}

// Transcripts returns all accumulated transcripts sorted by id.
// Intervals within each transcript are sorted ascending by start.
// Sorting makes downstream artifact output deterministic.
func (b *Builder) Transcripts() []*Transcript {
	ids := make([]string, 0, len(b.transcripts))
	for id := range b.transcripts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := make([]*Transcript, 0, len(ids))
	for _, id := range ids {
		t := b.transcripts[id]
		sortIntervals(t.Exons)
		sortIntervals(t.UTRs)
		sort.Slice(t.CDS, func(i, j int) bool { return t.CDS[i].Start < t.CDS[j].Start })
		result = append(result, t)
	}
	return result
}

// Count returns the number of accumulated transcripts.
func (b *Builder) Count() int {
	return len(b.transcripts)
}

// Ignored returns the number of records dropped by filtering.
func (b *Builder) Ignored() int {
	return b.ignored
}

func sortIntervals(ivs []Interval) {
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].Start < ivs[j].Start })
}
