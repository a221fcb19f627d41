package classify

import (
	"io"

	"github.com/inodb/gtf2utr/internal/gtf"
)

// GTFArtifact writes classified transcripts as a GTF-compatible stream:
// each coding transcript's CDS lines followed by its classified UTR lines,
// so the extract stage (or any GTF consumer) can pick them up later.
type GTFArtifact struct {
	w             *gtf.Writer
	headerWritten bool
}

// NewGTFArtifact creates an artifact writer on top of w.
func NewGTFArtifact(w io.Writer) *GTFArtifact {
	return &GTFArtifact{w: gtf.NewWriter(w, "gtf2utr")}
}

func (a *GTFArtifact) writeHeader() error {
	if a.headerWritten {
		return nil
	}
	a.headerWritten = true
	for _, c := range []string{
		"gff-version 2",
		"source: gtf2utr",
		"description: GTF with classified UTR regions",
	} {
		if err := a.w.Comment(c); err != nil {
			return err
		}
	}
	return nil
}

// WriteTranscript writes one coding transcript's CDS and UTR lines.
func (a *GTFArtifact) WriteTranscript(t *Transcript, regions []*UTRRegion) error {
	if err := a.writeHeader(); err != nil {
		return err
	}

	attrs := gtf.AttributeString([][2]string{
		{"gene_id", t.GeneID},
		{"transcript_id", t.ID},
		{"gene_type", t.GeneType},
		{"gene_name", t.GeneName},
		{"transcript_type", t.TranscriptType},
	})

	for _, c := range t.CDS {
		if err := a.w.Feature(t.Chrom, gtf.FeatureCDS, c.Start, c.End, ".", t.Strand, c.Frame, attrs); err != nil {
			return err
		}
	}

	for _, r := range regions {
		for _, s := range r.Segments {
			if err := a.w.Feature(t.Chrom, r.Type.Feature(), s.Start, s.End, ".", t.Strand, ".", attrs); err != nil {
				return err
			}
		}
	}

	return nil
}

// Flush flushes buffered output.
func (a *GTFArtifact) Flush() error {
	return a.w.Flush()
}
