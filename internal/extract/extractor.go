// Package extract resolves classified UTR regions into nucleotide sequences.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/gtf2utr/internal/classify"
	"github.com/inodb/gtf2utr/internal/genome"
)

// Per-region error kinds. Both are non-fatal: the region is skipped and
// counted, and the run continues.
var (
	ErrMissingChromosome    = errors.New("chromosome not found in genome")
	ErrCoordinateOutOfRange = errors.New("segment coordinates exceed chromosome length")
)

// OutOfRangeMode controls how segments extending past the chromosome end
// are handled.
type OutOfRangeMode int

const (
	// SkipRegion drops the whole region and counts an error.
	SkipRegion OutOfRangeMode = iota
	// ClipSegment truncates the segment to the chromosome bounds.
	ClipSegment
)

// ParseOutOfRangeMode parses the config value for the out-of-range policy.
func ParseOutOfRangeMode(s string) (OutOfRangeMode, error) {
	switch s {
	case "", "skip":
		return SkipRegion, nil
	case "clip":
		return ClipSegment, nil
	}
	return SkipRegion, fmt.Errorf("unknown out-of-range mode %q (want skip or clip)", s)
}

// SequenceRecord is one output FASTA record.
type SequenceRecord struct {
	Header   string
	Sequence string
}

// Stats holds run-scoped extraction counters.
type Stats struct {
	TranscriptsProcessed int
	SequencesExtracted   int
	Errors               int
}

// Extractor slices UTR region segments out of chromosome sequences and
// stitches them into strand-corrected output records.
type Extractor struct {
	genome     *genome.Genome
	outOfRange OutOfRangeMode
	logger     *zap.Logger
	stats      Stats
}

// NewExtractor creates an extractor over a loaded genome.
func NewExtractor(g *genome.Genome) *Extractor {
	return &Extractor{genome: g, logger: zap.NewNop()}
}

// SetLogger sets the logger for warning messages.
func (e *Extractor) SetLogger(l *zap.Logger) {
	e.logger = l
}

// SetOutOfRangeMode sets the policy for segments past the chromosome end.
func (e *Extractor) SetOutOfRangeMode(m OutOfRangeMode) {
	e.outOfRange = m
}

// Stats returns a copy of the run counters.
func (e *Extractor) Stats() Stats {
	return e.stats
}

// Extract resolves one UTR region into a sequence record.
// It returns (nil, nil) when the resolved sequence is empty: nothing to emit.
// Missing chromosomes and out-of-range coordinates (in skip mode) return a
// wrapped sentinel error; callers count and continue.
func (e *Extractor) Extract(r *classify.UTRRegion) (*SequenceRecord, error) {
	chromSeq, ok := e.genome.Sequence(r.Chrom)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingChromosome, r.Chrom)
	}

	// Slice in ascending genomic order; converted 1-based inclusive to
	// 0-based half-open.
	var parts []string
	var ranges []string
	for _, s := range r.Segments {
		start, end := s.Start, s.End
		if start < 1 || end > int64(len(chromSeq)) {
			if e.outOfRange == SkipRegion {
				return nil, fmt.Errorf("%w: %s:%d-%d (chromosome length %d)",
					ErrCoordinateOutOfRange, r.Chrom, s.Start, s.End, len(chromSeq))
			}
			if start < 1 {
				start = 1
			}
			if end > int64(len(chromSeq)) {
				end = int64(len(chromSeq))
			}
			if start > end {
				continue
			}
		}
		parts = append(parts, chromSeq[start-1:end])
		ranges = append(ranges, fmt.Sprintf("%s:%d-%d", r.Chrom, start, end))
	}

	seq := strings.Join(parts, "")
	if seq == "" {
		return nil, nil
	}

	// The minus strand reads genomic-high-to-low: the transcript sequence
	// is the reverse complement of the ascending concatenation. Range
	// display stays ascending either way.
	if r.Strand == "-" {
		seq = genome.ReverseComplement(seq)
	}

	return &SequenceRecord{
		Header:   formatHeader(r, len(seq), ranges),
		Sequence: seq,
	}, nil
}

// formatHeader builds the FASTA description line (without the leading >).
func formatHeader(r *classify.UTRRegion, length int, ranges []string) string {
	gene := r.GeneID
	if r.GeneName != "" {
		gene += "|" + r.GeneName
	}
	return fmt.Sprintf("%s_%s length=%d strand=%s gene=%s range=%s",
		r.TranscriptID, r.Type.Label(), length, r.Strand, gene, strings.Join(ranges, ";"))
}

// Run extracts every region and writes non-empty records to out.
// Per-region errors are logged and counted; only writer failures or a run
// that produced zero sequences are fatal.
func (e *Extractor) Run(regions []*classify.UTRRegion, out *FASTAWriter) error {
	seen := make(map[string]bool)

	for _, r := range regions {
		if !seen[r.TranscriptID] {
			seen[r.TranscriptID] = true
			e.stats.TranscriptsProcessed++
		}

		rec, err := e.Extract(r)
		if err != nil {
			e.stats.Errors++
			e.logger.Warn("skipping region",
				zap.String("transcript_id", r.TranscriptID),
				zap.String("utr_type", r.Type.Label()),
				zap.Error(err))
			continue
		}
		if rec == nil {
			continue
		}

		if err := out.Write(rec); err != nil {
			return fmt.Errorf("write sequence record: %w", err)
		}
		e.stats.SequencesExtracted++
	}

	if err := out.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	if e.stats.SequencesExtracted == 0 {
		return fmt.Errorf("no UTR sequences extracted")
	}

	e.logger.Info("extraction complete",
		zap.Int("transcripts_processed", e.stats.TranscriptsProcessed),
		zap.Int("sequences_extracted", e.stats.SequencesExtracted),
		zap.Int("errors", e.stats.Errors))

	return nil
}
