package classify

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/inodb/gtf2utr/internal/gtf"
)

// ArtifactWriter receives each coding transcript with its classified UTR
// regions. Implementations persist the intermediate artifact (GTF stream,
// DuckDB store).
type ArtifactWriter interface {
	WriteTranscript(t *Transcript, regions []*UTRRegion) error
	Flush() error
}

// Processor runs the classification stage: it drains a GTF record stream,
// groups records into transcripts, classifies UTRs, and hands coding
// transcripts to the artifact writers.
type Processor struct {
	builder    *Builder
	classifier *Classifier
	logger     *zap.Logger
}

// NewProcessor creates a processor with a no-op logger.
func NewProcessor() *Processor {
	return &Processor{
		builder:    NewBuilder(),
		classifier: NewClassifier(),
		logger:     zap.NewNop(),
	}
}

// SetLogger sets the logger for progress and warning messages.
func (p *Processor) SetLogger(l *zap.Logger) {
	p.logger = l
	p.classifier.SetLogger(l)
}

// SetProteinCodingOnly restricts processing to protein_coding records.
func (p *Processor) SetProteinCodingOnly(on bool) {
	p.builder.SetProteinCodingOnly(on)
}

// Stats returns the classification counters accumulated by Run.
func (p *Processor) Stats() Stats {
	return p.classifier.Stats()
}

// Skipped returns the number of malformed or filtered input records.
func (p *Processor) Skipped() int {
	return p.builder.Ignored()
}

// Run drains the parser and writes every coding transcript to the given
// writers. It returns an error when the input is unreadable or when no
// coding transcript was found.
func (p *Processor) Run(parser *gtf.Parser, writers ...ArtifactWriter) error {
	for {
		rec, err := parser.Next()
		if err != nil {
			return fmt.Errorf("read GTF: %w", err)
		}
		if rec == nil {
			break
		}
		p.builder.Add(rec)
	}

	if parser.Skipped() > 0 {
		p.logger.Warn("skipped malformed GTF lines", zap.Int("lines", parser.Skipped()))
	}

	p.logger.Info("accumulated transcripts", zap.Int("transcripts", p.builder.Count()))

	for _, t := range p.builder.Transcripts() {
		regions := p.classifier.Classify(t)
		if !t.IsCoding() {
			continue
		}
		for _, w := range writers {
			if err := w.WriteTranscript(t, regions); err != nil {
				return fmt.Errorf("write transcript %s: %w", t.ID, err)
			}
		}
	}

	for _, w := range writers {
		if err := w.Flush(); err != nil {
			return fmt.Errorf("flush artifact: %w", err)
		}
	}

	stats := p.classifier.Stats()
	if stats.CodingTranscripts == 0 {
		return fmt.Errorf("no coding transcripts found in input")
	}

	p.logger.Info("classification complete",
		zap.Int("transcripts", stats.Transcripts),
		zap.Int("coding_transcripts", stats.CodingTranscripts),
		zap.Int("five_prime_regions", stats.FivePrimeRegions),
		zap.Int("three_prime_regions", stats.ThreePrimeRegions),
		zap.Int("incomplete_transcripts", stats.IncompleteTranscripts))

	return nil
}
