package extract

import (
	"bufio"
	"fmt"
	"io"
)

// DefaultLineWidth is the standard FASTA sequence wrap width.
const DefaultLineWidth = 60

// FASTAWriter writes sequence records with wrapped sequence lines.
type FASTAWriter struct {
	w         *bufio.Writer
	lineWidth int
}

// NewFASTAWriter creates a FASTA writer. A lineWidth <= 0 falls back to
// DefaultLineWidth.
func NewFASTAWriter(w io.Writer, lineWidth int) *FASTAWriter {
	if lineWidth <= 0 {
		lineWidth = DefaultLineWidth
	}
	return &FASTAWriter{w: bufio.NewWriter(w), lineWidth: lineWidth}
}

// Write writes one record, wrapping the sequence at the configured width.
func (w *FASTAWriter) Write(rec *SequenceRecord) error {
	if _, err := fmt.Fprintf(w.w, ">%s\n", rec.Header); err != nil {
		return err
	}
	seq := rec.Sequence
	for len(seq) > w.lineWidth {
		if _, err := fmt.Fprintln(w.w, seq[:w.lineWidth]); err != nil {
			return err
		}
		seq = seq[w.lineWidth:]
	}
	if len(seq) > 0 {
		if _, err := fmt.Fprintln(w.w, seq); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes buffered output.
func (w *FASTAWriter) Flush() error {
	return w.w.Flush()
}
