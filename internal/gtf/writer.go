package gtf

import (
	"bufio"
	"fmt"
	"io"
)

// Writer writes GTF lines with buffered output.
type Writer struct {
	w      *bufio.Writer
	source string
}

// NewWriter creates a GTF writer. All emitted features carry the given
// source column value.
func NewWriter(w io.Writer, source string) *Writer {
	return &Writer{w: bufio.NewWriter(w), source: source}
}

// Comment writes a header comment line (`##text`).
func (w *Writer) Comment(text string) error {
	_, err := fmt.Fprintf(w.w, "##%s\n", text)
	return err
}

// Feature writes a single GTF feature line.
func (w *Writer) Feature(chrom, feature string, start, end int64, score, strand, frame, attributes string) error {
	_, err := fmt.Fprintf(w.w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s\t%s\n",
		chrom, w.source, feature, start, end, score, strand, frame, attributes)
	return err
}

// Flush flushes buffered output.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
