// Package genome provides reference genome loading and sequence helpers.
package genome

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Genome holds full chromosome sequences keyed by chromosome name.
// It is loaded once per run and read-only during extraction.
type Genome struct {
	sequences map[string]string
}

// Load reads a reference FASTA file into memory.
// Supports both plain and gzip-compressed input, detected by magic bytes.
func Load(path string) (*Genome, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open FASTA file: %w", err)
	}
	defer f.Close()

	// Check for gzip magic number (0x1f, 0x8b)
	buf := make([]byte, 2)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read FASTA file: %w", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("seek FASTA file: %w", err)
	}

	var reader io.Reader = f
	if n == 2 && buf[0] == 0x1f && buf[1] == 0x8b {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return Parse(reader)
}

// Parse reads FASTA content from a reader.
// The chromosome name is the first whitespace-delimited token of the header.
func Parse(r io.Reader) (*Genome, error) {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for long sequence lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	g := &Genome{sequences: make(map[string]string)}

	var currentChrom string
	var currentSeq strings.Builder

	flush := func() {
		if currentChrom != "" && currentSeq.Len() > 0 {
			g.sequences[currentChrom] = currentSeq.String()
		}
	}

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, ">") {
			flush()
			header := strings.TrimPrefix(line, ">")
			currentChrom = strings.Fields(header)[0]
			currentSeq.Reset()
		} else {
			currentSeq.WriteString(strings.TrimSpace(line))
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan FASTA: %w", err)
	}

	return g, nil
}

// Sequence returns the full sequence for a chromosome.
func (g *Genome) Sequence(chrom string) (string, bool) {
	seq, ok := g.sequences[chrom]
	return seq, ok
}

// Has reports whether the chromosome is loaded.
func (g *Genome) Has(chrom string) bool {
	_, ok := g.sequences[chrom]
	return ok
}

// ChromosomeCount returns the number of loaded chromosomes.
func (g *Genome) ChromosomeCount() int {
	return len(g.sequences)
}
