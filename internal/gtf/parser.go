package gtf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parser reads GTF records from a file.
// Malformed lines are skipped and counted rather than aborting the scan.
type Parser struct {
	scanner    *bufio.Scanner
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
	skipped    int
}

// NewParser creates a parser for the given GTF file.
// Supports both plain and gzip-compressed input, detected by magic bytes.
func NewParser(path string) (*Parser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open GTF file: %w", err)
	}

	p := &Parser{file: file}

	// Check for gzip magic number (0x1f, 0x8b)
	buf := make([]byte, 2)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		file.Close()
		return nil, fmt.Errorf("read GTF file: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek GTF file: %w", err)
	}

	var reader io.Reader = file
	if n == 2 && buf[0] == 0x1f && buf[1] == 0x8b {
		p.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		reader = p.gzipReader
	}

	p.scanner = newScanner(reader)
	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader.
func NewParserFromReader(r io.Reader) *Parser {
	return &Parser{scanner: newScanner(r)}
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for long attribute columns
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)
	return scanner
}

// Next returns the next GTF record, or nil at end of input.
// Comment lines and malformed lines are skipped; malformed lines are counted.
func (p *Parser) Next() (*Record, error) {
	for p.scanner.Scan() {
		p.lineNumber++
		line := p.scanner.Text()

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		rec, err := ParseLine(line)
		if err != nil {
			p.skipped++
			continue
		}
		return rec, nil
	}

	if err := p.scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan GTF: %w", err)
	}
	return nil, nil
}

// Skipped returns the number of malformed lines skipped so far.
func (p *Parser) Skipped() int {
	return p.skipped
}

// LineNumber returns the number of lines read so far.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}

// Close closes the underlying file handles.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}
