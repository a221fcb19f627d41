// Package gtf provides streaming GTF parsing and writing.
package gtf

import (
	"fmt"
	"strconv"
	"strings"
)

// Feature types recognized by the UTR pipeline. Other feature types are
// passed through by the parser and ignored by consumers.
const (
	FeatureExon          = "exon"
	FeatureCDS           = "CDS"
	FeatureUTR           = "UTR"
	FeatureFivePrimeUTR  = "five_prime_utr"
	FeatureThreePrimeUTR = "three_prime_utr"
)

// Record represents a single parsed GTF line.
// Start and End are 1-based inclusive genomic coordinates.
type Record struct {
	Chrom      string
	Source     string
	Feature    string
	Start      int64
	End        int64
	Score      string
	Strand     string
	Frame      string
	Attributes map[string]string
}

// TranscriptID returns the transcript_id attribute, or "" if absent.
func (r *Record) TranscriptID() string {
	return r.Attributes["transcript_id"]
}

// GeneID returns the gene_id attribute, or "" if absent.
func (r *Record) GeneID() string {
	return r.Attributes["gene_id"]
}

// GeneName returns the gene_name attribute, or "" if absent.
func (r *Record) GeneName() string {
	return r.Attributes["gene_name"]
}

// IsUTRFeature reports whether the record is one of the recognized
// UTR feature types.
func (r *Record) IsUTRFeature() bool {
	switch r.Feature {
	case FeatureUTR, FeatureFivePrimeUTR, FeatureThreePrimeUTR:
		return true
	}
	return false
}

// ParseLine parses a single GTF data line.
// Comment lines must be filtered by the caller.
func ParseLine(line string) (*Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 9 {
		return nil, fmt.Errorf("invalid GTF line: expected 9 fields, got %d", len(fields))
	}

	start, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse start: %w", err)
	}

	end, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse end: %w", err)
	}

	if start > end {
		return nil, fmt.Errorf("invalid interval: start %d > end %d", start, end)
	}

	return &Record{
		Chrom:      fields[0],
		Source:     fields[1],
		Feature:    fields[2],
		Start:      start,
		End:        end,
		Score:      fields[5],
		Strand:     fields[6],
		Frame:      fields[7],
		Attributes: parseAttributes(fields[8]),
	}, nil
}

// parseAttributes parses the GTF attribute column.
// Format: key "value"; key "value"; ...
func parseAttributes(attrStr string) map[string]string {
	attrs := make(map[string]string)

	for _, part := range strings.Split(attrStr, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		idx := strings.Index(part, " ")
		if idx == -1 {
			continue
		}

		key := part[:idx]
		value := strings.TrimSpace(part[idx+1:])
		value = strings.Trim(value, "\"")

		attrs[key] = value
	}

	return attrs
}

// AttributeString renders key/value pairs in the given order using the
// GTF `key "value"; ` convention.
func AttributeString(pairs [][2]string) string {
	var b strings.Builder
	for i, kv := range pairs {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s \"%s\";", kv[0], kv[1])
	}
	return b.String()
}
