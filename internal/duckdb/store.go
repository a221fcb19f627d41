// Package duckdb persists classified UTR regions in a queryable DuckDB
// database, as an alternative intermediate artifact to the GTF stream.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/inodb/gtf2utr/internal/classify"
)

// Store manages a DuckDB connection holding classified UTR segments.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS utr_segments (
		transcript_id VARCHAR,
		gene_id VARCHAR,
		gene_name VARCHAR,
		chrom VARCHAR,
		strand VARCHAR,
		utr_type VARCHAR,
		seg_start BIGINT,
		seg_end BIGINT,
		PRIMARY KEY (transcript_id, utr_type, seg_start)
	)`)
	return err
}

// WriteTranscript stores every segment of the transcript's classified UTR
// regions. It implements classify.ArtifactWriter.
func (s *Store) WriteTranscript(t *classify.Transcript, regions []*classify.UTRRegion) error {
	for _, r := range regions {
		for _, seg := range r.Segments {
			_, err := s.db.Exec(
				`INSERT OR REPLACE INTO utr_segments VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				r.TranscriptID, r.GeneID, r.GeneName, r.Chrom, r.Strand,
				r.Type.Feature(), seg.Start, seg.End)
			if err != nil {
				return fmt.Errorf("insert segment %s:%d-%d: %w", r.Chrom, seg.Start, seg.End, err)
			}
		}
	}
	return nil
}

// Flush implements classify.ArtifactWriter. Writes are not buffered.
func (s *Store) Flush() error {
	return nil
}

// LoadRegions reads all stored segments back as UTR regions, grouped by
// transcript and type, segments sorted ascending.
func (s *Store) LoadRegions() ([]*classify.UTRRegion, error) {
	rows, err := s.db.Query(`SELECT transcript_id, gene_id, gene_name, chrom, strand, utr_type, seg_start, seg_end
		FROM utr_segments
		ORDER BY transcript_id, utr_type, seg_start`)
	if err != nil {
		return nil, fmt.Errorf("query utr_segments: %w", err)
	}
	defer rows.Close()

	byKey := make(map[string]*classify.UTRRegion)
	var order []string

	for rows.Next() {
		var tid, geneID, geneName, chrom, strand, utrType string
		var start, end int64
		if err := rows.Scan(&tid, &geneID, &geneName, &chrom, &strand, &utrType, &start, &end); err != nil {
			return nil, fmt.Errorf("scan utr_segments row: %w", err)
		}

		key := tid + "\x00" + utrType
		r, ok := byKey[key]
		if !ok {
			t := classify.FivePrime
			if utrType == classify.ThreePrime.Feature() {
				t = classify.ThreePrime
			}
			r = &classify.UTRRegion{
				TranscriptID: tid,
				GeneID:       geneID,
				GeneName:     geneName,
				Chrom:        chrom,
				Strand:       strand,
				Type:         t,
			}
			byKey[key] = r
			order = append(order, key)
		}
		r.Segments = append(r.Segments, classify.Interval{Start: start, End: end})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read utr_segments: %w", err)
	}

	regions := make([]*classify.UTRRegion, 0, len(order))
	for _, key := range order {
		r := byKey[key]
		sort.Slice(r.Segments, func(i, j int) bool { return r.Segments[i].Start < r.Segments[j].Start })
		regions = append(regions, r)
	}
	return regions, nil
}

// SegmentCount returns the number of stored segments.
func (s *Store) SegmentCount() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM utr_segments`).Scan(&n)
	return n, err
}
