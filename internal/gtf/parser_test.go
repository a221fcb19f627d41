package gtf

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGTF = `##description: test GTF
chr1	HAVANA	exon	1000	1200	.	+	.	gene_id "ENSG00000001"; transcript_id "ENST00000001";
this line is malformed
chr1	HAVANA	CDS	1100	1200	.	+	0	gene_id "ENSG00000001"; transcript_id "ENST00000001";

chr1	HAVANA	exon	1500	1700	.	+	.	gene_id "ENSG00000001"; transcript_id "ENST00000001";
`

func drain(t *testing.T, p *Parser) []*Record {
	t.Helper()
	var records []*Record
	for {
		rec, err := p.Next()
		require.NoError(t, err)
		if rec == nil {
			return records
		}
		records = append(records, rec)
	}
}

func TestParser_SkipsCommentsAndMalformed(t *testing.T) {
	p := NewParserFromReader(strings.NewReader(sampleGTF))

	records := drain(t, p)
	require.Len(t, records, 3)

	assert.Equal(t, "exon", records[0].Feature)
	assert.Equal(t, "CDS", records[1].Feature)
	assert.Equal(t, int64(1500), records[2].Start)
	assert.Equal(t, 1, p.Skipped())
}

func TestParser_PlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.gtf")
	require.NoError(t, os.WriteFile(path, []byte(sampleGTF), 0644))

	p, err := NewParser(path)
	require.NoError(t, err)
	defer p.Close()

	records := drain(t, p)
	assert.Len(t, records, 3)
}

func TestParser_GzipFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.gtf.gz")

	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(sampleGTF))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	p, err := NewParser(path)
	require.NoError(t, err)
	defer p.Close()

	records := drain(t, p)
	assert.Len(t, records, 3)
}

func TestParser_MissingFile(t *testing.T) {
	_, err := NewParser(filepath.Join(t.TempDir(), "nope.gtf"))
	assert.Error(t, err)
}
