package genome

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFASTA = `>chr1 test chromosome
ACGTACGTAC
GTACGTACGT
>chr2
NNNNACGT
`

func TestParse(t *testing.T) {
	g, err := Parse(strings.NewReader(sampleFASTA))
	require.NoError(t, err)

	assert.Equal(t, 2, g.ChromosomeCount())

	seq, ok := g.Sequence("chr1")
	require.True(t, ok)
	assert.Equal(t, "ACGTACGTACGTACGTACGT", seq)

	seq, ok = g.Sequence("chr2")
	require.True(t, ok)
	assert.Equal(t, "NNNNACGT", seq)

	assert.False(t, g.Has("chrX"))
}

func TestParse_HeaderUsesFirstToken(t *testing.T) {
	g, err := Parse(strings.NewReader(">chr10 assembly=GRCh38 extra\nACGT\n"))
	require.NoError(t, err)
	assert.True(t, g.Has("chr10"))
}

func TestLoad_GzipFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genome.fa.gz")

	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(sampleFASTA))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	g, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, g.ChromosomeCount())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.fa"))
	assert.Error(t, err)
}
