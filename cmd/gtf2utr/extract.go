package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/gtf2utr/internal/classify"
	"github.com/inodb/gtf2utr/internal/duckdb"
	"github.com/inodb/gtf2utr/internal/extract"
	"github.com/inodb/gtf2utr/internal/genome"
	"github.com/inodb/gtf2utr/internal/gtf"
)

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <utrs.gtf|utrs.duckdb> <genome.fa[.gz]> <output.fa>",
		Short: "Extract UTR sequences from a reference genome",
		Long: `Extract reads classified UTR regions (from the process stage's GTF
artifact or DuckDB store), loads the reference genome, and writes one
FASTA record per UTR region with a strand-corrected, stitched sequence.`,
		Example: `  gtf2utr extract utrs.gtf genome.fa.gz utrs.fa
  gtf2utr extract utrs.duckdb genome.fa utrs.fa`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(args[0], args[1], args[2])
		},
	}
}

func runExtract(regionsPath, fastaPath, outputPath string) error {
	regions, err := loadRegions(regionsPath)
	if err != nil {
		return err
	}
	logger.Info("loaded UTR regions", zap.Int("regions", len(regions)))

	g, err := genome.Load(fastaPath)
	if err != nil {
		return err
	}
	logger.Info("loaded reference genome", zap.Int("chromosomes", g.ChromosomeCount()))

	mode, err := extract.ParseOutOfRangeMode(viper.GetString("extract.on_out_of_range"))
	if err != nil {
		return err
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer outFile.Close()

	ext := extract.NewExtractor(g)
	ext.SetLogger(logger)
	ext.SetOutOfRangeMode(mode)

	writer := extract.NewFASTAWriter(outFile, viper.GetInt("output.line_width"))

	if err := ext.Run(regions, writer); err != nil {
		outFile.Close()
		os.Remove(outputPath)
		return err
	}

	return nil
}

// loadRegions loads classified UTR regions from either artifact format,
// chosen by file extension.
func loadRegions(path string) ([]*classify.UTRRegion, error) {
	if strings.HasSuffix(path, ".duckdb") || strings.HasSuffix(path, ".db") {
		store, err := duckdb.Open(path)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.LoadRegions()
	}

	parser, err := gtf.NewParser(path)
	if err != nil {
		return nil, err
	}
	defer parser.Close()
	return extract.LoadRegions(parser)
}
