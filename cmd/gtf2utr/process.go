package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/gtf2utr/internal/classify"
	"github.com/inodb/gtf2utr/internal/duckdb"
	"github.com/inodb/gtf2utr/internal/gtf"
)

func newProcessCmd() *cobra.Command {
	var (
		storePath   string
		allBiotypes bool
	)

	cmd := &cobra.Command{
		Use:   "process <input.gtf[.gz]> <output.gtf>",
		Short: "Classify UTR regions and write an annotated GTF artifact",
		Long: `Process reads a GTF annotation, groups records by transcript, and
classifies each coding transcript's UTR intervals as five_prime_utr or
three_prime_utr based on CDS position and strand direction. The result is
a GTF-compatible artifact consumable by the extract stage.`,
		Example: `  gtf2utr process gencode.v44.annotation.gtf.gz utrs.gtf
  gtf2utr process --store utrs.duckdb annotation.gtf utrs.gtf`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(args[0], args[1], storePath, allBiotypes)
		},
	}

	cmd.Flags().StringVar(&storePath, "store", "", "also persist classified regions to a DuckDB file")
	cmd.Flags().BoolVar(&allBiotypes, "all-biotypes", false, "process all biotypes, not only protein_coding")

	return cmd
}

func runProcess(inputPath, outputPath, storePath string, allBiotypes bool) error {
	parser, err := gtf.NewParser(inputPath)
	if err != nil {
		return err
	}
	defer parser.Close()

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer outFile.Close()

	writers := []classify.ArtifactWriter{classify.NewGTFArtifact(outFile)}

	if storePath != "" {
		store, err := duckdb.Open(storePath)
		if err != nil {
			return err
		}
		defer store.Close()
		writers = append(writers, store)
	}

	proc := newProcessor(allBiotypes)

	logger.Info("processing GTF annotations",
		zap.String("input", inputPath),
		zap.String("output", outputPath))

	if err := proc.Run(parser, writers...); err != nil {
		outFile.Close()
		os.Remove(outputPath)
		return err
	}

	return nil
}

// newProcessor builds a classification-stage processor from flags + config.
func newProcessor(allBiotypes bool) *classify.Processor {
	proc := classify.NewProcessor()
	proc.SetLogger(logger)
	proc.SetProteinCodingOnly(viper.GetBool("process.protein_coding_only") && !allBiotypes)
	return proc
}
