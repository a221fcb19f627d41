package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/gtf2utr/internal/classify"
	"github.com/inodb/gtf2utr/internal/extract"
	"github.com/inodb/gtf2utr/internal/genome"
	"github.com/inodb/gtf2utr/internal/gtf"
)

func newPipelineCmd() *cobra.Command {
	var (
		keepGTF     string
		allBiotypes bool
	)

	cmd := &cobra.Command{
		Use:   "pipeline <input.gtf[.gz]> <genome.fa[.gz]> <output.fa>",
		Short: "Run classification and sequence extraction in one invocation",
		Long: `Pipeline runs both stages in-process: classify UTR regions from the
input GTF, then extract their sequences from the reference genome. No
intermediate file is written unless --keep-gtf asks for one.`,
		Example: `  gtf2utr pipeline gencode.gtf.gz genome.fa.gz utrs.fa
  gtf2utr pipeline --keep-gtf utrs.gtf gencode.gtf genome.fa utrs.fa`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(args[0], args[1], args[2], keepGTF, allBiotypes)
		},
	}

	cmd.Flags().StringVar(&keepGTF, "keep-gtf", "", "also write the intermediate annotated GTF to this path")
	cmd.Flags().BoolVar(&allBiotypes, "all-biotypes", false, "process all biotypes, not only protein_coding")

	return cmd
}

// regionCollector buffers classified regions in memory so the extract
// stage can consume them without an intermediate file.
type regionCollector struct {
	regions []*classify.UTRRegion
}

func (c *regionCollector) WriteTranscript(t *classify.Transcript, regions []*classify.UTRRegion) error {
	c.regions = append(c.regions, regions...)
	return nil
}

func (c *regionCollector) Flush() error { return nil }

func runPipeline(gtfPath, fastaPath, outputPath, keepGTF string, allBiotypes bool) error {
	parser, err := gtf.NewParser(gtfPath)
	if err != nil {
		return err
	}
	defer parser.Close()

	collector := &regionCollector{}
	writers := []classify.ArtifactWriter{collector}

	if keepGTF != "" {
		artifactFile, err := os.Create(keepGTF)
		if err != nil {
			return fmt.Errorf("create intermediate GTF: %w", err)
		}
		defer artifactFile.Close()
		writers = append(writers, classify.NewGTFArtifact(artifactFile))
	}

	proc := newProcessor(allBiotypes)
	if err := proc.Run(parser, writers...); err != nil {
		return err
	}

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

	if err := ext.Run(collector.regions, writer); err != nil {
		outFile.Close()
		os.Remove(outputPath)
		return err
	}

	return nil
}
