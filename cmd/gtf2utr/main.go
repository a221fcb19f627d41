// Package main provides the gtf2utr command-line tool.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfgFile string
	verbose bool
	logger  = zap.NewNop()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gtf2utr",
		Short: "Extract classified 5'/3' UTR sequences from GTF annotations and a reference genome",
		Long: `gtf2utr classifies UTR regions in a GTF annotation (based on CDS position
and strand direction) and extracts the corresponding nucleotide sequences
from a reference genome FASTA file.

The two stages can run separately (process, then extract) with a
GTF-compatible intermediate artifact, or as a single pipeline.`,
		Example: `  # Full pipeline: GTF + genome FASTA -> UTR sequences
  gtf2utr pipeline gencode.gtf.gz genome.fa.gz utrs.fa

  # Split stages, resumable from the intermediate artifact
  gtf2utr process gencode.gtf.gz utrs.gtf
  gtf2utr extract utrs.gtf genome.fa.gz utrs.fa`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(); err != nil {
				return err
			}
			return initLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.gtf2utr.yaml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newProcessCmd())
	root.AddCommand(newExtractCmd())
	root.AddCommand(newPipelineCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func initConfig() error {
	viper.SetDefault("output.line_width", 60)
	viper.SetDefault("extract.on_out_of_range", "skip")
	viper.SetDefault("process.protein_coding_only", true)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		viper.SetConfigFile(filepath.Join(home, ".gtf2utr.yaml"))
	}

	viper.SetEnvPrefix("GTF2UTR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine; a broken one is not.
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("read config: %w", err)
			}
		}
	}
	return nil
}

func initLogger() error {
	cfg := zap.NewDevelopmentConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	logger = l
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gtf2utr version %s (%s) built %s\n", version, commit, date)
		},
	}
}
