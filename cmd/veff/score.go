package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/veff/internal/scoring"
)

func newScoreCmd() *cobra.Command {
	var (
		model     string
		vcfPath   string
		fastaPath string
		gtfPath   string
		outPath   string
		assembly  string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score variants in a VCF against a splicing model",
		Long: `Score every variant in a VCF file against one model, writing a TSV
with the five variant identity columns followed by the model's outputs.

When --gtf or --fasta are omitted, the downloaded reference cache for
the configured assembly is used (see: veff download).`,
		Example: `  veff score -m MMSplice/deltaLogitPSI --vcf in.vcf --fasta ref.fa --gtf genes.gtf -o out.tsv
  veff score -m MMSplice/mtsplice --vcf in.vcf -o out.tsv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, ok := scoring.Lookup(model)
			if !ok {
				return fmt.Errorf("unknown model %q (supported: %s)",
					model, strings.Join(scoring.Models(), ", "))
			}

			if assembly == "" {
				assembly = viper.GetString("assembly")
			}

			if gtfPath == "" || fastaPath == "" {
				refGTF, refFASTA, found := findReferenceFiles(assembly)
				if gtfPath == "" {
					if !found || refGTF == "" {
						return fmt.Errorf("no GTF given and no reference cache for %s (run: veff download --assembly %s)", assembly, assembly)
					}
					gtfPath = refGTF
				}
				if fastaPath == "" {
					if !found || refFASTA == "" {
						return fmt.Errorf("no FASTA given and no reference cache for %s (run: veff download --assembly %s)", assembly, assembly)
					}
					fastaPath = refFASTA
				}
			}

			logger := newLogger()
			defer logger.Sync()

			scorer := scoring.NewScorer(cfg)
			scorer.SetLogger(logger)

			return scorer.Run(scoring.Options{
				VCF:    vcfPath,
				FASTA:  fastaPath,
				GTF:    gtfPath,
				Output: outPath,
			})
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "Model identifier (see: veff models)")
	cmd.Flags().StringVar(&vcfPath, "vcf", "", "Input VCF file")
	cmd.Flags().StringVar(&fastaPath, "fasta", "", "Reference genome FASTA file")
	cmd.Flags().StringVar(&gtfPath, "gtf", "", "Gene annotation GTF file")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Output TSV file")
	cmd.Flags().StringVar(&assembly, "assembly", "", "Genome assembly for the reference cache (default from config)")

	cmd.MarkFlagRequired("model")
	cmd.MarkFlagRequired("vcf")
	cmd.MarkFlagRequired("output")

	return cmd
}
