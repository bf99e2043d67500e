package scoring

import (
	"sort"

	"github.com/inodb/veff/internal/zoo"
)

// spliceConfig builds the shared configuration for an interval-based
// MMSplice variant: all five map the same three file roles and extract
// variant identity from the batch's variant and exon metadata.
func spliceConfig(model string) ModelConfig {
	return ModelConfig{
		Model: model,
		ParamMap: map[string]string{
			"gtf_file":   "gtf",
			"vcf_file":   "vcf_file",
			"fasta_file": "fasta_file",
		},
		VariantInfo: spliceVariantInfo,
	}
}

// spliceVariantInfo extracts one record's identity from a batch. The ID
// column is the variant annotation qualified by the overlapped exon.
func spliceVariantInfo(b *zoo.Batch, index int) VariantInfo {
	v := b.Metadata.Variant
	return VariantInfo{
		Chrom: v.Chrom[index],
		Pos:   v.Pos[index],
		ID:    v.Annotation[index] + ":" + b.Metadata.Exon.ID[index],
		Ref:   v.Ref[index],
		Alt:   v.Alt[index],
	}
}

// Configs enumerates every supported model. Fixed at build time; adding
// a model means adding an entry. Never mutated after init.
var Configs = map[string]ModelConfig{
	"MMSplice/modularPredictions": spliceConfig("MMSplice/modularPredictions"),
	"MMSplice/deltaLogitPSI":      spliceConfig("MMSplice/deltaLogitPSI"),
	"MMSplice/splicingEfficiency": spliceConfig("MMSplice/splicingEfficiency"),
	"MMSplice/mtsplice":           spliceConfig("MMSplice/mtsplice"),
	"MMSplice/pathogenicity":      spliceConfig("MMSplice/pathogenicity"),
}

// Lookup returns the configuration for a model identifier.
func Lookup(model string) (ModelConfig, bool) {
	cfg, ok := Configs[model]
	return cfg, ok
}

// Models returns the supported model identifiers, sorted.
func Models() []string {
	names := make([]string, 0, len(Configs))
	for name := range Configs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
