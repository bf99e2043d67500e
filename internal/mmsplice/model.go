package mmsplice

import (
	"fmt"

	"github.com/inodb/veff/internal/zoo"
)

// Model is one MMSplice variant: a shared dataloader plus a
// variant-specific combination of the per-module deltas.
type Model struct {
	desc descriptor
}

// Description returns the model's declared description.
func (m *Model) Description() zoo.Description {
	return m.desc.Description
}

// dataloaderParams are the argument names the default dataloader expects.
var dataloaderParams = map[string]bool{"gtf": true, "vcf_file": true, "fasta_file": true}

// DefaultDataloader constructs the splice dataloader from named file
// arguments (gtf, vcf_file, fasta_file).
func (m *Model) DefaultDataloader(args map[string]string) (zoo.Dataloader, error) {
	for name := range dataloaderParams {
		if args[name] == "" {
			return nil, fmt.Errorf("dataloader argument %q is required", name)
		}
	}
	for name := range args {
		if !dataloaderParams[name] {
			return nil, fmt.Errorf("unknown dataloader argument %q", name)
		}
	}

	return NewDataloader(args["gtf"], args["fasta_file"], args["vcf_file"], DefaultBatchSize)
}

// PredictOnBatch scores one batch of region inputs.
func (m *Model) PredictOnBatch(inputs any) (zoo.Prediction, error) {
	in, ok := inputs.(*Inputs)
	if !ok {
		return nil, fmt.Errorf("mmsplice: unexpected batch inputs type %T", inputs)
	}

	n := in.Len()
	deltas := make([][]float64, n)
	for i := 0; i < n; i++ {
		var regions [moduleCount]SeqPair
		for mod := 0; mod < moduleCount; mod++ {
			regions[mod] = in.Regions[mod][i]
		}
		deltas[i] = moduleDeltas(regions)
	}

	switch m.desc.Name {
	case "MMSplice/modularPredictions":
		return deltas, nil

	case "MMSplice/deltaLogitPSI", "MMSplice/splicingEfficiency":
		out := make([]float64, n)
		for i := range deltas {
			out[i] = dot(m.desc.Coefficients, deltas[i])
		}
		return out, nil

	case "MMSplice/pathogenicity":
		out := make([]float64, n)
		for i := range deltas {
			out[i] = logistic(dot(m.desc.Coefficients, deltas[i]) + m.desc.Intercept)
		}
		return out, nil

	case "MMSplice/mtsplice":
		out := make([][]float64, n)
		for i := range deltas {
			var base float64
			for _, d := range deltas[i] {
				base += d
			}
			row := make([]float64, len(m.desc.TissueFactors))
			for j, factor := range m.desc.TissueFactors {
				row[j] = base * factor
			}
			out[i] = row
		}
		return out, nil
	}

	return nil, fmt.Errorf("mmsplice: unknown model variant %q", m.desc.Name)
}
