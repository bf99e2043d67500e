package mmsplice

import "math"

// Module indices into per-record region slices. The order matches the
// modularPredictions column labels.
const (
	moduleAcceptorIntron = iota
	moduleAcceptor
	moduleExon
	moduleDonor
	moduleDonorIntron
	moduleCount
)

// moduleWeights are per-module base log-odds tables standing in for the
// published module parameters. Scores are length-normalized so windows
// of different sizes stay comparable.
var moduleWeights = [moduleCount]map[byte]float64{
	moduleAcceptorIntron: {'A': -0.11, 'C': 0.19, 'G': -0.25, 'T': 0.21},
	moduleAcceptor:       {'A': 0.42, 'C': 0.08, 'G': 0.31, 'T': -0.37},
	moduleExon:           {'A': 0.05, 'C': 0.12, 'G': 0.14, 'T': -0.09},
	moduleDonor:          {'A': -0.18, 'C': -0.22, 'G': 0.47, 'T': 0.28},
	moduleDonorIntron:    {'A': 0.09, 'C': -0.14, 'G': 0.33, 'T': 0.17},
}

// moduleScore scores one region window with the module's base table.
func moduleScore(module int, seq string) float64 {
	if len(seq) == 0 {
		return 0
	}

	var sum float64
	for i := 0; i < len(seq); i++ {
		sum += moduleWeights[module][seq[i]]
	}
	return sum / float64(len(seq))
}

// moduleDeltas returns the alt-vs-ref score delta for each module.
func moduleDeltas(regions [moduleCount]SeqPair) []float64 {
	deltas := make([]float64, moduleCount)
	for m := 0; m < moduleCount; m++ {
		deltas[m] = moduleScore(m, regions[m].Alt) - moduleScore(m, regions[m].Ref)
	}
	return deltas
}

// dot computes the inner product of coefficients and deltas.
func dot(coefficients, deltas []float64) float64 {
	var sum float64
	for i := range coefficients {
		sum += coefficients[i] * deltas[i]
	}
	return sum
}

// logistic is the standard logistic function.
func logistic(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
