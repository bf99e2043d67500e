// Package mmsplice implements the MMSplice model variants and their
// shared VCF/FASTA/GTF dataloader. All variants register themselves
// with the zoo at init time.
package mmsplice

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/inodb/veff/internal/zoo"
)

//go:embed descriptions.yaml
var descriptionsYAML []byte

// descriptor extends the zoo description with the combination
// parameters of one MMSplice variant.
type descriptor struct {
	zoo.Description `yaml:",inline"`
	Coefficients    []float64 `yaml:"coefficients"`
	Intercept       float64   `yaml:"intercept"`
	TissueFactors   []float64 `yaml:"tissue_factors"`
}

type descriptorFile struct {
	Models []descriptor `yaml:"models"`
}

// loadDescriptors parses the embedded model descriptors.
func loadDescriptors() ([]descriptor, error) {
	var file descriptorFile
	if err := yaml.Unmarshal(descriptionsYAML, &file); err != nil {
		return nil, fmt.Errorf("parse model descriptors: %w", err)
	}
	if len(file.Models) == 0 {
		return nil, fmt.Errorf("no model descriptors declared")
	}
	return file.Models, nil
}

func init() {
	descs, err := loadDescriptors()
	if err != nil {
		panic(fmt.Sprintf("mmsplice: %v", err))
	}

	for _, d := range descs {
		d := d
		zoo.Register(d.Description, func() (zoo.Model, error) {
			return &Model{desc: d}, nil
		})
	}
}
