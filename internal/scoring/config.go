// Package scoring drives end-to-end variant scoring: it maps the CLI's
// stable file-role vocabulary onto model dataloader parameters, derives
// output headers from declared model schemas and writes per-variant
// prediction rows as TSV.
package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/inodb/veff/internal/zoo"
)

// variantColumns are the fixed identity columns leading every output row.
var variantColumns = []string{"#CHROM", "POS", "ID", "REF", "ALT"}

// VariantInfo is the identity of one scored variant as it appears in
// the output.
type VariantInfo struct {
	Chrom string
	Pos   string
	ID    string
	Ref   string
	Alt   string
}

// ModelConfig describes one scorable model: its zoo name, the mapping
// from CLI file-role names to the dataloader's parameter names, and how
// to extract variant identity from a prediction batch.
type ModelConfig struct {
	Model       string
	ParamMap    map[string]string
	VariantInfo func(b *zoo.Batch, index int) VariantInfo
}

// ColumnLabels derives the output header from the model's declared
// schema: the five identity columns followed by one column per target,
// named by the declared label or a 1-based ordinal, qualified by the
// model name. A label count that disagrees with the target shape is a
// fatal schema inconsistency.
func (c ModelConfig) ColumnLabels() ([]string, error) {
	desc, err := zoo.Describe(c.Model)
	if err != nil {
		return nil, err
	}

	targets := desc.Targets
	if len(targets.Shape) == 0 || targets.Shape[0] <= 0 {
		return nil, fmt.Errorf("invalid description for model %s: no target shape declared", c.Model)
	}
	width := targets.Shape[0]

	labels := make([]string, 0, len(variantColumns)+width)
	labels = append(labels, variantColumns...)

	if len(targets.ColumnLabels) > 0 {
		if len(targets.ColumnLabels) != width {
			return nil, fmt.Errorf(
				"invalid description for model %s: %d column labels do not match target shape %d",
				c.Model, len(targets.ColumnLabels), width)
		}
		for _, label := range targets.ColumnLabels {
			labels = append(labels, c.Model+"/"+label)
		}
		return labels, nil
	}

	for i := 0; i < width; i++ {
		labels = append(labels, fmt.Sprintf("%s/%d", c.Model, i+1))
	}
	return labels, nil
}

// Dataloader resolves the model and constructs its default dataloader
// from CLI parameters. The supplied role-name set must exactly match
// the configured parameter map.
func (c ModelConfig) Dataloader(params map[string]string) (zoo.Dataloader, zoo.Model, error) {
	if err := c.checkParams(params); err != nil {
		return nil, nil, err
	}

	model, err := zoo.Get(c.Model)
	if err != nil {
		return nil, nil, err
	}

	args := make(map[string]string, len(c.ParamMap))
	for cliName, dataloaderName := range c.ParamMap {
		args[dataloaderName] = params[cliName]
	}

	dl, err := model.DefaultDataloader(args)
	if err != nil {
		return nil, nil, fmt.Errorf("construct dataloader for %s: %w", c.Model, err)
	}

	return dl, model, nil
}

// checkParams verifies the supplied role names exactly match the
// configured set: no missing names, no extras.
func (c ModelConfig) checkParams(params map[string]string) error {
	var missing, extra []string

	for name := range c.ParamMap {
		if _, ok := params[name]; !ok {
			missing = append(missing, name)
		}
	}
	for name := range params {
		if _, ok := c.ParamMap[name]; !ok {
			extra = append(extra, name)
		}
	}

	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}

	sort.Strings(missing)
	sort.Strings(extra)

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing "+strings.Join(missing, ", "))
	}
	if len(extra) > 0 {
		parts = append(parts, "extra "+strings.Join(extra, ", "))
	}
	return fmt.Errorf("dataloader for %s has mismatched required arguments: %s", c.Model, strings.Join(parts, "; "))
}
