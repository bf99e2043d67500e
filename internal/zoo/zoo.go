// Package zoo defines the model-zoo boundary: model descriptions,
// predictors and their default dataloaders. Model implementations
// register themselves here and are resolved by name.
package zoo

// TargetSchema describes a model's declared output schema.
type TargetSchema struct {
	// Shape is the per-record output shape; Shape[0] is the number of
	// predicted values per variant.
	Shape []int `yaml:"shape"`
	// ColumnLabels optionally names each output column. When present,
	// its length must equal Shape[0].
	ColumnLabels []string `yaml:"column_labels"`
}

// Description describes a registered model.
type Description struct {
	Name    string       `yaml:"name"`
	Doc     string       `yaml:"doc"`
	Targets TargetSchema `yaml:"targets"`
}

// Model is a resolved predictor with its default dataloader.
type Model interface {
	// Description returns the model's declared description.
	Description() Description

	// DefaultDataloader constructs the model's dataloader from named
	// arguments (file paths keyed by the dataloader's parameter names).
	DefaultDataloader(args map[string]string) (Dataloader, error)

	// PredictOnBatch runs inference on one batch of inputs and returns
	// a scalar, vector or matrix prediction.
	PredictOnBatch(inputs any) (Prediction, error)
}

// Dataloader produces a finite sequence of prediction batches.
type Dataloader interface {
	// Next returns the next batch, or nil, nil when exhausted.
	Next() (*Batch, error)

	// Close releases any underlying resources.
	Close() error
}

// Batch is one chunk of records ready for prediction. Inputs are opaque
// to callers and interpreted by the model that produced the dataloader;
// Metadata carries per-record variant identity, column-oriented.
type Batch struct {
	Inputs   any
	Metadata Metadata
}

// Len returns the number of records in the batch.
func (b *Batch) Len() int {
	return len(b.Metadata.Variant.Chrom)
}

// Metadata holds per-record annotation columns for a batch.
type Metadata struct {
	Variant VariantMeta
	Exon    ExonMeta
}

// VariantMeta holds variant identity columns. All slices have one entry
// per record in the batch.
type VariantMeta struct {
	Chrom      []string
	Pos        []string
	ID         []string
	Ref        []string
	Alt        []string
	Annotation []string
}

// ExonMeta holds exon annotation columns.
type ExonMeta struct {
	ID []string
}
