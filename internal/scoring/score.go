package scoring

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/inodb/veff/internal/zoo"
)

// Options names the input files and the output path for one scoring run.
type Options struct {
	VCF    string
	FASTA  string
	GTF    string
	Output string
}

// Scorer scores all variants in a VCF against one model, streaming
// prediction rows to a TSV file.
type Scorer struct {
	cfg    ModelConfig
	logger *zap.Logger
}

// NewScorer creates a scorer for the given model configuration.
func NewScorer(cfg ModelConfig) *Scorer {
	return &Scorer{
		cfg:    cfg,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for progress messages.
func (s *Scorer) SetLogger(l *zap.Logger) {
	s.logger = l
}

// Run scores every variant record produced by the model's dataloader.
// The output header comes from the model's declared schema; one row is
// written per record, in batch iteration order. Any failure aborts the
// run; rows already written stay on disk.
func (s *Scorer) Run(opts Options) error {
	dl, model, err := s.cfg.Dataloader(map[string]string{
		"vcf_file":   opts.VCF,
		"fasta_file": opts.FASTA,
		"gtf_file":   opts.GTF,
	})
	if err != nil {
		return err
	}
	defer dl.Close()

	columns, err := s.cfg.ColumnLabels()
	if err != nil {
		return err
	}

	out, err := os.Create(opts.Output)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer out.Close()

	writer := NewTSVWriter(out)
	if err := writer.WriteHeader(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	totalRows := 0
	batches := 0

	for {
		batch, err := dl.Next()
		if err != nil {
			return fmt.Errorf("read batch: %w", err)
		}
		if batch == nil {
			break
		}

		pred, err := model.PredictOnBatch(batch.Inputs)
		if err != nil {
			return fmt.Errorf("predict on batch: %w", err)
		}

		rows, err := zoo.Rows(pred)
		if err != nil {
			return err
		}

		for i, values := range rows {
			if err := writer.WriteRow(s.cfg.VariantInfo(batch, i), values); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}

		totalRows += len(rows)
		batches++
		s.logger.Debug("scored batch",
			zap.Int("batch", batches),
			zap.Int("rows", len(rows)))
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	s.logger.Info("scoring complete",
		zap.String("model", s.cfg.Model),
		zap.Int("batches", batches),
		zap.Int("rows", totalRows),
		zap.String("output", opts.Output))

	return nil
}
