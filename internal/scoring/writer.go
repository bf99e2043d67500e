package scoring

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// TSVWriter writes scoring output rows in tab-delimited format.
type TSVWriter struct {
	w *bufio.Writer
}

// NewTSVWriter creates a new tab-delimited writer.
func NewTSVWriter(w io.Writer) *TSVWriter {
	return &TSVWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes the header line.
func (tw *TSVWriter) WriteHeader(columns []string) error {
	_, err := tw.w.WriteString(strings.Join(columns, "\t") + "\n")
	return err
}

// WriteRow writes one variant's identity fields followed by its
// prediction values.
func (tw *TSVWriter) WriteRow(info VariantInfo, values []float64) error {
	fields := make([]string, 0, 5+len(values))
	fields = append(fields, info.Chrom, info.Pos, info.ID, info.Ref, info.Alt)
	for _, v := range values {
		fields = append(fields, strconv.FormatFloat(v, 'g', -1, 64))
	}

	_, err := tw.w.WriteString(strings.Join(fields, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TSVWriter) Flush() error {
	return tw.w.Flush()
}
