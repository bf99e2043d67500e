package mmsplice

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/inodb/veff/internal/fasta"
	"github.com/inodb/veff/internal/gtf"
	"github.com/inodb/veff/internal/vcf"
	"github.com/inodb/veff/internal/zoo"
)

// DefaultBatchSize is the number of records per prediction batch.
const DefaultBatchSize = 32

// Sequence window sizes around splice sites.
const (
	intronWindow     = 18 // intronic context per side
	junctionExonic   = 3  // exonic bases in junction windows
	junctionIntronic = 6  // intronic bases in junction windows
)

// SeqPair holds the reference and variant-applied sequence for one
// region window.
type SeqPair struct {
	Ref string
	Alt string
}

// Inputs is the model-facing batch payload: one SeqPair slice per
// module region, column-oriented.
type Inputs struct {
	Regions [moduleCount][]SeqPair
}

// Len returns the number of records in the inputs.
func (in *Inputs) Len() int {
	return len(in.Regions[0])
}

// record is one variant×exon pair ready for batching.
type record struct {
	regions    [moduleCount]SeqPair
	chrom      string
	pos        string
	id         string
	ref        string
	alt        string
	annotation string
	exonID     string
}

// Dataloader streams variant×exon records from a VCF against GTF exon
// annotations and a reference genome, batched for prediction.
type Dataloader struct {
	parser    *vcf.Parser
	exons     *gtf.ExonSet
	genome    *fasta.Genome
	batchSize int
	pending   []record
}

// NewDataloader loads the GTF and FASTA inputs and opens the VCF for
// streaming. A batchSize of 0 or less uses DefaultBatchSize.
func NewDataloader(gtfPath, fastaPath, vcfPath string, batchSize int) (*Dataloader, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	exons, err := gtf.NewLoader(gtfPath).Load()
	if err != nil {
		return nil, fmt.Errorf("load GTF annotations: %w", err)
	}

	genome, err := fasta.Load(fastaPath)
	if err != nil {
		return nil, fmt.Errorf("load reference FASTA: %w", err)
	}

	parser, err := vcf.NewParser(vcfPath)
	if err != nil {
		return nil, err
	}

	return &Dataloader{
		parser:    parser,
		exons:     exons,
		genome:    genome,
		batchSize: batchSize,
	}, nil
}

// Next returns the next batch of records, or nil, nil once the VCF is
// exhausted. Variants that overlap no annotated exon are skipped.
func (d *Dataloader) Next() (*zoo.Batch, error) {
	var records []record

	for len(records) < d.batchSize {
		if len(d.pending) == 0 {
			if err := d.fill(); err != nil {
				return nil, err
			}
			if len(d.pending) == 0 {
				break
			}
		}
		records = append(records, d.pending[0])
		d.pending = d.pending[1:]
	}

	if len(records) == 0 {
		return nil, nil
	}

	return buildBatch(records), nil
}

// fill reads variants until at least one record is queued or the input
// ends. Multi-allelic variants fan out per alternate allele, and each
// variant fans out per overlapping exon.
func (d *Dataloader) fill() error {
	for {
		v, err := d.parser.Next()
		if err != nil {
			return err
		}
		if v == nil {
			return nil
		}

		for _, variant := range vcf.SplitMultiAllelic(v) {
			for _, exon := range d.exons.Overlapping(variant.Chrom, variant.Pos) {
				rec, err := d.buildRecord(variant, exon)
				if err != nil {
					return err
				}
				d.pending = append(d.pending, rec)
			}
		}

		if len(d.pending) > 0 {
			return nil
		}
	}
}

// Close closes the underlying VCF parser.
func (d *Dataloader) Close() error {
	return d.parser.Close()
}

// buildRecord extracts the splice region windows for one variant×exon
// pair, with the variant applied to the alt sequences.
func (d *Dataloader) buildRecord(v *vcf.Variant, exon *gtf.Exon) (record, error) {
	windows := regionWindows(exon)

	rec := record{
		chrom:      v.Chrom,
		pos:        strconv.FormatInt(v.Pos, 10),
		id:         v.ID,
		ref:        v.Ref,
		alt:        v.Alt,
		annotation: fmt.Sprintf("%s:%d:%s>%s", v.Chrom, v.Pos, v.Ref, v.Alt),
		exonID:     exon.ID,
	}

	for m := 0; m < moduleCount; m++ {
		w := windows[m]
		refSeq, err := d.genome.Region(exon.Chrom, w.start, w.end)
		if err != nil {
			return record{}, fmt.Errorf("extract %s region for exon %s: %w", exon.Chrom, exon.ID, err)
		}

		// Region clamps at chromosome bounds; recompute the window
		// start so variant offsets line up with the returned bases.
		start := w.start
		if start < 1 {
			start = 1
		}

		altSeq := applyVariant(refSeq, start, v)

		if exon.Strand == -1 {
			refSeq = reverseComplement(refSeq)
			altSeq = reverseComplement(altSeq)
		}

		rec.regions[m] = SeqPair{Ref: refSeq, Alt: altSeq}
	}

	return rec, nil
}

// window is a 1-based inclusive genomic range.
type window struct {
	start int64
	end   int64
}

// regionWindows returns the five module windows for an exon, oriented
// by strand: the acceptor side sits at the transcription-wise start of
// the exon, the donor side at its end.
func regionWindows(exon *gtf.Exon) [moduleCount]window {
	var w [moduleCount]window

	if exon.Strand == -1 {
		w[moduleAcceptorIntron] = window{exon.End + 1, exon.End + intronWindow}
		w[moduleAcceptor] = window{exon.End - junctionExonic + 1, exon.End + junctionIntronic}
		w[moduleExon] = window{exon.Start, exon.End}
		w[moduleDonor] = window{exon.Start - junctionIntronic, exon.Start + junctionExonic - 1}
		w[moduleDonorIntron] = window{exon.Start - intronWindow, exon.Start - 1}
		return w
	}

	w[moduleAcceptorIntron] = window{exon.Start - intronWindow, exon.Start - 1}
	w[moduleAcceptor] = window{exon.Start - junctionIntronic, exon.Start + junctionExonic - 1}
	w[moduleExon] = window{exon.Start, exon.End}
	w[moduleDonor] = window{exon.End - junctionExonic + 1, exon.End + junctionIntronic}
	w[moduleDonorIntron] = window{exon.End + 1, exon.End + intronWindow}
	return w
}

// applyVariant substitutes the variant's alternate allele into a window
// of reference sequence. winStart is the genomic position of the first
// base in the window. Variants outside the window leave it unchanged;
// partially overlapping alleles are trimmed to the overlap.
func applyVariant(refWindow string, winStart int64, v *vcf.Variant) string {
	refLen := int64(len(v.Ref))
	winEnd := winStart + int64(len(refWindow)) - 1
	varStart, varEnd := v.Pos, v.Pos+refLen-1

	if varEnd < winStart || varStart > winEnd {
		return refWindow
	}

	from := max64(varStart, winStart)
	to := min64(varEnd, winEnd)

	prefix := refWindow[:from-winStart]
	suffix := refWindow[to-winStart+1:]

	alt := strings.ToUpper(v.Alt)
	if varStart >= winStart && varEnd <= winEnd {
		return prefix + alt + suffix
	}

	// Allele sticks out of the window: keep the in-window slice of alt.
	lo := from - varStart
	hi := to - varStart + 1
	if lo > int64(len(alt)) {
		lo = int64(len(alt))
	}
	if hi > int64(len(alt)) {
		hi = int64(len(alt))
	}
	return prefix + alt[lo:hi] + suffix
}

// buildBatch assembles queued records into a column-oriented batch.
func buildBatch(records []record) *zoo.Batch {
	n := len(records)
	inputs := &Inputs{}
	meta := zoo.Metadata{
		Variant: zoo.VariantMeta{
			Chrom:      make([]string, n),
			Pos:        make([]string, n),
			ID:         make([]string, n),
			Ref:        make([]string, n),
			Alt:        make([]string, n),
			Annotation: make([]string, n),
		},
		Exon: zoo.ExonMeta{
			ID: make([]string, n),
		},
	}

	for m := 0; m < moduleCount; m++ {
		inputs.Regions[m] = make([]SeqPair, n)
	}

	for i, rec := range records {
		for m := 0; m < moduleCount; m++ {
			inputs.Regions[m][i] = rec.regions[m]
		}
		meta.Variant.Chrom[i] = rec.chrom
		meta.Variant.Pos[i] = rec.pos
		meta.Variant.ID[i] = rec.id
		meta.Variant.Ref[i] = rec.ref
		meta.Variant.Alt[i] = rec.alt
		meta.Variant.Annotation[i] = rec.annotation
		meta.Exon.ID[i] = rec.exonID
	}

	return &zoo.Batch{Inputs: inputs, Metadata: meta}
}

// reverseComplement returns the reverse complement of a DNA sequence.
func reverseComplement(seq string) string {
	b := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		switch seq[len(seq)-1-i] {
		case 'A':
			b[i] = 'T'
		case 'T':
			b[i] = 'A'
		case 'C':
			b[i] = 'G'
		case 'G':
			b[i] = 'C'
		default:
			b[i] = 'N'
		}
	}
	return string(b)
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
