package mmsplice

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/veff/internal/gtf"
	"github.com/inodb/veff/internal/vcf"
)

// testGenome is a 200bp repeating sequence so any base can be derived
// from its position: base at 1-based pos p is "ACGT"[(p-1)%4].
var testGenome = strings.Repeat("ACGT", 50)

const testAnnotations = `1	TEST	gene	50	90	.	+	.	gene_id "G1"; gene_name "GENE1";
1	TEST	exon	50	80	.	+	.	gene_id "G1"; transcript_id "T1"; exon_number 1; exon_id "E1";
1	TEST	exon	60	90	.	+	.	gene_id "G1"; transcript_id "T2"; exon_number 1; exon_id "E2";
1	TEST	exon	120	150	.	-	.	gene_id "G2"; transcript_id "T3"; exon_number 2; exon_id "E3";
`

const testVariants = `##fileformat=VCFv4.2
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO
1	70	rs70	C	G	.	PASS	.
1	10	.	C	G	.	PASS	.
1	65	rs65	A	G,T	.	PASS	.
1	130	.	C	A	.	PASS	.
`

func writeFixtures(t *testing.T) (gtfPath, fastaPath, vcfPath string) {
	t.Helper()
	dir := t.TempDir()

	gtfPath = filepath.Join(dir, "anno.gtf")
	require.NoError(t, os.WriteFile(gtfPath, []byte(testAnnotations), 0644))

	fastaPath = filepath.Join(dir, "ref.fa")
	require.NoError(t, os.WriteFile(fastaPath, []byte(">1\n"+testGenome+"\n"), 0644))

	vcfPath = filepath.Join(dir, "variants.vcf")
	require.NoError(t, os.WriteFile(vcfPath, []byte(testVariants), 0644))

	return gtfPath, fastaPath, vcfPath
}

func TestDataloader_FanOutAndBatching(t *testing.T) {
	gtfPath, fastaPath, vcfPath := writeFixtures(t)

	dl, err := NewDataloader(gtfPath, fastaPath, vcfPath, 3)
	require.NoError(t, err)
	defer dl.Close()

	// 1:70 overlaps E1+E2, 1:10 overlaps nothing, the multi-allelic
	// 1:65 yields two alleles against E1+E2, 1:130 overlaps E3.
	batch1, err := dl.Next()
	require.NoError(t, err)
	require.NotNil(t, batch1)
	require.Equal(t, 3, batch1.Len())
	assert.Equal(t, []string{"70", "70", "65"}, batch1.Metadata.Variant.Pos)
	assert.Equal(t, []string{"E1", "E2", "E1"}, batch1.Metadata.Exon.ID)
	assert.Equal(t, []string{"rs70", "rs70", "rs65"}, batch1.Metadata.Variant.ID)
	assert.Equal(t, []string{"G", "G", "G"}, batch1.Metadata.Variant.Alt)
	assert.Equal(t, "1:70:C>G", batch1.Metadata.Variant.Annotation[0])

	batch2, err := dl.Next()
	require.NoError(t, err)
	require.NotNil(t, batch2)
	require.Equal(t, 3, batch2.Len())
	assert.Equal(t, []string{"65", "65", "65"}, batch2.Metadata.Variant.Pos)
	assert.Equal(t, []string{"E2", "E1", "E2"}, batch2.Metadata.Exon.ID)
	assert.Equal(t, []string{"G", "T", "T"}, batch2.Metadata.Variant.Alt)

	batch3, err := dl.Next()
	require.NoError(t, err)
	require.NotNil(t, batch3)
	require.Equal(t, 1, batch3.Len())
	assert.Equal(t, "130", batch3.Metadata.Variant.Pos[0])
	assert.Equal(t, "E3", batch3.Metadata.Exon.ID[0])
	assert.Equal(t, "1:130:C>A", batch3.Metadata.Variant.Annotation[0])

	done, err := dl.Next()
	require.NoError(t, err)
	assert.Nil(t, done)
}

func TestDataloader_RegionSequences(t *testing.T) {
	gtfPath, fastaPath, vcfPath := writeFixtures(t)

	dl, err := NewDataloader(gtfPath, fastaPath, vcfPath, 1)
	require.NoError(t, err)
	defer dl.Close()

	// First record: 1:70 C>G against E1 (50-80, plus strand).
	batch, err := dl.Next()
	require.NoError(t, err)
	require.NotNil(t, batch)

	inputs, ok := batch.Inputs.(*Inputs)
	require.True(t, ok)

	exon := inputs.Regions[moduleExon][0]
	assert.Equal(t, testGenome[49:80], exon.Ref)

	// The variant sits at offset 70-50 = 20 inside the exon window.
	expected := []byte(testGenome[49:80])
	expected[20] = 'G'
	assert.Equal(t, string(expected), exon.Alt)

	// Intronic windows do not contain position 70 and stay unchanged.
	acceptorIntron := inputs.Regions[moduleAcceptorIntron][0]
	assert.Equal(t, testGenome[31:49], acceptorIntron.Ref)
	assert.Equal(t, acceptorIntron.Ref, acceptorIntron.Alt)
}

func TestDataloader_MinusStrandReverseComplements(t *testing.T) {
	gtfPath, fastaPath, vcfPath := writeFixtures(t)

	dl, err := NewDataloader(gtfPath, fastaPath, vcfPath, 7)
	require.NoError(t, err)
	defer dl.Close()

	batch, err := dl.Next()
	require.NoError(t, err)
	require.NotNil(t, batch)
	require.Equal(t, 7, batch.Len())

	// Last record: 1:130 C>A against E3 (120-150, minus strand).
	inputs := batch.Inputs.(*Inputs)
	exon := inputs.Regions[moduleExon][6]
	assert.Equal(t, reverseComplement(testGenome[119:150]), exon.Ref)

	// C>A on the forward strand reads G>T after complementing.
	offset := int64(150 - 130)
	assert.Equal(t, byte('G'), exon.Ref[offset])
	assert.Equal(t, byte('T'), exon.Alt[offset])
}

func TestApplyVariant(t *testing.T) {
	snv := &vcf.Variant{Chrom: "1", Pos: 105, Ref: "C", Alt: "T"}
	del := &vcf.Variant{Chrom: "1", Pos: 104, Ref: "ACG", Alt: "A"}

	tests := []struct {
		name     string
		window   string
		winStart int64
		v        *vcf.Variant
		expected string
	}{
		{"snv inside", "AACCGGTT", 100, snv, "AACCGTTT"},
		{"snv at window start", "CACGT", 105, snv, "TACGT"},
		{"snv at window end", "ACGTC", 101, snv, "ACGTT"},
		{"before window", "ACGT", 110, snv, "ACGT"},
		{"after window", "ACGT", 90, snv, "ACGT"},
		{"deletion inside", "TTACGTT", 102, del, "TTATT"},
		{"deletion sticking out", "CGTT", 106, del, "GTT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, applyVariant(tt.window, tt.winStart, tt.v))
		})
	}
}

func TestRegionWindows(t *testing.T) {
	plus := regionWindows(&gtf.Exon{Start: 100, End: 200, Strand: 1})
	assert.Equal(t, window{82, 99}, plus[moduleAcceptorIntron])
	assert.Equal(t, window{94, 102}, plus[moduleAcceptor])
	assert.Equal(t, window{100, 200}, plus[moduleExon])
	assert.Equal(t, window{198, 206}, plus[moduleDonor])
	assert.Equal(t, window{201, 218}, plus[moduleDonorIntron])

	minus := regionWindows(&gtf.Exon{Start: 100, End: 200, Strand: -1})
	assert.Equal(t, window{201, 218}, minus[moduleAcceptorIntron])
	assert.Equal(t, window{198, 206}, minus[moduleAcceptor])
	assert.Equal(t, window{100, 200}, minus[moduleExon])
	assert.Equal(t, window{94, 102}, minus[moduleDonor])
	assert.Equal(t, window{82, 99}, minus[moduleDonorIntron])
}

func TestReverseComplement(t *testing.T) {
	assert.Equal(t, "ACGT", reverseComplement("ACGT"))
	assert.Equal(t, "TTGGCCAA", reverseComplement("TTGGCCAA"))
	assert.Equal(t, "CAT", reverseComplement("ATG"))
	assert.Equal(t, "NAA", reverseComplement("TTX"))
	assert.Equal(t, "", reverseComplement(""))
}
