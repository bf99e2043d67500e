// Package fasta loads reference genome sequences from FASTA files.
package fasta

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Genome holds reference sequences indexed by chromosome name.
type Genome struct {
	sequences map[string]string
}

// Load parses a genome FASTA file (plain or gzipped) and indexes
// sequences by normalized chromosome name.
func Load(path string) (*Genome, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open FASTA file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f

	// Handle gzipped files
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return parse(reader)
}

// parse reads FASTA content into a Genome.
func parse(reader io.Reader) (*Genome, error) {
	scanner := bufio.NewScanner(reader)
	// Increase buffer size for long sequence lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	g := &Genome{sequences: make(map[string]string)}

	var currentChrom string
	var currentSeq strings.Builder

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, ">") {
			if currentChrom != "" && currentSeq.Len() > 0 {
				g.sequences[currentChrom] = currentSeq.String()
			}

			currentChrom = parseHeader(line)
			currentSeq.Reset()
		} else {
			currentSeq.WriteString(strings.ToUpper(strings.TrimSpace(line)))
		}
	}

	if currentChrom != "" && currentSeq.Len() > 0 {
		g.sequences[currentChrom] = currentSeq.String()
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan FASTA: %w", err)
	}

	return g, nil
}

// parseHeader extracts the chromosome name from a FASTA header.
// Handles ">chr1 AC:...", ">1" and pipe-delimited headers.
func parseHeader(header string) string {
	header = strings.TrimPrefix(header, ">")

	if idx := strings.IndexAny(header, " \t|"); idx != -1 {
		header = header[:idx]
	}

	return normalizeChrom(header)
}

// normalizeChrom removes the "chr" prefix from a chromosome name.
func normalizeChrom(chrom string) string {
	if strings.HasPrefix(chrom, "chr") {
		return chrom[3:]
	}
	return chrom
}

// Sequence returns the full sequence for a chromosome.
func (g *Genome) Sequence(chrom string) (string, bool) {
	seq, ok := g.sequences[normalizeChrom(chrom)]
	return seq, ok
}

// Region returns the subsequence for a 1-based inclusive genomic range,
// clamped to the chromosome bounds.
func (g *Genome) Region(chrom string, start, end int64) (string, error) {
	seq, ok := g.sequences[normalizeChrom(chrom)]
	if !ok {
		return "", fmt.Errorf("chromosome %q not found in reference", chrom)
	}

	if start < 1 {
		start = 1
	}
	if end > int64(len(seq)) {
		end = int64(len(seq))
	}
	if start > end {
		return "", nil
	}

	return seq[start-1 : end], nil
}

// Chromosomes returns the chromosome names present in the genome.
func (g *Genome) Chromosomes() []string {
	chroms := make([]string, 0, len(g.sequences))
	for c := range g.sequences {
		chroms = append(chroms, c)
	}
	sort.Strings(chroms)
	return chroms
}

// SequenceCount returns the number of loaded sequences.
func (g *Genome) SequenceCount() int {
	return len(g.sequences)
}
