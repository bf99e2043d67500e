// Package gtf loads exon annotations from GENCODE GTF files.
package gtf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Exon is a single exon record from a GTF annotation.
type Exon struct {
	ID         string // Exon ID without version suffix (e.g., "ENSE00001544498")
	Transcript string // Transcript ID without version suffix
	Gene       string // Gene name
	Chrom      string // Normalized chromosome name (no "chr" prefix)
	Start      int64  // 1-based inclusive start
	End        int64  // 1-based inclusive end
	Strand     int8   // 1 for forward, -1 for reverse
	Number     int    // Exon number within the transcript
}

// Loader reads exon records from a GTF file.
type Loader struct {
	path string
}

// NewLoader creates a new GTF exon loader.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load parses the GTF file and returns an indexed exon set.
func (l *Loader) Load() (*ExonSet, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open GTF file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f

	// Handle gzipped files
	if strings.HasSuffix(l.path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return l.parse(reader)
}

// parse reads GTF content and collects exon features.
func (l *Loader) parse(reader io.Reader) (*ExonSet, error) {
	scanner := bufio.NewScanner(reader)
	// Increase buffer size for long lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	set := NewExonSet()

	for scanner.Scan() {
		line := scanner.Text()

		// Skip comments and empty lines
		if strings.HasPrefix(line, "#") || line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 9 {
			continue // Skip malformed lines
		}
		if fields[2] != "exon" {
			continue
		}

		start, err := strconv.ParseInt(fields[3], 10, 64)
		if err != nil {
			continue
		}
		end, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			continue
		}

		attrs := parseAttributes(fields[8])

		exon := &Exon{
			ID:         stripVersion(attrs["exon_id"]),
			Transcript: stripVersion(attrs["transcript_id"]),
			Gene:       attrs["gene_name"],
			Chrom:      normalizeChrom(fields[0]),
			Start:      start,
			End:        end,
			Strand:     parseStrand(fields[6]),
		}
		if exon.ID == "" {
			exon.ID = fmt.Sprintf("%s:%d-%d", exon.Chrom, start, end)
		}
		if n, err := strconv.Atoi(attrs["exon_number"]); err == nil {
			exon.Number = n
		}

		set.Add(exon)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan GTF: %w", err)
	}

	return set, nil
}

// parseAttributes parses the GTF attribute column.
// Format: key "value"; key "value"; ...
func parseAttributes(attrStr string) map[string]string {
	attrs := make(map[string]string)

	for _, part := range strings.Split(attrStr, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		idx := strings.Index(part, " ")
		if idx == -1 {
			continue
		}

		key := part[:idx]
		value := strings.Trim(strings.TrimSpace(part[idx+1:]), "\"")

		attrs[key] = value
	}

	return attrs
}

// parseStrand converts a strand string to int8.
func parseStrand(s string) int8 {
	if s == "-" {
		return -1
	}
	return 1
}

// stripVersion removes the version suffix from an Ensembl ID.
// e.g., "ENSE00001544498.2" -> "ENSE00001544498"
func stripVersion(id string) string {
	if idx := strings.LastIndex(id, "."); idx != -1 {
		return id[:idx]
	}
	return id
}

// normalizeChrom normalizes chromosome names by removing the "chr" prefix.
// This ensures consistency between GENCODE ("chr1") and VCF ("1") naming.
func normalizeChrom(chrom string) string {
	if strings.HasPrefix(chrom, "chr") {
		return chrom[3:]
	}
	return chrom
}
