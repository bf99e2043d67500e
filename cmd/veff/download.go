package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// GENCODE FTP URLs
const (
	gencodeBaseURL = "https://ftp.ebi.ac.uk/pub/databases/gencode/Gencode_human/release_46"
	gencodeVersion = "v46"
)

// gencodeURLs returns the GTF and genome FASTA URLs for the assembly.
func gencodeURLs(assembly string) (gtfURL, fastaURL string) {
	switch strings.ToUpper(assembly) {
	case "GRCH37":
		gtfURL = fmt.Sprintf("%s/GRCh37_mapping/gencode.%slift37.annotation.gtf.gz", gencodeBaseURL, gencodeVersion)
		fastaURL = fmt.Sprintf("%s/GRCh37_mapping/GRCh37.primary_assembly.genome.fa.gz", gencodeBaseURL)
	default:
		gtfURL = fmt.Sprintf("%s/gencode.%s.annotation.gtf.gz", gencodeBaseURL, gencodeVersion)
		fastaURL = fmt.Sprintf("%s/GRCh38.primary_assembly.genome.fa.gz", gencodeBaseURL)
	}
	return
}

func newDownloadCmd() *cobra.Command {
	var (
		assembly  string
		outputDir string
		gtfOnly   bool
	)

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download GENCODE reference files",
		Long: `Download the GENCODE annotation GTF and the primary assembly genome
FASTA used by the model dataloaders. After downloading, veff score picks
them up automatically when --gtf/--fasta are omitted.`,
		Example: `  veff download
  veff download --assembly GRCh37
  veff download --output /data/gencode --gtf-only`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if assembly == "" {
				assembly = viper.GetString("assembly")
			}

			destDir, err := referenceDir(assembly, outputDir)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(destDir, 0755); err != nil {
				return fmt.Errorf("create directory %s: %w", destDir, err)
			}

			gtfURL, fastaURL := gencodeURLs(assembly)

			fmt.Printf("Downloading GENCODE %s reference files for %s...\n", gencodeVersion, assembly)
			fmt.Printf("Destination: %s\n\n", destDir)

			gtfFile := filepath.Join(destDir, filepath.Base(gtfURL))
			if err := downloadFile(gtfURL, gtfFile); err != nil {
				return fmt.Errorf("download GTF: %w", err)
			}

			if !gtfOnly {
				fastaFile := filepath.Join(destDir, filepath.Base(fastaURL))
				if err := downloadFile(fastaURL, fastaFile); err != nil {
					return fmt.Errorf("download FASTA: %w", err)
				}
			}

			fmt.Printf("\nDownload complete!\n")
			fmt.Printf("To score variants, run:\n")
			fmt.Printf("  veff score -m MMSplice/deltaLogitPSI --vcf input.vcf -o output.tsv\n")

			return nil
		},
	}

	cmd.Flags().StringVar(&assembly, "assembly", "", "Genome assembly: GRCh37 or GRCh38 (default from config)")
	cmd.Flags().StringVar(&outputDir, "output", "", "Output directory (default: ~/.veff/)")
	cmd.Flags().BoolVar(&gtfOnly, "gtf-only", false, "Only download GTF annotations (skip the genome FASTA)")

	return cmd
}

// referenceDir resolves the assembly-specific reference cache directory.
func referenceDir(assembly, override string) (string, error) {
	base := override
	if base == "" {
		base = viper.GetString("cache.dir")
	}
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		base = filepath.Join(home, ".veff")
	}
	return filepath.Join(base, strings.ToLower(assembly)), nil
}

// findReferenceFiles looks for downloaded reference files for an assembly.
func findReferenceFiles(assembly string) (gtfPath, fastaPath string, found bool) {
	dir, err := referenceDir(assembly, "")
	if err != nil {
		return "", "", false
	}

	var gtfPattern string
	if strings.EqualFold(assembly, "grch37") {
		gtfPattern = "gencode.v*lift37.annotation.gtf.gz"
	} else {
		gtfPattern = "gencode.v*.annotation.gtf.gz"
	}

	matches, err := filepath.Glob(filepath.Join(dir, gtfPattern))
	if err != nil || len(matches) == 0 {
		return "", "", false
	}
	gtfPath = matches[0]

	matches, err = filepath.Glob(filepath.Join(dir, "*.primary_assembly.genome.fa.gz"))
	if err == nil && len(matches) > 0 {
		fastaPath = matches[0]
	}

	return gtfPath, fastaPath, true
}

// downloadFile downloads a file from URL to the destination path with progress.
func downloadFile(url, destPath string) error {
	// Skip files that are already present
	if info, err := os.Stat(destPath); err == nil {
		fmt.Printf("  %s already exists (%s), skipping\n", filepath.Base(destPath), formatSize(info.Size()))
		return nil
	}

	fmt.Printf("  Downloading %s...\n", filepath.Base(destPath))

	client := &http.Client{
		Timeout: 30 * time.Minute, // Long timeout for large files
	}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error: %s", resp.Status)
	}

	tmpPath := destPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	var downloaded int64
	pw := &progressWriter{
		total:      resp.ContentLength,
		downloaded: &downloaded,
		lastPrint:  time.Now(),
	}

	_, err = io.Copy(f, io.TeeReader(resp.Body, pw))
	f.Close()

	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("download failed: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename file: %w", err)
	}

	fmt.Printf("    Done: %s\n", formatSize(downloaded))
	return nil
}

// progressWriter tracks download progress.
type progressWriter struct {
	total      int64
	downloaded *int64
	lastPrint  time.Time
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n := len(p)
	*pw.downloaded += int64(n)

	// Print progress every second
	if time.Since(pw.lastPrint) > time.Second {
		if pw.total > 0 {
			pct := float64(*pw.downloaded) / float64(pw.total) * 100
			fmt.Printf("\r    Progress: %s / %s (%.1f%%)  ",
				formatSize(*pw.downloaded), formatSize(pw.total), pct)
		} else {
			fmt.Printf("\r    Progress: %s  ", formatSize(*pw.downloaded))
		}
		pw.lastPrint = time.Now()
	}

	return n, nil
}

// formatSize formats bytes as human-readable size.
func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
