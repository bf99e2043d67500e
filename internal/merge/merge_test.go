package merge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deltaColumn = "MMSplice/deltaLogitPSI/delta_logit_psi"
const pathoColumn = "MMSplice/pathogenicity/pathogenicity"

const deltaTable = "#CHROM\tPOS\tID\tREF\tALT\t" + deltaColumn + "\n" +
	"17\t100\t17:100:A>G:E1\tA\tG\t-0.125\n" +
	"17\t200\t17:200:C>T:E1\tC\tT\t0.0625\n" +
	"2\t50\t2:50:G>A:E2\tG\tA\t1e-05\n"

const pathoTable = "#CHROM\tPOS\tID\tREF\tALT\t" + pathoColumn + "\n" +
	"17\t200\t17:200:C>T:E1\tC\tT\t0.91\n" +
	"2\t50\t2:50:G>A:E2\tG\tA\t0.87\n" +
	"X\t70\tX:70:T>C:E9\tT\tC\t0.5\n"

func writeTable(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// readTable parses a merged TSV into its header and a map from the
// composite variant key to column values.
func readTable(t *testing.T, path string) ([]string, map[string]map[string]string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.NotEmpty(t, lines)

	header := strings.Split(lines[0], "\t")
	rows := make(map[string]map[string]string, len(lines)-1)

	for _, line := range lines[1:] {
		fields := strings.Split(line, "\t")
		require.Len(t, fields, len(header))

		key := strings.Join(fields[:5], "|")
		cells := make(map[string]string, len(header)-5)
		for i := 5; i < len(header); i++ {
			cells[header[i]] = fields[i]
		}
		rows[key] = cells
	}
	return header, rows
}

func TestTables_OuterJoin(t *testing.T) {
	delta := writeTable(t, "delta.tsv", deltaTable)
	patho := writeTable(t, "patho.tsv", pathoTable)
	output := filepath.Join(t.TempDir(), "merged.tsv")

	require.NoError(t, Tables([]string{delta, patho}, output))

	header, rows := readTable(t, output)
	assert.Equal(t, []string{"#CHROM", "POS", "ID", "REF", "ALT", deltaColumn, pathoColumn}, header)
	require.Len(t, rows, 4)

	// Shared keys carry both model scores, byte-identical to the inputs.
	shared := rows["17|200|17:200:C>T:E1|C|T"]
	require.NotNil(t, shared)
	assert.Equal(t, "0.0625", shared[deltaColumn])
	assert.Equal(t, "0.91", shared[pathoColumn])

	assert.Equal(t, "1e-05", rows["2|50|2:50:G>A:E2|G|A"][deltaColumn])

	// Keys unique to one input survive with empty cells for the other.
	leftOnly := rows["17|100|17:100:A>G:E1|A|G"]
	require.NotNil(t, leftOnly)
	assert.Equal(t, "-0.125", leftOnly[deltaColumn])
	assert.Equal(t, "", leftOnly[pathoColumn])

	rightOnly := rows["X|70|X:70:T>C:E9|T|C"]
	require.NotNil(t, rightOnly)
	assert.Equal(t, "", rightOnly[deltaColumn])
	assert.Equal(t, "0.5", rightOnly[pathoColumn])
}

func TestTables_OrderedByKey(t *testing.T) {
	delta := writeTable(t, "delta.tsv", deltaTable)
	output := filepath.Join(t.TempDir(), "merged.tsv")

	require.NoError(t, Tables([]string{delta}, output))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 4)

	var keys []string
	for _, line := range lines[1:] {
		keys = append(keys, strings.Join(strings.Split(line, "\t")[:5], "|"))
	}
	assert.IsIncreasing(t, keys)
}

func TestTables_SingleInput(t *testing.T) {
	delta := writeTable(t, "delta.tsv", deltaTable)
	output := filepath.Join(t.TempDir(), "merged.tsv")

	require.NoError(t, Tables([]string{delta}, output))

	header, rows := readTable(t, output)
	assert.Equal(t, []string{"#CHROM", "POS", "ID", "REF", "ALT", deltaColumn}, header)
	assert.Len(t, rows, 3)
	assert.Equal(t, "-0.125", rows["17|100|17:100:A>G:E1|A|G"][deltaColumn])
}

func TestTables_InputOrderInvariant(t *testing.T) {
	delta := writeTable(t, "delta.tsv", deltaTable)
	patho := writeTable(t, "patho.tsv", pathoTable)
	out1 := filepath.Join(t.TempDir(), "ab.tsv")
	out2 := filepath.Join(t.TempDir(), "ba.tsv")

	require.NoError(t, Tables([]string{delta, patho}, out1))
	require.NoError(t, Tables([]string{patho, delta}, out2))

	h1, rows1 := readTable(t, out1)
	h2, rows2 := readTable(t, out2)

	// Column order follows input order, but the key/value content must
	// not depend on it.
	assert.ElementsMatch(t, h1, h2)
	assert.Equal(t, rows1, rows2)
}

func TestTables_NoInputs(t *testing.T) {
	err := Tables(nil, filepath.Join(t.TempDir(), "merged.tsv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one input table is required")
}

func TestTables_MissingInput(t *testing.T) {
	err := Tables([]string{filepath.Join(t.TempDir(), "nope.tsv")}, filepath.Join(t.TempDir(), "merged.tsv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read input table")
}

func TestJoinQuery(t *testing.T) {
	q := joinQuery("t0", "t1")
	assert.Contains(t, q, `FULL JOIN t1 r`)
	assert.Contains(t, q, `COALESCE(l."#CHROM", r."#CHROM") AS "#CHROM"`)
	assert.Contains(t, q, `l.* EXCLUDE ("#CHROM", "POS", "ID", "REF", "ALT")`)
	assert.Contains(t, q, `l."ALT" = r."ALT"`)
}
