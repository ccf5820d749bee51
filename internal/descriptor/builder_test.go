package descriptor

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/af-prep/internal/schemas"
	"github.com/jonathan/af-prep/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	opts Options
}

func newFixture(t *testing.T, complexCSV, proteinCSV string, alignments ...string) fixture {
	t.Helper()
	dir := t.TempDir()
	a3mDir := filepath.Join(dir, "msa")
	require.NoError(t, os.MkdirAll(a3mDir, 0755))
	for _, gene := range alignments {
		writeFile(t, filepath.Join(a3mDir, gene+".a3m"), ">query\nMKV\n")
	}

	return fixture{opts: Options{
		ComplexCSV:   writeFile(t, filepath.Join(dir, "complex.csv"), complexCSV),
		ProteinCSV:   writeFile(t, filepath.Join(dir, "proteins.csv"), proteinCSV),
		AlignmentDir: a3mDir,
		OutputDir:    filepath.Join(dir, "out", "json"),
	}}
}

func readDescriptor(t *testing.T, path string) types.JobDescriptor {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var d types.JobDescriptor
	require.NoError(t, json.Unmarshal(data, &d))
	return d
}

func TestBuild_EndToEnd(t *testing.T) {
	f := newFixture(t,
		"unique_id,tf_gene,sequence\nX1,TF1,atcgn\n",
		"tf_gene,amino_acid_sequence\nTF1,MKVLA1\n",
		"TF1")

	report, err := Build(f.opts)
	require.NoError(t, err)

	assert.Equal(t, 1, report.RowsRead)
	assert.Equal(t, 1, report.Written)
	assert.Equal(t, 0, report.Skipped)
	assert.True(t, report.CreatedOutputDir)
	assert.True(t, filepath.IsAbs(report.OutputDir))

	d := readDescriptor(t, filepath.Join(f.opts.OutputDir, "X1.json"))
	assert.Equal(t, "X1", d.Name)
	assert.Equal(t, []int{0}, d.ModelSeeds)
	assert.Equal(t, "alphafold3", d.Dialect)
	assert.Equal(t, 3, d.Version)
	assert.Equal(t, "MKVLA", d.ProteinSequence())
	assert.Equal(t, "ATCGN", d.DNASequence())

	require.Len(t, d.Sequences, 2)
	require.NotNil(t, d.Sequences[0].Protein)
	assert.Equal(t, "A", d.Sequences[0].Protein.ID)
	assert.True(t, filepath.IsAbs(d.Sequences[0].Protein.UnpairedMSAPath))
	assert.Equal(t, "TF1.a3m", filepath.Base(d.Sequences[0].Protein.UnpairedMSAPath))
	assert.Equal(t, "", d.Sequences[0].Protein.PairedMSA)
	assert.Empty(t, d.Sequences[0].Protein.Templates)
	require.NotNil(t, d.Sequences[1].DNA)
	assert.Equal(t, "B", d.Sequences[1].DNA.ID)
}

func TestBuild_WritesIndentedJSON(t *testing.T) {
	f := newFixture(t,
		"unique_id,tf_gene,sequence\nX1,TF1,ACGT\n",
		"tf_gene,amino_acid_sequence\nTF1,MKV\n",
		"TF1")

	_, err := Build(f.opts)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(f.opts.OutputDir, "X1.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "{\n  \"name\": \"X1\",\n  \"modelSeeds\": [\n    0\n  ],")
	assert.Contains(t, string(data), `"templates": []`)
}

func TestBuild_SkipsUnusableRows(t *testing.T) {
	f := newFixture(t,
		"unique_id,tf_gene,sequence\n"+
			"OK1,TF1,ACGT\n"+
			",TF1,ACGT\n"+
			"NOPROT,TF9,ACGT\n"+
			"NOMSA,TF2,ACGT\n"+
			"BADPROT,TF3,ACGT\n"+
			"BADDNA,TF1,xyz\n"+
			"OK2,TF1,acgtn\n",
		"tf_gene,amino_acid_sequence\nTF1,MKV\nTF2,MKV\nTF3,123\nTF9,\n",
		"TF1", "TF3", "TF9")

	report, err := Build(f.opts)
	require.NoError(t, err)

	assert.Equal(t, 7, report.RowsRead)
	assert.Equal(t, 2, report.Written)
	assert.Equal(t, 5, report.Skipped)
	assert.Equal(t, []string{"TF2"}, report.MissingAlignments)

	reasons := make(map[int]string)
	for _, failure := range report.Failures {
		reasons[failure.Row] = failure.Reason
	}
	assert.Equal(t, map[int]string{
		2: ReasonMissingFields,
		3: ReasonNoProtein,
		4: ReasonNoAlignment,
		5: ReasonEmptyProtein,
		6: ReasonEmptyDNA,
	}, reasons)

	entries, err := os.ReadDir(f.opts.OutputDir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"OK1.json", "OK2.json"}, names)
}

func TestBuild_RejectsIDsOutsideOutputDir(t *testing.T) {
	f := newFixture(t,
		"unique_id,tf_gene,sequence\n"+
			"../escaped,TF1,ACGT\n"+
			"sub/dir,TF1,ACGT\n"+
			"..,TF1,ACGT\n"+
			`win\\path,TF1,ACGT`+"\n"+
			"ok,TF1,ACGT\n",
		"tf_gene,amino_acid_sequence\nTF1,MKV\n",
		"TF1")

	report, err := Build(f.opts)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Written)
	assert.Equal(t, 4, report.Skipped)
	for _, failure := range report.Failures {
		assert.Equal(t, ReasonInvalidID, failure.Reason, failure.UniqueID)
	}

	_, err = os.Stat(filepath.Join(filepath.Dir(f.opts.OutputDir), "escaped.json"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(f.opts.OutputDir, "ok.json"))
	assert.NoError(t, err)
}

func TestBuild_RoundTrip(t *testing.T) {
	f := newFixture(t,
		"unique_id,tf_gene,sequence\nA_1,FOS,ACGTACGT\nB_2,JUN,ttttgggg\n",
		"tf_gene,amino_acid_sequence\nFOS,MMFSGFNADY\nJUN,MTAKMETTFY\n",
		"FOS", "JUN")

	_, err := Build(f.opts)
	require.NoError(t, err)

	want := map[string][2]string{
		"A_1": {"MMFSGFNADY", "ACGTACGT"},
		"B_2": {"MTAKMETTFY", "TTTTGGGG"},
	}
	for id, seqs := range want {
		d := readDescriptor(t, filepath.Join(f.opts.OutputDir, id+".json"))
		assert.Equal(t, id, d.Name)
		assert.Equal(t, seqs[0], d.ProteinSequence())
		assert.Equal(t, seqs[1], d.DNASequence())
	}
}

func TestBuild_ExistingOutputDir(t *testing.T) {
	f := newFixture(t,
		"unique_id,tf_gene,sequence\nX1,TF1,ACGT\n",
		"tf_gene,amino_acid_sequence\nTF1,MKV\n",
		"TF1")
	require.NoError(t, os.MkdirAll(f.opts.OutputDir, 0755))

	report, err := Build(f.opts)
	require.NoError(t, err)
	assert.False(t, report.CreatedOutputDir)
	assert.Equal(t, 1, report.Written)
}

func TestBuild_OutputPathIsFile(t *testing.T) {
	f := newFixture(t,
		"unique_id,tf_gene,sequence\nX1,TF1,ACGT\n",
		"tf_gene,amino_acid_sequence\nTF1,MKV\n",
		"TF1")
	writeFile(t, f.opts.OutputDir, "not a dir")

	_, err := Build(f.opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestBuild_MissingComplexColumns(t *testing.T) {
	f := newFixture(t,
		"id,tf_gene\nX1,TF1\n",
		"tf_gene,amino_acid_sequence\nTF1,MKV\n",
		"TF1")

	_, err := Build(f.opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unique_id, tf_gene, sequence")
}

func TestNewJobDescriptor_PassesSchema(t *testing.T) {
	data, err := Marshal(NewJobDescriptor("X1", "MKVLA", "/msa/TF1.a3m", "ATCGN"))
	require.NoError(t, err)

	assert.NoError(t, schemas.ValidateJobDescriptor(data))
}

func TestRowFailure_String(t *testing.T) {
	assert.Equal(t, "row 3 (ID: X1): no_alignment_file",
		RowFailure{Row: 3, UniqueID: "X1", Reason: ReasonNoAlignment}.String())
	assert.Equal(t, "row 4: missing_fields: unique_id",
		RowFailure{Row: 4, Reason: ReasonMissingFields, Detail: "unique_id"}.String())
}
