package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/af-prep/internal/config"
	"github.com/jonathan/af-prep/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFetchSequencesCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/fetch/symbol/FOS":
			_, _ = fmt.Fprint(w, `{"response":{"numFound":1,"docs":[{"uniprot_ids":["P01100"]}]}}`)
		case "/fetch/symbol/JUN", "/fetch/symbol/MYC":
			_, _ = fmt.Fprint(w, `{"response":{"numFound":0,"docs":[]}}`)
		case "/uniprotkb/P01100":
			_, _ = fmt.Fprint(w, ">sp|P01100|FOS_HUMAN\nMMFSG\nFNADY\n")
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	t.Setenv(config.EnvHGNCBaseURL, server.URL)
	t.Setenv(config.EnvUniProtBaseURL, server.URL)

	dir := t.TempDir()
	genes := writeFile(t, filepath.Join(dir, "genes.csv"), "tf_gene,sequence\nFOS+JUN,ACGT\nMYC,ACGT\nJUN,AAAA\n")
	out := filepath.Join(dir, "out", "seqs.csv")

	stdout, err := execute(t, "fetch-sequences", "--genes", genes, "--out", out, "--interval", "0s", "--concurrency", "2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "3 unique gene names")
	assert.Contains(t, stdout, "Resolved 1 sequences, 2 missing")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "tf_gene,amino_acid_sequence\nFOS,MMFSGFNADY\nJUN,\nMYC,\n", string(data))
}

func TestFetchSequencesCommand_MissingColumn(t *testing.T) {
	dir := t.TempDir()
	genes := writeFile(t, filepath.Join(dir, "genes.csv"), "gene\nFOS\n")

	_, err := execute(t, "fetch-sequences", "--genes", genes, "--out", filepath.Join(dir, "o.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tf_gene")
}

func TestFetchSequencesCommand_NoGeneTable(t *testing.T) {
	_, err := execute(t, "fetch-sequences")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--genes")
}

func TestBuildJobsCommand(t *testing.T) {
	dir := t.TempDir()
	complexCSV := writeFile(t, filepath.Join(dir, "complex.csv"), "unique_id,tf_gene,sequence\nX1,TF1,atcgn\nX2,TF2,ACGT\n")
	proteinCSV := writeFile(t, filepath.Join(dir, "proteins.csv"), "tf_gene,amino_acid_sequence\nTF1,MKVLA1\nTF2,MKV\n")
	a3mDir := filepath.Join(dir, "msa")
	writeFile(t, filepath.Join(a3mDir, "TF1.a3m"), ">q\nMKV\n")
	outDir := filepath.Join(dir, "json")

	stdout, err := execute(t, "build-jobs", complexCSV, proteinCSV, a3mDir, outDir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Successfully loaded 2 protein sequences")
	assert.Contains(t, stdout, "Processed 2 rows")
	assert.Contains(t, stdout, "Successfully generated 1 job descriptors")
	assert.Contains(t, stdout, "Skipped 1 rows")

	data, err := os.ReadFile(filepath.Join(outDir, "X1.json"))
	require.NoError(t, err)
	var d types.JobDescriptor
	require.NoError(t, json.Unmarshal(data, &d))
	assert.Equal(t, "MKVLA", d.ProteinSequence())
	assert.Equal(t, "ATCGN", d.DNASequence())

	stdout, err = execute(t, "validate-jobs", "--dir", outDir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Checked 1 descriptors, 0 invalid")
}

func TestBuildJobsCommand_WrongArgCount(t *testing.T) {
	_, err := execute(t, "build-jobs", "a.csv", "b.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 4 arg(s)")
}

func TestValidateJobsCommand_Invalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.json"), `{"name":"bad","modelSeeds":[0],"sequences":[],"dialect":"other","version":3}`)

	stdout, err := execute(t, "validate-jobs", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, stdout, "INVALID bad.json")
	assert.Contains(t, err.Error(), "1 of 1 job descriptors failed validation")
}

func TestValidateJobsCommand_CustomSchema(t *testing.T) {
	dir := t.TempDir()
	jobs := filepath.Join(dir, "jobs")
	writeFile(t, filepath.Join(jobs, "short.json"), `{"name":"X1"}`)
	writeFile(t, filepath.Join(jobs, "long.json"), `{"name":"much_too_long"}`)
	schema := writeFile(t, filepath.Join(dir, "names.schema.json"),
		`{"type":"object","required":["name"],"properties":{"name":{"type":"string","maxLength":8}}}`)

	stdout, err := execute(t, "validate-jobs", "--dir", jobs, "--schema", schema)
	require.Error(t, err)
	assert.Contains(t, stdout, "INVALID long.json")
	assert.NotContains(t, stdout, "INVALID short.json")
	assert.Contains(t, stdout, "Checked 2 descriptors, 1 invalid")

	_, err = execute(t, "validate-jobs", "--dir", jobs, "--schema", filepath.Join(dir, "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema file not found")
}

func TestValidateJobsCommand_RequiresDir(t *testing.T) {
	_, err := execute(t, "validate-jobs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestRelocateOutputsCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "af_output_msa")
	dest := filepath.Join(dir, "af_input_native")
	writeFile(t, filepath.Join(src, "X1", "X1_data.json"), `{"name":"X1"}`)
	require.NoError(t, os.MkdirAll(filepath.Join(src, "X2"), 0755))

	stdout, err := execute(t, "relocate-outputs", "--src", src, "--dest", dest)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Copied 1 files, skipped 1")

	_, err = os.Stat(filepath.Join(dest, "X1.json"))
	assert.NoError(t, err)

	_, err = execute(t, "relocate-outputs", "--src", src, "--dest", dest, "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "X2")
}

func TestRelocateOutputsCommand_UsesConfig(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "from")
	dest := filepath.Join(dir, "to")
	writeFile(t, filepath.Join(src, "J", "J_data.json"), "{}")

	cfgBytes, err := json.Marshal(map[string]string{"relocate_source": src, "relocate_dest": dest})
	require.NoError(t, err)
	cfgPath := writeFile(t, filepath.Join(dir, "config.json"), string(cfgBytes))

	_, err = execute(t, "--config", cfgPath, "relocate-outputs")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dest, "J.json"))
	assert.NoError(t, err)
}

func TestAggregateResultsCommand(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "af_output")
	writeFile(t, filepath.Join(root, "x1", "x1_summary_confidences.json"),
		`{"ptm":0.85,"iptm":0.81,"ranking_score":0.86,"chain_ptm":[0.88,0.42],"chain_pair_iptm":[[0.5,0.81]],"chain_pair_pae_min":[[0.7,1.25]],"fraction_disordered":0.04,"has_clash":0.0}`)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "x2"), 0755))
	out := filepath.Join(dir, "summary.csv")

	stdout, err := execute(t, "aggregate-results", "--in", root, "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote 1 rows")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "x1,0.86,0.85,0.81,0.81,1.25,0.88,0.42,0.04,0.0", lines[1])
}

func TestAggregateResultsCommand_XLSX(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "af_output")
	writeFile(t, filepath.Join(root, "x1", "x1_summary_confidences.json"), `{"ptm":0.5}`)
	out := filepath.Join(dir, "summary.bin")

	_, err := execute(t, "aggregate-results", "--in", root, "--out", out, "--xlsx")
	require.NoError(t, err)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	v, err := f.GetCellValue("Confidences", "C2")
	require.NoError(t, err)
	assert.Equal(t, "0.5", v)
}

func TestInvalidEnvironment(t *testing.T) {
	t.Setenv(config.EnvConcurrency, "many")

	_, err := execute(t, "relocate-outputs", "--src", t.TempDir(), "--dest", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.EnvConcurrency)
}

func TestRelocateOutputsCommand_Verbose(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	writeFile(t, filepath.Join(src, "X1", "X1_data.json"), "{}")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "X2"), 0755))

	stdout, err := execute(t, "--verbose", "relocate-outputs", "--src", src, "--dest", filepath.Join(dir, "dest"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "RELOCATED OUTPUTS")
	assert.Contains(t, stdout, "• X2")
}
