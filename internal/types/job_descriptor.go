package types

// Fixed provenance values of the structure prediction tool's input format.
const (
	JobDialect        = "alphafold3"
	JobVersion        = 3
	ProteinChainID    = "A"
	DNAChainID        = "B"
	DefaultModelSeed  = 0
	AlignmentFileExt  = ".a3m"
	DescriptorFileExt = ".json"
)

// JobDescriptor is the input file consumed by the external prediction tool.
// Field order matches the order written to disk.
type JobDescriptor struct {
	Name       string          `json:"name"`
	ModelSeeds []int           `json:"modelSeeds"`
	Sequences  []SequenceEntry `json:"sequences"`
	Dialect    string          `json:"dialect"`
	Version    int             `json:"version"`
}

// SequenceEntry holds exactly one typed chain.
type SequenceEntry struct {
	Protein *ProteinChain `json:"protein,omitempty"`
	DNA     *DNAChain     `json:"dna,omitempty"`
}

// ProteinChain is a protein entity with its precomputed unpaired alignment.
type ProteinChain struct {
	ID              string     `json:"id"`
	Sequence        string     `json:"sequence"`
	UnpairedMSAPath string     `json:"unpairedMsaPath"`
	PairedMSA       string     `json:"pairedMsa"`
	Templates       []Template `json:"templates"`
}

// Template is a structural template entry. Descriptors are built without templates.
type Template struct {
	MMCIFPath       string `json:"mmcifPath,omitempty"`
	QueryIndices    []int  `json:"queryIndices,omitempty"`
	TemplateIndices []int  `json:"templateIndices,omitempty"`
}

// DNAChain is a single DNA strand.
type DNAChain struct {
	ID       string `json:"id"`
	Sequence string `json:"sequence"`
}

// ProteinSequence returns the first protein chain sequence, or "" if none.
func (d *JobDescriptor) ProteinSequence() string {
	for _, s := range d.Sequences {
		if s.Protein != nil {
			return s.Protein.Sequence
		}
	}
	return ""
}

// DNASequence returns the first DNA chain sequence, or "" if none.
func (d *JobDescriptor) DNASequence() string {
	for _, s := range d.Sequences {
		if s.DNA != nil {
			return s.DNA.Sequence
		}
	}
	return ""
}
